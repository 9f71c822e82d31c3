package hnsw

// LevelStats summarizes one layer of the graph.
type LevelStats struct {
	Level          int
	Nodes          int
	Connections    int
	AvgConnections int
}

// Stats describes the shape of the graph.
type Stats struct {
	M        int
	EF       int
	MMax     int
	MMax0    int
	MaxLevel int
	Nodes    int
	Levels   []LevelStats
}

// Stats returns statistics about the HNSW graph.
func (h *HNSW) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	s := Stats{
		M:        h.opts.M,
		EF:       h.opts.EF,
		MMax:     h.mmax,
		MMax0:    h.mmax0,
		MaxLevel: h.maxLevel,
		Nodes:    len(h.nodes),
	}
	if len(h.nodes) == 0 {
		return s
	}

	s.Levels = make([]LevelStats, h.maxLevel+1)
	for level := range s.Levels {
		s.Levels[level].Level = level
	}

	for _, n := range h.nodes {
		for level := 0; level <= n.level; level++ {
			s.Levels[level].Nodes++
			s.Levels[level].Connections += len(n.connections[level])
		}
	}

	for i := range s.Levels {
		s.Levels[i].AvgConnections = s.Levels[i].Connections / max(1, s.Levels[i].Nodes)
	}

	return s
}
