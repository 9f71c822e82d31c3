package hnsw

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/vecrank/distance"
	"github.com/hupe1980/vecrank/internal/queue"
	"github.com/hupe1980/vecrank/internal/visited"
)

const (
	// DefaultM is the default number of bidirectional links per node and layer.
	DefaultM = 16

	// DefaultEF is the default size of the dynamic candidate list during construction.
	DefaultEF = 200

	// minimumM keeps the level multiplier finite: 1 / log(1) is undefined.
	minimumM = 2
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyIndex is returned when searching an index without nodes.
	ErrEmptyIndex = errors.New("index is empty")
)

// ErrDimensionMismatch is returned when a vector does not match the index dimension.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension is returned by New for a non-positive dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrNodeNotFound is returned when an id was never inserted.
type ErrNodeNotFound struct {
	ID uint32
}

func (e *ErrNodeNotFound) Error() string {
	return fmt.Sprintf("node %d not found", e.ID)
}

// Options represents the options for configuring HNSW.
type Options struct {
	// M specifies the number of established connections for every new element during construction.
	// Layer 0 allows 2*M connections. The range M=12-48 is ok for most use cases.
	M int

	// EF specifies the size of the dynamic candidate list used while inserting.
	// Larger values build a better graph at the cost of slower construction.
	EF int

	// Heuristic selects neighbours with the diversity heuristic (true) or by plain distance (false).
	Heuristic bool

	// DistanceType is the metric queries are answered in.
	// MetricCosine stores L2-normalized copies of every vector.
	DistanceType distance.Metric

	// RandomSeed fixes the level generator. Nil seeds from the clock.
	RandomSeed *int64
}

// DefaultOptions contains the default options for HNSW.
var DefaultOptions = Options{
	M:            DefaultM,
	EF:           DefaultEF,
	Heuristic:    true,
	DistanceType: distance.MetricCosine,
}

// SearchResult is one neighbour returned by a query.
type SearchResult struct {
	ID       uint32
	Distance float32
}

type node struct {
	connections [][]uint32 // per layer, closest first after pruning
	vector      []float32
	level       int
}

// HNSW is a Hierarchical Navigable Small World graph over float32 vectors.
//
// Insert is the single-writer construction phase. KNNSearch and SearchByID
// only read the graph and may be called from many goroutines at once.
type HNSW struct {
	dimension    int
	mmax         int     // max connections per layer above 0
	mmax0        int     // max connections at layer 0
	ml           float64 // level generation multiplier
	ep           uint32  // entry point
	maxLevel     int
	normalize    bool
	distanceFunc distance.Func

	nodes []*node

	opts Options
	rng  *rand.Rand

	insertVisited *visited.Set
	visitedPool   sync.Pool

	mu sync.RWMutex
}

// New creates a new HNSW instance with the given dimension and options.
func New(dimension int, optFns ...func(o *Options)) (*HNSW, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if dimension <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimension}
	}

	if opts.M < minimumM {
		opts.M = minimumM
	}
	if opts.EF < opts.M {
		opts.EF = opts.M
	}

	distFunc, err := distance.Provider(opts.DistanceType)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if opts.RandomSeed != nil {
		seed = *opts.RandomSeed
	}

	h := &HNSW{
		dimension:     dimension,
		mmax:          opts.M,
		mmax0:         2 * opts.M,
		ml:            1 / math.Log(float64(opts.M)),
		normalize:     opts.DistanceType == distance.MetricCosine,
		distanceFunc:  distFunc,
		opts:          opts,
		rng:           rand.New(rand.NewSource(seed)), // nolint gosec
		insertVisited: visited.New(1024),
	}
	h.visitedPool.New = func() any { return visited.New(1024) }

	return h, nil
}

// Dimension returns the vector dimension of the index.
func (h *HNSW) Dimension() int { return h.dimension }

// Len returns the number of inserted vectors.
func (h *HNSW) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.nodes)
}

// Vector returns the stored (possibly normalized) vector of id.
func (h *HNSW) Vector(id uint32) ([]float32, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if int(id) >= len(h.nodes) {
		return nil, &ErrNodeNotFound{ID: id}
	}
	return h.nodes[id].vector, nil
}

// Insert adds v to the graph and returns its id. Ids are dense and assigned
// in insertion order, starting at zero.
func (h *HNSW) Insert(v []float32) (uint32, error) {
	if len(v) != h.dimension {
		return 0, &ErrDimensionMismatch{Expected: h.dimension, Actual: len(v)}
	}

	vec := h.prepare(v)

	h.mu.Lock()
	defer h.mu.Unlock()

	id := uint32(len(h.nodes))
	level := h.randomLevel()

	n := &node{
		vector:      vec,
		level:       level,
		connections: make([][]uint32, level+1),
	}

	if len(h.nodes) == 0 {
		h.nodes = append(h.nodes, n)
		h.ep = id
		h.maxLevel = level
		return id, nil
	}

	h.insertVisited.EnsureCapacity(len(h.nodes) + 1)

	curr := queue.Item{Node: h.ep, Distance: h.distanceFunc(vec, h.nodes[h.ep].vector)}

	// Greedy descent through the layers above the new node.
	for level := h.maxLevel; level > n.level; level-- {
		curr = h.greedyClosest(vec, curr, level)
	}

	for level := min(n.level, h.maxLevel); level >= 0; level-- {
		results := h.searchLayer(vec, curr, h.opts.EF, level, h.insertVisited)
		h.insertVisited.Reset()

		candidates := drainAscending(results)
		n.connections[level] = h.selectNeighbours(candidates, h.opts.M)
		curr = candidates[0]
	}

	h.nodes = append(h.nodes, n)

	// Link the neighbours back to the new node, making it reachable.
	for level := min(n.level, h.maxLevel); level >= 0; level-- {
		for _, neighbour := range n.connections[level] {
			h.link(neighbour, id, level)
		}
	}

	if n.level > h.maxLevel {
		h.ep = id
		h.maxLevel = n.level
	}

	return id, nil
}

// KNNSearch returns up to k approximate nearest neighbours of q, closest first.
// efSearch below k is raised to k.
func (h *HNSW) KNNSearch(q []float32, k int, efSearch int) ([]SearchResult, error) {
	if len(q) != h.dimension {
		return nil, &ErrDimensionMismatch{Expected: h.dimension, Actual: len(q)}
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}

	query := q
	if h.normalize {
		if nq, ok := distance.NormalizeL2Copy(q); ok {
			query = nq
		}
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.search(query, k, efSearch)
}

// SearchByID queries the graph with the stored vector of id. The node itself
// is usually the first hit.
func (h *HNSW) SearchByID(id uint32, k int, efSearch int) ([]SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if int(id) >= len(h.nodes) {
		return nil, &ErrNodeNotFound{ID: id}
	}
	return h.search(h.nodes[id].vector, k, efSearch)
}

// BruteSearch performs an exhaustive scan. It is used to measure recall.
func (h *HNSW) BruteSearch(q []float32, k int) ([]SearchResult, error) {
	if len(q) != h.dimension {
		return nil, &ErrDimensionMismatch{Expected: h.dimension, Actual: len(q)}
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}

	query := q
	if h.normalize {
		if nq, ok := distance.NormalizeL2Copy(q); ok {
			query = nq
		}
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	top := queue.New(true, k)
	for i, n := range h.nodes {
		top.PushBounded(queue.Item{Node: uint32(i), Distance: h.distanceFunc(query, n.vector)}, k)
	}
	return toResults(drainAscending(top)), nil
}

// search must be called with at least the read lock held.
func (h *HNSW) search(query []float32, k int, efSearch int) ([]SearchResult, error) {
	if len(h.nodes) == 0 {
		return nil, ErrEmptyIndex
	}

	ef := max(efSearch, k)

	curr := queue.Item{Node: h.ep, Distance: h.distanceFunc(query, h.nodes[h.ep].vector)}
	for level := h.maxLevel; level > 0; level-- {
		curr = h.greedyClosest(query, curr, level)
	}

	vs, _ := h.visitedPool.Get().(*visited.Set)
	vs.EnsureCapacity(len(h.nodes))
	results := h.searchLayer(query, curr, ef, 0, vs)
	vs.Reset()
	h.visitedPool.Put(vs)

	for results.Len() > k {
		results.Pop()
	}

	return toResults(drainAscending(results)), nil
}

// greedyClosest walks a single layer towards q until no neighbour is closer.
func (h *HNSW) greedyClosest(q []float32, curr queue.Item, level int) queue.Item {
	changed := true
	for changed {
		changed = false

		n := h.nodes[curr.Node]
		if level >= len(n.connections) {
			return curr
		}

		for _, id := range n.connections[level] {
			if d := h.distanceFunc(q, h.nodes[id].vector); d < curr.Distance {
				curr = queue.Item{Node: id, Distance: d}
				changed = true
			}
		}
	}
	return curr
}

// searchLayer returns a max-heap holding the ef closest nodes reachable from ep on level.
func (h *HNSW) searchLayer(q []float32, ep queue.Item, ef int, level int, vs *visited.Set) *queue.Queue {
	vs.Visit(ep.Node)

	candidates := queue.New(false, ef)
	candidates.Push(ep)

	results := queue.New(true, ef+1)
	results.Push(ep)

	for candidates.Len() > 0 {
		candidate, _ := candidates.Pop()
		worst, _ := results.Top()
		if candidate.Distance > worst.Distance {
			break
		}

		n := h.nodes[candidate.Node]
		if level >= len(n.connections) {
			continue
		}

		for _, id := range n.connections[level] {
			if !vs.Visit(id) {
				continue
			}

			item := queue.Item{Node: id, Distance: h.distanceFunc(q, h.nodes[id].vector)}

			worst, _ = results.Top()
			if results.Len() < ef || item.Distance < worst.Distance {
				candidates.Push(item)
				results.PushBounded(item, ef)
			}
		}
	}

	return results
}

// link adds a connection first -> second on level, pruning first's list when it overflows.
func (h *HNSW) link(first, second uint32, level int) {
	maxConnections := h.mmax
	if level == 0 {
		maxConnections = h.mmax0
	}

	n := h.nodes[first]
	n.connections[level] = append(n.connections[level], second)

	if len(n.connections[level]) <= maxConnections {
		return
	}

	candidates := make([]queue.Item, 0, len(n.connections[level]))
	for _, id := range n.connections[level] {
		candidates = append(candidates, queue.Item{Node: id, Distance: h.distanceFunc(n.vector, h.nodes[id].vector)})
	}
	sortAscending(candidates)

	n.connections[level] = h.selectNeighbours(candidates, maxConnections)
}

// selectNeighbours picks up to m ids from candidates, which must be sorted closest first.
func (h *HNSW) selectNeighbours(candidates []queue.Item, m int) []uint32 {
	if !h.opts.Heuristic || len(candidates) <= m {
		limit := min(m, len(candidates))
		out := make([]uint32, limit)
		for i := range out {
			out[i] = candidates[i].Node
		}
		return out
	}

	selected := make([]uint32, 0, m)
	pruned := make([]uint32, 0, len(candidates))

	for _, c := range candidates {
		if len(selected) >= m {
			break
		}

		keep := true
		for _, s := range selected {
			if h.distanceFunc(h.nodes[s].vector, h.nodes[c.Node].vector) < c.Distance {
				keep = false
				break
			}
		}

		if keep {
			selected = append(selected, c.Node)
		} else {
			pruned = append(pruned, c.Node)
		}
	}

	// Keep pruned connections so sparse regions stay connected.
	for _, id := range pruned {
		if len(selected) >= m {
			break
		}
		selected = append(selected, id)
	}

	return selected
}

func (h *HNSW) prepare(v []float32) []float32 {
	if h.normalize {
		if nv, ok := distance.NormalizeL2Copy(v); ok {
			return nv
		}
	}
	vec := make([]float32, len(v))
	copy(vec, v)
	return vec
}

func (h *HNSW) randomLevel() int {
	return int(math.Floor(-math.Log(1-h.rng.Float64()) * h.ml))
}

func drainAscending(q *queue.Queue) []queue.Item {
	items := make([]queue.Item, q.Len())
	copy(items, q.Items())
	sortAscending(items)
	return items
}

func sortAscending(items []queue.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Distance != items[j].Distance {
			return items[i].Distance < items[j].Distance
		}
		return items[i].Node < items[j].Node
	})
}

func toResults(items []queue.Item) []SearchResult {
	out := make([]SearchResult, len(items))
	for i, it := range items {
		out[i] = SearchResult{ID: it.Node, Distance: it.Distance}
	}
	return out
}
