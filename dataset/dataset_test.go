package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/vecrank"
	"github.com/hupe1980/vecrank/graph"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const similarityJSON = `{
  "nodes": [
    {"id": "a", "vector": [1, 0]},
    {"id": "b", "vector": [0.9, 0.1]},
    {"id": "c", "vector": [0, 1]}
  ],
  "popularity": {"b": 2},
  "transitions": {"a": {"b": 4}}
}`

const temporalYAML = `nodes:
  - id: a
    hours_since_interaction: 1.5
  - id: b
  - id: c
    hours_since_interaction: 0
edges:
  - source: a
    target: b
  - source: c
    target: a
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return buf.Bytes()
}

func lz4Compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoadSimilarity(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"Plain", "items.json", []byte(similarityJSON)},
		{"Zstd", "items.json.zst", zstdCompress(t, []byte(similarityJSON))},
		{"LZ4", "items.json.lz4", lz4Compress(t, []byte(similarityJSON))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadSimilarity(writeFile(t, tt.file, tt.data))
			require.NoError(t, err)

			require.Len(t, s.Nodes, 3)
			assert.Equal(t, vecrank.Node[string]{ID: "b", Vector: []float32{0.9, 0.1}}, s.Nodes[1])
			assert.Equal(t, map[string]float64{"b": 2}, s.Popularity)
			assert.Equal(t, 4, s.Transitions["a"]["b"])

			in := s.Input(1, 0.85, 20)
			assert.Equal(t, 1, in.Neighbors)
			assert.Equal(t, 0.85, in.Damping)
			assert.Equal(t, 20, in.Iterations)
		})
	}
}

func TestLoadTemporal(t *testing.T) {
	for _, name := range []string{"events.yaml", "events.yml"} {
		t.Run(name, func(t *testing.T) {
			tm, err := LoadTemporal(writeFile(t, name, []byte(temporalYAML)))
			require.NoError(t, err)

			assert.Equal(t, []string{"a", "b", "c"}, tm.IDs)
			assert.Equal(t, []float64{1.5, DefaultHoursSinceInteraction, 0}, tm.Hours)
			assert.Equal(t, []graph.Link{{Source: 0, Target: 1}, {Source: 2, Target: 0}}, tm.Edges)

			in := tm.Input(0.85, 0.1, 5)
			assert.Equal(t, 3, in.NumNodes)
			assert.Equal(t, 0.1, in.DecayLambda)
		})
	}
}

func TestSimilarityValidate(t *testing.T) {
	t.Run("EmptyID", func(t *testing.T) {
		f := SimilarityFile{Nodes: []NodeRecord{{ID: "", Vector: []float32{1}}}}
		_, err := f.Validate()
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("Dimension", func(t *testing.T) {
		f := SimilarityFile{Nodes: []NodeRecord{
			{ID: "a", Vector: []float32{1, 0}},
			{ID: "b", Vector: []float32{1}},
		}}
		_, err := f.Validate()
		var target *vecrank.ErrDimensionMismatch
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 1, target.Index)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		f := SimilarityFile{Nodes: []NodeRecord{
			{ID: "a", Vector: []float32{1}},
			{ID: "a", Vector: []float32{2}},
		}}
		_, err := f.Validate()
		var target *graph.ErrDuplicateID[string]
		assert.ErrorAs(t, err, &target)
	})

	t.Run("UnknownPopularity", func(t *testing.T) {
		f := SimilarityFile{
			Nodes:      []NodeRecord{{ID: "a", Vector: []float32{1}}},
			Popularity: map[string]float64{"z": 1},
		}
		_, err := f.Validate()
		assert.ErrorIs(t, err, ErrUnknownID)
	})

	t.Run("UnknownTransition", func(t *testing.T) {
		f := SimilarityFile{
			Nodes:       []NodeRecord{{ID: "a", Vector: []float32{1}}},
			Transitions: map[string]map[string]int{"a": {"z": 1}},
		}
		_, err := f.Validate()
		assert.ErrorIs(t, err, ErrUnknownID)
	})

	t.Run("Empty", func(t *testing.T) {
		s, err := (&SimilarityFile{}).Validate()
		require.NoError(t, err)
		assert.Empty(t, s.Nodes)
	})
}

func TestTemporalValidate(t *testing.T) {
	f := TemporalFile{
		Nodes: []NodeRecord{{ID: "a"}},
		Edges: []EdgeRecord{{Source: "a", Target: "b"}},
	}
	_, err := f.Validate()
	assert.ErrorIs(t, err, ErrUnknownID)

	f = TemporalFile{Nodes: []NodeRecord{{ID: "a"}, {}}}
	_, err = f.Validate()
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestDecodeErrors(t *testing.T) {
	_, err := LoadSimilarity(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadSimilarity(writeFile(t, "items.csv", []byte("a,b")))
	assert.Error(t, err)

	_, err = LoadSimilarity(writeFile(t, "items.json", []byte("{")))
	assert.Error(t, err)
}

func TestRankLoadedDataset(t *testing.T) {
	tm, err := LoadTemporal(writeFile(t, "events.yaml", []byte(temporalYAML)))
	require.NoError(t, err)

	ranks, err := vecrank.RankTemporal(tm.Input(0.85, 0.1, 3))
	require.NoError(t, err)
	assert.Len(t, ranks, 3)
}
