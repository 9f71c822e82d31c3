package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/vecrank/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsJSON = `{
  "nodes": [
    {"id": "a", "vector": [1, 0, 0]},
    {"id": "b", "vector": [0.9, 0.1, 0]},
    {"id": "c", "vector": [0, 0, 1]},
    {"id": "d", "vector": [0.8, 0.2, 0.1]}
  ],
  "popularity": {"b": 2},
  "transitions": {"a": {"b": 5}}
}`

const eventsYAML = `nodes:
  - id: x
    hours_since_interaction: 0
  - id: y
    hours_since_interaction: 0
  - id: z
    hours_since_interaction: 0
edges:
  - {source: x, target: y}
  - {source: x, target: z}
  - {source: y, target: x}
  - {source: z, target: x}
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeRecords(t *testing.T, data []byte) []rankRecord {
	t.Helper()
	var records []rankRecord
	require.NoError(t, codec.Default.Unmarshal(data, &records))
	return records
}

func TestRootCmd_Definition(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "vecrank", root.Use)

	names := make([]string, 0, 2)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"similarity", "temporal"}, names)

	sim, _, err := root.Find([]string{"similarity"})
	require.NoError(t, err)
	neighbors := sim.Flags().Lookup("neighbors")
	require.NotNil(t, neighbors)
	assert.Equal(t, "m", neighbors.Shorthand)
	assert.Equal(t, "10", neighbors.DefValue)
	assert.NotNil(t, sim.Flags().Lookup("input"))
	assert.NotNil(t, sim.Flags().Lookup("metrics-file"))
}

func TestSimilarityCmd(t *testing.T) {
	input := writeInput(t, "items.json", itemsJSON)

	stdout, _, err := execute(t, "similarity", "-i", input, "-m", "2", "--top", "3", "--iterations", "30")
	require.NoError(t, err)

	records := decodeRecords(t, []byte(stdout))
	require.Len(t, records, 3)
	assert.Equal(t, "b", records[0].ID)
	assert.GreaterOrEqual(t, records[0].Rank, records[1].Rank)
	assert.GreaterOrEqual(t, records[1].Rank, records[2].Rank)
}

func TestSimilarityCmdOutputFile(t *testing.T) {
	input := writeInput(t, "items.json", itemsJSON)
	dir := t.TempDir()
	output := filepath.Join(dir, "ranks.yaml")
	metrics := filepath.Join(dir, "metrics.prom")

	stdout, _, err := execute(t, "similarity", "-i", input, "-o", output, "--metrics-file", metrics)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var records []rankRecord
	require.NoError(t, codec.YAML{}.Unmarshal(data, &records))
	require.Len(t, records, 4)

	sum := 0.0
	for _, r := range records {
		sum += r.Rank
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "vecrank_rank_total{mode=\"similarity\"} 1")
	assert.Contains(t, string(prom), "vecrank_index_build_nodes_total 4")
}

func TestTemporalCmd(t *testing.T) {
	input := writeInput(t, "events.yaml", eventsYAML)

	stdout, _, err := execute(t, "temporal", "-i", input, "--iterations", "1", "--decay-lambda", "0")
	require.NoError(t, err)

	records := decodeRecords(t, []byte(stdout))
	require.Len(t, records, 3)
	assert.Equal(t, "x", records[0].ID)
	assert.InDelta(t, 2.0/3, records[0].Rank, 1e-12)
	assert.InDelta(t, 1.0/6, records[1].Rank, 1e-12)
}

func TestCmdConfigFile(t *testing.T) {
	input := writeInput(t, "events.yaml", eventsYAML)
	cfg := writeInput(t, "vecrank.yaml", "iterations: 1\ndecay_lambda: 0\nlog_level: debug\n")

	stdout, stderr, err := execute(t, "temporal", "-i", input, "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, stderr, "ranking completed")

	records := decodeRecords(t, []byte(stdout))
	require.Len(t, records, 3)
	assert.InDelta(t, 2.0/3, records[0].Rank, 1e-12)
}

func TestCmdErrors(t *testing.T) {
	t.Run("MissingInput", func(t *testing.T) {
		_, _, err := execute(t, "similarity")
		assert.Error(t, err)
	})

	t.Run("InvalidDamping", func(t *testing.T) {
		input := writeInput(t, "items.json", itemsJSON)
		_, _, err := execute(t, "similarity", "-i", input, "--damping", "1.5")
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("InvalidEnv", func(t *testing.T) {
		t.Setenv("VECRANK_ITERATIONS", "lots")
		input := writeInput(t, "events.yaml", eventsYAML)
		_, _, err := execute(t, "temporal", "-i", input)
		assert.ErrorContains(t, err, "VECRANK_ITERATIONS")
	})

	t.Run("BadDataset", func(t *testing.T) {
		input := writeInput(t, "items.json", `{"nodes": [{"id": "a", "vector": [1]}, {"id": "b", "vector": [1, 2]}]}`)
		_, _, err := execute(t, "similarity", "-i", input)
		assert.ErrorContains(t, err, "dimension mismatch")
	})
}
