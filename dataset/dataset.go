// Package dataset loads ranking inputs from JSON or YAML documents.
//
// Files may be compressed with zstd (.zst) or lz4 frames (.lz4); the codec
// is chosen from the extension under the compression suffix, so
// "items.json.zst" is zstd-compressed JSON.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/vecrank/codec"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// DefaultHoursSinceInteraction is used for temporal nodes without a value.
const DefaultHoursSinceInteraction = 24.0

var (
	// ErrEmptyID is returned when a node has no id.
	ErrEmptyID = errors.New("dataset: node id must not be empty")

	// ErrUnknownID is returned when an edge or table refers to an id that is not a node.
	ErrUnknownID = errors.New("dataset: unknown node id")
)

// NodeRecord is a node as stored in a dataset file.
type NodeRecord struct {
	ID                    string    `json:"id" yaml:"id"`
	Vector                []float32 `json:"vector,omitempty" yaml:"vector,omitempty"`
	HoursSinceInteraction *float64  `json:"hours_since_interaction,omitempty" yaml:"hours_since_interaction,omitempty"`
}

// EdgeRecord is a directed interaction between two node ids.
type EdgeRecord struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Open opens path for reading, transparently decompressing .zst and .lz4 files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("dataset: zstd reader: %w", err)
		}
		return &zstdReadCloser{dec: dec, f: f}, nil
	case ".lz4":
		return &readCloser{Reader: lz4.NewReader(f), f: f}, nil
	default:
		return f, nil
	}
}

// Decode reads path and unmarshals it into v with the codec matching its extension.
func Decode(path string, v any) error {
	c, err := codec.ForPath(path)
	if err != nil {
		return err
	}

	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("dataset: read %s: %w", path, err)
	}

	if err := c.Unmarshal(data, v); err != nil {
		return fmt.Errorf("dataset: decode %s: %w", path, err)
	}
	return nil
}

type readCloser struct {
	io.Reader
	f *os.File
}

func (r *readCloser) Close() error { return r.f.Close() }

type zstdReadCloser struct {
	dec *zstd.Decoder
	f   *os.File
}

func (r *zstdReadCloser) Read(p []byte) (int, error) { return r.dec.Read(p) }

func (r *zstdReadCloser) Close() error {
	r.dec.Close()
	return r.f.Close()
}
