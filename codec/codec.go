// Package codec encodes and decodes ranking inputs and results.
//
// Datasets and CLI output are plain documents; the codec is picked by name
// or by file extension.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "yaml":
		return YAML{}, true
	default:
		return nil, false
	}
}

// ForPath selects a codec from the extension of path. Compression suffixes
// (.zst, .lz4) are ignored. Unknown extensions yield an error.
func ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zst", ".lz4":
		return ForPath(strings.TrimSuffix(path, filepath.Ext(path)))
	case ".json":
		return Default, nil
	case ".yaml", ".yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("codec: unsupported file extension %q", ext)
	}
}

// MustMarshal is a helper for tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
