// Package snapshot reads and writes board snapshots as YAML or JSON files.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
)

// Supported formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatFromPath infers the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Encode writes snap to w in the given format.
func Encode(w io.Writer, snap *primary.BoardSnapshot, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
	default:
		return fmt.Errorf("unknown snapshot format %q: %w", format, models.ErrInvalid)
	}
	return nil
}

// Decode reads a snapshot from r. Malformed input wraps models.ErrInvalid.
func Decode(r io.Reader, format string) (*primary.BoardSnapshot, error) {
	var snap primary.BoardSnapshot
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot: %v: %w", err, models.ErrInvalid)
		}
	case FormatYAML, "":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot: %v: %w", err, models.ErrInvalid)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot format %q: %w", format, models.ErrInvalid)
	}
	return &snap, nil
}

// WriteFile encodes snap to path, choosing the format from the extension.
func WriteFile(path string, snap *primary.BoardSnapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, snap, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*primary.BoardSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, FormatFromPath(path))
}
