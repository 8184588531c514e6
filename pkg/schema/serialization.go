package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format names a machine file format.
type Format string

const (
	FormatTM   Format = "tm"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat resolves a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "tm":
		return FormatTM, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown machine format %q (expected tm, yaml or json)", s)
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Decode parses data in the given format into a machine.
func Decode(data []byte, format Format) (*domain.Machine, error) {
	switch format {
	case FormatTM:
		return compiler.NewParser().Compile(data)
	case FormatYAML, FormatJSON:
		doc, err := DecodeDocument(data, format)
		if err != nil {
			return nil, err
		}
		return doc.Machine()
	}
	return nil, fmt.Errorf("unknown machine format %q", format)
}

// DecodeDocument parses a YAML or JSON document.
func DecodeDocument(data []byte, format Format) (*Document, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse machine yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse machine json: %w", err)
		}
	default:
		return nil, fmt.Errorf("format %q has no document form", format)
	}
	if raw == nil {
		return nil, fmt.Errorf("machine document is empty")
	}
	return DecodeMap(raw)
}

// LoadFile reads a machine from path, choosing the format by extension.
func LoadFile(path string) (*domain.Machine, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}
	m, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Encode writes m to w in the given format.
func Encode(w io.Writer, m *domain.Machine, format Format) error {
	switch format {
	case FormatTM:
		return compiler.Format(w, m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(FromMachine(m)); err != nil {
			return fmt.Errorf("failed to encode machine yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(FromMachine(m)); err != nil {
			return fmt.Errorf("failed to encode machine json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown machine format %q", format)
}
