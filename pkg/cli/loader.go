package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/nsflow/pkg/diagram"
)

// Format is a diagram file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// ParseFormat resolves a format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml", "nsd":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (want yaml, xml or json)", name)
	}
}

// formatFromPath guesses the format from a file extension; unknown
// extensions are read as YAML
func formatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatYAML
	}
	return f
}

// LoadDiagramsFromFile loads every diagram stored in a file. YAML files may
// hold several documents, XML and JSON files hold one diagram.
func LoadDiagramsFromFile(path string) ([]*diagram.Root, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("diagram file not found: %s", path)
	}

	if formatFromPath(path) == FormatYAML {
		return diagram.ParseFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagram file: %w", err)
	}
	var root *diagram.Root
	if formatFromPath(path) == FormatXML {
		root, err = diagram.DecodeXML(data)
	} else {
		root, err = diagram.FromJSON(data)
	}
	if err != nil {
		return nil, err
	}
	return []*diagram.Root{root}, nil
}

// LoadDiagramFromFile loads a file expected to hold exactly one diagram
func LoadDiagramFromFile(path string) (*diagram.Root, error) {
	roots, err := LoadDiagramsFromFile(path)
	if err != nil {
		return nil, err
	}
	if len(roots) != 1 {
		return nil, fmt.Errorf("%s holds %d diagrams, expected one", path, len(roots))
	}
	return roots[0], nil
}

// EncodeDiagram serializes a diagram in the given format
func EncodeDiagram(root *diagram.Root, f Format) ([]byte, error) {
	switch f {
	case FormatXML:
		return diagram.EncodeXML(root)
	case FormatJSON:
		return diagram.ToJSON(root)
	default:
		return diagram.Marshal(root)
	}
}

// writeDiagram writes a diagram to path, or returns the encoded bytes when
// path is empty
func writeDiagram(root *diagram.Root, path string, f Format) ([]byte, error) {
	data, err := EncodeDiagram(root, f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagram: %w", err)
	}
	if path == "" {
		return data, nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}
	return nil, nil
}
