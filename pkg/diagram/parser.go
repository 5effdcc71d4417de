package diagram

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse parses a single diagram from YAML bytes
func Parse(yamlBytes []byte) (*Root, error) {
	if len(yamlBytes) == 0 {
		return nil, errors.New("empty YAML input")
	}

	var doc document
	if err := yaml.Unmarshal(yamlBytes, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return fromDocument(&doc)
}

// ParseAll parses every diagram of a multi-document YAML stream
func ParseAll(yamlBytes []byte) ([]*Root, error) {
	if len(yamlBytes) == 0 {
		return nil, errors.New("empty YAML input")
	}

	dec := yaml.NewDecoder(bytes.NewReader(yamlBytes))
	roots := make([]*Root, 0, 1)
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML document %d: %w", len(roots)+1, err)
		}
		r, err := fromDocument(&doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(roots)+1, err)
		}
		roots = append(roots, r)
	}

	return roots, nil
}

// ParseFile reads a YAML file that may hold one or more diagrams
func ParseFile(path string) ([]*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagram file: %w", err)
	}
	return ParseAll(data)
}

// Marshal serializes a diagram to YAML
func Marshal(r *Root) ([]byte, error) {
	if r == nil {
		return nil, errors.New("cannot marshal nil diagram")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(r)); err != nil {
		return nil, fmt.Errorf("failed to marshal diagram to YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal diagram to YAML: %w", err)
	}
	return buf.Bytes(), nil
}
