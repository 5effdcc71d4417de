package syntax

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadKeywords reads parser preferences from a YAML or TOML file, chosen by
// extension. Keys missing from the file keep their default values.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	k := DefaultKeywords()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &k); err != nil {
			return Keywords{}, fmt.Errorf("failed to parse TOML preferences: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &k); err != nil {
			return Keywords{}, fmt.Errorf("failed to parse YAML preferences: %w", err)
		}
	default:
		return Keywords{}, fmt.Errorf("unsupported preferences format: %q", ext)
	}
	return k.withDefaults(), nil
}

// SaveKeywords writes parser preferences as YAML or TOML, chosen by extension
func SaveKeywords(path string, k Keywords) error {
	var data []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(k); err != nil {
			return fmt.Errorf("failed to encode TOML preferences: %w", err)
		}
		data = buf.Bytes()
	case ".yaml", ".yml":
		out, err := yaml.Marshal(k)
		if err != nil {
			return fmt.Errorf("failed to encode YAML preferences: %w", err)
		}
		data = out
	default:
		return fmt.Errorf("unsupported preferences format: %q", ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
