package diagram

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// ToJSON serializes a diagram to its JSON interchange form
func ToJSON(r *Root) ([]byte, error) {
	if r == nil {
		return nil, errors.New("cannot export nil diagram")
	}
	data, err := json.MarshalIndent(toDocument(r), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal diagram to JSON: %w", err)
	}
	return data, nil
}

// FromJSON validates JSON bytes against the diagram schema and converts
// them into a diagram
func FromJSON(data []byte) (*Root, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return fromDocument(&doc)
}

// ValidateJSON validates diagram JSON bytes against the embedded schema
func ValidateJSON(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty JSON input")
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	return nil
}

// Query evaluates a gjson path against the JSON form of the diagram.
// For example "body.#.type" lists the kinds of the top-level elements.
func Query(r *Root, path string) (interface{}, error) {
	if path == "" {
		return nil, errors.New("query path cannot be empty")
	}
	data, err := ToJSON(r)
	if err != nil {
		return nil, err
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, fmt.Errorf("path not found: %s", path)
	}
	return convertResult(result), nil
}

// convertResult converts a gjson.Result to the appropriate Go type
func convertResult(result gjson.Result) interface{} {
	switch result.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		if result.Num == float64(int64(result.Num)) {
			return int64(result.Num)
		}
		return result.Num
	case gjson.String:
		return result.Str
	case gjson.JSON:
		return result.Value()
	default:
		return result.Value()
	}
}
