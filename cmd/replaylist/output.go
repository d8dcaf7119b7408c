package replaylist

import (
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// JSONEncoder provides indented JSON encoding
type JSONEncoder struct {
	encoder *json.Encoder
}

// NewJSONEncoder creates a new JSON encoder
func NewJSONEncoder(w io.Writer) *JSONEncoder {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &JSONEncoder{encoder: encoder}
}

// Encode encodes the given value as JSON
func (e *JSONEncoder) Encode(v interface{}) error {
	return e.encoder.Encode(v)
}

// YAMLEncoder provides YAML encoding
type YAMLEncoder struct {
	encoder *yaml.Encoder
}

// NewYAMLEncoder creates a new YAML encoder
func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	return &YAMLEncoder{encoder: encoder}
}

// Encode encodes the given value as YAML and flushes it
func (e *YAMLEncoder) Encode(v interface{}) error {
	if err := e.encoder.Encode(v); err != nil {
		return err
	}
	return e.encoder.Close()
}

// encode writes v as json or yaml
func encode(w io.Writer, format string, v interface{}) error {
	if format == "yaml" {
		return NewYAMLEncoder(w).Encode(v)
	}
	return NewJSONEncoder(w).Encode(v)
}
