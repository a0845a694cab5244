package resources

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a metadata source file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder for path by its extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// decode parses a metadata document into entries, preserving the order in
// which resources appear. A repeated key keeps its first position and its
// last value.
func decode(data []byte, format Format) ([]Entry, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top level must be an object, got %v", tok)
	}

	var builder entryBuilder
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("resource %q: %w", name, err)
		}
		if err := builder.add(name, value); err != nil {
			return nil, err
		}
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}

	return builder.entries, nil
}

func decodeYAML(data []byte) ([]Entry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document")
		}
		return nil, err
	}
	var next yaml.Node
	if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("line %d: only one document is allowed", next.Line)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping", root.Line)
	}

	var builder entryBuilder
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if key.Kind != yaml.ScalarNode || key.ShortTag() != "!!str" {
			return nil, fmt.Errorf("line %d: resource name must be a string, got %s", key.Line, key.ShortTag())
		}
		name := key.Value

		var value any
		if err := root.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("resource %q: %w", name, err)
		}
		if err := builder.add(name, normalizeYAML(value)); err != nil {
			return nil, err
		}
	}

	return builder.entries, nil
}

// normalizeYAML rewrites map[any]any nodes, which yaml.v3 produces for
// mappings with non-string keys, into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeYAML(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalizeYAML(item)
		}
		return t
	default:
		return v
	}
}

type entryBuilder struct {
	entries []Entry
	index   map[string]int
}

func (b *entryBuilder) add(name string, value any) error {
	attrs, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("resource %q must be an object, got %T", name, value)
	}

	if b.index == nil {
		b.index = make(map[string]int)
	}
	if i, exists := b.index[name]; exists {
		b.entries[i].Record = Record(attrs)
		return nil
	}

	b.index[name] = len(b.entries)
	b.entries = append(b.entries, Entry{Name: name, Record: Record(attrs)})
	return nil
}
