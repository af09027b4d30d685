package fabricate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchema is returned for schemas that are not an object of
// field name to generator path
var ErrInvalidSchema = errors.New("invalid schema")

// Field is one schema entry
type Field struct {
	Name string
	Path string
}

// Schema is an ordered list of fields, in the order they were written
type Schema []Field

// Names returns the field names in schema order
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// ParseSchema accepts either a JSON object or a JSON string holding one.
// Inside a string, single quotes are normalized to double quotes first.
func ParseSchema(raw json.RawMessage) (Schema, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSchema)
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
		}
		return ParseSchemaString(s)
	}
	return parseObject(raw)
}

// ParseSchemaString parses schema text as typed at the console, where
// single-quoted JSON is common
func ParseSchemaString(s string) (Schema, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "'", `"`)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSchema)
	}
	return parseObject([]byte(s))
}

// parseObject walks the tokens so field order survives decoding
func parseObject(data []byte) (Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidSchema)
	}

	var schema Schema
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
		}
		name := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
		}
		path, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q must be a generator path string", ErrInvalidSchema, name)
		}

		// A repeated key keeps its first position and its last value
		if i, seen := index[name]; seen {
			schema[i].Path = path
			continue
		}
		index[name] = len(schema)
		schema = append(schema, Field{Name: name, Path: path})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidSchema)
	}
	return schema, nil
}
