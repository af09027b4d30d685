package fabricate

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// ErrUnsupportedFormat is returned for formats other than json, yaml and csv
var ErrUnsupportedFormat = errors.New("unsupported format. Use 'json', 'yaml', or 'csv'")

// NormalizeFormat lower-cases format and maps empty to json
func NormalizeFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode serializes records. JSON is a 2-space indented array; CSV writes
// a header row of the schema's field names.
func Encode(records []Record, schema Schema, format string) (string, error) {
	f, err := NormalizeFormat(format)
	if err != nil {
		return "", err
	}
	if records == nil {
		records = []Record{}
	}

	switch f {
	case FormatYAML:
		return encodeYAML(records)
	case FormatCSV:
		return encodeCSV(records, schema)
	default:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode json: %w", err)
		}
		return string(data), nil
	}
}

func encodeYAML(records []Record) (string, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, rec := range records {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, v := range rec {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Name}
			val := &yaml.Node{}
			if err := val.Encode(v.Value); err != nil {
				return "", fmt.Errorf("failed to encode yaml value %q: %w", v.Name, err)
			}
			m.Content = append(m.Content, key, val)
		}
		seq.Content = append(seq.Content, m)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func encodeCSV(records []Record, schema Schema) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(schema.Names()); err != nil {
		return "", fmt.Errorf("failed to encode csv: %w", err)
	}
	for _, rec := range records {
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = fmt.Sprint(v.Value)
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to encode csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to encode csv: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
