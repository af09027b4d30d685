package fabricate

import (
	"bytes"
	"encoding/json"
)

// Value is one generated field
type Value struct {
	Name  string
	Value any
}

// Record is one generated object. It marshals as a JSON object with keys
// in schema order.
type Record []Value

// MarshalJSON implements json.Marshaler
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value of the named field
func (r Record) Get(name string) (any, bool) {
	for _, v := range r {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}

// Generate produces count records. Every path is resolved before anything
// is generated, so an unknown path fails the whole call.
func (r *Registry) Generate(schema Schema, count int) ([]Record, error) {
	gens := make([]Generator, len(schema))
	for i, f := range schema {
		g, err := r.Lookup(f.Path)
		if err != nil {
			return nil, err
		}
		gens[i] = g
	}

	records := make([]Record, 0, count)
	for n := 0; n < count; n++ {
		rec := make(Record, len(schema))
		for i, f := range schema {
			rec[i] = Value{Name: f.Name, Value: r.draw(gens[i])}
		}
		records = append(records, rec)
	}
	return records, nil
}
