// Package protocol defines the JSON bodies exchanged between the console
// and the gateway.
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Endpoint paths
const (
	PathAsk           = "/api/ask"
	PathFindExit      = "/api/find_exit"
	PathGenerateCode  = "/api/generate_code"
	PathFabricateData = "/api/fabricate_data"
	PathHealth        = "/healthz"
)

// AskRequest is the body of POST /api/ask
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the Oracle's answer
type AskResponse struct {
	Answer string `json:"answer"`
}

// FindExitRequest is the body of POST /api/find_exit
type FindExitRequest struct {
	URL string `json:"url"`
}

// FindExitResponse carries the page summary
type FindExitResponse struct {
	Summary string `json:"summary"`
}

// GenerateCodeRequest is the body of POST /api/generate_code
type GenerateCodeRequest struct {
	Language string `json:"language"`
	Task     string `json:"task"`
}

// GenerateCodeResponse carries the generated snippet
type GenerateCodeResponse struct {
	Code string `json:"code"`
}

// FabricateRequest is the body of POST /api/fabricate_data. Schema is kept
// raw because it may be an object or a string holding one.
type FabricateRequest struct {
	Count  *Count          `json:"count,omitempty"`
	Schema json.RawMessage `json:"schema,omitempty"`
	Format string          `json:"format,omitempty"`
}

// FabricateResponse carries the serialized records
type FabricateResponse struct {
	Data string `json:"data"`
}

// ErrorResponse is the failure envelope for every endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status string `json:"status"`
}

// Count accepts a JSON number or a numeric string, since browser clients
// send whatever their regex captured. An empty string means no count was
// given.
type Count struct {
	n   int
	set bool
}

// NewCount returns a count holding n
func NewCount(n int) *Count {
	return &Count{n: n, set: true}
}

// MarshalJSON implements json.Marshaler
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(c.n), 10), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return fmt.Errorf("count must be a whole number, got %s", string(data))
		}
		n = int(f)
	}
	*c = Count{n: n, set: true}
	return nil
}

// Value returns the count, or def when none was sent
func (c *Count) Value(def int) int {
	if c == nil || !c.set {
		return def
	}
	return c.n
}
