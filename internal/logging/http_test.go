package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRoundTripper_LogsAndPreservesBodies(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer upstream.Close()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	client := &http.Client{
		Transport: NewLoggingRoundTripper(nil, NewHTTPLogger(logger), true),
	}

	req, _ := http.NewRequest(http.MethodPost, upstream.URL, strings.NewReader(`{"model":"m","api_key":"shh"}`))
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	echoed, _ := io.ReadAll(resp.Body)
	if string(echoed) != `{"model":"m","api_key":"shh"}` {
		t.Errorf("response body altered: %s", echoed)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var reqEntry LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &reqEntry); err != nil {
		t.Fatal(err)
	}
	headers := reqEntry.Fields["headers"].(map[string]interface{})
	if headers["Authorization"] != "[REDACTED]" {
		t.Errorf("Authorization header not redacted: %v", headers["Authorization"])
	}
	body := reqEntry.Fields["body"].(map[string]interface{})
	if body["api_key"] != "[REDACTED]" {
		t.Errorf("api_key not redacted in request body: %v", body["api_key"])
	}

	var respEntry LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &respEntry); err != nil {
		t.Fatal(err)
	}
	if respEntry.Fields["status"] != float64(200) {
		t.Errorf("status = %v, want 200", respEntry.Fields["status"])
	}
}

func TestMiddleware_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	var seen string
	h := Middleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", nil))

	id := rec.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("response should carry a request id")
	}
	if seen != id {
		t.Errorf("context id = %q, header id = %q", seen, id)
	}

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("access log is not JSON: %v", err)
	}
	if entry.Fields["status"] != float64(http.StatusTeapot) {
		t.Errorf("status = %v, want %d", entry.Fields["status"], http.StatusTeapot)
	}
	if entry.Fields["path"] != "/api/ask" {
		t.Errorf("path = %v", entry.Fields["path"])
	}
}

func TestMiddleware_ReusesIncomingID(t *testing.T) {
	logger := New(Options{Level: LevelNone})
	h := Middleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want %q", got, "abc-123")
	}
}
