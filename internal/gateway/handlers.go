package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quocvuong92/operator-console/internal/constants"
	"github.com/quocvuong92/operator-console/internal/fabricate"
	"github.com/quocvuong92/operator-console/internal/logging"
	"github.com/quocvuong92/operator-console/internal/protocol"
)

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req protocol.AskRequest
	if !s.decode(w, r, &req) {
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, msgQuestionRequired)
		return
	}

	answer, err := s.completer.Complete(r.Context(), oraclePrompt, question)
	if err != nil {
		s.upstreamFailed(w, r, "ask", err, msgOracleLost)
		return
	}
	writeJSON(w, http.StatusOK, protocol.AskResponse{Answer: answer})
}

func (s *Server) handleFindExit(w http.ResponseWriter, r *http.Request) {
	var req protocol.FindExitRequest
	if !s.decode(w, r, &req) {
		return
	}
	target := strings.TrimSpace(req.URL)
	if target == "" {
		writeError(w, http.StatusBadRequest, msgURLRequired)
		return
	}

	text, err := s.fetcher.Summarizable(r.Context(), target)
	if err != nil {
		s.upstreamFailed(w, r, "find_exit", err, msgExitPathFailed)
		return
	}

	summary, err := s.completer.Complete(r.Context(), operatorSummaryPrompt, text)
	if err != nil {
		s.upstreamFailed(w, r, "find_exit", err, msgExitPathFailed)
		return
	}
	writeJSON(w, http.StatusOK, protocol.FindExitResponse{Summary: summary})
}

func (s *Server) handleGenerateCode(w http.ResponseWriter, r *http.Request) {
	var req protocol.GenerateCodeRequest
	if !s.decode(w, r, &req) {
		return
	}
	language := strings.TrimSpace(req.Language)
	task := strings.TrimSpace(req.Task)
	if language == "" || task == "" {
		writeError(w, http.StatusBadRequest, msgCodeRequired)
		return
	}

	code, err := s.completer.Complete(r.Context(), architectPrompt, codeTaskMessage(language, task))
	if err != nil {
		s.upstreamFailed(w, r, "generate_code", err, msgToolboxFailed)
		return
	}
	writeJSON(w, http.StatusOK, protocol.GenerateCodeResponse{Code: stripCodeFence(code)})
}

func (s *Server) handleFabricateData(w http.ResponseWriter, r *http.Request) {
	var req protocol.FabricateRequest
	if !s.decode(w, r, &req) {
		return
	}
	raw := bytes.TrimSpace(req.Schema)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`)) {
		writeError(w, http.StatusBadRequest, msgSchemaRequired)
		return
	}

	count := req.Count.Value(1)
	if count < 0 || count > constants.MaxFabricateCount {
		writeError(w, http.StatusBadRequest, fmt.Sprintf(msgCountRange, constants.MaxFabricateCount))
		return
	}

	format, err := fabricate.NormalizeFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgUnsupportedFmt)
		return
	}

	schema, err := fabricate.ParseSchema(raw)
	if err != nil {
		s.fabricationFailed(w, r, err)
		return
	}
	records, err := s.registry.Generate(schema, count)
	if err != nil {
		s.fabricationFailed(w, r, err)
		return
	}
	data, err := fabricate.Encode(records, schema, format)
	if err != nil {
		s.fabricationFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, protocol.FabricateResponse{Data: data})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, protocol.HealthResponse{Status: "ok"})
}

// decode reads a JSON body into dst. An empty body decodes as {} so the
// handler reports the missing field instead of a parse error.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
			return false
		}
		writeError(w, http.StatusBadRequest, msgMalformedBody)
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		s.requestLogger(r).Debug("Rejected request body", logging.Fields{"reason": err.Error()})
		writeError(w, http.StatusBadRequest, msgMalformedBody)
		return false
	}
	return true
}

// requestLogger tags entries with the request path and id
func (s *Server) requestLogger(r *http.Request) *logging.FieldLogger {
	return s.logger.WithFields(logging.Fields{
		"path":       r.URL.Path,
		"request_id": logging.RequestIDFromContext(r.Context()),
	})
}

func (s *Server) upstreamFailed(w http.ResponseWriter, r *http.Request, endpoint string, err error, msg string) {
	s.requestLogger(r).Error("Upstream call failed", err, logging.Fields{"endpoint": endpoint})
	writeError(w, http.StatusInternalServerError, msg)
}

func (s *Server) fabricationFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.requestLogger(r).Warn("Data fabrication failed", logging.Fields{"reason": err.Error()})
	writeError(w, http.StatusInternalServerError, msgFabricateFailed)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, protocol.ErrorResponse{Error: msg})
}

// stripCodeFence removes one surrounding markdown fence
func stripCodeFence(code string) string {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, "```") || !strings.HasSuffix(code, "```") || len(code) < 6 {
		return code
	}
	inner := strings.TrimSuffix(code[3:], "```")
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		// drop the info string, e.g. ```python
		inner = inner[nl+1:]
	} else {
		inner = ""
	}
	return strings.TrimSpace(inner)
}
