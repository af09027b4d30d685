// Package remote is the console's HTTP client for the gateway
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/quocvuong92/operator-console/internal/constants"
	"github.com/quocvuong92/operator-console/internal/logging"
	"github.com/quocvuong92/operator-console/internal/protocol"
)

// APIError is a failure reported by the gateway. Message is the gateway's
// error field when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client issues one POST per remote command. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessionID  string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithDebugLogging logs every request and response through logger
func WithDebugLogging(logger *logging.Logger) Option {
	return func(c *Client) {
		c.httpClient.Transport = logging.NewLoggingRoundTripper(c.httpClient.Transport, logging.NewHTTPLogger(logger), true)
	}
}

// New creates a client for the gateway at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: constants.DefaultAPITimeout},
		sessionID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the gateway address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ask sends a question to the Oracle
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var resp protocol.AskResponse
	if err := c.post(ctx, protocol.PathAsk, protocol.AskRequest{Question: question}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// FindExit asks the gateway to summarize the page at url
func (c *Client) FindExit(ctx context.Context, url string) (string, error) {
	var resp protocol.FindExitResponse
	if err := c.post(ctx, protocol.PathFindExit, protocol.FindExitRequest{URL: url}, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// GenerateCode requests a code snippet
func (c *Client) GenerateCode(ctx context.Context, language, task string) (string, error) {
	var resp protocol.GenerateCodeResponse
	req := protocol.GenerateCodeRequest{Language: language, Task: task}
	if err := c.post(ctx, protocol.PathGenerateCode, req, &resp); err != nil {
		return "", err
	}
	return resp.Code, nil
}

// FabricateData requests synthetic records. schema must be a JSON object.
func (c *Client) FabricateData(ctx context.Context, count int, schema json.RawMessage, format string) (string, error) {
	req := protocol.FabricateRequest{Count: protocol.NewCount(count), Schema: schema, Format: format}

	var resp protocol.FabricateResponse
	if err := c.post(ctx, protocol.PathFabricateData, req, &resp); err != nil {
		return "", err
	}
	return resp.Data, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Operator-Session", c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("no carrier signal from %s: %w", c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope protocol.ErrorResponse
	_ = json.Unmarshal(data, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("gateway returned %s", resp.Status)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if envelope.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
