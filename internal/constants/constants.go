// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout is the timeout for upstream language-model requests
	DefaultAPITimeout = 120 * time.Second
	// DefaultFetchTimeout is the timeout for fetching pages in find_exit
	DefaultFetchTimeout = 30 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown of the gateway
	DefaultShutdownTimeout = 10 * time.Second
	// DefaultReadHeaderTimeout guards the gateway against slow clients
	DefaultReadHeaderTimeout = 10 * time.Second
)

// Application defaults
const (
	DefaultProvider  = "groq"
	DefaultModel     = "llama3-8b-8192"
	DefaultPort      = 3000
	DefaultPublicDir = "public"
	DefaultServerURL = "http://localhost:3000"
	DefaultTheme     = "matrix_green"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Provider base URLs for OpenAI-compatible chat completion APIs
const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OpenAIBaseURL = "https://api.openai.com/v1"
)

// DefaultModels maps each provider to the model used when none is configured
var DefaultModels = map[string]string{
	"groq":   DefaultModel,
	"openai": "gpt-4o-mini",
	"gemini": "gemini-2.0-flash",
}

// Gateway limits
const (
	// MaxSummaryInput is the number of characters of page text sent for summarization
	MaxSummaryInput = 8000
	// MaxFetchBytes caps how much of a remote page is read
	MaxFetchBytes = 2 << 20
	// MaxRequestBytes caps gateway request bodies
	MaxRequestBytes = 1 << 20
	// MaxFabricateCount caps the number of records per fabricate_data call
	MaxFabricateCount = 1000
)
