// Package api provides the upstream language-model clients used by the
// gateway.
//
// # Clients
//
//   - client.go: Completer interface, APIError and the NewClient factory
//   - chat.go: OpenAI-compatible chat completions client (Groq, OpenAI)
//   - gemini.go: Gemini client on google.golang.org/genai
//
// Every call is a single request. Failures come back as *APIError when the
// provider answered with an error status, or as a wrapped transport error.
//
// # Usage
//
//	cfg := config.NewConfig()
//	if err := cfg.Validate(); err != nil {
//	    // handle error
//	}
//	client, err := api.NewClient(ctx, cfg)
//	if err != nil {
//	    // handle error
//	}
//	answer, err := client.Complete(ctx, systemPrompt, question)
package api
