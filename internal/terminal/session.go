// Package terminal interprets operator console command lines.
//
// A line is either a bare program name ("whoami") or a name followed by a
// parenthesized argument string ("generate_key(length:24, symbols:true)").
// Local programs render immediately; remote programs make one call through
// a Remote and render its result.
package terminal

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/quocvuong92/operator-console/internal/history"
	"github.com/quocvuong92/operator-console/internal/logging"
)

// Remote is the gateway as seen by the interpreter
type Remote interface {
	Ask(ctx context.Context, question string) (string, error)
	FindExit(ctx context.Context, url string) (string, error)
	GenerateCode(ctx context.Context, language, task string) (string, error)
	FabricateData(ctx context.Context, count int, schema json.RawMessage, format string) (string, error)
}

// DefaultTheme is reported when set_theme is called without a name
const DefaultTheme = "matrix_green"

// Options configures a Session
type Options struct {
	Renderer Renderer
	Remote   Remote
	// History defaults to a fresh in-memory buffer
	History history.Recorder
	Wait    WaitFunc
	// Theme is the theme the renderer starts with
	Theme string
	// Rand defaults to the auto-seeded global source
	Rand   *rand.Rand
	Logger *logging.Logger
}

// Session holds the state of one console: aliases, history and theme.
// Execute runs one line at a time.
type Session struct {
	mu       sync.Mutex
	renderer Renderer
	remote   Remote
	history  history.Recorder
	wait     WaitFunc
	rng      *rand.Rand
	logger   *logging.Logger
	aliases  map[string]string
	theme    string
}

// NewSession creates a session from opts. A nil Remote makes every remote
// program fail with an error line.
func NewSession(opts Options) *Session {
	s := &Session{
		renderer: opts.Renderer,
		remote:   opts.Remote,
		history:  opts.History,
		wait:     opts.Wait,
		rng:      opts.Rand,
		logger:   opts.Logger,
		aliases:  make(map[string]string),
		theme:    opts.Theme,
	}
	if s.history == nil {
		s.history = history.NewBuffer()
	}
	if s.logger == nil {
		s.logger = logging.DefaultLogger
	}
	return s
}

// Theme returns the active theme: the last set_theme argument, or the
// starting theme before any set_theme
func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Aliases returns a copy of the alias table
func (s *Session) Aliases() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.aliases))
	for k, v := range s.aliases {
		out[k] = v
	}
	return out
}

// History returns the recorder lines are added to
func (s *Session) History() history.Recorder {
	return s.history
}

// Execute runs one line. Blank lines are ignored. Every failure is
// rendered; Execute itself never fails.
func (s *Session) Execute(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Add(line)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Command panicked", fmt.Errorf("%v", r), logging.Fields{"line": line})
			s.errorf("> SYSTEM FAILURE: %v", r)
		}
	}()

	inv := Parse(line)
	if target, ok := s.aliases[inv.Name]; ok {
		s.renderf(StyleInfo, "> ALIAS DETECTED: Running '%s' for '%s'", target, inv.Name)
		inv.Name = target
	}

	s.logger.Debug("Dispatching command", logging.Fields{
		"command": inv.Name,
		"args":    inv.RawArgs,
	})
	s.dispatch(ctx, inv)
}

func (s *Session) dispatch(ctx context.Context, inv Invocation) {
	switch inv.Name {
	case "help":
		s.showHelp()
	case "clear":
		s.renderer.Clear()
	case "whoami":
		s.renderf(StyleResponse, "> You are The One, Neo.")
	case "wake_up":
		s.renderf(StyleInfo, "> Wake up, Neo... The Matrix has you...")
	case "set_theme":
		s.setTheme(inv.RawArgs)
	case "alias":
		s.addAlias(inv.RawArgs)
	case "history":
		s.showHistory()
	case "generate_key":
		s.generateKey(inv.RawArgs)
	case "process_data":
		s.processData(inv.RawArgs)
	case "ask":
		s.ask(ctx, inv.RawArgs)
	case "find_exit":
		s.findExit(ctx, inv.RawArgs)
	case "generate_code":
		s.generateCode(ctx, inv.RawArgs)
	case "fabricate_data":
		s.fabricateData(ctx, inv.RawArgs)
	default:
		s.errorf("'%s' is not a valid program, Neo.", inv.Name)
	}
}

func (s *Session) render(line Line) {
	s.renderer.Render(line)
}

func (s *Session) renderf(style Style, format string, args ...any) {
	s.render(Line{Text: fmt.Sprintf(format, args...), Style: style})
}

func (s *Session) errorf(format string, args ...any) {
	s.renderf(StyleError, format, args...)
}

func (s *Session) intN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}
