package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/operator-console/internal/config"
	"github.com/quocvuong92/operator-console/internal/display"
	"github.com/quocvuong92/operator-console/internal/gateway"
	"github.com/quocvuong92/operator-console/internal/logging"
	"github.com/quocvuong92/operator-console/internal/terminal"
)

// isolate clears config variables and moves the test into an empty
// directory with its own HOME
func isolate(t *testing.T) string {
	t.Helper()
	for _, env := range []string{
		config.EnvGroqAPIKey, config.EnvOpenAIAPIKey, config.EnvGeminiAPIKey,
		config.EnvProvider, config.EnvModel, config.EnvBaseURL,
		config.EnvPort, config.EnvPublicDir,
		config.EnvServerURL, config.EnvTheme,
		config.EnvLogLevel, config.EnvLogFormat,
	} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func newTestApp() (*App, *bytes.Buffer) {
	var out bytes.Buffer
	app := NewApp()
	app.out = &out
	app.wait = nil
	return app, &out
}

func runRoot(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

type staticCompleter struct {
	answer string
}

func (c staticCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return c.answer, nil
}

func TestOneShot_LocalProgram(t *testing.T) {
	isolate(t)
	app, out := newTestApp()

	require.NoError(t, runRoot(t, app, "whoami"))
	assert.Contains(t, out.String(), "> You are The One, Neo.")
}

func TestOneShot_RemoteProgram(t *testing.T) {
	isolate(t)

	gw := gateway.New(gateway.Options{
		Completer: staticCompleter{answer: "There is no spoon."},
		Logger:    logging.New(logging.Options{Level: logging.LevelNone}),
	})
	srv := httptest.NewServer(gw.Handler())
	defer srv.Close()

	app, out := newTestApp()
	require.NoError(t, runRoot(t, app, "--server", srv.URL, `ask("Is the spoon real?")`))

	assert.Contains(t, out.String(), "Contacting the Oracle...")
	assert.Contains(t, out.String(), "There is no spoon.")
}

func TestNewSession_StartsWithConsoleTheme(t *testing.T) {
	tests := []struct {
		theme string
		want  string
	}{
		{"amber", "amber"},
		{"", display.DefaultThemeName},
		{"neon_pink", display.DefaultThemeName},
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.theme, func(t *testing.T) {
			app, out := newTestApp()
			app.cfg.Theme = tt.theme
			console := display.NewConsole(display.Options{Output: out, Theme: tt.theme})

			session := app.newSession(console)
			assert.Equal(t, tt.want, session.Theme())
		})
	}
}

func TestOneShot_NoGateway(t *testing.T) {
	isolate(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := "http://" + ln.Addr().String()
	ln.Close()

	app, out := newTestApp()
	require.NoError(t, runRoot(t, app, "--server", url, "ask(hello)"))
	assert.Contains(t, out.String(), "> ORACLE ERROR: no carrier signal from "+url)
}

func TestOneShot_InvalidProviderFails(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvProvider, "skynet")

	app, _ := newTestApp()
	err := runRoot(t, app, "whoami")
	assert.ErrorIs(t, err, config.ErrInvalidProvider)
}

func TestServe_RequiresAPIKey(t *testing.T) {
	isolate(t)
	app, out := newTestApp()

	err := runRoot(t, app, "serve", "--port", "0")
	require.ErrorIs(t, err, config.ErrAPIKeyNotFound)
	assert.Contains(t, err.Error(), config.EnvGroqAPIKey)
	assert.NotContains(t, out.String(), "listening")
}

func TestServe_AnswersAndShutsDown(t *testing.T) {
	isolate(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Follow the white rabbit."}}]}`))
	}))
	defer upstream.Close()

	t.Setenv(config.EnvGroqAPIKey, "gsk-test")
	app, out := newTestApp()
	app.cfg.BaseURL = upstream.URL
	app.cfg.LogLevel = "none"

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Post("http://"+ln.Addr().String()+"/api/ask", "application/json", strings.NewReader(`{"question":"Where now?"}`))
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, "Follow the white rabbit.", body["answer"])

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}

	banner := out.String()
	assert.Contains(t, banner, "Operator, the server is listening on port ")
	assert.Contains(t, banner, ">> CONNECTION ESTABLISHED WITH GROQ NETWORK <<")
	assert.Contains(t, banner, "port "+strconv.Itoa(port))
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	app, out := newTestApp()

	require.NoError(t, runRoot(t, app, "config", "init"))

	path := filepath.Join(dir, "xdg", "operator", "config.yaml")
	assert.Contains(t, out.String(), path)
	_, err := os.Stat(path)
	assert.NoError(t, err)

	assert.Error(t, runRoot(t, app, "config", "init"), "existing file must not be overwritten")
}

func TestConsoleSession_Executor(t *testing.T) {
	var buf bytes.Buffer
	console := display.NewConsole(display.Options{Output: &buf})
	s := &ConsoleSession{
		ctx:     context.Background(),
		session: terminal.NewSession(terminal.Options{Renderer: console}),
	}

	s.executor("   ")
	s.executor("wake_up")
	assert.Contains(t, buf.String(), "> Wake up, Neo... The Matrix has you...")
	assert.False(t, s.exitFlag)
	assert.Equal(t, 1, s.session.History().Len())

	s.executor("EXIT")
	assert.True(t, s.exitFlag)

	s.executor("whoami")
	assert.NotContains(t, buf.String(), "The One", "lines after exit are ignored")
}

func TestProgramSuggestions(t *testing.T) {
	suggestions := programSuggestions()
	require.Len(t, suggestions, len(terminal.Programs)+1)

	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = s.Text
	}
	for _, want := range []string{"help", "ask", "fabricate_data", "history", "exit"} {
		assert.Contains(t, names, want)
	}
}
