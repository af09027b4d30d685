package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/google/uuid"

	"github.com/quocvuong92/operator-console/internal/constants"
	"github.com/quocvuong92/operator-console/internal/display"
	"github.com/quocvuong92/operator-console/internal/logging"
	"github.com/quocvuong92/operator-console/internal/terminal"
)

// ConsoleSession holds the state for one interactive console
type ConsoleSession struct {
	ctx       context.Context
	session   *terminal.Session
	exitFlag  bool
	sessionID string
}

// exitWords end the console; they are not interpreter programs
var exitWords = map[string]bool{"exit": true, "quit": true, "logout": true}

// completer suggests program names while the first word is typed, and
// theme names inside set_theme(
func (s *ConsoleSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	if strings.HasPrefix(strings.ToLower(text), "set_theme(") {
		prefix := strings.TrimPrefix(strings.ToLower(text), "set_theme(")
		var suggestions []prompt.Suggest
		for _, name := range display.ThemeNames() {
			suggestions = append(suggestions, prompt.Suggest{Text: name})
		}
		start := endIndex - istrings.RuneCountInString(prefix)
		return prompt.FilterHasPrefix(suggestions, prefix, true), start, endIndex
	}

	// Only complete the program name
	if strings.ContainsAny(text, "( ") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	return prompt.FilterHasPrefix(programSuggestions(), w, true), startIndex, endIndex
}

func programSuggestions() []prompt.Suggest {
	suggestions := make([]prompt.Suggest, 0, len(terminal.Programs)+1)
	for _, p := range terminal.Programs {
		suggestions = append(suggestions, prompt.Suggest{Text: p.Name, Description: p.Description})
	}
	return append(suggestions, prompt.Suggest{Text: "exit", Description: "Leaves the console"})
}

// runConsole types the boot sequence and starts the REPL. It returns when
// the operator exits.
func (app *App) runConsole(ctx context.Context, console *display.Console, session *terminal.Session) error {
	if !app.cfg.NoBoot {
		if err := console.Boot(ctx, display.TypeDelay); err != nil {
			return err
		}
	}

	s := &ConsoleSession{
		ctx:       ctx,
		session:   session,
		sessionID: uuid.New().String(),
	}
	logging.Debug("Console session started", logging.Fields{"session_id": s.sessionID})

	p := prompt.New(
		s.executor,
		prompt.WithCompleter(s.completer),
		prompt.WithPrefix("> "),
		prompt.WithTitle("Operator Console"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkGreen),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Green),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkGreen),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Green),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(15),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return s.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println("\nDisconnected.")
				s.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Disconnected.")
					s.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
	logging.Debug("Console session ended", logging.Fields{
		"session_id": s.sessionID,
		"commands":   session.History().Len(),
	})
	return nil
}

// executor runs each submitted line through the interpreter
func (s *ConsoleSession) executor(input string) {
	if s.exitFlag {
		return
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}
	if exitWords[strings.ToLower(input)] {
		fmt.Println("Disconnected.")
		s.exitFlag = true
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, constants.DefaultAPITimeout)
	defer cancel()
	s.session.Execute(ctx, input)
}
