package terminal

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// Character pools for generate_key
const (
	letterPool = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	numberPool = "0123456789"
	symbolPool = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

func (s *Session) showHelp() {
	s.renderf(StyleResponse, "Available Programs:")
	for _, p := range Programs {
		s.render(Line{Text: p.helpLine(), Style: StyleHelp})
	}
}

func (s *Session) setTheme(raw string) {
	theme := strings.TrimSpace(raw)
	s.theme = theme
	s.renderer.SetTheme(theme)

	name := theme
	if name == "" {
		name = DefaultTheme
	}
	s.renderf(StyleSystem, "> Theme set to: %s", name)
}

func (s *Session) addAlias(raw string) {
	shortcut, target, ok := ParseAlias(raw)
	if !ok {
		s.errorf("> USAGE: alias(shortcut, original_command)")
		return
	}
	s.aliases[strings.ToLower(shortcut)] = strings.ToLower(target)
	s.renderf(StyleSystem, "> Alias created: '%s' now runs '%s'", shortcut, target)
}

func (s *Session) showHistory() {
	for i, line := range s.history.Entries() {
		s.renderf(StyleResponse, "  %3d  %s", i+1, line)
	}
}

func (s *Session) generateKey(raw string) {
	opts, err := ParseKeyOptions(raw)
	if err != nil {
		s.errorf("> ERROR: %s", err.Error())
		return
	}
	s.render(Line{Text: s.GenerateKey(opts), Style: StyleResponse})
}

// GenerateKey draws opts.Length characters uniformly, with replacement,
// from the pool opts selects
func (s *Session) GenerateKey(opts KeyOptions) string {
	pool := letterPool
	if opts.Numbers {
		pool += numberPool
	}
	if opts.Symbols {
		pool += symbolPool
	}

	var b strings.Builder
	b.Grow(opts.Length)
	for i := 0; i < opts.Length; i++ {
		b.WriteByte(pool[s.intN(len(pool))])
	}
	return b.String()
}

// errUnsupportedProcess is returned for a mode:type pair ProcessText does
// not know
var errUnsupportedProcess = errors.New("Unsupported process.")

var errInvalidBase64 = errors.New("Invalid base64 input.")

func (s *Session) processData(raw string) {
	args, err := ParseProcessArgs(raw)
	if err != nil {
		s.errorf("> USAGE: process_data(mode:type, text:yourtext)")
		return
	}

	out, err := ProcessText(args)
	if err != nil {
		s.errorf("> ERROR: %s", err.Error())
		return
	}
	s.render(Line{Text: out, Style: StyleResponse})
}

// ProcessText hashes, encodes or decodes args.Text
func ProcessText(args ProcessArgs) (string, error) {
	switch {
	case args.Mode == "hash" && args.Type == "sha256":
		sum := sha256.Sum256([]byte(args.Text))
		return hex.EncodeToString(sum[:]), nil
	case args.Mode == "encode" && args.Type == "base64":
		return base64.StdEncoding.EncodeToString([]byte(args.Text)), nil
	case args.Mode == "decode" && args.Type == "base64":
		decoded, err := base64.StdEncoding.DecodeString(args.Text)
		if err != nil {
			return "", errInvalidBase64
		}
		return string(decoded), nil
	default:
		return "", errUnsupportedProcess
	}
}
