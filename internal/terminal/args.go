package terminal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// token is one key:value pair from an argument string. Bare words have an
// empty Key.
type token struct {
	Key    string
	Value  string
	Quoted bool
}

// scanTokens splits raw into key:value tokens separated by commas or
// whitespace. A value may be bare, double-quoted, or a brace-balanced
// {...} block; quotes inside a block do not end it.
func scanTokens(raw string) []token {
	var tokens []token
	i := 0
	for i < len(raw) {
		for i < len(raw) && isSeparator(raw[i]) {
			i++
		}
		if i >= len(raw) {
			break
		}

		start := i
		for i < len(raw) && raw[i] != ':' && !isSeparator(raw[i]) {
			i++
		}
		word := raw[start:i]
		if i >= len(raw) || raw[i] != ':' {
			tokens = append(tokens, token{Value: word})
			continue
		}

		i++ // ':'
		for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
			i++
		}
		tok := token{Key: strings.ToLower(word)}
		tok.Value, tok.Quoted, i = scanValue(raw, i)
		tokens = append(tokens, tok)
	}
	return tokens
}

func scanValue(raw string, i int) (value string, quoted bool, next int) {
	if i >= len(raw) {
		return "", false, i
	}

	switch raw[i] {
	case '"':
		end := strings.IndexByte(raw[i+1:], '"')
		if end < 0 {
			return raw[i+1:], false, len(raw)
		}
		return raw[i+1 : i+1+end], true, i + end + 2
	case '{':
		end := matchBrace(raw, i)
		if end < 0 {
			return raw[i:], false, len(raw)
		}
		return raw[i : end+1], false, end + 1
	default:
		start := i
		for i < len(raw) && !isSeparator(raw[i]) {
			i++
		}
		return raw[start:i], false, i
	}
}

// matchBrace returns the index of the '}' closing the '{' at open, or -1
func matchBrace(raw string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isSeparator(c byte) bool {
	return c == ',' || c == ' ' || c == '\t' || c == '\n'
}

// lookup returns the first token with key
func lookup(tokens []token, key string) (token, bool) {
	for _, t := range tokens {
		if t.Key == key {
			return t, true
		}
	}
	return token{}, false
}

// stripQuotes removes one pair of surrounding double quotes
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Key generation bounds
const (
	DefaultKeyLength = 16
	MaxKeyLength     = 1024
)

var errKeyLength = fmt.Errorf("Key length must be between 1 and %d.", MaxKeyLength)

// KeyOptions are the generate_key arguments
type KeyOptions struct {
	Length  int
	Symbols bool
	Numbers bool
}

// ParseKeyOptions reads length:<n>, symbols:true and numbers:true
func ParseKeyOptions(raw string) (KeyOptions, error) {
	opts := KeyOptions{Length: DefaultKeyLength}
	tokens := scanTokens(raw)

	if t, ok := lookup(tokens, "length"); ok {
		n, err := strconv.Atoi(t.Value)
		if err != nil || n < 1 || n > MaxKeyLength {
			return opts, errKeyLength
		}
		opts.Length = n
	}
	if t, ok := lookup(tokens, "symbols"); ok {
		opts.Symbols = strings.EqualFold(t.Value, "true")
	}
	if t, ok := lookup(tokens, "numbers"); ok {
		opts.Numbers = strings.EqualFold(t.Value, "true")
	}
	return opts, nil
}

// errProcessUsage is returned when process_data lacks its mode or text
var errProcessUsage = errors.New("missing mode or text")

// ProcessArgs are the process_data arguments
type ProcessArgs struct {
	Mode string
	Type string
	Text string
}

// ParseProcessArgs finds the mode:type token and the text, which runs to
// the end of the arguments. Surrounding double quotes on text are removed.
func ParseProcessArgs(raw string) (ProcessArgs, error) {
	head := raw
	var args ProcessArgs
	hasText := false

	if idx := strings.Index(strings.ToLower(raw), "text:"); idx >= 0 {
		text := strings.TrimSpace(raw[idx+len("text:"):])
		if text != "" {
			hasText = true
			args.Text = stripQuotes(text)
		}
		head = raw[:idx]
	}

	for _, t := range scanTokens(head) {
		if t.Key != "" && t.Value != "" {
			args.Mode = t.Key
			args.Type = strings.ToLower(t.Value)
			break
		}
	}

	if args.Mode == "" || !hasText {
		return args, errProcessUsage
	}
	return args, nil
}

// errInvalidSyntax is rendered for generate_code without both quoted values
var errInvalidSyntax = errors.New("Invalid syntax.")

// CodeArgs are the generate_code arguments
type CodeArgs struct {
	Language string
	Task     string
}

// ParseCodeArgs reads lang:"..." and task:"..."; both must be quoted and
// non-empty
func ParseCodeArgs(raw string) (CodeArgs, error) {
	tokens := scanTokens(raw)
	lang, okLang := lookup(tokens, "lang")
	task, okTask := lookup(tokens, "task")
	if !okLang || !okTask || !lang.Quoted || !task.Quoted || lang.Value == "" || task.Value == "" {
		return CodeArgs{}, errInvalidSyntax
	}
	return CodeArgs{Language: lang.Value, Task: task.Value}, nil
}

// FabricateArgs are the fabricate_data arguments. Schema is JSON with single
// quotes already normalized.
type FabricateArgs struct {
	Count  int
	Schema string
	Format string
}

var (
	errSchemaRequired = errors.New("A schema object is required.")
	errSchemaInvalid  = errors.New("Schema is not valid JSON.")
	errCountInvalid   = errors.New("Count must be a whole number.")
)

// ParseFabricateArgs reads schema:{...}, count:<n> and format:<word>
func ParseFabricateArgs(raw string) (FabricateArgs, error) {
	args := FabricateArgs{Count: 1}
	tokens := scanTokens(raw)

	t, ok := lookup(tokens, "schema")
	if !ok || !strings.HasPrefix(t.Value, "{") {
		return args, errSchemaRequired
	}
	if !strings.HasSuffix(t.Value, "}") {
		return args, errSchemaInvalid
	}
	args.Schema = strings.ReplaceAll(t.Value, "'", `"`)
	if !validJSONObject(args.Schema) {
		return args, errSchemaInvalid
	}

	if t, ok := lookup(tokens, "count"); ok {
		n, err := strconv.Atoi(t.Value)
		if err != nil {
			return args, errCountInvalid
		}
		args.Count = n
	}
	if t, ok := lookup(tokens, "format"); ok {
		args.Format = strings.ToLower(t.Value)
	}
	return args, nil
}

func validJSONObject(s string) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &obj) == nil
}

// ParseAlias reads exactly two comma-separated bare names
func ParseAlias(raw string) (shortcut, target string, ok bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	shortcut = strings.TrimSpace(parts[0])
	target = strings.TrimSpace(parts[1])
	if !isBareName(shortcut) || !isBareName(target) {
		return "", "", false
	}
	return shortcut, target, true
}

func isBareName(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, " \t()\"'")
}
