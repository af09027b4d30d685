package terminal

import "strings"

// Invocation is one parsed command line
type Invocation struct {
	// Name is the lower-cased text before the first '('
	Name string
	// RawArgs is the text between the first '(' and the last ')'
	RawArgs string
	// HasParens reports whether the line contained a '('
	HasParens bool
}

// Parse splits a line into a command name and its raw argument text.
// Without a '(' the arguments are empty. A '(' with no later ')' takes the
// rest of the line as arguments.
func Parse(line string) Invocation {
	line = strings.TrimSpace(line)

	open := strings.IndexByte(line, '(')
	if open < 0 {
		return Invocation{Name: strings.ToLower(line)}
	}

	inv := Invocation{
		Name:      strings.ToLower(strings.TrimSpace(line[:open])),
		HasParens: true,
	}
	rest := line[open+1:]
	if closing := strings.LastIndexByte(rest, ')'); closing >= 0 {
		inv.RawArgs = rest[:closing]
	} else {
		inv.RawArgs = rest
	}
	return inv
}
