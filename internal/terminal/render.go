package terminal

// Style classifies a rendered line
type Style int

const (
	// StyleSystem is plain console output
	StyleSystem Style = iota
	// StyleInfo announces work in progress
	StyleInfo
	// StyleResponse carries a command's result
	StyleResponse
	// StyleError carries a failure
	StyleError
	// StyleHelp is one row of the program catalog
	StyleHelp
)

// Line is one unit of interpreter output
type Line struct {
	Text  string
	Style Style
	// Code marks Text as a code block; Lang names its language when known
	Code bool
	Lang string
}

// Renderer draws interpreter output. Implementations decide how themes and
// styles look.
type Renderer interface {
	Render(line Line)
	// Clear wipes everything rendered so far
	Clear()
	// SetTheme switches the palette; an empty name selects the default
	SetTheme(name string)
}

// WaitFunc is called before a remote call starts; the returned func is
// called when it finishes
type WaitFunc func(label string) (stop func())
