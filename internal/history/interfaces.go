// Package history keeps the lines submitted during one console session.
// Nothing is persisted; a new session starts empty.
package history

// Recorder defines the interface the interpreter uses to record and list
// submitted lines. This interface enables dependency injection and easier
// testing.
type Recorder interface {
	// Add appends a submitted line; blank lines are ignored
	Add(line string)

	// Entries returns a copy of every line in submission order
	Entries() []string

	// Len returns the number of recorded lines
	Len() int
}

// Ensure concrete type implements the interface
var _ Recorder = (*Buffer)(nil)
