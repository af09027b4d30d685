package display

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress while a remote program runs
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner on stderr with the given suffix
func NewSpinner(message string) *Spinner {
	return newSpinner(os.Stderr, message)
}

func newSpinner(w io.Writer, message string) *Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("green")
	return &Spinner{s: s}
}

// Start starts the spinner. It does nothing when the output is not a terminal.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop stops the spinner and clears its line
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// Wait starts a spinner labelled for program and returns its stop func.
// It matches terminal.WaitFunc.
func Wait(program string) func() {
	sp := NewSpinner(waitMessage(program))
	sp.Start()
	return sp.Stop
}

func waitMessage(program string) string {
	switch program {
	case "ask":
		return "Awaiting the Oracle..."
	case "find_exit":
		return "Tracing..."
	case "generate_code":
		return "Compiling construct..."
	case "fabricate_data":
		return "Fabricating..."
	default:
		return "Working..."
	}
}
