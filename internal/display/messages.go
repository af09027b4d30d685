package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3B3B")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB000"))
)

// stderr is where status messages go; tests swap it
var stderr io.Writer = os.Stderr

// ShowError prints an error message to stderr
func ShowError(msg string) {
	fmt.Fprintln(stderr, errorStyle.Render("Error: "+msg))
}

// ShowWarning prints a warning message to stderr
func ShowWarning(msg string) {
	fmt.Fprintln(stderr, warningStyle.Render("Warning: "+msg))
}
