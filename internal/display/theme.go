package display

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeName is used when no theme, or an unknown one, is requested
const DefaultThemeName = "matrix_green"

// Theme is a console palette
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Info     lipgloss.Color
	Response lipgloss.Color
	Error    lipgloss.Color
	Help     lipgloss.Color
	Border   lipgloss.Color
	// Glamour names the glamour standard style used for code blocks
	Glamour string
}

var themes = map[string]Theme{
	"matrix_green": {
		Name:     "matrix_green",
		Primary:  lipgloss.Color("#00FF41"),
		Info:     lipgloss.Color("#008F11"),
		Response: lipgloss.Color("#00FF41"),
		Error:    lipgloss.Color("#FF3B3B"),
		Help:     lipgloss.Color("#33FF77"),
		Border:   lipgloss.Color("#003B00"),
		Glamour:  "dark",
	},
	"amber": {
		Name:     "amber",
		Primary:  lipgloss.Color("#FFB000"),
		Info:     lipgloss.Color("#CC8400"),
		Response: lipgloss.Color("#FFC533"),
		Error:    lipgloss.Color("#FF5F1F"),
		Help:     lipgloss.Color("#FFD27F"),
		Border:   lipgloss.Color("#664200"),
		Glamour:  "dark",
	},
	"sentinel_blue": {
		Name:     "sentinel_blue",
		Primary:  lipgloss.Color("#00BFFF"),
		Info:     lipgloss.Color("#1E90FF"),
		Response: lipgloss.Color("#87CEFA"),
		Error:    lipgloss.Color("#FF4040"),
		Help:     lipgloss.Color("#B0E0FF"),
		Border:   lipgloss.Color("#0B3D91"),
		Glamour:  "dark",
	},
}

// LookupTheme returns the named theme. Unknown names fall back to the
// default palette and report false.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return themes[DefaultThemeName], false
	}
	return t, true
}

// ThemeNames lists the built-in themes, sorted
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
