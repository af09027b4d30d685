// Package display draws interpreter output on a terminal: themed lines,
// code blocks, the boot sequence and a spinner for remote calls.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/quocvuong92/operator-console/internal/terminal"
)

const (
	// clearScreen moves the cursor home and erases the display
	clearScreen   = "\033[H\033[2J"
	codeWrapWidth = 100
)

// Options configures a Console
type Options struct {
	// Output defaults to os.Stdout
	Output io.Writer
	Theme  string
	// Markdown renders code blocks through glamour
	Markdown bool
	// GlamourStyle overrides the theme's glamour style
	GlamourStyle string
}

// Console renders terminal lines with a lipgloss palette
type Console struct {
	mu           sync.Mutex
	out          io.Writer
	lg           *lipgloss.Renderer
	theme        Theme
	markdown     bool
	glamourStyle string
	md           *glamour.TermRenderer
}

// Ensure Console implements the renderer the interpreter draws through
var _ terminal.Renderer = (*Console)(nil)

// NewConsole creates a console writing to opts.Output
func NewConsole(opts Options) *Console {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	theme, _ := LookupTheme(opts.Theme)
	return &Console{
		out:          opts.Output,
		lg:           lipgloss.NewRenderer(opts.Output),
		theme:        theme,
		markdown:     opts.Markdown,
		glamourStyle: opts.GlamourStyle,
	}
}

// Theme returns the active palette
func (c *Console) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// SetTheme switches palettes. Unknown names select the default.
func (c *Console) SetTheme(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme, _ = LookupTheme(name)
	c.md = nil
}

// Clear erases the terminal
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, clearScreen)
}

// Render draws one line
func (c *Console) Render(line terminal.Line) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line.Code {
		_, _ = io.WriteString(c.out, c.codeBlock(line))
		return
	}
	fmt.Fprintln(c.out, c.style(line.Style).Render(line.Text))
}

func (c *Console) style(s terminal.Style) lipgloss.Style {
	st := c.lg.NewStyle()
	switch s {
	case terminal.StyleInfo:
		return st.Foreground(c.theme.Info).Italic(true)
	case terminal.StyleResponse:
		return st.Foreground(c.theme.Response)
	case terminal.StyleError:
		return st.Foreground(c.theme.Error).Bold(true)
	case terminal.StyleHelp:
		return st.Foreground(c.theme.Help)
	default:
		return st.Foreground(c.theme.Primary)
	}
}

// codeBlock renders code through glamour when enabled, falling back to a
// bordered box
func (c *Console) codeBlock(line terminal.Line) string {
	if c.markdown {
		if out, err := c.renderMarkdown(line); err == nil {
			return out
		}
	}

	box := c.lg.NewStyle().
		Foreground(c.theme.Response).
		Border(lipgloss.NormalBorder()).
		BorderForeground(c.theme.Border).
		Padding(0, 1)
	return box.Render(strings.TrimRight(line.Text, "\n")) + "\n"
}

func (c *Console) renderMarkdown(line terminal.Line) (string, error) {
	if c.md == nil {
		style := c.glamourStyle
		if style == "" {
			style = c.theme.Glamour
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(codeWrapWidth),
		)
		if err != nil {
			return "", err
		}
		c.md = r
	}

	fence := "```"
	if strings.Contains(line.Text, fence) {
		fence = "~~~~"
	}
	src := fmt.Sprintf("%s%s\n%s\n%s\n", fence, line.Lang, strings.TrimRight(line.Text, "\n"), fence)
	return c.md.Render(src)
}
