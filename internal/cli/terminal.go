package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Terminal describes the output stream. Styling and width capping only apply
// when it is an interactive terminal.
type Terminal struct {
	IsTTY bool
	Width int
}

// DetectTerminal inspects out. Anything that is not a terminal file yields the zero Terminal.
func DetectTerminal(out io.Writer) Terminal {
	f, ok := out.(*os.File)
	if !ok {
		return Terminal{}
	}

	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return Terminal{}
	}

	width, _, err := term.GetSize(int(fd))
	if err != nil {
		width = 0
	}
	return Terminal{IsTTY: true, Width: width}
}

// Styles holds the lipgloss styles used for Kara's output.
type Styles struct {
	enabled bool
	speaker lipgloss.Style
	warning lipgloss.Style
}

// NewStyles returns colourful styles for a terminal and plain text otherwise.
func NewStyles(t Terminal) Styles {
	return Styles{
		enabled: t.IsTTY,
		speaker: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Speaker renders the "Kara:" label.
func (s Styles) Speaker() string {
	if !s.enabled {
		return "Kara:"
	}
	return s.speaker.Render("Kara:")
}

// Warning renders a re-prompt hint.
func (s Styles) Warning(text string) string {
	if !s.enabled {
		return text
	}
	return s.warning.Render(text)
}
