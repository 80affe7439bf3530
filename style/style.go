// Package style provides a functional API for composing lipgloss styles for CLI output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/color"
	"github.com/papersrc/papersrc/key"
)

// New returns an empty lipgloss.Style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// render applies s unless colored output is turned off.
func render(s lipgloss.Style, text string) string {
	if !viper.GetBool(key.CliColored) {
		return text
	}
	return s.Render(text)
}

// Fg returns a rendering function applying the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return render(Colored(c, ""), s) }
}

var (
	Faint  = func(s string) string { return render(New().Faint(true), s) }
	Bold   = func(s string) string { return render(New().Bold(true), s) }
	Italic = func(s string) string { return render(New().Italic(true), s) }
)

// Title renders a padded banner, used for section headers.
var Title = func(s string) string {
	return render(Colored(color.New("230"), AccentColor).Padding(0, 1), s)
}

var ErrorTitle = func(s string) string {
	return render(Colored(color.New("230"), ErrorColor).Padding(0, 1), s)
}

// Tag returns a rendering function that wraps a string in a colored, padded block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return render(Colored(fg, bg).Padding(0, 1), s) }
}

// Wrap breaks s into lines of at most width columns on word boundaries.
// A width below one leaves s untouched.
func Wrap(width int) func(string) string {
	return func(s string) string {
		if width < 1 {
			return s
		}
		return wordwrap.String(s, width)
	}
}
