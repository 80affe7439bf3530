package style

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Sapphire = lipgloss.Color("#74c7ec")
	Overlay  = lipgloss.Color("#6c7086")

	AccentColor    = Mauve
	SecondaryColor = Sapphire
	SuccessColor   = Green
	WarningColor   = Yellow
	ErrorColor     = Red
	AdultColor     = Peach
	FaintColor     = Overlay
)
