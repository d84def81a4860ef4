package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan: primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold: highlighted item
	colorDanger     = lipgloss.Color("#FF5252") // Red: errors
	colorMuted      = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface: menu bg
)

// Selection indicator prepended to the active menu row.
const selectionIndicator = "▎"

// Context menu styles.
var (
	styleMenuBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Background(colorSurface).
			Padding(0, 1)

	styleMenuItem = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Background(colorSurface)

	styleMenuSelected = lipgloss.NewStyle().
				Foreground(colorAccent).
				Background(colorSurface).
				Bold(true)
)

// Overlay styles for the about box.
var (
	styleOverlayBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3)

	styleOverlayTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleOverlayHint = lipgloss.NewStyle().
				Foreground(colorMuted)
)

// Status line styles.
var (
	styleStatus = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleStatusError = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)
)
