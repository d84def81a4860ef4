package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/meridian/internal/settings"
)

// AboutInfo is the program identity shown in the about box.
type AboutInfo struct {
	Name    string
	Version string
	Author  string
}

// RenderAbout renders the about box for the current settings generation.
func RenderAbout(info AboutInfo, snap settings.Snapshot) string {
	var b strings.Builder

	title := info.Name
	if info.Version != "" {
		title += " " + info.Version
	}
	b.WriteString(styleOverlayTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString("Shows where it is 00:00 UTC right now.\n")
	if info.Author != "" {
		b.WriteString(info.Author)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "settings generation %d\n", snap.Generation)
	if snap.MapVisible {
		fmt.Fprintf(&b, "map %gpx wide at (%g, %g)\n", snap.Map.PixelWidth, snap.Map.CenterX, snap.Map.CenterY)
	} else {
		b.WriteString("map hidden\n")
	}
	b.WriteString("\n")
	b.WriteString(styleOverlayHint.Render("[esc] close"))

	return styleOverlayBox.Render(b.String())
}

// centerOffset returns the top-left cell that centres content in a width by
// height screen.
func centerOffset(content string, width, height int) (col, row int) {
	contentWidth := lipgloss.Width(content)
	contentHeight := lipgloss.Height(content)

	if contentWidth < width {
		col = (width - contentWidth) / 2
	}
	if contentHeight < height {
		row = (height - contentHeight) / 2
	}
	return col, row
}
