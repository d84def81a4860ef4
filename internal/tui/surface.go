package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/papapumpkin/meridian/internal/scene"
)

// Half-block glyphs. Each character cell holds two vertically stacked
// pixels.
const (
	glyphUpper = "▀"
	glyphLower = "▄"
)

type cell struct {
	top, bottom scene.Color
	text        rune
	textColor   scene.Color
}

type overlay struct {
	col, row int
	lines    []string
}

// Raster is a scene.Surface backed by a grid of terminal cells. Pixel
// (x, y) lives in cell (x, y/2).
type Raster struct {
	cols, rows int
	cells      []cell
	overlays   []overlay
}

// Verify Raster satisfies scene.Surface at compile time.
var _ scene.Surface = (*Raster)(nil)

// NewRaster returns a blank raster of cols by rows cells.
func NewRaster(cols, rows int) *Raster {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Raster{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
}

// Size returns the surface size in pixels.
func (r *Raster) Size() (int, int) {
	return r.cols, r.rows * 2
}

func (r *Raster) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return nil
	}
	return &r.cells[row*r.cols+col]
}

// Plot colors one pixel. Out of range pixels are ignored.
func (r *Raster) Plot(x, y int, c scene.Color) {
	if y < 0 {
		return
	}
	cl := r.at(x, y/2)
	if cl == nil {
		return
	}
	if y%2 == 0 {
		cl.top = c
	} else {
		cl.bottom = c
	}
}

// Text writes s starting at the cell containing pixel (x, y). Text is
// clipped at the right edge.
func (r *Raster) Text(x, y int, s string, c scene.Color) {
	if y < 0 {
		return
	}
	col := x
	for _, ch := range s {
		if cl := r.at(col, y/2); cl != nil {
			cl.text, cl.textColor = ch, c
		}
		col++
	}
}

// Overlay places a pre-rendered block with its top-left corner at the given
// cell. Overlays are drawn over pixels and text, in the order added.
func (r *Raster) Overlay(col, row int, block string) {
	r.overlays = append(r.overlays, overlay{col: col, row: row, lines: strings.Split(block, "\n")})
}

// Render returns the raster as styled terminal text.
func (r *Raster) Render() string {
	var b strings.Builder
	for row := 0; row < r.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.renderRow(row))
	}
	return b.String()
}

type span struct {
	start, end int
	text       string
}

func (r *Raster) renderRow(row int) string {
	var spans []span
	for _, o := range r.overlays {
		i := row - o.row
		if i < 0 || i >= len(o.lines) {
			continue
		}
		start := max(o.col, 0)
		end := min(start+lipgloss.Width(o.lines[i]), r.cols)
		if start >= end {
			continue
		}
		// A later overlay hides any earlier one it overlaps.
		kept := spans[:0]
		for _, sp := range spans {
			if sp.end <= start || sp.start >= end {
				kept = append(kept, sp)
			}
		}
		text := o.lines[i]
		if lipgloss.Width(text) > end-start {
			text = ansi.Truncate(text, end-start, "")
		}
		spans = append(kept, span{start: start, end: end, text: text})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	col := 0
	for _, sp := range spans {
		b.WriteString(r.renderCells(row, col, sp.start))
		b.WriteString(sp.text)
		col = sp.end
	}
	b.WriteString(r.renderCells(row, col, r.cols))
	return b.String()
}

// renderCells styles cells [from, to) of row, merging runs that share a
// style so each run is rendered once.
func (r *Raster) renderCells(row, from, to int) string {
	var (
		b       strings.Builder
		run     strings.Builder
		current lipgloss.Style
		started bool
		prevKey [3]scene.Color
	)
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(current.Render(run.String()))
			run.Reset()
		}
	}

	for col := from; col < to; col++ {
		cl := r.cells[row*r.cols+col]
		glyph, fg, bg := cellGlyph(cl)
		key := [3]scene.Color{fg, bg, scene.Color(glyphKind(glyph))}
		if !started || key != prevKey {
			flush()
			current = styleFor(fg, bg)
			prevKey, started = key, true
		}
		run.WriteString(glyph)
	}
	flush()
	return b.String()
}

// cellGlyph chooses the character and colors that show a cell.
func cellGlyph(cl cell) (glyph string, fg, bg scene.Color) {
	switch {
	case cl.text != 0:
		bg = cl.top
		if bg == "" {
			bg = cl.bottom
		}
		return string(cl.text), cl.textColor, bg
	case cl.top == "" && cl.bottom == "":
		return " ", "", ""
	case cl.top == "":
		return glyphLower, cl.bottom, ""
	case cl.top == cl.bottom:
		return " ", "", cl.top
	default:
		return glyphUpper, cl.top, cl.bottom
	}
}

// glyphKind only distinguishes half blocks from everything else, which is
// enough to keep runs homogeneous.
func glyphKind(g string) string {
	if g == glyphUpper || g == glyphLower {
		return g
	}
	return ""
}

func styleFor(fg, bg scene.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(lipgloss.Color(string(fg)))
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(string(bg)))
	}
	return s
}
