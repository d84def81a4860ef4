package tui

import (
	"strings"
	"testing"

	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/settings"
)

func TestRenderAbout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		snap settings.Snapshot
		want []string
	}{
		{
			name: "map visible",
			snap: settings.Snapshot{
				Generation: 3,
				MapVisible: true,
				Map:        geo.MapConfig{PixelWidth: 160, CenterX: 80, CenterY: 42},
			},
			want: []string{"meridian v1", "settings generation 3", "map 160px wide at (80, 42)", "[esc] close"},
		},
		{
			name: "map hidden",
			snap: settings.Snapshot{Generation: 1},
			want: []string{"settings generation 1", "map hidden"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := RenderAbout(AboutInfo{Name: "meridian", Version: "v1"}, tt.snap)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("about box missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestCenterOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		content       string
		width, height int
		wantCol       int
		wantRow       int
	}{
		{"fits", "abcd\nefgh", 10, 6, 3, 2},
		{"too wide", "abcdefghijkl", 10, 5, 0, 2},
		{"too tall", "a\nb\nc", 5, 2, 2, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			col, row := centerOffset(tt.content, tt.width, tt.height)
			if col != tt.wantCol || row != tt.wantRow {
				t.Errorf("centerOffset = (%d, %d), want (%d, %d)", col, row, tt.wantCol, tt.wantRow)
			}
		})
	}
}
