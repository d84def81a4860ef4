package canvas

import (
	_ "embed"
	"strings"
)

// earthData is a 120x60 equirectangular land mask. Row 0 is latitude +90,
// column 0 is longitude -180; '#' marks land.
//
//go:embed earth.txt
var earthData string

var earthRows = strings.Fields(earthData)

// landAt reports whether the mask shows land at lat/lon. Out of range
// coordinates are clamped to the mask edge.
func landAt(lat, lon float64) bool {
	if len(earthRows) == 0 {
		return false
	}
	h, w := len(earthRows), len(earthRows[0])
	row := clamp(int((90-lat)/180*float64(h)), 0, h-1)
	col := clamp(int((lon+180)/360*float64(w)), 0, w-1)
	return earthRows[row][col] == '#'
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
