package geo

import (
	"fmt"
	"strconv"
)

// DefaultMapHost is the map service opened for a location when no host is
// configured.
const DefaultMapHost = "maps.yandex.ru"

// FormatCoord renders a coordinate component with six decimal places.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// MapURL builds the external map link for p. The service expects longitude
// first, separated from latitude by an escaped comma.
func MapURL(host string, p GeoPoint) string {
	if host == "" {
		host = DefaultMapHost
	}
	return fmt.Sprintf("https://%s/?ll=%s%%2C%s&z=7&l=map", host, FormatCoord(p.Lon), FormatCoord(p.Lat))
}
