package locate

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/oschwald/geoip2-golang"

	"github.com/papapumpkin/meridian/internal/geo"
)

// cityLookup is the part of *geoip2.Reader the GeoIP provider uses.
type cityLookup interface {
	City(ip net.IP) (*geoip2.City, error)
}

// GeoIP resolves a fixed IP address against a MaxMind City database. Answers
// are cached so the database is not hit on every poll.
type GeoIP struct {
	IP string

	db     cityLookup
	closer func() error
	cache  *ristretto.Cache[string, geo.GeoPoint]
	ttl    time.Duration
}

// OpenGeoIP opens the database at dbPath. ttl bounds how long a resolved
// position is reused.
func OpenGeoIP(dbPath, ip string, ttl time.Duration) (*GeoIP, error) {
	reader, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("locate: open geoip database %s: %w", dbPath, err)
	}
	g, err := newGeoIP(reader, ip, ttl)
	if err != nil {
		reader.Close()
		return nil, err
	}
	g.closer = reader.Close
	return g, nil
}

func newGeoIP(db cityLookup, ip string, ttl time.Duration) (*GeoIP, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, geo.GeoPoint]{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("locate: create cache: %w", err)
	}
	return &GeoIP{IP: ip, db: db, cache: cache, ttl: ttl}, nil
}

// Locate looks up g.IP.
func (g *GeoIP) Locate(ctx context.Context) (geo.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return geo.GeoPoint{}, err
	}
	if pt, ok := g.cache.Get(g.IP); ok {
		return pt, nil
	}

	ip := net.ParseIP(g.IP)
	if ip == nil {
		return geo.GeoPoint{}, fmt.Errorf("locate: %w: bad IP %q", ErrUnknownLocation, g.IP)
	}
	rec, err := g.db.City(ip)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("locate: geoip lookup %s: %w", g.IP, err)
	}
	if rec.Location.Latitude == 0 && rec.Location.Longitude == 0 {
		return geo.GeoPoint{}, fmt.Errorf("locate: %w: no coordinates for %s", ErrUnknownLocation, g.IP)
	}

	pt := geo.GeoPoint{Lat: rec.Location.Latitude, Lon: rec.Location.Longitude}
	g.cache.SetWithTTL(g.IP, pt, 1, g.ttl)
	g.cache.Wait()
	return pt, nil
}

// Close releases the cache and the database.
func (g *GeoIP) Close() error {
	g.cache.Close()
	if g.closer != nil {
		return g.closer()
	}
	return nil
}
