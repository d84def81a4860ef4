// Package places stores the named cities drawn on the world map background.
// The catalog lives in a local SQLite file so users can add their own places
// without editing the overlay settings.
package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/meridian/internal/geo"
)

// ErrInvalidPlace is returned when a place has no name or its coordinates are
// outside the canonical ranges.
var ErrInvalidPlace = errors.New("invalid place")

// schema is executed on every open; IF NOT EXISTS keeps it idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS places (
    name       TEXT PRIMARY KEY,
    lat        REAL NOT NULL,
    lon        REAL NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Place is a named point on the map.
type Place struct {
	Name string  `toml:"name"`
	Lat  float64 `toml:"lat"`
	Lon  float64 `toml:"lon"`
}

// Point returns the place's coordinates.
func (p Place) Point() geo.GeoPoint {
	return geo.GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

func (p Place) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPlace)
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: %q at (%g, %g) is out of range", ErrInvalidPlace, p.Name, p.Lat, p.Lon)
	}
	return nil
}

// Defaults seeds a fresh catalog.
func Defaults() []Place {
	return []Place{
		{Name: "London", Lat: 51.5074, Lon: -0.1278},
		{Name: "Moscow", Lat: 55.7558, Lon: 37.6173},
		{Name: "New York", Lat: 40.7128, Lon: -74.0060},
		{Name: "Tokyo", Lat: 35.6762, Lon: 139.6503},
		{Name: "Sydney", Lat: -33.8688, Lon: 151.2093},
		{Name: "São Paulo", Lat: -23.5505, Lon: -46.6333},
		{Name: "Cairo", Lat: 30.0444, Lon: 31.2357},
	}
}

// Store is a SQLite-backed place catalog.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the catalog at dbPath and seeds it with Defaults
// when it is empty.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("places: open database: %w", err)
	}
	// One connection: SQLite has a single writer and the catalog is tiny.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("places: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("places: create schema: %w", err)
	}

	s := &Store{db: db}
	n, err := s.count(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if n == 0 {
		for _, p := range Defaults() {
			if err := s.Add(ctx, p); err != nil {
				db.Close()
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *Store) count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM places").Scan(&n); err != nil {
		return 0, fmt.Errorf("places: count: %w", err)
	}
	return n, nil
}

// Add inserts or replaces a place by name.
func (s *Store) Add(ctx context.Context, p Place) error {
	if err := p.validate(); err != nil {
		return err
	}
	const q = `
		INSERT INTO places (name, lat, lon) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET lat = excluded.lat, lon = excluded.lon`
	if _, err := s.db.ExecContext(ctx, q, p.Name, p.Lat, p.Lon); err != nil {
		return fmt.Errorf("places: add %q: %w", p.Name, err)
	}
	return nil
}

// Remove deletes a place by name. It reports whether a row was deleted.
func (s *Store) Remove(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM places WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("places: remove %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("places: remove %q: %w", name, err)
	}
	return n > 0, nil
}

// List returns every place ordered by name.
func (s *Store) List(ctx context.Context) ([]Place, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, lat, lon FROM places ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("places: list: %w", err)
	}
	defer rows.Close()

	var out []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.Name, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("places: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("places: list: %w", err)
	}
	return out, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// importFile is the on-disk shape accepted by Import.
type importFile struct {
	Places []Place `toml:"place"`
}

// Import adds every [[place]] table from a TOML file and returns how many
// were stored.
func (s *Store) Import(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("places: read %s: %w", path, err)
	}
	var f importFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("places: parse %s: %w", path, err)
	}
	for i, p := range f.Places {
		if err := s.Add(ctx, p); err != nil {
			return i, err
		}
	}
	return len(f.Places), nil
}
