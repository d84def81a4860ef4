package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. MERIDIAN_MAP_WIDTH.
const EnvPrefix = "MERIDIAN"

// MapConfig describes the world map and the current-location dot.
type MapConfig struct {
	Visible   bool    `mapstructure:"visible"`
	Width     float64 `mapstructure:"width"`
	CenterX   float64 `mapstructure:"center_x"`
	CenterY   float64 `mapstructure:"center_y"`
	DotRadius float64 `mapstructure:"dot_radius"`
	DotBorder float64 `mapstructure:"dot_border"`
	Host      string  `mapstructure:"host"`
}

// BoxConfig sizes the monitor panel.
type BoxConfig struct {
	Height      float64 `mapstructure:"height"`
	BorderWidth float64 `mapstructure:"border_width"`
}

// ScreenConfig is the drawing surface size in pixels. Zero values mean "use
// the terminal size".
type ScreenConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LocationConfig is the fallback current position and how often the location
// provider is polled.
type LocationConfig struct {
	Lat     float64       `mapstructure:"lat"`
	Lon     float64       `mapstructure:"lon"`
	Refresh time.Duration `mapstructure:"refresh"`
}

// GeoIPConfig enables IP-based location lookup against a MaxMind database.
type GeoIPConfig struct {
	DBPath   string        `mapstructure:"db_path"`
	IP       string        `mapstructure:"ip"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// PlacesConfig points at the SQLite city catalog.
type PlacesConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
}

// Config holds all runtime configuration for the overlay.
// Values are populated from .meridian.yaml, MERIDIAN_* env vars, and CLI flags.
type Config struct {
	Map      MapConfig      `mapstructure:"map"`
	Box      BoxConfig      `mapstructure:"box"`
	Screen   ScreenConfig   `mapstructure:"screen"`
	Location LocationConfig `mapstructure:"location"`
	GeoIP    GeoIPConfig    `mapstructure:"geoip"`
	Places   PlacesConfig   `mapstructure:"places"`
	Log      LogConfig      `mapstructure:"log"`
	Debug    bool           `mapstructure:"debug"`
}

// SetDefaults registers built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("map.visible", true)
	v.SetDefault("map.width", 160.0)
	v.SetDefault("map.center_x", 80.0)
	v.SetDefault("map.center_y", 42.0)
	v.SetDefault("map.dot_radius", 1.0)
	v.SetDefault("map.dot_border", 1.0)
	v.SetDefault("map.host", "maps.yandex.ru")
	v.SetDefault("box.height", 8.0)
	v.SetDefault("box.border_width", 2.0)
	v.SetDefault("screen.width", 0)
	v.SetDefault("screen.height", 0)
	v.SetDefault("location.lat", 55.751244)
	v.SetDefault("location.lon", 37.618423)
	v.SetDefault("location.refresh", 10*time.Minute)
	v.SetDefault("geoip.db_path", "")
	v.SetDefault("geoip.ip", "")
	v.SetDefault("geoip.cache_ttl", time.Hour)
	v.SetDefault("places.db_path", filepath.Join(".", ".meridian", "places.db"))
	v.SetDefault("log.dir", defaultLogDir())
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("debug", false)
}

// Load reads configuration from v, applying built-in defaults for any values
// not set by config file, environment, or flags.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Validate reports configuration anomalies. None of them are fatal: the
// overlay still starts and renders whatever the values produce.
func (c Config) Validate() []string {
	var warnings []string

	if c.Map.Width <= 0 {
		warnings = append(warnings, fmt.Sprintf("map.width must be positive, got %g", c.Map.Width))
	}
	if c.Map.DotRadius < 0 || c.Map.DotBorder < 0 {
		warnings = append(warnings, "map.dot_radius and map.dot_border must not be negative")
	}
	if c.Location.Lat < -90 || c.Location.Lat > 90 {
		warnings = append(warnings, fmt.Sprintf("location.lat %g is outside [-90, 90]", c.Location.Lat))
	}
	if c.Location.Lon < -180 || c.Location.Lon > 180 {
		warnings = append(warnings, fmt.Sprintf("location.lon %g is outside [-180, 180]", c.Location.Lon))
	}
	if c.Box.Height < 0 || c.Box.BorderWidth < 0 {
		warnings = append(warnings, "box.height and box.border_width must not be negative")
	}
	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		warnings = append(warnings, "screen.width and screen.height must not be negative")
	}
	if c.GeoIP.DBPath != "" && c.GeoIP.IP == "" {
		warnings = append(warnings, "geoip.db_path is set but geoip.ip is empty; falling back to location.lat/lon")
	}
	return warnings
}

func defaultLogDir() string {
	return filepath.Join(".", ".meridian", "logs")
}
