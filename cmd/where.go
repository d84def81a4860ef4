package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/meridian/internal/config"
	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/locate"
	"github.com/papapumpkin/meridian/internal/logging"
)

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the current location and its map link",
	Long: `Resolve the current location the way the overlay does: GeoIP when a
database and address are configured, otherwise the configured location.`,
	Args: cobra.NoArgs,
	RunE: runWhere,
}

func init() {
	whereCmd.Flags().String("ip", "", "look up this address instead of geoip.ip")
	rootCmd.AddCommand(whereCmd)
}

func runWhere(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ip, _ := cmd.Flags().GetString("ip"); ip != "" {
		cfg.GeoIP.IP = ip
	}

	var chain locate.Chain
	provider, closeProvider := locationProvider(cfg, logging.Nop{})
	defer closeProvider()
	if provider != nil {
		chain = append(chain, provider)
	}
	chain = append(chain, locate.Static{Point: homePoint(cfg)})

	ctx, cancel := context.WithTimeout(cmdContext(cmd), 5*time.Second)
	defer cancel()
	p, err := chain.Locate(ctx)
	if err != nil {
		return fmt.Errorf("failed to locate: %w", err)
	}

	mc := mapConfig(cfg)
	mp := geo.ToMap(p.Lat, p.Lon, mc)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "location  %s\n", p)
	fmt.Fprintf(out, "map pixel %.1f, %.1f\n", mp.X, mp.Y)
	fmt.Fprintf(out, "map link  %s\n", geo.MapURL(cfg.Map.Host, p))
	return nil
}

// homePoint is the configured fallback location.
func homePoint(cfg config.Config) geo.GeoPoint {
	return geo.GeoPoint{Lat: cfg.Location.Lat, Lon: cfg.Location.Lon}
}

func mapConfig(cfg config.Config) geo.MapConfig {
	return geo.MapConfig{PixelWidth: cfg.Map.Width, CenterX: cfg.Map.CenterX, CenterY: cfg.Map.CenterY}
}
