package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/meridian/internal/locate"
	"github.com/papapumpkin/meridian/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings file and the optional databases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.ErrOrStderr()
		p := ui.New(out, isColorWriter(out))
		p.Heading("meridian " + version)

		if f := viper.ConfigFileUsed(); f != "" {
			p.OK("settings file %s", f)
		} else {
			p.Info("no settings file, using defaults")
		}

		for _, w := range cfg.Validate() {
			p.Warn("%s", w)
		}

		ctx, cancel := context.WithTimeout(cmdContext(cmd), 5*time.Second)
		defer cancel()
		if store, err := openPlaces(ctx, cfg); err != nil {
			p.Fail("places: %v", err)
		} else if store != nil {
			list, err := store.List(ctx)
			store.Close()
			if err != nil {
				p.Fail("places: %v", err)
			} else {
				p.OK("places catalog with %d entries", len(list))
			}
		}

		if cfg.GeoIP.DBPath != "" {
			g, err := locate.OpenGeoIP(cfg.GeoIP.DBPath, cfg.GeoIP.IP, cfg.GeoIP.CacheTTL)
			if err != nil {
				p.Fail("geoip: %v", err)
			} else {
				g.Close()
				p.OK("geoip database opened")
			}
		}

		return p.Summary()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// isColorWriter reports whether w is a terminal that should get ANSI colors.
func isColorWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
