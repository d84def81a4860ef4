package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/meridian/internal/canvas"
	"github.com/papapumpkin/meridian/internal/config"
	"github.com/papapumpkin/meridian/internal/desktop"
	"github.com/papapumpkin/meridian/internal/locate"
	"github.com/papapumpkin/meridian/internal/logging"
	"github.com/papapumpkin/meridian/internal/places"
	"github.com/papapumpkin/meridian/internal/settings"
	"github.com/papapumpkin/meridian/internal/tui"
)

// tuiCmd runs the overlay. It is also what the bare root command does.
var tuiCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the overlay",
	Long: `Show the world map with the 00:00 UTC meridians, the current location
and the place catalog. The settings file is watched and reloaded on change.
Right click for the context menu; double click the map to open that spot in
the external map service.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().Bool("no-watch", false, "do not reload when the settings file changes")
	rootCmd.AddCommand(tuiCmd)
}

func isStdoutTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runTUI wires the overlay together and blocks until it exits.
func runTUI(cmd *cobra.Command, _ []string) error {
	if !isStdoutTTY() {
		return fmt.Errorf("meridian requires a TTY (terminal)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFile(logging.Options{
		Dir:        cfg.Log.Dir,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.SetDebug(cfg.Debug)
	logging.Logf(logger, logging.SeverityInfo, "meridian %s starting", version)

	ctx, cancel := context.WithCancel(cmdContext(cmd))
	defer cancel()

	opts := []settings.Option{settings.WithLogger(logger)}
	store, err := openPlaces(ctx, cfg)
	if err != nil {
		logging.Logf(logger, logging.SeverityInfo, "places unavailable: %v", err)
	} else if store != nil {
		defer store.Close()
		opts = append(opts, settings.WithPlaces(store))
	}

	src := settings.NewSource(viper.GetViper(), opts...)
	defer src.Close()
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); !noWatch && viper.ConfigFileUsed() != "" {
		if err := src.Watch(viper.ConfigFileUsed()); err != nil {
			logging.Logf(logger, logging.SeverityInfo, "%v", err)
		}
	}

	provider, closeProvider := locationProvider(cfg, logger)
	defer closeProvider()

	opener := desktop.Browser{Exited: func(url string, err error) {
		if err != nil {
			logging.Logf(logger, logging.SeverityInfo, "map handler for %s: %v", url, err)
		}
	}}
	model := tui.NewModel(tui.Options{
		Controller: canvas.New(canvas.WithLogger(logger)),
		Settings:   src,
		Opener:     opener,
		Copier:     desktop.Clipboard{},
		Log:        logger,
		About:      tui.AboutInfo{Name: "meridian", Version: version},
	})
	program := tui.NewProgram(model)
	bridge := tui.NewBridge(program)

	go bridge.ForwardSettings(ctx, src.Events())
	if provider != nil {
		tracker := &locate.Tracker{Provider: provider, Interval: cfg.Location.Refresh, Log: logger}
		go tracker.Run(ctx, bridge.Location)
	}

	err = tui.Run(program)
	logging.Logf(logger, logging.SeverityInfo, "meridian stopped")
	return err
}

// openPlaces opens the place catalog. It returns nil when no path is
// configured.
func openPlaces(ctx context.Context, cfg config.Config) (*places.Store, error) {
	if cfg.Places.DBPath == "" {
		return nil, nil
	}
	return places.Open(ctx, cfg.Places.DBPath)
}

// locationProvider opens the GeoIP provider when configured. Without one
// the marker stays at the configured location, which follows settings
// reloads.
func locationProvider(cfg config.Config, log logging.Logger) (locate.Provider, func()) {
	if cfg.GeoIP.DBPath == "" || cfg.GeoIP.IP == "" {
		return nil, func() {}
	}
	g, err := locate.OpenGeoIP(cfg.GeoIP.DBPath, cfg.GeoIP.IP, cfg.GeoIP.CacheTTL)
	if err != nil {
		logging.Logf(log, logging.SeverityInfo, "geoip disabled: %v", err)
		return nil, func() {}
	}
	return g, func() { _ = g.Close() }
}
