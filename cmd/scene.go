package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/meridian/internal/canvas"
	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/places"
	"github.com/papapumpkin/meridian/internal/settings"
	"github.com/papapumpkin/meridian/internal/terminator"
)

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Build the scene once and print it as TOML",
	Long: `Compose the scene exactly as the overlay would for the given surface
size and print every object with its position and paint order.`,
	Args: cobra.NoArgs,
	RunE: runScene,
}

func init() {
	sceneCmd.Flags().Int("width", settings.FallbackWidth, "surface width in pixels")
	sceneCmd.Flags().Int("height", settings.FallbackHeight, "surface height in pixels")
	sceneCmd.Flags().String("at", "", "compose for this RFC 3339 time instead of now")
	rootCmd.AddCommand(sceneCmd)
}

// sceneDump is the TOML document printed by the scene command.
type sceneDump struct {
	Generation uint64            `toml:"generation"`
	MapVisible bool              `toml:"map_visible"`
	Screen     settings.Screen   `toml:"screen"`
	Location   geo.GeoPoint      `toml:"location"`
	Lines      []terminator.Line `toml:"lines,omitempty"`
	Objects    []sceneObjectDump `toml:"object"`
}

type sceneObjectDump struct {
	ID      string  `toml:"id"`
	Kind    string  `toml:"kind"`
	Z       int     `toml:"z"`
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Visible bool    `toml:"visible"`
}

func runScene(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	now := time.Now()
	if at, _ := cmd.Flags().GetString("at"); at != "" {
		now, err = time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	var catalog []places.Place
	ctx, cancel := context.WithTimeout(cmdContext(cmd), 5*time.Second)
	defer cancel()
	if store, err := openPlaces(ctx, cfg); err == nil && store != nil {
		catalog, _ = store.List(ctx)
		store.Close()
	}

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	snap := settings.Build(cfg, width, height, catalog)
	snap.Generation = 1

	ctrl := canvas.New(canvas.WithClock(func() time.Time { return now }))
	ctrl.ReloadStart()
	ctrl.ReloadFinish(snap)

	data, err := toml.Marshal(dumpScene(ctrl))
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func dumpScene(ctrl *canvas.Controller) sceneDump {
	snap := ctrl.Snapshot()
	d := sceneDump{
		Generation: snap.Generation,
		MapVisible: snap.MapVisible,
		Screen:     snap.Screen,
		Location:   ctrl.LiveLocation(),
	}
	if lines, ok := ctrl.Lines(); ok {
		d.Lines = lines[:]
	}
	for _, o := range ctrl.Objects() {
		d.Objects = append(d.Objects, sceneObjectDump{
			ID:      o.ID.String(),
			Kind:    o.Kind().String(),
			Z:       o.Z,
			X:       o.Pos.X,
			Y:       o.Pos.Y,
			Visible: o.Visible,
		})
	}
	return d
}
