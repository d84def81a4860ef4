package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/meridian/internal/places"
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "Manage the cities drawn on the map",
}

var placesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the place catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPlaces(cmd, func(ctx context.Context, s *places.Store) error {
			list, err := s.List(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLAT\tLON")
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", p.Name, p.Lat, p.Lon)
			}
			return w.Flush()
		})
	},
}

var placesAddCmd = &cobra.Command{
	Use:   "add NAME LAT LON",
	Short: "Add or move a place",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: %w", args[1], err)
		}
		lon, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: %w", args[2], err)
		}
		return withPlaces(cmd, func(ctx context.Context, s *places.Store) error {
			if err := s.Add(ctx, places.Place{Name: args[0], Lat: lat, Lon: lon}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s saved\n", args[0])
			return nil
		})
	},
}

var placesRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlaces(cmd, func(ctx context.Context, s *places.Store) error {
			removed, err := s.Remove(ctx, args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no place named %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s removed\n", args[0])
			return nil
		})
	},
}

var placesImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import places from a TOML file of [[place]] tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlaces(cmd, func(ctx context.Context, s *places.Store) error {
			n, err := s.Import(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ imported %d places\n", n)
			return nil
		})
	},
}

func init() {
	placesCmd.AddCommand(placesListCmd, placesAddCmd, placesRemoveCmd, placesImportCmd)
	rootCmd.AddCommand(placesCmd)
}

// withPlaces opens the configured catalog for the duration of fn.
func withPlaces(cmd *cobra.Command, fn func(context.Context, *places.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmdContext(cmd)
	store, err := openPlaces(ctx, cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("places.db_path is not configured")
	}
	defer store.Close()
	return fn(ctx, store)
}
