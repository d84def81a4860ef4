package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/meridian/internal/terminator"
)

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Print the two 00:00 UTC meridians",
	Args:  cobra.NoArgs,
	RunE:  runLines,
}

func init() {
	linesCmd.Flags().String("at", "", "compute for this RFC 3339 time instead of now")
	rootCmd.AddCommand(linesCmd)
}

func runLines(cmd *cobra.Command, _ []string) error {
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

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "at %s\n", now.UTC().Format(time.RFC3339))
	for i, l := range terminator.Compute(now, mapConfig(cfg)) {
		fmt.Fprintf(out, "line %d  %s  offset %+.1f min  lon %+.4f  x %.2f\n",
			i, l.ReferenceDate.Format("2006-01-02"), l.MinuteOffset, l.Longitude, l.MapX)
	}
	return nil
}
