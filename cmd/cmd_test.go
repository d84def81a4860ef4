package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

func TestSubcommands_Registered(t *testing.T) {
	t.Parallel()

	want := []string{"run", "where", "lines", "scene", "places", "validate"}
	for _, name := range want {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			found := false
			for _, c := range rootCmd.Commands() {
				if c.Name() == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected %q subcommand to be registered on rootCmd", name)
			}
		})
	}
}

func TestPlacesSubcommands_Registered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"list", "add", "remove", "import"} {
		found := false
		for _, c := range placesCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("expected places %q subcommand", name)
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  string
		flag string
	}{
		{"run", "no-watch"},
		{"where", "ip"},
		{"lines", "at"},
		{"scene", "width"},
		{"scene", "height"},
		{"scene", "at"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.cmd+"/"+tt.flag, func(t *testing.T) {
			t.Parallel()
			c, _, err := rootCmd.Find([]string{tt.cmd})
			if err != nil {
				t.Fatalf("Find(%q): %v", tt.cmd, err)
			}
			if c.Flags().Lookup(tt.flag) == nil {
				t.Errorf("expected flag %q on %s", tt.flag, tt.cmd)
			}
		})
	}
}

func TestRunLines(t *testing.T) {
	// Not parallel: modifies shared linesCmd flag state.
	var out bytes.Buffer
	linesCmd.SetOut(&out)
	defer linesCmd.SetOut(nil)

	if err := linesCmd.Flags().Set("at", "2024-03-10T12:00:00Z"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = linesCmd.Flags().Set("at", "") }()

	if err := runLines(linesCmd, nil); err != nil {
		t.Fatalf("runLines: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"line 0  2024-03-10  offset -720.0 min  lon -180.0000",
		"line 1  2024-03-11  offset +720.0 min  lon +180.0000",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunLines_BadTime(t *testing.T) {
	// Not parallel: modifies shared linesCmd flag state.
	if err := linesCmd.Flags().Set("at", "yesterday"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = linesCmd.Flags().Set("at", "") }()

	if err := runLines(linesCmd, nil); err == nil {
		t.Fatal("expected error for invalid --at")
	}
}

func TestRunScene(t *testing.T) {
	// Not parallel: modifies global viper and sceneCmd flag state.
	viper.Set("places.db_path", "")
	defer viper.Set("places.db_path", nil)
	viper.Set("location.lat", 55.75)
	viper.Set("location.lon", 37.62)
	defer viper.Set("location.lat", nil)
	defer viper.Set("location.lon", nil)

	var out bytes.Buffer
	sceneCmd.SetOut(&out)
	defer sceneCmd.SetOut(nil)
	if err := sceneCmd.Flags().Set("at", "2024-03-10T12:00:00Z"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = sceneCmd.Flags().Set("at", "") }()

	if err := runScene(sceneCmd, nil); err != nil {
		t.Fatalf("runScene: %v", err)
	}

	var dump sceneDump
	if err := toml.Unmarshal(out.Bytes(), &dump); err != nil {
		t.Fatalf("output is not TOML: %v\n%s", err, out.String())
	}
	if !dump.MapVisible {
		t.Error("expected the map to be visible by default")
	}
	if len(dump.Objects) != 7 {
		t.Fatalf("got %d objects, want 7", len(dump.Objects))
	}
	if dump.Objects[0].ID != "background" || dump.Objects[len(dump.Objects)-1].ID != "monitor" {
		t.Errorf("unexpected paint order: first %s last %s", dump.Objects[0].ID, dump.Objects[len(dump.Objects)-1].ID)
	}
	if len(dump.Lines) != 2 || dump.Lines[0].Longitude != -180 {
		t.Errorf("lines = %+v", dump.Lines)
	}
	if dump.Location.Lat != 55.75 || dump.Location.Lon != 37.62 {
		t.Errorf("location = %+v, want the configured home", dump.Location)
	}
}

func TestPlacesCommands(t *testing.T) {
	// Not parallel: modifies global viper state.
	dbPath := filepath.Join(t.TempDir(), "places.db")
	viper.Set("places.db_path", dbPath)
	defer viper.Set("places.db_path", nil)

	var out bytes.Buffer
	placesAddCmd.SetOut(&out)
	placesListCmd.SetOut(&out)
	placesRemoveCmd.SetOut(&out)
	defer placesAddCmd.SetOut(nil)
	defer placesListCmd.SetOut(nil)
	defer placesRemoveCmd.SetOut(nil)

	if err := placesAddCmd.RunE(placesAddCmd, []string{"Reykjavik", "64.1466", "-21.9426"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	out.Reset()
	if err := placesListCmd.RunE(placesListCmd, nil); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "Reykjavik") {
		t.Errorf("list output missing new place:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "London") {
		t.Errorf("list output missing seeded place:\n%s", out.String())
	}

	if err := placesRemoveCmd.RunE(placesRemoveCmd, []string{"Reykjavik"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := placesRemoveCmd.RunE(placesRemoveCmd, []string{"Reykjavik"}); err == nil {
		t.Error("expected error removing a missing place")
	}
	if err := placesAddCmd.RunE(placesAddCmd, []string{"Nowhere", "north", "0"}); err == nil {
		t.Error("expected error for a non-numeric latitude")
	}
}

func TestValidateCommand(t *testing.T) {
	// Not parallel: modifies global viper state.
	dir := t.TempDir()
	viper.Set("places.db_path", filepath.Join(dir, "places.db"))
	defer viper.Set("places.db_path", nil)

	var out bytes.Buffer
	validateCmd.SetErr(&out)
	defer validateCmd.SetErr(nil)

	if err := validateCmd.RunE(validateCmd, nil); err != nil {
		t.Fatalf("validate: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "places catalog with") {
		t.Errorf("output missing places check:\n%s", out.String())
	}

	viper.Set("geoip.db_path", filepath.Join(dir, "missing.mmdb"))
	defer viper.Set("geoip.db_path", nil)
	out.Reset()
	if err := validateCmd.RunE(validateCmd, nil); err == nil {
		t.Error("expected failure for a missing geoip database")
	}
	if !strings.Contains(out.String(), "✗ geoip") {
		t.Errorf("output missing geoip failure:\n%s", out.String())
	}
}
