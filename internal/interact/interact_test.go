package interact

import (
	"testing"
	"time"

	"github.com/papapumpkin/meridian/internal/geo"
)

var testMap = geo.MapConfig{PixelWidth: 360, CenterX: 180, CenterY: 90}

func TestClassify(t *testing.T) {
	t.Parallel()

	pos := geo.MapPoint{X: 270, Y: 45}

	tests := []struct {
		name    string
		ev      Event
		visible bool
		want    Outcome
		wantGeo bool
	}{
		{"scroll suppressed", Event{Kind: KindScroll}, true, Suppressed, false},
		{"wheel suppressed", Event{Kind: KindWheel, Button: ButtonMiddle}, true, Suppressed, false},
		{"key suppressed", Event{Kind: KindKeyPress}, false, Suppressed, false},
		{"right release with map", Event{Kind: KindButtonRelease, Button: ButtonRight, Pos: pos}, true, ContextRequest, true},
		{"right release without map", Event{Kind: KindButtonRelease, Button: ButtonRight, Pos: pos}, false, ContextRequest, false},
		{"left release suppressed", Event{Kind: KindButtonRelease, Button: ButtonLeft, Pos: pos}, true, Suppressed, false},
		{"left double click with map", Event{Kind: KindDoubleClick, Button: ButtonLeft, Pos: pos}, true, OpenLocation, true},
		{"left double click without map", Event{Kind: KindDoubleClick, Button: ButtonLeft, Pos: pos}, false, Suppressed, false},
		{"right double click", Event{Kind: KindDoubleClick, Button: ButtonRight, Pos: pos}, true, Suppressed, false},
		{"motion passes", Event{Kind: KindMotion, Pos: pos}, true, Pass, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.ev, tt.visible, testMap)
			if got.Outcome != tt.want {
				t.Fatalf("outcome = %v, want %v", got.Outcome, tt.want)
			}
			if got.HasGeo != tt.wantGeo {
				t.Fatalf("HasGeo = %v, want %v", got.HasGeo, tt.wantGeo)
			}
			if tt.wantGeo {
				// (270, 45) on a 360px map centred at (180, 90) is lat 45, lon 90.
				if got.Geo.Lat != 45 || got.Geo.Lon != 90 {
					t.Errorf("geo = %v, want lat 45 lon 90", got.Geo)
				}
				if got.Pos != pos {
					t.Errorf("pos = %+v, want %+v", got.Pos, pos)
				}
			}
		})
	}
}

func TestOpenMapLabel(t *testing.T) {
	t.Parallel()

	got := OpenMapLabel(geo.GeoPoint{Lat: 55.751244, Lon: -37.5})
	want := "Open map (lat: 55.751244, lon: -37.500000)"
	if got != want {
		t.Errorf("OpenMapLabel = %q, want %q", got, want)
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	if got := OpenLocation.String(); got != "open-location" {
		t.Errorf("OpenLocation.String() = %q", got)
	}
	if got := Outcome(42).String(); got != "outcome(42)" {
		t.Errorf("Outcome(42).String() = %q", got)
	}
}

func TestClickTracker(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := geo.MapPoint{X: 10, Y: 10}

	tests := []struct {
		name   string
		second geo.MapPoint
		delay  time.Duration
		want   bool
	}{
		{"same spot quickly", p, 100 * time.Millisecond, true},
		{"one pixel away", p.Add(1, -1), 200 * time.Millisecond, true},
		{"too far", p.Add(2, 0), 100 * time.Millisecond, false},
		{"too slow", p, 500 * time.Millisecond, false},
		{"at the window edge", p, DoubleClickWindow, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var c ClickTracker
			if c.Observe(p, t0) {
				t.Fatal("first click reported as double")
			}
			if got := c.Observe(tt.second, t0.Add(tt.delay)); got != tt.want {
				t.Errorf("Observe = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClickTracker_TripleClickYieldsOne(t *testing.T) {
	t.Parallel()

	var c ClickTracker
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := geo.MapPoint{X: 3, Y: 4}

	results := []bool{
		c.Observe(p, t0),
		c.Observe(p, t0.Add(50*time.Millisecond)),
		c.Observe(p, t0.Add(100*time.Millisecond)),
	}
	want := []bool{false, true, false}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("click %d = %v, want %v", i, results[i], want[i])
		}
	}
}

func TestClickTracker_Reset(t *testing.T) {
	t.Parallel()

	var c ClickTracker
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := geo.MapPoint{X: 3, Y: 4}

	c.Observe(p, t0)
	c.Reset()
	if c.Observe(p, t0.Add(10*time.Millisecond)) {
		t.Error("double click reported after Reset")
	}
}
