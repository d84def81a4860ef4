package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf, false)
	p.Heading("meridian")
	p.OK("places catalog with %d entries", 3)
	p.Info("no settings file")

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("plain output contains escape codes: %q", out)
	}
	for _, want := range []string{"meridian\n", "✓ places catalog with 3 entries\n", "· no settings file\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestPrinter_Colored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, true).Fail("geoip: %s", "missing")
	if !strings.Contains(buf.String(), red+bold+"✗"+reset) {
		t.Errorf("colored fail mark missing, got %q", buf.String())
	}
}

func TestPrinter_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		run     func(p *Printer)
		want    string
		wantErr bool
	}{
		{"clean", func(p *Printer) { p.OK("fine") }, "all checks passed", false},
		{"warnings only", func(p *Printer) { p.Warn("odd") }, "ok with 1 warning(s)", false},
		{"failure", func(p *Printer) { p.Warn("odd"); p.Fail("bad") }, "1 check(s) failed, 1 warning(s)", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			p := New(&buf, false)
			tt.run(p)
			err := p.Summary()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Summary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
