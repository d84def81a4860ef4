package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()

	f, err := os.Open(filepath.Join(dir, "meridian.log"))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var entries []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		entries = append(entries, m)
	}
	return entries
}

func TestFile_DebugGating(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l, err := NewFile(Options{Dir: dir, MaxAgeDays: 7, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	l.Log("hidden", SeverityDebug)
	l.Log("started", SeverityInfo)
	l.SetDebug(true)
	l.Log("visible", SeverityDebug)
	l.Log("https://example.org", SeverityOutput)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries := readEntries(t, dir)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %v", len(entries), entries)
	}

	tests := []struct {
		msg   string
		level string
	}{
		{"started", "info"},
		{"visible", "debug"},
		{"https://example.org", "info"},
	}
	for i, tt := range tests {
		if entries[i]["message"] != tt.msg || entries[i]["level"] != tt.level {
			t.Errorf("entry %d = %v, want message %q level %q", i, entries[i], tt.msg, tt.level)
		}
	}
	if entries[2]["kind"] != "output" {
		t.Errorf("output entry should carry kind=output, got %v", entries[2])
	}
}

func TestFile_Prune(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	backup := func(age time.Duration, ext string) string {
		return "meridian-" + now.Add(-age).Format(backupTimeFormat) + ext
	}
	old := backup(10*24*time.Hour, ".log")
	oldGz := backup(30*24*time.Hour, ".log.gz")
	recent := backup(24*time.Hour, ".log")
	for _, name := range []string{old, oldGz, recent, "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	l, err := NewFile(Options{Dir: dir, MaxAgeDays: 7, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer l.Close()

	// Nothing has been logged yet: pruning must not create the active file.
	if err := l.Prune(); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	l.Log("after prune", SeverityInfo)
	if err := l.Prune(); err != nil {
		t.Fatalf("second Prune: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	want := []string{"meridian.log", recent, "notes.txt"}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("files = %v, want %v", got, want)
			break
		}
	}
}

func TestBackupTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		wantOK bool
	}{
		{"plain backup", "meridian-2024-03-10T12-00-00.000.log", true},
		{"compressed backup", "meridian-2024-03-10T12-00-00.000.log.gz", true},
		{"active file", "meridian.log", false},
		{"other program", "other-2024-03-10T12-00-00.000.log", false},
		{"bad stamp", "meridian-yesterday.log", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := backupTime(tt.file); ok != tt.wantOK {
				t.Errorf("backupTime(%q) ok = %v, want %v", tt.file, ok, tt.wantOK)
			}
		})
	}
}

func TestLogf_NilLogger(t *testing.T) {
	t.Parallel()

	// Must not panic.
	Logf(nil, SeverityInfo, "value=%d", 1)
	Logf(Nop{}, SeverityInfo, "value=%d", 2)
}

func TestSeverityString(t *testing.T) {
	t.Parallel()

	for sev, want := range map[Severity]string{
		SeverityDebug:  "debug",
		SeverityInfo:   "info",
		SeverityOutput: "output",
	} {
		if got := sev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(sev), got, want)
		}
	}
}
