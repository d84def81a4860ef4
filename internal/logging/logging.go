// Package logging is the fire-and-forget log sink shared by the overlay.
// Callers hand it a line of text and a severity; they never inspect a result.
package logging

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity classifies a log entry.
type Severity int

const (
	SeverityDebug  Severity = iota // Diagnostic detail, saved only in debug mode
	SeverityInfo                   // Normal operational events
	SeverityOutput                 // Side effects the user triggered (opened URLs, copied text)
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityOutput:
		return "output"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Logger accepts log entries.
type Logger interface {
	Log(text string, sev Severity)
}

// Nop discards every entry.
type Nop struct{}

// Log does nothing.
func (Nop) Log(string, Severity) {}

// Logf formats and logs through l. A nil l is tolerated so that collaborators
// can run without a sink.
func Logf(l Logger, sev Severity, format string, args ...any) {
	if l == nil {
		return
	}
	l.Log(fmt.Sprintf(format, args...), sev)
}

// Options configures a File logger.
type Options struct {
	Dir        string    // directory for meridian.log; created if missing
	MaxAgeDays int       // rotated files older than this are deleted
	MaxSizeMB  int       // rotate once the active file reaches this size
	Console    io.Writer // optional extra human-readable sink

	// Now stamps pruning decisions. Nil means time.Now.
	Now func() time.Time
}

const (
	logPrefix = "meridian-"
	logExt    = ".log"
)

// File writes JSON lines to a rotating file under Options.Dir.
type File struct {
	zl     zerolog.Logger
	rot    *lumberjack.Logger
	debug  atomic.Bool
	dir    string
	maxAge int
	now    func() time.Time
}

// NewFile opens the log directory and returns a logger writing into it.
func NewFile(opts Options) (*File, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create %s: %w", opts.Dir, err)
	}

	rot := &lumberjack.Logger{
		Filename: filepath.Join(opts.Dir, "meridian"+logExt),
		MaxSize:  opts.MaxSizeMB,
		MaxAge:   opts.MaxAgeDays,
	}

	var w io.Writer = rot
	if opts.Console != nil {
		w = zerolog.MultiLevelWriter(rot, zerolog.ConsoleWriter{Out: opts.Console, NoColor: true})
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &File{
		zl:     zerolog.New(w).With().Timestamp().Logger(),
		rot:    rot,
		dir:    opts.Dir,
		maxAge: opts.MaxAgeDays,
		now:    now,
	}, nil
}

// SetDebug toggles whether debug entries are saved.
func (f *File) SetDebug(on bool) {
	f.debug.Store(on)
}

// Log writes one entry. Debug entries are dropped unless SetDebug(true).
func (f *File) Log(text string, sev Severity) {
	switch sev {
	case SeverityDebug:
		if !f.debug.Load() {
			return
		}
		f.zl.Debug().Msg(text)
	case SeverityOutput:
		f.zl.Info().Str("kind", "output").Msg(text)
	default:
		f.zl.Info().Msg(text)
	}
}

// backupTimeFormat is the timestamp lumberjack puts into rotated file names.
const backupTimeFormat = "2006-01-02T15-04-05.000"

// Prune deletes rotated log files older than Options.MaxAgeDays. The active
// file is never touched and no rotation is forced.
func (f *File) Prune() error {
	if f.maxAge <= 0 {
		return nil
	}
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("logging: prune %s: %w", f.dir, err)
	}
	cutoff := f.now().Add(-time.Duration(f.maxAge) * 24 * time.Hour)
	var errs []error
	for _, e := range entries {
		ts, ok := backupTime(e.Name())
		if !ok || e.IsDir() || !ts.Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("logging: prune: %w", errors.Join(errs...))
	}
	return nil
}

// backupTime parses the rotation time out of a backup name such as
// meridian-2024-03-10T12-00-00.000.log or its .gz form.
func backupTime(name string) (time.Time, bool) {
	name = strings.TrimSuffix(name, ".gz")
	if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logExt) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logExt)
	ts, err := time.Parse(backupTimeFormat, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Close closes the active log file.
func (f *File) Close() error {
	return f.rot.Close()
}
