package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/meridian/internal/config"
	"github.com/papapumpkin/meridian/internal/logging"
	"github.com/papapumpkin/meridian/internal/places"
)

// EventKind is the phase of a reload.
type EventKind int

const (
	// EventReloadStart announces that the current snapshot is being replaced.
	EventReloadStart EventKind = iota
	// EventReloadFinish carries the new snapshot.
	EventReloadFinish
)

// Event is one step of the reload lifecycle. Snapshot is set only on
// EventReloadFinish.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}

// PlaceLister supplies the city catalog during a reload.
type PlaceLister interface {
	List(ctx context.Context) ([]places.Place, error)
}

// Source reads configuration through viper and publishes reloads.
type Source struct {
	v      *viper.Viper
	places PlaceLister
	log    logging.Logger

	events chan Event

	// mu serializes reloads so Start/Finish pairs never interleave.
	mu      sync.Mutex
	gen     uint64
	termW   int
	termH   int
	current Snapshot

	watcher *Watcher
	wg      sync.WaitGroup
}

// Option configures a Source.
type Option func(*Source)

// WithPlaces sets the catalog consulted on every reload.
func WithPlaces(p PlaceLister) Option {
	return func(s *Source) { s.places = p }
}

// WithLogger sets the log sink.
func WithLogger(l logging.Logger) Option {
	return func(s *Source) { s.log = l }
}

// NewSource returns a Source reading from v. No reload happens until Reload
// is called.
func NewSource(v *viper.Viper, opts ...Option) *Source {
	s := &Source{
		v:      v,
		log:    logging.Nop{},
		events: make(chan Event, 16),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Events returns the ordered lifecycle channel.
func (s *Source) Events() <-chan Event {
	return s.events
}

// Current returns the most recent snapshot.
func (s *Source) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reload re-reads the configuration and publishes ReloadStart followed by
// ReloadFinish. Problems reading the file are logged and the reload still
// completes with defaults and whatever else could be read.
func (s *Source) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Log("settings reload started", logging.SeverityInfo)
	s.events <- Event{Kind: EventReloadStart}

	if s.v.ConfigFileUsed() != "" {
		if err := s.v.ReadInConfig(); err != nil {
			logging.Logf(s.log, logging.SeverityInfo, "settings: read %s: %v", s.v.ConfigFileUsed(), err)
		}
	}

	cfg, err := config.Load(s.v)
	if err != nil {
		logging.Logf(s.log, logging.SeverityInfo, "settings: %v", err)
	}

	catalog := s.loadPlaces()
	snap := Build(cfg, s.termW, s.termH, catalog)
	s.gen++
	snap.Generation = s.gen
	for _, w := range snap.Warnings {
		logging.Logf(s.log, logging.SeverityInfo, "settings warning: %s", w)
	}
	s.current = snap

	logging.Logf(s.log, logging.SeverityInfo, "settings reload finished (generation %d)", snap.Generation)
	s.events <- Event{Kind: EventReloadFinish, Snapshot: snap}
}

func (s *Source) loadPlaces() []places.Place {
	if s.places == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	list, err := s.places.List(ctx)
	if err != nil {
		logging.Logf(s.log, logging.SeverityInfo, "settings: %v", err)
		return nil
	}
	return list
}

// SetScreen records the terminal surface size and reloads if it changed.
func (s *Source) SetScreen(width, height int) {
	s.mu.Lock()
	changed := width != s.termW || height != s.termH
	s.termW, s.termH = width, height
	s.mu.Unlock()

	if changed {
		s.Reload()
	}
}

// Watch reloads whenever the file at path changes on disk.
func (s *Source) Watch(path string) error {
	w, err := NewWatcher(path)
	if err != nil {
		return fmt.Errorf("settings: watch %s: %w", path, err)
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return fmt.Errorf("settings: watch %s: %w", path, err)
	}
	s.watcher = w

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for range w.Changes {
			logging.Logf(s.log, logging.SeverityDebug, "settings file %s changed", path)
			s.Reload()
		}
	}()
	return nil
}

// Close stops the file watcher, if any.
func (s *Source) Close() {
	if s.watcher != nil {
		s.watcher.Stop()
		s.wg.Wait()
		s.watcher = nil
	}
}
