// Package locate provides the current geographic position of the machine
// running the overlay and reports when it changes.
//
// A Provider answers "where are we now"; a Tracker polls one on an interval
// and emits only actual changes, so the overlay can move its location marker
// without redrawing on every poll.
package locate

import (
	"context"
	"errors"
	"time"

	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/logging"
)

// ErrUnknownLocation is returned by providers that cannot determine a
// position.
var ErrUnknownLocation = errors.New("location unknown")

// Provider resolves the current position.
type Provider interface {
	Locate(ctx context.Context) (geo.GeoPoint, error)
}

// Static always reports the same point, usually the configured fallback.
type Static struct {
	Point geo.GeoPoint
}

// Locate returns s.Point.
func (s Static) Locate(context.Context) (geo.GeoPoint, error) {
	return s.Point, nil
}

// Chain tries each provider in order and returns the first success.
type Chain []Provider

// Locate returns the first provider's answer that does not fail.
func (c Chain) Locate(ctx context.Context) (geo.GeoPoint, error) {
	errs := make([]error, 0, len(c))
	for _, p := range c {
		pt, err := p.Locate(ctx)
		if err == nil {
			return pt, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return geo.GeoPoint{}, ErrUnknownLocation
	}
	return geo.GeoPoint{}, errors.Join(errs...)
}

// Tracker polls a Provider and emits positions that differ from the last one
// emitted.
type Tracker struct {
	Provider Provider
	Interval time.Duration
	Log      logging.Logger
}

// Run polls immediately and then every Interval until ctx is done. emit is
// called from Run's goroutine. Provider errors are logged and the previous
// position is kept.
func (t *Tracker) Run(ctx context.Context, emit func(geo.GeoPoint)) {
	var (
		last    geo.GeoPoint
		haveAny bool
	)

	poll := func() {
		pt, err := t.Provider.Locate(ctx)
		if err != nil {
			logging.Logf(t.Log, logging.SeverityInfo, "location lookup failed: %v", err)
			return
		}
		if haveAny && pt == last {
			return
		}
		last, haveAny = pt, true
		logging.Logf(t.Log, logging.SeverityDebug, "location changed to %s", pt)
		emit(pt)
	}

	poll()
	if t.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}
