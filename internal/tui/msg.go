package tui

import (
	"time"

	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/settings"
)

// Settings lifecycle messages, sent by Bridge in the order the settings
// source publishes them.

// MsgReloadStart is sent when the settings are about to be replaced.
type MsgReloadStart struct{}

// MsgReloadFinish carries the new settings snapshot.
type MsgReloadFinish struct {
	Snapshot settings.Snapshot
}

// MsgLocation is sent when the location tracker reports a new fix.
type MsgLocation struct {
	Point geo.GeoPoint
}

// MsgTick is a recompute timer firing. Gen identifies the timer that
// scheduled it so ticks from a torn-down scene are dropped.
type MsgTick struct {
	Gen uint64
	At  time.Time
}

// MsgActionDone reports the outcome of a menu action that ran off the event
// loop.
type MsgActionDone struct {
	Text string
	Err  error
}
