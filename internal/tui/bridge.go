package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/settings"
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge turns events produced on other goroutines into program messages.
// tea.Program.Send is goroutine-safe, so the settings watcher and the
// location tracker can both use one bridge.
type Bridge struct {
	program Sender
}

// Verify *tea.Program satisfies Sender at compile time.
var _ Sender = (*tea.Program)(nil)

// NewBridge creates a bridge that sends messages to the given program.
func NewBridge(p Sender) *Bridge {
	return &Bridge{program: p}
}

// ForwardSettings relays settings events until ctx is done or events is
// closed. Order is preserved.
func (b *Bridge) ForwardSettings(ctx context.Context, events <-chan settings.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Kind {
			case settings.EventReloadStart:
				b.program.Send(MsgReloadStart{})
			case settings.EventReloadFinish:
				b.program.Send(MsgReloadFinish{Snapshot: ev.Snapshot})
			}
		}
	}
}

// Location sends MsgLocation. Its signature matches locate.Tracker's emit
// callback.
func (b *Bridge) Location(p geo.GeoPoint) {
	b.program.Send(MsgLocation{Point: p})
}
