package canvas

import "fmt"

// State is the lifecycle phase of the Controller.
type State int

// Controller states. A reload moves Idle or Ready through TearingDown to
// Empty, and ReloadFinish moves Empty through Rebuilding to Ready.
const (
	StateIdle State = iota
	StateTearingDown
	StateEmpty
	StateRebuilding
	StateReady
)

// String returns the state name used in logs and panics.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTearingDown:
		return "tearing-down"
	case StateEmpty:
		return "empty"
	case StateRebuilding:
		return "rebuilding"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
