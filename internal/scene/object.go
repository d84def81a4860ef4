// Package scene holds the set of visual objects that make up one rendered
// frame of the overlay. A Graph is rebuilt wholesale on every settings reload;
// there is no incremental diffing between generations.
package scene

import (
	"fmt"

	"github.com/papapumpkin/meridian/internal/geo"
)

// Kind tags what an object represents.
type Kind int

// Object kinds, in the order they are usually stacked.
const (
	KindBackground Kind = iota
	KindTerminatorLine
	KindTerminatorLabel
	KindLocationMarker
	KindMonitor
)

// String returns the kind's identity prefix.
func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindTerminatorLine:
		return "utc-line"
	case KindTerminatorLabel:
		return "utc-label"
	case KindLocationMarker:
		return "location"
	case KindMonitor:
		return "monitor"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// indexed reports whether objects of this kind come in numbered sets.
func (k Kind) indexed() bool {
	return k == KindTerminatorLine || k == KindTerminatorLabel
}

// ID identifies an object within a generation. Index distinguishes the
// members of indexed kinds and is zero for singletons.
type ID struct {
	Kind  Kind
	Index int
}

// Singleton returns the ID of the only object of kind k.
func Singleton(k Kind) ID {
	return ID{Kind: k}
}

// Indexed returns the ID of member i of kind k.
func Indexed(k Kind, i int) ID {
	return ID{Kind: k, Index: i}
}

// String returns the logical identity, e.g. "utc-line-1" or "monitor".
func (id ID) String() string {
	if id.Kind.indexed() {
		return fmt.Sprintf("%s-%d", id.Kind, id.Index)
	}
	return id.Kind.String()
}

// Color is a hex RGB color such as "#FF8800". The empty Color means "leave
// the underlying cell unchanged".
type Color string

// Surface is the drawing target handed to painters. Coordinates are surface
// pixels; text is placed on the character cell containing the given pixel.
type Surface interface {
	Size() (width, height int)
	Plot(x, y int, c Color)
	Text(x, y int, s string, c Color)
}

// Painter draws one object. It sees only the surface and the object's own
// state, never the rest of the graph.
type Painter interface {
	Paint(s Surface, o Object)
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(s Surface, o Object)

// Paint calls f(s, o).
func (f PainterFunc) Paint(s Surface, o Object) {
	f(s, o)
}

// Object is one item in the graph.
type Object struct {
	ID      ID
	Z       int
	Pos     geo.MapPoint
	Visible bool
	Painter Painter
}

// Kind is shorthand for o.ID.Kind.
func (o Object) Kind() Kind {
	return o.ID.Kind
}
