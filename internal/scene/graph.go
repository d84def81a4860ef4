package scene

import (
	"fmt"
	"sort"

	"github.com/papapumpkin/meridian/internal/geo"
)

// Graph owns every Object of the current generation, keyed by ID.
// It is not safe for concurrent use.
type Graph struct {
	objects map[ID]*entry
	seq     int
}

type entry struct {
	obj Object
	seq int // insertion order, breaks ties between equal Z
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{objects: make(map[ID]*entry)}
}

// Clear removes every object. Clearing an empty graph is a no-op.
func (g *Graph) Clear() {
	if len(g.objects) == 0 {
		return
	}
	g.objects = make(map[ID]*entry)
	g.seq = 0
}

// Add inserts o. Adding a second object with an existing ID is a controller
// bug and panics.
func (g *Graph) Add(o Object) {
	if _, dup := g.objects[o.ID]; dup {
		panic(fmt.Sprintf("scene: duplicate object %q", o.ID))
	}
	g.objects[o.ID] = &entry{obj: o, seq: g.seq}
	g.seq++
}

// Find returns the object with the given ID.
func (g *Graph) Find(id ID) (Object, bool) {
	e, ok := g.objects[id]
	if !ok {
		return Object{}, false
	}
	return e.obj, true
}

// SetPosition moves the object with the given ID. It reports false when no
// such object exists.
func (g *Graph) SetPosition(id ID, p geo.MapPoint) bool {
	e, ok := g.objects[id]
	if !ok {
		return false
	}
	e.obj.Pos = p
	return true
}

// Len returns the number of objects.
func (g *Graph) Len() int {
	return len(g.objects)
}

// Objects returns a copy of every object ordered by Z, with insertion order
// breaking ties. This is paint order.
func (g *Graph) Objects() []Object {
	entries := make([]*entry, 0, len(g.objects))
	for _, e := range g.objects {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].obj.Z != entries[j].obj.Z {
			return entries[i].obj.Z < entries[j].obj.Z
		}
		return entries[i].seq < entries[j].seq
	})

	out := make([]Object, len(entries))
	for i, e := range entries {
		out[i] = e.obj
	}
	return out
}

// Count returns how many objects of kind k exist.
func (g *Graph) Count(k Kind) int {
	n := 0
	for id := range g.objects {
		if id.Kind == k {
			n++
		}
	}
	return n
}

// Render paints every visible object onto s in Z order.
func (g *Graph) Render(s Surface) {
	for _, o := range g.Objects() {
		if !o.Visible || o.Painter == nil {
			continue
		}
		o.Painter.Paint(s, o)
	}
}
