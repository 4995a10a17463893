package diagram

import (
	"iter"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/strategos/pkg/errors"
)

// Defaults applied to entities that leave the field unset.
const (
	DefaultNodeTemplate = "circle"
	DefaultEdgeTemplate = "line"
	DefaultSize         = 10.0
)

// NewID returns a fresh entity identity.
func NewID() string { return uuid.NewString() }

// Position is a point in diagram coordinates.
type Position struct {
	X, Y float64
}

// Node is a vertex of a diagram.
type Node struct {
	ID          string
	Name        string // Unique within the owning diagram
	Description string
	Template    string    // Shape template name
	Size        float64   // Radius/scale
	Position    *Position // Nil until laid out or supplied by the caller
	Dependent   bool      // Derived, non-primary node
}

// Edge is a directed connection between two nodes, referenced by name.
type Edge struct {
	ID          string
	Name        string // Unique within the owning diagram
	Source      string // Source node name
	Target      string // Target node name
	Description string
	Template    string // Shape template name
}

// Diagram owns a named set of nodes and edges.
//
// The zero value is not usable; use New or FromSpec.
type Diagram struct {
	ID          string
	Name        string
	Description string
	Filename    string // Free-form label, not a filesystem path

	nodes map[string]*Node
	edges map[string]*Edge
}

// New creates an empty diagram. An empty id is replaced by a generated one.
func New(id string) *Diagram {
	if id == "" {
		id = NewID()
	}
	return &Diagram{
		ID:    id,
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
	}
}

// AddNode inserts n under its name, replacing any node with the same name.
// Missing ID, template and size are filled with their defaults.
func (d *Diagram) AddNode(n Node) error {
	if err := errors.ValidateName(n.Name); err != nil {
		return err
	}
	if n.ID == "" {
		n.ID = NewID()
	}
	if n.Template == "" {
		n.Template = DefaultNodeTemplate
	}
	if n.Size <= 0 {
		n.Size = DefaultSize
	}
	if n.Position != nil {
		p := *n.Position
		n.Position = &p
	}
	d.nodes[n.Name] = &n
	return nil
}

// AddEdge inserts e under its name, replacing any edge with the same name.
// The endpoints are not checked; see Validate.
func (d *Diagram) AddEdge(e Edge) error {
	if err := errors.ValidateName(e.Name); err != nil {
		return err
	}
	if e.Source == "" || e.Target == "" {
		return errors.New(errors.ErrCodeInvalidInput, "edge %q needs a source and a target", e.Name)
	}
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.Template == "" {
		e.Template = DefaultEdgeTemplate
	}
	d.edges[e.Name] = &e
	return nil
}

// Node returns a copy of the node with the given name.
func (d *Diagram) Node(name string) (Node, bool) {
	n, ok := d.nodes[name]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Edge returns a copy of the edge with the given name.
func (d *Diagram) Edge(name string) (Edge, bool) {
	e, ok := d.edges[name]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Nodes returns an iterator over copies of the nodes in name order.
// Each call to the returned sequence starts a fresh pass.
func (d *Diagram) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, name := range slices.Sorted(maps.Keys(d.nodes)) {
			if !yield(d.nodes[name].clone()) {
				return
			}
		}
	}
}

// Edges returns an iterator over copies of the edges in name order.
// Each call to the returned sequence starts a fresh pass.
func (d *Diagram) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, name := range slices.Sorted(maps.Keys(d.edges)) {
			if !yield(*d.edges[name]) {
				return
			}
		}
	}
}

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Place sets the position of the named node. It reports false if the
// diagram has no such node.
func (d *Diagram) Place(name string, p Position) bool {
	n, ok := d.nodes[name]
	if !ok {
		return false
	}
	n.Position = &p
	return true
}

// Validate checks that every edge endpoint names a node of d.
// It returns the same ErrCodeIntegrity error the compositor raises at
// render time, for the first offending edge in name order.
func (d *Diagram) Validate() error {
	for e := range d.Edges() {
		if _, ok := d.nodes[e.Source]; !ok {
			return errors.Integrity(&errors.IntegrityError{Diagram: d.ID, Edge: e.Name, Endpoint: "source", Node: e.Source})
		}
		if _, ok := d.nodes[e.Target]; !ok {
			return errors.Integrity(&errors.IntegrityError{Diagram: d.ID, Edge: e.Name, Endpoint: "target", Node: e.Target})
		}
	}
	return nil
}

func (n *Node) clone() Node {
	c := *n
	if n.Position != nil {
		p := *n.Position
		c.Position = &p
	}
	return c
}
