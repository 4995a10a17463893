package diagram

import (
	"fmt"

	"github.com/matzehuels/strategos/pkg/errors"
)

// Spec is the structural snapshot of a diagram.
// It is the form diagrams take in files, API requests and responses.
type Spec struct {
	ID          string              `json:"id,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Filename    string              `json:"filename,omitempty"`
	Nodes       map[string]NodeSpec `json:"nodes"`
	Edges       map[string]EdgeSpec `json:"edges"`
}

// NodeSpec is the structural form of a node.
// Name defaults to the node's key in Spec.Nodes.
type NodeSpec struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Template    string   `json:"template_name,omitempty"`
	Size        float64  `json:"size,omitempty"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	Dependent   bool     `json:"dependent,omitempty"`
}

// EdgeSpec is the structural form of an edge.
// Name defaults to the edge's key in Spec.Edges.
type EdgeSpec struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Description string `json:"description,omitempty"`
	Template    string `json:"template_name,omitempty"`
}

// Snapshot returns the structural form of d.
func (d *Diagram) Snapshot() Spec {
	s := Spec{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Filename:    d.Filename,
		Nodes:       make(map[string]NodeSpec, len(d.nodes)),
		Edges:       make(map[string]EdgeSpec, len(d.edges)),
	}
	for n := range d.Nodes() {
		s.Nodes[n.Name] = n.Spec()
	}
	for e := range d.Edges() {
		s.Edges[e.Name] = e.Spec()
	}
	return s
}

// FromSpec builds a diagram from its structural form.
// An empty ID is replaced by a generated one, as are empty node and edge IDs.
func FromSpec(s Spec) (*Diagram, error) {
	if err := errors.ValidateFilename(s.Filename); err != nil {
		return nil, err
	}

	d := New(s.ID)
	d.Name = s.Name
	d.Description = s.Description
	d.Filename = s.Filename

	for key, ns := range s.Nodes {
		n, err := ns.node(key)
		if err != nil {
			return nil, err
		}
		if err := d.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %q: %w", key, err)
		}
	}
	for key, es := range s.Edges {
		e, err := es.edge(key)
		if err != nil {
			return nil, err
		}
		if err := d.AddEdge(e); err != nil {
			return nil, fmt.Errorf("edge %q: %w", key, err)
		}
	}
	return d, nil
}

// Spec returns the structural form of n.
func (n Node) Spec() NodeSpec {
	s := NodeSpec{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		Template:    n.Template,
		Size:        n.Size,
		Dependent:   n.Dependent,
	}
	if n.Position != nil {
		x, y := n.Position.X, n.Position.Y
		s.X, s.Y = &x, &y
	}
	return s
}

// Spec returns the structural form of e.
func (e Edge) Spec() EdgeSpec {
	return EdgeSpec{
		ID:          e.ID,
		Name:        e.Name,
		Source:      e.Source,
		Target:      e.Target,
		Description: e.Description,
		Template:    e.Template,
	}
}

// Node converts the spec into a Node; the name must be set.
func (s NodeSpec) Node() (Node, error) {
	return s.node("")
}

// Edge converts the spec into an Edge; the name must be set.
func (s EdgeSpec) Edge() (Edge, error) {
	return s.edge("")
}

func (s NodeSpec) node(key string) (Node, error) {
	name, err := specName("node", key, s.Name)
	if err != nil {
		return Node{}, err
	}
	n := Node{
		ID:          s.ID,
		Name:        name,
		Description: s.Description,
		Template:    s.Template,
		Size:        s.Size,
		Dependent:   s.Dependent,
	}
	if s.X != nil && s.Y != nil {
		n.Position = &Position{X: *s.X, Y: *s.Y}
	}
	return n, nil
}

func (s EdgeSpec) edge(key string) (Edge, error) {
	name, err := specName("edge", key, s.Name)
	if err != nil {
		return Edge{}, err
	}
	return Edge{
		ID:          s.ID,
		Name:        name,
		Source:      s.Source,
		Target:      s.Target,
		Description: s.Description,
		Template:    s.Template,
	}, nil
}

// specName reconciles a map key with the name stored in the entry.
func specName(kind, key, name string) (string, error) {
	switch {
	case name == "":
		return key, nil
	case key == "" || key == name:
		return name, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "%s key %q does not match its name %q", kind, key, name)
	}
}
