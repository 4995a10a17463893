package shape

import (
	"slices"
	"sync"

	"github.com/matzehuels/strategos/pkg/errors"
)

// Default template names applied when a lookup misses.
const (
	DefaultNode = "circle"
	DefaultEdge = "line"
)

// Registry maps template names to templates.
//
// The zero value is not usable; create registries with New or NewBuiltin.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
	frozen    bool
	gen       uint64 // Bumped by every successful Register
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// NewBuiltin returns a registry holding every built-in template.
func NewBuiltin() *Registry {
	r := New()
	for name, t := range builtins() {
		r.templates[name] = t
	}
	return r
}

var defaultRegistry = NewBuiltin()

// Default returns the process-wide registry. It starts out with the built-in
// templates; applications may register more before freezing it.
func Default() *Registry { return defaultRegistry }

// Register binds name to t, replacing any previous binding.
// It fails only if the name is malformed, t is nil, or the registry is frozen.
func (r *Registry) Register(name string, t Template) error {
	if err := errors.ValidateTemplateName(name); err != nil {
		return err
	}
	if t == nil {
		return errors.New(errors.ErrCodeInvalidTemplate, "template %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return errors.New(errors.ErrCodeFrozen, "registry is frozen, cannot register %q", name)
	}
	r.templates[name] = t
	r.gen++
	return nil
}

// Freeze rejects all further registrations.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Generation counts successful registrations. Two calls returning the same
// value saw the same set of bindings.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// Get returns the template bound to name.
// The boolean is false when nothing is registered under name.
func (r *Registry) Get(name string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	return t, ok
}

// Node resolves a node template, falling back to DefaultNode.
func (r *Registry) Node(name string) Template {
	return r.resolve(name, DefaultNode, Circle{})
}

// Edge resolves an edge template, falling back to DefaultEdge.
func (r *Registry) Edge(name string) Template {
	return r.resolve(name, DefaultEdge, Line{})
}

func (r *Registry) resolve(name, fallback string, last Template) Template {
	if t, ok := r.Get(name); ok {
		return t
	}
	if t, ok := r.Get(fallback); ok {
		return t
	}
	return last
}

// Names returns the registered template names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

func builtins() map[string]Template {
	return map[string]Template{
		"circle":    Circle{},
		"rectangle": Rectangle{},
		"ellipse":   Ellipse{},
		"diamond":   Diamond{},
		"hexagon":   Hexagon{},
		"line":      Line{},
		"dashed":    Line{Dash: "5,5"},
		"dotted":    Line{Dash: "2,4"},
	}
}
