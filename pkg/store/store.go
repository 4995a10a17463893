package store

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/strategos/pkg/diagram"
	"github.com/matzehuels/strategos/pkg/errors"
	"github.com/matzehuels/strategos/pkg/observability"
	"github.com/matzehuels/strategos/pkg/render"
)

// Render formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Formats lists the supported render formats.
var Formats = []string{FormatSVG, FormatJSON}

// Snapshot is the structural form of a stored diagram plus its rendering.
type Snapshot struct {
	diagram.Spec

	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Diagram holds the rendered fragments, nodes first.
	Diagram []string `json:"diagram"`
	// RenderError is set instead of Diagram when rendering failed.
	RenderError string `json:"render_error,omitempty"`
}

// Rendered is a diagram rendered in one format.
type Rendered struct {
	Format      string
	ContentType string
	Data        []byte
}

type record struct {
	d         *diagram.Diagram
	createdAt time.Time
	updatedAt time.Time
}

// Store is an in-memory diagram collection. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	diagrams map[string]*record

	compositor *render.Compositor
	logger     *log.Logger
	svgOpts    []render.SVGOption
	title      string
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCompositor sets the compositor used for snapshots and renders.
func WithCompositor(c *render.Compositor) Option { return func(s *Store) { s.compositor = c } }

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option { return func(s *Store) { s.logger = l } }

// WithFrame sets the minimum frame of rendered SVG documents.
func WithFrame(w, h float64) Option {
	return func(s *Store) { s.svgOpts = append(s.svgOpts, render.WithFrame(w, h)) }
}

// WithDefaultTitle sets the SVG title used for diagrams without a name.
func WithDefaultTitle(t string) Option { return func(s *Store) { s.title = t } }

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		diagrams: make(map[string]*record),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.compositor == nil {
		s.compositor = render.New(render.WithLogger(s.logger))
	}
	return s
}

// Create builds a diagram from spec and stores it. An empty spec ID is
// replaced by a generated one; an ID already in use is a conflict.
func (s *Store) Create(ctx context.Context, spec diagram.Spec) (Snapshot, error) {
	d, err := diagram.FromSpec(spec)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.diagrams[d.ID]; ok {
		return Snapshot{}, errors.New(errors.ErrCodeConflict, "diagram %s already exists", d.ID)
	}
	now := s.now()
	r := &record{d: d, createdAt: now, updatedAt: now}
	s.diagrams[d.ID] = r

	s.logger.Info("created diagram", "id", d.ID, "nodes", d.NodeCount(), "edges", d.EdgeCount())
	observability.Store().OnMutation(ctx, "create", d.ID)
	return s.snapshot(ctx, r), nil
}

// Get returns the snapshot of diagram id.
func (s *Store) Get(ctx context.Context, id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.diagrams[id]
	if !ok {
		return Snapshot{}, errors.NotFound(id)
	}
	return s.snapshot(ctx, r), nil
}

// Update replaces diagram id with the one described by spec. Nothing of
// the previous diagram survives except its id and creation time; the spec's
// own ID is ignored.
func (s *Store) Update(ctx context.Context, id string, spec diagram.Spec) (Snapshot, error) {
	spec.ID = id
	d, err := diagram.FromSpec(spec)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.diagrams[id]
	if !ok {
		return Snapshot{}, errors.NotFound(id)
	}
	r.d = d
	r.updatedAt = s.now()

	s.logger.Info("replaced diagram", "id", id, "nodes", d.NodeCount(), "edges", d.EdgeCount())
	observability.Store().OnMutation(ctx, "update", id)
	return s.snapshot(ctx, r), nil
}

// Delete removes diagram id and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.diagrams[id]; !ok {
		return false
	}
	delete(s.diagrams, id)

	s.logger.Info("deleted diagram", "id", id)
	observability.Store().OnMutation(ctx, "delete", id)
	return true
}

// List returns snapshots of all diagrams, oldest first, ties broken by id.
func (s *Store) List(ctx context.Context) []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*record, 0, len(s.diagrams))
	for _, r := range s.diagrams {
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b *record) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return cmp.Compare(a.d.ID, b.d.ID)
	})

	out := make([]Snapshot, 0, len(records))
	for _, r := range records {
		out = append(out, s.snapshot(ctx, r))
	}
	return out
}

// Len returns the number of stored diagrams.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.diagrams)
}

// AddNode inserts a node into diagram id, replacing any node of the same name.
func (s *Store) AddNode(ctx context.Context, id string, ns diagram.NodeSpec) (Snapshot, error) {
	n, err := ns.Node()
	if err != nil {
		return Snapshot{}, err
	}
	return s.mutate(ctx, id, "add_node", func(d *diagram.Diagram) error { return d.AddNode(n) })
}

// AddEdge inserts an edge into diagram id, replacing any edge of the same
// name. The endpoints are not checked until the diagram is rendered.
func (s *Store) AddEdge(ctx context.Context, id string, es diagram.EdgeSpec) (Snapshot, error) {
	e, err := es.Edge()
	if err != nil {
		return Snapshot{}, err
	}
	return s.mutate(ctx, id, "add_edge", func(d *diagram.Diagram) error { return d.AddEdge(e) })
}

func (s *Store) mutate(ctx context.Context, id, op string, fn func(*diagram.Diagram) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.diagrams[id]
	if !ok {
		return Snapshot{}, errors.NotFound(id)
	}
	if err := fn(r.d); err != nil {
		return Snapshot{}, err
	}
	r.updatedAt = s.now()

	s.logger.Debug("mutated diagram", "id", id, "op", op)
	observability.Store().OnMutation(ctx, op, id)
	return s.snapshot(ctx, r), nil
}

// Render renders diagram id. The empty format selects svg.
//
// Besides NOT_FOUND, Render fails with INTEGRITY when an edge names a
// missing node and with UNSUPPORTED for unknown formats.
func (s *Store) Render(ctx context.Context, id, format string) (*Rendered, error) {
	if format == "" {
		format = FormatSVG
	}
	if !slices.Contains(Formats, format) {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s (supported: svg, json)", format)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.diagrams[id]
	if !ok {
		return nil, errors.NotFound(id)
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(s.snapshot(ctx, r), "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode diagram %s", id)
		}
		return &Rendered{Format: format, ContentType: "application/json", Data: data}, nil
	default:
		doc, err := s.compositor.Render(ctx, r.d)
		if err != nil {
			return nil, err
		}
		title := r.d.Name
		if title == "" {
			title = s.title
		}
		opts := append(slices.Clone(s.svgOpts), render.WithTitle(title))
		return &Rendered{Format: format, ContentType: "image/svg+xml", Data: doc.SVG(opts...)}, nil
	}
}

// snapshot renders r and builds its snapshot. Callers hold s.mu.
func (s *Store) snapshot(ctx context.Context, r *record) Snapshot {
	snap := Snapshot{
		NodeCount: r.d.NodeCount(),
		EdgeCount: r.d.EdgeCount(),
		CreatedAt: r.createdAt,
		UpdatedAt: r.updatedAt,
	}
	doc, err := s.compositor.Render(ctx, r.d)
	if err != nil {
		snap.RenderError = err.Error()
	} else {
		snap.Diagram = doc.Fragments()
	}
	// Taken after rendering so the snapshot shows the laid-out positions.
	snap.Spec = r.d.Snapshot()
	return snap
}
