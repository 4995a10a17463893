package render

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/strategos/pkg/buildinfo"
	"github.com/matzehuels/strategos/pkg/cache"
	"github.com/matzehuels/strategos/pkg/diagram"
	"github.com/matzehuels/strategos/pkg/errors"
	"github.com/matzehuels/strategos/pkg/layout"
	"github.com/matzehuels/strategos/pkg/observability"
	"github.com/matzehuels/strategos/pkg/shape"
)

const cacheKeyType = "render"

// Compositor renders diagrams with a template registry and an optional cache.
//
// A Compositor holds no per-render state. It is safe for concurrent use as
// long as no two goroutines render the same *diagram.Diagram at once, since
// layout writes node positions.
type Compositor struct {
	Registry *shape.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Layout   layout.Options
	TTL      time.Duration
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithRegistry sets the template registry. Defaults to shape.Default().
func WithRegistry(r *shape.Registry) Option { return func(c *Compositor) { c.Registry = r } }

// WithCache sets the document cache. Defaults to a NullCache.
func WithCache(cc cache.Cache) Option { return func(c *Compositor) { c.Cache = cc } }

// WithKeyer sets the cache keyer. Defaults to cache.DefaultKeyer.
func WithKeyer(k cache.Keyer) Option { return func(c *Compositor) { c.Keyer = k } }

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option { return func(c *Compositor) { c.Logger = l } }

// WithLayoutMode selects whether layout overwrites existing positions.
func WithLayoutMode(m layout.Mode) Option { return func(c *Compositor) { c.Layout.Mode = m } }

// WithSpacing sets the grid spacing.
func WithSpacing(s float64) Option { return func(c *Compositor) { c.Layout.Spacing = s } }

// WithTTL sets the expiry of cached documents. Defaults to cache.DefaultTTL.
func WithTTL(d time.Duration) Option { return func(c *Compositor) { c.TTL = d } }

// New creates a compositor. Unset fields get their defaults.
func New(opts ...Option) *Compositor {
	c := &Compositor{}
	for _, opt := range opts {
		opt(c)
	}
	if c.Registry == nil {
		c.Registry = shape.Default()
	}
	if c.Cache == nil {
		c.Cache = cache.NewNullCache()
	}
	if c.Keyer == nil {
		c.Keyer = cache.NewDefaultKeyer()
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.TTL <= 0 {
		c.TTL = cache.DefaultTTL
	}
	return c
}

// Render lays out d and composes its document.
//
// Node positions written by layout stay on d. A missing edge endpoint
// returns an ErrCodeIntegrity error and no document.
func (c *Compositor) Render(ctx context.Context, d *diagram.Diagram) (*Document, error) {
	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, d.ID, d.NodeCount(), d.EdgeCount())

	doc, err := c.render(ctx, d)
	hooks.OnRenderComplete(ctx, d.ID, time.Since(start), err)
	if err != nil {
		c.Logger.Debug("render failed", "diagram", d.ID, "error", err)
		return nil, err
	}
	c.Logger.Debug("rendered diagram",
		"diagram", d.ID,
		"nodes", len(doc.Nodes),
		"edges", len(doc.Edges),
		"duration", time.Since(start))
	return doc, nil
}

func (c *Compositor) render(ctx context.Context, d *diagram.Diagram) (*Document, error) {
	layoutStart := time.Now()
	placed := layout.Grid(d, c.Layout)
	observability.Render().OnLayoutComplete(ctx, d.ID, placed, time.Since(layoutStart))

	key, keyErr := c.key(d)
	if keyErr == nil {
		if doc, ok := c.lookup(ctx, key); ok {
			return doc, nil
		}
	} else {
		c.Logger.Warn("cannot compute render cache key", "diagram", d.ID, "error", keyErr)
	}

	doc, err := c.compose(d)
	if err != nil {
		return nil, err
	}
	if keyErr == nil {
		c.store(ctx, key, doc)
	}
	return doc, nil
}

func (c *Compositor) compose(d *diagram.Diagram) (*Document, error) {
	doc := &Document{
		Nodes: make([]string, 0, d.NodeCount()),
		Edges: make([]string, 0, d.EdgeCount()),
	}
	for n := range d.Nodes() {
		a := nodeAttrs(n)
		doc.Nodes = append(doc.Nodes, c.Registry.Node(n.Template).Draw(a))
		doc.extend(a, c.Layout.Spacing)
	}
	for e := range d.Edges() {
		src, tgt, err := resolveEndpoints(d, e)
		if err != nil {
			return nil, err
		}
		doc.Edges = append(doc.Edges, c.Registry.Edge(e.Template).Draw(edgeAttrs(e, src, tgt)))
	}
	return doc, nil
}

// resolveEndpoints looks up the nodes an edge connects. The lookup is done
// against d on every call.
func resolveEndpoints(d *diagram.Diagram, e diagram.Edge) (src, tgt diagram.Node, err error) {
	src, ok := d.Node(e.Source)
	if !ok {
		return src, tgt, errors.Integrity(&errors.IntegrityError{Diagram: d.ID, Edge: e.Name, Endpoint: "source", Node: e.Source})
	}
	tgt, ok = d.Node(e.Target)
	if !ok {
		return src, tgt, errors.Integrity(&errors.IntegrityError{Diagram: d.ID, Edge: e.Name, Endpoint: "target", Node: e.Target})
	}
	return src, tgt, nil
}

func nodeAttrs(n diagram.Node) shape.Attrs {
	a := shape.Attrs{
		ID:          n.ID,
		Name:        n.Name,
		Label:       n.Name,
		Description: n.Description,
		Template:    n.Template,
		Size:        n.Size,
		Dependent:   n.Dependent,
	}
	if n.Position != nil {
		a.X, a.Y = n.Position.X, n.Position.Y
	}
	return a
}

func edgeAttrs(e diagram.Edge, src, tgt diagram.Node) shape.Attrs {
	a := shape.Attrs{
		ID:          e.ID,
		Name:        e.Name,
		Label:       e.Name,
		Description: e.Description,
		Template:    e.Template,
		Source:      e.Source,
		Target:      e.Target,
	}
	if src.Position != nil {
		a.X1, a.Y1 = src.Position.X, src.Position.Y
	}
	if tgt.Position != nil {
		a.X2, a.Y2 = tgt.Position.X, tgt.Position.Y
	}
	return a
}

// =============================================================================
// Caching
// =============================================================================

func (c *Compositor) key(d *diagram.Diagram) (string, error) {
	data, err := json.Marshal(d.Snapshot())
	if err != nil {
		return "", err
	}
	return c.Keyer.RenderKey(cache.Hash(data), cache.RenderKeyOpts{
		Templates:  c.Registry.Names(),
		Generation: c.Registry.Generation(),
		Version:    buildinfo.Version,
		Spacing:    c.Layout.Spacing,
		Format:     "document",
	}), nil
}

func (c *Compositor) lookup(ctx context.Context, key string) (*Document, bool) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err != nil {
		c.Logger.Warn("render cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		c.Logger.Warn("discarding corrupt render cache entry", "error", err)
		_ = c.Cache.Delete(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	c.Logger.Debug("render cache hit", "key", key)
	return &doc, true
}

func (c *Compositor) store(ctx context.Context, key string, doc *Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := c.Cache.Set(ctx, key, data, c.TTL); err != nil {
		c.Logger.Warn("render cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}
