package cache

// Keyer generates cache keys.
type Keyer interface {
	// RenderKey generates a key for a rendered document.
	RenderKey(contentHash string, opts RenderKeyOpts) string
}

// RenderKeyOpts holds everything besides diagram content that changes a
// rendered document.
type RenderKeyOpts struct {
	Templates  []string // Registered template names
	Generation uint64   // Registry generation, so re-registered names miss
	Version    string   // Build version, so built-in template changes miss
	Spacing    float64  // Grid spacing, which pads the frame
	Format     string   // Payload kind, e.g. "document"
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(contentHash string, opts RenderKeyOpts) string {
	return hashKey("render", contentHash, opts.Templates, opts.Generation, opts.Version, opts.Spacing, opts.Format)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// when several deployments share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(contentHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(contentHash, opts)
}
