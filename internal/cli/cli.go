// Package cli implements the strategos command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strategos/pkg/buildinfo"
	"github.com/matzehuels/strategos/pkg/cache"
	"github.com/matzehuels/strategos/pkg/config"
	"github.com/matzehuels/strategos/pkg/errors"
	"github.com/matzehuels/strategos/pkg/render"
	"github.com/matzehuels/strategos/pkg/shape"
	"github.com/matzehuels/strategos/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "strategos"

	// configEnv names a config file when --config is not given.
	configEnv = config.EnvPrefix + "CONFIG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root's PersistentPreRunE loads the config file, attaches the logger to
// the command context and freezes the template registry.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Strategos renders node/edge diagrams to SVG",
		Long:         `Strategos turns diagram descriptions (named nodes and the edges between them) into deterministic SVG documents, and serves a small HTTP API for editing and rendering diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			shape.Default().Freeze()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv(configEnv), "config file (TOML)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// newCache opens the configured render cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.Config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cc.Backend {
	case config.BackendMemory:
		return cache.NewMemoryCache(), nil
	case config.BackendFile:
		if cc.Dir == "" {
			c.Logger.Warn("no cache directory, caching disabled")
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(cc.Dir)
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cc.Redis.Addr,
			Password: cc.Redis.Password,
			DB:       cc.Redis.DB,
			Prefix:   cc.Redis.Prefix,
		})
	default:
		return cache.NewNullCache(), nil
	}
}

// engineOpts are per-command overrides of the config.
type engineOpts struct {
	noCache    bool
	layoutMode string  // empty keeps the configured mode
	width      float64 // zero keeps the configured frame
	height     float64
	title      string
}

// newStore wires cache, compositor and store from the config.
// The returned cache must be closed by the caller.
func (c *CLI) newStore(ctx context.Context, opts engineOpts) (*store.Store, cache.Cache, error) {
	cfg := *c.Config
	if opts.layoutMode != "" {
		cfg.Layout.Mode = opts.layoutMode
	}
	lo, err := cfg.LayoutOptions()
	if err != nil {
		return nil, nil, err
	}

	cc, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s cache", cfg.Cache.Backend)
	}

	keyer := cache.NewDefaultKeyer()
	if ns := cfg.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(keyer, ns)
	}

	comp := render.New(
		render.WithRegistry(shape.Default()),
		render.WithCache(cc),
		render.WithKeyer(keyer),
		render.WithLogger(c.Logger),
		render.WithLayoutMode(lo.Mode),
		render.WithSpacing(lo.Spacing),
		render.WithTTL(cfg.Cache.TTL),
	)

	width, height := cfg.Render.Width, cfg.Render.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}
	title := cfg.Render.Title
	if opts.title != "" {
		title = opts.title
	}

	st := store.New(
		store.WithCompositor(comp),
		store.WithLogger(c.Logger),
		store.WithFrame(width, height),
		store.WithDefaultTitle(title),
	)
	return st, cc, nil
}
