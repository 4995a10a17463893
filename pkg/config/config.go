// Package config loads strategos settings from TOML and the environment.
//
// Settings are layered: [Default] values, then the TOML file (if any), then
// STRATEGOS_* environment variables. Unknown keys in the file are rejected
// so typos do not silently fall back to defaults.
//
//	[server]
//	addr = ":8000"
//
//	[cache]
//	backend = "redis"
//	ttl = "1h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[layout]
//	mode = "preserve"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/strategos/pkg/errors"
	"github.com/matzehuels/strategos/pkg/layout"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STRATEGOS_"

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Backends lists the accepted cache backends.
var Backends = []string{BackendNone, BackendMemory, BackendFile, BackendRedis}

// Config holds all settings.
type Config struct {
	Server ServerConfig `toml:"server"`
	CORS   CORSConfig   `toml:"cors"`
	Cache  CacheConfig  `toml:"cache"`
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// CORSConfig configures cross-origin access to the API.
type CORSConfig struct {
	Origins          []string `toml:"origins"`
	Methods          []string `toml:"methods"`
	Headers          []string `toml:"headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
}

// CacheConfig selects and configures the render cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	TTL       time.Duration `toml:"ttl"`
	Namespace string        `toml:"namespace"` // Prefixes render keys on every backend
	Redis     RedisConfig   `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// LayoutConfig configures the grid layout.
type LayoutConfig struct {
	Mode    string  `toml:"mode"`
	Spacing float64 `toml:"spacing"`
}

// RenderConfig configures full SVG documents.
type RenderConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Title  string  `toml:"title"` // Used for diagrams without a name
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		CORS: CORSConfig{
			Origins: []string{
				"http://localhost:3000",
				"http://localhost:8000",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:8000",
			},
			Methods:          []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			Headers:          []string{"*"},
			AllowCredentials: true,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     DefaultCacheDir(),
			TTL:     24 * time.Hour,
			Redis:   RedisConfig{Prefix: "strategos:"},
		},
		Layout: LayoutConfig{
			Mode:    layout.ModeOverwrite.String(),
			Spacing: layout.DefaultSpacing,
		},
		Render: RenderConfig{
			Width:  800,
			Height: 600,
			Title:  "Strategos",
		},
	}
}

// DefaultCacheDir returns the cache directory using XDG standard
// (~/.cache/strategos/). It returns "" when no home directory is known.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "strategos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "strategos")
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies STRATEGOS_* overrides found by lookup.
//
//	STRATEGOS_ADDR             server.addr
//	STRATEGOS_CORS_ORIGINS     cors.origins (comma-separated)
//	STRATEGOS_CACHE            cache.backend
//	STRATEGOS_CACHE_NAMESPACE  cache.namespace
//	STRATEGOS_REDIS_ADDR       cache.redis.addr
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPrefix + "ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok {
		c.CORS.Origins = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "CACHE"); ok && v != "" {
		c.Cache.Backend = v
	}
	if v, ok := lookup(EnvPrefix + "CACHE_NAMESPACE"); ok {
		c.Cache.Namespace = v
	}
	if v, ok := lookup(EnvPrefix + "REDIS_ADDR"); ok && v != "" {
		c.Cache.Redis.Addr = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache backend: %s (must be one of %s)", c.Cache.Backend, strings.Join(Backends, ", "))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires cache.redis.addr")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if _, err := layout.ParseMode(c.Layout.Mode); err != nil {
		return err
	}
	if c.Layout.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout spacing must not be negative")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render frame must be positive, got %gx%g", c.Render.Width, c.Render.Height)
	}
	return nil
}

// LayoutOptions returns the layout settings as layout.Options.
func (c *Config) LayoutOptions() (layout.Options, error) {
	mode, err := layout.ParseMode(c.Layout.Mode)
	if err != nil {
		return layout.Options{}, err
	}
	return layout.Options{Mode: mode, Spacing: c.Layout.Spacing}, nil
}

// String renders the config as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
