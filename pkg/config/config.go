// Package config loads the eulerdraw configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/eulerdraw/config.toml,
// falling back to ~/.config/eulerdraw/config.toml:
//
//	[cache]
//	backend = "redis"
//	ttl = "72h"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[render]
//	formats = ["svg", "png"]
//	shading = true
//
//	[layout]
//	timeout = "30s"
//
// Keys left out keep their [Default] values, and a missing file at the
// default path is not an error.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/eulerdraw/pkg/cache"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

const (
	appName = "eulerdraw"

	// DefaultAddr is the HTTP listen address.
	DefaultAddr = ":8080"
)

// Config is the whole configuration file.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
	Layout LayoutConfig `toml:"layout"`
}

type CacheConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	// TTL overrides the per-entry defaults when set.
	TTL Duration `toml:"ttl"`
	// Scope prefixes every cache key, so several deployments can share
	// one backend.
	Scope string `toml:"scope"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type RenderConfig struct {
	Formats     []string `toml:"formats"`
	Shading     bool     `toml:"shading"`
	Labels      bool     `toml:"labels"`
	ZoneCenters bool     `toml:"zone_centers"`
	Padding     float64  `toml:"padding"`
	Scale       float64  `toml:"scale"`
}

type LayoutConfig struct {
	Strategy string   `toml:"strategy"`
	Timeout  Duration `toml:"timeout"`
	// Grid cells and expanded-node limit of the dual edge router.
	RouteCells    int `toml:"route_cells"`
	RouteMaxNodes int `toml:"route_max_nodes"`
}

// Duration reads durations written as strings like "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: cache.BackendFile},
		Server: ServerConfig{Addr: DefaultAddr},
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Shading: true,
			Labels:  true,
		},
		Layout: LayoutConfig{Timeout: Duration{pipeline.DefaultTimeout}},
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory (~/.cache/eulerdraw/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path, or at [Path] when path is empty. Only a
// missing default file falls back to [Default].
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			if explicit {
				return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
			}
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked by decoding.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis && c.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "redis.addr is required for the redis backend")
	}
	if c.Cache.Backend == cache.BackendMongo && c.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "mongo.uri is required for the mongo backend")
	}
	if c.Cache.TTL.Duration < 0 || c.Layout.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "durations must not be negative")
	}
	if c.Layout.RouteCells < 0 || c.Layout.RouteMaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "layout.route_cells and layout.route_max_nodes must not be negative")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "render.formats")
	}
	return nil
}

// CacheOptions returns the options for [cache.Open]. A file backend
// without a directory uses [CacheDir].
func (c Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		},
		Mongo: cache.MongoOptions{
			URI:        c.Mongo.URI,
			Database:   c.Mongo.Database,
			Collection: c.Mongo.Collection,
		},
	}
	if (opts.Backend == "" || opts.Backend == cache.BackendFile) && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return cache.Options{}, err
		}
		opts.Backend = cache.BackendFile
		opts.Dir = dir
	}
	return opts, nil
}

// Keyer returns the cache keyer: the default one, scoped when
// cache.scope is set.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Scope != "" {
		return cache.NewScopedKeyer(nil, c.Cache.Scope)
	}
	return cache.NewDefaultKeyer()
}

// PipelineOptions returns the run defaults the file sets.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Strategy:      c.Layout.Strategy,
		RouteCells:    c.Layout.RouteCells,
		RouteMaxNodes: c.Layout.RouteMaxNodes,
		Timeout:       c.Layout.Timeout.Duration,
		Formats:     c.Render.Formats,
		Shading:     c.Render.Shading,
		Labels:      c.Render.Labels,
		ZoneCenters: c.Render.ZoneCenters,
		Padding:     c.Render.Padding,
		Scale:       c.Render.Scale,
	}
}
