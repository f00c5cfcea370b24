package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/eulerdraw/pkg/cache"
	"github.com/matzehuels/eulerdraw/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
ttl = "72h"

[redis]
addr = "localhost:6379"
db = 2

[server]
addr = "127.0.0.1:9000"

[render]
formats = ["svg", "png"]
labels = false

[layout]
timeout = "30s"
route_cells = 96
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Cache.Backend = cache.BackendRedis
	want.Cache.TTL = Duration{72 * time.Hour}
	want.Redis.Addr = "localhost:6379"
	want.Redis.DB = 2
	want.Server.Addr = "127.0.0.1:9000"
	want.Render.Formats = []string{"svg", "png"}
	want.Render.Labels = false
	want.Layout.Timeout = Duration{30 * time.Second}
	want.Layout.RouteCells = 96

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "[cache\n", errors.ErrCodeInvalidFormat},
		{"unknown key", "[cache]\ncolour = \"red\"\n", errors.ErrCodeInvalidFormat},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidFormat},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", errors.ErrCodeInvalidFormat},
		{"mongo without uri", "[cache]\nbackend = \"mongo\"\n", errors.ErrCodeInvalidFormat},
		{"bad duration", "[layout]\ntimeout = \"soon\"\n", errors.ErrCodeInvalidFormat},
		{"bad format", "[render]\nformats = [\"gif\"]\n", errors.ErrCodeInvalidFormat},
		{"negative route cells", "[layout]\nroute_cells = -4\n", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(default path) error = %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load(default path) mismatch (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(missing explicit) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	got, err := Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", "eulerdraw", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	got, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", "eulerdraw"); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}
}

func TestCacheOptions(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	opts, err := Default().CacheOptions()
	if err != nil {
		t.Fatalf("CacheOptions() error = %v", err)
	}
	if opts.Backend != cache.BackendFile || opts.Dir != filepath.Join("/tmp/custom-cache", "eulerdraw") {
		t.Errorf("CacheOptions() = %+v, want file backend in the cache dir", opts)
	}

	cfg := Default()
	cfg.Cache.Backend = cache.BackendMongo
	cfg.Mongo.URI = "mongodb://localhost:27017"
	opts, err = cfg.CacheOptions()
	if err != nil {
		t.Fatalf("CacheOptions() error = %v", err)
	}
	if opts.Dir != "" || opts.Mongo.URI != cfg.Mongo.URI {
		t.Errorf("CacheOptions() = %+v", opts)
	}
}

func TestPipelineOptions(t *testing.T) {
	opts := Default().PipelineOptions()
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender() error = %v", err)
	}
	if !opts.Shading || !opts.Labels || opts.Timeout == 0 {
		t.Errorf("PipelineOptions() = %+v", opts)
	}

	cfg := Default()
	cfg.Layout.RouteCells = 96
	cfg.Layout.RouteMaxNodes = 1000
	if got := cfg.PipelineOptions(); got.RouteCells != 96 || got.RouteMaxNodes != 1000 {
		t.Errorf("PipelineOptions() router = %d cells %d nodes, want 96 and 1000", got.RouteCells, got.RouteMaxNodes)
	}
}

func TestKeyer(t *testing.T) {
	opts := cache.LayoutKeyOpts{Strategy: "icurves", Version: 1}
	plain := Default().Keyer().LayoutKey("abc", opts)

	cfg := Default()
	cfg.Cache.Scope = "staging:"
	scoped := cfg.Keyer().LayoutKey("abc", opts)
	if scoped != "staging:"+plain {
		t.Errorf("scoped LayoutKey = %q, want %q", scoped, "staging:"+plain)
	}
}
