package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eulerdraw/pkg/buildinfo"
	"github.com/matzehuels/eulerdraw/pkg/cache"
	"github.com/matzehuels/eulerdraw/pkg/config"
	"github.com/matzehuels/eulerdraw/pkg/observability"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

const appName = "eulerdraw"

// Log levels for main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.Config
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the log level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand returns the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "eulerdraw draws Euler diagrams",
		Long: `eulerdraw draws Euler diagrams from abstract descriptions.

A description lists the zones to draw, each as the labels of the curves it
lies inside: "a b ab" asks for two overlapping curves. Zones that cannot be
avoided are drawn shaded.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
			observability.SetCacheHooks(observability.NewLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/eulerdraw/config.toml)")

	root.AddCommand(c.drawCommand())
	root.AddCommand(c.decomposeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.medCommand())
	root.AddCommand(c.examplesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file once.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.config != nil {
		return *c.config, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.config = &cfg
	return cfg, nil
}

// newRunner returns a pipeline runner on the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}

	opts, err := cfg.CacheOptions()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, cfg.Keyer(), c.Logger)
	r.TTL = cfg.Cache.TTL.Duration
	return r, nil
}

// parseFormats splits a comma-separated format list.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
