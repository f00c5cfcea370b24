package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eulerdraw/pkg/config"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

// drawFlags holds the flags of the draw command.
type drawFlags struct {
	output      string
	formats     string
	strategy    string
	shading     bool
	labels      bool
	zoneCenters bool
	padding     float64
	scale       float64
	timeout     time.Duration
	noCache     bool
	refresh     bool
}

func (c *CLI) drawCommand() *cobra.Command {
	var f drawFlags

	cmd := &cobra.Command{
		Use:   "draw <description|@example>",
		Short: "Draw a description to SVG, PNG, PDF or JSON",
		Long: `Draw an Euler diagram.

The argument is an abstract description such as "a b ab", or the name of a
catalogue example prefixed with @. Unquoted zones may also be passed as
separate arguments.`,
		Example: `  eulerdraw draw "a b ab"
  eulerdraw draw a b c ab bc -o chain.svg
  eulerdraw draw @venn-3 -f svg,png
  eulerdraw draw "a b ab c ac" --strategy fewest-zones --no-cache`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := f.options(cmd, cfg)
			opts.Description, opts.Example = inputFromArgs(args)
			return c.runDraw(cmd, opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file; with several formats the extension is replaced per format")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "comma-separated output formats: svg, png, pdf, json")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "curve removal strategy (icurves, fewest-zones)")
	cmd.Flags().BoolVar(&f.shading, "shading", true, "shade zones that are drawn but not described")
	cmd.Flags().BoolVar(&f.labels, "labels", true, "draw curve labels")
	cmd.Flags().BoolVar(&f.zoneCenters, "zone-centers", false, "mark the visual center of every zone")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "padding around the drawing")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "give up after this long")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached layouts and artifacts")

	return cmd
}

// options merges the flags the user set over the config defaults.
func (f drawFlags) options(cmd *cobra.Command, cfg config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	changed := cmd.Flags().Changed

	if formats := parseFormats(f.formats); len(formats) > 0 {
		opts.Formats = formats
	}
	if f.strategy != "" {
		opts.Strategy = f.strategy
	}
	if changed("shading") {
		opts.Shading = f.shading
	}
	if changed("labels") {
		opts.Labels = f.labels
	}
	if changed("zone-centers") {
		opts.ZoneCenters = f.zoneCenters
	}
	if changed("padding") {
		opts.Padding = f.padding
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("timeout") {
		opts.Timeout = f.timeout
	}
	opts.Refresh = f.refresh
	return opts
}

func (c *CLI) runDraw(cmd *cobra.Command, opts pipeline.Options, f drawFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Drawing "+inputName(opts)+"...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Drawing failed")
		return err
	}
	spinner.Stop()

	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}

	if f.output == "-" {
		if len(formats) != 1 {
			return fmt.Errorf("output to stdout needs exactly one format, got %d", len(formats))
		}
		_, err := os.Stdout.Write(res.Artifacts[formats[0]])
		return err
	}

	paths := outputPaths(f.output, defaultBase(opts), formats)
	for _, format := range formats {
		path := paths[format]
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(res.Artifacts[format]))
	}

	printSuccess("Drew %s", StyleHighlight.Render(res.Description.Informal()))
	printStats(res.Stats, res.CacheInfo.LayoutHit)
	if res.Stats.Shaded > 0 {
		printWarning("%s not in the description drawn shaded", plural(res.Stats.Shaded, "zone"))
	}
	for _, format := range formats {
		printFile(paths[format])
	}
	return nil
}

// inputFromArgs returns the description or example named by args. A
// single argument starting with @ names a catalogue example.
func inputFromArgs(args []string) (description, example string) {
	if len(args) == 1 {
		if name, ok := strings.CutPrefix(args[0], "@"); ok {
			return "", name
		}
	}
	return strings.Join(args, " "), ""
}

func inputName(opts pipeline.Options) string {
	if opts.Example != "" {
		return opts.Example
	}
	return fmt.Sprintf("%q", opts.Description)
}

// defaultBase returns the output path without extension: the example name,
// or "diagram" for descriptions.
func defaultBase(opts pipeline.Options) string {
	if opts.Example != "" {
		return strings.ToLower(strings.ReplaceAll(opts.Example, " ", "-"))
	}
	return "diagram"
}

// outputPaths maps each format to a file path. A single format writes to
// output verbatim; several formats share output's base name.
func outputPaths(output, base string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	if output != "" {
		base = output
		if ext := strings.TrimPrefix(filepath.Ext(output), "."); pipeline.ValidFormats[ext] {
			base = strings.TrimSuffix(output, "."+ext)
		}
	}
	for _, format := range formats {
		paths[format] = base + "." + format
	}
	return paths
}
