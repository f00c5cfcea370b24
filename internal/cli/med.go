package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eulerdraw/pkg/dual"
	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

const (
	medFormatDOT = "dot"
	medFormatSVG = "svg"
)

func (c *CLI) medCommand() *cobra.Command {
	var (
		output string
		format string
		cycle  string
		curves bool
	)

	cmd := &cobra.Command{
		Use:   "med <description|@example>",
		Short: "Show the modified Euler dual of a drawn description",
		Long: `Draw a description and write the graph of its zones: one vertex per
zone and an edge between neighbouring zones, with a ring of vertices for the
outside. With --cycle the shortest cycle through the given zones is drawn in
red, which is where a new curve through those zones would go.`,
		Example: `  eulerdraw med "a b ab" > med.dot
  eulerdraw med @venn-3 -f svg -o med.svg --curves
  eulerdraw med "a b ab" --cycle "a ab"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if format != medFormatDOT && format != medFormatSVG {
				return fmt.Errorf("unknown format %q (must be dot or svg)", format)
			}

			var opts pipeline.Options
			opts.Description, opts.Example = inputFromArgs(args)
			opts.Logger = logger
			if err := opts.ValidateInput(); err != nil {
				return err
			}
			d, err := pipeline.Resolve(opts)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			_, dr, err := pipeline.Draw(ctx, d, opts)
			if err != nil {
				return err
			}
			m, err := dual.New(ctx, dr.Diagram, dual.WithLogger(logger))
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built dual with %d vertices and %s", len(m.Vertices()), plural(len(m.Edges()), "edge")))

			dotOpts := dual.DOTOptions{Curves: curves}
			if cycle != "" {
				targets, err := parseZones(cycle)
				if err != nil {
					return err
				}
				cyc, err := m.ComputeCycle(ctx, targets)
				if err != nil {
					return err
				}
				dotOpts.Cycle = cyc
			}

			data := []byte(dual.DOT(m, dotOpts))
			if format == medFormatSVG {
				if data, err = dual.RenderSVG(ctx, string(data)); err != nil {
					return err
				}
			}

			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote dual of %s", StyleHighlight.Render(d.Informal()))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", medFormatDOT, "output format: dot or svg")
	cmd.Flags().StringVar(&cycle, "cycle", "", "highlight the shortest cycle through these zones")
	cmd.Flags().BoolVar(&curves, "curves", false, "include the curve outlines")
	return cmd
}

// parseZones parses space-separated zones. "0" names the outside zone.
func parseZones(s string) ([]euler.AbstractZone, error) {
	var zones []euler.AbstractZone
	for _, tok := range strings.Fields(s) {
		if tok == "0" {
			zones = append(zones, euler.Outside)
			continue
		}
		z, err := euler.ParseZone(tok)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}
