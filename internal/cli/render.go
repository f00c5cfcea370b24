package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eulerdraw/pkg/layout"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

func (c *CLI) renderCommand() *cobra.Command {
	var f drawFlags

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a saved JSON layout",
		Long: `Render a layout written by "eulerdraw draw -f json" without drawing it
again. Render options such as shading and labels may differ from the ones
the layout was first drawn with.`,
		Example: `  eulerdraw draw "a b ab" -f json -o venn.json
  eulerdraw render venn.json -f svg,png --zone-centers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := f.options(cmd, cfg)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}

			l, err := layout.ReadLayoutFile(args[0])
			if err != nil {
				return err
			}
			artifacts, err := pipeline.Render(ctx, l, opts)
			if err != nil {
				return err
			}

			base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			paths := outputPaths(f.output, base, opts.Formats)
			for _, format := range opts.Formats {
				if err := os.WriteFile(paths[format], artifacts[format], 0o644); err != nil {
					return fmt.Errorf("write %s: %w", paths[format], err)
				}
			}

			printSuccess("Rendered %s", StyleHighlight.Render(l.Original))
			for _, format := range opts.Formats {
				printFile(paths[format])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file; with several formats the extension is replaced per format")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "comma-separated output formats: svg, png, pdf")
	cmd.Flags().BoolVar(&f.shading, "shading", true, "shade zones that are drawn but not described")
	cmd.Flags().BoolVar(&f.labels, "labels", true, "draw curve labels")
	cmd.Flags().BoolVar(&f.zoneCenters, "zone-centers", false, "mark the visual center of every zone")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "padding around the drawing")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG scale factor")
	return cmd
}
