package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eulerdraw/pkg/creator"
	"github.com/matzehuels/eulerdraw/pkg/decompose"
	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

func (c *CLI) decomposeCommand() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "decompose <description|@example>",
		Short: "Show how a description would be drawn",
		Long: `Split a description into components and list, per component, the
curves in the order they are drawn and the zones each new curve must pass
through. Nothing is drawn.`,
		Example: `  eulerdraw decompose "a b ab c d cd"
  eulerdraw decompose @venn-3 --strategy fewest-zones`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			opts := cfg.PipelineOptions()
			opts.Description, opts.Example = inputFromArgs(args)
			if strategy != "" {
				opts.Strategy = strategy
			}
			if err := opts.ValidateInput(); err != nil {
				return err
			}
			if err := opts.ValidateForDraw(); err != nil {
				return err
			}

			d, err := pipeline.Resolve(opts)
			if err != nil {
				return err
			}
			dr, err := pipeline.Plan(ctx, d, opts)
			if err != nil {
				return err
			}

			printSuccess("Decomposed %s into %s", StyleHighlight.Render(d.Informal()), plural(len(dr.Components), "component"))
			fmt.Println()
			fmt.Println(planTable(dr))
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "curve removal strategy (icurves, fewest-zones)")
	return cmd
}

// planTable renders one row per step, grouped by component.
func planTable(dr *creator.Drawing) string {
	var rows [][]string
	for i, steps := range dr.Steps {
		for j, s := range steps {
			component := ""
			if j == 0 {
				component = strconv.Itoa(i + 1)
			}
			rows = append(rows, []string{component, strconv.Itoa(j + 1), string(s.Label), splitString(s), s.To.Informal()})
		}
		if len(steps) == 0 {
			rows = append(rows, []string{strconv.Itoa(i + 1), "", "", "", dr.Components[i].Informal()})
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Part", "Step", "Curve", "Through", "Result").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 2:
				return base.Foreground(colorCyan).Bold(true)
			case col == 0 || col == 1:
				return base.Foreground(colorGray)
			}
			return base
		}).
		Render()
}

func splitString(s decompose.Step) string {
	zones := make([]string, len(s.Split))
	for i, z := range s.Split {
		zones[i] = zoneName(z)
	}
	return strings.Join(zones, " ")
}

// zoneName writes the outside zone as "∅".
func zoneName(z euler.AbstractZone) string {
	if z.IsOutside() {
		return "∅"
	}
	return z.String()
}
