package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eulerdraw/pkg/catalog"
	"github.com/matzehuels/eulerdraw/pkg/errors"
)

func (c *CLI) examplesCommand() *cobra.Command {
	var (
		group string
		pick  bool
	)

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List the example catalogue",
		Long: `List the built-in example descriptions. Any example can be drawn with
"eulerdraw draw @<name>". With --pick an interactive list is shown and the
chosen example is drawn with the configured defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			examples := catalog.All()
			if group != "" {
				examples = catalog.Group(group)
				if len(examples) == 0 {
					return errors.New(errors.ErrCodeNotFound, "no examples in group %q", group)
				}
			}

			if !pick {
				printExamples(examples)
				fmt.Println()
				printNextStep("Draw one", "eulerdraw draw @"+examples[0].Name)
				return nil
			}

			ex, err := pickExample(examples)
			if err != nil || ex == nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.PipelineOptions()
			opts.Example = ex.Name
			return c.runDraw(cmd, opts, drawFlags{})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "only list examples in this group")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick an example interactively and draw it")
	return cmd
}

// printExamples prints examples under a header per group. Groups keep the
// order of their first example.
func printExamples(examples []catalog.Example) {
	width := 0
	var groups []string
	byGroup := make(map[string][]catalog.Example)
	for _, ex := range examples {
		width = max(width, len(ex.Name))
		if _, ok := byGroup[ex.Group]; !ok {
			groups = append(groups, ex.Group)
		}
		byGroup[ex.Group] = append(byGroup[ex.Group], ex)
	}
	nameStyle := lipgloss.NewStyle().Foreground(colorCyan).Width(width + 2)

	for i, g := range groups {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(styleHeader.Render(g))
		for _, ex := range byGroup[g] {
			fmt.Println("  " + nameStyle.Render(ex.Name) + StyleValue.Render(ex.Description))
		}
	}
}
