package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eulerdraw/pkg/observability"
	"github.com/matzehuels/eulerdraw/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the drawing pipeline over HTTP. Requests use the configured cache
and render defaults. The server stops cleanly on interrupt.`,
		Example: `  eulerdraw serve --addr :9000
  curl -s localhost:9000/v1/draw -H 'Content-Type: application/json' -d '{"description": "a b ab"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
			srv := server.New(runner,
				server.WithLogger(c.Logger),
				server.WithDefaults(cfg.PipelineOptions()),
			)

			printSuccess("Listening on %s", StyleHighlight.Render(addr))
			printNextStep("Try", "curl -s http://localhost"+portOf(addr)+"/v1/examples")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// portOf returns the ":port" suffix of addr.
func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ""
}
