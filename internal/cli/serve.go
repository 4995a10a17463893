package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strategos/pkg/api"
	"github.com/matzehuels/strategos/pkg/config"
	"github.com/matzehuels/strategos/pkg/shape"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}

			st, cc, err := c.newStore(ctx, engineOpts{noCache: noCache})
			if err != nil {
				return err
			}
			defer cc.Close()

			backend := cfg.Cache.Backend
			if noCache {
				backend = config.BackendNone
			}
			printInfo("Serving %s", StyleHighlight.Render("http://"+displayAddr(cfg.Server.Addr)))
			printKeyValue("cache", backend)
			printKeyValue("layout", cfg.Layout.Mode)
			printKeyValue("cors", strings.Join(cfg.CORS.Origins, ", "))

			srv := api.New(st,
				api.WithRegistry(shape.Default()),
				api.WithCORS(cfg.CORS),
				api.WithLogger(loggerFromContext(ctx)),
			)
			return srv.ListenAndServe(ctx, cfg.Server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	return cmd
}

// displayAddr turns ":8000" into "localhost:8000".
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
