package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrow/internal/api"
	"github.com/matzehuels/roomgrow/pkg/palette"
)

const defaultAddr = "127.0.0.1:8080"

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		catalogPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Routes:
  POST /v1/layouts          grow a layout (JSON options in, layout and spawns out)
  POST /v1/render/{format}  grow a layout and return one artifact (json, txt, dot, svg)
  GET  /healthz             liveness probe

Requests without their own footprints use the catalog given with -c.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var cat *palette.Catalog
			if catalogPath != "" {
				var err error
				if cat, _, err = palette.LoadFile(catalogPath); err != nil {
					return err
				}
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			return api.New(runner, cat, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "footprint catalog TOML file (default: built-in catalog)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
