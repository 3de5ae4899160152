package commands

import (
	"github.com/spf13/cobra"

	"github.com/coinflow-dev/coinflow/internal/api"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.Config.Server.Addr
			}
			srv := api.NewServer(a.Transactions, a.Categories, a.Rules, a.Importer, a.Categorizer, a.Log)
			srv.UI = a.Config.UI
			a.Log.Info().Str("addr", addr).Msg("starting server")
			return srv.App().Listen(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config)")

	return cmd
}
