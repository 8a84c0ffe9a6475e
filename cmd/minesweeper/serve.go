package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/teyteymey/minesweeper/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP game API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Server.Addr = addr
			}

			srv := server.New(log)
			log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
			return http.ListenAndServe(cfg.Server.Addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
