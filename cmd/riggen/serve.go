package main

import (
	"context"

	"github.com/aretw0/riggen/internal/cli"
	"github.com/aretw0/riggen/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP conversion server",
	Long:  `Exposes POST /convert, the /results store, /healthz and Prometheus /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}

		ctx, stop := cli.SignalContext(context.Background())
		defer stop()
		return cli.RunServe(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	fs := serveCmd.Flags()
	fs.String("addr", config.Default().Addr, "Listen address")
	cli.AddSolveFlags(fs)
	cli.AddStoreFlags(fs)
}
