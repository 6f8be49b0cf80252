package main

import (
	"context"

	"github.com/aretw0/riggen/internal/cli"
	"github.com/aretw0/riggen/internal/config"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert landmark sequences into a rig output file",
	Long: `Loads the pose, left-hand and right-hand sequences, solves every frame and
writes the output once at the end. Nothing is written if any frame fails.`,
	Example: `  riggen convert
  riggen convert --pose pose3d.json --left hand_left3d.json --right hand_right3d.json --out holistic_rigged_output.json
  riggen convert --workers 8 --legs --progress`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}

		ctx, stop := cli.SignalContext(context.Background())
		defer stop()
		return cli.RunConvert(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	fs := convertCmd.Flags()
	cli.AddInputFlags(fs)
	fs.String("out", config.Default().Output, "Output file (or key, with --redis-url)")
	cli.AddSolveFlags(fs)
	cli.AddStoreFlags(fs)
	fs.Bool("progress", false, "Show a progress bar on stderr")
}
