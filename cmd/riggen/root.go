package main

import (
	"fmt"
	"os"

	"github.com/aretw0/riggen/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "riggen",
	Short: "riggen converts pose landmarks into rig rotations",
	Long: `riggen reads frame-aligned pose, left-hand and right-hand landmark sequences
and writes the rig rotations of every frame as one JSON file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cli.AddGlobalFlags(rootCmd.PersistentFlags())
}

// options resolves the settings of cmd and binds the process streams.
func options(cmd *cobra.Command) (cli.Options, error) {
	cfg, err := cli.ResolveConfig(cmd.Flags())
	if err != nil {
		return cli.Options{}, err
	}
	return cli.Options{
		Config: cfg,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}, nil
}
