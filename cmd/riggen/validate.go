package main

import (
	"context"

	"github.com/aretw0/riggen/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the landmark inputs load and are frame-aligned",
	Long:  `Loads the three landmark sequences and reports frame counts without solving anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		return cli.RunValidate(context.Background(), opts)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	cli.AddInputFlags(validateCmd.Flags())
}
