package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/riggen"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of riggen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "riggen version %s\n", strings.TrimSpace(riggen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
