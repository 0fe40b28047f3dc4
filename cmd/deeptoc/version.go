package main

import (
	"fmt"

	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of deeptoc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "deeptoc %s\n", toc.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
