package main

import (
	"fmt"
	"strings"

	"github.com/dgallion1/deeptoc/internal/toc"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Print the navigation entries of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

func init() {
	outlineCmd.Flags().Bool("json", false, "print entries as JSON")
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	res, err := augmentFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		entries := res.Entries
		if entries == nil {
			entries = []toc.Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(res.Entries) == 0 {
		fmt.Fprintln(out, "No headings found.")
		return nil
	}
	for _, e := range res.Entries {
		fmt.Fprintf(out, "%s%s  #%s\n", strings.Repeat("  ", e.Level-1), e.Text, e.Target)
	}
	return nil
}
