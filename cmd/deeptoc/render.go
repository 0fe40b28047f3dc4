package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a document with the full-depth navigation mounted",
	Long: `Renders an HTML, Markdown, DOCX, PDF, text or CSV file into a page,
mounts the navigation in place of the native widget and writes the
result to stdout or to --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "write the page to this file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	res, err := augmentFile(args[0])
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := cmd.OutOrStdout().Write(res.HTML)
		return err
	}
	if err := os.WriteFile(output, res.HTML, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d entries)\n", output, len(res.Entries))
	return nil
}
