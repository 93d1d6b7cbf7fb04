// ABOUTME: CLI command for exporting the training catalog.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOutput    string
	exportObjective string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export the training catalog",
	Long: `Export the training catalog in various formats.

FORMATS:

  json       Full JSON export of every table
  yaml       YAML grouped by objective, then muscle group
  markdown   Markdown tables (for printing or sharing)

OPTIONS:

  --output, -o     Write to file instead of stdout
  --objective      Only export one objective (markdown only)

EXAMPLES:

  gymguide export json                              # Export everything as JSON
  gymguide export json -o catalog.json              # Save to file
  gymguide export yaml                              # Export as YAML
  gymguide export markdown --objective Hipertrofia  # One objective as Markdown`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		ctx := cmd.Context()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = store.ExportJSON(ctx)
		case "yaml":
			data, err = store.ExportYAML(ctx)
		case "markdown":
			var md string
			md, err = store.ExportMarkdown(ctx, exportObjective)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportObjective, "objective", "", "only export this objective (markdown only)")

	rootCmd.AddCommand(exportCmd)
}
