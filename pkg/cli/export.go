package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var (
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "export <diagram-file>",
		Short: "Convert a diagram to another format",
		Long: `Convert a diagram file to YAML, XML or JSON.

The XML form is the payload exchanged through the system clipboard when a
whole diagram is copied. The JSON form follows the diagram JSON schema and
is what 'nsflow query' evaluates paths against.

Examples:
  # Export to stdout as JSON
  nsflow export sort.nsd.yaml --format json

  # Export to a file, format taken from the extension
  nsflow export sort.nsd.yaml --output sort.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := LoadDiagramFromFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load diagram: %w", err)
			}

			f := FormatYAML
			if outputPath != "" {
				f = formatFromPath(outputPath)
			}
			if format != "" {
				if f, err = ParseFormat(format); err != nil {
					return err
				}
			}

			data, err := writeDiagram(root, outputPath, f)
			if err != nil {
				return err
			}
			if outputPath == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Diagram exported successfully to: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml, xml or json")

	return cmd
}
