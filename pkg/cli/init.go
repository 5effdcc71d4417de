package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/validation"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var (
		author     string
		diagType   string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "init <diagram-name>",
		Short: "Create a new diagram",
		Long: `Create a new, empty diagram file.

The diagram is created as <diagram-name>.nsd.yaml in the current directory
unless --output is given.

Examples:
  nsflow init bubble_sort
  nsflow init read_config --type subroutine --author ada
  nsflow init helpers -t includable -o ~/diagrams/helpers.nsd.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !validation.IsValidDiagramName(name) {
				return fmt.Errorf("invalid diagram name: %s\n\nDiagram names must:\n  - Start with a letter\n  - Contain only letters, numbers, hyphens, and underscores\n  - Be between 1 and 64 characters", name)
			}

			path := outputPath
			if path == "" {
				path = name + ".nsd.yaml"
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("diagram already exists: %s", path)
			}

			root := diagram.NewRoot(name)
			root.Author = author
			root.Type = diagram.ParseRootType(diagType)
			if root.Type == diagram.TypeSubroutine {
				root.SetText(name + "()")
			}

			if _, err := writeDiagram(root, path, formatFromPath(path)); err != nil {
				return err
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Created diagram: %s\n", name)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Location: %s\n", abs)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nNext steps:")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  1. Validate: nsflow validate %s\n", path)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  2. Store: nsflow import %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Diagram author")
	cmd.Flags().StringVarP(&diagType, "type", "t", "program", "Diagram type (program, subroutine, includable)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")

	return cmd
}
