package cli

import (
	"fmt"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "validate <diagram-file>",
		Short: "Validate a diagram file",
		Long: `Validate a diagram file for structural correctness.

This checks:
- File syntax (YAML, XML, or JSON against the diagram schema)
- Parent links and composite arity
- Case labels agree with the number of branches
- Element IDs are unique
- Parser preferences the diagram was saved under

Examples:
  nsflow validate sort.nsd.yaml
  nsflow validate export.json --details`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			logger := loggerFromContext(cmd.Context())

			roots, err := LoadDiagramsFromFile(path)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "✗ Failed to parse diagram file")
				if details {
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
				}
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Parsed %d diagram(s)\n", len(roots))

			session, err := newSession(cmd.Context(), sessionOptions{})
			if err != nil {
				return err
			}
			kw := session.Keywords()
			current := kw.Map()

			failed := 0
			for _, root := range roots {
				logger.Debug("validating", "diagram", root.Name(), "elements", root.Count())
				if err := diagram.Validate(root); err != nil {
					failed++
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "✗ %s: structure invalid\n", root.Name())
					if details {
						_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
					}
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: structure valid (%d elements)\n", root.Name(), root.Count())

				if root.StoredKeywords != nil {
					if diffs := kw.Differences(root.StoredKeywords); len(diffs) > 0 {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⚠ %s: saved under different parser preferences\n", root.Name())
						if details {
							for _, key := range diffs {
								_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s: %q (current %q)\n", key, root.StoredKeywords[key], current[key])
							}
						}
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d diagram(s) failed validation", failed, len(roots))
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\n✓ Diagram validation passed")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "Show detailed validation information")

	return cmd
}
