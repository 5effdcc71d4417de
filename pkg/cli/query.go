package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command
func NewQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <diagram-file> <path>",
		Short: "Evaluate a path expression against a diagram",
		Long: `Evaluate a gjson path against the JSON form of a diagram.

Examples:
  # Kinds of the top-level elements
  nsflow query sort.nsd.yaml 'body.#.type'

  # IDs of the top-level elements, for use with transmute --select
  nsflow query sort.nsd.yaml 'body.#.id'

  # Text of the first element
  nsflow query sort.nsd.yaml 'body.0.text'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := LoadDiagramFromFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load diagram: %w", err)
			}

			result, err := diagram.Query(root, args[1])
			if err != nil {
				return err
			}

			if s, ok := result.(string); ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format result: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	return cmd
}
