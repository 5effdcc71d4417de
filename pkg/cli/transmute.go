package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/editor"
	"github.com/spf13/cobra"
)

// NewTransmuteCommand creates the transmute command
func NewTransmuteCommand() *cobra.Command {
	var (
		selector string
		permute    string
		restore    bool
		outputPath string
		format     string
		negator    string
		keywords   string
	)

	cmd := &cobra.Command{
		Use:   "transmute <diagram-file>",
		Short: "Apply a structural rewrite to selected elements",
		Long: `Apply the structural rewrite that fits the selected elements.

The rewrite is chosen from the selection:
- A multi-line instruction is split into one instruction per line
- Several adjacent instructions are merged into one
- An instruction is reclassified as call or jump (and back)
- A counting FOR loop becomes initialisation plus WHILE loop
- A CASE selection becomes nested IF alternatives
- An IF alternative gets its branches swapped and its condition negated

Elements are selected by ID; "first..last" selects a run of siblings.
IDs can be listed with: nsflow query <file> 'body.#.id'

Case branches can be reordered with --permute (for each position, the
index of the branch moved there; the default branch stays last) and
restored with --restore.

Examples:
  nsflow transmute sort.nsd.yaml --select 5f1c...
  nsflow transmute sort.nsd.yaml --select 5f1c..9a0e -o merged.nsd.yaml
  nsflow transmute sort.nsd.yaml --select 77ab... --permute 2,0,1
  nsflow transmute sort.nsd.yaml --select 77ab... --negator expr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			logger := loggerFromContext(cmd.Context())

			root, err := LoadDiagramFromFile(path)
			if err != nil {
				return fmt.Errorf("failed to load diagram: %w", err)
			}

			session, err := newSession(cmd.Context(), sessionOptions{negator: negator, keywords: keywords})
			if err != nil {
				return err
			}
			ed := editor.NewEditor(session, root)

			if err := applySelection(ed, selector); err != nil {
				return err
			}

			switch {
			case permute != "":
				order, err := parseOrder(permute)
				if err != nil {
					return err
				}
				if err := ed.PermuteCaseBranches(order); err != nil {
					return fmt.Errorf("failed to permute case branches: %w", err)
				}
			case restore:
				if err := ed.RestoreCaseBranchOrder(); err != nil {
					return fmt.Errorf("failed to restore case branches: %w", err)
				}
			default:
				if !ed.CanTransmute() {
					return fmt.Errorf("selection cannot be transmuted: %w", editor.ErrNotTransmutable)
				}
				if err := ed.Transmute(); err != nil {
					return fmt.Errorf("failed to transmute: %w", err)
				}
			}
			logger.Debug("rewrite applied", "diagram", root.Name(), "selected", len(ed.SelectedElements()))

			f := formatFromPath(path)
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
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Diagram written to: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&selector, "select", "s", "", "Element ID or first..last sibling range (required)")
	cmd.Flags().StringVar(&permute, "permute", "", "Reorder case branches, e.g. 2,0,1")
	cmd.Flags().BoolVar(&restore, "restore", false, "Restore the original case branch order")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml, xml or json (default: from file extension)")
	cmd.Flags().StringVar(&negator, "negator", "", "Condition negation: logical or expr (default from config.yaml)")
	cmd.Flags().StringVar(&keywords, "keywords", "leave", "Handling of differing parser preferences: leave, refactor or adopt")
	_ = cmd.MarkFlagRequired("select")

	return cmd
}

// applySelection selects one element or a run of siblings by ID
func applySelection(ed *editor.Editor, arg string) error {
	node := ed.Root().Node()
	first, last, isRange := strings.Cut(arg, "..")

	from := node.Find(diagram.ID(strings.TrimSpace(first)))
	if from == nil {
		return fmt.Errorf("element not found: %s", first)
	}
	if !isRange {
		if !ed.Select(from) {
			return fmt.Errorf("element cannot be selected: %s", first)
		}
		return nil
	}

	to := node.Find(diagram.ID(strings.TrimSpace(last)))
	if to == nil {
		return fmt.Errorf("element not found: %s", last)
	}
	if from.Parent() == nil || from.Parent() != to.Parent() {
		return fmt.Errorf("%s and %s are not siblings", first, last)
	}
	start, end := from.Index(), to.Index()
	if start > end {
		start, end = end, start
	}
	if !ed.SelectRange(from.Parent(), start, end) {
		return fmt.Errorf("cannot select range %s", arg)
	}
	return nil
}

func parseOrder(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	order := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid branch position %q: %w", p, err)
		}
		order = append(order, n)
	}
	return order, nil
}
