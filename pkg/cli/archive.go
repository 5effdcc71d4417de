package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/storage"
	"github.com/spf13/cobra"
)

// NewArchiveCommand creates the archive command group
func NewArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage the versioned diagram archive",
		Long: `Manage the SQLite diagram archive (~/.nsflow/archive.db).

Every put appends a revision; earlier revisions stay retrievable.`,
	}

	cmd.AddCommand(newArchivePutCommand())
	cmd.AddCommand(newArchiveGetCommand())
	cmd.AddCommand(newArchiveListCommand())
	cmd.AddCommand(newArchiveHistoryCommand())
	cmd.AddCommand(newArchiveDeleteCommand())

	return cmd
}

func openArchive() (*storage.SQLiteArchive, error) {
	archive, err := storage.NewSQLiteArchiveWithPath(GetArchivePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return archive, nil
}

func newArchivePutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put <diagram-file>...",
		Short: "Store diagrams as new revisions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive()
			if err != nil {
				return err
			}
			defer func() { _ = archive.Close() }()

			for _, path := range args {
				roots, err := LoadDiagramsFromFile(path)
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", path, err)
				}
				for _, root := range roots {
					if err := archive.Save(root); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Archived %s (%s)\n", root.Name(), root.ID)
				}
			}
			return nil
		},
	}
}

func newArchiveGetCommand() *cobra.Command {
	var (
		revision   int
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "get <diagram-id>",
		Short: "Retrieve an archived diagram",
		Long: `Retrieve the latest or a specific revision of an archived diagram.

Examples:
  nsflow archive get 5f1c... -o sort.nsd.yaml
  nsflow archive get 5f1c... --revision 2 --format xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive()
			if err != nil {
				return err
			}
			defer func() { _ = archive.Close() }()

			id := diagram.ID(args[0])
			var root *diagram.Root
			if revision > 0 {
				root, err = archive.LoadRevision(id, revision)
			} else {
				root, err = archive.Load(id)
			}
			if err != nil {
				return err
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
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Diagram written to: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "Revision number (default: latest)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml, xml or json")

	return cmd
}

func newArchiveListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive()
			if err != nil {
				return err
			}
			defer func() { _ = archive.Close() }()

			catalog, err := archive.Catalog()
			if err != nil {
				return err
			}
			if len(catalog) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No diagrams archived.")
				return nil
			}
			printCatalog(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
}

// printCatalog displays archived diagrams in a formatted table
func printCatalog(w io.Writer, catalog []storage.Summary) {
	_, _ = fmt.Fprintf(w, "%-38s %-20s %-11s %-9s %-5s %s\n",
		"ID", "Name", "Type", "Elements", "Revs", "Modified")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, s := range catalog {
		_, _ = fmt.Fprintf(w, "%-38s %-20s %-11s %-9d %-5d %s\n",
			s.ID, truncateString(s.Name, 18), s.Type, s.ElementCount, s.Revisions,
			s.Modified.Format("2006-01-02 15:04"))
	}
}

func newArchiveHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <diagram-id>",
		Short: "List the revisions of an archived diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive()
			if err != nil {
				return err
			}
			defer func() { _ = archive.Close() }()

			revs, err := archive.Revisions(diagram.ID(args[0]))
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				return fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, args[0])
			}
			for _, r := range revs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", r.Number, r.SavedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newArchiveDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <diagram-id>",
		Short: "Delete a diagram and all its revisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive()
			if err != nil {
				return err
			}
			defer func() { _ = archive.Close() }()

			if err := archive.Delete(diagram.ID(args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
			return nil
		},
	}
}

// truncateString shortens s to max runes, marking the cut with "..."
func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
