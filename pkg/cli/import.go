package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/editor"
	nserrors "github.com/dshills/nsflow/pkg/errors"
	"github.com/dshills/nsflow/pkg/storage"
	"github.com/spf13/cobra"
)

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	var (
		yes    bool
		target string
	)

	cmd := &cobra.Command{
		Use:   "import <diagram-file>...",
		Short: "Store diagrams in the diagram repository",
		Long: `Import diagrams from YAML, XML or JSON files.

This command:
- Loads every diagram from the given files
- Validates each diagram's structure
- Asks before saving each diagram and before replacing a stored copy
  (answer "a" for yes to all or "s" for no to all)
- Saves to the diagram repository (~/.nsflow/diagrams) or the archive

Examples:
  nsflow import sort.nsd.yaml
  nsflow import *.nsd.yaml --yes
  nsflow import exported.json --to archive`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			var repo diagram.Repository
			switch strings.ToLower(target) {
			case "files", "":
				fs, err := storage.NewFilesystemRepositoryWithPath(GetConfigDir())
				if err != nil {
					return fmt.Errorf("failed to open diagram repository: %w", err)
				}
				repo = fs
			case "archive":
				archive, err := storage.NewSQLiteArchiveWithPath(GetArchivePath())
				if err != nil {
					return fmt.Errorf("failed to open archive: %w", err)
				}
				defer func() { _ = archive.Close() }()
				repo = archive
			default:
				return fmt.Errorf("unknown import target: %s (want files or archive)", target)
			}

			session, err := newSession(cmd.Context(), sessionOptions{})
			if err != nil {
				return err
			}
			if yes {
				session.SetPrompter(approveAll)
			} else {
				session.SetPrompter(newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
			}

			ws := editor.NewWorkspace(session)
			for _, path := range args {
				roots, err := LoadDiagramsFromFile(path)
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", path, err)
				}
				for _, root := range roots {
					if err := diagram.Validate(root); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					root.Modified = true
					ws.Open(root)
				}
				logger.Debug("loaded diagram file", "path", path, "diagrams", len(roots))
			}

			report, err := ws.SaveAll(repo)
			for _, name := range report.Saved {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported diagram: %s\n", name)
			}
			for _, name := range report.Skipped {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- Skipped diagram: %s\n", name)
			}
			if errors.Is(err, editor.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
				return nil
			}
			var opErr *nserrors.OperationalError
			if errors.As(err, &opErr) {
				logger.Error("import failed", opErr.Keyvals()...)
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Answer yes to every prompt")
	cmd.Flags().StringVar(&target, "to", "files", "Where to store the diagrams: files or archive")

	return cmd
}
