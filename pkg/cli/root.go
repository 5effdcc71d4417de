package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is the current version of nsflow
const Version = "1.0.0"

// NewRootCommand creates the root cobra command for nsflow
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nsflow",
		Short: "nsflow - Nassi-Shneiderman diagram toolkit",
		Long: `nsflow edits, converts and archives Nassi-Shneiderman structure diagrams.

The structural rewrites of the diagram editor run headlessly: splitting and
merging instructions, unrolling counting loops into while loops and turning
case selections into nested alternatives. Diagram files can be validated,
queried and kept in a versioned archive.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			level := charmlog.InfoLevel
			if GlobalConfig.Verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			logger.Debug("configuration", "dir", GlobalConfig.ConfigDir)
			cmd.SetContext(withLogger(ctx, logger))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&GlobalConfig.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.nsflow)")

	cmd.AddCommand(
		NewInitCommand(),
		NewValidateCommand(),
		NewTransmuteCommand(),
		NewExportCommand(),
		NewImportCommand(),
		NewQueryCommand(),
		NewArchiveCommand(),
		NewPrefsCommand(),
	)
	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}
