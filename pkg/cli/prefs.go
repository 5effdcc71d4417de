package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dshills/nsflow/pkg/syntax"
	"github.com/spf13/cobra"
)

// NewPrefsCommand creates the prefs command group
func NewPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage parser preferences",
		Long: `Manage the parser preferences (keywords such as "for", "to", "while")
under which diagram texts are read and written.

Preferences live in ~/.nsflow/preferences.toml or preferences.yaml; the TOML
file wins when both exist.`,
	}

	cmd.AddCommand(newPrefsInitCommand())
	cmd.AddCommand(newPrefsShowCommand())

	return cmd
}

func newPrefsInitCommand() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default preferences file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			switch format {
			case "toml":
				name = "preferences.toml"
			case "yaml", "yml":
				name = "preferences.yaml"
			default:
				return fmt.Errorf("unsupported preferences format: %s (want toml or yaml)", format)
			}

			path := filepath.Join(GetConfigDir(), name)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("preferences already exist: %s (use --force to overwrite)", path)
			}
			if err := syntax.SaveKeywords(path, syntax.DefaultKeywords()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Preferences written to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "File format: toml or yaml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newPrefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active parser preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(cmd.Context(), sessionOptions{})
			if err != nil {
				return err
			}

			kw := session.Keywords().Map()
			keys := make([]string, 0, len(kw))
			for k := range kw {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", GetPreferencesPath())
			for _, k := range keys {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s %q\n", k, kw[k])
			}
			return nil
		},
	}
}
