package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/propdb/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE:  runConfigShow,
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Save a setting to the config file",
			Long:  "Save a setting to the config file. Keys: " + strings.Join(config.Keys, ", "),
			Args:  cobra.ExactArgs(2),
			RunE:  runConfigSet,
		},
	)

	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	shown := settings.Redacted()
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), shown)
	}

	data, err := yaml.Marshal(shown)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	// Only the file is rewritten, so env and flag overrides are not persisted.
	cfg, err := config.LoadFile()
	if err != nil {
		return err
	}
	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", args[0], path)
	return nil
}
