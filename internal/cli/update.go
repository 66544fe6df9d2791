package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var fields fieldFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a property",
		Long:  "Change the fields given as flags; other fields keep their values. Use --clear to unset fields.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args, &fields)
		},
	}

	fields.register(cmd, true)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string, fields *fieldFlags) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	pt, err := fields.patch(cmd)
	if err != nil {
		return err
	}
	if pt.Empty() {
		return errors.New("nothing to update: pass at least one field flag or --clear")
	}

	saved, err := newAPIClient().PatchProperty(cmd.Context(), id, pt)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	w := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(w, saved)
	}

	fmt.Fprintln(w, "Property updated.")
	printPropertySummary(w, saved)
	return nil
}
