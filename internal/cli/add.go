package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propdb/internal/property"
)

func newAddCmd() *cobra.Command {
	var fields fieldFlags

	cmd := &cobra.Command{
		Use:   "add [address]",
		Short: "Add a property",
		Long:  "Store a new property. Every field is optional; the address may be given as arguments or with --address.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args, &fields)
		},
	}

	fields.register(cmd, false)
	return cmd
}

func runAdd(cmd *cobra.Command, args []string, fields *fieldFlags) error {
	if len(args) > 0 {
		if cmd.Flags().Changed("address") {
			return fmt.Errorf("give the address either as arguments or with --address, not both")
		}
		if err := cmd.Flags().Set("address", strings.Join(args, " ")); err != nil {
			return err
		}
	}

	pt, err := fields.patch(cmd)
	if err != nil {
		return err
	}
	p := property.New()
	pt.Apply(p)

	saved, err := newAPIClient().CreateProperty(cmd.Context(), p)
	if err != nil {
		return fmt.Errorf("adding property: %w", err)
	}

	w := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(w, saved)
	}

	fmt.Fprintln(w, "Property added successfully!")
	printPropertySummary(w, saved)
	return nil
}
