package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show property details",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

// parseID parses a property ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid property ID: %s", arg)
	}
	return id, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	p, err := newAPIClient().GetProperty(cmd.Context(), id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), p)
	}

	printPropertySummary(cmd.OutOrStdout(), p)
	return nil
}
