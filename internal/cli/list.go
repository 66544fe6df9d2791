package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/propdb/internal/client"
)

func newListCmd() *cobra.Command {
	var minPrice, maxPrice float64
	var query string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Long:  "List stored properties, optionally filtered by price range or a text query on address and description.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := client.ListOptions{Query: query, Limit: limit}
			if cmd.Flags().Changed("min-price") {
				opts.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				opts.MaxPrice = &maxPrice
			}
			return runList(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVarP(&query, "query", "q", "", "match text in address or description")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (0 = all)")

	return cmd
}

func runList(cmd *cobra.Command, opts client.ListOptions) error {
	props, err := newAPIClient().ListProperties(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), props)
	}

	return printPropertyTable(cmd.OutOrStdout(), props)
}
