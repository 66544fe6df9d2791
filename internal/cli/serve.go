package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propdb/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Open the configured database and serve the JSON API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()

	database, dialect, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, web.Config{
		Dialect:     dialect,
		CORSOrigins: settings.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.ListenAndServe(ctx, addr)
}
