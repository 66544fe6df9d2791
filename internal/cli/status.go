package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/propdb/internal/config"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	serverURL := settings.ServerURL

	fmt.Fprintf(w, "Server:  %s\n", serverURL)
	fmt.Fprintf(w, "DB:      %s %s\n", settings.Database.Driver, config.RedactDSN(settings.Database.DSN))

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(w, "Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusOK {
		fmt.Fprintln(w, "Status:  ✓ server is up")
	} else {
		fmt.Fprintf(w, "Status:  ✗ unexpected response (%d)\n", resp.StatusCode)
	}
	return nil
}

func closeBody(resp *http.Response) {
	if cerr := resp.Body.Close(); cerr != nil {
		slog.Warn("closing response body", "error", cerr)
	}
}
