package cli

import (
	"github.com/spf13/cobra"
)

// HealthResult is the API response for the health check
type HealthResult struct {
	Status string `json:"status"`
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			if err := client.Get("/health", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Printf(result, "Server status: %s\n", result.Status)
			return nil
		},
	}
}
