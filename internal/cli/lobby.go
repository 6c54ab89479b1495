package cli

import (
	"github.com/spf13/cobra"

	"github.com/avlin/browsercraft-go/internal/model"
)

func newLobbyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lobby",
		Short: "Show the current lobby state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var snapshot model.LobbySnapshot

			if err := client.Get("/lobby", &snapshot); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintSnapshot(snapshot)
			return nil
		},
	}
}
