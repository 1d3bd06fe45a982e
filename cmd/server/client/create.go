package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	chargenv1 "github.com/KirkDiggler/chargen/internal/handlers/chargen/v1"
)

var playerName string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a new character",
	Args:  cobra.NoArgs,
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().StringVar(&playerName, "player-name", "", "Name of the player rolling the character")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	return withClient(cmd, func(ctx context.Context, client *chargenv1.Client) error {
		resp, err := client.CreateCharacter(ctx, playerName)
		if err != nil {
			return fmt.Errorf("failed to create character: %w", err)
		}

		printCharacter(cmd.OutOrStdout(), resp)
		fmt.Fprintf(cmd.OutOrStdout(), "\nNext: chargen client roll-stats %s\n", resp.ID)
		return nil
	})
}
