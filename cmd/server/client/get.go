package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/chargen/internal/entities"
	chargenv1 "github.com/KirkDiggler/chargen/internal/handlers/chargen/v1"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a character and its attack table",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	return withClient(cmd, func(ctx context.Context, client *chargenv1.Client) error {
		resp, err := client.GetCharacter(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get character: %w", err)
		}

		w := cmd.OutOrStdout()
		printCharacter(w, resp)

		if resp.Sheet != nil && resp.Character.State == entities.StateDone {
			fmt.Fprintf(w, "\nAttack Table:\n")
			for _, row := range resp.Sheet.AttackTable {
				fmt.Fprintf(w, "  AC %3d: %d\n", row.ArmorClass, row.ToHit)
			}
		}
		return nil
	})
}
