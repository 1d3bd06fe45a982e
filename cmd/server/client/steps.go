package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	chargenv1 "github.com/KirkDiggler/chargen/internal/handlers/chargen/v1"
)

var (
	className string
	swapLeft  string
	swapRight string
	charName  string
)

var rollStatsCmd = &cobra.Command{
	Use:   "roll-stats <id>",
	Short: "Roll ability scores for a new character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep(cmd, "roll stats", func(ctx context.Context, client *chargenv1.Client) (*chargenv1.CharacterResponse, error) {
			return client.RollStats(ctx, args[0])
		})
	},
}

var pickClassCmd = &cobra.Command{
	Use:   "pick-class <id>",
	Short: "Choose a class, optionally swapping two ability scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep(cmd, "pick class", func(ctx context.Context, client *chargenv1.Client) (*chargenv1.CharacterResponse, error) {
			return client.PickClass(ctx, chargenv1.PickClassRequest{
				ID:        args[0],
				Class:     className,
				SwapLeft:  swapLeft,
				SwapRight: swapRight,
				Name:      charName,
			})
		})
	},
}

var rollHPCmd = &cobra.Command{
	Use:   "roll-hp <id>",
	Short: "Roll hit points and starting gear",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStep(cmd, "roll hit points", func(ctx context.Context, client *chargenv1.Client) (*chargenv1.CharacterResponse, error) {
			return client.RollHPAndGear(ctx, args[0])
		})
	},
}

func init() {
	pickClassCmd.Flags().StringVar(&className, "class", "", "Class (cleric, dwarf, elf, fighter, halfling, magic-user, thief)")
	pickClassCmd.Flags().StringVar(&swapLeft, "swap-left", "", "Ability to swap (str, dex, con, int, wis, chr)")
	pickClassCmd.Flags().StringVar(&swapRight, "swap-right", "", "Ability to swap it with")
	pickClassCmd.Flags().StringVar(&charName, "name", "", "Character name")
	_ = pickClassCmd.MarkFlagRequired("class") // nolint:errcheck // safe to ignore in init
}

func runStep(
	cmd *cobra.Command,
	step string,
	call func(context.Context, *chargenv1.Client) (*chargenv1.CharacterResponse, error),
) error {
	return withClient(cmd, func(ctx context.Context, client *chargenv1.Client) error {
		resp, err := call(ctx, client)
		if err != nil {
			return fmt.Errorf("failed to %s: %w", step, err)
		}
		printCharacter(cmd.OutOrStdout(), resp)
		return nil
	})
}
