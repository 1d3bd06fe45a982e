// Package client provides commands that drive a running chargen gRPC server
package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/chargen/internal/entities"
	chargenv1 "github.com/KirkDiggler/chargen/internal/handlers/chargen/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// extraDialOptions lets tests dial an in-memory listener
	extraDialOptions []grpc.DialOption
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call the chargen gRPC API",
	Long:  `Client commands step a character through generation by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(createCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(rollStatsCmd)
	ClientCmd.AddCommand(pickClassCmd)
	ClientCmd.AddCommand(rollHPCmd)
}

// createCharacterClient dials the server and returns a client with a cleanup func
func createCharacterClient() (*chargenv1.Client, func(), error) {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, extraDialOptions...)

	conn, err := grpc.NewClient(serverAddr, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close()
	}
	return chargenv1.NewClient(conn), cleanup, nil
}

// withClient runs call with a connected client under the request timeout
func withClient(cmd *cobra.Command, call func(context.Context, *chargenv1.Client) error) error {
	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	return call(ctx, client)
}

// printCharacter writes the fields a character has reached so far
func printCharacter(w io.Writer, resp *chargenv1.CharacterResponse) {
	r := resp.Character
	fmt.Fprintf(w, "ID: %s\n", resp.ID)
	fmt.Fprintf(w, "State: %s\n", r.State)
	fmt.Fprintf(w, "Player: %s\n", r.PlayerName)

	if r.Strength != nil {
		fmt.Fprintf(w, "\nAbility Scores:\n")
		scores := []struct {
			ability entities.Ability
			value   *int
		}{
			{entities.AbilityStrength, r.Strength},
			{entities.AbilityDexterity, r.Dexterity},
			{entities.AbilityConstitution, r.Constitution},
			{entities.AbilityIntelligence, r.Intelligence},
			{entities.AbilityWisdom, r.Wisdom},
			{entities.AbilityCharisma, r.Charisma},
		}
		for _, s := range scores {
			if s.value == nil {
				continue
			}
			fmt.Fprintf(w, "  %s: %d (%s)\n", s.ability.Short(), *s.value,
				entities.FormatModifier(entities.AbilityModifier(*s.value)))
		}
	}

	if r.Class != nil {
		fmt.Fprintf(w, "\nName: %s\n", deref(r.Name))
		fmt.Fprintf(w, "Class: %s\n", *r.Class)
		fmt.Fprintf(w, "THAC0: %d\n", derefInt(r.THAC0))
		fmt.Fprintf(w, "Saves: poison %d, wands %d, paralysis %d, breath %d, spells %d\n",
			derefInt(r.Poison), derefInt(r.Wands), derefInt(r.Paralysis), derefInt(r.Breath), derefInt(r.Spells))
	}

	if r.HitPoints != nil {
		fmt.Fprintf(w, "\nHit Points: %d\n", *r.HitPoints)
		fmt.Fprintf(w, "Equipment: %s\n", strings.Join(r.Equipment, ", "))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
