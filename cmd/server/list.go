package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/chargen/internal/config"
	characterrepo "github.com/KirkDiggler/chargen/internal/repositories/character"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the wizard link and state of every stored character",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	ctx := cmd.Context()
	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeRepo() }()

	out, err := repo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return err
	}

	return writeListing(cmd.OutOrStdout(), cfg, out.Entries)
}

// writeListing prints one "<url> <state>" line per character
func writeListing(w io.Writer, cfg *config.Config, entries []*characterrepo.Entry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%s %s\n", cfg.PublicURL(entry.ID), entry.Character.State()); err != nil {
			return err
		}
	}
	return nil
}
