package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/chargen/internal/config"
	"github.com/KirkDiggler/chargen/internal/errors"
	characterrepo "github.com/KirkDiggler/chargen/internal/repositories/character"
)

var assumeYes bool

var fixCorruptedCmd = &cobra.Command{
	Use:   "fix-corrupted",
	Short: "Find stored characters that no longer decode and offer to delete them",
	Args:  cobra.NoArgs,
	RunE:  runFixCorrupted,
}

func init() {
	fixCorruptedCmd.Flags().BoolVar(&assumeYes, "yes", false, "delete without asking")
	rootCmd.AddCommand(fixCorruptedCmd)
}

func runFixCorrupted(cmd *cobra.Command, _ []string) error {
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

	return fixCorrupted(ctx, repo, cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes)
}

// fixCorrupted reports corrupted records and deletes them once confirmed
func fixCorrupted(ctx context.Context, repo characterrepo.Repository, in io.Reader, out io.Writer, yes bool) error {
	auditor, ok := repo.(characterrepo.Auditor)
	if !ok {
		return errors.Unimplemented("store does not support scanning for corrupted records")
	}

	found, err := auditor.FindCorrupted(ctx)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		_, err := fmt.Fprintln(out, "No corrupted characters found")
		return err
	}

	fmt.Fprintf(out, "Found %d corrupted characters:\n", len(found))
	for _, c := range found {
		fmt.Fprintf(out, "  - %s: %s\n", c.ID, c.Reason)
	}

	if !yes {
		fmt.Fprint(out, "\nDelete these characters? (yes/no): ")
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			_, err := fmt.Fprintln(out, "Aborted, no changes made")
			return err
		}
	}

	for _, c := range found {
		if _, err := repo.Delete(ctx, characterrepo.DeleteInput{ID: c.ID}); err != nil {
			return errors.Wrapf(err, "failed to delete %s", c.ID)
		}
		fmt.Fprintf(out, "Deleted %s\n", c.ID)
	}
	return nil
}
