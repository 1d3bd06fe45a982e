// Package dice rolls sums of polyhedral dice for character generation.
package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/KirkDiggler/chargen/internal/dice Roller

import (
	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/chargen/internal/errors"
)

// Common rolls used by the character rules
const (
	AbilityScoreCount = 3
	AbilityScoreSides = 6
	GoldRollCount     = 3
	GoldRollSides     = 6
)

// Roller produces the sum of count independent dice with the given number of sides
type Roller interface {
	// Roll returns a value in [count, count*sides].
	// Returns errors.InvalidArgument when count or sides is below 1.
	Roll(count, sides int) (int, error)
}

// Config holds the dependencies for the roller
type Config struct {
	// Source provides individual die results. Defaults to the toolkit's
	// crypto-backed roller.
	Source toolkitdice.Roller
}

type roller struct {
	source toolkitdice.Roller
}

// New creates a Roller backed by rpg-toolkit
func New(cfg *Config) Roller {
	source := toolkitdice.DefaultRoller
	if cfg != nil && cfg.Source != nil {
		source = cfg.Source
	}

	return &roller{source: source}
}

func (r *roller) Roll(count, sides int) (int, error) {
	if count < 1 {
		return 0, errors.InvalidArgumentf("dice count must be at least 1, got %d", count)
	}
	if sides < 1 {
		return 0, errors.InvalidArgumentf("dice sides must be at least 1, got %d", sides)
	}

	results, err := r.source.RollN(count, sides)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %dd%d", count, sides)
	}
	if len(results) != count {
		return 0, errors.Internalf("rolled %d dice, wanted %d", len(results), count)
	}

	total := 0
	for _, result := range results {
		total += result
	}

	return total, nil
}
