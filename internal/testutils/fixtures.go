package testutils

import (
	"time"

	"github.com/KirkDiggler/chargen/internal/entities"
)

const (
	// TestPlayerName is the default player for fixtures
	TestPlayerName = "Gary"

	// TestCharacterName is the default character name for fixtures
	TestCharacterName = "Thorin Oakenshield"
)

// TestScores are the ability scores every rolled fixture carries
var TestScores = entities.AbilityScores{
	Strength:     16,
	Dexterity:    9,
	Constitution: 13,
	Intelligence: 7,
	Wisdom:       11,
	Charisma:     14,
}

// NewCharacterAt creates a fresh fixture created at the given time
func NewCharacterAt(at time.Time) *entities.NewCharacter {
	return entities.NewCharacterAt(TestPlayerName, at)
}

// RolledCharacterAt creates a fixture in the has-stats state
func RolledCharacterAt(at time.Time) *entities.RolledCharacter {
	return &entities.RolledCharacter{
		Meta:   meta(at),
		Scores: TestScores,
	}
}

// ClassedCharacterAt creates a dwarf fixture in the has-class state
func ClassedCharacterAt(at time.Time) *entities.ClassedCharacter {
	return &entities.ClassedCharacter{
		Meta:   meta(at),
		Scores: TestScores,
		Identity: entities.Identity{
			Class: entities.ClassDwarf,
			Saves: entities.ClassDwarf.SavingThrows(),
			Name:  TestCharacterName,
			THAC0: entities.DefaultTHAC0,
		},
	}
}

// FinishedCharacterAt creates a dwarf fixture in the done state
func FinishedCharacterAt(at time.Time) *entities.FinishedCharacter {
	classed := ClassedCharacterAt(at)
	return &entities.FinishedCharacter{
		Meta:      classed.Meta,
		Scores:    classed.Scores,
		Identity:  classed.Identity,
		HitPoints: 7,
		Equipment: []string{"sword", "chain mail", "shield"},
	}
}

// CharactersInEveryState returns one fixture per state, in state order
func CharactersInEveryState(at time.Time) []entities.Character {
	return []entities.Character{
		NewCharacterAt(at),
		RolledCharacterAt(at),
		ClassedCharacterAt(at),
		FinishedCharacterAt(at),
	}
}

func meta(at time.Time) entities.Meta {
	return entities.Meta{
		PlayerName: TestPlayerName,
		CreatedAt:  at.Unix(),
		UpdatedAt:  at.Unix(),
	}
}
