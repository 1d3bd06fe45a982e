package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/chargen/internal/entities"
)

type AbilityTestSuite struct {
	suite.Suite
}

func TestAbilitySuite(t *testing.T) {
	suite.Run(t, new(AbilityTestSuite))
}

func (s *AbilityTestSuite) TestAbilityModifierTable() {
	expected := map[int]int{
		3: -3, 4: -2, 5: -2, 6: -1, 7: -1, 8: -1,
		9: 0, 10: 0, 11: 0, 12: 0,
		13: 1, 14: 1, 15: 1, 16: 2, 17: 2, 18: 3,
	}
	for score, mod := range expected {
		s.Equal(mod, entities.AbilityModifier(score), "score %d", score)
	}
}

func (s *AbilityTestSuite) TestAbilityModifierOutOfRange() {
	s.Equal(-3, entities.AbilityModifier(0))
	s.Equal(-3, entities.AbilityModifier(-7))
	s.Equal(3, entities.AbilityModifier(25))
}

func (s *AbilityTestSuite) TestFormatModifier() {
	s.Equal("+0", entities.FormatModifier(0))
	s.Equal("+2", entities.FormatModifier(2))
	s.Equal("-3", entities.FormatModifier(-3))
}

func (s *AbilityTestSuite) TestModifierText() {
	s.Run("absent scores", func() {
		c := &entities.NewCharacter{}
		s.Equal("+?", entities.ModifierText(c, entities.AbilityStrength))
	})

	s.Run("rolled scores", func() {
		c := &entities.RolledCharacter{Scores: entities.AbilityScores{Strength: 18, Dexterity: 4, Wisdom: 10}}
		s.Equal("+3", entities.ModifierText(c, entities.AbilityStrength))
		s.Equal("-2", entities.ModifierText(c, entities.AbilityDexterity))
		s.Equal("+0", entities.ModifierText(c, entities.AbilityWisdom))
	})
}

func (s *AbilityTestSuite) TestParseAbility() {
	testCases := []struct {
		input    string
		expected entities.Ability
		ok       bool
	}{
		{"strength", entities.AbilityStrength, true},
		{"str", entities.AbilityStrength, true},
		{"chr", entities.AbilityCharisma, true},
		{"charisma", entities.AbilityCharisma, true},
		{"con", entities.AbilityConstitution, true},
		{"cha", "", false},
		{"", "", false},
		{"STR", "", false},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			ability, ok := entities.ParseAbility(tc.input)
			s.Equal(tc.ok, ok)
			s.Equal(tc.expected, ability)
		})
	}
}

func (s *AbilityTestSuite) TestSwap() {
	s.Run("exchanges values exactly", func() {
		scores := entities.AbilityScores{Strength: 7, Dexterity: 16}
		s.True(scores.Swap(entities.AbilityStrength, entities.AbilityDexterity))
		s.Equal(16, scores.Strength)
		s.Equal(7, scores.Dexterity)
	})

	s.Run("same ability is a no-op", func() {
		scores := entities.AbilityScores{Strength: 7, Dexterity: 16}
		s.False(scores.Swap(entities.AbilityStrength, entities.AbilityStrength))
		s.Equal(entities.AbilityScores{Strength: 7, Dexterity: 16}, scores)
	})

	s.Run("unknown ability is a no-op", func() {
		scores := entities.AbilityScores{Strength: 7, Dexterity: 16}
		s.False(scores.Swap(entities.AbilityStrength, entities.Ability("luck")))
		s.Equal(entities.AbilityScores{Strength: 7, Dexterity: 16}, scores)
	})
}

func TestGetUnknownAbility(t *testing.T) {
	scores := entities.AbilityScores{Strength: 12}
	assert.Equal(t, 12, scores.Get(entities.AbilityStrength))
	assert.Equal(t, 0, scores.Get(entities.Ability("luck")))
}
