package entities

import (
	"fmt"
)

// Ability names one of the six ability scores
type Ability string

// The six abilities, using the names stored on a character record
const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists the abilities in sheet order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

var abilityShortCodes = map[Ability]string{
	AbilityStrength:     "str",
	AbilityDexterity:    "dex",
	AbilityConstitution: "con",
	AbilityIntelligence: "int",
	AbilityWisdom:       "wis",
	AbilityCharisma:     "chr",
}

// Short returns the three letter code used by the class form
func (a Ability) Short() string {
	return abilityShortCodes[a]
}

// ParseAbility accepts either the full ability name or its short code
func ParseAbility(name string) (Ability, bool) {
	for _, ability := range Abilities {
		if name == string(ability) || name == ability.Short() {
			return ability, true
		}
	}
	return "", false
}

// AbilityScores holds the six rolled ability scores
type AbilityScores struct {
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int
}

// Get returns the score for an ability, zero for an unknown ability
func (s AbilityScores) Get(a Ability) int {
	if p := s.field(a); p != nil {
		return *p
	}
	return 0
}

// Swap exchanges two scores in place. It reports whether a swap happened;
// unknown or identical abilities leave the scores untouched.
func (s *AbilityScores) Swap(left, right Ability) bool {
	if left == right {
		return false
	}
	l, r := s.field(left), s.field(right)
	if l == nil || r == nil {
		return false
	}
	*l, *r = *r, *l
	return true
}

func (s *AbilityScores) field(a Ability) *int {
	switch a {
	case AbilityStrength:
		return &s.Strength
	case AbilityDexterity:
		return &s.Dexterity
	case AbilityConstitution:
		return &s.Constitution
	case AbilityIntelligence:
		return &s.Intelligence
	case AbilityWisdom:
		return &s.Wisdom
	case AbilityCharisma:
		return &s.Charisma
	default:
		return nil
	}
}

// AbilityModifier converts a score into its bonus or penalty.
// Scores outside 3-18 clamp to the nearest band.
func AbilityModifier(score int) int {
	switch {
	case score <= 3:
		return -3
	case score <= 5:
		return -2
	case score <= 8:
		return -1
	case score <= 12:
		return 0
	case score <= 15:
		return 1
	case score <= 17:
		return 2
	default:
		return 3
	}
}

// FormatModifier renders a modifier with an explicit sign
func FormatModifier(mod int) string {
	return fmt.Sprintf("%+d", mod)
}

// ModifierText renders the modifier for an ability on a character,
// or "+?" when the character has not rolled stats yet
func ModifierText(c Character, a Ability) string {
	scores, ok := c.Abilities()
	if !ok {
		return "+?"
	}
	return FormatModifier(AbilityModifier(scores.Get(a)))
}
