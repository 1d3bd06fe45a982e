package entities

import (
	"time"

	"github.com/KirkDiggler/chargen/internal/dice"
	"github.com/KirkDiggler/chargen/internal/errors"
)

// State is a step in character generation. States only move forward.
type State string

// Generation states in order
const (
	StateNew      State = "new"
	StateHasStats State = "has-stats"
	StateHasClass State = "has-class"
	StateDone     State = "done"
)

// Valid reports whether s is a known state
func (s State) Valid() bool {
	switch s {
	case StateNew, StateHasStats, StateHasClass, StateDone:
		return true
	default:
		return false
	}
}

// Character is a character in one of the generation states. Each
// implementation only carries the fields guaranteed present in its state.
type Character interface {
	State() State
	Metadata() Meta
	// Abilities returns the ability scores once they have been rolled
	Abilities() (AbilityScores, bool)
	// EffectiveTHAC0 falls back to DefaultTHAC0 before class selection
	EffectiveTHAC0() int
	ToRecord() *Record
}

// Meta is carried by every state
type Meta struct {
	PlayerName string
	CreatedAt  int64
	UpdatedAt  int64
}

// Metadata returns the shared fields
func (m Meta) Metadata() Meta {
	return m
}

func (m Meta) touched(at time.Time) Meta {
	m.UpdatedAt = at.Unix()
	return m
}

// Identity is set at class selection
type Identity struct {
	Class Class
	Saves SavingThrows
	Name  string
	THAC0 int
}

// NewCharacter has been created and nothing else
type NewCharacter struct {
	Meta
}

// RolledCharacter has ability scores
type RolledCharacter struct {
	Meta
	Scores AbilityScores
}

// ClassedCharacter has a class, saves and a name
type ClassedCharacter struct {
	Meta
	Scores AbilityScores
	Identity
}

// FinishedCharacter is complete
type FinishedCharacter struct {
	Meta
	Scores AbilityScores
	Identity
	HitPoints int
	Equipment []string
}

// NewCharacterAt creates a character in the new state
func NewCharacterAt(playerName string, at time.Time) *NewCharacter {
	return &NewCharacter{Meta: Meta{
		PlayerName: playerName,
		CreatedAt:  at.Unix(),
		UpdatedAt:  at.Unix(),
	}}
}

// State implements Character
func (c *NewCharacter) State() State { return StateNew }

// Abilities implements Character
func (c *NewCharacter) Abilities() (AbilityScores, bool) { return AbilityScores{}, false }

// EffectiveTHAC0 implements Character
func (c *NewCharacter) EffectiveTHAC0() int { return DefaultTHAC0 }

func (c *RolledCharacter) State() State { return StateHasStats }

func (c *RolledCharacter) Abilities() (AbilityScores, bool) { return c.Scores, true }

func (c *RolledCharacter) EffectiveTHAC0() int { return DefaultTHAC0 }

func (c *ClassedCharacter) State() State { return StateHasClass }

func (c *ClassedCharacter) Abilities() (AbilityScores, bool) { return c.Scores, true }

func (c *ClassedCharacter) EffectiveTHAC0() int { return c.THAC0 }

func (c *FinishedCharacter) State() State { return StateDone }

func (c *FinishedCharacter) Abilities() (AbilityScores, bool) { return c.Scores, true }

func (c *FinishedCharacter) EffectiveTHAC0() int { return c.THAC0 }

// RollStats rolls 3d6 for each ability, in sheet order
func RollStats(c Character, roller dice.Roller, at time.Time) (*RolledCharacter, error) {
	current, ok := c.(*NewCharacter)
	if !ok {
		return nil, errors.StateGuard(c.State(), StateNew)
	}

	var scores AbilityScores
	for _, ability := range Abilities {
		score, err := roller.Roll(dice.AbilityScoreCount, dice.AbilityScoreSides)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %s", ability)
		}
		*scores.field(ability) = score
	}

	return &RolledCharacter{
		Meta:   current.touched(at),
		Scores: scores,
	}, nil
}

// ClassChoice is the input to PickClass
type ClassChoice struct {
	ClassName string
	// SwapLeft and SwapRight name two abilities to exchange, by full name or
	// short code. The swap is skipped if either is unrecognized or both match.
	SwapLeft  string
	SwapRight string
	Name      string
}

// PickClass swaps the requested scores, then sets class, saves, THAC0 and name
func PickClass(c Character, choice ClassChoice, at time.Time) (*ClassedCharacter, error) {
	current, ok := c.(*RolledCharacter)
	if !ok {
		return nil, errors.StateGuard(c.State(), StateHasStats)
	}

	class, err := ParseClass(choice.ClassName)
	if err != nil {
		return nil, err
	}

	scores := current.Scores
	left, leftOK := ParseAbility(choice.SwapLeft)
	right, rightOK := ParseAbility(choice.SwapRight)
	if leftOK && rightOK {
		scores.Swap(left, right)
	}

	return &ClassedCharacter{
		Meta:   current.touched(at),
		Scores: scores,
		Identity: Identity{
			Class: class,
			Saves: class.SavingThrows(),
			Name:  choice.Name,
			THAC0: DefaultTHAC0,
		},
	}, nil
}

// EquipmentSource looks up starting gear by class and gold roll
type EquipmentSource interface {
	Get(class Class, goldRoll int) ([]string, error)
}

// RollHPAndGear rolls hit points and a gold roll, then outfits the character
func RollHPAndGear(c Character, roller dice.Roller, gear EquipmentSource, at time.Time) (*FinishedCharacter, error) {
	current, ok := c.(*ClassedCharacter)
	if !ok {
		return nil, errors.StateGuard(c.State(), StateHasClass)
	}

	hitDie, err := roller.Roll(1, current.Class.HitDie())
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll hit points")
	}
	hitPoints := max(hitDie+AbilityModifier(current.Scores.Constitution), 1)

	goldRoll, err := roller.Roll(dice.GoldRollCount, dice.GoldRollSides)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll gold")
	}

	equipment, err := gear.Get(current.Class, goldRoll)
	if err != nil {
		return nil, errors.Wrapf(err, "no starting equipment for %s", current.Class)
	}

	return &FinishedCharacter{
		Meta:      current.touched(at),
		Scores:    current.Scores,
		Identity:  current.Identity,
		HitPoints: hitPoints,
		Equipment: equipment,
	}, nil
}
