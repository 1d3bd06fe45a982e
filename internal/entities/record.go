package entities

import (
	"github.com/KirkDiggler/chargen/internal/errors"
)

// Record is the flat storage shape of a character. Pointer fields are nil
// until the state that sets them is reached, and are omitted from JSON.
type Record struct {
	State      State  `json:"state"`
	PlayerName string `json:"player_name"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`

	Strength     *int `json:"strength,omitempty"`
	Dexterity    *int `json:"dexterity,omitempty"`
	Constitution *int `json:"constitution,omitempty"`
	Intelligence *int `json:"intelligence,omitempty"`
	Wisdom       *int `json:"wisdom,omitempty"`
	Charisma     *int `json:"charisma,omitempty"`

	Class     *string `json:"class,omitempty"`
	Poison    *int    `json:"poison,omitempty"`
	Wands     *int    `json:"wands,omitempty"`
	Paralysis *int    `json:"paralysis,omitempty"`
	Breath    *int    `json:"breath,omitempty"`
	Spells    *int    `json:"spells,omitempty"`
	Name      *string `json:"name,omitempty"`
	THAC0     *int    `json:"thaco,omitempty"`

	HitPoints *int     `json:"hit_points,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
}

func (m Meta) record(state State) *Record {
	return &Record{
		State:      state,
		PlayerName: m.PlayerName,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *Record) setScores(s AbilityScores) {
	r.Strength = ptr(s.Strength)
	r.Dexterity = ptr(s.Dexterity)
	r.Constitution = ptr(s.Constitution)
	r.Intelligence = ptr(s.Intelligence)
	r.Wisdom = ptr(s.Wisdom)
	r.Charisma = ptr(s.Charisma)
}

func (r *Record) setIdentity(id Identity) {
	r.Class = ptr(string(id.Class))
	r.Poison = ptr(id.Saves.Poison)
	r.Wands = ptr(id.Saves.Wands)
	r.Paralysis = ptr(id.Saves.Paralysis)
	r.Breath = ptr(id.Saves.Breath)
	r.Spells = ptr(id.Saves.Spells)
	r.Name = ptr(id.Name)
	r.THAC0 = ptr(id.THAC0)
}

// ToRecord implements Character
func (c *NewCharacter) ToRecord() *Record {
	return c.record(StateNew)
}

// ToRecord implements Character
func (c *RolledCharacter) ToRecord() *Record {
	r := c.record(StateHasStats)
	r.setScores(c.Scores)
	return r
}

// ToRecord implements Character
func (c *ClassedCharacter) ToRecord() *Record {
	r := c.record(StateHasClass)
	r.setScores(c.Scores)
	r.setIdentity(c.Identity)
	return r
}

// ToRecord implements Character
func (c *FinishedCharacter) ToRecord() *Record {
	r := c.record(StateDone)
	r.setScores(c.Scores)
	r.setIdentity(c.Identity)
	r.HitPoints = ptr(c.HitPoints)
	r.Equipment = append([]string{}, c.Equipment...)
	return r
}

// Character decodes the record into the variant for its state. Records with
// an unknown state, missing fields, or fields from a later state are rejected.
func (r *Record) Character() (Character, error) {
	if r == nil {
		return nil, errors.InvalidArgument("record is required")
	}

	vb := errors.NewValidationBuilder()
	if !r.State.Valid() {
		vb.Fieldf("state", "unknown state %q", r.State)
		return nil, vb.Build()
	}

	rank := stateRank(r.State)
	r.checkScores(vb, rank >= 1)
	r.checkIdentity(vb, rank >= 2)
	r.checkFinish(vb, rank >= 3)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	meta := Meta{PlayerName: r.PlayerName, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
	switch r.State {
	case StateNew:
		return &NewCharacter{Meta: meta}, nil
	case StateHasStats:
		return &RolledCharacter{Meta: meta, Scores: r.scores()}, nil
	case StateHasClass:
		return &ClassedCharacter{Meta: meta, Scores: r.scores(), Identity: r.identity()}, nil
	default:
		equipment := r.Equipment
		if equipment == nil {
			equipment = []string{}
		}
		return &FinishedCharacter{
			Meta:      meta,
			Scores:    r.scores(),
			Identity:  r.identity(),
			HitPoints: *r.HitPoints,
			Equipment: equipment,
		}, nil
	}
}

func stateRank(s State) int {
	switch s {
	case StateHasStats:
		return 1
	case StateHasClass:
		return 2
	case StateDone:
		return 3
	default:
		return 0
	}
}

func (r *Record) checkScores(vb *errors.ValidationBuilder, want bool) {
	fields := map[string]*int{
		"strength":     r.Strength,
		"dexterity":    r.Dexterity,
		"constitution": r.Constitution,
		"intelligence": r.Intelligence,
		"wisdom":       r.Wisdom,
		"charisma":     r.Charisma,
	}
	for name, value := range fields {
		checkPresence(vb, name, value != nil, want, r.State)
	}
}

func (r *Record) checkIdentity(vb *errors.ValidationBuilder, want bool) {
	fields := map[string]bool{
		"class":     r.Class != nil,
		"poison":    r.Poison != nil,
		"wands":     r.Wands != nil,
		"paralysis": r.Paralysis != nil,
		"breath":    r.Breath != nil,
		"spells":    r.Spells != nil,
		"name":      r.Name != nil,
		"thaco":     r.THAC0 != nil,
	}
	for name, present := range fields {
		checkPresence(vb, name, present, want, r.State)
	}
	if want && r.Class != nil && !Class(*r.Class).Valid() {
		vb.Fieldf("class", "unknown class %q", *r.Class)
	}
}

func (r *Record) checkFinish(vb *errors.ValidationBuilder, want bool) {
	checkPresence(vb, "hit_points", r.HitPoints != nil, want, r.State)
	// an empty equipment list is omitted from JSON, so it is only checked for absence
	if !want && r.Equipment != nil {
		vb.Fieldf("equipment", "not allowed in state %s", r.State)
	}
	if want && r.HitPoints != nil && *r.HitPoints < 1 {
		vb.Fieldf("hit_points", "must be at least 1, got %d", *r.HitPoints)
	}
}

func checkPresence(vb *errors.ValidationBuilder, field string, present, want bool, state State) {
	switch {
	case want && !present:
		vb.Fieldf(field, "required in state %s", state)
	case !want && present:
		vb.Fieldf(field, "not allowed in state %s", state)
	}
}

func (r *Record) scores() AbilityScores {
	return AbilityScores{
		Strength:     *r.Strength,
		Dexterity:    *r.Dexterity,
		Constitution: *r.Constitution,
		Intelligence: *r.Intelligence,
		Wisdom:       *r.Wisdom,
		Charisma:     *r.Charisma,
	}
}

func (r *Record) identity() Identity {
	return Identity{
		Class: Class(*r.Class),
		Saves: SavingThrows{
			Poison:    *r.Poison,
			Wands:     *r.Wands,
			Paralysis: *r.Paralysis,
			Breath:    *r.Breath,
			Spells:    *r.Spells,
		},
		Name:  *r.Name,
		THAC0: *r.THAC0,
	}
}

func ptr[T any](v T) *T {
	return &v
}
