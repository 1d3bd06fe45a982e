package entities

// Sheet holds the read-only values shown on a character sheet
type Sheet struct {
	Modifiers   map[Ability]string
	AttackTable []AttackRow
}

// NewSheet derives display values for a character in any state
func NewSheet(c Character) Sheet {
	modifiers := make(map[Ability]string, len(Abilities))
	for _, ability := range Abilities {
		modifiers[ability] = ModifierText(c, ability)
	}

	return Sheet{
		Modifiers:   modifiers,
		AttackTable: AttackRows(c.EffectiveTHAC0(), SheetWorstAC, SheetBestAC),
	}
}
