package entities

import (
	"github.com/KirkDiggler/chargen/internal/errors"
)

// Class is one of the seven playable classes
type Class string

// Classes accepted at class selection
const (
	ClassCleric    Class = "cleric"
	ClassFighter   Class = "fighter"
	ClassMagicUser Class = "magic-user"
	ClassThief     Class = "thief"
	ClassElf       Class = "elf"
	ClassDwarf     Class = "dwarf"
	ClassHalfling  Class = "halfling"
)

// Classes lists the valid classes in the order the class form shows them
var Classes = []Class{
	ClassCleric,
	ClassFighter,
	ClassMagicUser,
	ClassThief,
	ClassElf,
	ClassDwarf,
	ClassHalfling,
}

// SavingThrows holds the five save targets copied from the class table
type SavingThrows struct {
	Poison    int
	Wands     int
	Paralysis int
	Breath    int
	Spells    int
}

type classRules struct {
	hitDie int
	saves  SavingThrows
}

var classTable = map[Class]classRules{
	ClassCleric:    {hitDie: 6, saves: SavingThrows{Poison: 11, Wands: 12, Paralysis: 14, Breath: 16, Spells: 15}},
	ClassDwarf:     {hitDie: 8, saves: SavingThrows{Poison: 10, Wands: 11, Paralysis: 12, Breath: 13, Spells: 14}},
	ClassHalfling:  {hitDie: 6, saves: SavingThrows{Poison: 10, Wands: 11, Paralysis: 12, Breath: 13, Spells: 14}},
	ClassElf:       {hitDie: 6, saves: SavingThrows{Poison: 12, Wands: 13, Paralysis: 13, Breath: 15, Spells: 15}},
	ClassFighter:   {hitDie: 8, saves: SavingThrows{Poison: 12, Wands: 13, Paralysis: 14, Breath: 15, Spells: 16}},
	ClassMagicUser: {hitDie: 4, saves: SavingThrows{Poison: 13, Wands: 14, Paralysis: 13, Breath: 16, Spells: 15}},
	ClassThief:     {hitDie: 4, saves: SavingThrows{Poison: 13, Wands: 14, Paralysis: 13, Breath: 16, Spells: 15}},
}

// ParseClass validates a class name
func ParseClass(name string) (Class, error) {
	c := Class(name)
	if !c.Valid() {
		return "", errors.InvalidArgumentf("%q is not a valid character class", name).
			WithMeta("class", name)
	}
	return c, nil
}

// Valid reports whether the class is in the class set
func (c Class) Valid() bool {
	_, ok := classTable[c]
	return ok
}

// HitDie returns the number of sides on the class hit die
func (c Class) HitDie() int {
	return classTable[c].hitDie
}

// SavingThrows returns the class save targets
func (c Class) SavingThrows() SavingThrows {
	return classTable[c].saves
}

// EquipmentClass is the class whose starting gear this class uses.
// Demi-humans train as fighters.
func (c Class) EquipmentClass() Class {
	switch c {
	case ClassElf, ClassDwarf, ClassHalfling:
		return ClassFighter
	default:
		return c
	}
}

// HasSpellbook reports whether the class starts with a spellbook
func (c Class) HasSpellbook() bool {
	return c == ClassElf || c == ClassMagicUser
}
