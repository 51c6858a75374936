// Package rules derives a character's defences, thresholds, encumbrance, and
// skill budget from its aggregated attributes and selected content, and
// checks talent eligibility. Every function is pure: inputs are read, never
// modified, and results are recomputed from scratch on each call.
package rules

import (
	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/character"
)

// DerivedStats is the full derived block of a character sheet.
type DerivedStats = character.Derived

// Derive computes defences, speed, encumbrance capacity, damage reduction,
// and thresholds. A nil class, race, or equipment contributes 0.
//
//	evasion     = agi + gui + class evasion
//	grit        = str + wil + class grit
//	intuition   = int + per + class intuition
//	speed       = agi + str
//	encumbrance = race size + str + int/2 (truncated)
//	wounds      = str + race size
//	dr          = armor dr + shield dr
func Derive(a attribute.Block, class *content.Class, race *content.Race, eq *character.Equipment) DerivedStats {
	var def content.Defences
	if class != nil {
		def = class.Defences
	}
	size := 0
	if race != nil {
		size = race.Size
	}
	return DerivedStats{
		Defences: content.Defences{
			Evasion:   a.Agi + a.Gui + def.Evasion,
			Grit:      a.Str + a.Wil + def.Grit,
			Intuition: a.Int + a.Per + def.Intuition,
		},
		Speed:       a.Agi + a.Str,
		Encumbrance: size + a.Str + a.Int/2,
		DR:          damageReduction(eq),
		Thresholds: character.Thresholds{
			Fatigue:    a.Agi,
			Friction:   a.Gui,
			Stress:     a.Int,
			Strain:     a.Per,
			Wounds:     a.Str + size,
			Corruption: a.Wil,
		},
	}
}

func damageReduction(eq *character.Equipment) int {
	if eq == nil {
		return 0
	}
	dr := 0
	if eq.Armor != nil {
		dr += eq.Armor.DR
	}
	if eq.Shield != nil {
		dr += eq.Shield.DR
	}
	return dr
}

// CurrentEncumbrance sums the encumbrance of every weapon, the armor, the
// shield, and every carried item.
//
// Postcondition: Returns 0 for nil equipment.
func CurrentEncumbrance(eq *character.Equipment) int {
	if eq == nil {
		return 0
	}
	total := 0
	for _, w := range eq.Weapons {
		total += w.Encumbrance
	}
	if eq.Armor != nil {
		total += eq.Armor.Encumbrance
	}
	if eq.Shield != nil {
		total += eq.Shield.Encumbrance
	}
	for _, it := range eq.Items {
		total += it.Encumbrance
	}
	return total
}

// IsOverEncumbered reports whether the carried load exceeds capacity.
// Carrying exactly capacity is allowed.
func IsOverEncumbered(capacity int, eq *character.Equipment) bool {
	return CurrentEncumbrance(eq) > capacity
}
