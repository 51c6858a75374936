// Package character defines the character snapshot consumed by the rules
// engine and pure helpers that produce modified copies of it.
package character

import (
	"encoding/json"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
)

// Gear is one piece of equipment. DR is meaningful only for armor and shields.
type Gear struct {
	Name        string `json:"name"`
	Encumbrance int    `json:"encumbrance"`
	DR          int    `json:"dr,omitempty"`
}

// Equipment is everything a character carries.
type Equipment struct {
	Weapons []Gear `json:"weapons"`
	Armor   *Gear  `json:"armor"`
	Shield  *Gear  `json:"shield"`
	Items   []Gear `json:"items"`
}

// Defences, Thresholds, and Derived mirror the derived-stats block as stored
// on an exported character. They are recomputed by the sheet package and never
// read as inputs.
type (
	Defences = content.Defences

	Thresholds struct {
		Fatigue    int `json:"fatigue"`
		Friction   int `json:"friction"`
		Stress     int `json:"stress"`
		Strain     int `json:"strain"`
		Wounds     int `json:"wounds"`
		Corruption int `json:"corruption"`
	}

	Derived struct {
		Defences    Defences   `json:"defences"`
		Speed       int        `json:"speed"`
		Encumbrance int        `json:"encumbrance"`
		DR          int        `json:"dr"`
		Thresholds  Thresholds `json:"thresholds"`
	}
)

// Character is a player character snapshot. The JSON shape is the export
// format shared with the importing collaborator.
//
// Race, Background, and Class embed the selected content record, or are nil.
// Spells are carried opaquely.
type Character struct {
	Name           string              `json:"name"`
	Race           *content.Race       `json:"race"`
	Background     *content.Background `json:"background"`
	Class          *content.Class      `json:"class"`
	Level          int                 `json:"level"`
	XP             int                 `json:"xp"`
	BaseAttributes attribute.Block     `json:"baseAttributes"`
	Attributes     attribute.Block     `json:"attributes"`
	Skills         map[string]int      `json:"skills"`
	DerivedStats   Derived             `json:"derivedStats"`
	Talents        []content.Talent    `json:"talents"`
	Spells         []json.RawMessage   `json:"spells"`
	Equipment      Equipment           `json:"equipment"`
	Money          int                 `json:"money"`
}

// HasTalent reports whether the character holds a talent named exactly name.
func (c *Character) HasTalent(name string) bool {
	for _, t := range c.Talents {
		if t.Name == name {
			return true
		}
	}
	return false
}

// EffectiveLevel returns Level, treating anything below 1 as level 1.
func (c *Character) EffectiveLevel() int {
	if c.Level < 1 {
		return 1
	}
	return c.Level
}
