// Package sheet runs the character pipeline in order: attribute aggregation,
// derived stats, skill validation, and talent eligibility.
package sheet

import (
	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/game/rules"
	"github.com/cory-johannsen/avrellant/internal/game/skill"
)

// SkillLine is one row of the skills table.
type SkillLine struct {
	Name      string        `json:"name"`
	Attribute attribute.Key `json:"attribute"`
	Points    int           `json:"points"`
	Modifier  int           `json:"modifier"`
}

// Sheet is the fully computed view of a character.
type Sheet struct {
	Name            string             `json:"name"`
	Level           int                `json:"level"`
	Attributes      attribute.Block    `json:"attributes"`
	Derived         rules.DerivedStats `json:"derivedStats"`
	Skills          []SkillLine        `json:"skills"`
	SkillBudget     rules.SkillResult  `json:"skillBudget"`
	Load            int                `json:"load"`
	OverEncumbered  bool               `json:"overEncumbered"`
	EligibleTalents []string           `json:"eligibleTalents"`
	HeldTalents     []string           `json:"heldTalents"`
}

// Attributes aggregates c's base attributes with its race and background.
func Attributes(c *character.Character) attribute.Block {
	var race, bg *attribute.Block
	if c.Race != nil {
		race = &c.Race.Attributes
	}
	if c.Background != nil {
		bg = &c.Background.Attributes
	}
	return attribute.Aggregate(c.BaseAttributes, race, bg)
}

// Recalculate returns a copy of c whose attributes and derived stats are
// recomputed from its base attributes and current selections.
//
// Postcondition: c is not modified.
func Recalculate(c *character.Character) *character.Character {
	out := c.Clone()
	out.Attributes = Attributes(out)
	out.DerivedStats = rules.Derive(out.Attributes, out.Class, out.Race, &out.Equipment)
	return out
}

// Compute builds the sheet for c. lib supplies the talents offered as
// eligible; a nil lib yields no eligible talents.
//
// Postcondition: c is not modified; the stored attributes and derived stats
// on c are ignored in favour of freshly computed values.
func Compute(c *character.Character, lib *content.Library) Sheet {
	fresh := Recalculate(c)

	s := Sheet{
		Name:            fresh.Name,
		Level:           fresh.EffectiveLevel(),
		Attributes:      fresh.Attributes,
		Derived:         fresh.DerivedStats,
		SkillBudget:     rules.ValidateSkills(fresh),
		Load:            rules.CurrentEncumbrance(&fresh.Equipment),
		EligibleTalents: []string{},
		HeldTalents:     make([]string, 0, len(fresh.Talents)),
	}
	s.OverEncumbered = s.Load > s.Derived.Encumbrance

	for _, name := range skill.Names() {
		attr, _ := skill.AttributeFor(name)
		s.Skills = append(s.Skills, SkillLine{
			Name:      name,
			Attribute: attr,
			Points:    fresh.Skills[name],
			Modifier:  rules.SkillModifier(fresh, name),
		})
	}
	for _, t := range fresh.Talents {
		s.HeldTalents = append(s.HeldTalents, t.Name)
	}
	if lib != nil {
		for _, t := range rules.EligibleTalents(lib.Talents, fresh) {
			s.EligibleTalents = append(s.EligibleTalents, t.Name)
		}
	}
	return s
}
