package character

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/skill"
)

// New returns a level 1 character with every skill at 0 and empty collections.
//
// Postcondition: The result is valid input for every rules function.
func New(name string) *Character {
	names := skill.Names()
	skills := make(map[string]int, len(names))
	for _, s := range names {
		skills[s] = 0
	}
	return &Character{
		Name:    name,
		Level:   1,
		Skills:  skills,
		Talents: []content.Talent{},
		Spells:  []json.RawMessage{},
		Equipment: Equipment{
			Weapons: []Gear{},
			Items:   []Gear{},
		},
	}
}

// Clone returns a deep copy of c, so that modifying the copy never affects c.
//
// Precondition: c must be non-nil.
func (c *Character) Clone() *Character {
	out := *c
	if c.Race != nil {
		r := *c.Race
		r.Traits = slices.Clone(r.Traits)
		out.Race = &r
	}
	if c.Background != nil {
		b := *c.Background
		b.Items = slices.Clone(b.Items)
		b.Traits = slices.Clone(b.Traits)
		out.Background = &b
	}
	if c.Class != nil {
		cl := *c.Class
		cl.Abilities = slices.Clone(cl.Abilities)
		cl.Progression.SkillPoints = slices.Clone(cl.Progression.SkillPoints)
		cl.Progression.Talents = slices.Clone(cl.Progression.Talents)
		out.Class = &cl
	}
	out.Skills = maps.Clone(c.Skills)
	out.Talents = slices.Clone(c.Talents)
	out.Spells = slices.Clone(c.Spells)
	out.Equipment.Weapons = slices.Clone(c.Equipment.Weapons)
	out.Equipment.Items = slices.Clone(c.Equipment.Items)
	if c.Equipment.Armor != nil {
		a := *c.Equipment.Armor
		out.Equipment.Armor = &a
	}
	if c.Equipment.Shield != nil {
		s := *c.Equipment.Shield
		out.Equipment.Shield = &s
	}
	return &out
}

// WithRace returns a copy of c with race selected; nil clears the selection.
func (c *Character) WithRace(race *content.Race) *Character {
	out := c.Clone()
	out.Race = nil
	if race != nil {
		r := *race
		out.Race = &r
	}
	return out
}

// WithClass returns a copy of c with class selected; nil clears the selection.
func (c *Character) WithClass(class *content.Class) *Character {
	out := c.Clone()
	out.Class = nil
	if class != nil {
		cl := *class
		out.Class = &cl
	}
	return out
}

// WithBackground returns a copy of c with bg selected. Selecting a background
// also sets the character's money to the background's starting money; nil
// clears the selection and leaves money untouched.
func (c *Character) WithBackground(bg *content.Background) *Character {
	out := c.Clone()
	out.Background = nil
	if bg != nil {
		b := *bg
		out.Background = &b
		out.Money = b.Money
	}
	return out
}

// WithBaseAttributes returns a copy of c with the given base block.
func (c *Character) WithBaseAttributes(b attribute.Block) *Character {
	out := c.Clone()
	out.BaseAttributes = b
	return out
}

// WithLevel returns a copy of c at the given level.
//
// Precondition: level >= 1.
func (c *Character) WithLevel(level int) (*Character, error) {
	if level < 1 {
		return nil, fmt.Errorf("level must be >= 1, got %d", level)
	}
	out := c.Clone()
	out.Level = level
	return out, nil
}

// WithSkill returns a copy of c with points allocated to the named skill.
// The name is lower-cased. Points above skill.MaxPoints are accepted here and
// reported by skill validation instead.
//
// Precondition: points >= 0; name must be non-empty.
func (c *Character) WithSkill(name string, points int) (*Character, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New("skill name must not be empty")
	}
	if points < 0 {
		return nil, fmt.Errorf("skill %s: points must be >= 0, got %d", name, points)
	}
	out := c.Clone()
	if out.Skills == nil {
		out.Skills = make(map[string]int)
	}
	out.Skills[name] = points
	return out, nil
}

// WithTalent returns a copy of c holding t in addition to its current talents.
func (c *Character) WithTalent(t content.Talent) *Character {
	out := c.Clone()
	out.Talents = append(out.Talents, t)
	return out
}
