package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/game/skill"
)

// SkillResult reports a skill allocation check. Message is set only when
// Valid is false; Remaining only when Valid is true.
type SkillResult struct {
	Valid     bool   `json:"valid"`
	Available int    `json:"available"`
	Spent     int    `json:"spent"`
	Remaining int    `json:"remaining,omitempty"`
	Message   string `json:"message,omitempty"`
}

// AvailableSkillPoints returns class base points plus intellect plus
// skill.ProgressionBonus for every progression level the character has reached.
//
// Postcondition: Returns c.Attributes.Int when no class is selected.
func AvailableSkillPoints(c *character.Character) int {
	available := c.Attributes.Int
	if c.Class == nil {
		return available
	}
	available += c.Class.SkillPoints
	level := c.EffectiveLevel()
	for _, lvl := range c.Class.Progression.SkillPoints {
		if lvl <= level {
			available += skill.ProgressionBonus
		}
	}
	return available
}

// SpentSkillPoints sums every allocated skill point.
func SpentSkillPoints(c *character.Character) int {
	spent := 0
	for _, p := range c.Skills {
		spent += p
	}
	return spent
}

// ValidateSkills checks the allocation against the budget and the per-skill
// cap. Overspending is reported before any cap violation.
//
// Postcondition: c is not modified.
func ValidateSkills(c *character.Character) SkillResult {
	available := AvailableSkillPoints(c)
	spent := SpentSkillPoints(c)
	res := SkillResult{Available: available, Spent: spent}

	if spent > available {
		res.Message = fmt.Sprintf("Too many skill points allocated. Available: %d, Spent: %d", available, spent)
		return res
	}
	for _, name := range sortedSkills(c.Skills) {
		if c.Skills[name] > skill.MaxPoints {
			res.Message = fmt.Sprintf("%s has too many points. Maximum: %d", name, skill.MaxPoints)
			return res
		}
	}
	res.Valid = true
	res.Remaining = available - spent
	return res
}

// sortedSkills orders allocated skills by sheet position, then unknown names
// alphabetically, so validation messages are deterministic.
func sortedSkills(skills map[string]int) []string {
	names := make([]string, 0, len(skills))
	for n := range skills {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := skill.Index(names[i]), skill.Index(names[j])
		switch {
		case a >= 0 && b >= 0:
			return a < b
		case a >= 0:
			return true
		case b >= 0:
			return false
		}
		return names[i] < names[j]
	})
	return names
}

// SkillModifier returns the governing attribute plus the points allocated to
// the skill. Unknown skills contribute only their allocated points.
func SkillModifier(c *character.Character, name string) int {
	n := strings.ToLower(name)
	mod := c.Skills[n]
	if attr, ok := skill.AttributeFor(n); ok {
		mod += c.Attributes.Get(attr)
	}
	return mod
}
