package rules

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/content/txt"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/character"
)

// IsEligible reports whether c meets every prerequisite of t: attribute
// minimums, the level threshold (inclusive), the spellcaster restriction, and
// every named prerequisite talent.
//
// Postcondition: IsEligible(t, c) == (len(UnmetRequirements(t, c)) == 0).
func IsEligible(t content.Talent, c *character.Character) bool {
	return len(UnmetRequirements(t, c)) == 0
}

// UnmetRequirements lists every prerequisite of t that c fails, in the order
// attributes (sorted by key), level, class restriction, talents.
//
// Postcondition: Returns an empty slice when c is eligible.
func UnmetRequirements(t content.Talent, c *character.Character) []string {
	req := t.Requires
	unmet := []string{}

	keys := make([]string, 0, len(req.Attributes))
	for k := range req.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		want := req.Attributes[k]
		if have := c.Attributes.Get(attribute.Key(k)); have < want {
			unmet = append(unmet, fmt.Sprintf("requires %d %s (has %d)", want, k, have))
		}
	}

	if level := c.EffectiveLevel(); req.Level > 0 && level < req.Level {
		unmet = append(unmet, fmt.Sprintf("requires level %d (is %d)", req.Level, level))
	}

	if req.HasRestriction(txt.SpellcasterTag) && (c.Class == nil || !c.Class.Spellcaster) {
		unmet = append(unmet, "requires a spellcaster class")
	}

	for _, name := range req.Talents {
		if !c.HasTalent(name) {
			unmet = append(unmet, fmt.Sprintf("requires talent %q", name))
		}
	}
	return unmet
}

// EligibleTalents filters talents down to those c may take, excluding any it
// already holds, in input order.
func EligibleTalents(talents []content.Talent, c *character.Character) []content.Talent {
	out := []content.Talent{}
	for _, t := range talents {
		if c.HasTalent(t.Name) {
			continue
		}
		if IsEligible(t, c) {
			out = append(out, t)
		}
	}
	return out
}
