// Package skill holds the fixed table of the twelve Avrellant skills and the
// attribute each one keys off.
package skill

import (
	"strings"

	"github.com/cory-johannsen/avrellant/internal/game/attribute"
)

// MaxPoints is the most points one skill may hold without special talents.
const MaxPoints = 5

// ProgressionBonus is the number of skill points granted at each class
// skill-point progression level.
const ProgressionBonus = 2

var table = []struct {
	name string
	attr attribute.Key
}{
	{"reflex", attribute.Agility},
	{"stealth", attribute.Agility},
	{"deception", attribute.Guile},
	{"streetwise", attribute.Guile},
	{"lore", attribute.Intellect},
	{"medicine", attribute.Intellect},
	{"tech", attribute.Intellect},
	{"investigation", attribute.Perception},
	{"ranged", attribute.Perception},
	{"fitness", attribute.Strength},
	{"melee", attribute.Strength},
	{"composure", attribute.Willpower},
}

// Names returns the twelve skill names in sheet order.
//
// Postcondition: len(result) == 12; the caller may modify the returned slice.
func Names() []string {
	out := make([]string, len(table))
	for i, s := range table {
		out[i] = s.name
	}
	return out
}

// AttributeFor returns the attribute a skill keys off. The lookup is
// case-insensitive.
//
// Postcondition: ok is false for a name outside the table.
func AttributeFor(name string) (attribute.Key, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range table {
		if s.name == n {
			return s.attr, true
		}
	}
	return "", false
}

// Index returns the sheet position of a skill, or -1 for an unknown name.
func Index(name string) int {
	n := strings.ToLower(name)
	for i, s := range table {
		if s.name == n {
			return i
		}
	}
	return -1
}
