package txt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cory-johannsen/avrellant/internal/game/attribute"
)

var (
	intRe      = regexp.MustCompile(`\d+`)
	bonusRe    = regexp.MustCompile(`(?i)\+(\d+)\s+(\w+)`)
	defenceRe  = regexp.MustCompile(`(?i)\+?(\d+)\s+(EVA|GRI|INT|Evasion|Grit|Intuition)`)
	reqAttrRe  = regexp.MustCompile(`(\d+)\s+(\w+)`)
	reqLevelRe = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)\s+level`)
)

// SpellcasterTag is the class restriction requiring a spellcasting class.
const SpellcasterTag = "spellcaster"

// Trait is a named feature with an optional description.
type Trait struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Defences holds the three class defence bonuses.
type Defences struct {
	Evasion   int `json:"evasion"`
	Grit      int `json:"grit"`
	Intuition int `json:"intuition"`
}

// Requirement is the parsed prerequisite structure gating a talent.
// Attribute keys are usually standard abbreviations but the three-letter
// fallback may produce others.
type Requirement struct {
	Attributes        map[string]int `json:"attributes"`
	Level             int            `json:"level"`
	Talents           []string       `json:"talents"`
	ClassRestrictions []string       `json:"classRestrictions"`
}

// NewRequirement returns an empty requirement with non-nil collections.
func NewRequirement() Requirement {
	return Requirement{
		Attributes:        map[string]int{},
		Talents:           []string{},
		ClassRestrictions: []string{},
	}
}

// HasRestriction reports whether tag is among the class restrictions.
func (r Requirement) HasRestriction(tag string) bool {
	for _, t := range r.ClassRestrictions {
		if t == tag {
			return true
		}
	}
	return false
}

// FirstInt returns the first run of decimal digits in s.
// "4 + INT modifier" yields 4; trailing prose is ignored.
//
// Postcondition: ok is false if s contains no representable integer.
func FirstInt(s string) (int, bool) {
	m := intRe.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseProgression extracts every integer substring of s in order.
// "Gain 2 skill points at levels 3, 6, 9" yields [2 3 6 9].
//
// Postcondition: result is non-nil.
func ParseProgression(s string) []int {
	out := []int{}
	for _, m := range intRe.FindAllString(s, -1) {
		if n, err := strconv.Atoi(m); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// ParseAttributes parses a bonus list such as "+1 INT, +1 Perception".
// Each clause is matched on its own; the attribute is resolved from the first
// three letters of the word. Unmatched clauses and unknown attributes are
// dropped, and a later clause for the same attribute overwrites an earlier one.
func ParseAttributes(s string) attribute.Block {
	var b attribute.Block
	for _, clause := range strings.Split(s, ",") {
		m := bonusRe.FindStringSubmatch(strings.TrimSpace(clause))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		k, ok := attribute.FromPrefix(m[2])
		if !ok {
			continue
		}
		b = b.With(k, n)
	}
	return b
}

// FormatAttributes renders the positive entries of b in canonical order, in
// the form ParseAttributes accepts.
func FormatAttributes(b attribute.Block) string {
	var parts []string
	for _, k := range attribute.Keys() {
		if v := b.Get(k); v > 0 {
			parts = append(parts, fmt.Sprintf("+%d %s", v, strings.ToUpper(string(k))))
		}
	}
	return strings.Join(parts, ", ")
}

// ParseDefences parses "6 EVA, 8 GRI, 4 INT" or "+6 Evasion, +8 Grit".
// Clauses that don't match leave the corresponding field unchanged.
func ParseDefences(s string) Defences {
	var d Defences
	for _, clause := range strings.Split(s, ",") {
		m := defenceRe.FindStringSubmatch(strings.TrimSpace(clause))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		switch kind := strings.ToLower(m[2]); {
		case strings.HasPrefix(kind, "eva"):
			d.Evasion = n
		case strings.HasPrefix(kind, "gri"):
			d.Grit = n
		case strings.HasPrefix(kind, "int"):
			d.Intuition = n
		}
	}
	return d
}

// ParseTrait splits "Name | Description". The description is empty when the
// pipe is absent.
func ParseTrait(value string) Trait {
	name, desc, _ := strings.Cut(value, "|")
	if i := strings.IndexByte(desc, '|'); i >= 0 {
		desc = desc[:i]
	}
	return Trait{Name: strings.TrimSpace(name), Description: strings.TrimSpace(desc)}
}

// ParseRequirement classifies each comma-separated clause, first match wins:
//  1. "<n> <word>"        attribute threshold
//  2. "<n>th level"       level threshold
//  3. "spellcaster"       class restriction
//  4. anything else       prerequisite talent name
//
// Empty clauses are skipped.
func ParseRequirement(s string) Requirement {
	req := NewRequirement()
	for _, clause := range strings.Split(s, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		if m := reqAttrRe.FindStringSubmatch(clause); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				k, _ := attribute.FromName(m[2])
				req.Attributes[string(k)] = n
				continue
			}
		}
		if m := reqLevelRe.FindStringSubmatch(clause); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				req.Level = n
				continue
			}
		}
		if strings.EqualFold(clause, SpellcasterTag) {
			if !req.HasRestriction(SpellcasterTag) {
				req.ClassRestrictions = append(req.ClassRestrictions, SpellcasterTag)
			}
			continue
		}
		req.Talents = append(req.Talents, clause)
	}
	return req
}
