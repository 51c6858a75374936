// Package attribute defines the six Avrellant attributes, the fixed-shape
// attribute block every entity and character carries, and aggregation.
package attribute

import "strings"

// Key identifies one of the six attributes by its three-letter abbreviation.
type Key string

const (
	Agility    Key = "agi"
	Guile      Key = "gui"
	Intellect  Key = "int"
	Perception Key = "per"
	Strength   Key = "str"
	Willpower  Key = "wil"
)

// Keys returns the six attribute keys in canonical sheet order.
//
// Postcondition: len(result) == 6; the caller may modify the returned slice.
func Keys() []Key {
	return []Key{Agility, Guile, Intellect, Perception, Strength, Willpower}
}

// fullNames maps full attribute names to their abbreviations.
var fullNames = map[string]Key{
	"agility":    Agility,
	"guile":      Guile,
	"intellect":  Intellect,
	"perception": Perception,
	"strength":   Strength,
	"willpower":  Willpower,
}

// FromName resolves a full attribute name (case-insensitive) to its key. Words
// outside the table fall back to their first three letters, lower-cased, which
// may not be one of the six standard keys.
//
// Postcondition: ok is true iff word is one of the six full names.
func FromName(word string) (k Key, ok bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	if k, ok := fullNames[w]; ok {
		return k, true
	}
	return Key(prefix3(w)), false
}

// FromPrefix resolves a word to a key by its first three letters.
//
// Postcondition: ok is true iff the prefix is one of the six standard keys.
func FromPrefix(word string) (Key, bool) {
	k := Key(prefix3(strings.ToLower(strings.TrimSpace(word))))
	return k, k.Valid()
}

// Valid reports whether k is one of the six standard keys.
func (k Key) Valid() bool {
	switch k {
	case Agility, Guile, Intellect, Perception, Strength, Willpower:
		return true
	}
	return false
}

func prefix3(s string) string {
	if len(s) <= 3 {
		return s
	}
	return s[:3]
}

// Block holds one integer per attribute. The zero value is a valid all-zero
// block, so a Block is never partial.
type Block struct {
	Agi int `json:"agi" yaml:"agi"`
	Gui int `json:"gui" yaml:"gui"`
	Int int `json:"int" yaml:"int"`
	Per int `json:"per" yaml:"per"`
	Str int `json:"str" yaml:"str"`
	Wil int `json:"wil" yaml:"wil"`
}

// Get returns the value for k, or 0 for a non-standard key.
func (b Block) Get(k Key) int {
	switch k {
	case Agility:
		return b.Agi
	case Guile:
		return b.Gui
	case Intellect:
		return b.Int
	case Perception:
		return b.Per
	case Strength:
		return b.Str
	case Willpower:
		return b.Wil
	}
	return 0
}

// With returns a copy of b with k set to v. Non-standard keys are ignored.
func (b Block) With(k Key, v int) Block {
	switch k {
	case Agility:
		b.Agi = v
	case Guile:
		b.Gui = v
	case Intellect:
		b.Int = v
	case Perception:
		b.Per = v
	case Strength:
		b.Str = v
	case Willpower:
		b.Wil = v
	}
	return b
}

// Add returns the per-key sum of b and o.
func (b Block) Add(o Block) Block {
	return Block{
		Agi: b.Agi + o.Agi,
		Gui: b.Gui + o.Gui,
		Int: b.Int + o.Int,
		Per: b.Per + o.Per,
		Str: b.Str + o.Str,
		Wil: b.Wil + o.Wil,
	}
}

// Aggregate sums a base block with optional race and background bonuses.
// A nil bonus contributes 0. Totals are not clamped.
//
// Postcondition: result.Get(k) == base.Get(k) + race.Get(k) + background.Get(k) for every k.
func Aggregate(base Block, race, background *Block) Block {
	out := base
	if race != nil {
		out = out.Add(*race)
	}
	if background != nil {
		out = out.Add(*background)
	}
	return out
}
