package content

import (
	"errors"
	"strings"

	"github.com/cory-johannsen/avrellant/internal/content/txt"
)

// ErrUnknownKind is returned for an unrecognised content kind name.
var ErrUnknownKind = errors.New("unknown content kind")

// fieldFunc applies one member line's value to the open entity.
type fieldFunc[T any] func(e *T, value string)

// grammar is a per-kind assembler: defaults for a new entity, the key
// dispatch table, and an optional hook for lines that bypass key dispatch.
type grammar[T any] struct {
	newEntity    func(name string) T
	fields       map[string]fieldFunc[T]
	continuation func(e *T, line string) bool
}

// assemble folds every section of text into an entity. Unrecognised lines and
// keys are skipped.
func (g grammar[T]) assemble(text string) []T {
	sections := txt.Sections(text)
	out := make([]T, 0, len(sections))
	for _, sec := range sections {
		e := g.newEntity(sec.Name)
		for _, line := range sec.Lines {
			if g.continuation != nil && g.continuation(&e, line) {
				continue
			}
			key, value, ok := txt.SplitKeyValue(line)
			if !ok {
				continue
			}
			if fn, ok := g.fields[key]; ok {
				fn(&e, value)
			}
		}
		out = append(out, e)
	}
	return out
}

// setInt assigns the first integer in value, leaving dst unchanged if none.
func setInt(dst *int, value string) {
	if n, ok := txt.FirstInt(value); ok {
		*dst = n
	}
}

var raceGrammar = grammar[Race]{
	newEntity: NewRace,
	fields: map[string]fieldFunc[Race]{
		"attributes": func(r *Race, v string) { r.Attributes = txt.ParseAttributes(v) },
		"size":       func(r *Race, v string) { setInt(&r.Size, v) },
		"languages":  func(r *Race, v string) { setInt(&r.Languages, v) },
		"trait":      func(r *Race, v string) { r.Traits = append(r.Traits, txt.ParseTrait(v)) },
	},
}

var backgroundGrammar = grammar[Background]{
	newEntity: NewBackground,
	fields: map[string]fieldFunc[Background]{
		"attributes": func(b *Background, v string) { b.Attributes = txt.ParseAttributes(v) },
		"lifestyle":  func(b *Background, v string) { b.Lifestyle = v },
		"money":      func(b *Background, v string) { setInt(&b.Money, v) },
		"item":       func(b *Background, v string) { b.Items = append(b.Items, v) },
		"trait":      func(b *Background, v string) { b.Traits = append(b.Traits, txt.ParseTrait(v)) },
	},
}

func setHitPoints(c *Class, v string) { c.HitPoints = v }
func setSkillPoints(c *Class, v string) { setInt(&c.SkillPoints, v) }
func setSkillProgression(c *Class, v string) {
	c.Progression.SkillPoints = txt.ParseProgression(v)
}
func addAbility(c *Class, v string) {
	// A bare "Core Abilities:" heads a dash list.
	if v != "" {
		c.Abilities = append(c.Abilities, v)
	}
}

var classGrammar = grammar[Class]{
	newEntity: NewClass,
	fields: map[string]fieldFunc[Class]{
		"defences":                func(c *Class, v string) { c.Defences = txt.ParseDefences(v) },
		"hit points":              setHitPoints,
		"hitpoints":               setHitPoints,
		"spellcaster":             func(c *Class, v string) { c.Spellcaster = isYes(v) },
		"skill points":            setSkillPoints,
		"skillpoints":             setSkillPoints,
		"skill point progression": setSkillProgression,
		"skillpoint progression":  setSkillProgression,
		"talent progression":      func(c *Class, v string) { c.Progression.Talents = txt.ParseProgression(v) },
		"core abilities":          addAbility,
		"abilities":               addAbility,
	},
	// "- Shield Bash" lines extend the ability list without a key.
	continuation: func(c *Class, line string) bool {
		if !strings.HasPrefix(line, "-") {
			return false
		}
		c.Abilities = append(c.Abilities, strings.TrimSpace(line[1:]))
		return true
	},
}

func setRequirement(t *Talent, v string) { t.Requires = txt.ParseRequirement(v) }

var talentGrammar = grammar[Talent]{
	newEntity: NewTalent,
	fields: map[string]fieldFunc[Talent]{
		"requires":     setRequirement,
		"requirement":  setRequirement,
		"requirements": setRequirement,
		"type":         func(t *Talent, v string) { t.Type = splitTags(v) },
		"effect":       func(t *Talent, v string) { t.Effect = v },
	},
}

func isYes(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true":
		return true
	}
	return false
}

func splitTags(v string) []string {
	out := []string{}
	for _, t := range strings.Split(v, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseRaces assembles every race section in text.
//
// Postcondition: one Race per header line, in file order; never fails.
func ParseRaces(text string) []Race { return raceGrammar.assemble(text) }

// ParseBackgrounds assembles every background section in text.
//
// Postcondition: one Background per header line, in file order; never fails.
func ParseBackgrounds(text string) []Background { return backgroundGrammar.assemble(text) }

// ParseClasses assembles every class section in text.
//
// Postcondition: one Class per header line, in file order; never fails.
func ParseClasses(text string) []Class { return classGrammar.assemble(text) }

// ParseTalents assembles every talent section in text.
//
// Postcondition: one Talent per header line, in file order; never fails.
func ParseTalents(text string) []Talent { return talentGrammar.assemble(text) }

// Parse assembles text as the given kind into a Library holding only that kind.
//
// Postcondition: Returns ErrUnknownKind for an unsupported kind; otherwise never fails.
func Parse(kind Kind, text string) (*Library, error) {
	lib := NewLibrary()
	switch kind {
	case KindRace:
		lib.AddRaces(ParseRaces(text)...)
	case KindClass:
		lib.AddClasses(ParseClasses(text)...)
	case KindBackground:
		lib.AddBackgrounds(ParseBackgrounds(text)...)
	case KindTalent:
		lib.AddTalents(ParseTalents(text)...)
	default:
		return nil, ErrUnknownKind
	}
	return lib, nil
}
