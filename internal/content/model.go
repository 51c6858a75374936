// Package content defines the typed Avrellant content records (races,
// classes, backgrounds, talents), their text-file assemblers, and the
// in-memory content library.
package content

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/avrellant/internal/content/txt"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
)

// Kind identifies a content entity kind.
type Kind string

const (
	KindRace       Kind = "races"
	KindClass      Kind = "classes"
	KindBackground Kind = "backgrounds"
	KindTalent     Kind = "talents"
)

// Kinds returns every supported kind in library order.
func Kinds() []Kind {
	return []Kind{KindRace, KindClass, KindBackground, KindTalent}
}

// ParseKind resolves a kind name, accepting singular and plural forms.
//
// Postcondition: Returns a valid Kind, or ErrUnknownKind wrapped with the input.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "race", "races":
		return KindRace, nil
	case "class", "classes":
		return KindClass, nil
	case "background", "backgrounds":
		return KindBackground, nil
	case "talent", "talents":
		return KindTalent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type (
	// Trait is a named racial or background feature.
	Trait = txt.Trait
	// Defences are the class bonuses to evasion, grit, and intuition.
	Defences = txt.Defences
	// Requirement gates talent acquisition.
	Requirement = txt.Requirement
)

// Race is a playable ancestry.
type Race struct {
	Name       string          `json:"name"`
	Attributes attribute.Block `json:"attributes"`
	Size       int             `json:"size"`
	Languages  int             `json:"languages"`
	Traits     []Trait         `json:"traits"`
}

// NewRace returns a race with default field values.
func NewRace(name string) Race {
	return Race{Name: name, Traits: []Trait{}}
}

// Background is a character's upbringing.
type Background struct {
	Name       string          `json:"name"`
	Attributes attribute.Block `json:"attributes"`
	Lifestyle  string          `json:"lifestyle"`
	Money      int             `json:"money"`
	Items      []string        `json:"items"`
	Traits     []Trait         `json:"traits"`
}

// NewBackground returns a background with default field values.
func NewBackground(name string) Background {
	return Background{Name: name, Items: []string{}, Traits: []Trait{}}
}

// Progression lists the levels at which a class gains extra skill points and talents.
type Progression struct {
	SkillPoints []int `json:"skillPoints"`
	Talents     []int `json:"talents"`
}

// Class is a playable profession.
type Class struct {
	Name        string      `json:"name"`
	Defences    Defences    `json:"defences"`
	Spellcaster bool        `json:"spellcaster"`
	HitPoints   string      `json:"hitPoints"`
	Abilities   []string    `json:"abilities"`
	SkillPoints int         `json:"skillPoints"`
	Progression Progression `json:"progression"`
}

// NewClass returns a class with default field values.
func NewClass(name string) Class {
	return Class{
		Name:        name,
		Abilities:   []string{},
		Progression: Progression{SkillPoints: []int{}, Talents: []int{}},
	}
}

// Talent is an acquirable feat with prerequisites.
type Talent struct {
	Name     string      `json:"name"`
	Requires Requirement `json:"requires"`
	Type     []string    `json:"type"`
	Effect   string      `json:"effect"`
}

// NewTalent returns a talent with default field values.
func NewTalent(name string) Talent {
	return Talent{Name: name, Requires: txt.NewRequirement(), Type: []string{}}
}

// HasType reports whether tag (case-insensitive) is one of the talent's types.
func (t Talent) HasType(tag string) bool {
	for _, ty := range t.Type {
		if strings.EqualFold(ty, tag) {
			return true
		}
	}
	return false
}
