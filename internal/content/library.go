package content

import (
	"encoding/json"
	"fmt"
)

// Library is an in-memory collection of parsed content. Adding records only
// appends: entries sharing a name are kept side by side, and lookups return
// the first one.
//
// A Library is not safe for concurrent mutation; callers own it.
type Library struct {
	Races       []Race       `json:"races"`
	Classes     []Class      `json:"classes"`
	Backgrounds []Background `json:"backgrounds"`
	Talents     []Talent     `json:"talents"`
}

// NewLibrary returns an empty library with non-nil collections.
func NewLibrary() *Library {
	return &Library{
		Races:       []Race{},
		Classes:     []Class{},
		Backgrounds: []Background{},
		Talents:     []Talent{},
	}
}

// AddRaces appends races.
func (l *Library) AddRaces(rs ...Race) { l.Races = append(l.Races, rs...) }

// AddClasses appends classes.
func (l *Library) AddClasses(cs ...Class) { l.Classes = append(l.Classes, cs...) }

// AddBackgrounds appends backgrounds.
func (l *Library) AddBackgrounds(bs ...Background) { l.Backgrounds = append(l.Backgrounds, bs...) }

// AddTalents appends talents.
func (l *Library) AddTalents(ts ...Talent) { l.Talents = append(l.Talents, ts...) }

// Merge appends every record of o to l, in kind order.
//
// Postcondition: l.Count(k) grows by o.Count(k) for every kind.
func (l *Library) Merge(o *Library) {
	if o == nil {
		return
	}
	l.AddRaces(o.Races...)
	l.AddClasses(o.Classes...)
	l.AddBackgrounds(o.Backgrounds...)
	l.AddTalents(o.Talents...)
}

// find returns a copy of the first item named exactly name or, failing that,
// the first whose slug matches name's slug.
func find[T any](items []T, name string, nameOf func(T) string) (*T, bool) {
	for i := range items {
		if nameOf(items[i]) == name {
			v := items[i]
			return &v, true
		}
	}
	slug := Slug(name)
	if slug == "" {
		return nil, false
	}
	for i := range items {
		if Slug(nameOf(items[i])) == slug {
			v := items[i]
			return &v, true
		}
	}
	return nil, false
}

// FindRace returns the first race named name. Without an exact match the
// first race with the same slug is returned, so "high elf" finds "High Elf".
func (l *Library) FindRace(name string) (*Race, bool) {
	return find(l.Races, name, func(r Race) string { return r.Name })
}

// FindClass returns the first class named name, falling back to a slug match.
func (l *Library) FindClass(name string) (*Class, bool) {
	return find(l.Classes, name, func(c Class) string { return c.Name })
}

// FindBackground returns the first background named name, falling back to a
// slug match.
func (l *Library) FindBackground(name string) (*Background, bool) {
	return find(l.Backgrounds, name, func(b Background) string { return b.Name })
}

// FindTalent returns the first talent named name, falling back to a slug match.
func (l *Library) FindTalent(name string) (*Talent, bool) {
	return find(l.Talents, name, func(t Talent) string { return t.Name })
}

// FindBySlug returns a library holding every record of kind k whose slug
// equals Slug(name), in library order.
//
// Postcondition: Returns ErrUnknownKind for an unsupported kind.
func (l *Library) FindBySlug(k Kind, name string) (*Library, error) {
	slug := Slug(name)
	out := NewLibrary()
	switch k {
	case KindRace:
		out.Races, _ = without(l.Races, func(r Race) bool { return Slug(r.Name) != slug })
	case KindClass:
		out.Classes, _ = without(l.Classes, func(c Class) bool { return Slug(c.Name) != slug })
	case KindBackground:
		out.Backgrounds, _ = without(l.Backgrounds, func(b Background) bool { return Slug(b.Name) != slug })
	case KindTalent:
		out.Talents, _ = without(l.Talents, func(t Talent) bool { return Slug(t.Name) != slug })
	default:
		return nil, ErrUnknownKind
	}
	return out, nil
}

// Count returns the number of records of kind k.
func (l *Library) Count(k Kind) int {
	switch k {
	case KindRace:
		return len(l.Races)
	case KindClass:
		return len(l.Classes)
	case KindBackground:
		return len(l.Backgrounds)
	case KindTalent:
		return len(l.Talents)
	}
	return 0
}

// Names returns the record names of kind k in library order.
func (l *Library) Names(k Kind) []string {
	var names []string
	switch k {
	case KindRace:
		for _, r := range l.Races {
			names = append(names, r.Name)
		}
	case KindClass:
		for _, c := range l.Classes {
			names = append(names, c.Name)
		}
	case KindBackground:
		for _, b := range l.Backgrounds {
			names = append(names, b.Name)
		}
	case KindTalent:
		for _, t := range l.Talents {
			names = append(names, t.Name)
		}
	}
	return names
}

// Delete removes every record of kind k named name and reports how many were removed.
func (l *Library) Delete(k Kind, name string) int {
	switch k {
	case KindRace:
		var n int
		l.Races, n = without(l.Races, func(r Race) bool { return r.Name == name })
		return n
	case KindClass:
		var n int
		l.Classes, n = without(l.Classes, func(c Class) bool { return c.Name == name })
		return n
	case KindBackground:
		var n int
		l.Backgrounds, n = without(l.Backgrounds, func(b Background) bool { return b.Name == name })
		return n
	case KindTalent:
		var n int
		l.Talents, n = without(l.Talents, func(t Talent) bool { return t.Name == name })
		return n
	}
	return 0
}

// Clear removes every record of kind k.
func (l *Library) Clear(k Kind) {
	switch k {
	case KindRace:
		l.Races = []Race{}
	case KindClass:
		l.Classes = []Class{}
	case KindBackground:
		l.Backgrounds = []Background{}
	case KindTalent:
		l.Talents = []Talent{}
	}
}

func without[T any](in []T, drop func(T) bool) ([]T, int) {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out, len(in) - len(out)
}

// MarshalKind encodes the records of kind k as a JSON array.
//
// Postcondition: Returns ErrUnknownKind for an unsupported kind.
func (l *Library) MarshalKind(k Kind) ([]byte, error) {
	var v any
	switch k {
	case KindRace:
		v = l.Races
	case KindClass:
		v = l.Classes
	case KindBackground:
		v = l.Backgrounds
	case KindTalent:
		v = l.Talents
	default:
		return nil, ErrUnknownKind
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", k, err)
	}
	return data, nil
}

// UnmarshalKind decodes a JSON array of kind k records and appends them to l.
//
// Postcondition: l is unchanged when an error is returned.
func (l *Library) UnmarshalKind(k Kind, data []byte) error {
	var err error
	switch k {
	case KindRace:
		var rs []Race
		if err = json.Unmarshal(data, &rs); err == nil {
			l.AddRaces(rs...)
		}
	case KindClass:
		var cs []Class
		if err = json.Unmarshal(data, &cs); err == nil {
			l.AddClasses(cs...)
		}
	case KindBackground:
		var bs []Background
		if err = json.Unmarshal(data, &bs); err == nil {
			l.AddBackgrounds(bs...)
		}
	case KindTalent:
		var ts []Talent
		if err = json.Unmarshal(data, &ts); err == nil {
			l.AddTalents(ts...)
		}
	default:
		return ErrUnknownKind
	}
	if err != nil {
		return fmt.Errorf("decoding %s: %w", k, err)
	}
	return nil
}

// Record is one encoded content entry.
type Record struct {
	Name string
	Data json.RawMessage
}

// Records encodes every entry of kind k individually, in library order.
//
// Postcondition: Returns ErrUnknownKind for an unsupported kind.
func (l *Library) Records(k Kind) ([]Record, error) {
	var names []string
	var values []any
	switch k {
	case KindRace:
		for _, r := range l.Races {
			names, values = append(names, r.Name), append(values, r)
		}
	case KindClass:
		for _, c := range l.Classes {
			names, values = append(names, c.Name), append(values, c)
		}
	case KindBackground:
		for _, b := range l.Backgrounds {
			names, values = append(names, b.Name), append(values, b)
		}
	case KindTalent:
		for _, t := range l.Talents {
			names, values = append(names, t.Name), append(values, t)
		}
	default:
		return nil, ErrUnknownKind
	}
	out := make([]Record, 0, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %q: %w", k, names[i], err)
		}
		out = append(out, Record{Name: names[i], Data: data})
	}
	return out, nil
}

// AppendRecords decodes individually encoded entries of kind k and appends
// them to l.
//
// Postcondition: l is unchanged when an error is returned.
func (l *Library) AppendRecords(k Kind, data []json.RawMessage) error {
	arr, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding %s records: %w", k, err)
	}
	return l.UnmarshalKind(k, arr)
}
