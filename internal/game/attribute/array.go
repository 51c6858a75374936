package attribute

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Array is a standard set of six values a player distributes across the
// attributes to produce a character's base block.
type Array struct {
	ID     int    `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Values [6]int `yaml:"values" json:"values"`
}

// DefaultArrays returns the built-in standard arrays, used when no ruleset
// file is configured.
func DefaultArrays() []Array {
	return []Array{
		{ID: 1, Name: "The Everyman", Values: [6]int{3, 3, 3, 3, 3, 3}},
		{ID: 2, Name: "The Specialist", Values: [6]int{4, 4, 3, 3, 2, 2}},
		{ID: 3, Name: "The Capable", Values: [6]int{4, 4, 4, 2, 2, 2}},
		{ID: 4, Name: "The Focused", Values: [6]int{4, 3, 3, 3, 3, 2}},
		{ID: 5, Name: "The Expert", Values: [6]int{5, 4, 3, 2, 2, 2}},
		{ID: 6, Name: "The Competent", Values: [6]int{5, 3, 3, 3, 2, 2}},
		{ID: 7, Name: "The Professional", Values: [6]int{5, 4, 2, 2, 2, 2}},
		{ID: 8, Name: "The Versatile", Values: [6]int{4, 4, 3, 3, 3, 1}},
		{ID: 9, Name: "The Dedicated", Values: [6]int{5, 3, 3, 2, 2, 2}},
		{ID: 10, Name: "The Unbalanced", Values: [6]int{4, 4, 4, 3, 1, 1}},
		{ID: 11, Name: "The Prodigy", Values: [6]int{5, 4, 3, 3, 1, 1}},
		{ID: 12, Name: "The Master", Values: [6]int{5, 5, 2, 2, 2, 1}},
		{ID: 13, Name: "The Savant", Values: [6]int{5, 5, 5, 1, 1, 1}},
	}
}

// Assign builds a base block by giving each attribute the array value at the
// chosen index. Attributes missing from assignment stay 0.
//
// Precondition: each index is in [0, 6) and used by at most one attribute.
// Postcondition: Returns the assigned Block, or a non-nil error describing every violation.
func (a Array) Assign(assignment map[Key]int) (Block, error) {
	var errs []error
	used := make(map[int]Key, len(assignment))
	var b Block
	for _, k := range Keys() {
		idx, ok := assignment[k]
		if !ok {
			continue
		}
		if idx < 0 || idx >= len(a.Values) {
			errs = append(errs, fmt.Errorf("%s: index %d out of range [0, %d)", k, idx, len(a.Values)))
			continue
		}
		if other, taken := used[idx]; taken {
			errs = append(errs, fmt.Errorf("%s: index %d already assigned to %s", k, idx, other))
			continue
		}
		used[idx] = k
		b = b.With(k, a.Values[idx])
	}
	for k := range assignment {
		if !k.Valid() {
			errs = append(errs, fmt.Errorf("unknown attribute %q", k))
		}
	}
	if len(errs) > 0 {
		return Block{}, fmt.Errorf("assigning array %q: %w", a.Name, errors.Join(errs...))
	}
	return b, nil
}

type arraysFile struct {
	Arrays []Array `yaml:"arrays"`
}

// LoadArrays reads a YAML ruleset file of the form `arrays: [{id, name, values}]`.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns at least one Array or a non-nil error.
func LoadArrays(path string) ([]Array, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseArrays(data)
}

// ParseArrays parses YAML array definitions.
//
// Postcondition: Returns at least one Array with unique IDs, or a non-nil error.
func ParseArrays(data []byte) ([]Array, error) {
	var f arraysFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing attribute arrays: %w", err)
	}
	if len(f.Arrays) == 0 {
		return nil, errors.New("attribute arrays: no arrays defined")
	}
	seen := make(map[int]bool, len(f.Arrays))
	for _, a := range f.Arrays {
		if seen[a.ID] {
			return nil, fmt.Errorf("attribute arrays: duplicate id %d", a.ID)
		}
		seen[a.ID] = true
	}
	return f.Arrays, nil
}

// FindArray returns the array with the given ID.
//
// Postcondition: ok is true iff an array with id exists in arrays.
func FindArray(arrays []Array, id int) (Array, bool) {
	for _, a := range arrays {
		if a.ID == id {
			return a, true
		}
	}
	return Array{}, false
}
