// Package storage defines the persistence contract shared by the file and
// PostgreSQL backends. Content saves append: entries sharing a name are kept
// side by side, exactly as repeated imports produce them.
package storage

import (
	"context"
	"errors"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/character"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// Stats summarises what a store holds.
type Stats struct {
	Content    map[content.Kind]int `json:"content"`
	Characters int                  `json:"characters"`
}

// NewStats returns Stats with a zero count for every content kind.
func NewStats() Stats {
	s := Stats{Content: make(map[content.Kind]int, len(content.Kinds()))}
	for _, k := range content.Kinds() {
		s.Content[k] = 0
	}
	return s
}

// Store persists content libraries and characters.
type Store interface {
	// SaveContent appends every record of lib.
	SaveContent(ctx context.Context, lib *content.Library) error
	// LoadContent returns every stored record in insertion order.
	LoadContent(ctx context.Context) (*content.Library, error)
	// FindContent returns every record of kind k whose slug matches name's
	// slug, in insertion order.
	FindContent(ctx context.Context, k content.Kind, name string) (*content.Library, error)
	// DeleteContent removes every record of kind k named name and reports how
	// many were removed.
	DeleteContent(ctx context.Context, k content.Kind, name string) (int, error)
	// ClearContent removes every record of kind k.
	ClearContent(ctx context.Context, k content.Kind) error
	// SaveCharacter inserts or replaces the character with c.Name and returns its ID.
	SaveCharacter(ctx context.Context, c *character.Character) (string, error)
	// LoadCharacter returns the character named name, or ErrCharacterNotFound.
	LoadCharacter(ctx context.Context, name string) (*character.Character, error)
	// ListCharacters returns stored character names in save order.
	ListCharacters(ctx context.Context) ([]string, error)
	// Stats counts stored records per kind and stored characters.
	Stats(ctx context.Context) (Stats, error)
	// Close releases backend resources.
	Close()
}
