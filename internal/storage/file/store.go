// Package file implements storage.Store on a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type characterEntry struct {
	ID        string               `json:"id"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Character *character.Character `json:"character"`
}

type document struct {
	Content    *content.Library `json:"content"`
	Characters []characterEntry `json:"characters"`
}

// Store keeps content and characters in one JSON file. Every operation reads
// the file, applies its change, and rewrites it through a temporary file, so
// concurrent processes see whole documents only.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a Store backed by path. The file is created on first write.
//
// Precondition: path must be non-empty.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) read() (*document, error) {
	doc := &document{Content: content.NewLibrary(), Characters: []characterEntry{}}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decoding store %s: %w", s.path, err)
	}
	if doc.Content == nil {
		doc.Content = content.NewLibrary()
	}
	// Entries without a character carry nothing to load and are dropped.
	doc.Characters = slices.DeleteFunc(doc.Characters, func(e characterEntry) bool {
		return e.Character == nil
	})
	if doc.Characters == nil {
		doc.Characters = []characterEntry{}
	}
	return doc, nil
}

func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".avrellant-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing store %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) update(fn func(*document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

func (s *Store) view() (*document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// SaveContent appends every record of lib.
func (s *Store) SaveContent(_ context.Context, lib *content.Library) error {
	return s.update(func(doc *document) error {
		doc.Content.Merge(lib)
		return nil
	})
}

// LoadContent returns the stored library.
func (s *Store) LoadContent(_ context.Context) (*content.Library, error) {
	doc, err := s.view()
	if err != nil {
		return nil, err
	}
	return doc.Content, nil
}

// FindContent returns every record of kind k whose slug matches name's slug.
func (s *Store) FindContent(_ context.Context, k content.Kind, name string) (*content.Library, error) {
	doc, err := s.view()
	if err != nil {
		return nil, err
	}
	return doc.Content.FindBySlug(k, name)
}

// DeleteContent removes every record of kind k named name.
func (s *Store) DeleteContent(_ context.Context, k content.Kind, name string) (int, error) {
	removed := 0
	err := s.update(func(doc *document) error {
		removed = doc.Content.Delete(k, name)
		return nil
	})
	return removed, err
}

// ClearContent removes every record of kind k.
func (s *Store) ClearContent(_ context.Context, k content.Kind) error {
	return s.update(func(doc *document) error {
		doc.Content.Clear(k)
		return nil
	})
}

// SaveCharacter inserts or replaces the character named c.Name.
//
// Precondition: c.Name must be non-empty.
// Postcondition: Returns the character's stable ID.
func (s *Store) SaveCharacter(_ context.Context, c *character.Character) (string, error) {
	if c.Name == "" {
		return "", errors.New("character name must not be empty")
	}
	var id string
	err := s.update(func(doc *document) error {
		now := time.Now().UTC()
		for i := range doc.Characters {
			if doc.Characters[i].Character.Name == c.Name {
				doc.Characters[i].Character = c.Clone()
				doc.Characters[i].UpdatedAt = now
				id = doc.Characters[i].ID
				return nil
			}
		}
		id = uuid.NewString()
		doc.Characters = append(doc.Characters, characterEntry{ID: id, UpdatedAt: now, Character: c.Clone()})
		return nil
	})
	return id, err
}

// LoadCharacter returns the character named name.
//
// Postcondition: Returns storage.ErrCharacterNotFound when absent.
func (s *Store) LoadCharacter(_ context.Context, name string) (*character.Character, error) {
	doc, err := s.view()
	if err != nil {
		return nil, err
	}
	for _, e := range doc.Characters {
		if e.Character.Name == name {
			return e.Character, nil
		}
	}
	return nil, storage.ErrCharacterNotFound
}

// ListCharacters returns stored character names in save order.
func (s *Store) ListCharacters(_ context.Context) ([]string, error) {
	doc, err := s.view()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.Characters))
	for _, e := range doc.Characters {
		names = append(names, e.Character.Name)
	}
	return names, nil
}

// Stats counts stored records per kind and stored characters.
func (s *Store) Stats(_ context.Context) (storage.Stats, error) {
	doc, err := s.view()
	if err != nil {
		return storage.Stats{}, err
	}
	st := storage.NewStats()
	for _, k := range content.Kinds() {
		st.Content[k] = doc.Content.Count(k)
	}
	st.Characters = len(doc.Characters)
	return st, nil
}

// Close is a no-op; the file is not held open between operations.
func (s *Store) Close() {}
