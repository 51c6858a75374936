package postgres

import (
	"context"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store adapts the content and character repositories to storage.Store.
type Store struct {
	pool       *Pool
	Content    *ContentRepository
	Characters *CharacterRepository
}

// NewStore builds a Store on pool and takes ownership of it.
//
// Precondition: pool must be connected and migrated.
func NewStore(pool *Pool) *Store {
	return &Store{
		pool:       pool,
		Content:    NewContentRepository(pool.DB()),
		Characters: NewCharacterRepository(pool.DB()),
	}
}

// SaveContent appends every record of lib.
func (s *Store) SaveContent(ctx context.Context, lib *content.Library) error {
	return s.Content.Append(ctx, lib)
}

// LoadContent returns every stored record in insertion order.
func (s *Store) LoadContent(ctx context.Context) (*content.Library, error) {
	return s.Content.Load(ctx)
}

// FindContent returns every record of kind k whose slug matches name's slug.
func (s *Store) FindContent(ctx context.Context, k content.Kind, name string) (*content.Library, error) {
	return s.Content.FindBySlug(ctx, k, name)
}

// DeleteContent removes every record of kind k named name.
func (s *Store) DeleteContent(ctx context.Context, k content.Kind, name string) (int, error) {
	return s.Content.Delete(ctx, k, name)
}

// ClearContent removes every record of kind k.
func (s *Store) ClearContent(ctx context.Context, k content.Kind) error {
	return s.Content.Clear(ctx, k)
}

// SaveCharacter inserts or replaces the character named c.Name.
func (s *Store) SaveCharacter(ctx context.Context, c *character.Character) (string, error) {
	id, err := s.Characters.Save(ctx, c)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// LoadCharacter returns the character named name.
func (s *Store) LoadCharacter(ctx context.Context, name string) (*character.Character, error) {
	return s.Characters.GetByName(ctx, name)
}

// ListCharacters returns stored character names.
func (s *Store) ListCharacters(ctx context.Context) ([]string, error) {
	return s.Characters.ListNames(ctx)
}

// Stats counts stored records per kind and stored characters.
func (s *Store) Stats(ctx context.Context) (storage.Stats, error) {
	st := storage.NewStats()
	counts, err := s.Content.Counts(ctx)
	if err != nil {
		return storage.Stats{}, err
	}
	for k, n := range counts {
		st.Content[k] = n
	}
	if st.Characters, err = s.Characters.Count(ctx); err != nil {
		return storage.Stats{}, err
	}
	return st, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}
