package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/storage"
)

// ErrCharacterNameTaken is returned by Create when the name is already stored.
var ErrCharacterNameTaken = errors.New("character name already taken")

// CharacterRepository stores character snapshots as JSONB keyed by a UUID,
// with names unique.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create inserts a new character and returns its ID.
//
// Precondition: c.Name must be non-empty.
// Postcondition: Returns a fresh ID, or ErrCharacterNameTaken on duplicate.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) (uuid.UUID, error) {
	data, err := encodeCharacter(c)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	_, err = r.db.Exec(ctx, `
		INSERT INTO characters (id, name, data) VALUES ($1, $2, $3)`,
		id, c.Name, data,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return uuid.Nil, ErrCharacterNameTaken
		}
		return uuid.Nil, fmt.Errorf("inserting character: %w", err)
	}
	return id, nil
}

// Save inserts c, or replaces the stored snapshot with the same name.
//
// Precondition: c.Name must be non-empty.
// Postcondition: Returns the ID of the stored row; an existing row keeps its ID.
func (r *CharacterRepository) Save(ctx context.Context, c *character.Character) (uuid.UUID, error) {
	data, err := encodeCharacter(c)
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	err = r.db.QueryRow(ctx, `
		INSERT INTO characters (id, name, data) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		RETURNING id`,
		uuid.New(), c.Name, data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("saving character %q: %w", c.Name, err)
	}
	return id, nil
}

// GetByName retrieves the character named name.
//
// Postcondition: Returns the Character or storage.ErrCharacterNotFound.
func (r *CharacterRepository) GetByName(ctx context.Context, name string) (*character.Character, error) {
	return r.get(ctx, `SELECT data FROM characters WHERE name = $1`, name)
}

// GetByID retrieves a character by its primary key.
//
// Postcondition: Returns the Character or storage.ErrCharacterNotFound.
func (r *CharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*character.Character, error) {
	return r.get(ctx, `SELECT data FROM characters WHERE id = $1`, id)
}

func (r *CharacterRepository) get(ctx context.Context, query string, arg any) (*character.Character, error) {
	var data []byte
	if err := r.db.QueryRow(ctx, query, arg).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}
	var c character.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding character: %w", err)
	}
	return &c, nil
}

// ListNames returns stored character names ordered by creation time.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CharacterRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM characters ORDER BY created_at ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Count returns the number of stored characters.
func (r *CharacterRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM characters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting characters: %w", err)
	}
	return int(n), nil
}

func encodeCharacter(c *character.Character) ([]byte, error) {
	if c.Name == "" {
		return nil, errors.New("character name must not be empty")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding character %q: %w", c.Name, err)
	}
	return data, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
