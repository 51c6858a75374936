package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/avrellant/internal/content"
)

// ContentRepository stores content records as one JSONB row per entry.
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a ContentRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// Append inserts every record of lib in a single transaction, in kind order.
// Existing rows are never touched, so same-named entries accumulate.
//
// Postcondition: Either all records are inserted or none are.
func (r *ContentRepository) Append(ctx context.Context, lib *content.Library) error {
	batch := &pgx.Batch{}
	for _, k := range content.Kinds() {
		recs, err := lib.Records(k)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			batch.Queue(`
				INSERT INTO content_entries (kind, name, slug, data)
				VALUES ($1, $2, $3, $4)`,
				string(k), rec.Name, content.Slug(rec.Name), []byte(rec.Data),
			)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting content: %w", err)
		}
		return nil
	})
}

// Load returns every stored record, grouped by kind, in insertion order.
//
// Postcondition: Returns a non-nil library or a non-nil error.
func (r *ContentRepository) Load(ctx context.Context) (*content.Library, error) {
	rows, err := r.db.Query(ctx, `SELECT kind, data FROM content_entries ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying content: %w", err)
	}
	defer rows.Close()

	byKind := make(map[content.Kind][]json.RawMessage)
	for rows.Next() {
		var kind string
		var data []byte
		if err := rows.Scan(&kind, &data); err != nil {
			return nil, fmt.Errorf("scanning content row: %w", err)
		}
		k := content.Kind(kind)
		byKind[k] = append(byKind[k], json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content rows: %w", err)
	}

	lib := content.NewLibrary()
	for _, k := range content.Kinds() {
		if len(byKind[k]) == 0 {
			continue
		}
		if err := lib.AppendRecords(k, byKind[k]); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// FindBySlug returns the records of kind k whose slug equals content.Slug(name),
// in insertion order, through the slug index.
//
// Postcondition: Returns a non-nil library, empty when nothing matches.
func (r *ContentRepository) FindBySlug(ctx context.Context, k content.Kind, name string) (*content.Library, error) {
	rows, err := r.db.Query(ctx, `
		SELECT data FROM content_entries
		WHERE kind = $1 AND slug = $2
		ORDER BY id ASC`,
		string(k), content.Slug(name),
	)
	if err != nil {
		return nil, fmt.Errorf("querying %s %q: %w", k, name, err)
	}
	defer rows.Close()

	var recs []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", k, err)
		}
		recs = append(recs, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", k, err)
	}

	lib := content.NewLibrary()
	if len(recs) == 0 {
		return lib, nil
	}
	if err := lib.AppendRecords(k, recs); err != nil {
		return nil, err
	}
	return lib, nil
}

// Delete removes every record of kind k named name.
//
// Postcondition: Returns the number of rows removed.
func (r *ContentRepository) Delete(ctx context.Context, k content.Kind, name string) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_entries WHERE kind = $1 AND name = $2`, string(k), name)
	if err != nil {
		return 0, fmt.Errorf("deleting %s %q: %w", k, name, err)
	}
	return int(tag.RowsAffected()), nil
}

// Clear removes every record of kind k.
func (r *ContentRepository) Clear(ctx context.Context, k content.Kind) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM content_entries WHERE kind = $1`, string(k)); err != nil {
		return fmt.Errorf("clearing %s: %w", k, err)
	}
	return nil
}

// Counts returns the number of stored records per kind; kinds with no
// records are absent.
func (r *ContentRepository) Counts(ctx context.Context) (map[content.Kind]int, error) {
	rows, err := r.db.Query(ctx, `SELECT kind, COUNT(*) FROM content_entries GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting content: %w", err)
	}
	defer rows.Close()

	counts := make(map[content.Kind]int)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning content count: %w", err)
		}
		counts[content.Kind(kind)] = int(n)
	}
	return counts, rows.Err()
}
