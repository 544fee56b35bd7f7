package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/models"
	"github.com/starford/jotter/internal/storage"
)

const noteColumns = `id, owner_id, title, content, category, tags, is_favorite, is_trashed, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*models.Note, error) {
	var (
		n    models.Note
		tags string
	)
	if err := s.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.Category, &tags,
		&n.IsFavorite, &n.IsTrashed, &n.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return nil, fmt.Errorf("sqlstore: decode tags of %s: %w", n.ID, err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

// InsertNote stores a new note.
func (db *DB) InsertNote(ctx context.Context, n *models.Note) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.OwnerID, n.Title, n.Content, n.Category, encodeTags(n.Tags),
		n.IsFavorite, n.IsTrashed, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlstore: insert note: %w", err)
	}
	return nil
}

// GetNote returns the note matching (ownerID, id).
func (db *DB) GetNote(ctx context.Context, ownerID, id string) (*models.Note, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+noteColumns+` FROM notes WHERE id = ? AND owner_id = ?
	`, id, ownerID)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get note: %w", err)
	}
	return n, nil
}

// ListNotes returns the owner's notes selected by f.
func (db *DB) ListNotes(ctx context.Context, ownerID string, f storage.Filter) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE owner_id = ? AND is_trashed = ?`
	args := []any{ownerID, f.Trashed}
	if f.FavoritesOnly {
		query += ` AND is_favorite = 1`
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list notes: %w", err)
	}
	defer rows.Close()

	out := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: scan note: %w", err)
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// ReplaceFields overwrites title, content, category, tags and is_favorite.
func (db *DB) ReplaceFields(ctx context.Context, ownerID, id string, fields models.NoteFields) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE notes
		SET title = ?, content = ?, category = ?, tags = ?, is_favorite = ?
		WHERE id = ? AND owner_id = ?
	`, fields.Title, fields.Content, fields.Category, encodeTags(fields.Tags), fields.IsFavorite, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("sqlstore: update note: %w", err)
	}
	return matched(res)
}

// SetFlag writes a single lifecycle flag.
func (db *DB) SetFlag(ctx context.Context, ownerID, id string, flag storage.Flag, value bool) (bool, error) {
	var query string
	switch flag {
	case storage.FlagFavorite:
		query = `UPDATE notes SET is_favorite = ? WHERE id = ? AND owner_id = ?`
	case storage.FlagTrashed:
		query = `UPDATE notes SET is_trashed = ? WHERE id = ? AND owner_id = ?`
	default:
		return false, fmt.Errorf("sqlstore: unknown flag %q", flag)
	}
	res, err := db.conn.ExecContext(ctx, query, value, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("sqlstore: set %s: %w", flag, err)
	}
	return matched(res)
}

// DeleteNote removes the note matching (ownerID, id), if any.
func (db *DB) DeleteNote(ctx context.Context, ownerID, id string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND owner_id = ?`, id, ownerID); err != nil {
		return fmt.Errorf("sqlstore: delete note: %w", err)
	}
	return nil
}

// DeleteTrashed purges the owner's trash.
func (db *DB) DeleteTrashed(ctx context.Context, ownerID string) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM notes WHERE owner_id = ? AND is_trashed = 1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: empty trash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlstore: rows affected: %w", err)
	}
	return n, nil
}

// matched reports whether an UPDATE touched a row. SQLite counts rows whose
// values did not change, so re-applying a flag still reports a match.
func matched(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlstore: rows affected: %w", err)
	}
	return n > 0, nil
}
