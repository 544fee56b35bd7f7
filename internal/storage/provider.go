// Package storage defines the persistence contracts for notes and credentials.
//
// Every NoteStore method takes the owner id and must filter on it; a record
// outside the owner's scope is never returned, counted or mutated.
package storage

import (
	"context"

	"github.com/starford/jotter/internal/models"
)

// Flag names a boolean lifecycle column.
type Flag string

const (
	FlagFavorite Flag = "is_favorite"
	FlagTrashed  Flag = "is_trashed"
)

// Filter selects a subset of an owner's notes.
type Filter struct {
	Trashed       bool
	FavoritesOnly bool
}

// NoteStore persists notes.
type NoteStore interface {
	// InsertNote stores a new note. n.ID must already be set.
	InsertNote(ctx context.Context, n *models.Note) error
	// GetNote returns apperr.ErrNotFound when (id, ownerID) matches nothing.
	GetNote(ctx context.Context, ownerID, id string) (*models.Note, error)
	// ListNotes returns notes ordered by created_at descending, then id.
	ListNotes(ctx context.Context, ownerID string, f Filter) ([]models.Note, error)
	// ReplaceFields overwrites the editable fields. It reports whether a note matched.
	ReplaceFields(ctx context.Context, ownerID, id string, fields models.NoteFields) (bool, error)
	// SetFlag writes one lifecycle flag. It reports whether a note matched.
	SetFlag(ctx context.Context, ownerID, id string, flag Flag, value bool) (bool, error)
	// DeleteNote removes at most one note. Deleting nothing is not an error.
	DeleteNote(ctx context.Context, ownerID, id string) error
	// DeleteTrashed removes every trashed note of the owner in one statement.
	DeleteTrashed(ctx context.Context, ownerID string) (int64, error)
}

// UserStore persists credentials.
type UserStore interface {
	// CreateUser returns apperr.ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u *models.User) error
	// UserByUsername returns apperr.ErrNotFound for unknown usernames.
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Store is a backend implementing both contracts.
type Store interface {
	NoteStore
	UserStore
	Ping(ctx context.Context) error
	Close() error
}
