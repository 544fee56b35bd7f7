// Package models defines the domain types for jotter.
package models

import "time"

// DefaultCategory is assigned to notes created or edited without a category.
const DefaultCategory = "default"

// Note is a user-owned rich-text record.
type Note struct {
	ID         string    `json:"id" bson:"_id"`
	OwnerID    string    `json:"-" bson:"owner_id"`
	Title      string    `json:"title" bson:"title"`
	Content    string    `json:"content" bson:"content"`
	Category   string    `json:"category" bson:"category"`
	Tags       []string  `json:"tags" bson:"tags"`
	IsFavorite bool      `json:"isFavorite" bson:"is_favorite"`
	IsTrashed  bool      `json:"isTrashed" bson:"is_trashed"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// NoteFields are the user-editable parts of a note.
type NoteFields struct {
	Title      string
	Content    string
	Category   string
	Tags       []string
	IsFavorite bool
}
