package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/models"
	"github.com/starford/jotter/internal/storage"
)

func owned(ownerID, id string) bson.M {
	return bson.M{"_id": id, "owner_id": ownerID}
}

// InsertNote stores a new note.
func (db *DB) InsertNote(ctx context.Context, n *models.Note) error {
	doc := *n
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if _, err := db.notes.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongostore: insert note: %w", err)
	}
	return nil
}

// GetNote returns the note matching (ownerID, id).
func (db *DB) GetNote(ctx context.Context, ownerID, id string) (*models.Note, error) {
	var n models.Note
	err := db.notes.FindOne(ctx, owned(ownerID, id)).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: get note: %w", err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

// ListNotes returns the owner's notes selected by f.
func (db *DB) ListNotes(ctx context.Context, ownerID string, f storage.Filter) ([]models.Note, error) {
	filter := bson.M{"owner_id": ownerID, "is_trashed": f.Trashed}
	if f.FavoritesOnly {
		filter["is_favorite"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := db.notes.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongostore: list notes: %w", err)
	}
	out := []models.Note{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongostore: decode notes: %w", err)
	}
	for i := range out {
		if out[i].Tags == nil {
			out[i].Tags = []string{}
		}
	}
	return out, nil
}

// ReplaceFields overwrites title, content, category, tags and is_favorite.
func (db *DB) ReplaceFields(ctx context.Context, ownerID, id string, fields models.NoteFields) (bool, error) {
	tags := fields.Tags
	if tags == nil {
		tags = []string{}
	}
	res, err := db.notes.UpdateOne(ctx, owned(ownerID, id), bson.M{"$set": bson.M{
		"title":       fields.Title,
		"content":     fields.Content,
		"category":    fields.Category,
		"tags":        tags,
		"is_favorite": fields.IsFavorite,
	}})
	if err != nil {
		return false, fmt.Errorf("mongostore: update note: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// SetFlag writes a single lifecycle flag.
func (db *DB) SetFlag(ctx context.Context, ownerID, id string, flag storage.Flag, value bool) (bool, error) {
	if flag != storage.FlagFavorite && flag != storage.FlagTrashed {
		return false, fmt.Errorf("mongostore: unknown flag %q", flag)
	}
	res, err := db.notes.UpdateOne(ctx, owned(ownerID, id), bson.M{"$set": bson.M{string(flag): value}})
	if err != nil {
		return false, fmt.Errorf("mongostore: set %s: %w", flag, err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteNote removes the note matching (ownerID, id), if any.
func (db *DB) DeleteNote(ctx context.Context, ownerID, id string) error {
	if _, err := db.notes.DeleteOne(ctx, owned(ownerID, id)); err != nil {
		return fmt.Errorf("mongostore: delete note: %w", err)
	}
	return nil
}

// DeleteTrashed purges the owner's trash with a single DeleteMany.
func (db *DB) DeleteTrashed(ctx context.Context, ownerID string) (int64, error) {
	res, err := db.notes.DeleteMany(ctx, bson.M{"owner_id": ownerID, "is_trashed": true})
	if err != nil {
		return 0, fmt.Errorf("mongostore: empty trash: %w", err)
	}
	return res.DeletedCount, nil
}
