// Package mongostore implements storage.Store on MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starford/jotter/internal/storage"
)

const (
	notesCollection = "notes"
	usersCollection = "users"
)

// Config holds connection settings.
type Config struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	// Timeout bounds connect, ping and index creation at startup.
	Timeout time.Duration `yaml:"timeout"`
}

// DB holds the client and the two collections.
type DB struct {
	client *mongo.Client
	notes  *mongo.Collection
	users  *mongo.Collection
}

var _ storage.Store = (*DB)(nil)

// Open connects, pings and ensures indexes.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}

	database := client.Database(cfg.Database)
	db := &DB{
		client: client,
		notes:  database.Collection(notesCollection),
		users:  database.Collection(usersCollection),
	}
	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return db, nil
}

func (db *DB) ensureIndexes(ctx context.Context) error {
	if _, err := db.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("mongostore: users index: %w", err)
	}
	if _, err := db.notes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "is_trashed", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return fmt.Errorf("mongostore: notes index: %w", err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (db *DB) Close() error {
	return db.client.Disconnect(context.Background())
}

// Drop removes both collections. Used by tests.
func (db *DB) Drop(ctx context.Context) error {
	if err := db.notes.Drop(ctx); err != nil {
		return err
	}
	return db.users.Drop(ctx)
}
