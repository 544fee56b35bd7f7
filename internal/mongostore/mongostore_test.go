package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/starford/jotter/internal/storage"
	"github.com/starford/jotter/internal/storage/storagetest"
)

// Set JOTTER_TEST_MONGO_URI (e.g. mongodb://localhost:27017) to run against a live server.
func TestContract(t *testing.T) {
	uri := os.Getenv("JOTTER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("JOTTER_TEST_MONGO_URI not set")
	}
	n := 0
	storagetest.Run(t, func(t *testing.T) storage.Store {
		n++
		db, err := Open(context.Background(), Config{
			URI:      uri,
			Database: fmt.Sprintf("jotter_test_%d_%d", time.Now().UnixNano(), n),
			Timeout:  5 * time.Second,
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() {
			_ = db.Drop(context.Background())
			db.Close()
		})
		return db
	})
}
