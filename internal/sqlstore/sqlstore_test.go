package sqlstore

import (
	"os"
	"testing"

	"github.com/starford/jotter/internal/storage"
	"github.com/starford/jotter/internal/storage/storagetest"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "jotter-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return testDB(t) })
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM notes`).Scan(&count); err != nil {
		t.Fatalf("notes table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("users table missing: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	f, err := os.CreateTemp("", "jotter-reopen-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.conn.Exec(`INSERT INTO users (id, username, password_hash) VALUES ('1', 'carol', 'h')`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(f.Name())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	var name string
	if err := db.conn.QueryRow(`SELECT username FROM users WHERE id = '1'`).Scan(&name); err != nil || name != "carol" {
		t.Errorf("username = %q, err = %v", name, err)
	}
}
