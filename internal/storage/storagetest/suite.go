// Package storagetest holds the contract tests every storage.Store backend must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/models"
	"github.com/starford/jotter/internal/storage"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) storage.Store

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"InsertAndGet", testInsertAndGet},
		{"GetScopedByOwner", testGetScopedByOwner},
		{"ListFilters", testListFilters},
		{"ListOrder", testListOrder},
		{"ReplaceFields", testReplaceFields},
		{"SetFlagIdempotent", testSetFlagIdempotent},
		{"FavoriteWhileTrashed", testFavoriteWhileTrashed},
		{"DeleteNote", testDeleteNote},
		{"DeleteTrashed", testDeleteTrashed},
		{"Users", testUsers},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStore(t))
		})
	}
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func note(owner, title string, offset time.Duration) *models.Note {
	return &models.Note{
		ID:        storage.NewID(),
		OwnerID:   owner,
		Title:     title,
		Content:   "<p>" + title + "</p>",
		Category:  models.DefaultCategory,
		Tags:      []string{"b", "a"},
		CreatedAt: base.Add(offset),
	}
}

func mustInsert(t *testing.T, s storage.Store, n *models.Note) {
	t.Helper()
	if err := s.InsertNote(context.Background(), n); err != nil {
		t.Fatalf("InsertNote: %v", err)
	}
}

func ids(notes []models.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func sameIDs(got []models.Note, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].ID != want[i] {
			return false
		}
	}
	return true
}

func testInsertAndGet(t *testing.T, s storage.Store) {
	ctx := context.Background()
	n := note("u1", "Groceries", 0)
	n.IsFavorite = true
	mustInsert(t, s, n)

	got, err := s.GetNote(ctx, "u1", n.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Groceries" || got.Content != "<p>Groceries</p>" || got.Category != "default" {
		t.Errorf("fields = %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "b" || got.Tags[1] != "a" {
		t.Errorf("tags = %v, want [b a]", got.Tags)
	}
	if !got.IsFavorite || got.IsTrashed {
		t.Errorf("flags = fav:%v trash:%v", got.IsFavorite, got.IsTrashed)
	}
	if !got.CreatedAt.Equal(n.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, n.CreatedAt)
	}
	if got.OwnerID != "u1" {
		t.Errorf("owner = %q", got.OwnerID)
	}
}

func testGetScopedByOwner(t *testing.T, s storage.Store) {
	ctx := context.Background()
	n := note("u1", "secret", 0)
	mustInsert(t, s, n)

	if _, err := s.GetNote(ctx, "u2", n.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign get err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetNote(ctx, "u1", storage.NewID()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing get err = %v, want ErrNotFound", err)
	}
	if ok, err := s.SetFlag(ctx, "u2", n.ID, storage.FlagTrashed, true); err != nil || ok {
		t.Errorf("foreign SetFlag = %v, %v; want false, nil", ok, err)
	}
	if ok, err := s.ReplaceFields(ctx, "u2", n.ID, models.NoteFields{Title: "pwned"}); err != nil || ok {
		t.Errorf("foreign ReplaceFields = %v, %v; want false, nil", ok, err)
	}
	if err := s.DeleteNote(ctx, "u2", n.ID); err != nil {
		t.Fatalf("foreign DeleteNote: %v", err)
	}
	got, err := s.GetNote(ctx, "u1", n.ID)
	if err != nil {
		t.Fatalf("owner get after foreign ops: %v", err)
	}
	if got.Title != "secret" || got.IsTrashed {
		t.Errorf("note changed by non-owner: %+v", got)
	}
}

func testListFilters(t *testing.T, s storage.Store) {
	ctx := context.Background()
	active := note("u1", "active", 0)
	fav := note("u1", "fav", time.Minute)
	fav.IsFavorite = true
	trashedFav := note("u1", "trashed-fav", 2*time.Minute)
	trashedFav.IsFavorite = true
	trashedFav.IsTrashed = true
	other := note("u2", "other", 3*time.Minute)
	for _, n := range []*models.Note{active, fav, trashedFav, other} {
		mustInsert(t, s, n)
	}

	got, err := s.ListNotes(ctx, "u1", storage.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if !sameIDs(got, fav.ID, active.ID) {
		t.Errorf("active = %v", ids(got))
	}

	got, err = s.ListNotes(ctx, "u1", storage.Filter{FavoritesOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if !sameIDs(got, fav.ID) {
		t.Errorf("favorites = %v", ids(got))
	}

	got, err = s.ListNotes(ctx, "u1", storage.Filter{Trashed: true})
	if err != nil {
		t.Fatal(err)
	}
	if !sameIDs(got, trashedFav.ID) {
		t.Errorf("trash = %v", ids(got))
	}

	got, err = s.ListNotes(ctx, "nobody", storage.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("empty owner list = %#v, want empty non-nil", got)
	}
}

func testListOrder(t *testing.T, s storage.Store) {
	ctx := context.Background()
	older := note("u1", "older", 0)
	newer := note("u1", "newer", time.Hour)
	mustInsert(t, s, older)
	mustInsert(t, s, newer)

	got, err := s.ListNotes(ctx, "u1", storage.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if !sameIDs(got, newer.ID, older.ID) {
		t.Errorf("order = %v, want newest first", ids(got))
	}
}

func testReplaceFields(t *testing.T, s storage.Store) {
	ctx := context.Background()
	n := note("u1", "draft", 0)
	n.IsTrashed = true
	mustInsert(t, s, n)

	ok, err := s.ReplaceFields(ctx, "u1", n.ID, models.NoteFields{
		Title: "final", Content: "body", Category: "work", Tags: []string{"x"}, IsFavorite: true,
	})
	if err != nil || !ok {
		t.Fatalf("ReplaceFields = %v, %v", ok, err)
	}
	got, err := s.GetNote(ctx, "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "final" || got.Content != "body" || got.Category != "work" || !got.IsFavorite {
		t.Errorf("after replace = %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "x" {
		t.Errorf("tags = %v", got.Tags)
	}
	if !got.IsTrashed {
		t.Error("replace must not touch is_trashed")
	}
	if !got.CreatedAt.Equal(n.CreatedAt) {
		t.Error("replace must not touch created_at")
	}
}

func testSetFlagIdempotent(t *testing.T, s storage.Store) {
	ctx := context.Background()
	n := note("u1", "n", 0)
	mustInsert(t, s, n)

	for i := 0; i < 2; i++ {
		ok, err := s.SetFlag(ctx, "u1", n.ID, storage.FlagTrashed, true)
		if err != nil || !ok {
			t.Fatalf("SetFlag #%d = %v, %v; want true, nil", i, ok, err)
		}
	}
	got, _ := s.GetNote(ctx, "u1", n.ID)
	if !got.IsTrashed {
		t.Error("note should be trashed")
	}
	if ok, err := s.SetFlag(ctx, "u1", n.ID, storage.Flag("bogus"), true); err == nil || ok {
		t.Errorf("unknown flag = %v, %v; want error", ok, err)
	}
}

func testFavoriteWhileTrashed(t *testing.T, s storage.Store) {
	ctx := context.Background()
	n := note("u1", "n", 0)
	n.IsTrashed = true
	mustInsert(t, s, n)

	ok, err := s.SetFlag(ctx, "u1", n.ID, storage.FlagFavorite, true)
	if err != nil || !ok {
		t.Fatalf("SetFlag(favorite) = %v, %v; want true, nil", ok, err)
	}
	got, err := s.GetNote(ctx, "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsFavorite || !got.IsTrashed {
		t.Errorf("flags = favorite %v, trashed %v; want both true", got.IsFavorite, got.IsTrashed)
	}

	favs, err := s.ListNotes(ctx, "u1", storage.Filter{FavoritesOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 0 {
		t.Errorf("favorites while trashed = %v", ids(favs))
	}
	trash, err := s.ListNotes(ctx, "u1", storage.Filter{Trashed: true})
	if err != nil {
		t.Fatal(err)
	}
	if !sameIDs(trash, n.ID) {
		t.Errorf("trash = %v", ids(trash))
	}
}

func testDeleteNote(t *testing.T, s storage.Store) {
	ctx := context.Background()
	n := note("u1", "n", 0)
	mustInsert(t, s, n)

	for i := 0; i < 2; i++ {
		if err := s.DeleteNote(ctx, "u1", n.ID); err != nil {
			t.Fatalf("DeleteNote #%d: %v", i, err)
		}
	}
	if _, err := s.GetNote(ctx, "u1", n.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get after delete err = %v", err)
	}
}

func testDeleteTrashed(t *testing.T, s storage.Store) {
	ctx := context.Background()
	keep := note("u1", "keep", 0)
	gone1 := note("u1", "gone1", time.Minute)
	gone1.IsTrashed = true
	gone2 := note("u1", "gone2", 2*time.Minute)
	gone2.IsTrashed = true
	foreign := note("u2", "foreign", 0)
	foreign.IsTrashed = true
	for _, n := range []*models.Note{keep, gone1, gone2, foreign} {
		mustInsert(t, s, n)
	}

	n, err := s.DeleteTrashed(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
	if _, err := s.GetNote(ctx, "u1", keep.ID); err != nil {
		t.Errorf("active note removed: %v", err)
	}
	if _, err := s.GetNote(ctx, "u2", foreign.ID); err != nil {
		t.Errorf("other user's trash removed: %v", err)
	}
}

func testUsers(t *testing.T, s storage.Store) {
	ctx := context.Background()
	u := &models.User{ID: storage.NewID(), Username: "alice", PasswordHash: "hash", CreatedAt: base}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	dup := &models.User{ID: storage.NewID(), Username: "alice", PasswordHash: "other", CreatedAt: base}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate err = %v, want ErrAlreadyExists", err)
	}
	got, err := s.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID || got.PasswordHash != "hash" {
		t.Errorf("user = %+v", got)
	}
	if _, err := s.UserByUsername(ctx, "bob"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing user err = %v", err)
	}
}
