package noteservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/models"
	"github.com/starford/jotter/internal/testutil"
)

func testService(t *testing.T) *Service {
	t.Helper()
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return NewService(testutil.TestDB(t), WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
}

func mustCreate(t *testing.T, s *Service, owner, title string) *models.Note {
	t.Helper()
	n, err := s.Create(context.Background(), owner, NoteInput{Title: title, Content: "<p>" + title + "</p>"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return n
}

func TestCreateDefaults(t *testing.T) {
	s := testService(t)
	n, err := s.Create(context.Background(), "u1", NoteInput{
		Title: "Groceries", Content: "<p>milk</p>", Category: "", Tags: []string{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n.ID == "" {
		t.Error("id should be generated")
	}
	if n.Category != "default" {
		t.Errorf("category = %q, want default", n.Category)
	}
	if n.Tags == nil || len(n.Tags) != 0 {
		t.Errorf("tags = %#v, want empty", n.Tags)
	}
	if n.IsFavorite || n.IsTrashed {
		t.Errorf("flags = fav:%v trash:%v", n.IsFavorite, n.IsTrashed)
	}

	got, err := s.Get(context.Background(), "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Groceries" || got.Content != "<p>milk</p>" || !got.CreatedAt.Equal(n.CreatedAt) {
		t.Errorf("persisted = %+v", got)
	}
}

func TestCreateDedupesTags(t *testing.T) {
	s := testService(t)
	n, err := s.Create(context.Background(), "u1", NoteInput{Tags: []string{"work", "", "home", "work"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Tags) != 2 || n.Tags[0] != "work" || n.Tags[1] != "home" {
		t.Errorf("tags = %v, want [work home]", n.Tags)
	}
}

func TestTrashSplitsLists(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	keep := mustCreate(t, s, "u1", "keep")
	drop := mustCreate(t, s, "u1", "drop")

	if _, err := s.Trash(ctx, "u1", drop.ID); err != nil {
		t.Fatal(err)
	}

	active, err := s.ListActive(ctx, "u1", Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].ID != keep.ID {
		t.Errorf("active = %v", active)
	}
	trashed, err := s.ListTrashed(ctx, "u1", Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(trashed) != 1 || trashed[0].ID != drop.ID {
		t.Errorf("trashed = %v", trashed)
	}
}

func TestToggleFavoriteIsInvolution(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	n := mustCreate(t, s, "u1", "n")

	got, err := s.ToggleFavorite(ctx, "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsFavorite {
		t.Fatal("first toggle should favorite")
	}
	read, _ := s.Get(ctx, "u1", n.ID)
	if !read.IsFavorite {
		t.Error("read-back should be favorite")
	}

	got, err = s.ToggleFavorite(ctx, "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.IsFavorite {
		t.Error("second toggle should unfavorite")
	}
}

func TestFavoritesExcludeTrash(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	a := mustCreate(t, s, "u1", "a")
	b := mustCreate(t, s, "u1", "b")
	for _, id := range []string{a.ID, b.ID} {
		if _, err := s.ToggleFavorite(ctx, "u1", id); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Trash(ctx, "u1", b.ID); err != nil {
		t.Fatal(err)
	}

	favs, err := s.ListFavorites(ctx, "u1", Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 1 || favs[0].ID != a.ID {
		t.Errorf("favorites = %v", favs)
	}
}

func TestToggleFavoriteWhileTrashed(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	n := mustCreate(t, s, "u1", "n")
	if _, err := s.Trash(ctx, "u1", n.ID); err != nil {
		t.Fatal(err)
	}

	got, err := s.ToggleFavorite(ctx, "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsFavorite || !got.IsTrashed {
		t.Fatalf("after toggle: favorite %v, trashed %v; want both true", got.IsFavorite, got.IsTrashed)
	}

	favs, err := s.ListFavorites(ctx, "u1", Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 0 {
		t.Errorf("favorites while trashed = %v", favs)
	}

	restored, err := s.Restore(ctx, "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !restored.IsFavorite || restored.IsTrashed {
		t.Errorf("restored = %+v", restored)
	}
	favs, err = s.ListFavorites(ctx, "u1", Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 1 || favs[0].ID != n.ID {
		t.Errorf("favorites after restore = %v", favs)
	}
}

func TestTrashRestorePreservesFields(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	n, err := s.Create(ctx, "u1", NoteInput{
		Title: "t", Content: "c", Category: "work", Tags: []string{"x", "y"}, IsFavorite: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	trashed, err := s.Trash(ctx, "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !trashed.IsTrashed || !trashed.IsFavorite {
		t.Errorf("trashed = %+v, favorite must survive", trashed)
	}

	restored, err := s.Restore(ctx, "u1", n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.IsTrashed {
		t.Error("restore should clear is_trashed")
	}
	if restored.Title != n.Title || restored.Content != n.Content || restored.Category != n.Category ||
		!restored.IsFavorite || !restored.CreatedAt.Equal(n.CreatedAt) ||
		len(restored.Tags) != 2 || restored.Tags[0] != "x" || restored.Tags[1] != "y" {
		t.Errorf("restored = %+v, original = %+v", restored, n)
	}
}

func TestIdempotentTransitions(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	n := mustCreate(t, s, "u1", "n")

	for i := 0; i < 2; i++ {
		got, err := s.Trash(ctx, "u1", n.ID)
		if err != nil || !got.IsTrashed {
			t.Fatalf("Trash #%d = %+v, %v", i, got, err)
		}
	}
	for i := 0; i < 2; i++ {
		got, err := s.Restore(ctx, "u1", n.ID)
		if err != nil || got.IsTrashed {
			t.Fatalf("Restore #%d = %+v, %v", i, got, err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := s.DeletePermanently(ctx, "u1", n.ID); err != nil {
			t.Fatalf("DeletePermanently #%d: %v", i, err)
		}
	}
	if _, err := s.Get(ctx, "u1", n.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get after delete = %v", err)
	}
}

func TestOwnerIsolation(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	n := mustCreate(t, s, "alice", "private")
	if _, err := s.ToggleFavorite(ctx, "alice", n.ID); err != nil {
		t.Fatal(err)
	}

	for name, list := range map[string]func(context.Context, string, Query) ([]models.Note, error){
		"active":    s.ListActive,
		"favorites": s.ListFavorites,
		"trash":     s.ListTrashed,
	} {
		got, err := list(ctx, "bob", Query{})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("bob %s list = %v", name, got)
		}
	}

	if _, err := s.Update(ctx, "bob", n.ID, NoteInput{Title: "pwned"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Update err = %v", err)
	}
	if _, err := s.ToggleFavorite(ctx, "bob", n.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("ToggleFavorite err = %v", err)
	}
	if _, err := s.Trash(ctx, "bob", n.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Trash err = %v", err)
	}
	if _, err := s.Restore(ctx, "bob", n.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Restore err = %v", err)
	}
	if err := s.DeletePermanently(ctx, "bob", n.ID); err != nil {
		t.Errorf("DeletePermanently err = %v", err)
	}
	if _, err := s.EmptyTrash(ctx, "bob"); err != nil {
		t.Errorf("EmptyTrash err = %v", err)
	}

	got, err := s.Get(ctx, "alice", n.ID)
	if err != nil {
		t.Fatalf("alice lost her note: %v", err)
	}
	if got.Title != "private" || !got.IsFavorite || got.IsTrashed {
		t.Errorf("note mutated by bob: %+v", got)
	}
}

func TestEmptyTrashScope(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	active := mustCreate(t, s, "u1", "active")
	t1 := mustCreate(t, s, "u1", "t1")
	t2 := mustCreate(t, s, "u1", "t2")
	foreign := mustCreate(t, s, "u2", "foreign")
	for _, tc := range []struct{ owner, id string }{{"u1", t1.ID}, {"u1", t2.ID}, {"u2", foreign.ID}} {
		if _, err := s.Trash(ctx, tc.owner, tc.id); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.EmptyTrash(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}
	trash, _ := s.ListTrashed(ctx, "u1", Query{})
	if len(trash) != 0 {
		t.Errorf("u1 trash = %v", trash)
	}
	if _, err := s.Get(ctx, "u1", active.ID); err != nil {
		t.Errorf("active note removed: %v", err)
	}
	other, _ := s.ListTrashed(ctx, "u2", Query{})
	if len(other) != 1 || other[0].ID != foreign.ID {
		t.Errorf("u2 trash = %v", other)
	}
}

func TestUpdateOverwritesInPlace(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	n := mustCreate(t, s, "u1", "v1")
	if _, err := s.Trash(ctx, "u1", n.ID); err != nil {
		t.Fatal(err)
	}

	got, err := s.Update(ctx, "u1", n.ID, NoteInput{Title: "v2", Content: "body", Tags: []string{"a"}, IsFavorite: true})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "v2" || got.Content != "body" || got.Category != "default" || !got.IsFavorite {
		t.Errorf("updated = %+v", got)
	}
	if !got.IsTrashed {
		t.Error("update must not change lifecycle state")
	}
	if !got.CreatedAt.Equal(n.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", n.CreatedAt, got.CreatedAt)
	}
	if got.ID != n.ID {
		t.Error("update must edit in place")
	}
}

func TestMalformedIDsAreNoMatch(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	for _, id := range []string{"", "not-an-id", "507f1f77bcf86cd799439011", "../../etc"} {
		if _, err := s.Get(ctx, "u1", id); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Get(%q) = %v", id, err)
		}
		if _, err := s.Update(ctx, "u1", id, NoteInput{}); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Update(%q) = %v", id, err)
		}
		if _, err := s.ToggleFavorite(ctx, "u1", id); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("ToggleFavorite(%q) = %v", id, err)
		}
		if _, err := s.Trash(ctx, "u1", id); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Trash(%q) = %v", id, err)
		}
		if _, err := s.Restore(ctx, "u1", id); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Restore(%q) = %v", id, err)
		}
		if err := s.DeletePermanently(ctx, "u1", id); err != nil {
			t.Errorf("DeletePermanently(%q) = %v", id, err)
		}
	}
}

func TestListQuery(t *testing.T) {
	s := testService(t)
	ctx := context.Background()
	milk, _ := s.Create(ctx, "u1", NoteInput{Title: "Groceries", Content: "<p>Milk &amp; eggs</p>", Category: "home", Tags: []string{"shop"}})
	work, _ := s.Create(ctx, "u1", NoteInput{Title: "Standup", Content: "<p>ship it</p>", Category: "work", Tags: []string{"team"}})

	cases := []struct {
		name string
		q    Query
		want []string
	}{
		{"all", Query{}, []string{work.ID, milk.ID}},
		{"content text", Query{Text: "MILK & E"}, []string{milk.ID}},
		{"title text", Query{Text: "stand"}, []string{work.ID}},
		{"tag text", Query{Text: "team"}, []string{work.ID}},
		{"markup is not text", Query{Text: "<p>"}, nil},
		{"category", Query{Category: "home"}, []string{milk.ID}},
		{"tag", Query{Tag: "shop"}, []string{milk.ID}},
		{"combined miss", Query{Category: "home", Text: "ship"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListActive(ctx, "u1", tc.q)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d notes, want %d", len(got), len(tc.want))
			}
			for i := range tc.want {
				if got[i].ID != tc.want[i] {
					t.Errorf("got[%d] = %s, want %s", i, got[i].ID, tc.want[i])
				}
			}
		})
	}
}
