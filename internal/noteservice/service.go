// Package noteservice owns the note lifecycle: creation, edits, favorites,
// trash, restore and purge, always scoped to the requesting owner.
package noteservice

import (
	"context"
	"strings"
	"time"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/markup"
	"github.com/starford/jotter/internal/models"
	"github.com/starford/jotter/internal/storage"
)

// NoteInput carries the editable fields of a create or update request.
// Zero values are defaulted by the service.
type NoteInput struct {
	Title      string
	Content    string
	Category   string
	Tags       []string
	IsFavorite bool
}

// Query is an optional linear filter applied to list results.
type Query struct {
	// Text is matched case-insensitively against title, plain-text content and tags.
	Text     string
	Category string
	Tag      string
}

func (q Query) empty() bool {
	return q.Text == "" && q.Category == "" && q.Tag == ""
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service is the sole authority for note state transitions.
type Service struct {
	store storage.NoteStore
	now   func() time.Time
}

// NewService creates a new note service over store.
func NewService(store storage.NoteStore, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new active note owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, in NoteInput) (*models.Note, error) {
	fields := normalize(in)
	n := &models.Note{
		ID:         storage.NewID(),
		OwnerID:    ownerID,
		Title:      fields.Title,
		Content:    fields.Content,
		Category:   fields.Category,
		Tags:       fields.Tags,
		IsFavorite: fields.IsFavorite,
		IsTrashed:  false,
		CreatedAt:  s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.store.InsertNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Get returns one of the owner's notes, or apperr.ErrNotFound.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*models.Note, error) {
	if !storage.ValidID(id) {
		return nil, apperr.ErrNotFound
	}
	return s.store.GetNote(ctx, ownerID, id)
}

// ListActive returns the owner's notes that are not in the trash.
func (s *Service) ListActive(ctx context.Context, ownerID string, q Query) ([]models.Note, error) {
	return s.list(ctx, ownerID, storage.Filter{}, q)
}

// ListFavorites returns the owner's favorite notes that are not in the trash.
func (s *Service) ListFavorites(ctx context.Context, ownerID string, q Query) ([]models.Note, error) {
	return s.list(ctx, ownerID, storage.Filter{FavoritesOnly: true}, q)
}

// ListTrashed returns the owner's trashed notes.
func (s *Service) ListTrashed(ctx context.Context, ownerID string, q Query) ([]models.Note, error) {
	return s.list(ctx, ownerID, storage.Filter{Trashed: true}, q)
}

// Update overwrites the editable fields of a note. Lifecycle state and
// created_at are left untouched.
func (s *Service) Update(ctx context.Context, ownerID, id string, in NoteInput) (*models.Note, error) {
	if !storage.ValidID(id) {
		return nil, apperr.ErrNotFound
	}
	ok, err := s.store.ReplaceFields(ctx, ownerID, id, normalize(in))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return s.store.GetNote(ctx, ownerID, id)
}

// ToggleFavorite writes the complement of the stored favorite flag.
// Two concurrent toggles may race; the last write wins.
func (s *Service) ToggleFavorite(ctx context.Context, ownerID, id string) (*models.Note, error) {
	n, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.setFlag(ctx, ownerID, id, storage.FlagFavorite, !n.IsFavorite)
}

// Trash moves a note to the trash. Trashing a trashed note succeeds.
func (s *Service) Trash(ctx context.Context, ownerID, id string) (*models.Note, error) {
	if !storage.ValidID(id) {
		return nil, apperr.ErrNotFound
	}
	return s.setFlag(ctx, ownerID, id, storage.FlagTrashed, true)
}

// Restore takes a note out of the trash. Restoring an active note succeeds.
func (s *Service) Restore(ctx context.Context, ownerID, id string) (*models.Note, error) {
	if !storage.ValidID(id) {
		return nil, apperr.ErrNotFound
	}
	return s.setFlag(ctx, ownerID, id, storage.FlagTrashed, false)
}

// DeletePermanently removes a note. Unknown, foreign or malformed ids are a no-op.
func (s *Service) DeletePermanently(ctx context.Context, ownerID, id string) error {
	if !storage.ValidID(id) {
		return nil
	}
	return s.store.DeleteNote(ctx, ownerID, id)
}

// EmptyTrash removes every trashed note of the owner and reports how many.
func (s *Service) EmptyTrash(ctx context.Context, ownerID string) (int64, error) {
	return s.store.DeleteTrashed(ctx, ownerID)
}

func (s *Service) setFlag(ctx context.Context, ownerID, id string, flag storage.Flag, value bool) (*models.Note, error) {
	ok, err := s.store.SetFlag(ctx, ownerID, id, flag, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}
	// A concurrent delete between the write and this read surfaces as ErrNotFound.
	return s.store.GetNote(ctx, ownerID, id)
}

func (s *Service) list(ctx context.Context, ownerID string, f storage.Filter, q Query) ([]models.Note, error) {
	notes, err := s.store.ListNotes(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	if !q.empty() {
		notes = filter(notes, q)
	}
	return notes, nil
}

func filter(notes []models.Note, q Query) []models.Note {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if q.Category != "" && n.Category != q.Category {
			continue
		}
		if q.Tag != "" && !contains(n.Tags, q.Tag) {
			continue
		}
		if text != "" {
			haystack := strings.ToLower(n.Title + " " + markup.PlainText(n.Content) + " " + strings.Join(n.Tags, " "))
			if !strings.Contains(haystack, text) {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// normalize applies the defaulting rules shared by Create and Update.
func normalize(in NoteInput) models.NoteFields {
	category := in.Category
	if category == "" {
		category = models.DefaultCategory
	}
	return models.NoteFields{
		Title:      in.Title,
		Content:    in.Content,
		Category:   category,
		Tags:       dedupe(in.Tags),
		IsFavorite: in.IsFavorite,
	}
}

// dedupe drops empty and repeated tags, keeping first-seen order.
func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
