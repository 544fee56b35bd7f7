package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/assistant"
	"github.com/starford/jotter/internal/auth"
	"github.com/starford/jotter/internal/models"
	"github.com/starford/jotter/internal/noteservice"
)

// Handler holds API route handlers.
type Handler struct {
	notes     *noteservice.Service
	auth      *auth.Service
	assistant *assistant.Gateway
}

// NewHandler creates a new Handler.
func NewHandler(notes *noteservice.Service, authSvc *auth.Service, gw *assistant.Gateway) *Handler {
	return &Handler{notes: notes, auth: authSvc, assistant: gw}
}

func listQuery(r *http.Request) noteservice.Query {
	q := r.URL.Query()
	return noteservice.Query{
		Text:     q.Get("q"),
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
	}
}

type listFunc func(h *Handler, r *http.Request) ([]models.Note, error)

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, op string, list listFunc) {
	notes, err := list(h, r)
	if err != nil {
		slog.Error(op+" failed", slog.String("user_id", identity(r).UserID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// writeNote finishes an id-addressed mutation. A note that does not exist or
// belongs to someone else yields 200 with a null body, never 404.
func writeNote(w http.ResponseWriter, r *http.Request, op string, note *models.Note, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, note)
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusOK, nil)
	default:
		slog.Error(op+" failed",
			slog.String("user_id", identity(r).UserID),
			slog.String("note_id", chi.URLParam(r, "id")),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List active notes, newest first
//	@Tags			notes
//	@Produce		json
//	@Param			q			query		string	false	"Case-insensitive text filter"
//	@Param			category	query		string	false	"Filter by category"
//	@Param			tag		query		string	false	"Filter by tag"
//	@Success		200		{array}		models.Note
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "list notes", func(h *Handler, r *http.Request) ([]models.Note, error) {
		return h.notes.ListActive(r.Context(), identity(r).UserID, listQuery(r))
	})
}

// ListFavorites handles GET /api/notes/favorites.
//
//	@Summary		List favorite notes that are not trashed
//	@Tags			notes
//	@Produce		json
//	@Param			q			query		string	false	"Case-insensitive text filter"
//	@Param			category	query		string	false	"Filter by category"
//	@Param			tag		query		string	false	"Filter by tag"
//	@Success		200		{array}		models.Note
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/favorites [get]
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "list favorites", func(h *Handler, r *http.Request) ([]models.Note, error) {
		return h.notes.ListFavorites(r.Context(), identity(r).UserID, listQuery(r))
	})
}

// ListTrash handles GET /api/notes/trash.
//
//	@Summary		List trashed notes
//	@Tags			notes
//	@Produce		json
//	@Param			q			query		string	false	"Case-insensitive text filter"
//	@Param			category	query		string	false	"Filter by category"
//	@Param			tag		query		string	false	"Filter by tag"
//	@Success		200		{array}		models.Note
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/trash [get]
func (h *Handler) ListTrash(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "list trash", func(h *Handler, r *http.Request) ([]models.Note, error) {
		return h.notes.ListTrashed(r.Context(), identity(r).UserID, listQuery(r))
	})
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		noteRequest	true	"Note to create"
//	@Success		201		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.notes.Create(r.Context(), identity(r).UserID, req.input())
	if err != nil {
		slog.Error("create note failed", slog.String("user_id", identity(r).UserID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /api/notes/{id}.
//
//	@Summary		Replace the editable fields of a note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"Note id"
//	@Param			body	body		noteRequest	true	"New field values"
//	@Success		200		{object}	models.Note	"The note, or null when no note of yours has this id"
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.notes.Update(r.Context(), identity(r).UserID, chi.URLParam(r, "id"), req.input())
	writeNote(w, r, "update note", note, err)
}

// ToggleFavorite handles PATCH /api/notes/{id}/toggle-favorite.
//
//	@Summary		Flip the favorite flag
//	@Tags			notes
//	@Produce		json
//	@Param			id		path		string	true	"Note id"
//	@Success		200		{object}	models.Note	"The note, or null when no note of yours has this id"
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/toggle-favorite [patch]
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.ToggleFavorite(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	writeNote(w, r, "toggle favorite", note, err)
}

// TrashNote handles PATCH /api/notes/{id}/trash.
//
//	@Summary		Move a note to the trash
//	@Tags			notes
//	@Produce		json
//	@Param			id		path		string	true	"Note id"
//	@Success		200		{object}	models.Note	"The note, or null when no note of yours has this id"
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/trash [patch]
func (h *Handler) TrashNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Trash(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	writeNote(w, r, "trash note", note, err)
}

// RestoreNote handles PATCH /api/notes/{id}/restore.
//
//	@Summary		Take a note out of the trash
//	@Tags			notes
//	@Produce		json
//	@Param			id		path		string	true	"Note id"
//	@Success		200		{object}	models.Note	"The note, or null when no note of yours has this id"
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/restore [patch]
func (h *Handler) RestoreNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Restore(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	writeNote(w, r, "restore note", note, err)
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary		Delete a note permanently
//	@Tags			notes
//	@Produce		json
//	@Param			id		path		string	true	"Note id"
//	@Success		204
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.notes.DeletePermanently(r.Context(), identity(r).UserID, id); err != nil {
		slog.Error("delete note failed", slog.String("note_id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EmptyTrash handles DELETE /api/notes/trash/empty.
//
//	@Summary		Permanently delete every trashed note
//	@Tags			notes
//	@Produce		json
//	@Success		204
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/trash/empty [delete]
func (h *Handler) EmptyTrash(w http.ResponseWriter, r *http.Request) {
	n, err := h.notes.EmptyTrash(r.Context(), identity(r).UserID)
	if err != nil {
		slog.Error("empty trash failed", slog.String("user_id", identity(r).UserID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	slog.Debug("trash emptied", slog.String("user_id", identity(r).UserID), slog.Int64("removed", n))
	w.WriteHeader(http.StatusNoContent)
}
