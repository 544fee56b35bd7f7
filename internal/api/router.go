package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/jotter/internal/assistant"
	"github.com/starford/jotter/internal/auth"
	"github.com/starford/jotter/internal/noteservice"
)

// NewRouter creates a chi router with all API routes. It is meant to be
// mounted under /api. Everything except /auth requires a bearer token.
func NewRouter(notes *noteservice.Service, authSvc *auth.Service, gw *assistant.Gateway) chi.Router {
	h := NewHandler(notes, authSvc, gw)

	r := chi.NewRouter()

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authSvc))

		r.Get("/user/me", h.Me)

		// Notes. The literal trash routes are registered before {id}.
		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.CreateNote)
		r.Get("/notes/favorites", h.ListFavorites)
		r.Get("/notes/trash", h.ListTrash)
		r.Delete("/notes/trash/empty", h.EmptyTrash)
		r.Put("/notes/{id}", h.UpdateNote)
		r.Patch("/notes/{id}/toggle-favorite", h.ToggleFavorite)
		r.Patch("/notes/{id}/trash", h.TrashNote)
		r.Patch("/notes/{id}/restore", h.RestoreNote)
		r.Delete("/notes/{id}", h.DeleteNote)

		// Assistant.
		r.Post("/ai/summarize", h.Summarize)
		r.Post("/ai/action-items", h.ActionItems)
	})

	return r
}
