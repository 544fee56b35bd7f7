package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/jotter/internal/apperr"
)

type askFunc func(ctx context.Context, content string) (string, error)

func (h *Handler) ask(w http.ResponseWriter, r *http.Request, op, failMsg string, fn askFunc, wrap func(string) any) {
	var req contentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	out, err := fn(r.Context(), string(req.Content))
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorBody("no content provided"))
			return
		}
		slog.Error(op+" failed", slog.String("user_id", identity(r).UserID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(failMsg))
		return
	}
	writeJSON(w, http.StatusOK, wrap(out))
}

// Summarize handles POST /api/ai/summarize.
//
//	@Summary		Summarize text in a few bullet points
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			body	body		contentRequest	true	"Text"
//	@Success		200		{object}	summaryResponse
//	@Failure		400		{object}	errResponse
//	@Failure		500		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/ai/summarize [post]
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, "ai summarize", "failed to generate summary", h.assistant.Summarize,
		func(s string) any { return summaryResponse{Summary: s} })
}

// ActionItems handles POST /api/ai/action-items.
//
//	@Summary		Extract action items from text
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			body	body		contentRequest	true	"Text"
//	@Success		200		{object}	actionItemsResponse
//	@Failure		400		{object}	errResponse
//	@Failure		500		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/ai/action-items [post]
func (h *Handler) ActionItems(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, "ai action items", "failed to find action items", h.assistant.ExtractActionItems,
		func(s string) any { return actionItemsResponse{ActionItems: s} })
}
