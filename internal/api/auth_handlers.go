package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/jotter/internal/apperr"
)

// Register handles POST /api/auth/register.
//
//	@Summary		Register a user and return a token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		credentialsRequest	true	"Credentials"
//	@Success		201		{object}	tokenResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	token, err := h.auth.Register(r.Context(), string(req.Username), string(req.Password))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorBody("username and password are required"))
		case errors.Is(err, apperr.ErrAlreadyExists):
			writeJSON(w, http.StatusConflict, errorBody("user already exists, please log in"))
		default:
			slog.Error("register failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("server error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// Login handles POST /api/auth/login.
//
//	@Summary		Log in and return a token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		credentialsRequest	true	"Credentials"
//	@Success		200		{object}	tokenResponse
//	@Failure		400		{object}	errResponse
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	token, err := h.auth.Login(r.Context(), string(req.Username), string(req.Password))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorBody("username and password are required"))
		case errors.Is(err, apperr.ErrInvalidCredentials):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid credentials"))
		default:
			slog.Error("login failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("server error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Me handles GET /api/user/me.
//
//	@Summary		Current user
//	@Tags			auth
//	@Produce		json
//	@Success		200		{object}	meResponse
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/user/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, meResponse{Username: identity(r).Username})
}
