package api

import (
	"errors"
	"net/http"

	"github.com/scoinhq/scoin-backend/internal/repos/users"
	"github.com/scoinhq/scoin-backend/internal/services/auth"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Login == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "login and password required")
		return
	}

	token, u, err := h.auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid login or password")
			return
		}

		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  viewOf(u),
	})
}

type registerRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
	Role     string `json:"role"`
}

// Register handles POST /api/register (admin).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Login == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "login, password and name required")
		return
	}

	if req.Role == "" {
		req.Role = "member"
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	u := &users.User{
		Login:        req.Login,
		PasswordHash: hash,
		Name:         req.Name,
		IsAdmin:      req.IsAdmin,
		Role:         req.Role,
	}

	id, err := h.users.Create(r.Context(), u)
	if err != nil {
		if errors.Is(err, users.ErrLoginTaken) {
			writeError(w, http.StatusConflict, "login already taken")
			return
		}

		writeEngineError(w, err)
		return
	}

	u.ID = id

	writeJSON(w, http.StatusCreated, map[string]any{"user": viewOf(u)})
}
