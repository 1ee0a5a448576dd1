package api

import (
	"errors"
	"net/http"

	"github.com/scoinhq/scoin-backend/internal/services/auth"
)

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	out := make([]userView, 0, len(list))
	for i := range list {
		out = append(out, viewOf(&list[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// DeleteUser handles DELETE /api/users/{id} (admin).
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	err = h.users.Delete(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfile handles PATCH /api/users/{id}. Users may edit themselves;
// admins may edit anyone.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	claims, _ := claimsFrom(r.Context())
	if claims.UserID != id && !claims.IsAdmin {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), id, req.Name, req.AvatarURL)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": viewOf(u)})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles PATCH /api/users/{id}/password. Only the account
// owner may change their password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	claims, _ := claimsFrom(r.Context())
	if claims.UserID != id {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "new password required")
		return
	}

	err = h.auth.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "current password is wrong")
			return
		}

		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

type creditRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// Credit handles POST /api/users/{id}/coins (admin).
func (h *Handler) Credit(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req creditRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err = h.engine.Credit(r.Context(), id, req.Amount, req.Reason)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "coins credited"})
}
