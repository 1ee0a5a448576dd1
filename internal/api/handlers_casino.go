package api

import (
	"net/http"

	"github.com/scoinhq/scoin-backend/internal/repos/symbols"
)

type spinRequest struct {
	BetAmount int64 `json:"betAmount"`
}

// Spin handles POST /api/casino/spin.
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req spinRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.engine.Spin(r.Context(), claims.UserID, req.BetAmount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"icons":      result.Icons,
		"multiplier": result.Multiplier,
		"win":        result.Win,
	})
}

type symbolView struct {
	ID         int64   `json:"id,omitempty"`
	Icon       string  `json:"icon"`
	Multiplier float64 `json:"multiplier"`
	Weight     int64   `json:"weight"`
}

// ListSymbols handles GET /api/casino/symbols.
func (h *Handler) ListSymbols(w http.ResponseWriter, r *http.Request) {
	list, err := h.symbols.List(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	out := make([]symbolView, 0, len(list))
	for _, s := range list {
		out = append(out, symbolView{ID: s.ID, Icon: s.Icon, Multiplier: s.Multiplier, Weight: s.Weight})
	}

	writeJSON(w, http.StatusOK, out)
}

// SaveSymbols handles PATCH /api/casino/symbols (admin). Rows with an id
// update in place, the rest insert; the whole batch applies atomically.
func (h *Handler) SaveSymbols(w http.ResponseWriter, r *http.Request) {
	var req []symbolView
	if !decodeBody(w, r, &req) {
		return
	}

	batch := make([]symbols.Symbol, 0, len(req))
	for _, s := range req {
		if s.Icon == "" || s.Weight <= 0 || s.Multiplier < 0 {
			writeError(w, http.StatusBadRequest, "each symbol needs an icon, a positive weight and a non-negative multiplier")
			return
		}

		batch = append(batch, symbols.Symbol{ID: s.ID, Icon: s.Icon, Multiplier: s.Multiplier, Weight: s.Weight})
	}

	err := h.symbols.Save(r.Context(), batch)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "symbols updated"})
}
