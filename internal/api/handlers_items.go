package api

import (
	"net/http"
	"time"

	"github.com/scoinhq/scoin-backend/internal/repos/items"
)

type itemView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListItems handles GET /api/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	list, err := h.items.List(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	out := make([]itemView, 0, len(list))
	for _, it := range list {
		out = append(out, itemView{
			ID:          it.ID,
			Name:        it.Name,
			Price:       it.Price,
			Description: it.Description,
			ImageURL:    it.ImageURL,
			CreatedAt:   it.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

type createItemRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CreateItem handles POST /api/items (admin).
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "name and positive price required")
		return
	}

	id, err := h.items.Create(r.Context(), &items.Item{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "item added"})
}

// DeleteItem handles DELETE /api/items/{id} (admin).
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	err = h.items.Delete(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
