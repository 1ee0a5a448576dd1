package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type buyRequest struct {
	ItemID int64 `json:"item_id"`
}

// Buy handles POST /api/buy.
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req buyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "item_id required")
		return
	}

	receipt, err := h.engine.Purchase(r.Context(), claims.UserID, req.ItemID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	// Best-effort ops notification; the purchase is already committed and
	// does not depend on it. The context must survive a client that hangs
	// up right after the commit.
	ctx := context.WithoutCancel(r.Context())
	buyerName := h.buyerName(ctx, claims.UserID)
	h.notifier.PurchaseMade(ctx, buyerName, receipt.ItemName, receipt.Price)

	writeJSON(w, http.StatusOK, map[string]string{"message": "purchase successful"})
}

func (h *Handler) buyerName(ctx context.Context, userID int64) string {
	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("buyer lookup for notification failed")
		return "unknown"
	}

	return u.Name
}

type purchaseView struct {
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// MyPurchases handles GET /api/my-purchases.
func (h *Handler) MyPurchases(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	history, err := h.engine.PurchaseHistory(r.Context(), claims.UserID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	out := make([]purchaseView, 0, len(history))
	for _, e := range history {
		out = append(out, purchaseView{
			Name:      e.ItemName,
			Price:     e.Price,
			ImageURL:  e.ImageURL,
			CreatedAt: e.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

type transactionView struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// MyTransactions handles GET /api/my-transactions.
func (h *Handler) MyTransactions(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	entries, err := h.engine.TransactionHistory(r.Context(), claims.UserID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	out := make([]transactionView, 0, len(entries))
	for _, e := range entries {
		out = append(out, transactionView{
			ID:        e.ID,
			Amount:    e.Amount,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
