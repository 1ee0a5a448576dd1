package engine

import (
	"context"
	"fmt"

	"github.com/scoinhq/scoin-backend/internal/repos/ledger"
	"github.com/scoinhq/scoin-backend/internal/repos/purchases"
)

// historyLimit caps a single transaction history page.
const historyLimit = 100

// PurchaseHistory returns the user's purchases, most recent first.
func (e *Engine) PurchaseHistory(ctx context.Context, userID int64) ([]purchases.HistoryEntry, error) {
	history, err := e.purchases.HistoryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("purchase history: %w", err)
	}

	return history, nil
}

// TransactionHistory returns the user's ledger entries, most recent first.
func (e *Engine) TransactionHistory(ctx context.Context, userID int64) ([]ledger.Entry, error) {
	entries, err := e.ledger.ListByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("transaction history: %w", err)
	}

	return entries, nil
}
