package engine

import (
	"context"
	"database/sql"
	"fmt"
)

// Credit applies an administrative balance adjustment with the same
// atomicity as a purchase: the delta and its ledger row commit together.
// Negative amounts are allowed for manual corrections but can never push the
// balance below zero.
func (e *Engine) Credit(ctx context.Context, userID, amount int64, reason string) error {
	if amount == 0 {
		return ErrInvalidAmount
	}

	if reason == "" {
		reason = "Manual adjustment"
	}

	return e.withRetry(ctx, func(tx *sql.Tx) error {
		_, err := e.users.LockAndGetBalance(tx, userID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		err = e.users.ApplyDelta(tx, userID, amount)
		if err != nil {
			return fmt.Errorf("adjust: %w", err)
		}

		err = e.ledger.Append(tx, userID, amount, reason)
		if err != nil {
			return fmt.Errorf("ledger: %w", err)
		}

		return nil
	})
}
