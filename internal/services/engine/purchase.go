package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scoinhq/scoin-backend/internal/repos/users"
)

// Receipt describes a committed purchase.
type Receipt struct {
	ItemID   int64
	ItemName string
	Price    int64
}

// Purchase buys itemID for userID. The whole flow runs in one transaction:
//
//  1. Load the item.
//  2. Lock the buyer's balance row.
//  3. Abort with ErrInsufficientFunds before any mutation if it can't cover
//     the price.
//  4. Guarded debit + purchase row + ledger row of -price.
//
// Either every write commits or none does; a partial purchase is never
// observable.
func (e *Engine) Purchase(ctx context.Context, userID, itemID int64) (*Receipt, error) {
	var receipt *Receipt

	err := e.withRetry(ctx, func(tx *sql.Tx) error {
		receipt = nil

		item, err := e.items.Get(tx, itemID)
		if err != nil {
			return fmt.Errorf("load item: %w", err)
		}

		balance, err := e.users.LockAndGetBalance(tx, userID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		if balance < item.Price {
			return users.ErrInsufficientFunds
		}

		err = e.users.DecreaseBalance(tx, userID, item.Price)
		if err != nil {
			return fmt.Errorf("debit: %w", err)
		}

		err = e.purchases.Insert(tx, userID, itemID)
		if err != nil {
			return fmt.Errorf("record purchase: %w", err)
		}

		err = e.ledger.Append(tx, userID, -item.Price, "Purchase: "+item.Name)
		if err != nil {
			return fmt.Errorf("ledger: %w", err)
		}

		receipt = &Receipt{ItemID: item.ID, ItemName: item.Name, Price: item.Price}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}
