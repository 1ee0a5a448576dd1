// Package notify posts best-effort operational notifications. Delivery is
// never transactional with the event it reports: a failed notification is
// logged and dropped.
package notify

import "context"

type Notifier interface {
	PurchaseMade(ctx context.Context, buyerName, itemName string, price int64)
}

// Nop is the notifier used when no channel is configured.
type Nop struct{}

func (Nop) PurchaseMade(context.Context, string, string, int64) {}
