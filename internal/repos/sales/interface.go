// Package sales is the offline sales journal: POS checkouts completed
// while the gateway is in demo mode are persisted here and replayed
// against the upstream API once it is reachable again.
package sales

import (
	"context"
	"errors"
	"time"
)

var ErrDuplicateSale = errors.New("duplicate sale")
var ErrSaleNotFound = errors.New("sale not found")

type Item struct {
	GameID    string
	Name      string
	UnitPrice int64
	Quantity  int64
}

type Sale struct {
	ID             string
	CustomerID     string
	DiscountKind   string
	DiscountValue  int64
	Subtotal       int64
	DiscountAmount int64
	NetAmount      int64
	Tax            int64
	Total          int64
	CreatedAt      time.Time
	Items          []Item
}

type Journal interface {
	// Insert stores the sale and its items atomically.
	Insert(ctx context.Context, sale Sale) error
	// ListPending returns journaled sales, oldest first.
	ListPending(ctx context.Context) ([]Sale, error)
	// Delete removes a reconciled sale and its items.
	Delete(ctx context.Context, id string) error
}
