package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/noa-park/backoffice/internal/normalize"
	"github.com/noa-park/backoffice/internal/pos"
	"github.com/noa-park/backoffice/internal/repos/sales"
	"github.com/noa-park/backoffice/internal/upstream"
)

var ErrNoJournal = errors.New("offline sales journal not configured")

// CheckoutResult reports where a completed sale ended up.
type CheckoutResult struct {
	OrderID   string     `json:"orderId"`
	Totals    pos.Totals `json:"totals"`
	Journaled bool       `json:"journaled"`
}

// Checkout converts a cart into an order. Like every other mutation it
// is remote-first: the order is POSTed upstream, and only a demo-mode
// failure falls back locally, into the sales journal for later
// reconciliation.
func (c *Controller) Checkout(ctx context.Context, cart *pos.Cart, customerID string) (CheckoutResult, error) {
	if cart == nil || len(cart.Lines) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	totals := cart.Totals(c.taxRateBP)
	payload := orderPayload(cart, totals, customerID)

	rec, err := c.client.Orders().Create(ctx, payload)
	if err != nil {
		if !c.IsDemoMode() {
			return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
		}

		return c.journalSale(ctx, cart, totals, customerID)
	}

	order := normalize.OrderFromRaw(rec)

	c.mu.Lock()
	c.orders = append(c.orders, order)
	c.mu.Unlock()

	return CheckoutResult{OrderID: order.ID, Totals: totals}, nil
}

func (c *Controller) journalSale(ctx context.Context, cart *pos.Cart, totals pos.Totals, customerID string) (CheckoutResult, error) {
	if c.journal == nil {
		return CheckoutResult{}, ErrNoJournal
	}

	sale := sales.Sale{
		ID:             uuid.NewString(),
		CustomerID:     customerID,
		DiscountKind:   string(cart.Discount.Kind),
		DiscountValue:  cart.Discount.Value,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		NetAmount:      totals.NetAmount,
		Tax:            totals.Tax,
		Total:          totals.Total,
		CreatedAt:      time.Now().UTC(),
	}

	for _, l := range cart.Lines {
		sale.Items = append(sale.Items, sales.Item{
			GameID:    l.GameID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	err := c.journal.Insert(ctx, sale)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("journal sale: %w", err)
	}

	slog.Info("sale journaled offline", "sale", sale.ID, "total", sale.Total)

	return CheckoutResult{OrderID: sale.ID, Totals: totals, Journaled: true}, nil
}

// Reconcile replays journaled sales upstream, oldest first, deleting
// each on success and stopping at the first failure so ordering is
// preserved for the next attempt. Returns how many were replayed.
func (c *Controller) Reconcile(ctx context.Context) (int, error) {
	if c.journal == nil {
		return 0, ErrNoJournal
	}

	pending, err := c.journal.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending sales: %w", err)
	}

	done := 0

	for _, sale := range pending {
		payload := upstream.OrderPayload{
			UserID: sale.CustomerID,
			Discount: upstream.DiscountPayload{
				Kind:  sale.DiscountKind,
				Value: sale.DiscountValue,
			},
			TotalPaidAmount: sale.Total,
			TaxAmount:       sale.Tax,
		}

		for _, it := range sale.Items {
			payload.Items = append(payload.Items, upstream.OrderItem{
				GameID:    it.GameID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}

		_, err = c.client.Orders().Create(ctx, payload)
		if err != nil {
			return done, fmt.Errorf("replay sale %s: %w", sale.ID, err)
		}

		err = c.journal.Delete(ctx, sale.ID)
		if err != nil && !errors.Is(err, sales.ErrSaleNotFound) {
			return done, fmt.Errorf("drop replayed sale %s: %w", sale.ID, err)
		}

		done++
	}

	if done > 0 {
		slog.Info("offline sales reconciled", "count", done)
	}

	return done, nil
}

func orderPayload(cart *pos.Cart, totals pos.Totals, customerID string) upstream.OrderPayload {
	p := upstream.OrderPayload{
		UserID: customerID,
		Discount: upstream.DiscountPayload{
			Kind:  string(cart.Discount.Kind),
			Value: cart.Discount.Value,
		},
		TotalPaidAmount: totals.Total,
		TaxAmount:       totals.Tax,
	}

	for _, l := range cart.Lines {
		p.Items = append(p.Items, upstream.OrderItem{
			GameID:    l.GameID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	return p
}
