package normalize

import "github.com/noa-park/backoffice/internal/upstream"

// Order is the read-side view of an upstream order, enough for the
// reporting screens and the spend aggregation.
type Order struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	TotalPaidAmount int64  `json:"totalPaidAmount"`
}

func OrderFromRaw(raw upstream.RawOrder) Order {
	return Order{
		ID:              coerceString(raw.ID),
		UserID:          coerceString(raw.UserID),
		TotalPaidAmount: coerceAmount(raw.TotalPaidAmount),
	}
}
