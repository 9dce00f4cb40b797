package pos

// DefaultTaxRateBP is the sales tax applied at checkout, in basis
// points. 1000 bp = 10%. Configurable via APP_TAX_RATE_BP.
const DefaultTaxRateBP int64 = 1000

// Totals is derived from the current lines and discount on every call;
// it is never cached across cart changes.
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discountAmount"`
	NetAmount      int64 `json:"netAmount"`
	Tax            int64 `json:"tax"`
	Total          int64 `json:"total"`
	ItemCount      int64 `json:"itemCount"`
}

// roundedFraction computes round(amount * num / den) with half-up
// rounding. Operands are non-negative here, so integer arithmetic with
// a +den/2 bias is exact.
func roundedFraction(amount, num, den int64) int64 {
	return (amount*num + den/2) / den
}

// ComputeTotals derives the cart totals per the pricing rules:
//
//	subtotal = sum(unitPrice * quantity)
//	discount = value (fixed) | round(subtotal * value / 100) (percentage)
//	net      = max(0, subtotal - discount)
//	tax      = round(net * taxRateBP / 10000)
//	total    = net + tax
//
// Rounding is half-up. The function is pure: identical inputs always
// yield identical output.
func ComputeTotals(lines []CartLine, d Discount, taxRateBP int64) Totals {
	var t Totals

	for _, l := range lines {
		t.Subtotal += l.UnitPrice * l.Quantity
		t.ItemCount += l.Quantity
	}

	switch d.Kind {
	case DiscountPercentage:
		t.DiscountAmount = roundedFraction(t.Subtotal, d.Value, 100)
	case DiscountFixed:
		t.DiscountAmount = d.Value
	}

	t.NetAmount = t.Subtotal - t.DiscountAmount
	if t.NetAmount < 0 {
		t.NetAmount = 0
	}

	t.Tax = roundedFraction(t.NetAmount, taxRateBP, 10000)
	t.Total = t.NetAmount + t.Tax

	return t
}

// Totals derives the totals for the cart at the given tax rate.
func (c *Cart) Totals(taxRateBP int64) Totals {
	return ComputeTotals(c.Lines, c.Discount, taxRateBP)
}
