package pos

import "testing"

func TestCart_AddItem(t *testing.T) {
	t.Parallel()

	c := NewCart()
	c.AddItem("g1", "Mega Coaster", 45000)
	c.AddItem("g2", "Bumper Cars", 75000)
	c.AddItem("g1", "Mega Coaster", 45000)

	if len(c.Lines) != 2 {
		t.Fatalf("lines: want 2, got %d", len(c.Lines))
	}

	if c.Lines[0].GameID != "g1" || c.Lines[0].Quantity != 2 {
		t.Fatalf("g1 line: want qty 2, got %+v", c.Lines[0])
	}

	if c.Lines[1].GameID != "g2" || c.Lines[1].Quantity != 1 {
		t.Fatalf("g2 line: want qty 1, got %+v", c.Lines[1])
	}
}

func TestCart_RemoveItem(t *testing.T) {
	t.Parallel()

	c := NewCart()
	c.AddItem("g1", "a", 100)
	c.AddItem("g1", "a", 100)
	c.AddItem("g2", "b", 200)

	// Removal ignores quantity.
	c.RemoveItem("g1")

	if len(c.Lines) != 1 || c.Lines[0].GameID != "g2" {
		t.Fatalf("want only g2 left, got %+v", c.Lines)
	}

	// Absent id is a no-op.
	c.RemoveItem("missing")

	if len(c.Lines) != 1 {
		t.Fatalf("remove of missing id mutated cart: %+v", c.Lines)
	}
}

func TestCart_ChangeQuantity(t *testing.T) {
	t.Parallel()

	type tc struct {
		name    string
		delta   int64
		wantQty int64
		removed bool
	}

	tests := []tc{
		{name: "increment", delta: 1, wantQty: 3},
		{name: "decrement", delta: -1, wantQty: 1},
		{name: "big_positive_delta", delta: 10, wantQty: 12},
		{name: "to_zero_removes", delta: -2, removed: true},
		{name: "below_zero_removes", delta: -5, removed: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCart()
			c.AddItem("g1", "a", 100)
			c.AddItem("g1", "a", 100) // qty 2

			c.ChangeQuantity("g1", tt.delta)

			if tt.removed {
				if len(c.Lines) != 0 {
					t.Fatalf("want line removed, got %+v", c.Lines)
				}

				return
			}

			if len(c.Lines) != 1 || c.Lines[0].Quantity != tt.wantQty {
				t.Fatalf("want qty %d, got %+v", tt.wantQty, c.Lines)
			}
		})
	}
}

func TestCart_ChangeQuantityMissingLine(t *testing.T) {
	t.Parallel()

	c := NewCart()
	c.AddItem("g1", "a", 100)

	c.ChangeQuantity("nope", 5)

	if len(c.Lines) != 1 || c.Lines[0].Quantity != 1 {
		t.Fatalf("change on missing id mutated cart: %+v", c.Lines)
	}
}

func TestCart_DiscountReplacesNotStacks(t *testing.T) {
	t.Parallel()

	c := NewCart()
	c.ApplyDiscount(DiscountPercentage, "10")
	c.ApplyDiscount(DiscountFixed, "20000")

	want := Discount{Kind: DiscountFixed, Value: 20000}
	if c.Discount != want {
		t.Fatalf("discount: want %+v, got %+v", want, c.Discount)
	}

	c.ClearDiscount()

	if c.Discount != NoDiscount() {
		t.Fatalf("clear: want zero percentage discount, got %+v", c.Discount)
	}
}

func TestParseDiscount(t *testing.T) {
	t.Parallel()

	type tc struct {
		name string
		raw  string
		want int64
	}

	tests := []tc{
		{name: "plain", raw: "15", want: 15},
		{name: "spaces", raw: " 20 ", want: 20},
		{name: "empty", raw: "", want: 0},
		{name: "garbage", raw: "abc", want: 0},
		{name: "negative", raw: "-5", want: 0},
		{name: "decimal_rejected", raw: "1.5", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseDiscount(DiscountPercentage, tt.raw)
			if got.Value != tt.want {
				t.Fatalf("value: want %d, got %d", tt.want, got.Value)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	type tc struct {
		name string
		in   string
		want int64
	}

	tests := []tc{
		{name: "grouped", in: "45,000", want: 45000},
		{name: "plain", in: "75000", want: 75000},
		{name: "spaces", in: " 1,250 ", want: 1250},
		{name: "empty", in: "", want: 0},
		{name: "garbage", in: "free", want: 0},
		{name: "negative", in: "-100", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParsePrice(tt.in)
			if got != tt.want {
				t.Fatalf("ParsePrice(%q): want %d, got %d", tt.in, tt.want, got)
			}
		})
	}
}
