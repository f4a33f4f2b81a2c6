// Package pricing computes cart line totals and order settlement totals.
// It is pure arithmetic over whole-baht amounts and has no persistence
// dependencies; the order service feeds it catalog prices and the member's
// stored tier.
package pricing

// Line is one cart line with its immutable unit components. Quantity updates
// recompute the total from these components directly, never by dividing the
// previous total back out.
type Line struct {
	UnitPrice    int64 // menu item price per glass
	ToppingTotal int64 // sum of topping prices, applied once per glass
	Quantity     int64
}

func (l Line) Total() int64 {
	return (l.UnitPrice + l.ToppingTotal) * l.Quantity
}

// WithQuantity returns the line at a new quantity, unit components unchanged.
func (l Line) WithQuantity(qty int64) Line {
	l.Quantity = qty
	return l
}

func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Total()
	}
	return sum
}

// Glasses is the shop's unit of sale: the sum of line quantities.
func Glasses(lines []Line) int64 {
	var n int64
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// TierDiscount applies a whole-percent discount to a subtotal, rounding half
// up to the nearest baht.
func TierDiscount(subtotal, percent int64) int64 {
	return (subtotal*percent + 50) / 100
}

// Settlement is the server-side computation of every derived money and points
// field on an order. Clients submit their own numbers; these are the ones
// that get persisted.
type Settlement struct {
	Subtotal       int64
	TierDiscount   int64
	PointsDiscount int64
	DiscountAmount int64 // TierDiscount + PointsDiscount
	Total          int64
	Glasses        int64
	PointsEarned   int64
}
