package pricing

import "github.com/ovsinka/online_store/internal/models"

// Calculator is the pricing strategy for a set of cart items. The cart
// service only ever sees this interface, so an alternative strategy
// (promotions, bundles) can be swapped in at wiring time.
type Calculator interface {
	Execute(items []models.CartItem) int64
}

// CartCalculator sums quantity times the option's current price.
type CartCalculator struct{}

func NewCartCalculator() CartCalculator {
	return CartCalculator{}
}

func (CartCalculator) Execute(items []models.CartItem) int64 {
	var total int64
	for i := range items {
		total += items[i].Price()
	}
	return total
}
