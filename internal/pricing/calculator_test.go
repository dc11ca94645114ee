package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovsinka/online_store/internal/models"
)

func TestCartCalculatorSumsLines(t *testing.T) {
	calc := NewCartCalculator()

	items := []models.CartItem{
		{Quantity: 2, ProductOption: models.ProductOption{Price: 1000}},
		{Quantity: 3, ProductOption: models.ProductOption{Price: 500}},
		{Quantity: 1, ProductOption: models.ProductOption{Price: 0}},
	}

	require.Equal(t, int64(3500), calc.Execute(items))
}

func TestCartCalculatorEmptyCart(t *testing.T) {
	calc := NewCartCalculator()

	require.Equal(t, int64(0), calc.Execute(nil))
	require.Equal(t, int64(0), calc.Execute([]models.CartItem{}))
}

func TestCartCalculatorZeroQuantity(t *testing.T) {
	calc := NewCartCalculator()

	items := []models.CartItem{
		{Quantity: 0, ProductOption: models.ProductOption{Price: 9999}},
	}
	require.Equal(t, int64(0), calc.Execute(items))
}
