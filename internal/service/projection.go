package service

import (
	"github.com/ovsinka/online_store/internal/models"
	"github.com/ovsinka/online_store/internal/transport"
)

// toCartProductViews groups cart lines by product, keeping the order in
// which distinct products first appear in the input.
func toCartProductViews(items []models.CartItem) []transport.CartProductView {
	views := make([]transport.CartProductView, 0, len(items))
	indexByProductID := make(map[uint]int, len(items))

	for _, item := range items {
		option := item.ProductOption
		product := option.Product

		idx, ok := indexByProductID[product.ID]
		if !ok {
			idx = len(views)
			indexByProductID[product.ID] = idx
			views = append(views, transport.CartProductView{
				ProductID:   product.ID,
				ProductName: product.Name,
			})
		}

		views[idx].Items = append(views[idx].Items, transport.CartItemView{
			OptionID: option.ID,
			Option: transport.CartOptionView{
				ID:    option.ID,
				Name:  option.Name,
				Price: option.Price,
			},
			Quantity: item.Quantity,
			Price:    item.Price(),
		})
	}

	return views
}

func toUpdatedCartViews(items []models.CartItem) []transport.UpdatedCartView {
	views := make([]transport.UpdatedCartView, 0, len(items))
	for _, item := range items {
		views = append(views, transport.UpdatedCartView{
			CartID:     item.ID,
			OptionID:   item.ProductOption.ID,
			OptionName: item.ProductOption.Name,
			Quantity:   item.Quantity,
			Price:      item.Price(),
		})
	}
	return views
}
