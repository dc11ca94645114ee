package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ovsinka/online_store/internal/models"
	"github.com/ovsinka/online_store/internal/pricing"
	"github.com/ovsinka/online_store/internal/repo"
	"github.com/ovsinka/online_store/internal/transport"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type CartService struct {
	Repo *repo.GormRepo
	Calc pricing.Calculator
}

func (s *CartService) FindAll(ctx context.Context, userID uint) (transport.CartResponse, error) {
	items, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		return transport.CartResponse{}, err
	}

	return transport.CartResponse{
		Products:   toCartProductViews(items),
		TotalPrice: s.Calc.Execute(items),
	}, nil
}

// Add merges the requested quantities into the user's cart. An option the
// user already has gets incremented, a new one starts from a zero-quantity
// line. All validation happens before any write, so a rejected batch never
// leaves partial state behind.
func (s *CartService) Add(ctx context.Context, requests []transport.CartInsertRequest, userID uint) error {
	optionIDs := make([]uint, 0, len(requests))
	seen := make(map[uint]struct{}, len(requests))
	for _, req := range requests {
		if req.Quantity < 0 {
			return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
		}
		if _, ok := seen[req.OptionID]; ok {
			return fmt.Errorf("%w: duplicate option in request", ErrValidation)
		}
		seen[req.OptionID] = struct{}{}
		optionIDs = append(optionIDs, req.OptionID)
	}

	options, err := s.Repo.FindOptionsByIDs(ctx, optionIDs)
	if err != nil {
		return err
	}
	optionByID := make(map[uint]models.ProductOption, len(options))
	for _, opt := range options {
		optionByID[opt.ID] = opt
	}
	for _, id := range optionIDs {
		if _, ok := optionByID[id]; !ok {
			return fmt.Errorf("%w: option %d does not exist", ErrNotFound, id)
		}
	}

	saved, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		return err
	}
	itemByOptionID := make(map[uint]*models.CartItem, len(saved))
	for i := range saved {
		itemByOptionID[saved[i].ProductOptionID] = &saved[i]
	}

	items := make([]*models.CartItem, 0, len(requests))
	for _, req := range requests {
		item, ok := itemByOptionID[req.OptionID]
		if !ok {
			option := optionByID[req.OptionID]
			item = &models.CartItem{
				UserID:          userID,
				ProductOptionID: option.ID,
				ProductOption:   option,
				Quantity:        0,
			}
		}
		item.Quantity += req.Quantity
		items = append(items, item)
	}

	return s.Repo.SaveCartItems(ctx, items)
}

// Update replaces quantities outright, unlike Add. A resulting quantity
// must stay strictly positive.
func (s *CartService) Update(ctx context.Context, requests []transport.CartUpdateRequest, userID uint) (transport.CartUpdateResponse, error) {
	seen := make(map[uint]struct{}, len(requests))
	for _, req := range requests {
		if _, ok := seen[req.CartID]; ok {
			return transport.CartUpdateResponse{}, fmt.Errorf("%w: duplicate cart item in request", ErrValidation)
		}
		seen[req.CartID] = struct{}{}
	}

	saved, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		return transport.CartUpdateResponse{}, err
	}
	if len(saved) == 0 {
		return transport.CartUpdateResponse{}, fmt.Errorf("%w: cart is empty", ErrNotFound)
	}
	itemByID := make(map[uint]*models.CartItem, len(saved))
	for i := range saved {
		itemByID[saved[i].ID] = &saved[i]
	}

	items := make([]*models.CartItem, 0, len(requests))
	for _, req := range requests {
		item, ok := itemByID[req.CartID]
		if !ok {
			return transport.CartUpdateResponse{}, fmt.Errorf("%w: cart item %d does not exist", ErrNotFound, req.CartID)
		}
		if req.Quantity <= 0 {
			return transport.CartUpdateResponse{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		item.Quantity = req.Quantity
		items = append(items, item)
	}

	if err := s.Repo.SaveCartItems(ctx, items); err != nil {
		return transport.CartUpdateResponse{}, err
	}

	updated := make([]models.CartItem, len(items))
	for i := range items {
		updated[i] = *items[i]
	}

	return transport.CartUpdateResponse{
		Items:      toUpdatedCartViews(updated),
		TotalPrice: s.Calc.Execute(updated),
	}, nil
}

// Delete removes the given lines from the user's cart. Ids that do not
// exist are ignored.
func (s *CartService) Delete(ctx context.Context, requests []transport.CartDeleteRequest, userID uint) error {
	ids := make([]uint, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.CartID)
	}
	return s.Repo.DeleteCartItems(ctx, userID, ids)
}
