package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ovsinka/online_store/internal/models"
)

// FindCartByUser returns the user's cart lines with option and product
// resolved, ordered by option id so repeated reads are stable.
func (r *GormRepo) FindCartByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Preload("ProductOption.Product").
		Where("user_id = ?", userID).
		Order("product_option_id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCartItems persists the batch in a single transaction. Items with a
// zero id are created, the rest are updated.
func (r *GormRepo) SaveCartItems(ctx context.Context, items []*models.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := tx.Omit("ProductOption").Save(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCartItems removes the given lines for the user. Missing ids are
// ignored.
func (r *GormRepo) DeleteCartItems(ctx context.Context, userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.CartItem{}).Error
}
