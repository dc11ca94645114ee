package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ovsinka/online_store/internal/models"
	"github.com/ovsinka/online_store/internal/transport"
)

func (r *GormRepo) FindOptionsByIDs(ctx context.Context, ids []uint) ([]models.ProductOption, error) {
	var options []models.ProductOption
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("id IN ?", ids).
		Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, []models.ProductOption, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, nil, err
	}

	var options []models.ProductOption
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", id).
		Order("id ASC").
		Find(&options).Error; err != nil {
		return nil, nil, err
	}

	return &product, options, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product, options []*models.ProductOption) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		for _, opt := range options {
			opt.ProductID = product.ID
			if err := tx.Create(opt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := r.DB.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *GormRepo) PatchOption(ctx context.Context, req transport.PatchOptionRequest, id uint) (*models.ProductOption, error) {
	var option models.ProductOption
	if err := r.DB.WithContext(ctx).First(&option, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		option.Name = *req.Name
	}
	if req.Price != nil {
		option.Price = *req.Price
	}

	if err := r.DB.WithContext(ctx).Save(&option).Error; err != nil {
		return nil, err
	}

	return &option, nil
}

func (r *GormRepo) UpdateOptionStock(ctx context.Context, id uint, stock int64) (*models.ProductOption, error) {
	var option models.ProductOption
	if err := r.DB.WithContext(ctx).First(&option, id).Error; err != nil {
		return nil, err
	}

	option.Stock = stock
	if err := r.DB.WithContext(ctx).Save(&option).Error; err != nil {
		return nil, err
	}

	return &option, nil
}
