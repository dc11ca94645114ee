package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ovsinka/online_store/internal/models"
	"github.com/ovsinka/online_store/internal/repo"
	"github.com/ovsinka/online_store/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (transport.ProductDetailResponse, error) {
	product, options, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.ProductDetailResponse{}, fmt.Errorf("%w: product %d does not exist", ErrNotFound, id)
	}
	if err != nil {
		return transport.ProductDetailResponse{}, err
	}

	optionViews := make([]transport.ProductOptionView, 0, len(options))
	for _, opt := range options {
		optionViews = append(optionViews, transport.ProductOptionView{
			ID:    opt.ID,
			Name:  opt.Name,
			Price: opt.Price,
			Stock: opt.Stock,
		})
	}

	return transport.ProductDetailResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Image:       product.Image,
		Price:       product.Price,
		Options:     optionViews,
	}, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	for _, opt := range req.Options {
		if opt.Name == "" {
			return nil, fmt.Errorf("%w: option name required", ErrValidation)
		}
		if opt.Price < 0 {
			return nil, fmt.Errorf("%w: option price cannot be negative", ErrValidation)
		}
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	}
	options := make([]*models.ProductOption, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, &models.ProductOption{
			Name:  opt.Name,
			Price: opt.Price,
			Stock: opt.Stock,
		})
	}

	if err := s.Repo.CreateProduct(ctx, product, options); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	product, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d does not exist", ErrNotFound, id)
	}
	return product, err
}

func (s *CatalogService) PatchOption(ctx context.Context, req transport.PatchOptionRequest, id uint) (*models.ProductOption, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	option, err := s.Repo.PatchOption(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: option %d does not exist", ErrNotFound, id)
	}
	return option, err
}

func (s *CatalogService) UpdateOptionStock(ctx context.Context, req transport.OptionStockUpdateRequest) (*models.ProductOption, error) {
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	option, err := s.Repo.UpdateOptionStock(ctx, req.OptionID, req.Stock)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: option %d does not exist", ErrNotFound, req.OptionID)
	}
	return option, err
}
