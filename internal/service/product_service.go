package service

import (
	"context"
	"encoding/json"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
	"github.com/hengrui/sitecms-backend/pkg/cache"
	"github.com/hengrui/sitecms-backend/pkg/logger"
)

// ProductService business logic for the public catalog and admin CRUD
type ProductService interface {
	ListPublic(ctx context.Context, category string, page, limit int) ([]*domain.Product, *common.Meta, error)
	GetBySlug(slug string) (*domain.Product, error)
	ListAll(page, limit int) ([]*domain.Product, *common.Meta, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Service
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, cacheSvc cache.Service) ProductService {
	return &productService{repo: repo, cache: cacheSvc}
}

func (s *productService) ListPublic(ctx context.Context, category string, page, limit int) ([]*domain.Product, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	if data, err := s.cache.GetProducts(ctx, category, page, limit); err == nil {
		var cached listCacheEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.Products, &common.Meta{Page: page, Limit: limit, Total: cached.Total}, nil
		}
	}

	products, total, err := s.repo.FindActive(category, page, limit)
	if err != nil {
		return nil, nil, err
	}

	entry := listCacheEntry{Products: products, Total: total}
	if err := s.cache.SetProducts(ctx, category, page, limit, entry); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("product cache write failed")
	}

	return products, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// listCacheEntry is the cached shape of a public catalog page
type listCacheEntry struct {
	Products []*domain.Product `json:"products"`
	Total    int64             `json:"total"`
}

func (s *productService) GetBySlug(slug string) (*domain.Product, error) {
	return s.repo.FindBySlug(slug)
}

func (s *productService) ListAll(page, limit int) ([]*domain.Product, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	products, total, err := s.repo.FindAll(page, limit)
	if err != nil {
		return nil, nil, err
	}
	return products, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *productService) Create(ctx context.Context, product *domain.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	return s.invalidate(ctx)
}

func (s *productService) Update(ctx context.Context, product *domain.Product) error {
	if _, err := s.repo.FindByID(product.ID); err != nil {
		return err
	}
	if err := s.repo.Update(product); err != nil {
		return err
	}
	return s.invalidate(ctx)
}

func (s *productService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	return s.invalidate(ctx)
}

func (s *productService) invalidate(ctx context.Context) error {
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("product cache invalidation failed")
	}
	return nil
}
