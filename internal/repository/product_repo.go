package repository

import (
	"errors"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository data access for the product catalog
type ProductRepository interface {
	FindByID(id uint64) (*domain.Product, error)
	FindBySlug(slug string) (*domain.Product, error)
	FindActive(category string, page, limit int) ([]*domain.Product, int64, error)
	FindAll(page, limit int) ([]*domain.Product, int64, error)
	Create(product *domain.Product) error
	Update(product *domain.Product) error
	Delete(id uint64) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindByID(id uint64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("slug = ? AND is_active = ?", slug, true).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindActive(category string, page, limit int) ([]*domain.Product, int64, error) {
	query := r.db.Model(&domain.Product{}).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	err := query.Order("sort_order ASC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) FindAll(page, limit int) ([]*domain.Product, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	err := r.db.Order("sort_order ASC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint64) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrProductNotFound
	}
	return nil
}
