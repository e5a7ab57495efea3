package repository

import (
	"errors"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"gorm.io/gorm"
)

// InquiryRepository data access for contact-form submissions
type InquiryRepository interface {
	Create(inquiry *domain.Inquiry) error
	FindByID(id uint64) (*domain.Inquiry, error)
	Find(status string, page, limit int) ([]*domain.Inquiry, int64, error)
	UpdateStatus(id uint64, status string) error
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new InquiryRepository
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(inquiry *domain.Inquiry) error {
	return r.db.Create(inquiry).Error
}

func (r *inquiryRepository) FindByID(id uint64) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := r.db.Where("id = ?", id).First(&inquiry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInquiryNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) Find(status string, page, limit int) ([]*domain.Inquiry, int64, error) {
	query := r.db.Model(&domain.Inquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var inquiries []*domain.Inquiry
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&inquiries).Error
	return inquiries, total, err
}

func (r *inquiryRepository) UpdateStatus(id uint64, status string) error {
	result := r.db.Model(&domain.Inquiry{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrInquiryNotFound
	}
	return nil
}
