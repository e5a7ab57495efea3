package repository

import (
	"errors"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"gorm.io/gorm"
)

// PageContentRepository data access for the live page content projection
type PageContentRepository interface {
	FindByID(id uint64) (*domain.PageContent, error)
	FindByPageKey(pageKey string) ([]*domain.PageContent, error)
	FindByPageAndSection(pageKey, sectionKey string) (*domain.PageContent, error)
	Create(content *domain.PageContent) error
	Update(content *domain.PageContent) error
	// UpdateLiveFields overwrites the rendered content fields only,
	// used when a version is restored.
	UpdateLiveFields(id uint64, body *domain.VersionBody) error
	Delete(id uint64) error
}

type pageContentRepository struct {
	db *gorm.DB
}

// NewPageContentRepository creates a new PageContentRepository
func NewPageContentRepository(db *gorm.DB) PageContentRepository {
	return &pageContentRepository{db: db}
}

func (r *pageContentRepository) FindByID(id uint64) (*domain.PageContent, error) {
	var content domain.PageContent
	err := r.db.Where("id = ?", id).First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (r *pageContentRepository) FindByPageKey(pageKey string) ([]*domain.PageContent, error) {
	var contents []*domain.PageContent
	err := r.db.Where("page_key = ? AND is_active = ?", pageKey, true).
		Order("sort_order ASC").
		Find(&contents).Error
	return contents, err
}

func (r *pageContentRepository) FindByPageAndSection(pageKey, sectionKey string) (*domain.PageContent, error) {
	var content domain.PageContent
	err := r.db.Where("page_key = ? AND section_key = ?", pageKey, sectionKey).First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (r *pageContentRepository) Create(content *domain.PageContent) error {
	return r.db.Create(content).Error
}

func (r *pageContentRepository) Update(content *domain.PageContent) error {
	return r.db.Save(content).Error
}

func (r *pageContentRepository) UpdateLiveFields(id uint64, body *domain.VersionBody) error {
	return r.db.Model(&domain.PageContent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content_zh":   body.ContentZh,
			"content_en":   body.ContentEn,
			"content_ru":   body.ContentRu,
			"content_type": body.ContentType,
			"meta_data":    body.MetaData,
		}).Error
}

func (r *pageContentRepository) Delete(id uint64) error {
	result := r.db.Where("id = ?", id).Delete(&domain.PageContent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrContentNotFound
	}
	return nil
}
