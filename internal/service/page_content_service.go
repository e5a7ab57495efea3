package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
	"github.com/hengrui/sitecms-backend/pkg/cache"
	"github.com/hengrui/sitecms-backend/pkg/logger"
)

// PageContentService business logic for the live page content
// projection. Every admin mutation records a content version through
// the content service.
type PageContentService interface {
	GetPage(ctx context.Context, pageKey string) ([]*domain.PageContent, error)
	GetSection(pageKey, sectionKey string) (*domain.PageContent, error)
	Upsert(ctx context.Context, req *domain.PageContentRequest, actorID string) (*domain.PageContent, error)
	Delete(ctx context.Context, id uint64) error
}

type pageContentService struct {
	pages    repository.PageContentRepository
	versions ContentService
	cache    cache.Service
}

// NewPageContentService creates a new PageContentService
func NewPageContentService(pages repository.PageContentRepository, versions ContentService, cacheSvc cache.Service) PageContentService {
	return &pageContentService{pages: pages, versions: versions, cache: cacheSvc}
}

func (s *pageContentService) GetPage(ctx context.Context, pageKey string) ([]*domain.PageContent, error) {
	if data, err := s.cache.GetPage(ctx, pageKey); err == nil {
		var cached []*domain.PageContent
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	contents, err := s.pages.FindByPageKey(pageKey)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPage(ctx, pageKey, contents); err != nil {
		logger.GetLogger().Warn().Err(err).Str("page_key", pageKey).Msg("page cache write failed")
	}
	return contents, nil
}

func (s *pageContentService) GetSection(pageKey, sectionKey string) (*domain.PageContent, error) {
	return s.pages.FindByPageAndSection(pageKey, sectionKey)
}

// Upsert creates or updates a page section and appends the matching
// content version (change_type "create" or "update").
func (s *pageContentService) Upsert(ctx context.Context, req *domain.PageContentRequest, actorID string) (*domain.PageContent, error) {
	existing, err := s.pages.FindByPageAndSection(req.PageKey, req.SectionKey)
	if err != nil && !errors.Is(err, common.ErrContentNotFound) {
		return nil, err
	}

	changeType := domain.ChangeTypeUpdate
	var content *domain.PageContent
	if existing == nil {
		changeType = domain.ChangeTypeCreate
		content = &domain.PageContent{
			PageKey:    req.PageKey,
			SectionKey: req.SectionKey,
			IsActive:   true,
		}
	} else {
		content = existing
	}

	content.ContentZh = req.ContentZh
	content.ContentEn = req.ContentEn
	content.ContentRu = req.ContentRu
	content.ContentType = req.ContentType
	content.MetaData = req.MetaData
	content.MetaTitleZh = req.MetaTitleZh
	content.MetaTitleEn = req.MetaTitleEn
	content.MetaTitleRu = req.MetaTitleRu
	content.MetaDescriptionZh = req.MetaDescriptionZh
	content.MetaDescriptionEn = req.MetaDescriptionEn
	content.MetaDescriptionRu = req.MetaDescriptionRu
	content.SortOrder = req.SortOrder
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}

	if existing == nil {
		err = s.pages.Create(content)
	} else {
		err = s.pages.Update(content)
	}
	if err != nil {
		return nil, err
	}

	body := &domain.VersionBody{
		ContentZh:   req.ContentZh,
		ContentEn:   req.ContentEn,
		ContentRu:   req.ContentRu,
		ContentType: req.ContentType,
		MetaData:    req.MetaData,
	}
	if _, err := s.versions.CreateVersion(content.ID, body, actorID, req.ChangeDescription, changeType); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidatePage(ctx, req.PageKey); err != nil {
		logger.GetLogger().Warn().Err(err).Str("page_key", req.PageKey).Msg("page cache invalidation failed")
	}
	return content, nil
}

func (s *pageContentService) Delete(ctx context.Context, id uint64) error {
	content, err := s.pages.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.pages.Delete(id); err != nil {
		return err
	}
	if err := s.cache.InvalidatePage(ctx, content.PageKey); err != nil {
		logger.GetLogger().Warn().Err(err).Str("page_key", content.PageKey).Msg("page cache invalidation failed")
	}
	return nil
}
