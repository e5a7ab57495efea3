package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
	"github.com/hengrui/sitecms-backend/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageTestService(t *testing.T) (PageContentService, ContentService, repository.PageContentRepository) {
	t.Helper()
	db := setupContentTestDB(t)

	audit := &recordingAuditSink{}
	roles := &stubRoleService{approvers: map[string]bool{"approver": true}}
	pages := repository.NewPageContentRepository(db)
	contentSvc := NewContentService(
		repository.NewContentVersionRepository(db),
		repository.NewContentApprovalRepository(db),
		pages,
		roles,
		audit,
	)
	pageSvc := NewPageContentService(pages, contentSvc, cache.NewService(nil))
	return pageSvc, contentSvc, pages
}

func TestUpsert_CreatesSectionAndVersion(t *testing.T) {
	pageSvc, contentSvc, _ := newPageTestService(t)

	content, err := pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey:     "about",
		SectionKey:  "intro",
		ContentZh:   "zh-copy",
		ContentEn:   "en-copy",
		ContentType: "text",
	}, "editor")
	require.NoError(t, err)
	require.NotZero(t, content.ID)
	assert.True(t, content.IsActive)

	versions, err := contentSvc.ListVersions(content.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, domain.ChangeTypeCreate, versions[0].ChangeType)
	assert.Equal(t, "zh-copy", versions[0].ContentZh)
}

func TestUpsert_UpdatesExistingSection(t *testing.T) {
	pageSvc, contentSvc, pages := newPageTestService(t)

	first, err := pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey:     "about",
		SectionKey:  "intro",
		ContentZh:   "v1",
		ContentType: "text",
	}, "editor")
	require.NoError(t, err)

	second, err := pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey:           "about",
		SectionKey:        "intro",
		ContentZh:         "v2",
		ContentType:       "text",
		ChangeDescription: "copy update",
	}, "editor")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same section must be updated in place")

	live, err := pages.FindByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", live.ContentZh)

	versions, err := contentSvc.ListVersions(first.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, domain.ChangeTypeUpdate, versions[0].ChangeType)
	assert.Equal(t, "copy update", versions[0].ChangeDescription)
	assert.Equal(t, domain.ChangeTypeCreate, versions[1].ChangeType)
}

func TestGetPage_ReturnsSections(t *testing.T) {
	pageSvc, _, _ := newPageTestService(t)

	_, err := pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey: "home", SectionKey: "banner", ContentZh: "a", ContentType: "text",
	}, "editor")
	require.NoError(t, err)
	_, err = pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey: "home", SectionKey: "footer", ContentZh: "b", ContentType: "text",
	}, "editor")
	require.NoError(t, err)

	sections, err := pageSvc.GetPage(context.Background(), "home")
	require.NoError(t, err)
	assert.Len(t, sections, 2)
}

func TestUpsert_InactiveSectionPersists(t *testing.T) {
	pageSvc, _, pages := newPageTestService(t)

	inactive := false
	content, err := pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey:     "home",
		SectionKey:  "seasonal-banner",
		ContentZh:   "hidden",
		ContentType: "text",
		IsActive:    &inactive,
	}, "editor")
	require.NoError(t, err)
	assert.False(t, content.IsActive)

	stored, err := pages.FindByID(content.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive, "explicit inactive must survive the insert")

	sections, err := pageSvc.GetPage(context.Background(), "home")
	require.NoError(t, err)
	assert.Empty(t, sections, "inactive sections are not served")
}

// memoryPageCache keeps serialized pages in a map; every other cache
// operation falls through to the no-op service.
type memoryPageCache struct {
	cache.Service
	pages map[string][]byte
}

func newMemoryPageCache() *memoryPageCache {
	return &memoryPageCache{Service: cache.NewService(nil), pages: map[string][]byte{}}
}

func (c *memoryPageCache) GetPage(_ context.Context, pageKey string) ([]byte, error) {
	data, ok := c.pages[pageKey]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return data, nil
}

func (c *memoryPageCache) SetPage(_ context.Context, pageKey string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	c.pages[pageKey] = payload
	return nil
}

func (c *memoryPageCache) InvalidatePage(_ context.Context, pageKey string) error {
	delete(c.pages, pageKey)
	return nil
}

func TestGetPage_ServesFromCacheUntilInvalidated(t *testing.T) {
	db := setupContentTestDB(t)
	audit := &recordingAuditSink{}
	roles := &stubRoleService{approvers: map[string]bool{"approver": true}}
	pages := repository.NewPageContentRepository(db)
	contentSvc := NewContentService(
		repository.NewContentVersionRepository(db),
		repository.NewContentApprovalRepository(db),
		pages,
		roles,
		audit,
	)
	pageCache := newMemoryPageCache()
	pageSvc := NewPageContentService(pages, contentSvc, pageCache)

	first, err := pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey: "home", SectionKey: "hero", ContentZh: "v1", ContentType: "text",
	}, "editor")
	require.NoError(t, err)

	sections, err := pageSvc.GetPage(context.Background(), "home")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.Contains(t, pageCache.pages, "home")

	// Mutate the row behind the cache; the stale copy is still served.
	require.NoError(t, db.Model(&domain.PageContent{}).
		Where("id = ?", first.ID).Update("content_zh", "v2").Error)
	sections, err = pageSvc.GetPage(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, "v1", sections[0].ContentZh)

	// An admin edit invalidates the page and the next read is fresh.
	_, err = pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey: "home", SectionKey: "hero", ContentZh: "v3", ContentType: "text",
	}, "editor")
	require.NoError(t, err)
	sections, err = pageSvc.GetPage(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, "v3", sections[0].ContentZh)
}

func TestGetSection_NotFound(t *testing.T) {
	pageSvc, _, _ := newPageTestService(t)

	_, err := pageSvc.GetSection("home", "no-such-section")
	assert.ErrorIs(t, err, common.ErrContentNotFound)
}

func TestDeleteSection(t *testing.T) {
	pageSvc, _, pages := newPageTestService(t)

	content, err := pageSvc.Upsert(context.Background(), &domain.PageContentRequest{
		PageKey: "about", SectionKey: "intro", ContentZh: "x", ContentType: "text",
	}, "editor")
	require.NoError(t, err)

	require.NoError(t, pageSvc.Delete(context.Background(), content.ID))

	_, err = pages.FindByID(content.ID)
	assert.ErrorIs(t, err, common.ErrContentNotFound)
}
