package service

import (
	"context"
	"testing"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
	"github.com/hengrui/sitecms-backend/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newProductTestService(t *testing.T) ProductService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	require.NoError(t, db.AutoMigrate(&domain.Product{}))
	return NewProductService(repository.NewProductRepository(db), cache.NewService(nil))
}

func seedProducts(t *testing.T, svc ProductService) {
	t.Helper()
	products := []*domain.Product{
		{Slug: "wpc-panel-140", NameZh: "木塑墙板140", Category: "wall-panels", IsActive: true, Specs: domain.JSONMap{"width_mm": float64(140)}},
		{Slug: "wpc-panel-160", NameZh: "木塑墙板160", Category: "wall-panels", IsActive: true},
		{Slug: "spc-floor-4mm", NameZh: "石塑地板4mm", Category: "flooring", IsActive: true},
		{Slug: "discontinued", NameZh: "停产品", Category: "flooring", IsActive: false},
	}
	for _, p := range products {
		require.NoError(t, svc.Create(context.Background(), p))
	}
}

func TestListPublic_FiltersInactiveAndCategory(t *testing.T) {
	svc := newProductTestService(t)
	seedProducts(t, svc)

	products, meta, err := svc.ListPublic(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, products, 3, "inactive products are hidden")
	assert.EqualValues(t, 3, meta.Total)

	products, meta, err = svc.ListPublic(context.Background(), "flooring", 1, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "spc-floor-4mm", products[0].Slug)
	assert.EqualValues(t, 1, meta.Total)
}

func TestProductCreate_InactivePersists(t *testing.T) {
	svc := newProductTestService(t)

	require.NoError(t, svc.Create(context.Background(), &domain.Product{
		Slug: "draft-panel", NameZh: "草稿", Category: "wall-panels", IsActive: false,
	}))

	products, _, err := svc.ListAll(1, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.False(t, products[0].IsActive, "explicit inactive must survive the insert")

	public, meta, err := svc.ListPublic(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, public)
	assert.EqualValues(t, 0, meta.Total)
}

func TestProductRequest_ActiveDefaults(t *testing.T) {
	p := (&domain.ProductRequest{Slug: "p", NameZh: "n"}).ToProduct()
	assert.True(t, p.IsActive, "omitted is_active defaults to active")

	inactive := false
	p = (&domain.ProductRequest{Slug: "p", NameZh: "n", IsActive: &inactive}).ToProduct()
	assert.False(t, p.IsActive)
}

func TestGetBySlug(t *testing.T) {
	svc := newProductTestService(t)
	seedProducts(t, svc)

	product, err := svc.GetBySlug("wpc-panel-140")
	require.NoError(t, err)
	assert.Equal(t, domain.JSONMap{"width_mm": float64(140)}, product.Specs)

	_, err = svc.GetBySlug("discontinued")
	assert.ErrorIs(t, err, common.ErrProductNotFound, "inactive slugs are not public")

	_, err = svc.GetBySlug("missing")
	assert.ErrorIs(t, err, common.ErrProductNotFound)
}

func TestProductUpdate_NotFound(t *testing.T) {
	svc := newProductTestService(t)

	err := svc.Update(context.Background(), &domain.Product{ID: 42, Slug: "x"})
	assert.ErrorIs(t, err, common.ErrProductNotFound)
}

func TestProductDelete(t *testing.T) {
	svc := newProductTestService(t)
	seedProducts(t, svc)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), common.ErrProductNotFound)

	products, _, err := svc.ListAll(1, 10)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}
