package repository

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"gorm.io/gorm"
)

// createRetries bounds the duplicate-key retry loop in Create.
// One concurrent competitor per attempt is the realistic worst case.
const createRetries = 3

// ContentVersionRepository data access for content version history
type ContentVersionRepository interface {
	// Create allocates the next version_number for the record's content
	// item and inserts it. Safe under concurrent writers.
	Create(version *domain.ContentVersion) error
	FindByID(id string) (*domain.ContentVersion, error)
	FindByContentID(contentID uint64) ([]*domain.ContentVersion, error)
}

type contentVersionRepository struct {
	db *gorm.DB
}

// NewContentVersionRepository creates a new ContentVersionRepository
func NewContentVersionRepository(db *gorm.DB) ContentVersionRepository {
	return &contentVersionRepository{db: db}
}

// Create reads MAX(version_number) and inserts max+1 inside a
// transaction. The unique index on (content_id, version_number) catches
// the read-then-insert race; on a duplicate-key conflict the allocation
// is retried with a fresh number.
func (r *contentVersionRepository) Create(version *domain.ContentVersion) error {
	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		err = r.db.Transaction(func(tx *gorm.DB) error {
			var maxVersion *int
			if err := tx.Model(&domain.ContentVersion{}).
				Where("content_id = ?", version.ContentID).
				Select("MAX(version_number)").
				Scan(&maxVersion).Error; err != nil {
				return err
			}
			version.VersionNumber = 1
			if maxVersion != nil {
				version.VersionNumber = *maxVersion + 1
			}
			return tx.Create(version).Error
		})
		if err == nil || !isDuplicateKey(err) {
			return err
		}
	}
	return err
}

func (r *contentVersionRepository) FindByID(id string) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.Where("id = ?", id).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, err
	}
	return &version, nil
}

func (r *contentVersionRepository) FindByContentID(contentID uint64) ([]*domain.ContentVersion, error) {
	var versions []*domain.ContentVersion
	err := r.db.Where("content_id = ?", contentID).
		Order("version_number DESC").
		Find(&versions).Error
	return versions, err
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// Covers GORM's translated error, the raw MySQL 1062 error, and the
// sqlite message used by the test driver.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
