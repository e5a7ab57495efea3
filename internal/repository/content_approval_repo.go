package repository

import (
	"errors"
	"time"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"gorm.io/gorm"
)

// ContentApprovalRepository data access for content approval requests
type ContentApprovalRepository interface {
	Create(approval *domain.ContentApproval) error
	FindByID(id string) (*domain.ContentApproval, error)
	FindByContentID(contentID uint64) ([]*domain.ContentApproval, error)
	FindPending() ([]*domain.PendingApproval, error)
	// Resolve transitions a pending approval to approved or rejected.
	// Returns ErrApprovalNotFound if the id does not exist and
	// ErrApprovalResolved if its status is no longer pending.
	Resolve(id, status, approverID, notes string, approvedAt time.Time) error
}

type contentApprovalRepository struct {
	db *gorm.DB
}

// NewContentApprovalRepository creates a new ContentApprovalRepository
func NewContentApprovalRepository(db *gorm.DB) ContentApprovalRepository {
	return &contentApprovalRepository{db: db}
}

func (r *contentApprovalRepository) Create(approval *domain.ContentApproval) error {
	return r.db.Create(approval).Error
}

func (r *contentApprovalRepository) FindByID(id string) (*domain.ContentApproval, error) {
	var approval domain.ContentApproval
	err := r.db.Where("id = ?", id).First(&approval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrApprovalNotFound
		}
		return nil, err
	}
	return &approval, nil
}

func (r *contentApprovalRepository) FindByContentID(contentID uint64) ([]*domain.ContentApproval, error) {
	var approvals []*domain.ContentApproval
	err := r.db.Where("content_id = ?", contentID).
		Order("created_at DESC").
		Find(&approvals).Error
	return approvals, err
}

// FindPending joins every pending approval to its version snapshot and
// the approver's display name, forming the reviewer worklist.
func (r *contentApprovalRepository) FindPending() ([]*domain.PendingApproval, error) {
	var rows []*domain.PendingApproval
	err := r.db.Table("content_approvals AS ca").
		Select(`ca.id AS approval_id, ca.status, ca.approval_notes, ca.approved_at,
			ca.created_at AS submitted_at, u.username AS approver_name,
			cv.id AS version_id, cv.content_id, cv.version_number,
			cv.content_zh, cv.content_en, cv.content_ru, cv.content_type,
			cv.meta_data, cv.change_description, cv.change_type,
			cv.created_by, cv.created_at`).
		Joins("JOIN content_versions cv ON ca.version_id = cv.id").
		Joins("LEFT JOIN users u ON ca.approver_id = u.id").
		Where("ca.status = ?", domain.ApprovalStatusPending).
		Order("ca.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// Resolve guards the transition at the statement level: the UPDATE only
// matches while status is still pending, so concurrent approve/reject
// calls cannot both win.
func (r *contentApprovalRepository) Resolve(id, status, approverID, notes string, approvedAt time.Time) error {
	result := r.db.Model(&domain.ContentApproval{}).
		Where("id = ? AND status = ?", id, domain.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"status":         status,
			"approver_id":    approverID,
			"approval_notes": notes,
			"approved_at":    approvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either missing or already resolved; distinguish for the caller
		if _, err := r.FindByID(id); err != nil {
			return err
		}
		return common.ErrApprovalResolved
	}
	return nil
}
