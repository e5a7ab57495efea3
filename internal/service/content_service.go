package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
)

// Audit actions emitted by the content service
const (
	AuditVersionCreated    = "CONTENT_VERSION_CREATED"
	AuditApprovalSubmitted = "CONTENT_APPROVAL_SUBMITTED"
	AuditApprovalApproved  = "CONTENT_APPROVAL_APPROVED"
	AuditApprovalRejected  = "CONTENT_APPROVAL_REJECTED"
)

// ContentService owns content version lineage and the approval
// lifecycle for editable page sections. Versions are immutable,
// sequentially numbered snapshots; approvals move pending -> approved
// or pending -> rejected and never back.
type ContentService interface {
	// CreateVersion snapshots body as the next version of the content
	// item. changeType defaults to "update" when empty.
	CreateVersion(contentID uint64, body *domain.VersionBody, actorID, description, changeType string) (*domain.ContentVersion, error)
	GetVersion(versionID string) (*domain.ContentVersion, error)
	ListVersions(contentID uint64) ([]*domain.ContentVersion, error)

	SubmitForApproval(contentID uint64, versionID, actorID string) (*domain.ContentApproval, error)
	Approve(approvalID, approverID, notes string) (*domain.ContentApproval, error)
	Reject(approvalID, approverID, notes string) (*domain.ContentApproval, error)
	GetApproval(approvalID string) (*domain.ContentApproval, error)
	ListApprovals(contentID uint64) ([]*domain.ContentApproval, error)
	ListPendingApprovals() ([]*domain.PendingApproval, error)

	// RestoreVersion appends a new version mirroring an old snapshot
	// and overwrites the live page content fields. History is never
	// rewritten.
	RestoreVersion(versionID, actorID string) (*domain.ContentVersion, error)
}

type contentService struct {
	versions  repository.ContentVersionRepository
	approvals repository.ContentApprovalRepository
	pages     repository.PageContentRepository
	roles     RoleService
	audit     AuditLogger
}

// NewContentService creates a new ContentService
func NewContentService(
	versions repository.ContentVersionRepository,
	approvals repository.ContentApprovalRepository,
	pages repository.PageContentRepository,
	roles RoleService,
	audit AuditLogger,
) ContentService {
	return &contentService{
		versions:  versions,
		approvals: approvals,
		pages:     pages,
		roles:     roles,
		audit:     audit,
	}
}

func (s *contentService) CreateVersion(contentID uint64, body *domain.VersionBody, actorID, description, changeType string) (*domain.ContentVersion, error) {
	if changeType == "" {
		changeType = domain.ChangeTypeUpdate
	}

	version := &domain.ContentVersion{
		ID:                "cv_" + uuid.New().String(),
		ContentID:         contentID,
		ContentZh:         body.ContentZh,
		ContentEn:         body.ContentEn,
		ContentRu:         body.ContentRu,
		ContentType:       body.ContentType,
		MetaData:          body.MetaData,
		ChangeDescription: description,
		ChangeType:        changeType,
		CreatedBy:         actorID,
	}
	if err := s.versions.Create(version); err != nil {
		return nil, err
	}

	s.audit.LogEvent(AuditEvent{
		Action:      AuditVersionCreated,
		UserID:      actorID,
		Username:    actorID,
		Description: fmt.Sprintf("created content version: %s (v%d)", s.sectionLabel(contentID), version.VersionNumber),
		Details: domain.JSONMap{
			"content_id":         contentID,
			"version_id":         version.ID,
			"version_number":     version.VersionNumber,
			"change_type":        changeType,
			"change_description": description,
		},
		Severity: domain.SeverityInfo,
	})

	// Read back the stored row so timestamps and defaults are populated
	return s.versions.FindByID(version.ID)
}

func (s *contentService) GetVersion(versionID string) (*domain.ContentVersion, error) {
	return s.versions.FindByID(versionID)
}

func (s *contentService) ListVersions(contentID uint64) ([]*domain.ContentVersion, error) {
	return s.versions.FindByContentID(contentID)
}

func (s *contentService) SubmitForApproval(contentID uint64, versionID, actorID string) (*domain.ContentApproval, error) {
	// Submission is gated behind the approver permission: this is a
	// single-role workflow where only reviewers queue content.
	if err := s.requireApprover(actorID); err != nil {
		return nil, err
	}

	approval := &domain.ContentApproval{
		ID:        "ca_" + uuid.New().String(),
		ContentID: contentID,
		VersionID: versionID,
		Status:    domain.ApprovalStatusPending,
	}
	if err := s.approvals.Create(approval); err != nil {
		return nil, err
	}

	s.audit.LogEvent(AuditEvent{
		Action:      AuditApprovalSubmitted,
		UserID:      actorID,
		Username:    actorID,
		Description: fmt.Sprintf("submitted content for approval: %s", s.sectionLabel(contentID)),
		Details: domain.JSONMap{
			"content_id":  contentID,
			"version_id":  versionID,
			"approval_id": approval.ID,
		},
		Severity: domain.SeverityInfo,
	})

	return s.approvals.FindByID(approval.ID)
}

func (s *contentService) Approve(approvalID, approverID, notes string) (*domain.ContentApproval, error) {
	return s.resolve(approvalID, approverID, notes, domain.ApprovalStatusApproved)
}

func (s *contentService) Reject(approvalID, approverID, notes string) (*domain.ContentApproval, error) {
	return s.resolve(approvalID, approverID, notes, domain.ApprovalStatusRejected)
}

func (s *contentService) resolve(approvalID, approverID, notes, status string) (*domain.ContentApproval, error) {
	if err := s.requireApprover(approverID); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.approvals.Resolve(approvalID, status, approverID, notes, now); err != nil {
		return nil, err
	}

	approval, err := s.approvals.FindByID(approvalID)
	if err != nil {
		return nil, err
	}

	action := AuditApprovalApproved
	severity := domain.SeverityInfo
	verb := "approved"
	if status == domain.ApprovalStatusRejected {
		action = AuditApprovalRejected
		severity = domain.SeverityWarning
		verb = "rejected"
	}
	s.audit.LogEvent(AuditEvent{
		Action:      action,
		UserID:      approverID,
		Username:    approverID,
		Description: fmt.Sprintf("%s content: %s", verb, s.sectionLabel(approval.ContentID)),
		Details: domain.JSONMap{
			"content_id":  approval.ContentID,
			"version_id":  approval.VersionID,
			"approval_id": approvalID,
			"notes":       notes,
		},
		Severity: severity,
	})

	return approval, nil
}

func (s *contentService) GetApproval(approvalID string) (*domain.ContentApproval, error) {
	return s.approvals.FindByID(approvalID)
}

func (s *contentService) ListApprovals(contentID uint64) ([]*domain.ContentApproval, error) {
	return s.approvals.FindByContentID(contentID)
}

func (s *contentService) ListPendingApprovals() ([]*domain.PendingApproval, error) {
	return s.approvals.FindPending()
}

func (s *contentService) RestoreVersion(versionID, actorID string) (*domain.ContentVersion, error) {
	source, err := s.versions.FindByID(versionID)
	if err != nil {
		return nil, err
	}

	body := &domain.VersionBody{
		ContentZh:   source.ContentZh,
		ContentEn:   source.ContentEn,
		ContentRu:   source.ContentRu,
		ContentType: source.ContentType,
		MetaData:    source.MetaData,
	}

	restored, err := s.CreateVersion(
		source.ContentID,
		body,
		actorID,
		fmt.Sprintf("restore to version %d", source.VersionNumber),
		domain.ChangeTypeRestore,
	)
	if err != nil {
		return nil, err
	}

	// Update the live projection so readers see the restored content
	// without resolving "latest version" at read time
	if err := s.pages.UpdateLiveFields(source.ContentID, body); err != nil {
		return nil, err
	}

	return restored, nil
}

func (s *contentService) requireApprover(userID string) error {
	ok, err := s.roles.HasPermission(userID, PermContentApprove)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrPermissionDenied
	}
	return nil
}

// sectionLabel resolves "page_key - section_key" for audit messages.
// Best effort: a missing parent must not fail the operation.
func (s *contentService) sectionLabel(contentID uint64) string {
	content, err := s.pages.FindByID(contentID)
	if err != nil {
		return fmt.Sprintf("content #%d", contentID)
	}
	return content.PageKey + " - " + content.SectionKey
}
