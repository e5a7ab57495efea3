package service

import (
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/pkg/logger"
	"gorm.io/gorm"
)

// AuditEvent describes one auditable action
type AuditEvent struct {
	Action      string
	UserID      string
	Username    string
	Description string
	Details     domain.JSONMap
	Severity    string // INFO, WARNING
	ClientIP    string
}

// AuditLogger is the sink consumed by services that record audit
// events. Emission is fire-and-forget: a sink failure never fails the
// operation being recorded.
type AuditLogger interface {
	LogEvent(event AuditEvent)
}

// AuditService persists audit events and serves the admin log view
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditService
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// LogEvent writes an audit entry asynchronously
func (a *AuditService) LogEvent(event AuditEvent) {
	if a.db == nil {
		return
	}

	// Write async to avoid blocking the request
	go func() {
		if err := a.write(event); err != nil {
			logger.GetLogger().Error().Err(err).
				Str("action", event.Action).
				Str("user_id", event.UserID).
				Msg("audit log write failed")
		}
	}()
}

func (a *AuditService) write(event AuditEvent) error {
	if event.Severity == "" {
		event.Severity = domain.SeverityInfo
	}
	entry := &domain.AuditLog{
		Action:      event.Action,
		UserID:      event.UserID,
		Username:    event.Username,
		Description: event.Description,
		Details:     event.Details,
		Severity:    event.Severity,
		ClientIP:    event.ClientIP,
	}
	return a.db.Create(entry).Error
}

// List retrieves paginated audit logs with optional filters
func (a *AuditService) List(action, severity, userID string, page, limit int) ([]domain.AuditLog, int64, error) {
	var logs []domain.AuditLog
	var total int64

	query := a.db.Model(&domain.AuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&logs).Error

	return logs, total, err
}
