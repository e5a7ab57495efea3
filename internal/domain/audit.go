package domain

import "time"

// Audit severities
const (
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
)

// AuditLog records a sensitive operation. Writes are best-effort and
// never block or fail the operation being recorded.
type AuditLog struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Action      string    `gorm:"column:action;type:varchar(100);index" json:"action"` // CONTENT_VERSION_CREATED, CONTENT_APPROVAL_APPROVED, etc.
	UserID      string    `gorm:"column:user_id;type:varchar(64);index" json:"user_id"`
	Username    string    `gorm:"column:username;type:varchar(100)" json:"username"`
	Description string    `gorm:"column:description;type:varchar(500)" json:"description"`
	Details     JSONMap   `gorm:"column:details;type:json" json:"details,omitempty"`
	Severity    string    `gorm:"column:severity;type:varchar(20);index" json:"severity"` // INFO, WARNING
	ClientIP    string    `gorm:"column:client_ip;type:varchar(64)" json:"client_ip,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
