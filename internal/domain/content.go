package domain

import "time"

// Change types recorded on a content version
const (
	ChangeTypeCreate  = "create"
	ChangeTypeUpdate  = "update"
	ChangeTypeDelete  = "delete"
	ChangeTypeRestore = "restore"
)

// Approval statuses. pending is the sole initial state;
// approved and rejected are terminal.
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// PageContent is one editable section of a public page, the live
// projection the website renders. Version history lives in
// content_versions; restore is the only versioning operation that
// writes back here.
type PageContent struct {
	ID          uint64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PageKey     string  `gorm:"column:page_key;type:varchar(100);uniqueIndex:uk_page_section,priority:1;index" json:"page_key"`
	SectionKey  string  `gorm:"column:section_key;type:varchar(100);uniqueIndex:uk_page_section,priority:2" json:"section_key"`
	ContentZh   string  `gorm:"column:content_zh;type:mediumtext" json:"content_zh"`
	ContentEn   string  `gorm:"column:content_en;type:mediumtext" json:"content_en"`
	ContentRu   string  `gorm:"column:content_ru;type:mediumtext" json:"content_ru"`
	ContentType string  `gorm:"column:content_type;type:varchar(20);default:text" json:"content_type"`
	MetaData    JSONMap `gorm:"column:meta_data;type:json" json:"meta_data,omitempty"`

	// SEO fields edited in the admin console
	MetaTitleZh       string `gorm:"column:meta_title_zh;type:varchar(255)" json:"meta_title_zh,omitempty"`
	MetaTitleEn       string `gorm:"column:meta_title_en;type:varchar(255)" json:"meta_title_en,omitempty"`
	MetaTitleRu       string `gorm:"column:meta_title_ru;type:varchar(255)" json:"meta_title_ru,omitempty"`
	MetaDescriptionZh string `gorm:"column:meta_description_zh;type:varchar(500)" json:"meta_description_zh,omitempty"`
	MetaDescriptionEn string `gorm:"column:meta_description_en;type:varchar(500)" json:"meta_description_en,omitempty"`
	MetaDescriptionRu string `gorm:"column:meta_description_ru;type:varchar(500)" json:"meta_description_ru,omitempty"`

	// No default tag: GORM omits zero values for defaulted columns on
	// insert, which would turn an explicit false into true.
	IsActive  bool      `gorm:"column:is_active;index" json:"is_active"`
	SortOrder int       `gorm:"column:sort_order;default:0;index" json:"sort_order"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PageContent) TableName() string { return "page_contents" }

// ContentVersion is an immutable snapshot of a page content section.
// version_number is strictly increasing per content item, starting at 1;
// the composite unique index is what makes concurrent allocation safe.
type ContentVersion struct {
	ID                string    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	ContentID         uint64    `gorm:"column:content_id;index;uniqueIndex:uk_content_version,priority:1" json:"content_id"`
	VersionNumber     int       `gorm:"column:version_number;uniqueIndex:uk_content_version,priority:2" json:"version_number"`
	ContentZh         string    `gorm:"column:content_zh;type:mediumtext" json:"content_zh"`
	ContentEn         string    `gorm:"column:content_en;type:mediumtext" json:"content_en"`
	ContentRu         string    `gorm:"column:content_ru;type:mediumtext" json:"content_ru"`
	ContentType       string    `gorm:"column:content_type;type:varchar(20);default:text" json:"content_type"`
	MetaData          JSONMap   `gorm:"column:meta_data;type:json" json:"meta_data,omitempty"`
	ChangeDescription string    `gorm:"column:change_description;type:varchar(500)" json:"change_description,omitempty"`
	ChangeType        string    `gorm:"column:change_type;type:varchar(20);default:update" json:"change_type"` // create, update, delete, restore
	CreatedBy         string    `gorm:"column:created_by;type:varchar(64);index" json:"created_by"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentVersion) TableName() string { return "content_versions" }

// ContentApproval is a review request attached to one specific version
type ContentApproval struct {
	ID            string     `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	ContentID     uint64     `gorm:"column:content_id;index" json:"content_id"`
	VersionID     string     `gorm:"column:version_id;type:varchar(64);index" json:"version_id"`
	Status        string     `gorm:"column:status;type:varchar(20);default:pending;index" json:"status"` // pending, approved, rejected
	ApproverID    string     `gorm:"column:approver_id;type:varchar(64);index" json:"approver_id,omitempty"`
	ApprovalNotes string     `gorm:"column:approval_notes;type:varchar(500)" json:"approval_notes,omitempty"`
	ApprovedAt    *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentApproval) TableName() string { return "content_approvals" }

// VersionBody carries the snapshot fields for a new content version
type VersionBody struct {
	ContentZh   string  `json:"content_zh"`
	ContentEn   string  `json:"content_en"`
	ContentRu   string  `json:"content_ru"`
	ContentType string  `json:"content_type" binding:"required"`
	MetaData    JSONMap `json:"meta_data,omitempty"`
}

// PendingApproval is the reviewer worklist row: a pending approval
// joined to its version snapshot and the approver's display name.
type PendingApproval struct {
	ApprovalID    string     `gorm:"column:approval_id" json:"approval_id"`
	Status        string     `gorm:"column:status" json:"status"`
	ApprovalNotes string     `gorm:"column:approval_notes" json:"approval_notes,omitempty"`
	ApprovedAt    *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	ApproverName  string     `gorm:"column:approver_name" json:"approver_name,omitempty"`
	SubmittedAt   time.Time  `gorm:"column:submitted_at" json:"submitted_at"`

	VersionID         string    `gorm:"column:version_id" json:"version_id"`
	ContentID         uint64    `gorm:"column:content_id" json:"content_id"`
	VersionNumber     int       `gorm:"column:version_number" json:"version_number"`
	ContentZh         string    `gorm:"column:content_zh" json:"content_zh"`
	ContentEn         string    `gorm:"column:content_en" json:"content_en"`
	ContentRu         string    `gorm:"column:content_ru" json:"content_ru"`
	ContentType       string    `gorm:"column:content_type" json:"content_type"`
	MetaData          JSONMap   `gorm:"column:meta_data" json:"meta_data,omitempty"`
	ChangeDescription string    `gorm:"column:change_description" json:"change_description,omitempty"`
	ChangeType        string    `gorm:"column:change_type" json:"change_type"`
	CreatedBy         string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
}
