package domain

// PageContentRequest admin payload for creating or updating a page section
type PageContentRequest struct {
	PageKey     string  `json:"page_key" binding:"required,max=100"`
	SectionKey  string  `json:"section_key" binding:"required,max=100"`
	ContentZh   string  `json:"content_zh"`
	ContentEn   string  `json:"content_en"`
	ContentRu   string  `json:"content_ru"`
	ContentType string  `json:"content_type" binding:"required,max=20"`
	MetaData    JSONMap `json:"meta_data,omitempty"`

	MetaTitleZh       string `json:"meta_title_zh"`
	MetaTitleEn       string `json:"meta_title_en"`
	MetaTitleRu       string `json:"meta_title_ru"`
	MetaDescriptionZh string `json:"meta_description_zh"`
	MetaDescriptionEn string `json:"meta_description_en"`
	MetaDescriptionRu string `json:"meta_description_ru"`

	IsActive  *bool `json:"is_active"`
	SortOrder int   `json:"sort_order"`

	ChangeDescription string `json:"change_description" binding:"max=500"`
}

// VersionRequest records a version snapshot directly
type VersionRequest struct {
	ContentZh         string  `json:"content_zh"`
	ContentEn         string  `json:"content_en"`
	ContentRu         string  `json:"content_ru"`
	ContentType       string  `json:"content_type" binding:"required,max=20"`
	MetaData          JSONMap `json:"meta_data,omitempty"`
	ChangeDescription string  `json:"change_description" binding:"max=500"`
	ChangeType        string  `json:"change_type" binding:"omitempty,oneof=create update delete restore"`
}

// SubmitApprovalRequest queues a version for review
type SubmitApprovalRequest struct {
	ContentID uint64 `json:"content_id" binding:"required"`
	VersionID string `json:"version_id" binding:"required"`
}

// ResolveApprovalRequest approves or rejects a pending approval
type ResolveApprovalRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}
