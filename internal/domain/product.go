package domain

import "time"

// Product is a catalog entry with trilingual marketing copy
type Product struct {
	ID            uint64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug          string  `gorm:"column:slug;type:varchar(150);uniqueIndex" json:"slug"`
	NameZh        string  `gorm:"column:name_zh;type:varchar(255)" json:"name_zh"`
	NameEn        string  `gorm:"column:name_en;type:varchar(255)" json:"name_en"`
	NameRu        string  `gorm:"column:name_ru;type:varchar(255)" json:"name_ru"`
	DescriptionZh string  `gorm:"column:description_zh;type:mediumtext" json:"description_zh,omitempty"`
	DescriptionEn string  `gorm:"column:description_en;type:mediumtext" json:"description_en,omitempty"`
	DescriptionRu string  `gorm:"column:description_ru;type:mediumtext" json:"description_ru,omitempty"`
	Category      string  `gorm:"column:category;type:varchar(100);index" json:"category,omitempty"`
	Specs         JSONMap `gorm:"column:specs;type:json" json:"specs,omitempty"`
	ImageURL      string  `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	GalleryURLs   JSONMap `gorm:"column:gallery_urls;type:json" json:"gallery_urls,omitempty"`

	// No default tag: GORM omits zero values for defaulted columns on
	// insert, which would turn an explicit false into true.
	IsActive  bool      `gorm:"column:is_active;index" json:"is_active"`
	SortOrder int       `gorm:"column:sort_order;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
