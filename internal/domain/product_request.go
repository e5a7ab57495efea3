package domain

// ProductRequest admin payload for creating or updating a product
type ProductRequest struct {
	Slug          string  `json:"slug" binding:"required,max=150"`
	NameZh        string  `json:"name_zh" binding:"required,max=255"`
	NameEn        string  `json:"name_en" binding:"max=255"`
	NameRu        string  `json:"name_ru" binding:"max=255"`
	DescriptionZh string  `json:"description_zh"`
	DescriptionEn string  `json:"description_en"`
	DescriptionRu string  `json:"description_ru"`
	Category      string  `json:"category" binding:"max=100"`
	Specs         JSONMap `json:"specs,omitempty"`
	ImageURL      string  `json:"image_url" binding:"max=500"`
	GalleryURLs   JSONMap `json:"gallery_urls,omitempty"`

	IsActive  *bool `json:"is_active"`
	SortOrder int   `json:"sort_order"`
}

// ToProduct maps the payload onto a model. An omitted is_active
// defaults to active.
func (r *ProductRequest) ToProduct() *Product {
	p := &Product{
		Slug:          r.Slug,
		NameZh:        r.NameZh,
		NameEn:        r.NameEn,
		NameRu:        r.NameRu,
		DescriptionZh: r.DescriptionZh,
		DescriptionEn: r.DescriptionEn,
		DescriptionRu: r.DescriptionRu,
		Category:      r.Category,
		Specs:         r.Specs,
		ImageURL:      r.ImageURL,
		GalleryURLs:   r.GalleryURLs,
		IsActive:      true,
		SortOrder:     r.SortOrder,
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return p
}
