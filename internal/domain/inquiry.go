package domain

import "time"

// Inquiry statuses
const (
	InquiryStatusNew     = "new"
	InquiryStatusRead    = "read"
	InquiryStatusClosed  = "closed"
	InquiryStatusSpammed = "spam"
)

// Inquiry is a contact-form submission from the public site
type Inquiry struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone     string    `gorm:"column:phone;type:varchar(50)" json:"phone,omitempty"`
	Company   string    `gorm:"column:company;type:varchar(255)" json:"company,omitempty"`
	Subject   string    `gorm:"column:subject;type:varchar(255)" json:"subject,omitempty"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	Locale    string    `gorm:"column:locale;type:varchar(10)" json:"locale,omitempty"` // zh, en, ru
	Status    string    `gorm:"column:status;type:varchar(20);default:new;index" json:"status"`
	ClientIP  string    `gorm:"column:client_ip;type:varchar(64)" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Inquiry) TableName() string { return "inquiries" }

// InquiryRequest public contact-form payload
type InquiryRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Company string `json:"company" binding:"max=255"`
	Subject string `json:"subject" binding:"max=255"`
	Message string `json:"message" binding:"required,max=5000"`
	Locale  string `json:"locale" binding:"omitempty,oneof=zh en ru"`
}
