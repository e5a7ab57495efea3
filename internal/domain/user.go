package domain

import "time"

// User is an admin console account
type User struct {
	ID           string     `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Username     string     `gorm:"column:username;type:varchar(100);uniqueIndex" json:"username"`
	Email        string     `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255)" json:"-"`
	DisplayName  string     `gorm:"column:display_name;type:varchar(100)" json:"display_name,omitempty"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Role groups permissions (e.g. admin, editor, approver)
type Role struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Description string    `gorm:"column:description;type:varchar(255)" json:"description,omitempty"`
	IsSystem    bool      `gorm:"column:is_system;default:false" json:"is_system"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

// Permission is an addressable capability string such as "content:approve"
type Permission struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(100)" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Description string    `gorm:"column:description;type:varchar(255)" json:"description,omitempty"`
	Category    string    `gorm:"column:category;type:varchar(50)" json:"category,omitempty"`
	IsSystem    bool      `gorm:"column:is_system;default:false" json:"is_system"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Permission) TableName() string { return "permissions" }

// UserRole assigns a role to a user
type UserRole struct {
	UserID    string    `gorm:"column:user_id;type:varchar(64);primaryKey" json:"user_id"`
	RoleID    string    `gorm:"column:role_id;type:varchar(64);primaryKey" json:"role_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string { return "user_roles" }

// RolePermission grants a permission to a role
type RolePermission struct {
	RoleID       string    `gorm:"column:role_id;type:varchar(64);primaryKey" json:"role_id"`
	PermissionID string    `gorm:"column:permission_id;type:varchar(100);primaryKey" json:"permission_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RolePermission) TableName() string { return "role_permissions" }

// LoginRequest admin login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and basic profile
type LoginResponse struct {
	Token    string   `json:"token"`
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}
