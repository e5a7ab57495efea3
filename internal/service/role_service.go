package service

import (
	"github.com/hengrui/sitecms-backend/internal/repository"
)

// Permission identifiers. These match the seeded permissions table.
const (
	PermContentRead    = "content:read"
	PermContentCreate  = "content:create"
	PermContentUpdate  = "content:update"
	PermContentDelete  = "content:delete"
	PermContentApprove = "content:approve"
	PermProductManage  = "product:manage"
	PermInquiryManage  = "inquiry:manage"
	PermUploadManage   = "upload:manage"
	PermAuditView      = "audit:view"
	PermUserManage     = "user:manage"
)

// RoleService answers permission questions about admin users
type RoleService interface {
	HasPermission(userID, permission string) (bool, error)
}

type roleService struct {
	users repository.UserRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(users repository.UserRepository) RoleService {
	return &roleService{users: users}
}

func (s *roleService) HasPermission(userID, permission string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.users.HasPermission(userID, permission)
}
