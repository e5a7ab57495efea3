package repository

import (
	"errors"
	"time"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository data access for admin accounts and their roles
type UserRepository interface {
	FindByID(id string) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	Create(user *domain.User) error
	UpdateLastLogin(id string) error
	FindRoleNames(userID string) ([]string, error)
	// HasPermission answers whether any of the user's roles grants
	// the given permission string.
	HasPermission(userID, permissionID string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) UpdateLastLogin(id string) error {
	now := time.Now()
	return r.db.Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login_at", &now).Error
}

func (r *userRepository) FindRoleNames(userID string) ([]string, error) {
	var names []string
	err := r.db.Table("roles AS r").
		Select("r.name").
		Joins("JOIN user_roles ur ON ur.role_id = r.id").
		Where("ur.user_id = ?", userID).
		Scan(&names).Error
	return names, err
}

func (r *userRepository) HasPermission(userID, permissionID string) (bool, error) {
	var count int64
	err := r.db.Table("role_permissions AS rp").
		Joins("JOIN user_roles ur ON ur.role_id = rp.role_id").
		Where("ur.user_id = ? AND rp.permission_id = ?", userID, permissionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
