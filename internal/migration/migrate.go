package migration

import (
	"github.com/google/uuid"
	"github.com/hengrui/sitecms-backend/internal/config"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables and seeds the role and
// permission catalog if empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.Permission{},
		&domain.UserRole{},
		&domain.RolePermission{},
		&domain.PageContent{},
		&domain.ContentVersion{},
		&domain.ContentApproval{},
		&domain.Product{},
		&domain.Inquiry{},
		&domain.AuditLog{},
	); err != nil {
		return err
	}

	if err := addForeignKeys(db); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.Permission{}).Count(&count)
	if count == 0 {
		if err := seedRBAC(db); err != nil {
			return err
		}
	}

	return nil
}

// addForeignKeys wires referential actions AutoMigrate does not cover:
// version and approval history cascades away with its content item, but
// survives deletion of the acting user account (approver/creator go
// NULL). MySQL only; the sqlite test driver skips this.
func addForeignKeys(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}

	constraints := []struct{ name, stmt string }{
		{"fk_versions_content", `ALTER TABLE content_versions
			ADD CONSTRAINT fk_versions_content FOREIGN KEY (content_id)
			REFERENCES page_contents (id) ON DELETE CASCADE`},
		{"fk_approvals_content", `ALTER TABLE content_approvals
			ADD CONSTRAINT fk_approvals_content FOREIGN KEY (content_id)
			REFERENCES page_contents (id) ON DELETE CASCADE`},
		{"fk_approvals_version", `ALTER TABLE content_approvals
			ADD CONSTRAINT fk_approvals_version FOREIGN KEY (version_id)
			REFERENCES content_versions (id) ON DELETE CASCADE`},
		{"fk_approvals_approver", `ALTER TABLE content_approvals
			ADD CONSTRAINT fk_approvals_approver FOREIGN KEY (approver_id)
			REFERENCES users (id) ON DELETE SET NULL`},
		{"fk_versions_creator", `ALTER TABLE content_versions
			ADD CONSTRAINT fk_versions_creator FOREIGN KEY (created_by)
			REFERENCES users (id) ON DELETE SET NULL`},
	}

	for _, c := range constraints {
		var count int64
		db.Raw(`SELECT COUNT(*) FROM information_schema.TABLE_CONSTRAINTS
			WHERE CONSTRAINT_SCHEMA = DATABASE() AND CONSTRAINT_NAME = ?`, c.name).Scan(&count)
		if count > 0 {
			continue
		}
		if err := db.Exec(c.stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedRBAC inserts the permission catalog and the two built-in roles.
// The editor role deliberately lacks content:approve: only admins
// resolve the approval queue.
func seedRBAC(db *gorm.DB) error {
	permissions := []domain.Permission{
		{ID: "content:read", Name: "View content", Category: "content", IsSystem: true},
		{ID: "content:create", Name: "Create content", Category: "content", IsSystem: true},
		{ID: "content:update", Name: "Edit content", Category: "content", IsSystem: true},
		{ID: "content:delete", Name: "Delete content", Category: "content", IsSystem: true},
		{ID: "content:approve", Name: "Approve content", Category: "content", IsSystem: true},
		{ID: "product:manage", Name: "Manage products", Category: "catalog", IsSystem: true},
		{ID: "inquiry:manage", Name: "Manage inquiries", Category: "inbox", IsSystem: true},
		{ID: "upload:manage", Name: "Upload media", Category: "media", IsSystem: true},
		{ID: "audit:view", Name: "View audit log", Category: "system", IsSystem: true},
		{ID: "user:manage", Name: "Manage users", Category: "system", IsSystem: true},
	}

	roles := []domain.Role{
		{ID: "admin", Name: "Administrator", Description: "Full access including content approval", IsSystem: true},
		{ID: "editor", Name: "Editor", Description: "Edits content and products, cannot approve", IsSystem: true},
	}

	grants := map[string][]string{
		"admin": {
			"content:read", "content:create", "content:update", "content:delete",
			"content:approve", "product:manage", "inquiry:manage", "upload:manage",
			"audit:view", "user:manage",
		},
		"editor": {
			"content:read", "content:create", "content:update",
			"product:manage", "upload:manage",
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&permissions).Error; err != nil {
			return err
		}
		if err := tx.Create(&roles).Error; err != nil {
			return err
		}
		for roleID, permIDs := range grants {
			for _, permID := range permIDs {
				if err := tx.Create(&domain.RolePermission{RoleID: roleID, PermissionID: permID}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SeedAdminUser creates a bootstrap admin account when configured and
// no user with that username exists yet.
func SeedAdminUser(db *gorm.DB, cfg config.AdminSeedConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	var count int64
	db.Model(&domain.User{}).Where("username = ?", cfg.Username).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:           "u_" + uuid.New().String(),
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		DisplayName:  cfg.Username,
		IsActive:     true,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&domain.UserRole{UserID: user.ID, RoleID: "admin"}).Error; err != nil {
			return err
		}
		logger.GetLogger().Info().Str("username", cfg.Username).Msg("seeded admin user")
		return nil
	})
}
