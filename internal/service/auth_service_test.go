package service

import (
	"testing"
	"time"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
	"github.com/hengrui/sitecms-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthTestService(t *testing.T) (AuthService, *recordingAuditSink, *gorm.DB) {
	t.Helper()
	db := setupRoleTestDB(t)
	seedRoleFixtures(t, db)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.User{}).
		Where("id = ?", "u_admin").
		Update("password_hash", string(hash)).Error)

	audit := &recordingAuditSink{}
	svc := NewAuthService(repository.NewUserRepository(db), jwt.NewManager("test-secret", time.Hour), audit)
	return svc, audit, db
}

func TestLogin_Success(t *testing.T) {
	svc, audit, _ := newAuthTestService(t)

	resp, err := svc.Login("admin", "correct-horse", "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u_admin", resp.UserID)
	assert.Contains(t, resp.Roles, "Administrator")

	events := audit.byAction("LOGIN_SUCCESS")
	require.Len(t, events, 1)
	assert.Equal(t, "10.0.0.1", events[0].ClientIP)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, audit, _ := newAuthTestService(t)

	_, err := svc.Login("admin", "wrong", "10.0.0.1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	events := audit.byAction("LOGIN_FAILED")
	require.Len(t, events, 1)
	assert.Equal(t, domain.SeverityWarning, events[0].Severity)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	_, err := svc.Login("nobody", "whatever", "10.0.0.1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, _, db := newAuthTestService(t)
	require.NoError(t, db.Model(&domain.User{}).
		Where("id = ?", "u_admin").
		Update("is_active", false).Error)

	_, err := svc.Login("admin", "correct-horse", "10.0.0.1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UpdatesLastLogin(t *testing.T) {
	svc, _, db := newAuthTestService(t)

	_, err := svc.Login("admin", "correct-horse", "10.0.0.1")
	require.NoError(t, err)

	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", "u_admin").Error)
	require.NotNil(t, user.LastLoginAt)
}

func TestGetProfile(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	user, roles, err := svc.GetProfile("u_editor")
	require.NoError(t, err)
	assert.Equal(t, "editor", user.Username)
	assert.Equal(t, []string{"Editor"}, roles)

	_, _, err = svc.GetProfile("u_ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}
