package service

import (
	"errors"
	"fmt"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
	"github.com/hengrui/sitecms-backend/pkg/jwt"
	"github.com/hengrui/sitecms-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthService admin console authentication
type AuthService interface {
	Login(username, password, clientIP string) (*domain.LoginResponse, error)
	GetProfile(userID string) (*domain.User, []string, error)
}

type authService struct {
	users repository.UserRepository
	jwt   *jwt.Manager
	audit AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, jwtManager *jwt.Manager, audit AuditLogger) AuthService {
	return &authService{users: users, jwt: jwtManager, audit: audit}
}

func (s *authService) Login(username, password, clientIP string) (*domain.LoginResponse, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			s.logLogin("", username, clientIP, false)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.logLogin(user.ID, username, clientIP, false)
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logLogin(user.ID, username, clientIP, false)
		return nil, common.ErrInvalidCredentials
	}

	roles, err := s.users.FindRoleNames(user.ID)
	if err != nil {
		return nil, err
	}

	role := ""
	if len(roles) > 0 {
		role = roles[0]
	}
	token, err := s.jwt.GenerateToken(user.ID, user.Username, role)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		logger.GetLogger().Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login time")
	}

	s.logLogin(user.ID, username, clientIP, true)

	return &domain.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Roles:    roles,
	}, nil
}

func (s *authService) GetProfile(userID string) (*domain.User, []string, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, nil, err
	}
	roles, err := s.users.FindRoleNames(userID)
	if err != nil {
		return nil, nil, err
	}
	return user, roles, nil
}

func (s *authService) logLogin(userID, username, clientIP string, success bool) {
	action := "LOGIN_SUCCESS"
	severity := domain.SeverityInfo
	desc := fmt.Sprintf("user %s logged in", username)
	if !success {
		action = "LOGIN_FAILED"
		severity = domain.SeverityWarning
		desc = fmt.Sprintf("failed login attempt for %s", username)
	}
	s.audit.LogEvent(AuditEvent{
		Action:      action,
		UserID:      userID,
		Username:    username,
		Description: desc,
		Severity:    severity,
		ClientIP:    clientIP,
	})
}
