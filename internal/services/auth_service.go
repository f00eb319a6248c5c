// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/metrics"
	"github.com/juggernaut03/kalakritBackend/internal/models"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

type AuthService struct {
	users UserRepository
	jwt   *utils.JWTManager
	now   Clock
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

func NewAuthService(users UserRepository, jwt *utils.JWTManager, now Clock) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
		now:   now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, registerValidationError(err)
	}

	// Check if user exists
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.New(apperrors.ErrConflict, i18n.KeyAuthUserExists)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Name:   strings.TrimSpace(req.Name),
		Email:  req.Email,
		Role:   models.Role(req.Role),
		Status: models.UserStatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	user.BeforeInsert(s.now())

	// The unique email index still rejects a concurrent duplicate.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.New(apperrors.ErrConflict, i18n.KeyAuthUserExists)
		}
		return nil, err
	}

	metrics.UsersRegistered.WithLabelValues(string(user.Role)).Inc()
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID.Hex(),
		"role":    user.Role,
	}).Info("User registered")

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(i18n.KeyAuthUserNotFound)
		}
		return nil, err
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.New(apperrors.ErrAuthentication, i18n.KeyAuthInvalidPassword)
	}

	return s.issue(user)
}

// Me returns the account behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(i18n.KeyUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateJWT(user.ID.Hex(), string(user.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Public(),
	}, nil
}

// registerValidationError keeps the messages clients already show:
// missing fields first, then a bad role, then any other invalid field.
func registerValidationError(err error) error {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return err
	}

	details, _ := appErr.Details.([]utils.ValidationError)
	key, args := i18n.KeyInvalidRequest, []interface{}{"input"}
	for _, d := range details {
		switch d.Tag {
		case "required", "notblank":
			return apperrors.Validation(i18n.KeyAuthMissingFields).WithDetails(details)
		case "role":
			key, args = i18n.KeyAuthInvalidRole, nil
		default:
			if key != i18n.KeyAuthInvalidRole {
				key, args = i18n.KeyInvalidRequest, []interface{}{d.Field}
			}
		}
	}

	return apperrors.Validation(key, args...).WithDetails(details)
}
