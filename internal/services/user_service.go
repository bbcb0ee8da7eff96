package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
	"github.com/Yns1000/haybank/internal/store"
)

// LockoutPolicy bounds consecutive failed logins.
type LockoutPolicy struct {
	MaxAttempts int
	Period      time.Duration
}

// userService handles user-related business logic.
type userService struct {
	store   *store.Gateway
	lockout LockoutPolicy
	now     func() time.Time
}

// NewUserService creates a new UserServicer.
func NewUserService(gw *store.Gateway, lockout LockoutPolicy) UserServicer {
	return &userService{store: gw, lockout: lockout, now: time.Now}
}

// CreateUser registers a new user
func (s *userService) CreateUser(ctx context.Context, login, email, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrMissingFields, "Missing required fields: login, password")
	}

	exists, err := s.store.Exists(ctx, &models.User{}, map[string]interface{}{"login": login}, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateLogin
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Login:    login,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hashedPassword),
	}
	if _, err := s.store.Insert(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ErrDuplicateLogin
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.store.First(ctx, &user, id, apperrors.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByLogin retrieves a user by login
func (s *userService) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := s.store.DB(ctx).Where("login = ?", strings.TrimSpace(login)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, store.Translate(err)
	}
	return &user, nil
}

// AttemptLogin checks the password of login. Consecutive failures lock the
// user out for the lockout period; a success resets the counter.
func (s *userService) AttemptLogin(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return nil, apperrors.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		updates := map[string]interface{}{"failed_login_attempts": user.FailedLoginAttempts + 1}
		if s.lockout.MaxAttempts > 0 && user.FailedLoginAttempts+1 >= s.lockout.MaxAttempts {
			lockedUntil := now.Add(s.lockout.Period)
			updates["failed_login_attempts"] = 0
			updates["locked_until"] = &lockedUntil
		}
		if _, err := s.store.Update(ctx, &models.User{}, user.ID, updates); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	updates := map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"last_login_at":         &now,
	}
	if _, err := s.store.Update(ctx, &models.User{}, user.ID, updates); err != nil {
		return nil, err
	}
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	return user, nil
}

// ListUsers returns every user ordered by id.
func (s *userService) ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.Page[models.User], error) {
	result, err := pagination.Find[models.User](s.store.DB(ctx).Model(&models.User{}), page, "id")
	if err != nil {
		return nil, store.Translate(err)
	}
	return result, nil
}

// DeleteUser removes a user that no longer owns any account.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	owned, err := s.store.Count(ctx, &models.Account{}, "user_id = ?", id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return apperrors.WithMessage(apperrors.ErrConflict, "User still owns accounts")
	}
	_, err = s.store.Delete(ctx, &models.User{}, id)
	return err
}
