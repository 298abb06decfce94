// Package auth verifies credentials, issues redis-backed sessions and manages accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"debt_ledger/internal/domain"
	"debt_ledger/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

// UserStore is the persistence the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	FindUserByLogin(ctx context.Context, identifier string) (*domain.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uint, hash string, mustChange bool) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
	DeleteUser(ctx context.Context, id uint) error
	HasAdmin(ctx context.Context) (bool, error)
}

// Options configures a Service.
type Options struct {
	Secret   string // HMAC key for session tokens
	HashCost int    // bcrypt cost, bcrypt.DefaultCost when zero
}

// Service implements login, sessions, password changes and account management.
type Service struct {
	users    UserStore
	sessions *SessionStore
	secret   string
	hashCost int
	now      func() time.Time
}

// NewService wires the auth service.
func NewService(users UserStore, sessions *SessionStore, opts Options) *Service {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		users:    users,
		sessions: sessions,
		secret:   opts.Secret,
		hashCost: cost,
		now:      time.Now,
	}
}

// SessionTTL is the lifetime of sessions issued by Login.
func (s *Service) SessionTTL() time.Duration { return s.sessions.TTL() }

// LoginResult is a fresh session and the signed cookie value for it.
type LoginResult struct {
	User    *domain.User
	Session *Session
	Token   string
}

// Login verifies identifier (username or email) and password and opens a session.
func (s *Service) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	user, err := s.users.FindUserByLogin(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	sess, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := utils.GenerateSessionToken(sess.ID, user.ID, s.secret, s.sessions.TTL())
	if err != nil {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User logged in")
	return &LoginResult{User: user, Session: sess, Token: token}, nil
}

// Authenticate resolves a session cookie value. The user row is re-read on every call
// so admin and forced-password flags are never stale.
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, *domain.User, error) {
	claims, err := utils.ParseSessionToken(token, s.secret)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, nil, domain.ErrUnauthorized
	}
	user, err := s.users.GetUser(ctx, sess.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, nil, err
	}
	if sess.sync(user) {
		if err := s.sessions.Save(ctx, sess); err != nil {
			return nil, nil, err
		}
	}
	return sess, user, nil
}

// Logout destroys a session.
func (s *Service) Logout(ctx context.Context, sess *Session) error {
	return s.sessions.Delete(ctx, sess.ID)
}

// ChangePassword replaces the password after checking the current one and clears the
// forced-change flag.
func (s *Service) ChangePassword(ctx context.Context, sess *Session, currentPassword, newPassword string) error {
	user, err := s.users.GetUser(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if !CheckPassword(user.PasswordHash, currentPassword) {
		return domain.ErrInvalidCurrentPassword
	}
	return s.setOwnPassword(ctx, sess, user, newPassword)
}

// ForceChangePassword is the first-login variant that skips the current-password check.
// It is only available while a change is pending.
func (s *Service) ForceChangePassword(ctx context.Context, sess *Session, newPassword string) error {
	user, err := s.users.GetUser(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if !user.MustChangePassword {
		return fmt.Errorf("%w: no password change pending", domain.ErrForbidden)
	}
	return s.setOwnPassword(ctx, sess, user, newPassword)
}

func (s *Service) setOwnPassword(ctx context.Context, sess *Session, user *domain.User, newPassword string) error {
	hash, err := HashPassword(newPassword, s.hashCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, false); err != nil {
		return err
	}
	user.MustChangePassword = false
	sess.sync(user)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return err
	}
	logrus.WithField("user_id", user.ID).Info("Password changed")
	return nil
}

// ProfileUpdate carries the self-service profile fields.
type ProfileUpdate struct {
	FullName string
	Email    string
	Phone    string
	Address  string
}

// Profile returns the current user.
func (s *Service) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.GetUser(ctx, userID)
}

// UpdateProfile saves the caller's own profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validateEmail(upd.Email); err != nil {
		return nil, err
	}
	user.FullName = strings.TrimSpace(upd.FullName)
	user.Email = upd.Email
	user.Phone = strings.TrimSpace(upd.Phone)
	user.Address = strings.TrimSpace(upd.Address)
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin when no admin exists yet. The account must
// rotate its password before first real use.
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	has, err := s.users.HasAdmin(ctx)
	if err != nil || has {
		return false, err
	}
	hash, err := HashPassword(password, s.hashCost)
	if err != nil {
		return false, err
	}
	admin := &domain.User{
		Username:           username,
		Email:              email,
		PasswordHash:       hash,
		FullName:           "Administrator",
		IsAdmin:            true,
		MustChangePassword: true,
	}
	if err := s.users.CreateUser(ctx, admin); err != nil {
		return false, err
	}
	logrus.WithField("username", admin.Username).Warn("Created default admin account; password change required on first login")
	return true, nil
}

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	return nil
}
