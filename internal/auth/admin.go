package auth

import (
	"context"
	"fmt"
	"strings"

	"debt_ledger/internal/domain"

	"github.com/sirupsen/logrus"
)

// NewUser is an account created by an admin.
type NewUser struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	Address  string
	IsAdmin  bool
}

// UserUpdate is an admin edit of an existing account.
type UserUpdate struct {
	Username string
	Email    string
	FullName string
	Phone    string
	Address  string
	IsAdmin  bool
}

// ListUsers returns one page of accounts and the total count.
func (s *Service) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	return s.users.ListUsers(ctx, (page-1)*pageSize, pageSize)
}

// CreateUser adds an account that must change its password on first login.
func (s *Service) CreateUser(ctx context.Context, nu NewUser) (*domain.User, error) {
	if strings.TrimSpace(nu.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if err := validateEmail(nu.Email); err != nil {
		return nil, err
	}
	hash, err := HashPassword(nu.Password, s.hashCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:           nu.Username,
		Email:              nu.Email,
		PasswordHash:       hash,
		FullName:           strings.TrimSpace(nu.FullName),
		Phone:              strings.TrimSpace(nu.Phone),
		Address:            strings.TrimSpace(nu.Address),
		IsAdmin:            nu.IsAdmin,
		MustChangePassword: true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
	}).Info("User created")
	return user, nil
}

// UpdateUser edits an account's identity, contact and role fields.
func (s *Service) UpdateUser(ctx context.Context, id uint, upd UserUpdate) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(upd.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if err := validateEmail(upd.Email); err != nil {
		return nil, err
	}
	user.Username = upd.Username
	user.Email = upd.Email
	user.FullName = strings.TrimSpace(upd.FullName)
	user.Phone = strings.TrimSpace(upd.Phone)
	user.Address = strings.TrimSpace(upd.Address)
	user.IsAdmin = upd.IsAdmin
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account and everything it owns. Admins cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrForbidden)
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": id, "actor_id": actorID}).Info("User deleted")
	return nil
}

// ResetPassword sets a new password chosen by an admin and forces the user to rotate it.
func (s *Service) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	hash, err := HashPassword(newPassword, s.hashCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash, true); err != nil {
		return err
	}
	logrus.WithField("user_id", id).Info("Password reset by admin")
	return nil
}
