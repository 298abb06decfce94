package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"debt_ledger/internal/domain"

	"gorm.io/gorm"
)

// CreateUser inserts a user, lower-casing username and email.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, 0, user.Username, user.Email); err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// FindUserByLogin looks a user up by username or email, case-insensitively.
func (s *Store) FindUserByLogin(ctx context.Context, identifier string) (*domain.User, error) {
	key := strings.ToLower(strings.TrimSpace(identifier))
	var user domain.User
	err := s.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", key, key).
		First(&user).Error
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// ListUsers returns one page of users ordered by username, plus the total count.
func (s *Store) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("username ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateUser saves the profile and role columns of an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, user.ID, user.Username, user.Email); err != nil {
			return err
		}
		res := tx.Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]any{
			"username":  user.Username,
			"email":     user.Email,
			"full_name": user.FullName,
			"phone":     user.Phone,
			"address":   user.Address,
			"is_admin":  user.IsAdmin,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update user: %w", res.Error)
		}
		return nil
	})
}

// UpdatePassword stores a new hash and sets the forced-change flag.
func (s *Store) UpdatePassword(ctx context.Context, id uint, hash string, mustChange bool) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash":        hash,
		"must_change_password": mustChange,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	return nil
}

// TouchLastLogin records a successful login.
func (s *Store) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("last_login", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// DeleteUser removes a user together with every ledger row they own.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.Select("id").First(&user, id).Error; err != nil {
			return notFound(err, "user")
		}
		creditorIDs := tx.Model(&creditorRow{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("creditor_id IN (?)", creditorIDs).Delete(&creditorItemRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete creditor items: %w", err)
		}
		debtorIDs := tx.Model(&debtorRow{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("debtor_id IN (?)", debtorIDs).Delete(&debtorItemRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete debtor items: %w", err)
		}
		for _, model := range []any{&creditorRow{}, &debtorRow{}, &domain.Payment{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete owned rows: %w", err)
			}
		}
		if err := tx.Delete(&domain.User{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

// HasAdmin reports whether at least one admin account exists.
func (s *Store) HasAdmin(ctx context.Context) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("is_admin = ?", true).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	return n > 0, nil
}

func ensureUnique(tx *gorm.DB, selfID uint, username, email string) error {
	var n int64
	q := tx.Model(&domain.User{}).Where("LOWER(username) = ?", username)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: username %q is taken", domain.ErrConflict, username)
	}
	q = tx.Model(&domain.User{}).Where("LOWER(email) = ?", email)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: email %q is taken", domain.ErrConflict, email)
	}
	return nil
}
