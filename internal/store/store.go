// Package store persists users, creditors, debtors and payments with gorm.
// Every query touching ledger data filters by the owning user id.
package store

import (
	"context"
	"errors"
	"fmt"

	"debt_ledger/internal/domain"

	"gorm.io/gorm"
)

// Store wraps the pooled gorm handle.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an opened database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&domain.User{},
		&creditorRow{},
		&creditorItemRow{},
		&debtorRow{},
		&debtorItemRow{},
		&domain.Payment{},
	}
}

// Ping checks that a pooled connection can reach the database.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// notFound converts gorm's missing-row error into the domain error.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
