package store

import (
	"context"
	"fmt"

	"debt_ledger/internal/domain"
)

// ListPayments returns the caller's payments, newest payment date first.
func (s *Store) ListPayments(ctx context.Context, userID uint) ([]domain.Payment, error) {
	payments := []domain.Payment{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("payment_date DESC").Order("created_at DESC").Order("id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// CreatePayment inserts a payment row as given.
func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// DeletePayment removes a payment owned by userID.
func (s *Store) DeletePayment(ctx context.Context, id, userID uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Payment{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: payment", domain.ErrNotFound)
	}
	return nil
}
