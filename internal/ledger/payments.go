package ledger

import (
	"context"
	"fmt"
	"strings"

	"debt_ledger/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PaymentInput is a submitted payment. Recording one never touches item statuses.
type PaymentInput struct {
	Type        domain.PaymentType
	RelatedID   *uint
	Amount      decimal.Decimal
	PaymentDate domain.Date
	Method      string
	Reference   string
	Notes       string
}

// ListPayments returns the caller's payments, newest first.
func (s *Service) ListPayments(ctx context.Context, userID uint) ([]domain.Payment, error) {
	return s.store.ListPayments(ctx, userID)
}

// RecordPayment stores a payment as given. Both types carry a positive amount.
func (s *Service) RecordPayment(ctx context.Context, userID uint, in PaymentInput) (domain.Payment, error) {
	if in.Type != domain.PaymentPaid && in.Type != domain.PaymentReceived {
		return domain.Payment{}, fmt.Errorf("%w: type must be paid or received", domain.ErrValidation)
	}
	if !in.Amount.IsPositive() {
		return domain.Payment{}, fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	if err := checkAmount(in.Amount); err != nil {
		return domain.Payment{}, err
	}
	if in.PaymentDate.IsZero() {
		return domain.Payment{}, fmt.Errorf("%w: payment date is required", domain.ErrValidation)
	}
	p := domain.Payment{
		UserID:      userID,
		Type:        in.Type,
		RelatedID:   in.RelatedID,
		Amount:      in.Amount,
		PaymentDate: in.PaymentDate,
		Method:      strings.TrimSpace(in.Method),
		Reference:   strings.TrimSpace(in.Reference),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.store.CreatePayment(ctx, &p); err != nil {
		return domain.Payment{}, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"payment_id": p.ID,
		"type":       p.Type,
		"amount":     p.Amount.StringFixed(2),
	}).Info("Payment recorded")
	return p, nil
}

// DeletePayment removes a payment owned by userID.
func (s *Service) DeletePayment(ctx context.Context, id, userID uint) error {
	if err := s.store.DeletePayment(ctx, id, userID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "payment_id": id}).Info("Payment deleted")
	return nil
}

// DashboardStats returns pending totals, net position and record counts.
func (s *Service) DashboardStats(ctx context.Context, userID uint) (domain.DashboardStats, error) {
	return s.store.DashboardStats(ctx, userID)
}
