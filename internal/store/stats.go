package store

import (
	"context"
	"fmt"

	"debt_ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates pending amounts and record counts for one user.
// Sums are zero, never NULL, when no rows match.
func (s *Store) DashboardStats(ctx context.Context, userID uint) (domain.DashboardStats, error) {
	var st domain.DashboardStats
	var err error

	if st.TotalOwedToCreditors, err = s.pendingSum(ctx, "creditor_items", "creditors", "creditor_id", userID); err != nil {
		return st, err
	}
	if st.TotalOwedByDebtors, err = s.pendingSum(ctx, "debtor_items", "debtors", "debtor_id", userID); err != nil {
		return st, err
	}
	st.NetPosition = st.TotalOwedByDebtors.Sub(st.TotalOwedToCreditors)

	if err := s.db.WithContext(ctx).Model(&creditorRow{}).Where("user_id = ?", userID).Count(&st.CreditorCount).Error; err != nil {
		return st, fmt.Errorf("failed to count creditors: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&debtorRow{}).Where("user_id = ?", userID).Count(&st.DebtorCount).Error; err != nil {
		return st, fmt.Errorf("failed to count debtors: %w", err)
	}
	return st, nil
}

// pendingSum adds pending amounts in Go; SQL SUM over a NUMERIC column is a float on sqlite.
func (s *Store) pendingSum(ctx context.Context, itemTable, parentTable, fk string, userID uint) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := s.db.WithContext(ctx).
		Table(itemTable+" AS i").
		Joins("JOIN "+parentTable+" AS p ON p.id = i."+fk).
		Where("p.user_id = ? AND i.status = ?", userID, domain.StatusPending).
		Pluck("i.amount", &amounts).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s: %w", itemTable, err)
	}
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum, nil
}
