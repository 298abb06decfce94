// Package ledger validates and applies creditor, debtor and payment operations for one owner.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"debt_ledger/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store is the persistence the ledger needs. Every call is scoped to an owner id.
type Store interface {
	ListParties(ctx context.Context, dir domain.Direction, userID uint) ([]domain.Party, error)
	GetParty(ctx context.Context, dir domain.Direction, id, userID uint) (domain.Party, error)
	CreateParty(ctx context.Context, p *domain.Party) error
	UpdateParty(ctx context.Context, p *domain.Party) error
	DeleteParty(ctx context.Context, dir domain.Direction, id, userID uint) error
	ListPayments(ctx context.Context, userID uint) ([]domain.Payment, error)
	CreatePayment(ctx context.Context, p *domain.Payment) error
	DeletePayment(ctx context.Context, id, userID uint) error
	DashboardStats(ctx context.Context, userID uint) (domain.DashboardStats, error)
}

// Service is the ledger use-case layer.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a ledger service over store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// PartyInput is the submitted form of a creditor or debtor.
type PartyInput struct {
	FullName string
	Contact  string
	Gender   domain.Gender
	Language domain.Language
	Items    []ItemInput
}

// ItemInput is one submitted line item. A nil Amount means 0 and an empty Status means pending.
type ItemInput struct {
	Reason       string
	Amount       *decimal.Decimal
	DateIncurred *domain.Date
	DueDate      *domain.Date
	Status       domain.ItemStatus
	Notes        string
}

// List returns every creditor or debtor owned by userID, ordered by name.
func (s *Service) List(ctx context.Context, dir domain.Direction, userID uint) ([]domain.Party, error) {
	return s.store.ListParties(ctx, dir, userID)
}

// Get returns one record owned by userID.
func (s *Service) Get(ctx context.Context, dir domain.Direction, id, userID uint) (domain.Party, error) {
	return s.store.GetParty(ctx, dir, id, userID)
}

// Create validates in and stores it with its items.
func (s *Service) Create(ctx context.Context, dir domain.Direction, userID uint, in PartyInput) (domain.Party, error) {
	p, err := buildParty(dir, userID, in)
	if err != nil {
		return domain.Party{}, err
	}
	if err := s.store.CreateParty(ctx, &p); err != nil {
		return domain.Party{}, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"direction": dir,
		"id":        p.ID,
		"items":     len(p.Items),
	}).Info("Party created")
	return p, nil
}

// Update overwrites a record owned by userID and replaces its full item set.
func (s *Service) Update(ctx context.Context, dir domain.Direction, id, userID uint, in PartyInput) (domain.Party, error) {
	p, err := buildParty(dir, userID, in)
	if err != nil {
		return domain.Party{}, err
	}
	p.ID = id
	if err := s.store.UpdateParty(ctx, &p); err != nil {
		return domain.Party{}, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"direction": dir,
		"id":        id,
		"items":     len(p.Items),
	}).Info("Party updated")
	return p, nil
}

// Delete removes a record owned by userID together with its items.
func (s *Service) Delete(ctx context.Context, dir domain.Direction, id, userID uint) error {
	if err := s.store.DeleteParty(ctx, dir, id, userID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "direction": dir, "id": id}).Info("Party deleted")
	return nil
}

func buildParty(dir domain.Direction, userID uint, in PartyInput) (domain.Party, error) {
	if !dir.Valid() {
		return domain.Party{}, fmt.Errorf("%w: unknown direction %q", domain.ErrValidation, dir)
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return domain.Party{}, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	if in.Gender != domain.GenderMale && in.Gender != domain.GenderFemale {
		return domain.Party{}, fmt.Errorf("%w: gender must be male or female", domain.ErrValidation)
	}
	if in.Language != domain.LanguageEnglish && in.Language != domain.LanguageFrench {
		return domain.Party{}, fmt.Errorf("%w: language must be english or french", domain.ErrValidation)
	}

	p := domain.Party{
		UserID:    userID,
		Direction: dir,
		FullName:  name,
		Contact:   strings.TrimSpace(in.Contact),
		Gender:    in.Gender,
		Language:  in.Language,
		Items:     make([]domain.Item, 0, len(in.Items)),
	}
	for i, raw := range in.Items {
		it, err := buildItem(raw)
		if err != nil {
			return domain.Party{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		p.Items = append(p.Items, it)
	}
	p.Recompute()
	return p, nil
}

func buildItem(in ItemInput) (domain.Item, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return domain.Item{}, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	amount := decimal.Zero
	if in.Amount != nil {
		amount = *in.Amount
	}
	if amount.IsNegative() {
		return domain.Item{}, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if err := checkAmount(amount); err != nil {
		return domain.Item{}, err
	}
	status := in.Status
	switch status {
	case "":
		status = domain.StatusPending
	case domain.StatusPending, domain.StatusPartial, domain.StatusPaid:
	default:
		return domain.Item{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	return domain.Item{
		Reason:       reason,
		Amount:       amount,
		DateIncurred: optionalDate(in.DateIncurred),
		DueDate:      optionalDate(in.DueDate),
		Status:       status,
		Notes:        strings.TrimSpace(in.Notes),
	}, nil
}

func optionalDate(d *domain.Date) *domain.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}
