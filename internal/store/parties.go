package store

import (
	"context"
	"fmt"
	"time"

	"debt_ledger/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile holds the columns shared by creditors and debtors.
type Profile struct {
	FullName string          `gorm:"size:191;not null;index"`
	Contact  string          `gorm:"size:191"`
	Gender   domain.Gender   `gorm:"size:16;not null"`
	Language domain.Language `gorm:"size:16;not null"`
}

// LineItem holds the columns shared by creditor and debtor items.
type LineItem struct {
	Reason       string            `gorm:"size:255;not null"`
	Amount       decimal.Decimal   `gorm:"type:decimal(15,2);not null;default:0"`
	DateIncurred *domain.Date      `gorm:"type:date"`
	DueDate      *domain.Date      `gorm:"type:date"`
	Status       domain.ItemStatus `gorm:"size:16;not null"`
	Notes        string            `gorm:"type:text"`
}

type creditorRow struct {
	ID        uint              `gorm:"primaryKey"`
	UserID    uint              `gorm:"index;not null"`
	User      *domain.User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Items     []creditorItemRow `gorm:"foreignKey:CreditorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Profile
}

func (creditorRow) TableName() string { return "creditors" }

type creditorItemRow struct {
	ID         uint `gorm:"primaryKey"`
	CreditorID uint `gorm:"index;not null"`
	LineItem
}

func (creditorItemRow) TableName() string { return "creditor_items" }

type debtorRow struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	User      *domain.User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Items     []debtorItemRow `gorm:"foreignKey:DebtorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Profile
}

func (debtorRow) TableName() string { return "debtors" }

type debtorItemRow struct {
	ID       uint `gorm:"primaryKey"`
	DebtorID uint `gorm:"index;not null"`
	LineItem
}

func (debtorItemRow) TableName() string { return "debtor_items" }

// partyRow adapts a creditor or debtor row to domain.Party.
type partyRow interface {
	party() domain.Party
	setParty(p domain.Party)
	newItems(parentID uint, items []domain.Item) any
	itemModel() any
	itemForeignKey() string
}

func (r *creditorRow) party() domain.Party {
	p := r.Profile.toParty(r.ID, r.UserID, domain.DirectionCreditor, r.CreatedAt, r.UpdatedAt)
	for _, it := range r.Items {
		p.Items = append(p.Items, it.LineItem.item(it.ID))
	}
	p.Recompute()
	return p
}

func (r *creditorRow) setParty(p domain.Party) {
	r.ID, r.UserID, r.Profile = p.ID, p.UserID, profileOf(p)
	r.Items = *r.newItems(p.ID, p.Items).(*[]creditorItemRow)
}

func (r *creditorRow) newItems(parentID uint, items []domain.Item) any {
	rows := make([]creditorItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, creditorItemRow{CreditorID: parentID, LineItem: lineItemOf(it)})
	}
	return &rows
}

func (r *creditorRow) itemModel() any         { return &creditorItemRow{} }
func (r *creditorRow) itemForeignKey() string { return "creditor_id" }

func (r *debtorRow) party() domain.Party {
	p := r.Profile.toParty(r.ID, r.UserID, domain.DirectionDebtor, r.CreatedAt, r.UpdatedAt)
	for _, it := range r.Items {
		p.Items = append(p.Items, it.LineItem.item(it.ID))
	}
	p.Recompute()
	return p
}

func (r *debtorRow) setParty(p domain.Party) {
	r.ID, r.UserID, r.Profile = p.ID, p.UserID, profileOf(p)
	r.Items = *r.newItems(p.ID, p.Items).(*[]debtorItemRow)
}

func (r *debtorRow) newItems(parentID uint, items []domain.Item) any {
	rows := make([]debtorItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, debtorItemRow{DebtorID: parentID, LineItem: lineItemOf(it)})
	}
	return &rows
}

func (r *debtorRow) itemModel() any         { return &debtorItemRow{} }
func (r *debtorRow) itemForeignKey() string { return "debtor_id" }

func (pr Profile) toParty(id, userID uint, dir domain.Direction, created, updated time.Time) domain.Party {
	return domain.Party{
		ID:        id,
		UserID:    userID,
		Direction: dir,
		FullName:  pr.FullName,
		Contact:   pr.Contact,
		Gender:    pr.Gender,
		Language:  pr.Language,
		Items:     []domain.Item{},
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func profileOf(p domain.Party) Profile {
	return Profile{FullName: p.FullName, Contact: p.Contact, Gender: p.Gender, Language: p.Language}
}

func (li LineItem) item(id uint) domain.Item {
	return domain.Item{
		ID:           id,
		Reason:       li.Reason,
		Amount:       li.Amount,
		DateIncurred: li.DateIncurred,
		DueDate:      li.DueDate,
		Status:       li.Status,
		Notes:        li.Notes,
	}
}

func lineItemOf(it domain.Item) LineItem {
	return LineItem{
		Reason:       it.Reason,
		Amount:       it.Amount,
		DateIncurred: it.DateIncurred,
		DueDate:      it.DueDate,
		Status:       it.Status,
		Notes:        it.Notes,
	}
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func listParties[R any, PR interface {
	*R
	partyRow
}](tx *gorm.DB, userID uint) ([]domain.Party, error) {
	var rows []R
	err := tx.Where("user_id = ?", userID).
		Preload("Items", orderItems).
		Order("LOWER(full_name) ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	out := make([]domain.Party, 0, len(rows))
	for i := range rows {
		out = append(out, PR(&rows[i]).party())
	}
	return out, nil
}

func getParty[R any, PR interface {
	*R
	partyRow
}](tx *gorm.DB, id, userID uint) (domain.Party, error) {
	var row R
	err := tx.Where("id = ? AND user_id = ?", id, userID).
		Preload("Items", orderItems).
		First(&row).Error
	if err != nil {
		return domain.Party{}, notFound(err, "record")
	}
	return PR(&row).party(), nil
}

func createParty[R any, PR interface {
	*R
	partyRow
}](tx *gorm.DB, p *domain.Party) error {
	var row R
	PR(&row).setParty(*p)
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	*p = PR(&row).party()
	return nil
}

// updateParty overwrites the parent columns and replaces the full item set.
func updateParty[R any, PR interface {
	*R
	partyRow
}](tx *gorm.DB, p *domain.Party) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		var existing R
		if err := tx.Select("id").Where("id = ? AND user_id = ?", p.ID, p.UserID).First(&existing).Error; err != nil {
			return notFound(err, "record")
		}
		res := tx.Model(new(R)).Where("id = ? AND user_id = ?", p.ID, p.UserID).Updates(map[string]any{
			"full_name": p.FullName,
			"contact":   p.Contact,
			"gender":    p.Gender,
			"language":  p.Language,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update record: %w", res.Error)
		}
		adapter := PR(&existing)
		if err := tx.Where(adapter.itemForeignKey()+" = ?", p.ID).Delete(adapter.itemModel()).Error; err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}
		if len(p.Items) > 0 {
			if err := tx.Create(adapter.newItems(p.ID, p.Items)).Error; err != nil {
				return fmt.Errorf("failed to insert items: %w", err)
			}
		}
		updated, err := getParty[R, PR](tx, p.ID, p.UserID)
		if err != nil {
			return err
		}
		*p = updated
		return nil
	})
}

func deleteParty[R any, PR interface {
	*R
	partyRow
}](tx *gorm.DB, id, userID uint) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		var row R
		if err := tx.Select("id").Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
			return notFound(err, "record")
		}
		adapter := PR(&row)
		if err := tx.Where(adapter.itemForeignKey()+" = ?", id).Delete(adapter.itemModel()).Error; err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}
		if err := tx.Where("id = ? AND user_id = ?", id, userID).Delete(new(R)).Error; err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		return nil
	})
}

// ListParties returns the caller's creditors or debtors ordered by name.
func (s *Store) ListParties(ctx context.Context, dir domain.Direction, userID uint) ([]domain.Party, error) {
	tx := s.db.WithContext(ctx)
	switch dir {
	case domain.DirectionCreditor:
		return listParties[creditorRow](tx, userID)
	case domain.DirectionDebtor:
		return listParties[debtorRow](tx, userID)
	}
	return nil, unknownDirection(dir)
}

// GetParty returns one record owned by userID.
func (s *Store) GetParty(ctx context.Context, dir domain.Direction, id, userID uint) (domain.Party, error) {
	tx := s.db.WithContext(ctx)
	switch dir {
	case domain.DirectionCreditor:
		return getParty[creditorRow](tx, id, userID)
	case domain.DirectionDebtor:
		return getParty[debtorRow](tx, id, userID)
	}
	return domain.Party{}, unknownDirection(dir)
}

// CreateParty inserts the parent row and its items in one transaction.
func (s *Store) CreateParty(ctx context.Context, p *domain.Party) error {
	tx := s.db.WithContext(ctx)
	switch p.Direction {
	case domain.DirectionCreditor:
		return createParty[creditorRow](tx, p)
	case domain.DirectionDebtor:
		return createParty[debtorRow](tx, p)
	}
	return unknownDirection(p.Direction)
}

// UpdateParty overwrites a record owned by p.UserID and replaces all of its items.
func (s *Store) UpdateParty(ctx context.Context, p *domain.Party) error {
	tx := s.db.WithContext(ctx)
	switch p.Direction {
	case domain.DirectionCreditor:
		return updateParty[creditorRow](tx, p)
	case domain.DirectionDebtor:
		return updateParty[debtorRow](tx, p)
	}
	return unknownDirection(p.Direction)
}

// DeleteParty removes a record owned by userID and its items.
func (s *Store) DeleteParty(ctx context.Context, dir domain.Direction, id, userID uint) error {
	tx := s.db.WithContext(ctx)
	switch dir {
	case domain.DirectionCreditor:
		return deleteParty[creditorRow](tx, id, userID)
	case domain.DirectionDebtor:
		return deleteParty[debtorRow](tx, id, userID)
	}
	return unknownDirection(dir)
}

func unknownDirection(dir domain.Direction) error {
	return fmt.Errorf("%w: unknown direction %q", domain.ErrValidation, dir)
}
