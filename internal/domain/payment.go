package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType distinguishes money paid out from money received.
type PaymentType string

const (
	PaymentPaid     PaymentType = "paid"
	PaymentReceived PaymentType = "received"
)

// Payment Model. Amount is always a positive magnitude; Type carries the direction.
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"-"`
	User        *User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Type        PaymentType     `gorm:"size:16;not null" json:"type"`
	RelatedID   *uint           `json:"related_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate Date            `gorm:"type:date;not null;index" json:"payment_date"`
	Method      string          `gorm:"size:64" json:"method"`
	Reference   string          `gorm:"size:128" json:"reference"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DashboardStats aggregates pending amounts across the caller's ledger.
type DashboardStats struct {
	TotalOwedToCreditors decimal.Decimal `json:"total_owed_to_creditors"`
	TotalOwedByDebtors   decimal.Decimal `json:"total_owed_by_debtors"`
	NetPosition          decimal.Decimal `json:"net_position"`
	CreditorCount        int64           `json:"creditor_count"`
	DebtorCount          int64           `json:"debtor_count"`
}
