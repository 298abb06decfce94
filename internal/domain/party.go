package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells which way the obligation runs.
type Direction string

const (
	DirectionCreditor Direction = "creditor" // the owner owes this person
	DirectionDebtor   Direction = "debtor"   // this person owes the owner
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionCreditor || d == DirectionDebtor
}

// Gender drives the salutation on statements.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Language selects the statement template.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageFrench  Language = "french"
)

// ItemStatus is the settlement state of a single line item.
type ItemStatus string

const (
	StatusPending ItemStatus = "pending"
	StatusPartial ItemStatus = "partial"
	StatusPaid    ItemStatus = "paid"
)

// Item is one itemized debt entry under a creditor or debtor.
type Item struct {
	ID           uint            `json:"id"`
	Reason       string          `json:"reason"`
	Amount       decimal.Decimal `json:"amount"`
	DateIncurred *Date           `json:"date_incurred"`
	DueDate      *Date           `json:"due_date"`
	Status       ItemStatus      `json:"status"`
	Notes        string          `json:"notes"`
}

// Party is a creditor or a debtor together with its items and derived totals.
type Party struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"-"`
	Direction     Direction       `json:"direction"`
	FullName      string          `json:"full_name"`
	Contact       string          `json:"contact"`
	Gender        Gender          `json:"gender"`
	Language      Language        `json:"language"`
	Items         []Item          `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Recompute refreshes TotalAmount and PendingAmount from Items.
func (p *Party) Recompute() {
	if p.Items == nil {
		p.Items = []Item{}
	}
	p.TotalAmount = TotalAmount(p.Items)
	p.PendingAmount = PendingAmount(p.Items)
}

// TotalAmount sums every item amount.
func TotalAmount(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// PendingAmount sums the amounts of items still pending. Partial and paid items are excluded.
func PendingAmount(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Status == StatusPending {
			total = total.Add(it.Amount)
		}
	}
	return total
}
