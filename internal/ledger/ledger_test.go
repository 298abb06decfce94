package ledger

import (
	"context"
	"testing"
	"time"

	"debt_ledger/internal/domain"
	"debt_ledger/internal/statement"
	"debt_ledger/internal/store"
	"debt_ledger/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) (*Service, uint, uint) {
	t.Helper()
	st := store.New(testutil.NewDB(t))
	ctx := context.Background()
	owner := &domain.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x"}
	other := &domain.User{Username: "other", Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, st.CreateUser(ctx, owner))
	require.NoError(t, st.CreateUser(ctx, other))
	return NewService(st), owner.ID, other.ID
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	svc, owner, _ := newLedger(t)

	p, err := svc.Create(ctx, domain.DirectionCreditor, owner, PartyInput{
		FullName: "  Bakary  ",
		Gender:   domain.GenderMale,
		Language: domain.LanguageFrench,
		Items: []ItemInput{
			{Reason: "Loan"},
			{Reason: "Car", Amount: amount("300.450"), Status: domain.StatusPaid, DueDate: &domain.Date{}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bakary", p.FullName)
	require.Len(t, p.Items, 2)
	assert.True(t, p.Items[0].Amount.IsZero())
	assert.Equal(t, domain.StatusPending, p.Items[0].Status)
	assert.Equal(t, "300.45", p.Items[1].Amount.StringFixed(2))
	assert.Nil(t, p.Items[1].DueDate)
	assert.Equal(t, "300.45", p.TotalAmount.StringFixed(2))
	assert.True(t, p.PendingAmount.IsZero())

	invalid := []struct {
		name string
		in   PartyInput
	}{
		{"missing name", PartyInput{Gender: domain.GenderMale, Language: domain.LanguageEnglish}},
		{"bad gender", PartyInput{FullName: "x", Gender: "other", Language: domain.LanguageEnglish}},
		{"bad language", PartyInput{FullName: "x", Gender: domain.GenderMale, Language: "german"}},
		{"missing reason", PartyInput{FullName: "x", Gender: domain.GenderMale, Language: domain.LanguageEnglish, Items: []ItemInput{{Amount: amount("1")}}}},
		{"negative amount", PartyInput{FullName: "x", Gender: domain.GenderMale, Language: domain.LanguageEnglish, Items: []ItemInput{{Reason: "r", Amount: amount("-1")}}}},
		{"sub-cent amount", PartyInput{FullName: "x", Gender: domain.GenderMale, Language: domain.LanguageEnglish, Items: []ItemInput{{Reason: "r", Amount: amount("300.456")}}}},
		{"amount beyond column precision", PartyInput{FullName: "x", Gender: domain.GenderMale, Language: domain.LanguageEnglish, Items: []ItemInput{{Reason: "r", Amount: amount("10000000000000")}}}},
		{"bad status", PartyInput{FullName: "x", Gender: domain.GenderMale, Language: domain.LanguageEnglish, Items: []ItemInput{{Reason: "r", Status: "settled"}}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, domain.DirectionDebtor, owner, tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	_, err = svc.Create(ctx, "neighbour", owner, PartyInput{FullName: "x", Gender: domain.GenderMale, Language: domain.LanguageEnglish})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDebtorScenario(t *testing.T) {
	ctx := context.Background()
	svc, owner, other := newLedger(t)

	_, err := svc.Create(ctx, domain.DirectionDebtor, owner, PartyInput{
		FullName: "Amina",
		Gender:   domain.GenderFemale,
		Language: domain.LanguageEnglish,
		Items:    []ItemInput{{Reason: "Loan", Amount: amount("5000"), Status: domain.StatusPending}},
	})
	require.NoError(t, err)

	stats, err := svc.DashboardStats(ctx, owner)
	require.NoError(t, err)
	assert.True(t, stats.TotalOwedByDebtors.Equal(decimal.NewFromInt(5000)))
	assert.True(t, stats.NetPosition.Equal(decimal.NewFromInt(5000)))
	assert.EqualValues(t, 1, stats.DebtorCount)

	list, err := svc.List(ctx, domain.DirectionDebtor, other)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDashboardFractionalAmounts(t *testing.T) {
	ctx := context.Background()
	svc, owner, _ := newLedger(t)

	p, err := svc.Create(ctx, domain.DirectionDebtor, owner, PartyInput{
		FullName: "Binta",
		Gender:   domain.GenderFemale,
		Language: domain.LanguageEnglish,
		Items:    []ItemInput{{Reason: "a", Amount: amount("0.10")}, {Reason: "b", Amount: amount("0.20")}},
	})
	require.NoError(t, err)

	stats, err := svc.DashboardStats(ctx, owner)
	require.NoError(t, err)
	assert.True(t, stats.TotalOwedByDebtors.Equal(p.PendingAmount), stats.TotalOwedByDebtors.String())
	assert.True(t, stats.NetPosition.Equal(decimal.RequireFromString("0.3")), stats.NetPosition.String())
}

func TestUpdateReplacesItems(t *testing.T) {
	ctx := context.Background()
	svc, owner, other := newLedger(t)

	p, err := svc.Create(ctx, domain.DirectionCreditor, owner, PartyInput{
		FullName: "Chidi",
		Gender:   domain.GenderMale,
		Language: domain.LanguageEnglish,
		Items:    []ItemInput{{Reason: "a", Amount: amount("1")}, {Reason: "b", Amount: amount("2")}},
	})
	require.NoError(t, err)

	in := PartyInput{
		FullName: "Chidi O.",
		Gender:   domain.GenderMale,
		Language: domain.LanguageEnglish,
		Items:    []ItemInput{{Reason: "c", Amount: amount("10"), Status: domain.StatusPartial}},
	}
	_, err = svc.Update(ctx, domain.DirectionCreditor, p.ID, other, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := svc.Update(ctx, domain.DirectionCreditor, p.ID, owner, in)
	require.NoError(t, err)
	assert.Equal(t, "Chidi O.", updated.FullName)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "c", updated.Items[0].Reason)
	assert.Equal(t, "10.00", updated.TotalAmount.StringFixed(2))
	assert.True(t, updated.PendingAmount.IsZero())

	got, err := svc.Get(ctx, domain.DirectionCreditor, p.ID, owner)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	svc, owner, other := newLedger(t)

	p, err := svc.Create(ctx, domain.DirectionDebtor, owner, PartyInput{
		FullName: "Efua", Gender: domain.GenderFemale, Language: domain.LanguageEnglish,
		Items: []ItemInput{{Reason: "x", Amount: amount("5")}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, domain.DirectionDebtor, p.ID, other), domain.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, domain.DirectionDebtor, p.ID, owner))
	assert.ErrorIs(t, svc.Delete(ctx, domain.DirectionDebtor, p.ID, owner), domain.ErrNotFound)

	list, err := svc.List(ctx, domain.DirectionDebtor, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPayments(t *testing.T) {
	ctx := context.Background()
	svc, owner, other := newLedger(t)
	date := domain.NewDate(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	debtor, err := svc.Create(ctx, domain.DirectionDebtor, owner, PartyInput{
		FullName: "Femi", Gender: domain.GenderMale, Language: domain.LanguageEnglish,
		Items: []ItemInput{{Reason: "loan", Amount: amount("3000")}},
	})
	require.NoError(t, err)

	t.Run("validation", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, owner, PaymentInput{Type: "gift", Amount: decimal.NewFromInt(1), PaymentDate: date})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.RecordPayment(ctx, owner, PaymentInput{Type: domain.PaymentPaid, Amount: decimal.Zero, PaymentDate: date})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.RecordPayment(ctx, owner, PaymentInput{Type: domain.PaymentPaid, Amount: decimal.NewFromInt(-5), PaymentDate: date})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.RecordPayment(ctx, owner, PaymentInput{Type: domain.PaymentPaid, Amount: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.RecordPayment(ctx, owner, PaymentInput{Type: domain.PaymentPaid, Amount: decimal.RequireFromString("0.001"), PaymentDate: date})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.RecordPayment(ctx, owner, PaymentInput{Type: domain.PaymentPaid, Amount: decimal.RequireFromString("12.345"), PaymentDate: date})
		assert.ErrorIs(t, err, domain.ErrValidation)

		list, err := svc.ListPayments(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("payments do not touch items", func(t *testing.T) {
		before, err := svc.DashboardStats(ctx, owner)
		require.NoError(t, err)

		pay, err := svc.RecordPayment(ctx, owner, PaymentInput{
			Type: domain.PaymentReceived, RelatedID: &debtor.ID, Amount: decimal.NewFromInt(1000), PaymentDate: date, Method: " cash ",
		})
		require.NoError(t, err)
		assert.Equal(t, "cash", pay.Method)
		assert.True(t, pay.Amount.Equal(decimal.NewFromInt(1000)))

		after, err := svc.DashboardStats(ctx, owner)
		require.NoError(t, err)
		assert.True(t, before.TotalOwedByDebtors.Equal(after.TotalOwedByDebtors))

		got, err := svc.Get(ctx, domain.DirectionDebtor, debtor.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, got.Items[0].Status)

		list, err := svc.ListPayments(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 1)

		assert.ErrorIs(t, svc.DeletePayment(ctx, pay.ID, other), domain.ErrNotFound)
		require.NoError(t, svc.DeletePayment(ctx, pay.ID, owner))
	})
}

func TestStatement(t *testing.T) {
	ctx := context.Background()
	svc, owner, other := newLedger(t)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	p, err := svc.Create(ctx, domain.DirectionCreditor, owner, PartyInput{
		FullName: "Gaëlle", Gender: domain.GenderFemale, Language: domain.LanguageFrench,
		Items: []ItemInput{{Reason: "Prêt", Amount: amount("150")}},
	})
	require.NoError(t, err)

	doc, err := svc.Statement(ctx, domain.DirectionCreditor, p.ID, owner, "Owner Name", statement.Options{})
	require.NoError(t, err)
	assert.Equal(t, "1er mars 2026", doc.Date)
	assert.Equal(t, "Mme Gaëlle", doc.Signatures[1].Name)

	_, err = svc.Statement(ctx, domain.DirectionCreditor, p.ID, other, "Other", statement.Options{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
