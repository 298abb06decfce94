package statement

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"debt_ledger/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainSpaces folds the no-break spaces French grouping uses into ASCII spaces.
func plainSpaces(s string) string {
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}

func sampleParty(dir domain.Direction, gender domain.Gender, lang domain.Language) domain.Party {
	due := domain.NewDate(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	p := domain.Party{
		ID:        7,
		Direction: dir,
		FullName:  "Amina Diallo",
		Gender:    gender,
		Language:  lang,
		Items: []domain.Item{
			{Reason: "School fees", Amount: decimal.NewFromInt(5000), Status: domain.StatusPending, DueDate: &due},
			{Reason: "Rent", Amount: decimal.RequireFromString("1250.5"), Status: domain.StatusPaid},
		},
	}
	p.Recompute()
	return p
}

var today = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func TestGenerateVariants(t *testing.T) {
	tests := []struct {
		name       string
		dir        domain.Direction
		gender     domain.Gender
		lang       domain.Language
		title      string
		salutation string
		date       string
		intro      string
		roles      [2]string
	}{
		{
			name: "creditor english", dir: domain.DirectionCreditor, gender: domain.GenderMale, lang: domain.LanguageEnglish,
			title: "Debt Acknowledgment", salutation: "Mr. Amina Diallo", date: "October 18, 2026",
			intro: "I, the undersigned, Jane Owner, hereby acknowledge that I owe Mr. Amina Diallo the sum of 6,250.50",
			roles: [2]string{"The debtor", "The creditor"},
		},
		{
			name: "creditor french", dir: domain.DirectionCreditor, gender: domain.GenderFemale, lang: domain.LanguageFrench,
			title: "Reconnaissance de dette", salutation: "Mme Amina Diallo", date: "18 octobre 2026",
			intro: "Je soussigné(e), Jane Owner, reconnais devoir à Mme Amina Diallo la somme de 6 250,50",
			roles: [2]string{"Le débiteur", "Le créancier"},
		},
		{
			name: "debtor english", dir: domain.DirectionDebtor, gender: domain.GenderFemale, lang: domain.LanguageEnglish,
			title: "Debt Confirmation Statement", salutation: "Mrs. Amina Diallo", date: "October 18, 2026",
			intro: "Dear Mrs. Amina Diallo, this statement confirms that you owe Jane Owner the sum of 6,250.50",
			roles: [2]string{"The creditor", "The debtor"},
		},
		{
			name: "debtor french", dir: domain.DirectionDebtor, gender: domain.GenderMale, lang: domain.LanguageFrench,
			title: "Relevé de confirmation de dette", salutation: "M. Amina Diallo", date: "18 octobre 2026",
			intro: "M. Amina Diallo, le présent relevé confirme que vous devez à Jane Owner la somme de 6 250,50",
			roles: [2]string{"Le créancier", "Le débiteur"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Generate(sampleParty(tt.dir, tt.gender, tt.lang), "Jane Owner", today, Options{})
			require.NoError(t, err)

			assert.Equal(t, tt.title, doc.Title)
			assert.Contains(t, doc.Heading, tt.salutation)
			assert.Equal(t, tt.date, doc.Date)
			assert.True(t, strings.HasPrefix(plainSpaces(doc.Intro), tt.intro), doc.Intro)
			assert.Equal(t, tt.roles[0], doc.Signatures[0].Role)
			assert.Equal(t, "Jane Owner", doc.Signatures[0].Name)
			assert.Equal(t, tt.roles[1], doc.Signatures[1].Role)
			assert.Equal(t, tt.salutation, doc.Signatures[1].Name)
			require.Len(t, doc.Rows, 2)
			assert.Equal(t, 1, doc.Rows[0].Index)
			assert.Equal(t, 2, doc.Rows[1].Index)
		})
	}
}

func TestGenerateAmountsAndStatuses(t *testing.T) {
	en, err := Generate(sampleParty(domain.DirectionDebtor, domain.GenderFemale, domain.LanguageEnglish), "Owner", today, Options{})
	require.NoError(t, err)
	assert.Equal(t, "5,000.00", en.Rows[0].Amount)
	assert.Equal(t, "1,250.50", en.Rows[1].Amount)
	assert.Equal(t, "6,250.50", en.Total)
	assert.Equal(t, "Pending", en.Rows[0].Status)
	assert.Equal(t, "Paid", en.Rows[1].Status)
	assert.Equal(t, "November 1, 2026", en.Rows[0].DueDate)
	assert.Equal(t, "-", en.Rows[1].DueDate)

	fr, err := Generate(sampleParty(domain.DirectionDebtor, domain.GenderFemale, domain.LanguageFrench), "Owner", today, Options{Currency: "XAF"})
	require.NoError(t, err)
	assert.Equal(t, "5 000,00 XAF", plainSpaces(fr.Rows[0].Amount))
	assert.Equal(t, "6 250,50 XAF", plainSpaces(fr.Total))
	assert.Equal(t, "En attente", fr.Rows[0].Status)
	assert.Equal(t, "Payé", fr.Rows[1].Status)
	assert.Equal(t, "1er novembre 2026", fr.Rows[0].DueDate)
	assert.Equal(t, "18 octobre 2026", fr.Date)
}

func TestGenerateLargestStorableAmount(t *testing.T) {
	p := domain.Party{
		Direction: domain.DirectionCreditor, FullName: "Big", Gender: domain.GenderMale, Language: domain.LanguageEnglish,
		Items: []domain.Item{{Reason: "house", Amount: decimal.RequireFromString("9999999999999.99"), Status: domain.StatusPending}},
	}
	p.Recompute()
	doc, err := Generate(p, "Owner", today, Options{})
	require.NoError(t, err)
	assert.Equal(t, "9,999,999,999,999.99", doc.Rows[0].Amount)
	assert.Equal(t, "9,999,999,999,999.99", doc.Total)
}

func TestGenerateLanguageOverride(t *testing.T) {
	p := sampleParty(domain.DirectionCreditor, domain.GenderMale, domain.LanguageEnglish)
	doc, err := Generate(p, "Owner", today, Options{Language: domain.LanguageFrench})
	require.NoError(t, err)
	assert.Equal(t, "Reconnaissance de dette", doc.Title)
	assert.Equal(t, "fr", doc.Lang)
}

func TestGenerateEmptyRecord(t *testing.T) {
	p := domain.Party{Direction: domain.DirectionCreditor, FullName: "Nobody", Gender: domain.GenderMale, Language: domain.LanguageEnglish}
	p.Recompute()
	doc, err := Generate(p, "Owner", today, Options{})
	require.NoError(t, err)
	assert.Empty(t, doc.Rows)
	assert.Equal(t, "0.00", doc.Total)
}

func TestGenerateRejectsUnknownValues(t *testing.T) {
	p := sampleParty(domain.DirectionDebtor, domain.GenderMale, domain.LanguageEnglish)
	p.Gender = "other"
	_, err := Generate(p, "Owner", today, Options{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	p = sampleParty(domain.DirectionDebtor, domain.GenderMale, "german")
	_, err = Generate(p, "Owner", today, Options{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRender(t *testing.T) {
	p := sampleParty(domain.DirectionDebtor, domain.GenderFemale, domain.LanguageEnglish)
	p.Items[0].Reason = "<script>alert(1)</script>"
	doc, err := Generate(p, "Owner", today, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc))
	html := buf.String()
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "Debt Confirmation Statement")
	assert.Contains(t, html, "6,250.50")
	assert.Contains(t, html, "October 18, 2026")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
