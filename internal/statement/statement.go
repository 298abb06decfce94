// Package statement builds the printable debt letter for a creditor or debtor.
package statement

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"debt_ledger/internal/domain"

	"github.com/goodsign/monday"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed statement.html.tmpl
var templateFS embed.FS

var letter = template.Must(template.ParseFS(templateFS, "statement.html.tmpl"))

// Options tweaks a generated document.
type Options struct {
	Language domain.Language // overrides the record's language when set
	Currency string          // appended to every amount when set
}

// Row is one printed line item.
type Row struct {
	Index        int
	Reason       string
	DateIncurred string
	DueDate      string
	Amount       string
	Status       string
}

// Signature is one signing block.
type Signature struct {
	Role string
	Name string
}

// Document is a fully worded statement ready to render.
type Document struct {
	Lang       string
	Direction  domain.Direction
	Title      string
	Heading    string
	DateLabel  string
	Date       string
	Intro      string
	Columns    [6]string
	Rows       []Row
	TotalLabel string
	Total      string
	Closing    string
	Hint       string
	Signatures [2]Signature
}

// Generate words the statement for p as of today. It has no side effects.
func Generate(p domain.Party, ownerName string, today time.Time, opts Options) (Document, error) {
	lang := p.Language
	if opts.Language != "" {
		lang = opts.Language
	}
	v, ok := variants[variantKey{p.Direction, lang}]
	if !ok {
		return Document{}, fmt.Errorf("%w: no statement layout for %s in %s", domain.ErrValidation, p.Direction, lang)
	}
	sal, ok := salutations[lang][p.Gender]
	if !ok {
		return Document{}, fmt.Errorf("%w: unknown gender %q", domain.ErrValidation, p.Gender)
	}

	f := newFormatter(lang, opts.Currency)
	addressee := sal + " " + p.FullName
	total := f.amount(domain.TotalAmount(p.Items))

	doc := Document{
		Lang:       f.tag.String(),
		Direction:  p.Direction,
		Title:      v.Title,
		Heading:    fmt.Sprintf(v.Heading, ownerName, addressee, total),
		DateLabel:  v.DateLabel,
		Date:       f.date(today),
		Intro:      fmt.Sprintf(v.Intro, ownerName, addressee, total),
		Columns:    v.Columns,
		Rows:       make([]Row, 0, len(p.Items)),
		TotalLabel: v.TotalLabel,
		Total:      total,
		Closing:    v.Closing,
		Hint:       v.SignatureHint,
		Signatures: [2]Signature{
			{Role: v.OwnerRole, Name: ownerName},
			{Role: v.CounterpartyRole, Name: addressee},
		},
	}
	for i, it := range p.Items {
		doc.Rows = append(doc.Rows, Row{
			Index:        i + 1,
			Reason:       it.Reason,
			DateIncurred: f.optionalDate(it.DateIncurred),
			DueDate:      f.optionalDate(it.DueDate),
			Amount:       f.amount(it.Amount),
			Status:       f.status(it.Status),
		})
	}
	return doc, nil
}

// Render writes doc as a standalone HTML page.
func Render(w io.Writer, doc Document) error {
	return letter.Execute(w, doc)
}

type formatter struct {
	lang     domain.Language
	tag      language.Tag
	printer  *message.Printer
	currency string
}

func newFormatter(lang domain.Language, currency string) formatter {
	tag := language.English
	if lang == domain.LanguageFrench {
		tag = language.French
	}
	return formatter{
		lang:     lang,
		tag:      tag,
		printer:  message.NewPrinter(tag),
		currency: strings.TrimSpace(currency),
	}
}

// amount is exact for every decimal(15,2) value, the widest the ledger accepts.
func (f formatter) amount(d decimal.Decimal) string {
	s := f.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
	if f.currency != "" {
		s += " " + f.currency
	}
	return s
}

func (f formatter) date(t time.Time) string {
	if f.lang != domain.LanguageFrench {
		return monday.Format(t, "January 2, 2006", monday.LocaleEnUS)
	}
	s := monday.Format(t, "2 January 2006", monday.LocaleFrFR)
	if t.Day() == 1 {
		s = "1er" + strings.TrimPrefix(s, "1")
	}
	return s
}

func (f formatter) optionalDate(d *domain.Date) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return f.date(d.Time)
}

func (f formatter) status(s domain.ItemStatus) string {
	if label, ok := statusLabels[f.lang][s]; ok {
		return label
	}
	return string(s)
}
