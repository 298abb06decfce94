package statement

import "debt_ledger/internal/domain"

// variantKey selects one of the four letter layouts.
type variantKey struct {
	dir  domain.Direction
	lang domain.Language
}

// variant is the fixed wording of one letter layout. Intro and Closing use explicit
// argument indexes: %[1]s owner name, %[2]s addressee, %[3]s formatted total.
type variant struct {
	Title            string
	Heading          string
	DateLabel        string
	Intro            string
	Closing          string
	Columns          [6]string
	TotalLabel       string
	OwnerRole        string
	CounterpartyRole string
	SignatureHint    string
}

var variants = map[variantKey]variant{
	{domain.DirectionCreditor, domain.LanguageEnglish}: {
		Title:            "Debt Acknowledgment",
		Heading:          "Statement of debt owed to %[2]s",
		DateLabel:        "Date:",
		Intro:            "I, the undersigned, %[1]s, hereby acknowledge that I owe %[2]s the sum of %[3]s for the following items:",
		Closing:          "I undertake to settle this amount in accordance with the terms agreed between us.",
		Columns:          [6]string{"#", "Reason", "Date incurred", "Due date", "Amount", "Status"},
		TotalLabel:       "Total",
		OwnerRole:        "The debtor",
		CounterpartyRole: "The creditor",
		SignatureHint:    "Signature",
	},
	{domain.DirectionCreditor, domain.LanguageFrench}: {
		Title:            "Reconnaissance de dette",
		Heading:          "Relevé de la dette due à %[2]s",
		DateLabel:        "Fait le",
		Intro:            "Je soussigné(e), %[1]s, reconnais devoir à %[2]s la somme de %[3]s au titre des éléments suivants :",
		Closing:          "Je m'engage à régler ce montant selon les modalités convenues entre nous.",
		Columns:          [6]string{"N°", "Motif", "Date", "Échéance", "Montant", "Statut"},
		TotalLabel:       "Total",
		OwnerRole:        "Le débiteur",
		CounterpartyRole: "Le créancier",
		SignatureHint:    "Signature",
	},
	{domain.DirectionDebtor, domain.LanguageEnglish}: {
		Title:            "Debt Confirmation Statement",
		Heading:          "Statement of debt owed by %[2]s",
		DateLabel:        "Date:",
		Intro:            "Dear %[2]s, this statement confirms that you owe %[1]s the sum of %[3]s for the following items:",
		Closing:          "Please confirm this balance by signing below and arrange settlement at your earliest convenience.",
		Columns:          [6]string{"#", "Reason", "Date incurred", "Due date", "Amount", "Status"},
		TotalLabel:       "Total",
		OwnerRole:        "The creditor",
		CounterpartyRole: "The debtor",
		SignatureHint:    "Signature",
	},
	{domain.DirectionDebtor, domain.LanguageFrench}: {
		Title:            "Relevé de confirmation de dette",
		Heading:          "Relevé de la dette due par %[2]s",
		DateLabel:        "Fait le",
		Intro:            "%[2]s, le présent relevé confirme que vous devez à %[1]s la somme de %[3]s au titre des éléments suivants :",
		Closing:          "Merci de confirmer ce solde en signant ci-dessous et de procéder au règlement dans les meilleurs délais.",
		Columns:          [6]string{"N°", "Motif", "Date", "Échéance", "Montant", "Statut"},
		TotalLabel:       "Total",
		OwnerRole:        "Le créancier",
		CounterpartyRole: "Le débiteur",
		SignatureHint:    "Signature",
	},
}

var salutations = map[domain.Language]map[domain.Gender]string{
	domain.LanguageEnglish: {domain.GenderMale: "Mr.", domain.GenderFemale: "Mrs."},
	domain.LanguageFrench:  {domain.GenderMale: "M.", domain.GenderFemale: "Mme"},
}

var statusLabels = map[domain.Language]map[domain.ItemStatus]string{
	domain.LanguageEnglish: {
		domain.StatusPending: "Pending",
		domain.StatusPartial: "Partially paid",
		domain.StatusPaid:    "Paid",
	},
	domain.LanguageFrench: {
		domain.StatusPending: "En attente",
		domain.StatusPartial: "Partiellement payé",
		domain.StatusPaid:    "Payé",
	},
}
