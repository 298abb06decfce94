package api

import (
	"bytes"    // Statement buffer
	"net/http" // HTTP status codes

	"debt_ledger/internal/domain"     // Domain models
	"debt_ledger/internal/ledger"     // Ledger service
	"debt_ledger/internal/middleware" // Session helpers
	"debt_ledger/internal/statement"  // Statement rendering

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
)

// ItemRequest is one submitted line item
type ItemRequest struct {
	Reason       string            `json:"reason" binding:"required"`                             // What the debt is for
	Amount       *decimal.Decimal  `json:"amount"`                                                // Defaults to 0
	DateIncurred *domain.Date      `json:"date_incurred"`                                         // Optional
	DueDate      *domain.Date      `json:"due_date"`                                              // Optional
	Status       domain.ItemStatus `json:"status" binding:"omitempty,oneof=pending partial paid"` // Defaults to pending
	Notes        string            `json:"notes"`
}

// PartyRequest is a creditor or debtor with its full item set
type PartyRequest struct {
	FullName string          `json:"full_name" binding:"required"`                     // Name must be provided
	Contact  string          `json:"contact"`                                          // Phone, email or address
	Gender   domain.Gender   `json:"gender" binding:"required,oneof=male female"`      // Drives the salutation
	Language domain.Language `json:"language" binding:"required,oneof=english french"` // Statement language
	Items    []ItemRequest   `json:"items" binding:"dive"`                             // Replaces all items on update
}

func (r PartyRequest) input() ledger.PartyInput {
	in := ledger.PartyInput{
		FullName: r.FullName,
		Contact:  r.Contact,
		Gender:   r.Gender,
		Language: r.Language,
		Items:    make([]ledger.ItemInput, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		in.Items = append(in.Items, ledger.ItemInput{
			Reason:       it.Reason,
			Amount:       it.Amount,
			DateIncurred: it.DateIncurred,
			DueDate:      it.DueDate,
			Status:       it.Status,
			Notes:        it.Notes,
		})
	}
	return in
}

// ListPartiesHandler returns the caller's creditors or debtors
func ListPartiesHandler(svc *ledger.Service, dir domain.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := middleware.CurrentSession(c)
		parties, err := svc.List(c.Request.Context(), dir, sess.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, parties)
	}
}

// GetPartyHandler returns one creditor or debtor
func GetPartyHandler(svc *ledger.Service, dir domain.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		sess, _ := middleware.CurrentSession(c)
		p, err := svc.Get(c.Request.Context(), dir, id, sess.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// CreatePartyHandler stores a new creditor or debtor with its items
func CreatePartyHandler(svc *ledger.Service, dir domain.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PartyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		sess, _ := middleware.CurrentSession(c)
		p, err := svc.Create(c.Request.Context(), dir, sess.UserID, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// UpdatePartyHandler overwrites a creditor or debtor and replaces all of its items
func UpdatePartyHandler(svc *ledger.Service, dir domain.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req PartyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		sess, _ := middleware.CurrentSession(c)
		p, err := svc.Update(c.Request.Context(), dir, id, sess.UserID, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// DeletePartyHandler removes a creditor or debtor and its items
func DeletePartyHandler(svc *ledger.Service, dir domain.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		sess, _ := middleware.CurrentSession(c)
		if err := svc.Delete(c.Request.Context(), dir, id, sess.UserID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}

// StatementHandler renders the printable letter for a creditor or debtor
func StatementHandler(svc *ledger.Service, dir domain.Direction, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		opts := statement.Options{Currency: currency}
		switch lang := domain.Language(c.Query("lang")); lang {
		case "":
		case domain.LanguageEnglish, domain.LanguageFrench:
			opts.Language = lang
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "lang must be english or french"})
			return
		}
		user, _ := middleware.CurrentUser(c)
		doc, err := svc.Statement(c.Request.Context(), dir, id, user.ID, user.DisplayName(), opts)
		if err != nil {
			respondError(c, err)
			return
		}
		var buf bytes.Buffer // Render fully before writing headers
		if err := statement.Render(&buf, doc); err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}
