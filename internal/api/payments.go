package api

import (
	"net/http" // HTTP status codes

	"debt_ledger/internal/domain"     // Domain models
	"debt_ledger/internal/ledger"     // Ledger service
	"debt_ledger/internal/middleware" // Session helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
)

// PaymentRequest is a payment made or received
type PaymentRequest struct {
	Type        domain.PaymentType `json:"type" binding:"required,oneof=paid received"` // Direction of the money
	RelatedID   *uint              `json:"related_id"`                                  // Optional creditor or debtor id
	Amount      decimal.Decimal    `json:"amount"`                                      // Must be positive
	PaymentDate domain.Date        `json:"payment_date"`                                // Must be provided
	Method      string             `json:"method"`
	Reference   string             `json:"reference"`
	Notes       string             `json:"notes"`
}

// ListPaymentsHandler returns the caller's payments, newest first
func ListPaymentsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := middleware.CurrentSession(c)
		payments, err := svc.ListPayments(c.Request.Context(), sess.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

// CreatePaymentHandler records a payment; item statuses are left untouched
func CreatePaymentHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		sess, _ := middleware.CurrentSession(c)
		p, err := svc.RecordPayment(c.Request.Context(), sess.UserID, ledger.PaymentInput{
			Type:        req.Type,
			RelatedID:   req.RelatedID,
			Amount:      req.Amount,
			PaymentDate: req.PaymentDate,
			Method:      req.Method,
			Reference:   req.Reference,
			Notes:       req.Notes,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// DeletePaymentHandler removes one of the caller's payments
func DeletePaymentHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		sess, _ := middleware.CurrentSession(c)
		if err := svc.DeletePayment(c.Request.Context(), id, sess.UserID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
	}
}

// DashboardStatsHandler returns pending totals and counts
func DashboardStatsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := middleware.CurrentSession(c)
		stats, err := svc.DashboardStats(c.Request.Context(), sess.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
