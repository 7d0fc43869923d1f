package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/solobill/solobill/internal/payment/domain"
)

type paymentIntentRequest struct {
	InvoiceID string `json:"invoice_id"`
}

func (s *Server) CreatePaymentIntent(c *gin.Context) {
	var req paymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(req.InvoiceID)
	if id == "" {
		AbortWithError(c, newValidationError("invoice_id", "invalid_invoice", "invoice id is required"))
		return
	}

	intent, err := s.paymentSvc.CreateIntent(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": intent})
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidConfig:
		return true
	default:
		return false
	}
}
