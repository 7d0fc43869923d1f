package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/solobill/solobill/internal/invoice/domain"
	"github.com/solobill/solobill/internal/providers/csvexport"
	"github.com/solobill/solobill/internal/providers/pdf"
)

type invoiceRequest struct {
	ClientID      string                        `json:"client_id"`
	InvoiceNumber string                        `json:"invoice_number"`
	IssueDate     string                        `json:"issue_date"`
	DueDate       string                        `json:"due_date"`
	PaymentTerms  string                        `json:"payment_terms"`
	TaxRate       decimal.Decimal               `json:"tax_rate"`
	Notes         string                        `json:"notes"`
	LineItems     []invoicedomain.LineItemInput `json:"line_items"`
}

func (r invoiceRequest) form() (invoicedomain.InvoiceForm, error) {
	issue, err := parseDate(r.IssueDate)
	if err != nil {
		return invoicedomain.InvoiceForm{}, newValidationError("issue_date", "invalid_issue_date", "invalid issue date")
	}
	due, err := parseDate(r.DueDate)
	if err != nil {
		return invoicedomain.InvoiceForm{}, newValidationError("due_date", "invalid_due_date", "invalid due date")
	}

	return invoicedomain.InvoiceForm{
		ClientID:      strings.TrimSpace(r.ClientID),
		InvoiceNumber: strings.TrimSpace(r.InvoiceNumber),
		IssueDate:     issue,
		DueDate:       due,
		PaymentTerms:  strings.TrimSpace(r.PaymentTerms),
		TaxRate:       r.TaxRate,
		Notes:         strings.TrimSpace(r.Notes),
		LineItems:     r.LineItems,
	}, nil
}

// parseDate accepts a bare date or a full timestamp.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	form, err := req.form()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), form)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	form, err := req.form()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), id, form)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.UpdateStatus(c.Request.Context(), id, strings.TrimSpace(req.Status))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) NextInvoiceNumber(c *gin.Context) {
	number, err := s.invoiceSvc.NextNumber(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"invoice_number": number}})
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	detail, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.InvoiceData{
		InvoiceNumber: detail.Invoice.InvoiceNumber,
		Status:        string(detail.Invoice.Status),
		IssueDate:     detail.Invoice.IssueDate.Format("2006-01-02"),
		DueDate:       detail.Invoice.DueDate.Format("2006-01-02"),
		PaymentTerms:  string(detail.Invoice.PaymentTerms),
		FromName:      s.cfg.AppName,
		BillToName:    detail.Client.Name,
		BillToCompany: detail.Client.Company,
		BillToEmail:   detail.Client.Email,
		BillToAddress: detail.Client.Address,
		Subtotal:      detail.Invoice.Subtotal.StringFixed(2),
		TaxLabel:      fmt.Sprintf("Tax (%s%%)", detail.Invoice.TaxRate.String()),
		Tax:           detail.Invoice.TaxAmount.StringFixed(2),
		Total:         detail.Invoice.Total.StringFixed(2),
		Notes:         detail.Invoice.Notes,
	}
	for _, item := range detail.LineItems {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			Rate:        item.Rate.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
		})
	}

	reader, err := s.pdfProvider.GenerateInvoice(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", detail.Invoice.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (s *Server) ExportInvoiceCSV(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	detail, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := csvexport.InvoiceData{
		InvoiceNumber: detail.Invoice.InvoiceNumber,
		Status:        string(detail.Invoice.Status),
		IssueDate:     detail.Invoice.IssueDate.Format("2006-01-02"),
		DueDate:       detail.Invoice.DueDate.Format("2006-01-02"),
		PaymentTerms:  string(detail.Invoice.PaymentTerms),
		ClientName:    detail.Client.Name,
		ClientCompany: detail.Client.Company,
		ClientEmail:   detail.Client.Email,
		Subtotal:      detail.Invoice.Subtotal.StringFixed(2),
		TaxRate:       detail.Invoice.TaxRate.String(),
		Tax:           detail.Invoice.TaxAmount.StringFixed(2),
		Total:         detail.Invoice.Total.StringFixed(2),
		Notes:         detail.Invoice.Notes,
	}
	for _, item := range detail.LineItems {
		data.Items = append(data.Items, csvexport.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			Rate:        item.Rate.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
		})
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", detail.Invoice.InvoiceNumber))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := s.csvProvider.GenerateInvoice(c.Request.Context(), c.Writer, data); err != nil {
		AbortWithError(c, err)
		return
	}
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidUser,
		invoicedomain.ErrInvalidID,
		invoicedomain.ErrInvalidClient,
		invoicedomain.ErrInvalidStatus,
		invoicedomain.ErrInvalidPaymentTerms,
		invoicedomain.ErrInvalidTaxRate,
		invoicedomain.ErrEmptyLineItems,
		invoicedomain.ErrInvalidDescription,
		invoicedomain.ErrInvalidQuantity,
		invoicedomain.ErrInvalidRate,
		invoicedomain.ErrAmountMismatch:
		return true
	default:
		return false
	}
}
