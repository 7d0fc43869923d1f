package csvexport

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoice(t *testing.T) {
	data := InvoiceData{
		InvoiceNumber: "INV-2026-001",
		Status:        "pending",
		IssueDate:     "2026-04-01",
		DueDate:       "2026-05-01",
		PaymentTerms:  "net_30",
		ClientName:    "Acme Corp",
		ClientEmail:   "billing@acme.test",
		Items: []InvoiceItem{
			{Description: "Consulting, phase 1", Quantity: "1", Rate: "1200.00", Amount: "1200.00"},
			{Description: "Travel", Quantity: "2", Rate: "50.00", Amount: "100.00"},
		},
		Subtotal: "1300.00",
		TaxRate:  "8.25",
		Tax:      "107.25",
		Total:    "1407.25",
		Notes:    "Payable within 30 days",
	}

	var buf bytes.Buffer
	require.NoError(t, New().GenerateInvoice(context.Background(), &buf, data))

	out := buf.String()
	assert.Contains(t, out, "invoice_number,INV-2026-001")
	assert.Contains(t, out, "description,quantity,rate,amount")
	// A comma inside a field stays quoted, not split.
	assert.Contains(t, out, `"Consulting, phase 1"`)
	assert.Contains(t, out, "total,1407.25")
	assert.Contains(t, out, "notes,Payable within 30 days")

	// The output parses back as CSV.
	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(records), 10)
}

func TestGenerateInvoice_NoNotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().GenerateInvoice(context.Background(), &buf, InvoiceData{
		InvoiceNumber: "INV-2026-002",
		Items:         []InvoiceItem{{Description: "Work", Quantity: "1", Rate: "10.00", Amount: "10.00"}},
	}))
	assert.NotContains(t, buf.String(), "notes")
}
