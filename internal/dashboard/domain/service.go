// Package domain defines the derived dashboard aggregate.
package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Stats is computed on demand from one user's invoices; it is never
// cached or persisted.
type Stats struct {
	TotalInvoices int64           `json:"total_invoices"`
	PendingCount  int64           `json:"pending_count"`
	PaidCount     int64           `json:"paid_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type Service interface {
	GetStats(ctx context.Context) (Stats, error)
}

var ErrInvalidUser = errors.New("invalid_user")
