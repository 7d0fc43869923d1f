package service

import (
	"context"

	"github.com/shopspring/decimal"
	dashboarddomain "github.com/solobill/solobill/internal/dashboard/domain"
	invoicedomain "github.com/solobill/solobill/internal/invoice/domain"
	"github.com/solobill/solobill/internal/userctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p Params) dashboarddomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

type statsRow struct {
	TotalInvoices int64           `gorm:"column:total_invoices"`
	PendingCount  int64           `gorm:"column:pending_count"`
	PaidCount     int64           `gorm:"column:paid_count"`
	TotalRevenue  decimal.Decimal `gorm:"column:total_revenue"`
}

func (s *Service) GetStats(ctx context.Context) (dashboarddomain.Stats, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return dashboarddomain.Stats{}, dashboarddomain.ErrInvalidUser
	}

	var row statsRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total_invoices,
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_count,
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS paid_count,
		        COALESCE(SUM(CASE WHEN status = ? THEN total ELSE 0 END), 0) AS total_revenue
		 FROM invoices
		 WHERE user_id = ?`,
		invoicedomain.StatusPending,
		invoicedomain.StatusPaid,
		invoicedomain.StatusPaid,
		userID,
	).Scan(&row).Error
	if err != nil {
		return dashboarddomain.Stats{}, err
	}

	return dashboarddomain.Stats{
		TotalInvoices: row.TotalInvoices,
		PendingCount:  row.PendingCount,
		PaidCount:     row.PaidCount,
		TotalRevenue:  row.TotalRevenue,
	}, nil
}
