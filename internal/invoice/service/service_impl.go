package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/solobill/solobill/internal/client/domain"
	"github.com/solobill/solobill/internal/clock"
	invoicedomain "github.com/solobill/solobill/internal/invoice/domain"
	"github.com/solobill/solobill/internal/invoice/number"
	"github.com/solobill/solobill/internal/userctx"
	"github.com/solobill/solobill/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Numbers    *number.Generator
	Repo       invoicedomain.Repository
	ClientRepo clientdomain.Repository
}

// Service is the invoice lifecycle orchestrator: the only component
// permitted to mutate persisted invoice and line-item state as a unit.
type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	numbers *number.Generator

	repo       invoicedomain.Repository
	clientRepo clientdomain.Repository
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("invoice.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		numbers:    p.Numbers,
		repo:       p.Repo,
		clientRepo: p.ClientRepo,
	}
}

func (s *Service) Create(ctx context.Context, form invoicedomain.InvoiceForm) (invoicedomain.InvoiceDetail, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return invoicedomain.InvoiceDetail{}, invoicedomain.ErrInvalidUser
	}

	if err := invoicedomain.ValidateLineItems(form.LineItems); err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}
	terms, err := invoicedomain.ParsePaymentTerms(strings.TrimSpace(form.PaymentTerms))
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}
	totals, err := invoicedomain.ComputeTotals(form.LineItems, form.TaxRate)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	client, err := s.ownedClient(ctx, userID, form.ClientID)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	invoiceNumber := strings.TrimSpace(form.InvoiceNumber)
	generated := invoiceNumber == ""
	if generated {
		invoiceNumber, err = s.numbers.Next(ctx)
		if err != nil {
			return invoicedomain.InvoiceDetail{}, err
		}
	}

	now := s.clock.Now()
	invoice := invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		UserID:        userID,
		ClientID:      client.ID,
		InvoiceNumber: invoiceNumber,
		Status:        invoicedomain.StatusPending,
		IssueDate:     form.IssueDate,
		DueDate:       form.DueDate,
		PaymentTerms:  terms,
		Subtotal:      totals.Subtotal,
		TaxRate:       form.TaxRate,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		Notes:         strings.TrimSpace(form.Notes),
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := s.buildItems(invoice.ID, form.LineItems)

	err = s.insertInvoiceWithItems(ctx, &invoice, items)
	if err != nil && db.IsDuplicateKeyErr(err) {
		if !generated {
			return invoicedomain.InvoiceDetail{}, invoicedomain.ErrNumberConflict
		}
		// Another process took the issued number; re-sync the counter
		// with storage and retry once.
		if seedErr := s.numbers.Seed(ctx); seedErr != nil {
			return invoicedomain.InvoiceDetail{}, seedErr
		}
		invoice.InvoiceNumber, err = s.numbers.Next(ctx)
		if err != nil {
			return invoicedomain.InvoiceDetail{}, err
		}
		err = s.insertInvoiceWithItems(ctx, &invoice, items)
		if err != nil && db.IsDuplicateKeyErr(err) {
			return invoicedomain.InvoiceDetail{}, invoicedomain.ErrNumberConflict
		}
	}
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total", invoice.Total.StringFixed(2)),
	)

	return invoicedomain.InvoiceDetail{Invoice: invoice, Client: *client, LineItems: items}, nil
}

func (s *Service) Update(ctx context.Context, id string, form invoicedomain.InvoiceForm) (invoicedomain.InvoiceDetail, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return invoicedomain.InvoiceDetail{}, invoicedomain.ErrInvalidUser
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}
	if existing == nil {
		return invoicedomain.InvoiceDetail{}, invoicedomain.ErrNotFound
	}
	if existing.UserID != userID {
		return invoicedomain.InvoiceDetail{}, invoicedomain.ErrForbidden
	}

	if err := invoicedomain.ValidateLineItems(form.LineItems); err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}
	terms, err := invoicedomain.ParsePaymentTerms(strings.TrimSpace(form.PaymentTerms))
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}
	totals, err := invoicedomain.ComputeTotals(form.LineItems, form.TaxRate)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	client, err := s.ownedClient(ctx, userID, form.ClientID)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	existing.ClientID = client.ID
	existing.IssueDate = form.IssueDate
	existing.DueDate = form.DueDate
	existing.PaymentTerms = terms
	existing.Subtotal = totals.Subtotal
	existing.TaxRate = form.TaxRate
	existing.TaxAmount = totals.TaxAmount
	existing.Total = totals.Total
	existing.Notes = strings.TrimSpace(form.Notes)
	existing.UpdatedAt = s.clock.Now()

	items := s.buildItems(existing.ID, form.LineItems)

	// The delete-and-insert of the line-item set and the invoice row
	// update commit together: a reader never observes a partial set.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, existing); err != nil {
			return err
		}
		if err := s.repo.DeleteItems(ctx, tx, existing.ID); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, items)
	})
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	return invoicedomain.InvoiceDetail{Invoice: *existing, Client: *client, LineItems: items}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (invoicedomain.Invoice, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidUser
	}

	// An unrecognized token fails before any lookup or mutation.
	next, err := invoicedomain.ParseStatus(strings.TrimSpace(status))
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if existing == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrNotFound
	}
	if existing.UserID != userID {
		return invoicedomain.Invoice{}, invoicedomain.ErrForbidden
	}

	if !invoicedomain.CanTransition(existing.Status, next) {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidStatus
	}

	now := s.clock.Now()
	if err := s.repo.UpdateStatus(ctx, s.db, existing.ID, next, now); err != nil {
		return invoicedomain.Invoice{}, err
	}

	existing.Status = next
	existing.UpdatedAt = now
	return *existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return invoicedomain.ErrInvalidUser
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return err
	}
	if existing == nil {
		return invoicedomain.ErrNotFound
	}
	if existing.UserID != userID {
		return invoicedomain.ErrForbidden
	}

	// Children first, parent second, one transaction.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteItems(ctx, tx, existing.ID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, existing.ID)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.InvoiceDetail, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return invoicedomain.InvoiceDetail{}, invoicedomain.ErrInvalidUser
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}
	if invoice == nil {
		return invoicedomain.InvoiceDetail{}, invoicedomain.ErrNotFound
	}
	if invoice.UserID != userID {
		return invoicedomain.InvoiceDetail{}, invoicedomain.ErrForbidden
	}

	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	detail := invoicedomain.InvoiceDetail{Invoice: *invoice, LineItems: items}
	client, err := s.clientRepo.FindByID(ctx, s.db, invoice.ClientID)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}
	if client != nil {
		detail.Client = *client
	}

	return detail, nil
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.InvoiceWithClient, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return nil, invoicedomain.ErrInvalidUser
	}

	return s.repo.ListByUser(ctx, s.db, userID)
}

func (s *Service) NextNumber(ctx context.Context) (string, error) {
	if _, ok := userctx.UserIDFromContext(ctx); !ok {
		return "", invoicedomain.ErrInvalidUser
	}
	return s.numbers.Next(ctx)
}

// ownedClient resolves a client id and enforces tenant ownership. A
// missing client is a validation failure; a client owned by another
// user is forbidden, distinct from not found.
func (s *Service) ownedClient(ctx context.Context, userID snowflake.ID, rawID string) (*clientdomain.Client, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil || clientID == 0 {
		return nil, invoicedomain.ErrInvalidClient
	}

	client, err := s.clientRepo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, invoicedomain.ErrInvalidClient
	}
	if client.UserID != userID {
		return nil, invoicedomain.ErrForbidden
	}
	return client, nil
}

func (s *Service) buildItems(invoiceID snowflake.ID, inputs []invoicedomain.LineItemInput) []invoicedomain.LineItem {
	now := s.clock.Now()
	items := make([]invoicedomain.LineItem, 0, len(inputs))
	for position, input := range inputs {
		items = append(items, invoicedomain.LineItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			Position:    position,
			Description: strings.TrimSpace(input.Description),
			Quantity:    input.Quantity,
			Rate:        input.Rate,
			Amount:      invoicedomain.DeriveAmount(input.Quantity, input.Rate),
			CreatedAt:   now,
		})
	}
	return items
}

func (s *Service) insertInvoiceWithItems(ctx context.Context, invoice *invoicedomain.Invoice, items []invoicedomain.LineItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, invoice); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, items)
	})
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, invoicedomain.ErrInvalidID
	}
	return id, nil
}
