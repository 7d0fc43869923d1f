package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/solobill/solobill/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoices (
			id, user_id, client_id, invoice_number, status, issue_date, due_date,
			payment_terms, subtotal, tax_rate, tax_amount, total, notes, metadata,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.UserID,
		invoice.ClientID,
		invoice.InvoiceNumber,
		invoice.Status,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.PaymentTerms,
		invoice.Subtotal,
		invoice.TaxRate,
		invoice.TaxAmount,
		invoice.Total,
		invoice.Notes,
		invoice.Metadata,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.LineItem) error {
	for _, item := range items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO invoice_line_items (
				id, invoice_id, position, description, quantity, rate, amount, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.InvoiceID,
			item.Position,
			item.Description,
			item.Quantity,
			item.Rate,
			item.Amount,
			item.CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, client_id, invoice_number, status, issue_date, due_date,
		        payment_terms, subtotal, tax_rate, tax_amount, total, notes, metadata,
		        created_at, updated_at
		 FROM invoices WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.InvoiceWithClient, error) {
	var invoices []domain.InvoiceWithClient
	err := db.WithContext(ctx).Raw(
		`SELECT i.id, i.user_id, i.client_id, i.invoice_number, i.status, i.issue_date,
		        i.due_date, i.payment_terms, i.subtotal, i.tax_rate, i.tax_amount,
		        i.total, i.notes, i.metadata, i.created_at, i.updated_at,
		        c.name AS client_name, c.company AS client_company
		 FROM invoices i
		 LEFT JOIN clients c ON c.id = i.client_id
		 WHERE i.user_id = ?
		 ORDER BY i.created_at DESC, i.id DESC`,
		userID,
	).Scan(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, invoice_id, position, description, quantity, rate, amount, created_at
		 FROM invoice_line_items
		 WHERE invoice_id = ?
		 ORDER BY position ASC`,
		invoiceID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoices
		 SET client_id = ?, issue_date = ?, due_date = ?, payment_terms = ?,
		     subtotal = ?, tax_rate = ?, tax_amount = ?, total = ?, notes = ?,
		     updated_at = ?
		 WHERE id = ?`,
		invoice.ClientID,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.PaymentTerms,
		invoice.Subtotal,
		invoice.TaxRate,
		invoice.TaxAmount,
		invoice.Total,
		invoice.Notes,
		invoice.UpdatedAt,
		invoice.ID,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.InvoiceStatus, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		updatedAt,
		id,
	).Error
}

func (r *repo) DeleteItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM invoice_line_items WHERE invoice_id = ?`,
		invoiceID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM invoices WHERE id = ?`, id).Error
}
