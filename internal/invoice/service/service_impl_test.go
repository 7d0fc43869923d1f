package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	clientdomain "github.com/solobill/solobill/internal/client/domain"
	clientrepo "github.com/solobill/solobill/internal/client/repository"
	"github.com/solobill/solobill/internal/clock"
	invoicedomain "github.com/solobill/solobill/internal/invoice/domain"
	"github.com/solobill/solobill/internal/invoice/number"
	invoicerepo "github.com/solobill/solobill/internal/invoice/repository"
	"github.com/solobill/solobill/internal/userctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testStack struct {
	db    *gorm.DB
	clk   *clock.FakeClock
	node  *snowflake.Node
	svc   invoicedomain.Service
	owner snowflake.ID
	other snowflake.ID
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on the
	// same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&invoicedomain.Invoice{},
		&invoicedomain.LineItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	svc := NewService(ServiceParam{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clk,
		Numbers:    number.NewGenerator(db, clk),
		Repo:       invoicerepo.Provide(),
		ClientRepo: clientrepo.Provide(),
	})

	return &testStack{
		db:    db,
		clk:   clk,
		node:  node,
		svc:   svc,
		owner: node.Generate(),
		other: node.Generate(),
	}
}

func (s *testStack) ctx() context.Context {
	return userctx.WithUserID(context.Background(), s.owner)
}

func (s *testStack) otherCtx() context.Context {
	return userctx.WithUserID(context.Background(), s.other)
}

func (s *testStack) newClient(t *testing.T, userID snowflake.ID) clientdomain.Client {
	t.Helper()
	client := clientdomain.Client{
		ID:        s.node.Generate(),
		UserID:    userID,
		Name:      "Acme Corp",
		Email:     "billing@acme.test",
		CreatedAt: s.clk.Now(),
		UpdatedAt: s.clk.Now(),
	}
	require.NoError(t, s.db.Create(&client).Error)
	return client
}

func itemInput(desc, qty, rate string) invoicedomain.LineItemInput {
	return invoicedomain.LineItemInput{
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		Rate:        decimal.RequireFromString(rate),
	}
}

func baseForm(clientID snowflake.ID) invoicedomain.InvoiceForm {
	return invoicedomain.InvoiceForm{
		ClientID:     clientID.String(),
		IssueDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		PaymentTerms: "net_30",
		TaxRate:      decimal.RequireFromString("8.25"),
		LineItems: []invoicedomain.LineItemInput{
			itemInput("Consulting", "1", "1200.00"),
		},
	}
}

func TestCreate_DerivesTotalsAndNumber(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	detail, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)

	assert.Equal(t, invoicedomain.StatusPending, detail.Invoice.Status)
	assert.Equal(t, "INV-2026-001", detail.Invoice.InvoiceNumber)
	assert.Equal(t, "1200.00", detail.Invoice.Subtotal.StringFixed(2))
	assert.Equal(t, "99.00", detail.Invoice.TaxAmount.StringFixed(2))
	assert.Equal(t, "1299.00", detail.Invoice.Total.StringFixed(2))
	assert.Equal(t, client.ID, detail.Client.ID)

	require.Len(t, detail.LineItems, 1)
	assert.Equal(t, "1200.00", detail.LineItems[0].Amount.StringFixed(2))
	assert.Equal(t, 0, detail.LineItems[0].Position)

	// The row and its items are persisted, not just echoed back.
	loaded, err := stack.svc.GetByID(stack.ctx(), detail.Invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-001", loaded.Invoice.InvoiceNumber)
	assert.Len(t, loaded.LineItems, 1)
}

func TestCreate_SequentialNumbers(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	first, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)
	second, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-001", first.Invoice.InvoiceNumber)
	assert.Equal(t, "INV-2026-002", second.Invoice.InvoiceNumber)
}

func TestCreate_ClientProvidedNumberConflict(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	form := baseForm(client.ID)
	form.InvoiceNumber = "INV-2026-777"
	_, err := stack.svc.Create(stack.ctx(), form)
	require.NoError(t, err)

	_, err = stack.svc.Create(stack.ctx(), form)
	assert.ErrorIs(t, err, invoicedomain.ErrNumberConflict)
}

func TestCreate_EmptyLineItemsPersistsNothing(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	form := baseForm(client.ID)
	form.LineItems = nil
	_, err := stack.svc.Create(stack.ctx(), form)
	assert.ErrorIs(t, err, invoicedomain.ErrEmptyLineItems)

	var count int64
	require.NoError(t, stack.db.Raw(`SELECT COUNT(*) FROM invoices`).Scan(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_RejectsMismatchedAmount(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	wrong := decimal.RequireFromString("999.00")
	form := baseForm(client.ID)
	form.LineItems[0].Amount = &wrong
	_, err := stack.svc.Create(stack.ctx(), form)
	assert.ErrorIs(t, err, invoicedomain.ErrAmountMismatch)
}

func TestCreate_UnknownClient(t *testing.T) {
	stack := newTestStack(t)

	form := baseForm(stack.node.Generate())
	_, err := stack.svc.Create(stack.ctx(), form)
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidClient)
}

func TestCreate_ForeignClientForbidden(t *testing.T) {
	stack := newTestStack(t)
	foreign := stack.newClient(t, stack.other)

	_, err := stack.svc.Create(stack.ctx(), baseForm(foreign.ID))
	assert.ErrorIs(t, err, invoicedomain.ErrForbidden)
}

func TestCreate_RequiresPrincipal(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	_, err := stack.svc.Create(context.Background(), baseForm(client.ID))
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidUser)
}

func TestUpdate_ReplacesLineItemsAtomically(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	created, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)
	oldItemID := created.LineItems[0].ID

	form := baseForm(client.ID)
	form.LineItems = []invoicedomain.LineItemInput{
		itemInput("Design", "2", "150.00"),
		itemInput("Review", "1", "80.00"),
	}
	form.TaxRate = decimal.Zero

	updated, err := stack.svc.Update(stack.ctx(), created.Invoice.ID.String(), form)
	require.NoError(t, err)

	// Number never changes on update.
	assert.Equal(t, created.Invoice.InvoiceNumber, updated.Invoice.InvoiceNumber)
	assert.Equal(t, "380.00", updated.Invoice.Subtotal.StringFixed(2))
	assert.Equal(t, "380.00", updated.Invoice.Total.StringFixed(2))

	require.Len(t, updated.LineItems, 2)
	assert.Equal(t, 0, updated.LineItems[0].Position)
	assert.Equal(t, 1, updated.LineItems[1].Position)
	for _, it := range updated.LineItems {
		assert.NotEqual(t, oldItemID, it.ID)
	}

	var count int64
	require.NoError(t, stack.db.Raw(
		`SELECT COUNT(*) FROM invoice_line_items WHERE invoice_id = ?`,
		created.Invoice.ID,
	).Scan(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpdate_LastWriterWins(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	created, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)

	first := baseForm(client.ID)
	first.Notes = "first writer"
	_, err = stack.svc.Update(stack.ctx(), created.Invoice.ID.String(), first)
	require.NoError(t, err)

	second := baseForm(client.ID)
	second.Notes = "second writer"
	second.LineItems = []invoicedomain.LineItemInput{itemInput("Rework", "1", "500.00")}
	_, err = stack.svc.Update(stack.ctx(), created.Invoice.ID.String(), second)
	require.NoError(t, err)

	loaded, err := stack.svc.GetByID(stack.ctx(), created.Invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "second writer", loaded.Invoice.Notes)
	require.Len(t, loaded.LineItems, 1)
	assert.Equal(t, "Rework", loaded.LineItems[0].Description)
}

func TestUpdateStatus(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	created, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)

	updated, err := stack.svc.UpdateStatus(stack.ctx(), created.Invoice.ID.String(), "paid")
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusPaid, updated.Status)

	// Paid back to pending is permitted.
	updated, err = stack.svc.UpdateStatus(stack.ctx(), created.Invoice.ID.String(), "pending")
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusPending, updated.Status)
}

func TestUpdateStatus_InvalidTokenLeavesRowUntouched(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	created, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)

	_, err = stack.svc.UpdateStatus(stack.ctx(), created.Invoice.ID.String(), "archived")
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidStatus)

	loaded, err := stack.svc.GetByID(stack.ctx(), created.Invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusPending, loaded.Invoice.Status)
}

func TestDelete_CascadesLineItems(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	created, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)

	require.NoError(t, stack.svc.Delete(stack.ctx(), created.Invoice.ID.String()))

	_, err = stack.svc.GetByID(stack.ctx(), created.Invoice.ID.String())
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)

	var count int64
	require.NoError(t, stack.db.Raw(
		`SELECT COUNT(*) FROM invoice_line_items WHERE invoice_id = ?`,
		created.Invoice.ID,
	).Scan(&count).Error)
	assert.Zero(t, count)
}

func TestCrossUserAccessIsForbidden(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	created, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)
	id := created.Invoice.ID.String()

	_, err = stack.svc.GetByID(stack.otherCtx(), id)
	assert.ErrorIs(t, err, invoicedomain.ErrForbidden)

	_, err = stack.svc.Update(stack.otherCtx(), id, baseForm(client.ID))
	assert.ErrorIs(t, err, invoicedomain.ErrForbidden)

	_, err = stack.svc.UpdateStatus(stack.otherCtx(), id, "paid")
	assert.ErrorIs(t, err, invoicedomain.ErrForbidden)

	err = stack.svc.Delete(stack.otherCtx(), id)
	assert.ErrorIs(t, err, invoicedomain.ErrForbidden)
}

func TestList_ScopedToUserWithClientJoin(t *testing.T) {
	stack := newTestStack(t)
	mine := stack.newClient(t, stack.owner)
	foreign := stack.newClient(t, stack.other)

	_, err := stack.svc.Create(stack.ctx(), baseForm(mine.ID))
	require.NoError(t, err)
	_, err = stack.svc.Create(stack.otherCtx(), baseForm(foreign.ID))
	require.NoError(t, err)

	listed, err := stack.svc.List(stack.ctx())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, stack.owner, listed[0].UserID)
	assert.Equal(t, mine.Name, listed[0].ClientName)
}

func TestNextNumber_DoesNotConsumeOnFailedCreate(t *testing.T) {
	stack := newTestStack(t)
	client := stack.newClient(t, stack.owner)

	next, err := stack.svc.NextNumber(stack.ctx())
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-001", next)

	// Issued previews leave gaps; the next create simply continues.
	created, err := stack.svc.Create(stack.ctx(), baseForm(client.ID))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-002", created.Invoice.InvoiceNumber)
}
