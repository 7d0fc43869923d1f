package number

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/solobill/solobill/internal/clock"
	invoicedomain "github.com/solobill/solobill/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&invoicedomain.Invoice{}))
	return db
}

func TestGenerator_StartsAtOne(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	gen := NewGenerator(db, clk)
	got, err := gen.Next(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "INV-2026-001", got)
}

func TestGenerator_SeedsFromExistingNumbers(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	for _, number := range []string{"INV-2026-001", "INV-2026-017", "INV-2025-900"} {
		require.NoError(t, db.Exec(
			`INSERT INTO invoices (id, user_id, client_id, invoice_number, status, issue_date, due_date, payment_terms, subtotal, tax_rate, tax_amount, total, notes, metadata)
			 VALUES (?, 1, 1, ?, 'pending', ?, ?, 'net_30', 0, 0, 0, 0, '', '{}')`,
			time.Now().UnixNano(), number, clk.Now(), clk.Now(),
		).Error)
	}

	gen := NewGenerator(db, clk)
	got, err := gen.Next(context.Background())
	assert.NoError(t, err)
	// Continues after the highest persisted sequence for the year,
	// ignoring other years.
	assert.Equal(t, "INV-2026-018", got)
}

func TestGenerator_YearRollover(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC))

	gen := NewGenerator(db, clk)
	got, err := gen.Next(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "INV-2026-001", got)

	clk.Advance(2 * time.Hour)
	got, err = gen.Next(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "INV-2027-001", got)
}

func TestGenerator_ConcurrentUniqueness(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	gen := NewGenerator(db, clk)

	const workers = 100

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]struct{}, workers)
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			got, err := gen.Next(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			numbers[got] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, workers)
	for value := range numbers {
		_, _, ok := Parse(value)
		assert.True(t, ok, "malformed number %q", value)
	}
}
