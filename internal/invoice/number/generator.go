package number

import (
	"context"
	"sync"

	"github.com/solobill/solobill/internal/clock"
	"gorm.io/gorm"
)

// Generator hands out monotonically increasing invoice numbers scoped
// to the current year. The counter is process-wide state seeded from
// the highest persisted number; issued values are never reused, so a
// failed invoice write leaves a gap rather than a duplicate.
type Generator struct {
	db    *gorm.DB
	clock clock.Clock

	mu     sync.Mutex
	seeded bool
	year   int
	seq    int64
}

func NewGenerator(db *gorm.DB, clk clock.Clock) *Generator {
	return &Generator{db: db, clock: clk}
}

// Seed initializes the counter from storage for the current year.
// Safe to call again after a collision to re-sync with storage.
func (g *Generator) Seed(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seedLocked(ctx)
}

func (g *Generator) seedLocked(ctx context.Context) error {
	year := YearOf(g.clock.Now())

	var numbers []string
	err := g.db.WithContext(ctx).Raw(
		`SELECT invoice_number FROM invoices WHERE invoice_number LIKE ?`,
		Prefix(year)+"%",
	).Scan(&numbers).Error
	if err != nil {
		return err
	}

	var max int64
	for _, value := range numbers {
		numberYear, seq, ok := Parse(value)
		if !ok || numberYear != year {
			continue
		}
		if seq > max {
			max = seq
		}
	}

	g.year = year
	g.seq = max
	g.seeded = true
	return nil
}

// Next issues the next invoice number. Two concurrent calls never
// return the same value; the counter rolls over to 1 when the year
// changes.
func (g *Generator) Next(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	year := YearOf(g.clock.Now())
	if !g.seeded || year != g.year {
		if err := g.seedLocked(ctx); err != nil {
			return "", err
		}
	}

	g.seq++
	return Format(g.year, g.seq), nil
}
