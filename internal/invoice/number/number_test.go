package number

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "INV-2026-001", Format(2026, 1))
	assert.Equal(t, "INV-2026-042", Format(2026, 42))
	assert.Equal(t, "INV-2026-999", Format(2026, 999))
	// The sequence outgrows the padding without truncation.
	assert.Equal(t, "INV-2026-1000", Format(2026, 1000))
}

func TestParse(t *testing.T) {
	year, seq, ok := Parse("INV-2026-007")
	assert.True(t, ok)
	assert.Equal(t, 2026, year)
	assert.Equal(t, int64(7), seq)

	year, seq, ok = Parse("INV-2026-12345")
	assert.True(t, ok)
	assert.Equal(t, 2026, year)
	assert.Equal(t, int64(12345), seq)

	for _, bad := range []string{
		"",
		"INV-2026-01",
		"INV-26-001",
		"inv-2026-001",
		"INV-2026-001-extra",
		"2026-001",
	} {
		_, _, ok := Parse(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, seq := range []int64{1, 99, 100, 999, 1000, 99999} {
		year, parsed, ok := Parse(Format(2026, seq))
		assert.True(t, ok)
		assert.Equal(t, 2026, year)
		assert.Equal(t, seq, parsed)
	}
}

func TestYearOf(t *testing.T) {
	// New Year in UTC, still the old year further west.
	instant := time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, 2026, YearOf(instant))
	assert.Equal(t, 2026, YearOf(instant.In(time.FixedZone("west", -5*3600))))
}
