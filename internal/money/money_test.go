package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
		{"10", "10"},
		{"99.999", "100"},
	}
	for _, tc := range cases {
		got := Round(decimal.RequireFromString(tc.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "round(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("1234.56")
	assert.NoError(t, err)
	assert.Equal(t, "1234.56", got.StringFixed(2))

	_, err = Parse("not-a-number")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestValidateTaxRate(t *testing.T) {
	assert.NoError(t, ValidateTaxRate(decimal.Zero))
	assert.NoError(t, ValidateTaxRate(decimal.NewFromInt(100)))
	assert.NoError(t, ValidateTaxRate(decimal.RequireFromString("8.25")))

	assert.ErrorIs(t, ValidateTaxRate(decimal.NewFromInt(-1)), ErrInvalidTaxRate)
	assert.ErrorIs(t, ValidateTaxRate(decimal.RequireFromString("100.01")), ErrInvalidTaxRate)
}

func TestWithinCent(t *testing.T) {
	a := decimal.RequireFromString("10.00")
	assert.True(t, WithinCent(a, decimal.RequireFromString("10.01")))
	assert.True(t, WithinCent(a, decimal.RequireFromString("9.99")))
	assert.False(t, WithinCent(a, decimal.RequireFromString("10.02")))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(129900), MinorUnits(decimal.RequireFromString("1299.00")))
	assert.Equal(t, int64(1), MinorUnits(decimal.RequireFromString("0.01")))
	assert.Equal(t, int64(0), MinorUnits(decimal.Zero))
}
