package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(desc, qty, rate string) LineItemInput {
	return LineItemInput{
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		Rate:        decimal.RequireFromString(rate),
	}
}

func TestComputeTotals_SingleItemWithTax(t *testing.T) {
	totals, err := ComputeTotals(
		[]LineItemInput{item("Consulting", "1", "1200.00")},
		decimal.RequireFromString("8.25"),
	)
	assert.NoError(t, err)
	assert.Equal(t, "1200.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "99.00", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "1299.00", totals.Total.StringFixed(2))
}

func TestComputeTotals_ZeroTax(t *testing.T) {
	totals, err := ComputeTotals(
		[]LineItemInput{
			item("Design", "3", "150.00"),
			item("Development", "10", "95.50"),
		},
		decimal.Zero,
	)
	assert.NoError(t, err)
	assert.Equal(t, "1405.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", totals.TaxAmount.StringFixed(2))
	assert.True(t, totals.Total.Equal(totals.Subtotal))
}

func TestComputeTotals_PerLineRounding(t *testing.T) {
	// Each line rounds half up before the subtotal is accumulated.
	totals, err := ComputeTotals(
		[]LineItemInput{
			item("A", "1.5", "0.67"), // 1.005 -> 1.01
			item("B", "1.5", "0.67"),
		},
		decimal.Zero,
	)
	assert.NoError(t, err)
	assert.Equal(t, "2.02", totals.Subtotal.StringFixed(2))
}

func TestComputeTotals_FractionalQuantity(t *testing.T) {
	totals, err := ComputeTotals(
		[]LineItemInput{item("Hourly work", "2.25", "84.00")},
		decimal.RequireFromString("7.00"),
	)
	assert.NoError(t, err)
	assert.Equal(t, "189.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "13.23", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "202.23", totals.Total.StringFixed(2))
}

func TestComputeTotals_TotalIsSumOfParts(t *testing.T) {
	totals, err := ComputeTotals(
		[]LineItemInput{
			item("A", "7", "33.33"),
			item("B", "0.1", "999.99"),
		},
		decimal.RequireFromString("19.00"),
	)
	assert.NoError(t, err)
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.TaxAmount)))
}

func TestComputeTotals_Deterministic(t *testing.T) {
	items := []LineItemInput{
		item("A", "3.33", "9.99"),
		item("B", "1", "0.01"),
	}
	rate := decimal.RequireFromString("8.25")

	first, err := ComputeTotals(items, rate)
	assert.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := ComputeTotals(items, rate)
		assert.NoError(t, err)
		assert.True(t, again.Total.Equal(first.Total))
		assert.True(t, again.Subtotal.Equal(first.Subtotal))
		assert.True(t, again.TaxAmount.Equal(first.TaxAmount))
	}
}

func TestComputeTotals_InvalidTaxRate(t *testing.T) {
	_, err := ComputeTotals([]LineItemInput{item("A", "1", "10.00")}, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidTaxRate)

	_, err = ComputeTotals([]LineItemInput{item("A", "1", "10.00")}, decimal.NewFromInt(101))
	assert.ErrorIs(t, err, ErrInvalidTaxRate)
}
