package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func linesWithPrices(prices ...int64) []CartLine {
	lines := make([]CartLine, 0, len(prices))
	for i, p := range prices {
		lines = append(lines, CartLine{
			Item:     availableItem(string(rune('a'+i)), p),
			Quantity: 1,
		})
	}
	return lines
}

func TestComputeTotals_ObservedScenario(t *testing.T) {
	// Two paintings at 12,000,000 and 450,000,000 VND.
	totals := ComputeTotals(linesWithPrices(12_000_000, 450_000_000))

	if !totals.Subtotal.Equal(decimal.NewFromInt(462_000_000)) {
		t.Errorf("expected subtotal 462000000, got %s", totals.Subtotal)
	}
	if !totals.Tax.Equal(decimal.NewFromInt(36_960_000)) {
		t.Errorf("expected tax 36960000, got %s", totals.Tax)
	}
	if !totals.Total.Equal(decimal.NewFromInt(498_960_000)) {
		t.Errorf("expected total 498960000, got %s", totals.Total)
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)

	if !totals.Subtotal.IsZero() || !totals.Tax.IsZero() || !totals.Total.IsZero() {
		t.Errorf("expected all-zero totals, got %+v", totals)
	}
}

func TestComputeTotals_TotalIsSubtotalPlusTax(t *testing.T) {
	totals := ComputeTotals(linesWithPrices(25_500_000, 180_000_000, 999_999))

	if !totals.Total.Equal(totals.Subtotal.Add(totals.Tax)) {
		t.Errorf("total %s != subtotal %s + tax %s", totals.Total, totals.Subtotal, totals.Tax)
	}
	if !totals.Tax.Equal(totals.Subtotal.Mul(TaxRate)) {
		t.Errorf("tax %s != subtotal %s * rate", totals.Tax, totals.Subtotal)
	}
}

func TestComputeChange_CashExact(t *testing.T) {
	change, err := ComputeChange(PaymentCash, decimal.NewFromInt(100_000), decimal.NewFromInt(100_000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !change.IsZero() {
		t.Errorf("expected zero change, got %s", change)
	}
}

func TestComputeChange_CashInsufficient(t *testing.T) {
	_, err := ComputeChange(PaymentCash, decimal.NewFromInt(100_000), decimal.NewFromInt(50_000))
	if !errors.Is(err, ErrInsufficientPayment) {
		t.Errorf("expected ErrInsufficientPayment, got: %v", err)
	}
}

func TestComputeChange_CashOverpaid(t *testing.T) {
	change, err := ComputeChange(PaymentCash, decimal.NewFromInt(498_960_000), decimal.NewFromInt(500_000_000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !change.Equal(decimal.NewFromInt(1_040_000)) {
		t.Errorf("expected change 1040000, got %s", change)
	}
}

func TestComputeChange_QRIgnoresTendered(t *testing.T) {
	change, err := ComputeChange(PaymentQR, decimal.NewFromInt(100_000), decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !change.IsZero() {
		t.Errorf("expected zero change for qr, got %s", change)
	}
}
