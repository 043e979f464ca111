package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(value), Valid: true}
}

func TestRoundWhole(t *testing.T) {
	if got := roundWhole(dec("84999.50")); got != 85000 {
		t.Fatalf("expected 85000, got %d", got)
	}
	if got := roundWhole(dec("84999.49")); got != 84999 {
		t.Fatalf("expected 84999, got %d", got)
	}
	if got := roundWhole(decimal.NullDecimal{}); got != 0 {
		t.Fatalf("expected null to default to 0, got %d", got)
	}
}

func TestRoundTenth(t *testing.T) {
	if got := roundTenth(dec("2.4499")); got != 2.4 {
		t.Fatalf("expected 2.4, got %v", got)
	}
	if got := roundTenth(dec("2.45")); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}
	if got := roundTenth(decimal.NullDecimal{}); got != 0 {
		t.Fatalf("expected null to default to 0, got %v", got)
	}
}

func TestToFloatAndToInt(t *testing.T) {
	if got := toFloat(dec("60000.00")); got != 60000 {
		t.Fatalf("expected 60000, got %v", got)
	}
	if got := toFloat(decimal.NullDecimal{}); got != 0 {
		t.Fatalf("expected null to default to 0, got %v", got)
	}
	if got := toInt(dec("2023")); got != 2023 {
		t.Fatalf("expected 2023, got %d", got)
	}
	if got := toInt(decimal.NullDecimal{}); got != 0 {
		t.Fatalf("expected null to default to 0, got %d", got)
	}
}
