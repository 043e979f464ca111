package analytics

import "github.com/shopspring/decimal"

// Aggregates come back from the store as nullable decimals. These helpers are
// the single place where they become JSON-ready numbers: absent values
// default to 0, never null or NaN.

func roundWhole(value decimal.NullDecimal) int64 {
	if !value.Valid {
		return 0
	}
	return value.Decimal.Round(0).IntPart()
}

func roundTenth(value decimal.NullDecimal) float64 {
	if !value.Valid {
		return 0
	}
	out, _ := value.Decimal.Round(1).Float64()
	return out
}

func toFloat(value decimal.NullDecimal) float64 {
	if !value.Valid {
		return 0
	}
	out, _ := value.Decimal.Float64()
	return out
}

func toInt(value decimal.NullDecimal) int64 {
	if !value.Valid {
		return 0
	}
	return value.Decimal.IntPart()
}
