package stockwatch

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage value, e.g. Percent(-11) is -11%.
type Percent float64

// Equal compares two percentages with a small tolerance, since they are
// carried as floats after decimal rounding.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Abs returns the positive magnitude of the percentage.
func (p Percent) Abs() Percent {
	if p < 0 {
		return -p
	}
	return p
}

// String formats with two decimals, the precision used in overview tables.
func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// String1 formats with a single decimal, the precision used for drawdown
// magnitudes in signal call-outs.
func (p Percent) String1() string { return fmt.Sprintf("%.1f%%", float64(p)) }

// SignedString formats with an explicit sign, and "-" for zero.
func (p Percent) SignedString() string {
	s := fmt.Sprintf("%+.2f%%", float64(p))
	if s == "+0.00%" {
		return "-"
	}
	return s
}

// round2 rounds to two decimals, half away from zero. All persisted change
// percentages and prices derived from arithmetic go through it.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// round1 rounds to one decimal. Used for distance-to-target only.
func round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// pctChange computes round((value-base)/base*100, 2) exactly, using decimal
// arithmetic to avoid accumulating float error before the rounding step.
// base must be non-zero; callers guard with ErrDivisionUndefined.
func pctChange(value, base float64) Percent {
	d := decimal.NewFromFloat(value).
		Sub(decimal.NewFromFloat(base)).
		Div(decimal.NewFromFloat(base)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	f, _ := d.Float64()
	return Percent(f)
}
