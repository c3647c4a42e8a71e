package calculator

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places in a fixed-point price.
const Scale = 18

var ulp = decimal.New(1, -Scale)

// FromScaled converts a fixed-point integer into its decimal value.
// A nil integer reads as zero.
func FromScaled(v *big.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, -Scale)
}

// ToScaled converts a decimal value back into a fixed-point integer,
// rounding up to the nearest integer after scaling.
func ToScaled(d decimal.Decimal) *big.Int {
	return d.Shift(Scale).Ceil().BigInt()
}

// divCeil divides num by den to Scale places, rounding toward +Inf so that
// ToScaled of the result equals the ceiling of the exact quotient.
// ok is false when den is zero.
func divCeil(num, den decimal.Decimal) (q decimal.Decimal, ok bool) {
	if den.IsZero() {
		return decimal.Decimal{}, false
	}
	q, r := num.QuoRem(den, Scale)
	// q truncates toward zero; bump it when the exact quotient lies above.
	if !r.IsZero() && r.Sign() == den.Sign() {
		q = q.Add(ulp)
	}
	return q, true
}
