package kernel

import (
	"fmt"
	"math"

	"swiftserve/internal/pkg/errs"
)

// Money is a value object holding a monetary amount in minor units (cents),
// avoiding floating-point drift in totals. Database adapters convert to and
// from NUMERIC(10,2) at the persistence edge.
//
// Money is immutable; arithmetic returns new values. The constructors bound
// amounts to [0, MaxCents]: order totals and line prices are never negative,
// and the cap keeps cart arithmetic far from int64 overflow.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromFloat(9.99)
//	total := price.Multiply(3)
//	fmt.Println(total.Float64()) // 29.97
type Money struct {
	cents int64
}

// MaxCents is the largest representable amount, 99,999,999.99 in major
// units. It mirrors the NUMERIC(10,2) columns the adapters persist to.
const MaxCents int64 = 9_999_999_999

// NewMoney creates Money from an amount in minor units (cents).
// Returns an error if the amount is negative or exceeds MaxCents.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d cents is negative", cents),
		)
	}
	if cents > MaxCents {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", cents, 0, MaxCents)
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat creates Money from a major-unit amount (e.g. dollars),
// rounding to the nearest cent. Returns an error if the amount is negative.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(int64(math.Round(amount * 100)))
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount in major units for display and serialization.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Multiply returns the amount scaled by a non-negative quantity.
func (m Money) Multiply(qty int) Money {
	return Money{cents: m.cents * int64(qty)}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount formatted with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float64())
}
