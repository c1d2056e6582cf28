package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact signed currency amount backed by decimal arithmetic.
// No binary floating point is used anywhere in the engine; every rounding
// point is an explicit call to Round or RoundDown at the site that owns
// the rule (e.g. taxes round down to the minor unit).
type Money struct {
	amount decimal.Decimal
}

// MoneyZero is the zero amount.
var MoneyZero = Money{}

// NewMoney creates a Money from a whole number of currency units.
func NewMoney(units int64) Money {
	return Money{amount: decimal.NewFromInt(units)}
}

// NewMoneyFromDecimal wraps an existing decimal value.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// ParseMoney parses a decimal string like "1234.56".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// MustMoney parses a decimal string and panics on failure. For constants
// and tests only.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.amount }

// Add returns m + o.
func (m Money) Add(o Money) Money { return Money{amount: m.amount.Add(o.amount)} }

// Sub returns m - o.
func (m Money) Sub(o Money) Money { return Money{amount: m.amount.Sub(o.amount)} }

// Neg returns -m.
func (m Money) Neg() Money { return Money{amount: m.amount.Neg()} }

// MulRate returns m scaled by a rate, unrounded. Callers that owe a
// rounded result must follow with Round or RoundDown.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

// MulInt returns m multiplied by a whole number.
func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n))}
}

// DivInt returns m divided by a whole number, unrounded.
func (m Money) DivInt(n int64) Money {
	return Money{amount: m.amount.Div(decimal.NewFromInt(n))}
}

// Ratio returns m / denom as a plain decimal, or zero when denom is zero.
// Used for savings-rate and spend-ratio calculations.
func (m Money) Ratio(denom Money) decimal.Decimal {
	if denom.amount.IsZero() {
		return decimal.Zero
	}
	return m.amount.Div(denom.amount)
}

// RoundDown truncates toward zero at the given number of decimal places.
// This is the rounding mode for amounts owed to the state (taxes,
// insurance): the player is never charged a fraction of a minor unit up.
func (m Money) RoundDown(places int32) Money {
	return Money{amount: m.amount.RoundDown(places)}
}

// Round rounds half away from zero at the given number of decimal places.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places)}
}

// Cmp returns -1, 0 or 1.
func (m Money) Cmp(o Money) int { return m.amount.Cmp(o.amount) }

// Equal reports whether the two amounts are numerically equal.
func (m Money) Equal(o Money) bool { return m.amount.Equal(o.amount) }

// GreaterThan reports m > o.
func (m Money) GreaterThan(o Money) bool { return m.amount.GreaterThan(o.amount) }

// GreaterThanOrEqual reports m >= o.
func (m Money) GreaterThanOrEqual(o Money) bool { return m.amount.GreaterThanOrEqual(o.amount) }

// LessThan reports m < o.
func (m Money) LessThan(o Money) bool { return m.amount.LessThan(o.amount) }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// MaxMoney returns the larger of a and b.
func MaxMoney(a, b Money) Money {
	if a.GreaterThanOrEqual(b) {
		return a
	}
	return b
}

// MinMoney returns the smaller of a and b.
func MinMoney(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// String renders the plain decimal form.
func (m Money) String() string { return m.amount.String() }

// StringFixed renders with a fixed number of decimal places.
func (m Money) StringFixed(places int32) string { return m.amount.StringFixed(places) }

// MarshalYAML encodes the amount as a decimal string.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.amount.String(), nil
}

// UnmarshalYAML decodes a decimal scalar (quoted or not).
func (m *Money) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalJSON encodes the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.amount.MarshalJSON()
}

// UnmarshalJSON decodes a decimal number or string.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.amount.UnmarshalJSON(data)
}
