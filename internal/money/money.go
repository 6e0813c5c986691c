// Package money provides exact decimal arithmetic for the wage-tax
// computation. The statutory procedure prescribes the rounding direction of
// every scaling step individually, so all operations that change scale take
// an explicit Mode; half-even or half-up rounding is deliberately not
// offered.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned when a divisor is zero. Inside the statutory
// algorithm this can only happen through a programming error, never through
// a valid profile.
var ErrDivisionByZero = errors.New("money: division by zero")

// Mode selects a rounding direction.
type Mode int

const (
	// RoundDown truncates toward zero.
	RoundDown Mode = iota
	// RoundUp rounds away from zero.
	RoundUp
)

// Amount is an immutable exact decimal value.
type Amount struct {
	d decimal.Decimal
}

var zero = Amount{}

// Zero returns the zero amount.
func Zero() Amount { return zero }

// FromInt builds an Amount from an integer number of units.
func FromInt(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// FromCents builds an Amount from a count of hundredths.
func FromCents(v int64) Amount {
	return Amount{decimal.New(v, -2)}
}

// FromString parses a decimal literal. Intended for constants; invalid
// literals are rejected.
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return zero, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return Amount{d}, nil
}

// MustParse parses a decimal literal and panics on failure. For use with
// compile-time constant tables only.
func MustParse(s string) Amount {
	a, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Add(b Amount) Amount { return Amount{a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount { return Amount{a.d.Sub(b.d)} }
func (a Amount) Mul(b Amount) Amount { return Amount{a.d.Mul(b.d)} }
func (a Amount) Neg() Amount         { return Amount{a.d.Neg()} }

// Cmp returns -1, 0 or 1 comparing a against b.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) IsZero() bool     { return a.d.IsZero() }
func (a Amount) IsNegative() bool { return a.d.IsNegative() }

// Min returns the smaller of a and b.
func (a Amount) Min(b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func (a Amount) Max(b Amount) Amount {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// FloorZero clamps negative values to zero.
func (a Amount) FloorZero() Amount {
	if a.IsNegative() {
		return zero
	}
	return a
}

// Div divides a by b and rescales the quotient to places decimal digits in
// the given direction. The quotient is computed with guard digits so the
// final rounding step is the only one that loses information.
func (a Amount) Div(b Amount, places int32, m Mode) (Amount, error) {
	if b.IsZero() {
		return zero, ErrDivisionByZero
	}
	q := a.d.DivRound(b.d, places+8)
	return Amount{q}.Rescale(places, m), nil
}

// Rescale rounds a to places decimal digits in the given direction.
func (a Amount) Rescale(places int32, m Mode) Amount {
	switch m {
	case RoundUp:
		return Amount{a.d.RoundUp(places)}
	default:
		return Amount{a.d.RoundDown(places)}
	}
}

// Float64 converts to a binary float. Only for display and serialization at
// the outermost boundary, never for further arithmetic.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// String renders the exact decimal value.
func (a Amount) String() string { return a.d.String() }

// StringFixed renders with exactly places decimal digits.
func (a Amount) StringFixed(places int32) string { return a.d.StringFixed(places) }

// MarshalJSON renders the amount as a JSON number with its exact scale.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("money: unmarshal: %w", err)
	}
	a.d = d
	return nil
}
