package club

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single reporting currency of the club.
const Currency = "USD"

// Money represents a monetary value in the club currency.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M returns a Money for value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal amount like "1250.50".
func ParseMoney(s string) (Money, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, err
	}
	return Money{value: v}, nil
}

// currency returns the club currency details.
func currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, Currency).Currency()
}

// String returns the string representation of the money value, like "$1,250.50".
func (m Money) String() string {
	cur := currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.Round(2).IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Cmp(n Money) int                 { return m.value.Cmp(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value)} }
func (m Money) Div(n Quantity) Money            { return Money{value: m.value.Div(n.value)} }
func (m Money) Round(places int32) Money        { return Money{value: m.value.Round(places)} }

// DivPrice returns how many units of price m can pay for.
func (m Money) DivPrice(price Money) Quantity { return Quantity{value: m.value.Div(price.value)} }

// Ratio returns m/n as a float, 0 when n is zero.
func (m Money) Ratio(n Money) float64 {
	if n.value.IsZero() {
		return 0
	}
	return m.value.Div(n.value).InexactFloat64()
}

// Scale returns m multiplied by a float factor (percentages, random walks).
func (m Money) Scale(f float64) Money { return Money{value: m.value.Mul(decimal.NewFromFloat(f))} }

// Float returns the value as a float64 for analytics.
func (m Money) Float() float64 { return m.value.InexactFloat64() }

// Plain returns the value with two decimals and no formatting, as used in CSV files.
func (m Money) Plain() string { return m.value.StringFixed(2) }

// Sum adds up all amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON writes the amount as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.value.String()), nil }

// UnmarshalJSON reads a JSON number or a quoted decimal.
func (m *Money) UnmarshalJSON(data []byte) error { return m.value.UnmarshalJSON(data) }

// MarshalText encodes the amount for text and binary codecs.
func (m Money) MarshalText() ([]byte, error) { return m.value.MarshalText() }

// UnmarshalText is the reverse of MarshalText.
func (m *Money) UnmarshalText(text []byte) error { return m.value.UnmarshalText(text) }
