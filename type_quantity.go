package club

import (
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a number of units: asset units in a lot or member shares.
type Quantity struct {
	value decimal.Decimal
}

// Q returns a Quantity for value.
func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a decimal quantity like "12.5".
func ParseQuantity(s string) (Quantity, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v}, nil
}

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) Add(p Quantity) Quantity     { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity     { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) Float() float64              { return q.value.InexactFloat64() }
func (q Quantity) String() string              { return q.value.String() }

// Max returns the greater of q and p.
func (q Quantity) Max(p Quantity) Quantity {
	if q.value.LessThan(p.value) {
		return p
	}
	return q
}

// MarshalJSON writes the quantity as a plain JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) { return []byte(q.value.String()), nil }

// UnmarshalJSON reads a JSON number or a quoted decimal.
func (q *Quantity) UnmarshalJSON(data []byte) error { return q.value.UnmarshalJSON(data) }

// MarshalText encodes the quantity for text and binary codecs.
func (q Quantity) MarshalText() ([]byte, error) { return q.value.MarshalText() }

// UnmarshalText is the reverse of MarshalText.
func (q *Quantity) UnmarshalText(text []byte) error { return q.value.UnmarshalText(text) }
