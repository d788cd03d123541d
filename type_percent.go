package club

import (
	"fmt"
	"math"
)

// Percent is a percentage value: 12.5 means 12.5%.
type Percent float64

// Pct converts a ratio (0.125) into a Percent (12.5%).
// NaN and infinite ratios are reported as 0.
func Pct(ratio float64) Percent {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return Percent(ratio * 100)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
