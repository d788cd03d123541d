package club

import (
	"math"
	"slices"

	"github.com/etnz/club/date"
	"gonum.org/v1/gonum/stat"
)

// RiskFreeRate is the annual risk-free rate used by the Sharpe ratio.
const RiskFreeRate = 0.02

// MonthlyReturn is the return of the NAV and of the benchmark over the month
// ending on Date.
type MonthlyReturn struct {
	Date      date.Date `json:"date"`
	NAV       float64   `json:"nav"`
	Benchmark float64   `json:"benchmark"`
}

// change returns (b-a)/a, 0 when a is zero.
func change(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	return (b - a) / a
}

// MonthlyReturns returns one return per history point after the first.
func MonthlyReturns(history []PerformancePoint) []MonthlyReturn {
	if len(history) < 2 {
		return nil
	}
	returns := make([]MonthlyReturn, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		returns = append(returns, MonthlyReturn{
			Date:      cur.Date,
			NAV:       change(prev.NAV, cur.NAV),
			Benchmark: change(prev.Benchmark, cur.Benchmark),
		})
	}
	return returns
}

// Stats summarizes a NAV history. Ratios are fractions: 0.12 is 12%.
type Stats struct {
	CumulativeReturn     float64 `json:"cumulativeReturn"`
	AnnualizedReturn     float64 `json:"annualizedReturn"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
	SharpeRatio          float64 `json:"sharpeRatio"` // 0 when the volatility is 0
	MaxDrawdown          float64 `json:"maxDrawdown"` // <= 0
	BenchmarkReturn      float64 `json:"benchmarkReturn"`
}

// ComputeStats computes the performance statistics of a monthly history.
// A history of less than two points has all-zero statistics.
func ComputeStats(history []PerformancePoint) Stats {
	n := len(history)
	if n < 2 {
		return Stats{}
	}
	first, last := history[0], history[n-1]
	s := Stats{
		CumulativeReturn: change(first.NAV, last.NAV),
		BenchmarkReturn:  change(first.Benchmark, last.Benchmark),
		MaxDrawdown:      MaxDrawdown(history),
	}
	s.AnnualizedReturn = AnnualizedReturn(s.CumulativeReturn, n)

	navReturns := make([]float64, 0, n-1)
	for _, r := range MonthlyReturns(history) {
		navReturns = append(navReturns, r.NAV)
	}
	s.AnnualizedVolatility = AnnualizedVolatility(navReturns)
	if s.AnnualizedVolatility > 0 {
		s.SharpeRatio = (s.AnnualizedReturn - RiskFreeRate) / s.AnnualizedVolatility
	}
	return s
}

// AnnualizedReturn compounds a cumulative return earned over n months into a
// yearly rate. A total loss is reported as -1.
func AnnualizedReturn(cumulative float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if 1+cumulative <= 0 {
		return -1
	}
	years := float64(n) / 12
	return math.Pow(1+cumulative, 1/years) - 1
}

// AnnualizedVolatility returns the population standard deviation of monthly
// returns scaled to a year.
func AnnualizedVolatility(monthly []float64) float64 {
	if len(monthly) == 0 {
		return 0
	}
	return stat.PopStdDev(monthly, nil) * math.Sqrt(12)
}

// Drawdowns returns, for each history point, the relative decline of the NAV
// from its running peak. Values are <= 0.
func Drawdowns(history []PerformancePoint) []float64 {
	dd := make([]float64, len(history))
	peak := math.Inf(-1)
	for i, p := range history {
		peak = max(peak, p.NAV)
		if peak > 0 {
			dd[i] = (p.NAV - peak) / peak
		}
	}
	return dd
}

// MaxDrawdown returns the deepest drawdown of the history, 0 for a never
// declining NAV.
func MaxDrawdown(history []PerformancePoint) float64 {
	var worst float64
	for _, d := range Drawdowns(history) {
		worst = min(worst, d)
	}
	return worst
}

// AnnualReturn is the return of a calendar year, measured between the first
// and the last history point of that year.
type AnnualReturn struct {
	Year      int     `json:"year"`
	NAV       float64 `json:"nav"`
	Benchmark float64 `json:"benchmark"`
}

// AnnualReturns returns one row per calendar year, newest first.
func AnnualReturns(history []PerformancePoint) []AnnualReturn {
	type bounds struct{ first, last PerformancePoint }
	years := make(map[int]*bounds)
	for _, p := range history {
		b, ok := years[p.Date.Year()]
		if !ok {
			b = &bounds{first: p}
			years[p.Date.Year()] = b
		}
		b.last = p
	}
	rows := make([]AnnualReturn, 0, len(years))
	for year, b := range years {
		rows = append(rows, AnnualReturn{
			Year:      year,
			NAV:       change(b.first.NAV, b.last.NAV),
			Benchmark: change(b.first.Benchmark, b.last.Benchmark),
		})
	}
	slices.SortFunc(rows, func(a, b AnnualReturn) int { return b.Year - a.Year })
	return rows
}

// TrackRecordRow is one line of the exported track record.
type TrackRecordRow struct {
	Date          date.Date `json:"date"`
	NAV           float64   `json:"nav"`
	Benchmark     float64   `json:"benchmark"`
	MonthlyReturn Percent   `json:"monthlyReturn"` // 0 for the first point
	Drawdown      Percent   `json:"drawdown"`
}

// TrackRecord returns the history with its monthly returns and drawdowns.
func TrackRecord(history []PerformancePoint) []TrackRecordRow {
	dd := Drawdowns(history)
	rows := make([]TrackRecordRow, len(history))
	for i, p := range history {
		rows[i] = TrackRecordRow{Date: p.Date, NAV: p.NAV, Benchmark: p.Benchmark, Drawdown: Pct(dd[i])}
		if i > 0 {
			rows[i].MonthlyReturn = Pct(change(history[i-1].NAV, p.NAV))
		}
	}
	return rows
}
