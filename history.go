package club

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/etnz/club/date"
)

// ErrOutOfOrder is returned when a history point is not after the last one.
var ErrOutOfOrder = errors.New("history point out of order")

// History seeding parameters.
const (
	HistoryMonths    = 60    // length of a generated history
	MinHistoryPoints = 50    // shorter stored histories are regenerated
	InitialNAV       = 25000 // NAV of the first generated month
	InitialBenchmark = 4000  // benchmark index of the first generated month
)

// PerformancePoint is one month end of the NAV history.
type PerformancePoint struct {
	Date       date.Date `json:"date"`
	NAV        float64   `json:"nav"`
	ShareValue float64   `json:"shareValue"`
	Benchmark  float64   `json:"benchmark"`
}

// GenerateHistory returns a random-walk history of HistoryMonths month ends,
// the last one being the end of the month before today.
// rnd returns uniform numbers in [0, 1).
func GenerateHistory(today date.Date, rnd func() float64) []PerformancePoint {
	if rnd == nil {
		rnd = rand.Float64
	}
	start := date.New(today.Year()-5, today.Month(), 1)
	nav, benchmark := float64(InitialNAV), float64(InitialBenchmark)
	history := make([]PerformancePoint, 0, HistoryMonths)
	for i := range HistoryMonths {
		nav *= 1 + (rnd()-0.45)*0.10
		benchmark *= 1 + (rnd()-0.47)*0.08
		history = append(history, PerformancePoint{
			Date:       start.AddMonth(i).EndOf(date.Monthly),
			NAV:        math.Round(nav),
			ShareValue: round2(100 * nav / InitialNAV),
			Benchmark:  math.Round(benchmark),
		})
	}
	return history
}

// NeedsMigration returns true when a stored history is too short to be kept.
func NeedsMigration(history []PerformancePoint) bool { return len(history) < MinHistoryPoints }

// AppendPoint returns history with p appended. p must be dated after the last
// point.
func AppendPoint(history []PerformancePoint, p PerformancePoint) ([]PerformancePoint, error) {
	if n := len(history); n > 0 && !p.Date.After(history[n-1].Date) {
		return history, fmt.Errorf("%w: %s is not after %s", ErrOutOfOrder, p.Date, history[n-1].Date)
	}
	return append(history[:len(history):len(history)], p), nil
}

// MonthEnd builds the history point recording the live valuation at the end
// of the month of on. A zero benchmark carries the last one forward.
func MonthEnd(d ClubData, on date.Date, benchmark float64) PerformancePoint {
	if benchmark == 0 {
		benchmark = InitialBenchmark
		if n := len(d.PerformanceHistory); n > 0 {
			benchmark = d.PerformanceHistory[n-1].Benchmark
		}
	}
	return PerformancePoint{
		Date:       on.EndOf(date.Monthly),
		NAV:        math.Round(d.TotalValue.Float()),
		ShareValue: round2(d.ShareValue.Float()),
		Benchmark:  benchmark,
	}
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
