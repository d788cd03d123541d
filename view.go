package club

import (
	"fmt"
	"strings"
)

// View selects the holdings analysed by risk, stress and allocation tools:
// the whole club or a single sub-portfolio.
type View string

// Combined is the club-wide view.
const Combined View = "COMBINED"

// Views lists the available views.
var Views = []View{Combined, View(Phronesis), View(FlagShip)}

// ParseView parses a view name. An empty name is the combined view.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "combined", "all":
		return Combined, nil
	}
	p, err := ParsePortfolio(s)
	if err != nil {
		return "", fmt.Errorf("unknown view %q: %w", s, err)
	}
	return View(p), nil
}

// Name returns the display name of the view.
func (v View) Name() string {
	if v == Combined {
		return "Combined"
	}
	return PortfolioID(v).Name()
}

// Select returns the holdings, cash and total value of a view. For the
// combined view the returned ID is empty.
func (d ClubData) Select(v View) PortfolioState {
	if v == Combined || v == "" {
		return PortfolioState{Holdings: d.Holdings, Cash: d.Cash, TotalValue: d.TotalValue}
	}
	return d.Portfolios[PortfolioID(v)]
}
