// Package odds interprets bookmaker quotes from the market feed and finds the
// best available American-odds price per team.
package odds

import (
	"github.com/yourusername/diamond-edge/internal/models"
)

// PriceQuote is the best price found for a team, with the book offering it.
// Point is carried through for spread markets only.
type PriceQuote struct {
	Price     int
	Bookmaker string
	Point     *float64
}

// BestPrice scans every bookmaker's market of the given kind for outcomes
// matching teamName and returns the best price found. Matching is exact
// against the feed's own naming; canonical id resolution happens after this
// step, not here.
//
// The comparison follows the American-odds convention: a positive candidate
// wins if it is larger than the incumbent, a negative candidate wins if its
// absolute value is smaller than the incumbent's. Each test runs against the
// incumbent regardless of its sign, so a scan over mixed-sign quotes keeps
// the last candidate whose test passed. A candidate equal to the incumbent
// never replaces it.
func BestPrice(teamName string, bookmakers []models.Bookmaker, kind models.MarketKind) (PriceQuote, bool) {
	var best PriceQuote
	found := false

	for _, bookmaker := range bookmakers {
		for _, market := range bookmaker.Markets {
			if market.Key != kind {
				continue
			}
			for _, outcome := range market.Outcomes {
				if outcome.Name != teamName || outcome.Price == 0 {
					continue
				}
				if !found || beats(outcome.Price, best.Price) {
					best = PriceQuote{
						Price:     outcome.Price,
						Bookmaker: bookmaker.Title,
						Point:     outcome.Point,
					}
					found = true
				}
			}
		}
	}
	return best, found
}

// beats reports whether candidate is a better price than incumbent:
// more underdog payout for positive prices, less favorite risk for negative.
func beats(candidate, incumbent int) bool {
	if candidate > 0 {
		return candidate > incumbent
	}
	return abs(candidate) < abs(incumbent)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
