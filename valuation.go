package depot

import (
	"fmt"
	"math"
)

// QuoteFunc looks up the current price of a ticker. The boolean is false when
// the provider has no price for that symbol.
type QuoteFunc func(ticker string) (float64, bool)

// usable reports whether a quoted price may enter a valuation. Zero and
// negative prices are treated exactly like missing ones: providers have been
// seen returning 0 during outages, and a 0 close is never a real price.
func usable(price float64, ok bool) bool {
	return ok && !math.IsNaN(price) && !math.IsInf(price, 0) && price > 0
}

// TotalValue computes the portfolio's market value: cash plus the sum of
// quantity times price over every position with a usable quote.
//
// A position without a usable quote contributes nothing; it is excluded, not
// an error, so a provider outage on one symbol degrades a single line item
// instead of aborting the whole evaluation.
func (p Portfolio) TotalValue(quote QuoteFunc) Money {
	total := p.Cash
	for _, pos := range p.Positions {
		price, ok := quote(pos.Ticker)
		if !usable(price, ok) {
			continue
		}
		total = total.Add(M(price, p.Currency()).Mul(pos.Quantity))
	}
	return total
}

// ValueOn computes the portfolio's market value on a given day, using for
// each position the latest known price at or before that day (forward-fill).
func (p Portfolio) ValueOn(market *MarketData, on Date) Money {
	return p.TotalValue(func(ticker string) (float64, bool) {
		return market.PriceAsOf(ticker, on)
	})
}

// OwnerShare returns the monetary amount corresponding to a stakeholder's
// percentage of a total value. Percentages outside [0, 100] are a
// configuration error and are rejected, never clamped.
func OwnerShare(total Money, p Percent) (Money, error) {
	if err := p.Check(); err != nil {
		return Money{}, fmt.Errorf("cannot compute owner share: %w", err)
	}
	return total.Share(p), nil
}

// ValuePoint is the portfolio (or share) value at a historical checkpoint.
type ValuePoint struct {
	Date  Date
	Value Money
}

// ValueSeries reconstructs the portfolio value at every date any of its
// positions has a quote for. Prices are forward-filled per symbol; a symbol
// without any prior price on a date is simply excluded on that date.
//
// The series assumes quantities were constant over the whole period: it does
// not model trades, splits, or dividend reinvestment. It is a pure function
// of its inputs.
func (p Portfolio) ValueSeries(market *MarketData) []ValuePoint {
	series := make([][]Date, 0, len(p.Positions))
	for _, pos := range p.Positions {
		if h := market.closes[pos.Ticker]; h != nil {
			series = append(series, h.Days())
		}
	}

	var points []ValuePoint
	for on := range iterate(series...) {
		points = append(points, ValuePoint{Date: on, Value: p.ValueOn(market, on)})
	}
	return points
}

// ShareSeries applies a stakeholder's percentage to every point of a value
// series and drops points whose share value is below floor. The floor
// suppresses near-zero early entries from before a stakeholder joined, which
// would otherwise dominate a chart's scale.
func ShareSeries(points []ValuePoint, p Percent, floor Money) ([]ValuePoint, error) {
	if err := p.Check(); err != nil {
		return nil, fmt.Errorf("cannot compute share series: %w", err)
	}
	shares := make([]ValuePoint, 0, len(points))
	for _, pt := range points {
		share := pt.Value.Share(p)
		if share.LessThan(floor) {
			continue
		}
		shares = append(shares, ValuePoint{Date: pt.Date, Value: share})
	}
	return shares, nil
}

// Resample keeps, for each period, the last point falling inside it. It turns
// a daily value series into the monthly curve the dashboard charts.
func Resample(points []ValuePoint, period Period) []ValuePoint {
	if period == Daily || len(points) == 0 {
		return points
	}
	var out []ValuePoint
	for _, pt := range points {
		end := pt.Date.EndOf(period)
		if len(out) > 0 && out[len(out)-1].Date.EndOf(period) == end {
			out[len(out)-1] = pt
			continue
		}
		out = append(out, pt)
	}
	return out
}
