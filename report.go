package depot

import "fmt"

// PositionRow is one line of the daily report.
type PositionRow struct {
	Ticker    string
	Name      string
	Quantity  Quantity
	Price     Money   // zero when unpriced
	Value     Money   // zero when unpriced
	Weight    Percent // share of total value
	DayChange Percent // close vs previous close
	DayGain   Money   // day change in money, for the whole position
	Priced    bool    // false when the position had no usable quote
}

// StakeholderBalance is one stakeholder's slice of the total value.
type StakeholderBalance struct {
	Name       string
	Percentage Percent
	Value      Money
}

// DailyReport is the at-a-glance state of the portfolio on a given day:
// total value, per-position detail, day-over-day movement, and every
// stakeholder's balance.
type DailyReport struct {
	Date          Date
	Currency      string
	TotalValue    Money
	PreviousValue Money // value on the last trading day before Date, zero if unknown
	Rows          []PositionRow
	Balances      []StakeholderBalance

	// Best day performers, nil when no position has two closes to compare.
	BestChange *PositionRow
	BestGain   *PositionRow
}

// NewDailyReport values the portfolio on a day and assembles the report.
// Unpriced positions are reported as such, they never fail the report.
func NewDailyReport(p Portfolio, market *MarketData, ledger *Ledger, on Date) *DailyReport {
	report := &DailyReport{
		Date:     on,
		Currency: p.Currency(),
	}
	report.TotalValue = p.ValueOn(market, on)
	if prev, ok := market.LastTradingDayBefore(on, p.Tickers()); ok {
		report.PreviousValue = p.ValueOn(market, prev)
	}

	bestChange, bestGain := -1, -1
	for _, pos := range p.Positions {
		row := PositionRow{Ticker: pos.Ticker, Name: pos.Name, Quantity: pos.Quantity}

		price, ok := market.PriceAsOf(pos.Ticker, on)
		if usable(price, ok) {
			row.Priced = true
			row.Price = M(price, p.Currency())
			row.Value = row.Price.Mul(pos.Quantity)
			if report.TotalValue.IsPositive() {
				row.Weight = row.Value.PercentOf(report.TotalValue)
			}
			if cur, prev, ok := market.ChangeAsOf(pos.Ticker, on); ok && prev > 0 {
				row.DayChange = Percent((cur - prev) / prev * 100)
				row.DayGain = M(cur-prev, p.Currency()).Mul(pos.Quantity)

				i := len(report.Rows)
				if bestChange < 0 || row.DayChange > report.Rows[bestChange].DayChange {
					bestChange = i
				}
				if bestGain < 0 || row.DayGain.GreaterThan(report.Rows[bestGain].DayGain) {
					bestGain = i
				}
			}
		}
		report.Rows = append(report.Rows, row)
	}
	if bestChange >= 0 {
		report.BestChange = &report.Rows[bestChange]
	}
	if bestGain >= 0 {
		report.BestGain = &report.Rows[bestGain]
	}

	if ledger != nil {
		for name := range ledger.Stakeholders() {
			pct, _ := ledger.Percentage(name)
			report.Balances = append(report.Balances, StakeholderBalance{
				Name:       name,
				Percentage: pct,
				Value:      report.TotalValue.Share(pct),
			})
		}
	}
	return report
}

// DayDelta returns the change of total value since the previous trading day,
// and the same change as a percentage of the previous value. ok is false when
// there is no previous value to compare with.
func (r *DailyReport) DayDelta() (delta Money, change Percent, ok bool) {
	if r.PreviousValue.IsZero() {
		return Money{}, 0, false
	}
	delta = r.TotalValue.Sub(r.PreviousValue)
	return delta, delta.PercentOf(r.PreviousValue), true
}

// HistoryReport is a stakeholder's share value reconstructed over time.
type HistoryReport struct {
	Stakeholder string
	Percentage  Percent
	Currency    string
	Period      Period
	Entries     []ValuePoint
}

// NewHistoryReport reconstructs what a stakeholder's share was worth at each
// historical checkpoint, resampled to the given period. Points below floor
// are dropped (see ShareSeries).
func NewHistoryReport(p Portfolio, market *MarketData, ledger *Ledger, stakeholder string, period Period, floor Money) (*HistoryReport, error) {
	pct, ok := ledger.Percentage(stakeholder)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, stakeholder)
	}

	shares, err := ShareSeries(p.ValueSeries(market), pct, floor)
	if err != nil {
		return nil, err
	}
	return &HistoryReport{
		Stakeholder: stakeholder,
		Percentage:  pct,
		Currency:    p.Currency(),
		Period:      period,
		Entries:     Resample(shares, period),
	}, nil
}
