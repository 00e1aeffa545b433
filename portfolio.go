package depot

// Position is a held quantity of a single priced instrument. Positions are
// reference data for a run: they never change during one evaluation.
type Position struct {
	Ticker     string
	Name       string // optional display name
	Quantity   Quantity
	IntradayID string // optional intraday instrument id, see intraday.go
}

// Portfolio is a cash amount plus an ordered list of positions. Its market
// value is recomputed from scratch on every evaluation; nothing here is
// persisted.
type Portfolio struct {
	Cash      Money
	Positions []Position
}

// Currency returns the portfolio's reporting currency, taken from its cash
// position.
func (p Portfolio) Currency() string { return p.Cash.Currency() }

// Tickers returns the tickers of all positions, in portfolio order.
func (p Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p.Positions))
	for _, pos := range p.Positions {
		tickers = append(tickers, pos.Ticker)
	}
	return tickers
}
