package depot

import (
	"iter"
	"maps"
	"slices"
)

// MarketData holds daily close and open prices for a set of tickers. It is
// rebuilt from the providers on every run and never persisted.
//
// The collection is deliberately tolerant: unknown tickers, sparse coverage
// and duplicate provider timestamps are all absorbed here so that valuations
// never have to care.
type MarketData struct {
	closes map[string]*History[float64]
	opens  map[string]*History[float64]
}

// NewMarketData returns a new empty market data collection.
func NewMarketData() *MarketData {
	return &MarketData{
		closes: make(map[string]*History[float64]),
		opens:  make(map[string]*History[float64]),
	}
}

func (m *MarketData) Has(ticker string) bool {
	_, ok := m.closes[ticker]
	return ok
}

// AddClose records a close price for a ticker on a day. An existing price on
// that day is overwritten.
func (m *MarketData) AddClose(ticker string, on Date, price float64) {
	h, ok := m.closes[ticker]
	if !ok {
		h = &History[float64]{}
		m.closes[ticker] = h
	}
	h.Append(on, price)
}

// AddOpen records an open price for a ticker on a day.
func (m *MarketData) AddOpen(ticker string, on Date, price float64) {
	h, ok := m.opens[ticker]
	if !ok {
		h = &History[float64]{}
		m.opens[ticker] = h
	}
	h.Append(on, price)
}

// Price returns the close price for a ticker on exactly that day.
func (m *MarketData) Price(ticker string, on Date) (float64, bool) {
	h, ok := m.closes[ticker]
	if !ok {
		return 0, false
	}
	return h.Get(on)
}

// PriceAsOf returns the latest known close price at or before the given day
// (forward-fill), or false if the ticker has no price on or before that day.
func (m *MarketData) PriceAsOf(ticker string, on Date) (float64, bool) {
	h, ok := m.closes[ticker]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(on)
}

// ChangeAsOf returns the forward-filled close at or before a day together
// with the reference price for a day-over-day delta: the close of the
// preceding trading day, or the day's open when no earlier close exists.
// ok is false when there is nothing to compare with.
func (m *MarketData) ChangeAsOf(ticker string, on Date) (cur, prev float64, ok bool) {
	h, found := m.closes[ticker]
	if !found {
		return 0, 0, false
	}
	when, cur, found := h.AsOf(on)
	if !found {
		return 0, 0, false
	}
	if _, prev, ok := h.AsOf(when.Add(-1)); ok {
		return cur, prev, true
	}
	if o := m.opens[ticker]; o != nil {
		if v, ok := o.Get(when); ok && v > 0 {
			return cur, v, true
		}
	}
	return cur, 0, false
}

// LastTradingDayBefore returns the most recent date strictly before 'on' at
// which any of the given tickers has a close.
func (m *MarketData) LastTradingDayBefore(on Date, tickers []string) (Date, bool) {
	var best Date
	var found bool
	for _, ticker := range tickers {
		h, ok := m.closes[ticker]
		if !ok {
			continue
		}
		when, _, ok := h.AsOf(on.Add(-1))
		if !ok {
			continue
		}
		if !found || when.After(best) {
			best, found = when, true
		}
	}
	return best, found
}

// Tickers iterates over all tickers with close prices, in sorted order.
func (m *MarketData) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, ticker := range slices.Sorted(maps.Keys(m.closes)) {
			if !yield(ticker) {
				return
			}
		}
	}
}
