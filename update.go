package depot

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
)

// updateConcurrency bounds the number of provider requests in flight.
const updateConcurrency = 4

// UpdateDaily fetches the daily close and open prices for all given tickers
// and records them. Symbols are fetched concurrently; a failed symbol is a
// soft failure that leaves the rest of the update intact. The returned error
// joins all per-symbol failures and is informational: the caller should log
// it and keep going with whatever data arrived.
func (m *MarketData) UpdateDaily(apiKey string, tickers []string, from, to Date) error {
	var mu sync.Mutex
	var errs []error

	g := new(errgroup.Group)
	g.SetLimit(updateConcurrency)
	for _, ticker := range tickers {
		g.Go(func() error {
			open, close, err := eodhdDaily(apiKey, ticker, from, to)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("no daily prices for %s: %w", ticker, err))
				return nil
			}
			for on, price := range close.Values() {
				m.AddClose(ticker, on, price)
			}
			for on, price := range open.Values() {
				m.AddOpen(ticker, on, price)
			}
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}

// UpdateIntraday fetches the latest intraday quote for every position that
// carries an intraday instrument id and records it as today's close,
// overriding the (possibly stale) daily close. Positions without an id keep
// their last known daily price. Failures are per-symbol and joined.
func (m *MarketData) UpdateIntraday(positions []Position) error {
	var mu sync.Mutex
	var errs []error

	client := new(http.Client)
	today := Today()

	g := new(errgroup.Group)
	g.SetLimit(updateConcurrency)
	for _, pos := range positions {
		if pos.IntradayID == "" {
			continue
		}
		g.Go(func() error {
			latest, err := intradayLatest(client, pos.IntradayID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("no intraday quote for %s: %w", pos.Ticker, err))
				return nil
			}
			m.AddClose(pos.Ticker, today, latest)
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}
