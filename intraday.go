package depot

import (
	"fmt"
	"math"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

// Intraday quotes come from the Lang & Schwarz JSON chart endpoint, which has
// no schema to speak of; jsonpath digs the latest tick out of it. A position
// opts in by carrying an intraday instrument id in the configuration.
//
// This replaces the old habit of hardcoding fallback prices for specific
// tickers: a symbol without an intraday id simply keeps its last known daily
// close (forward-fill), which is the generic fallback policy.

// intradayBaseURL is a variable so tests can point the fetcher at a stub server.
var intradayBaseURL = "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument"

/*
	{
	    "info": {
	        "isin": "LS000IUSD016",
	        "chartType": "mini",
	        ...
	    },
	    "series": {
	        "intraday": {
	            "data": [[1693809000000, 101.3], ...]
	        }
	    }
	}
*/
func intradayLatest(client *http.Client, instrumentID string) (float64, error) {
	addr := fmt.Sprintf("%s?instrumentId=%s&series=intraday&type=mini", intradayBaseURL, instrumentID)
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", instrumentID, err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing instrument %q: %q %w", instrumentID, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing instrument %q: %q not a float: %v", instrumentID, path, jval)
	}
	return val, nil
}
