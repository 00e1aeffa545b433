package depot

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpdateDaily(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/BAD.F") {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		w.Write([]byte(`[{"date":"2025-08-01","open":10,"adjusted_close":11}]`))
	}))
	defer server.Close()

	old := eodhdBaseURL
	eodhdBaseURL = server.URL
	defer func() { eodhdBaseURL = old }()

	m := NewMarketData()
	err := m.UpdateDaily("demo", []string{"AAA.F", "BAD.F"}, NewDate(2025, 8, 1), NewDate(2025, 8, 1))

	// The failed symbol is reported but does not block the other.
	if err == nil {
		t.Error("UpdateDaily() expected a joined error for BAD.F, got nil")
	}
	if v, ok := m.Price("AAA.F", NewDate(2025, 8, 1)); !ok || v != 11 {
		t.Errorf("close for AAA.F = (%v, %v), want (11, true)", v, ok)
	}
	if m.Has("BAD.F") {
		t.Error("BAD.F should have no prices")
	}
}

func TestUpdateIntraday(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"series": {"intraday": {"data": [[1693809000000, 42.5]]}}}`))
	}))
	defer server.Close()

	old := intradayBaseURL
	intradayBaseURL = server.URL
	defer func() { intradayBaseURL = old }()

	positions := []Position{
		{Ticker: "AAA", Quantity: Q(1), IntradayID: "43763"},
		{Ticker: "BBB", Quantity: Q(1)}, // no intraday id, skipped
	}

	m := NewMarketData()
	if err := m.UpdateIntraday(positions); err != nil {
		t.Fatalf("UpdateIntraday() error = %v", err)
	}

	if v, ok := m.Price("AAA", Today()); !ok || v != 42.5 {
		t.Errorf("intraday close for AAA = (%v, %v), want (42.5, true)", v, ok)
	}
	if m.Has("BBB") {
		t.Error("BBB should have no prices")
	}
}
