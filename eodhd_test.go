package depot

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEodhdDaily(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/eod/NVD.F" {
			t.Errorf("request path = %q, want /eod/NVD.F", got)
		}
		if got := r.URL.Query().Get("api_token"); got != "demo" {
			t.Errorf("api_token = %q, want demo", got)
		}
		w.Write([]byte(`[
			{"date":"2025-08-01","open":100.5,"high":0,"low":0,"close":0,"adjusted_close":101.25,"volume":0},
			{"date":"2025-08-04","open":102,"high":0,"low":0,"close":0,"adjusted_close":103.5,"volume":0}
		]`))
	}))
	defer server.Close()

	old := eodhdBaseURL
	eodhdBaseURL = server.URL
	defer func() { eodhdBaseURL = old }()

	open, close, err := eodhdDaily("demo", "NVD.F", NewDate(2025, 8, 1), NewDate(2025, 8, 4))
	if err != nil {
		t.Fatalf("eodhdDaily() error = %v", err)
	}

	if close.Len() != 2 || open.Len() != 2 {
		t.Fatalf("got %d closes and %d opens, want 2 and 2", close.Len(), open.Len())
	}
	if v, ok := close.Get(NewDate(2025, 8, 1)); !ok || v != 101.25 {
		t.Errorf("close on 2025-08-01 = (%v, %v), want (101.25, true)", v, ok)
	}
	if v, ok := open.Get(NewDate(2025, 8, 4)); !ok || v != 102 {
		t.Errorf("open on 2025-08-04 = (%v, %v), want (102, true)", v, ok)
	}
}

func TestEodhdDailyHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	old := eodhdBaseURL
	eodhdBaseURL = server.URL
	defer func() { eodhdBaseURL = old }()

	if _, _, err := eodhdDaily("bad", "NVD.F", Today(), Today()); err == nil {
		t.Error("eodhdDaily() expected an error, got nil")
	}
}

func TestIntradayLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("instrumentId"); got != "43763" {
			t.Errorf("instrumentId = %q, want 43763", got)
		}
		w.Write([]byte(`{
			"info": {"isin": "LS000IUSD016", "chartType": "mini"},
			"series": {"intraday": {"data": [[1693809000000, 101.3], [1693809060000, 102.7]]}}
		}`))
	}))
	defer server.Close()

	old := intradayBaseURL
	intradayBaseURL = server.URL
	defer func() { intradayBaseURL = old }()

	latest, err := intradayLatest(new(http.Client), "43763")
	if err != nil {
		t.Fatalf("intradayLatest() error = %v", err)
	}
	if latest != 102.7 {
		t.Errorf("intradayLatest() = %v, want 102.7", latest)
	}
}

func TestIntradayLatestEmptySeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"series": {"intraday": {"data": []}}}`))
	}))
	defer server.Close()

	old := intradayBaseURL
	intradayBaseURL = server.URL
	defer func() { intradayBaseURL = old }()

	if _, err := intradayLatest(new(http.Client), "43763"); err == nil {
		t.Error("intradayLatest() expected an error, got nil")
	}
}
