package depot

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
)

// This file contains functions to access the EODHD API, the daily price
// provider. A fetch failure here is always a per-symbol soft failure: the
// caller excludes the symbol and carries on.

// eodhdBaseURL is a variable so tests can point the fetchers at a stub server.
var eodhdBaseURL = "https://eodhd.com/api"

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the key includes today's date, so the local cache expires every day.
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response in the disk cache.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// newDailyCachingClient returns a client whose responses expire daily.
func newDailyCachingClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// eodhdDaily returns the daily open and close prices for a given ticker,
// adjusted for splits.
func eodhdDaily(apiKey, ticker string, from, to Date) (open, close History[float64], err error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },

	// bounds are included in the response, and time is limited to 1 year
	// with a free subscription.
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", eodhdBaseURL, ticker, apiKey, from, to)
	type Info struct {
		Date  Date    `json:"date"`
		Close float64 `json:"adjusted_close"`
		Open  float64 `json:"open"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		return open, close, err
	}

	for _, info := range content {
		close.Append(info.Date, info.Close)
		open.Append(info.Date, info.Open)
	}
	return open, close, nil
}
