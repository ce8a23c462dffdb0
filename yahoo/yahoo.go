// Package yahoo implements a price feed over the Yahoo Finance chart API.
package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/investo"
	"github.com/etnz/investo/date"
	"github.com/etnz/investo/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public Yahoo Finance query endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// DefaultConcurrency is the default number of tickers fetched in parallel.
const DefaultConcurrency = 4

// Client fetches daily closing prices from Yahoo Finance.
type Client struct {
	baseURL     string
	http        *http.Client
	concurrency int
	log         *logrus.Entry
}

// New returns a client querying baseURL, caching responses in cacheDir for
// the day (no cache if empty).
func New(baseURL, cacheDir string, concurrency int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	log := logging.Component("yahoo")
	return &Client{
		baseURL:     baseURL,
		http:        newCachingClient(cacheDir, log),
		concurrency: concurrency,
		log:         log,
	}
}

var _ investo.Feed = (*Client)(nil)

// Fetch returns the daily closes of each id over r, both ends included.
//
// Adjusted closes are preferred over raw closes. A ticker that fails is
// logged and skipped, it is not an error.
func (c *Client) Fetch(ctx context.Context, ids []string, r date.Range) (investo.Quotes, error) {
	var mu sync.Mutex
	quotes := make(investo.Quotes, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			points, err := c.chart(ctx, id, r)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.log.WithError(err).WithField("ticker", id).Warn("cannot fetch prices")
				return nil
			}
			mu.Lock()
			quotes[id] = points
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cannot fetch prices: %w", err)
	}
	return quotes, nil
}

// chart fetches the daily chart of a single ticker.
func (c *Client) chart(ctx context.Context, id string, r date.Range) ([]investo.PricePoint, error) {
	// https://query1.finance.yahoo.com/v8/finance/chart/AAPL?period1=1735689600&period2=1736294400&interval=1d
	// {"chart":{"result":[{"timestamp":[1735828200,...],
	//   "indicators":{"quote":[{"close":[243.85,...]}],"adjclose":[{"adjclose":[242.98,...]}]}}],"error":null}}
	q := url.Values{}
	q.Set("period1", fmt.Sprint(r.From.Unix()))
	q.Set("period2", fmt.Sprint(r.To.Add(1).Unix()))
	q.Set("interval", "1d")
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(id), q.Encode())

	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return nil, err
	}
	return parseChart(jobj)
}

// parseChart extracts price points from a chart payload. Null closes are skipped.
func parseChart(jobj any) ([]investo.PricePoint, error) {
	jtimestamps, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("no timestamps in chart: %w", err)
	}
	timestamps, ok := jtimestamps.([]any)
	if !ok {
		return nil, fmt.Errorf("timestamps are not a list: %v", jtimestamps)
	}
	jcloses, err := jsonpath.Get("$.chart.result[0].indicators.adjclose[0].adjclose", jobj)
	if err != nil {
		jcloses, err = jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	}
	if err != nil {
		return nil, fmt.Errorf("no closes in chart: %w", err)
	}
	closes, ok := jcloses.([]any)
	if !ok {
		return nil, fmt.Errorf("closes are not a list: %v", jcloses)
	}

	points := make([]investo.PricePoint, 0, len(timestamps))
	for i, jts := range timestamps {
		if i >= len(closes) {
			break
		}
		ts, ok := jts.(float64)
		if !ok {
			continue
		}
		price, ok := closes[i].(float64)
		if !ok || price <= 0 {
			continue
		}
		points = append(points, investo.PricePoint{
			Date:  date.FromTime(time.Unix(int64(ts), 0)),
			Price: investo.M(price),
		})
	}
	return points, nil
}

// Ticker is a search result.
type Ticker struct {
	Symbol   string
	Name     string
	Type     string
	Exchange string
}

// Search returns at most limit tickers matching query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Ticker, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("quotesCount", fmt.Sprint(limit))
	q.Set("newsCount", "0")
	q.Set("enableFuzzyQuery", "true")
	addr := fmt.Sprintf("%s/v1/finance/search?%s", c.baseURL, q.Encode())

	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", query, err)
	}
	jquotes, err := jsonpath.Get("$.quotes", jobj)
	if err != nil {
		return nil, nil
	}
	list, _ := jquotes.([]any)
	tickers := make([]Ticker, 0, len(list))
	for _, jq := range list {
		m, ok := jq.(map[string]any)
		if !ok {
			continue
		}
		t := Ticker{
			Symbol:   str(m, "symbol"),
			Name:     firstOf(str(m, "shortname"), str(m, "longname"), str(m, "symbol")),
			Type:     str(m, "quoteType"),
			Exchange: str(m, "exchange"),
		}
		if t.Symbol == "" {
			continue
		}
		tickers = append(tickers, t)
	}
	return tickers, nil
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
