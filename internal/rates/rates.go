// Package rates fetches the live market inputs the pricing engine is fed
// with: the USD/TRY exchange rate and the XAU/USD spot price. The engine
// itself never fetches anything; callers pass these in as plain numbers.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultCacheTTL = 15 * time.Minute

// Quote is a cached pair of upstream rates.
type Quote struct {
	USDTRY float64   `json:"usdtry"`
	XAUUSD float64   `json:"xauusd"`
	Cached bool      `json:"cached"`
	TS     time.Time `json:"ts"`
}

// Client fetches rates with a fallback chain and serves them from a
// 15-minute in-memory cache. USD/TRY comes from exchangerate-api; XAU/USD
// primary source is metalpriceapi, falling back to Yahoo Finance and then
// the Stooq CSV feed. Sources whose API key is not configured are skipped.
type Client struct {
	httpClient *http.Client
	cacheTTL   time.Duration

	exchangeRateKey string
	metalPriceKey   string

	exchangeRateURL string
	metalPriceURL   string
	yahooURL        string
	stooqURL        string

	mu     sync.Mutex
	cached Quote
}

func NewClient(exchangeRateKey, metalPriceKey string) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		cacheTTL:        defaultCacheTTL,
		exchangeRateKey: exchangeRateKey,
		metalPriceKey:   metalPriceKey,
		exchangeRateURL: "https://v6.exchangerate-api.com",
		metalPriceURL:   "https://api.metalpriceapi.com",
		yahooURL:        "https://query1.finance.yahoo.com",
		stooqURL:        "https://stooq.com",
	}
}

// Latest returns the current quote, hitting upstream sources only when the
// cache has expired. On upstream failure a stale cache entry is served if
// one exists.
func (c *Client) Latest(ctx context.Context) (Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.cached.USDTRY > 0 && c.cached.XAUUSD > 0 && now.Sub(c.cached.TS) < c.cacheTTL {
		q := c.cached
		q.Cached = true
		return q, nil
	}

	usdtry, usdErr := c.fetchUSDTRY(ctx)
	xauusd, xauErr := c.fetchXAUUSD(ctx)
	if usdErr != nil || xauErr != nil {
		if c.cached.USDTRY > 0 && c.cached.XAUUSD > 0 {
			q := c.cached
			q.Cached = true
			return q, nil
		}
		return Quote{}, fmt.Errorf("fetch rates: %w", errors.Join(usdErr, xauErr))
	}

	c.cached = Quote{USDTRY: usdtry, XAUUSD: xauusd, TS: now}
	return c.cached, nil
}

func (c *Client) fetchUSDTRY(ctx context.Context) (float64, error) {
	if c.exchangeRateKey == "" {
		return 0, errors.New("EXCHANGERATE_API_KEY is not configured")
	}

	var payload struct {
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	url := fmt.Sprintf("%s/v6/%s/latest/USD", c.exchangeRateURL, c.exchangeRateKey)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return 0, fmt.Errorf("exchangerate-api: %w", err)
	}

	try, ok := payload.ConversionRates["TRY"]
	if !ok || try <= 0 {
		return 0, errors.New("exchangerate-api: TRY rate missing")
	}
	return try, nil
}

func (c *Client) fetchXAUUSD(ctx context.Context) (float64, error) {
	var errs []error

	if c.metalPriceKey != "" {
		price, err := c.fetchXAUFromMetalPrice(ctx)
		if err == nil {
			return price, nil
		}
		errs = append(errs, err)
	}

	price, err := c.fetchXAUFromYahoo(ctx)
	if err == nil {
		return price, nil
	}
	errs = append(errs, err)

	price, err = c.fetchXAUFromStooq(ctx)
	if err == nil {
		return price, nil
	}
	errs = append(errs, err)

	return 0, fmt.Errorf("xauusd: %w", errors.Join(errs...))
}

func (c *Client) fetchXAUFromMetalPrice(ctx context.Context) (float64, error) {
	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	url := fmt.Sprintf("%s/v1/latest?api_key=%s&base=USD&currencies=XAU", c.metalPriceURL, c.metalPriceKey)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return 0, fmt.Errorf("metalpriceapi: %w", err)
	}

	// The API quotes XAU per USD; invert to USD per ounce.
	rate := payload.Rates["XAU"]
	if rate <= 0 {
		return 0, errors.New("metalpriceapi: invalid XAU rate")
	}
	return 1 / rate, nil
}

func (c *Client) fetchXAUFromYahoo(ctx context.Context) (float64, error) {
	var payload struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
					PreviousClose      float64 `json:"previousClose"`
				} `json:"meta"`
			} `json:"result"`
		} `json:"chart"`
	}
	url := c.yahooURL + "/v8/finance/chart/XAUUSD=X?range=1d&interval=1d"
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return 0, fmt.Errorf("yahoo: %w", err)
	}

	if len(payload.Chart.Result) == 0 {
		return 0, errors.New("yahoo: empty chart result")
	}
	meta := payload.Chart.Result[0].Meta
	if meta.RegularMarketPrice > 0 {
		return meta.RegularMarketPrice, nil
	}
	if meta.PreviousClose > 0 {
		return meta.PreviousClose, nil
	}
	return 0, errors.New("yahoo: no price in chart meta")
}

func (c *Client) fetchXAUFromStooq(ctx context.Context) (float64, error) {
	raw, err := c.getBody(ctx, c.stooqURL+"/q/l/?s=xauusd&i=d")
	if err != nil {
		return 0, fmt.Errorf("stooq: %w", err)
	}

	// CSV line: symbol,date,time,open,high,low,close,volume
	fields := strings.Split(strings.TrimSpace(string(raw)), ",")
	if len(fields) < 7 {
		return 0, errors.New("stooq: malformed CSV line")
	}
	closePrice, err := strconv.ParseFloat(fields[6], 64)
	if err != nil || closePrice <= 0 {
		return 0, errors.New("stooq: invalid close price")
	}
	return closePrice, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	raw, err := c.getBody(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getBody(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}
