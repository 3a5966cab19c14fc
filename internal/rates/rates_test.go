package rates

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-exchange-key", "test-metal-key")
	c.exchangeRateURL = srv.URL
	c.metalPriceURL = srv.URL
	c.yahooURL = srv.URL
	c.stooqURL = srv.URL
	return c, srv
}

func ratesHandler(exchangeCalls *atomic.Int64) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v6/test-exchange-key/latest/USD", func(w http.ResponseWriter, r *http.Request) {
		if exchangeCalls != nil {
			exchangeCalls.Add(1)
		}
		w.Write([]byte(`{"conversion_rates":{"TRY":35.5}}`))
	})
	mux.HandleFunc("/v1/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{"XAU":0.0004}}`))
	})
	return mux
}

func TestLatest_FetchesAndInvertsMetalRate(t *testing.T) {
	c, _ := newTestClient(t, ratesHandler(nil))

	q, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}

	if q.USDTRY != 35.5 {
		t.Fatalf("USDTRY = %v, want 35.5", q.USDTRY)
	}
	if math.Abs(q.XAUUSD-2500) > 1e-9 {
		t.Fatalf("XAUUSD = %v, want 2500", q.XAUUSD)
	}
	if q.Cached {
		t.Fatal("first fetch must not be marked cached")
	}
}

func TestLatest_ServesFromCacheWithinTTL(t *testing.T) {
	var calls atomic.Int64
	c, _ := newTestClient(t, ratesHandler(&calls))

	if _, err := c.Latest(context.Background()); err != nil {
		t.Fatalf("first Latest returned error: %v", err)
	}
	q, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("second Latest returned error: %v", err)
	}

	if !q.Cached {
		t.Fatal("second fetch within TTL must be served from cache")
	}
	if calls.Load() != 1 {
		t.Fatalf("upstream called %d times, want 1", calls.Load())
	}
}

func TestLatest_RefetchesAfterTTL(t *testing.T) {
	var calls atomic.Int64
	c, _ := newTestClient(t, ratesHandler(&calls))
	c.cacheTTL = time.Nanosecond

	if _, err := c.Latest(context.Background()); err != nil {
		t.Fatalf("first Latest returned error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := c.Latest(context.Background()); err != nil {
		t.Fatalf("second Latest returned error: %v", err)
	}

	if calls.Load() != 2 {
		t.Fatalf("upstream called %d times, want 2", calls.Load())
	}
}

func TestLatest_ServesStaleCacheOnUpstreamFailure(t *testing.T) {
	var failing atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/v6/test-exchange-key/latest/USD", func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"conversion_rates":{"TRY":35.5}}`))
	})
	mux.HandleFunc("/v1/latest", func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"rates":{"XAU":0.0004}}`))
	})
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/q/l/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c, _ := newTestClient(t, mux)
	c.cacheTTL = time.Nanosecond

	if _, err := c.Latest(context.Background()); err != nil {
		t.Fatalf("warmup Latest returned error: %v", err)
	}

	failing.Store(true)
	time.Sleep(time.Millisecond)

	q, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest must serve stale cache, got error: %v", err)
	}
	if !q.Cached || q.USDTRY != 35.5 {
		t.Fatalf("stale quote = %+v, want cached USDTRY 35.5", q)
	}
}

func TestLatest_FallsBackToYahooThenStooq(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v6/test-exchange-key/latest/USD", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"conversion_rates":{"TRY":35.5}}`))
	})
	mux.HandleFunc("/v1/latest", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/q/l/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("XAUUSD,2026-08-29,22:00:00,2490,2510,2480,2505.5,0\n"))
	})

	c, _ := newTestClient(t, mux)

	q, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if q.XAUUSD != 2505.5 {
		t.Fatalf("XAUUSD = %v, want 2505.5 from stooq", q.XAUUSD)
	}
}

func TestLatest_ErrorsWhenNothingAvailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c, _ := newTestClient(t, mux)

	if _, err := c.Latest(context.Background()); err == nil {
		t.Fatal("Latest must fail with no cache and no upstream")
	}
}
