package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCoinGeckoClient_SimplePrices(t *testing.T) {
	t.Parallel()

	var gotIDs, gotCurrencies, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotIDs = r.URL.Query().Get("ids")
		gotCurrencies = r.URL.Query().Get("vs_currencies")
		gotAPIKey = r.Header.Get("x-cg-demo-api-key")
		_ = json.NewEncoder(w).Encode(map[string]map[string]float64{
			"bitcoin":  {"usd": 64000.5, "eur": 59000.25, "chf": 57000},
			"ethereum": {"usd": 3400, "eur": 3150, "chf": 3000.75},
		})
	}))
	defer srv.Close()

	source := NewCoinGeckoClient(srv.URL, "demo-key", 2*time.Second, zap.NewNop())
	prices, err := source.SimplePrices(context.Background(), []string{"bitcoin", "ethereum"}, []string{"usd", "eur", "chf"})
	if err != nil {
		t.Fatalf("SimplePrices: %v", err)
	}

	if gotIDs != "bitcoin,ethereum" {
		t.Fatalf("ids param: want bitcoin,ethereum, got %q", gotIDs)
	}
	if gotCurrencies != "usd,eur,chf" {
		t.Fatalf("vs_currencies param: want usd,eur,chf, got %q", gotCurrencies)
	}
	if gotAPIKey != "demo-key" {
		t.Fatalf("api key header: want demo-key, got %q", gotAPIKey)
	}
	if prices["bitcoin"]["usd"] != 64000.5 {
		t.Fatalf("bitcoin usd: want 64000.5, got %v", prices["bitcoin"]["usd"])
	}
	if prices["ethereum"]["chf"] != 3000.75 {
		t.Fatalf("ethereum chf: want 3000.75, got %v", prices["ethereum"]["chf"])
	}
}

func TestCoinGeckoClient_SimplePrices_NoAPIKeyHeader(t *testing.T) {
	t.Parallel()

	headerSeen := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["X-Cg-Demo-Api-Key"]; ok {
			headerSeen = true
		}
		_ = json.NewEncoder(w).Encode(map[string]map[string]float64{"solana": {"usd": 150}})
	}))
	defer srv.Close()

	source := NewCoinGeckoClient(srv.URL, "", 2*time.Second, zap.NewNop())
	prices, err := source.SimplePrices(context.Background(), []string{"solana"}, []string{"usd"})
	if err != nil {
		t.Fatalf("SimplePrices: %v", err)
	}
	if headerSeen {
		t.Fatalf("api key header sent despite empty key")
	}
	if prices["solana"]["usd"] != 150 {
		t.Fatalf("solana usd: want 150, got %v", prices["solana"]["usd"])
	}
}

func TestCoinGeckoClient_SimplePrices_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status":{"error_code":429}}`))
	}))
	defer srv.Close()

	source := NewCoinGeckoClient(srv.URL, "", 2*time.Second, zap.NewNop())
	if _, err := source.SimplePrices(context.Background(), []string{"bitcoin"}, []string{"usd"}); err == nil {
		t.Fatalf("expected error on HTTP 429")
	}
}

func TestCoinGeckoClient_SimplePrices_EmptyIDs(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		_ = json.NewEncoder(w).Encode(map[string]map[string]float64{})
	}))
	defer srv.Close()

	source := NewCoinGeckoClient(srv.URL, "", 2*time.Second, zap.NewNop())
	prices, err := source.SimplePrices(context.Background(), nil, []string{"usd"})
	if err != nil {
		t.Fatalf("SimplePrices: %v", err)
	}
	if called {
		t.Fatalf("no request expected for empty id list")
	}
	if len(prices) != 0 {
		t.Fatalf("want empty map, got %v", prices)
	}
}
