package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
)

func bitcoinTestConfig(baseURL string) configloader.BitcoinProviderConfig {
	return configloader.BitcoinProviderConfig{
		BaseURL:              baseURL,
		XPubBaseURL:          baseURL,
		RequestTimeoutMillis: 2000,
	}
}

func TestEsploraAddressStats(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/address/bc1qtest" {
			t.Errorf("path = %q, want /address/bc1qtest", r.URL.Path)
		}
		w.Write([]byte(`{
			"chain_stats":{"funded_txo_sum":700000,"spent_txo_sum":200000,"tx_count":12},
			"mempool_stats":{"funded_txo_sum":10000,"spent_txo_sum":5000,"tx_count":1}
		}`))
	}))
	defer srv.Close()

	provider := NewEsploraClient(bitcoinTestConfig(srv.URL), zap.NewNop())

	stats, err := provider.AddressStats(context.Background(), "bc1qtest")
	if err != nil {
		t.Fatalf("AddressStats: %v", err)
	}

	if stats.FundedSats != 700000 || stats.SpentSats != 200000 {
		t.Fatalf("chain stats = %+v, want funded 700000 spent 200000", stats)
	}

	if stats.MempoolFundedSats != 10000 || stats.MempoolSpentSats != 5000 {
		t.Fatalf("mempool stats = %+v, want funded 10000 spent 5000", stats)
	}

	if stats.TxCount != 13 {
		t.Fatalf("TxCount = %d, want 13 (chain plus mempool)", stats.TxCount)
	}
}

func TestEsploraRecentTransactions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/address/bc1qtest/txs" {
			t.Errorf("path = %q, want /address/bc1qtest/txs", r.URL.Path)
		}
		w.Write([]byte(`[
			{"txid":"aa","vin":[{"prevout":{"scriptpubkey_address":"bc1qtest"}}],"status":{}},
			{"txid":"bb","vin":[{"prevout":{"scriptpubkey_address":"bc1qother"}}],"status":{"block_time":1716212345}},
			{"txid":"cc","vin":[],"status":{"block_time":1716212000}}
		]`))
	}))
	defer srv.Close()

	provider := NewEsploraClient(bitcoinTestConfig(srv.URL), zap.NewNop())

	txs, err := provider.RecentTransactions(context.Background(), "bc1qtest", 2)
	if err != nil {
		t.Fatalf("RecentTransactions: %v", err)
	}

	if len(txs) != 2 {
		t.Fatalf("len(txs) = %d, want the limit of 2", len(txs))
	}

	if txs[0].Hash != "aa" || !txs[0].Spent || txs[0].BlockTime != 0 {
		t.Fatalf("txs[0] = %+v, want mempool transaction aa spending from the address", txs[0])
	}

	if txs[1].Hash != "bb" || txs[1].Spent || txs[1].BlockTime != 1716212345 {
		t.Fatalf("txs[1] = %+v, want confirmed incoming transaction bb", txs[1])
	}
}

func TestEsploraStatusErrorSurfaces(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Invalid Bitcoin address", http.StatusBadRequest)
	}))
	defer srv.Close()

	provider := NewEsploraClient(bitcoinTestConfig(srv.URL), zap.NewNop())

	_, err := provider.AddressStats(context.Background(), "nonsense")
	if !IsClientError(err) {
		t.Fatalf("IsClientError(%v) = false, want a 4xx status error", err)
	}
}
