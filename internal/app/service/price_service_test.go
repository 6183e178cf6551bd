package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
)

func priceTestConfig() configloader.PriceServiceConfig {
	return configloader.PriceServiceConfig{CacheTTLMinutes: 1, CleanupIntervalMinutes: 5}
}

func TestPriceService_SingleBatchCall(t *testing.T) {
	t.Parallel()

	source := &fakePriceSource{
		prices: map[string]map[string]float64{
			"bitcoin":  {"usd": 64000, "eur": 59000, "chf": 57000},
			"ethereum": {"usd": 3400, "eur": 3150, "chf": 3000},
		},
	}
	svc := NewPriceService(source, nopLogger{}, priceTestConfig())

	results := []entity.WalletResult{
		{Chain: entity.ChainBTC, Address: "b1", BalanceNative: 0.5, Activity: []entity.ActivityEntry{}},
		{Chain: entity.ChainBTC, Address: "b2", BalanceNative: 2, Activity: []entity.ActivityEntry{}},
		{Chain: entity.ChainETH, Address: "e1", BalanceNative: 1, Activity: []entity.ActivityEntry{}},
	}
	entries := svc.JoinPrices(context.Background(), results, []entity.Chain{entity.ChainBTC, entity.ChainETH})

	if source.calls != 1 {
		t.Fatalf("outbound price calls = %d, want exactly 1", source.calls)
	}
	if len(source.lastIDs) != 2 {
		t.Fatalf("requested ids = %v, want bitcoin+ethereum", source.lastIDs)
	}
	wantCurrencies := []string{"usd", "eur", "chf"}
	for i, currency := range wantCurrencies {
		if source.lastCurrencies[i] != currency {
			t.Fatalf("currencies = %v, want %v", source.lastCurrencies, wantCurrencies)
		}
	}

	first := entries[0]
	if first.Price == nil || first.Price.USD != 64000 {
		t.Fatalf("btc price = %+v", first.Price)
	}
	if first.Value == nil || first.Value.USD != 32000 || first.Value.EUR != 29500 || first.Value.CHF != 28500 {
		t.Fatalf("btc value = %+v", first.Value)
	}
	third := entries[2]
	if third.Value == nil || third.Value.USD != 3400 {
		t.Fatalf("eth value = %+v", third.Value)
	}
}

func TestPriceService_FeedFailureKeepsBalances(t *testing.T) {
	t.Parallel()

	source := &fakePriceSource{err: errors.New("rate limited")}
	svc := NewPriceService(source, nopLogger{}, priceTestConfig())

	results := []entity.WalletResult{
		{Chain: entity.ChainBTC, Address: "b1", BalanceNative: 1.25, Activity: []entity.ActivityEntry{}},
	}
	entries := svc.JoinPrices(context.Background(), results, []entity.Chain{entity.ChainBTC})

	entry := entries[0]
	if entry.Error != "" {
		t.Fatalf("feed failure must not fail the wallet: %+v", entry)
	}
	if entry.BalanceNative == nil || *entry.BalanceNative != 1.25 {
		t.Fatalf("balance must survive a feed failure: %+v", entry.BalanceNative)
	}
	if entry.Price == nil || *entry.Price != (entity.PriceQuote{}) {
		t.Fatalf("quote must be zero-valued, not nil: %+v", entry.Price)
	}
	if entry.Value == nil || *entry.Value != (entity.FiatValue{}) {
		t.Fatalf("value must be zero-valued, not nil: %+v", entry.Value)
	}
}

func TestPriceService_ErrorResultsPassThrough(t *testing.T) {
	t.Parallel()

	source := &fakePriceSource{prices: map[string]map[string]float64{"bitcoin": {"usd": 64000}}}
	svc := NewPriceService(source, nopLogger{}, priceTestConfig())

	results := []entity.WalletResult{
		{Chain: entity.ChainBTC, Address: "ok", BalanceNative: 1, Activity: []entity.ActivityEntry{}},
		{Chain: "XRP", Address: "rExample", Err: entity.ErrUnsupportedChain},
	}
	entries := svc.JoinPrices(context.Background(), results, []entity.Chain{entity.ChainBTC})

	failed := entries[1]
	if failed.Error != entity.ErrUnsupportedChain {
		t.Fatalf("error kind = %q, want UnsupportedChain", failed.Error)
	}
	if failed.BalanceNative != nil || failed.Activity != nil || failed.Price != nil || failed.Value != nil {
		t.Fatalf("error entry must carry no balance or price fields: %+v", failed)
	}
}

func TestPriceService_UnmappedChainZeroQuote(t *testing.T) {
	t.Parallel()

	source := &fakePriceSource{}
	svc := NewPriceService(source, nopLogger{}, priceTestConfig())

	results := []entity.WalletResult{
		{Chain: "DOGE", Address: "d1", BalanceNative: 7, Activity: []entity.ActivityEntry{}},
	}
	entries := svc.JoinPrices(context.Background(), results, []entity.Chain{"DOGE"})

	if source.calls != 0 {
		t.Fatalf("unmapped chains must not trigger a price call")
	}
	entry := entries[0]
	if entry.BalanceNative == nil || *entry.BalanceNative != 7 {
		t.Fatalf("balance must pass through: %+v", entry)
	}
	if entry.Price == nil || *entry.Price != (entity.PriceQuote{}) {
		t.Fatalf("unmapped chain quote must be zero-valued: %+v", entry.Price)
	}
}

func TestPriceService_CacheServesRepeatBatch(t *testing.T) {
	t.Parallel()

	source := &fakePriceSource{
		prices: map[string]map[string]float64{"solana": {"usd": 150, "eur": 140, "chf": 135}},
	}
	svc := NewPriceService(source, nopLogger{}, priceTestConfig())

	results := []entity.WalletResult{
		{Chain: entity.ChainSOL, Address: "s1", BalanceNative: 2, Activity: []entity.ActivityEntry{}},
	}
	resolved := []entity.Chain{entity.ChainSOL}

	svc.JoinPrices(context.Background(), results, resolved)
	entries := svc.JoinPrices(context.Background(), results, resolved)

	if source.calls != 1 {
		t.Fatalf("outbound price calls = %d, second batch must be served from cache", source.calls)
	}
	if entries[0].Price == nil || entries[0].Price.USD != 150 {
		t.Fatalf("cached quote missing: %+v", entries[0].Price)
	}
	if entries[0].Value == nil || entries[0].Value.USD != 300 {
		t.Fatalf("cached value = %+v, want usd 300", entries[0].Value)
	}
}

func TestPriceService_NilActivityBecomesEmptyList(t *testing.T) {
	t.Parallel()

	source := &fakePriceSource{prices: map[string]map[string]float64{}}
	svc := NewPriceService(source, nopLogger{}, priceTestConfig())

	results := []entity.WalletResult{
		{Chain: entity.ChainETH, Address: "e1", BalanceNative: 0},
	}
	entries := svc.JoinPrices(context.Background(), results, []entity.Chain{entity.ChainETH})

	if entries[0].Activity == nil || *entries[0].Activity == nil {
		t.Fatalf("activity must be an empty list, got %#v", entries[0].Activity)
	}
	if len(*entries[0].Activity) != 0 {
		t.Fatalf("activity = %+v, want empty", *entries[0].Activity)
	}
}
