package service

import (
	"context"
	"sync"
	"time"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// fakeRegistry resolves from a canned per-address result table, optionally
// sleeping per chain to simulate slow providers.
type fakeRegistry struct {
	results map[string]entity.WalletResult
	delays  map[entity.Chain]time.Duration

	mu          sync.Mutex
	calls       int
	inFlight    int
	maxInFlight int
}

func (f *fakeRegistry) Resolve(_ context.Context, req entity.WalletRequest) entity.WalletResult {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	if delay := f.delays[req.Chain]; delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if result, ok := f.results[req.Address]; ok {
		result.Chain = req.Chain
		result.Address = req.Address
		return result
	}
	return entity.WalletResult{Chain: req.Chain, Address: req.Address, Activity: []entity.ActivityEntry{}}
}

func (f *fakeRegistry) SupportedChains() []entity.ChainDefinition {
	return nil
}

// fakePriceService records the chain set it was asked to price and passes
// results through without quotes.
type fakePriceService struct {
	mu         sync.Mutex
	calls      int
	lastChains []entity.Chain
}

func (f *fakePriceService) JoinPrices(_ context.Context, results []entity.WalletResult, resolvedChains []entity.Chain) []entity.PortfolioEntry {
	f.mu.Lock()
	f.calls++
	f.lastChains = append([]entity.Chain(nil), resolvedChains...)
	f.mu.Unlock()

	entries := make([]entity.PortfolioEntry, len(results))
	for i, result := range results {
		entries[i] = entity.PortfolioEntry{Chain: result.Chain, Address: result.Address, Error: result.Err}
		if result.Err == "" {
			balance := result.BalanceNative
			entries[i].BalanceNative = &balance
		}
	}
	return entries
}

type fakePriceSource struct {
	prices map[string]map[string]float64
	err    error

	mu             sync.Mutex
	calls          int
	lastIDs        []string
	lastCurrencies []string
}

func (f *fakePriceSource) SimplePrices(_ context.Context, ids []string, vsCurrencies []string) (map[string]map[string]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastIDs = append([]string(nil), ids...)
	f.lastCurrencies = append([]string(nil), vsCurrencies...)
	if f.err != nil {
		return nil, f.err
	}
	return f.prices, nil
}
