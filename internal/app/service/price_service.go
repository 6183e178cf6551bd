package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/chains"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
	"github.com/rickwengdev/crypto-portfolio-tracker/pkg/metrics"
)

// targetCurrencies is the fixed fiat currency set quoted for every asset.
var targetCurrencies = []string{"usd", "eur", "chf"}

// priceServiceImpl implements port.PriceService. Quotes are cached per asset
// id for the configured TTL, so repeat batches inside the window reuse them
// without touching the price provider.
type priceServiceImpl struct {
	source port.PriceSource
	logger port.Logger
	quotes *cache.Cache
}

// NewPriceService creates a new instance of priceServiceImpl.
func NewPriceService(source port.PriceSource, l port.Logger, cfg configloader.PriceServiceConfig) port.PriceService {
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	cleanup := time.Duration(cfg.CleanupIntervalMinutes) * time.Minute
	return &priceServiceImpl{
		source: source,
		logger: l,
		quotes: cache.New(ttl, cleanup),
	}
}

// JoinPrices implements port.PriceService.
func (s *priceServiceImpl) JoinPrices(ctx context.Context, results []entity.WalletResult, resolvedChains []entity.Chain) []entity.PortfolioEntry {
	quotesByChain := s.quotesFor(ctx, resolvedChains)

	entries := make([]entity.PortfolioEntry, len(results))
	for i, result := range results {
		entry := entity.PortfolioEntry{
			Chain:   result.Chain,
			Address: result.Address,
			Error:   result.Err,
		}
		if result.Err != "" {
			entries[i] = entry
			continue
		}

		balance := result.BalanceNative
		activity := result.Activity
		if activity == nil {
			activity = []entity.ActivityEntry{}
		}
		quote := quotesByChain[result.Chain]
		value := entity.FiatValue{
			USD: balance * quote.USD,
			EUR: balance * quote.EUR,
			CHF: balance * quote.CHF,
		}

		entry.BalanceNative = &balance
		entry.Activity = &activity
		entry.Price = &quote
		entry.Value = &value
		entries[i] = entry
	}
	return entries
}

// quotesFor returns a quote per requested chain, zero-valued wherever the
// provider has no data. At most one outbound call is made; chains whose
// quotes are still cached are served locally.
func (s *priceServiceImpl) quotesFor(ctx context.Context, resolvedChains []entity.Chain) map[entity.Chain]entity.PriceQuote {
	quotesByChain := make(map[entity.Chain]entity.PriceQuote, len(resolvedChains))
	if len(resolvedChains) == 0 {
		return quotesByChain
	}

	idByChain := make(map[entity.Chain]string, len(resolvedChains))
	var missingIDs []string
	for _, chain := range resolvedChains {
		def, ok := chains.DefinitionFor(chain)
		if !ok || def.CoinGeckoID == "" {
			s.logger.Warn("No price feed id for chain, quote stays zero", "chain", string(chain))
			continue
		}
		idByChain[chain] = def.CoinGeckoID

		if cached, found := s.quotes.Get(def.CoinGeckoID); found {
			if quote, ok := cached.(entity.PriceQuote); ok {
				quotesByChain[chain] = quote
				continue
			}
		}
		missingIDs = append(missingIDs, def.CoinGeckoID)
	}

	if len(missingIDs) == 0 {
		if len(idByChain) > 0 {
			metrics.PriceLookupsTotal.WithLabelValues("cached").Inc()
		}
		return quotesByChain
	}

	prices, err := s.source.SimplePrices(ctx, missingIDs, targetCurrencies)
	if err != nil {
		// Balances must still reach the caller; everyone missing keeps a
		// zero-valued quote.
		metrics.PriceLookupsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Price lookup failed, serving zero quotes", "assetCount", len(missingIDs), "error", err)
		return quotesByChain
	}
	metrics.PriceLookupsTotal.WithLabelValues("success").Inc()

	for chain, id := range idByChain {
		if _, done := quotesByChain[chain]; done {
			continue
		}
		currencyMap, found := prices[id]
		if !found {
			s.logger.Warn("Price feed returned no data for asset", "assetId", id)
			continue
		}
		quote := entity.PriceQuote{
			USD: currencyMap["usd"],
			EUR: currencyMap["eur"],
			CHF: currencyMap["chf"],
		}
		quotesByChain[chain] = quote
		s.quotes.Set(id, quote, cache.DefaultExpiration)
	}
	return quotesByChain
}
