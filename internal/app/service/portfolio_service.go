package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
)

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	registry       port.ResolverRegistry
	priceSvc       port.PriceService
	logger         port.Logger
	maxConcurrent  int
	resolveTimeout time.Duration
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(
	registry port.ResolverRegistry,
	priceSvc port.PriceService,
	l port.Logger,
	cfg configloader.ResolveConfig,
) port.PortfolioService {
	return &PortfolioServiceImpl{
		registry:       registry,
		priceSvc:       priceSvc,
		logger:         l,
		maxConcurrent:  cfg.MaxConcurrentResolutions,
		resolveTimeout: time.Duration(cfg.ResolveTimeoutMs) * time.Millisecond,
	}
}

// ResolvePortfolio implements port.PortfolioService. Every wallet resolves
// concurrently and lands in the output slot matching its input index, so one
// slow or failing wallet never blocks or reorders the batch.
func (s *PortfolioServiceImpl) ResolvePortfolio(ctx context.Context, wallets []entity.WalletRequest) []entity.PortfolioEntry {
	if len(wallets) == 0 {
		return []entity.PortfolioEntry{}
	}

	if s.resolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.resolveTimeout)
		defer cancel()
	}

	s.logger.Debug("Resolving wallet batch", "count", len(wallets))
	start := time.Now()

	results := make([]entity.WalletResult, len(wallets))
	var group errgroup.Group
	if s.maxConcurrent > 0 {
		group.SetLimit(s.maxConcurrent)
	}
	for i, wallet := range wallets {
		i, wallet := i, wallet
		group.Go(func() error {
			results[i] = s.registry.Resolve(ctx, wallet)
			return nil
		})
	}
	// Resolution never errors at this level; each slot is owned by exactly
	// one goroutine.
	_ = group.Wait()

	entries := s.priceSvc.JoinPrices(ctx, results, distinctResolvedChains(results))

	s.logger.Info("Resolved wallet batch",
		"count", len(wallets),
		"durationMs", time.Since(start).Milliseconds())
	return entries
}

// distinctResolvedChains collects each successfully-resolved chain once, in
// first-seen order, so the price stage queries every chain exactly once.
func distinctResolvedChains(results []entity.WalletResult) []entity.Chain {
	seen := make(map[entity.Chain]struct{}, len(results))
	chains := make([]entity.Chain, 0, len(results))
	for _, result := range results {
		if result.Err != "" {
			continue
		}
		if _, ok := seen[result.Chain]; ok {
			continue
		}
		seen[result.Chain] = struct{}{}
		chains = append(chains, result.Chain)
	}
	return chains
}
