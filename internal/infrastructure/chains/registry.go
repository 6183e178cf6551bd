package chains

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/pkg/metrics"
)

// Registry implements port.ResolverRegistry over a chain-indexed resolver
// map. It is the dispatch boundary: unknown chains are answered without any
// provider I/O, and a panicking resolver is converted into an error result
// instead of taking down the batch.
type Registry struct {
	resolvers map[entity.Chain]port.ChainResolver
	logger    *zap.Logger
}

// NewRegistry creates a new Registry from the given resolvers.
func NewRegistry(logger *zap.Logger, resolvers ...port.ChainResolver) port.ResolverRegistry {
	indexed := make(map[entity.Chain]port.ChainResolver, len(resolvers))
	for _, resolver := range resolvers {
		indexed[resolver.Chain()] = resolver
	}
	return &Registry{
		resolvers: indexed,
		logger:    logger.Named("ResolverRegistry"),
	}
}

// Resolve implements the port.ResolverRegistry interface.
func (r *Registry) Resolve(ctx context.Context, req entity.WalletRequest) (result entity.WalletResult) {
	resolver, ok := r.resolvers[req.Chain]
	if !ok {
		r.logger.Warn("No resolver registered for chain", zap.String("chain", string(req.Chain)))
		metrics.ResolveErrorsTotal.WithLabelValues(string(req.Chain), string(entity.ErrUnsupportedChain)).Inc()
		return entity.WalletResult{Chain: req.Chain, Address: req.Address, Err: entity.ErrUnsupportedChain}
	}

	start := time.Now()
	defer func() {
		metrics.ResolveDurationSeconds.WithLabelValues(string(req.Chain)).Observe(time.Since(start).Seconds())
		if rec := recover(); rec != nil {
			r.logger.Error("Resolver panicked",
				zap.String("chain", string(req.Chain)),
				zap.String("address", req.Address),
				zap.Any("panic", rec))
			result = entity.WalletResult{Chain: req.Chain, Address: req.Address, Err: entity.ErrResolutionFailed}
		}
		if result.Err != "" {
			metrics.ResolveErrorsTotal.WithLabelValues(string(req.Chain), string(result.Err)).Inc()
		}
	}()

	result = resolver.Resolve(ctx, req.Address)
	return result
}

// SupportedChains implements the port.ResolverRegistry interface.
func (r *Registry) SupportedChains() []entity.ChainDefinition {
	defs := make([]entity.ChainDefinition, 0, len(r.resolvers))
	for _, def := range Definitions() {
		if _, ok := r.resolvers[def.ID]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}
