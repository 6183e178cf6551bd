package port

import (
	"context"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

// ChainResolver turns one wallet address into a normalized result for a
// single chain. Implementations never return a Go error: every failure mode
// is captured inside the WalletResult so one bad wallet cannot abort a batch.
type ChainResolver interface {
	// Chain returns the chain this resolver is responsible for.
	Chain() entity.Chain

	// Resolve fetches balance and recent activity for the given address.
	Resolve(ctx context.Context, address string) entity.WalletResult
}

// ResolverRegistry dispatches wallet requests to the resolver registered for
// their chain.
type ResolverRegistry interface {
	// Resolve routes a single request. Unknown chains and resolver panics are
	// converted into error results here, at the dispatch boundary.
	Resolve(ctx context.Context, req entity.WalletRequest) entity.WalletResult

	// SupportedChains lists the definitions of all registered chains.
	SupportedChains() []entity.ChainDefinition
}
