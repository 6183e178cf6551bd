package port

import (
	"context"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

// PriceSource is the outbound price-provider API, one batched call for a set
// of asset ids and fiat currencies.
type PriceSource interface {
	// SimplePrices returns prices keyed by asset id, then by currency code.
	// Assets unknown to the provider are simply absent from the map.
	SimplePrices(ctx context.Context, ids []string, vsCurrencies []string) (map[string]map[string]float64, error)
}

// PriceService joins resolved wallet results with fiat prices.
type PriceService interface {
	// JoinPrices attaches price and value to every successful result. The
	// caller passes the distinct successfully-resolved chains; their quotes
	// are requested in at most one outbound call, and on price failure the
	// entries keep their balances with zeroed quotes.
	JoinPrices(ctx context.Context, results []entity.WalletResult, chains []entity.Chain) []entity.PortfolioEntry
}
