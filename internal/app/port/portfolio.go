package port

import (
	"context"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

// PortfolioService resolves a batch of wallets and joins the results with
// fiat prices.
type PortfolioService interface {
	// ResolvePortfolio fans the requests out to the chain resolvers and
	// returns one entry per request, in request order. Failures are embedded
	// in the entries; the call itself never fails.
	ResolvePortfolio(ctx context.Context, wallets []entity.WalletRequest) []entity.PortfolioEntry
}
