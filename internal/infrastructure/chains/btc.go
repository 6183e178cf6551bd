package chains

import (
	"context"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/providers"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/addrclass"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/utils"
)

// BitcoinResolver implements port.ChainResolver for Bitcoin. Extended public
// keys are routed to the xpub dashboard provider, plain addresses to the
// esplora-style explorer. Inputs failing the character guard never reach
// either provider.
type BitcoinResolver struct {
	provider  port.BitcoinDataProvider
	xpub      port.XPubDataProvider
	lookahead int
	logger    *zap.Logger
}

// NewBitcoinResolver creates a new BitcoinResolver.
func NewBitcoinResolver(provider port.BitcoinDataProvider, xpub port.XPubDataProvider, lookahead int, logger *zap.Logger) port.ChainResolver {
	return &BitcoinResolver{
		provider:  provider,
		xpub:      xpub,
		lookahead: lookahead,
		logger:    logger.Named("BitcoinResolver"),
	}
}

// Chain implements the port.ChainResolver interface.
func (r *BitcoinResolver) Chain() entity.Chain {
	return entity.ChainBTC
}

// Resolve implements the port.ChainResolver interface.
func (r *BitcoinResolver) Resolve(ctx context.Context, address string) entity.WalletResult {
	result := entity.WalletResult{Chain: entity.ChainBTC, Address: address}

	normalized := addrclass.Normalize(address)
	switch addrclass.ClassifyBitcoin(normalized) {
	case entity.BitcoinAddressInvalid:
		r.logger.Debug("Rejected address by character guard", zap.String("address", address))
		result.Err = entity.ErrInvalidFormat
		return result
	case entity.BitcoinAddressXPub:
		return r.resolveXPub(ctx, result, normalized)
	default:
		return r.resolveAddress(ctx, result, normalized)
	}
}

func (r *BitcoinResolver) resolveAddress(ctx context.Context, result entity.WalletResult, address string) entity.WalletResult {
	stats, err := r.provider.AddressStats(ctx, address)
	if err != nil {
		r.logger.Warn("Failed to fetch address stats", zap.String("address", address), zap.Error(err))
		result.Err = classifyExplorerError(err)
		return result
	}

	txs, err := r.provider.RecentTransactions(ctx, address, entity.MaxActivityEntries)
	if err != nil {
		r.logger.Warn("Failed to fetch recent transactions", zap.String("address", address), zap.Error(err))
		result.Err = classifyExplorerError(err)
		return result
	}

	// Spendable balance under UTXO accounting: lifetime funded minus spent,
	// plus the same delta for unconfirmed mempool activity.
	sats := stats.FundedSats - stats.SpentSats + stats.MempoolFundedSats - stats.MempoolSpentSats
	result.BalanceNative = utils.Int64MinorToDecimal(sats, uint8(Bitcoin.Decimals))

	activity := make([]entity.ActivityEntry, 0, len(txs))
	for _, tx := range txs {
		if len(activity) == entity.MaxActivityEntries {
			break
		}
		entry := entity.ActivityEntry{
			Hash:   tx.Hash,
			Label:  "Received",
			Date:   utils.FormatUnixUTC(tx.BlockTime),
			Status: entity.ActivityPending,
		}
		if tx.Spent {
			entry.Label = "Sent"
		}
		if tx.BlockTime > 0 {
			entry.Status = entity.ActivityConfirmed
		}
		activity = append(activity, entry)
	}
	result.Activity = activity
	return result
}

func (r *BitcoinResolver) resolveXPub(ctx context.Context, result entity.WalletResult, xpub string) entity.WalletResult {
	summary, err := r.xpub.XPubSummary(ctx, xpub, r.lookahead)
	if err != nil {
		r.logger.Warn("Failed to fetch xpub summary", zap.Error(err))
		result.Err = classifyExplorerError(err)
		return result
	}

	result.BalanceNative = utils.Int64MinorToDecimal(summary.BalanceSats, uint8(Bitcoin.Decimals))

	// Individual derivation paths are not exposed by the dashboard, so each
	// entry is an aggregate across the child addresses.
	activity := make([]entity.ActivityEntry, 0, len(summary.TxHashes))
	for _, hash := range summary.TxHashes {
		if len(activity) == entity.MaxActivityEntries {
			break
		}
		activity = append(activity, entity.ActivityEntry{
			Hash:   hash,
			Label:  "Aggregated transfer",
			Status: entity.ActivityMixed,
		})
	}
	result.Activity = activity
	return result
}

// classifyExplorerError maps explorer failures onto the error taxonomy.
// A 4xx response means the explorer rejected the address itself.
func classifyExplorerError(err error) entity.ErrorKind {
	if providers.IsClientError(err) {
		return entity.ErrMalformedAddress
	}
	return entity.ErrProviderUnavailable
}
