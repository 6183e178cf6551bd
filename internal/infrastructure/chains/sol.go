package chains

import (
	"context"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/addrclass"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/utils"
)

// SolanaResolver implements port.ChainResolver for Solana. The public key is
// validated locally before any RPC call; a well-formed key that the cluster
// has never seen still resolves with a zero balance.
type SolanaResolver struct {
	provider port.SolanaDataProvider
	logger   *zap.Logger
}

// NewSolanaResolver creates a new SolanaResolver.
func NewSolanaResolver(provider port.SolanaDataProvider, logger *zap.Logger) port.ChainResolver {
	return &SolanaResolver{
		provider: provider,
		logger:   logger.Named("SolanaResolver"),
	}
}

// Chain implements the port.ChainResolver interface.
func (r *SolanaResolver) Chain() entity.Chain {
	return entity.ChainSOL
}

// Resolve implements the port.ChainResolver interface.
func (r *SolanaResolver) Resolve(ctx context.Context, address string) entity.WalletResult {
	result := entity.WalletResult{Chain: entity.ChainSOL, Address: address}

	normalized := addrclass.Normalize(address)
	if err := addrclass.ValidateSolanaPubKey(normalized); err != nil {
		r.logger.Debug("Rejected malformed public key", zap.String("address", address), zap.Error(err))
		result.Err = entity.ErrInvalidAddress
		return result
	}

	lamports, err := r.provider.Balance(ctx, normalized)
	if err != nil {
		r.logger.Warn("Failed to fetch balance", zap.String("address", address), zap.Error(err))
		result.Err = entity.ErrProviderUnavailable
		return result
	}

	signatures, err := r.provider.RecentSignatures(ctx, normalized, entity.MaxActivityEntries)
	if err != nil {
		r.logger.Warn("Failed to fetch recent signatures", zap.String("address", address), zap.Error(err))
		result.Err = entity.ErrProviderUnavailable
		return result
	}

	result.BalanceNative = utils.Uint64MinorToDecimal(lamports, uint8(Solana.Decimals))

	activity := make([]entity.ActivityEntry, 0, len(signatures))
	for _, sig := range signatures {
		if len(activity) == entity.MaxActivityEntries {
			break
		}
		entry := entity.ActivityEntry{
			Hash:   sig.Signature,
			Label:  "Transaction",
			Date:   utils.FormatUnixUTC(sig.BlockTime),
			Status: entity.ActivitySuccess,
		}
		if sig.Failed {
			entry.Status = entity.ActivityFail
		}
		activity = append(activity, entry)
	}
	result.Activity = activity
	return result
}
