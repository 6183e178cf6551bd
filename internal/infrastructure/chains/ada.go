package chains

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/addrclass"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/utils"
)

// CardanoResolver implements port.ChainResolver for Cardano. The address
// prefix selects between payment-address and stake-account endpoints.
// Balance and activity run in independent failure boundaries: a failed
// balance lookup degrades to zero, a failed activity lookup substitutes a
// sentinel entry, and only when both fail does the wallet resolve to an
// error.
type CardanoResolver struct {
	provider port.CardanoDataProvider
	logger   *zap.Logger
}

// NewCardanoResolver creates a new CardanoResolver.
func NewCardanoResolver(provider port.CardanoDataProvider, logger *zap.Logger) port.ChainResolver {
	return &CardanoResolver{
		provider: provider,
		logger:   logger.Named("CardanoResolver"),
	}
}

// Chain implements the port.ChainResolver interface.
func (r *CardanoResolver) Chain() entity.Chain {
	return entity.ChainADA
}

// Resolve implements the port.ChainResolver interface.
func (r *CardanoResolver) Resolve(ctx context.Context, address string) entity.WalletResult {
	result := entity.WalletResult{Chain: entity.ChainADA, Address: address}

	normalized := addrclass.Normalize(address)

	var (
		balance     float64
		activity    []entity.ActivityEntry
		balanceErr  error
		activityErr error
	)
	if addrclass.ClassifyCardano(normalized) == entity.CardanoAddressStake {
		balance, balanceErr = r.stakeBalance(ctx, normalized)
		activity, activityErr = r.stakeActivity(ctx, normalized)
	} else {
		balance, balanceErr = r.paymentBalance(ctx, normalized)
		activity, activityErr = r.paymentActivity(ctx, normalized)
	}

	if balanceErr != nil && activityErr != nil {
		r.logger.Warn("Both balance and activity lookups failed",
			zap.String("address", address),
			zap.NamedError("balanceError", balanceErr),
			zap.NamedError("activityError", activityErr))
		result.Err = entity.ErrResolutionFailed
		return result
	}
	if balanceErr != nil {
		// The caller still gets the history; the zero balance is only logged.
		r.logger.Warn("Balance lookup failed, reporting zero", zap.String("address", address), zap.Error(balanceErr))
		balance = 0
	}
	if activityErr != nil {
		r.logger.Warn("Activity lookup failed, substituting sentinel entry", zap.String("address", address), zap.Error(activityErr))
		activity = []entity.ActivityEntry{{Label: "history unavailable", Status: entity.ActivityInfo}}
	}

	result.BalanceNative = balance
	result.Activity = activity
	return result
}

func (r *CardanoResolver) paymentBalance(ctx context.Context, address string) (float64, error) {
	info, err := r.provider.AddressInfo(ctx, address)
	if err != nil {
		return 0, err
	}
	return utils.Int64MinorToDecimal(info.Lovelace, uint8(Cardano.Decimals)), nil
}

func (r *CardanoResolver) paymentActivity(ctx context.Context, address string) ([]entity.ActivityEntry, error) {
	txs, err := r.provider.AddressTransactions(ctx, address, entity.MaxActivityEntries)
	if err != nil {
		return nil, err
	}
	entries := make([]entity.ActivityEntry, 0, len(txs))
	for _, tx := range txs {
		if len(entries) == entity.MaxActivityEntries {
			break
		}
		entries = append(entries, entity.ActivityEntry{
			Hash:   tx.Hash,
			Label:  "Transfer",
			Date:   utils.FormatUnixUTC(tx.BlockTime),
			Status: entity.ActivityConfirmed,
		})
	}
	return entries, nil
}

func (r *CardanoResolver) stakeBalance(ctx context.Context, stakeAddress string) (float64, error) {
	account, err := r.provider.StakeAccount(ctx, stakeAddress)
	if err != nil {
		return 0, err
	}
	return utils.Int64MinorToDecimal(account.ControlledLovelace, uint8(Cardano.Decimals)), nil
}

func (r *CardanoResolver) stakeActivity(ctx context.Context, stakeAddress string) ([]entity.ActivityEntry, error) {
	rewards, err := r.provider.StakeRewards(ctx, stakeAddress, entity.MaxActivityEntries)
	if err != nil {
		return nil, err
	}
	entries := make([]entity.ActivityEntry, 0, len(rewards))
	for _, reward := range rewards {
		if len(entries) == entity.MaxActivityEntries {
			break
		}
		entries = append(entries, entity.ActivityEntry{
			Label:  fmt.Sprintf("Reward epoch %d", reward.Epoch),
			Status: entity.ActivityInfo,
		})
	}
	return entries, nil
}
