package chains

import (
	"context"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/addrclass"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/utils"
)

// EthereumResolver implements port.ChainResolver for Ethereum. The balance
// comes from a single provider query. The balance endpoints expose no
// transaction history, so activity always resolves to an empty list.
type EthereumResolver struct {
	provider port.EthereumDataProvider
	logger   *zap.Logger
}

// NewEthereumResolver creates a new EthereumResolver.
func NewEthereumResolver(provider port.EthereumDataProvider, logger *zap.Logger) port.ChainResolver {
	return &EthereumResolver{
		provider: provider,
		logger:   logger.Named("EthereumResolver"),
	}
}

// Chain implements the port.ChainResolver interface.
func (r *EthereumResolver) Chain() entity.Chain {
	return entity.ChainETH
}

// Resolve implements the port.ChainResolver interface.
func (r *EthereumResolver) Resolve(ctx context.Context, address string) entity.WalletResult {
	result := entity.WalletResult{Chain: entity.ChainETH, Address: address}

	wei, err := r.provider.NativeBalance(ctx, addrclass.Normalize(address))
	if err != nil {
		r.logger.Warn("Failed to fetch native balance", zap.String("address", address), zap.Error(err))
		result.Err = entity.ErrProviderUnavailable
		return result
	}

	result.BalanceNative = utils.MinorToDecimal(wei, uint8(Ethereum.Decimals))
	result.Activity = []entity.ActivityEntry{}
	return result
}
