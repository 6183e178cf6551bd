package port

import (
	"context"
	"math/big"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

// BitcoinDataProvider exposes the per-address queries of a Bitcoin explorer.
type BitcoinDataProvider interface {
	// AddressStats returns the confirmed and mempool satoshi totals
	// for a single address.
	AddressStats(ctx context.Context, address string) (entity.UTXOAddressStats, error)

	// RecentTransactions returns the latest transactions touching the
	// address, newest first, capped at limit.
	RecentTransactions(ctx context.Context, address string, limit int) ([]entity.UTXOTransaction, error)
}

// XPubDataProvider derives and sums balances across the child addresses of
// an extended public key. The lookahead bounds how many child addresses and
// transactions the provider inspects.
type XPubDataProvider interface {
	XPubSummary(ctx context.Context, xpub string, lookahead int) (entity.XPubSummary, error)
}

// EthereumDataProvider fetches the native balance of an Ethereum account.
// Implementations exist for the explorer HTTP API and for raw JSON-RPC.
type EthereumDataProvider interface {
	// NativeBalance returns the account balance in wei.
	NativeBalance(ctx context.Context, address string) (*big.Int, error)
}

// SolanaDataProvider exposes the account queries of a Solana RPC node.
type SolanaDataProvider interface {
	// Balance returns the account balance in lamports.
	Balance(ctx context.Context, address string) (uint64, error)

	// RecentSignatures returns the latest transaction signatures for the
	// account, newest first, capped at limit.
	RecentSignatures(ctx context.Context, address string, limit int) ([]entity.SolSignatureInfo, error)
}

// CardanoDataProvider exposes the address and stake-account queries of a
// Cardano data service.
type CardanoDataProvider interface {
	AddressInfo(ctx context.Context, address string) (entity.CardanoAddressInfo, error)
	AddressTransactions(ctx context.Context, address string, limit int) ([]entity.CardanoTransaction, error)
	StakeAccount(ctx context.Context, stakeAddress string) (entity.CardanoStakeAccount, error)
	StakeRewards(ctx context.Context, stakeAddress string, limit int) ([]entity.CardanoStakeReward, error)
}
