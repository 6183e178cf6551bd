package chains

import (
	"context"
	"math/big"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

type fakeBitcoinProvider struct {
	stats       entity.UTXOAddressStats
	statsErr    error
	txs         []entity.UTXOTransaction
	txsErr      error
	statsCalls  int
	txCalls     int
	lastAddress string
	lastLimit   int
}

func (f *fakeBitcoinProvider) AddressStats(_ context.Context, address string) (entity.UTXOAddressStats, error) {
	f.statsCalls++
	f.lastAddress = address
	return f.stats, f.statsErr
}

func (f *fakeBitcoinProvider) RecentTransactions(_ context.Context, address string, limit int) ([]entity.UTXOTransaction, error) {
	f.txCalls++
	f.lastAddress = address
	f.lastLimit = limit
	return f.txs, f.txsErr
}

type fakeXPubProvider struct {
	summary       entity.XPubSummary
	err           error
	calls         int
	lastXPub      string
	lastLookahead int
}

func (f *fakeXPubProvider) XPubSummary(_ context.Context, xpub string, lookahead int) (entity.XPubSummary, error) {
	f.calls++
	f.lastXPub = xpub
	f.lastLookahead = lookahead
	return f.summary, f.err
}

type fakeEthereumProvider struct {
	balance     *big.Int
	err         error
	calls       int
	lastAddress string
}

func (f *fakeEthereumProvider) NativeBalance(_ context.Context, address string) (*big.Int, error) {
	f.calls++
	f.lastAddress = address
	return f.balance, f.err
}

type fakeSolanaProvider struct {
	lamports     uint64
	balanceErr   error
	signatures   []entity.SolSignatureInfo
	sigErr       error
	balanceCalls int
	sigCalls     int
	lastLimit    int
}

func (f *fakeSolanaProvider) Balance(_ context.Context, _ string) (uint64, error) {
	f.balanceCalls++
	return f.lamports, f.balanceErr
}

func (f *fakeSolanaProvider) RecentSignatures(_ context.Context, _ string, limit int) ([]entity.SolSignatureInfo, error) {
	f.sigCalls++
	f.lastLimit = limit
	return f.signatures, f.sigErr
}

type fakeCardanoProvider struct {
	info         entity.CardanoAddressInfo
	infoErr      error
	txs          []entity.CardanoTransaction
	txsErr       error
	account      entity.CardanoStakeAccount
	accountErr   error
	rewards      []entity.CardanoStakeReward
	rewardsErr   error
	infoCalls    int
	txCalls      int
	accountCalls int
	rewardCalls  int
}

func (f *fakeCardanoProvider) AddressInfo(_ context.Context, _ string) (entity.CardanoAddressInfo, error) {
	f.infoCalls++
	return f.info, f.infoErr
}

func (f *fakeCardanoProvider) AddressTransactions(_ context.Context, _ string, _ int) ([]entity.CardanoTransaction, error) {
	f.txCalls++
	return f.txs, f.txsErr
}

func (f *fakeCardanoProvider) StakeAccount(_ context.Context, _ string) (entity.CardanoStakeAccount, error) {
	f.accountCalls++
	return f.account, f.accountErr
}

func (f *fakeCardanoProvider) StakeRewards(_ context.Context, _ string, _ int) ([]entity.CardanoStakeReward, error) {
	f.rewardCalls++
	return f.rewards, f.rewardsErr
}

type fakeResolver struct {
	chain    entity.Chain
	result   entity.WalletResult
	calls    int
	panicMsg string
}

func (f *fakeResolver) Chain() entity.Chain {
	return f.chain
}

func (f *fakeResolver) Resolve(_ context.Context, address string) entity.WalletResult {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	result := f.result
	result.Chain = f.chain
	result.Address = address
	return result
}
