package entity

// UTXOAddressStats holds the satoshi totals for a single Bitcoin address,
// split into confirmed and mempool parts.
type UTXOAddressStats struct {
	FundedSats        int64
	SpentSats         int64
	MempoolFundedSats int64
	MempoolSpentSats  int64
	TxCount           int64
}

// UTXOTransaction is one transaction touching a Bitcoin address.
// BlockTime is zero while the transaction sits in the mempool. Spent is true
// when the queried address appears among the transaction inputs.
type UTXOTransaction struct {
	Hash      string
	BlockTime int64
	Spent     bool
}

// XPubSummary aggregates balance and activity across the child addresses
// derived from an extended public key.
type XPubSummary struct {
	BalanceSats  int64
	TxHashes     []string
	AddressCount int
}

// SolSignatureInfo is one recent transaction signature for a Solana account.
// Failed is true when the transaction errored on chain.
type SolSignatureInfo struct {
	Signature string
	BlockTime int64
	Failed    bool
}

// CardanoAddressInfo holds the lovelace balance of a payment address.
type CardanoAddressInfo struct {
	Lovelace     int64
	StakeAddress string
}

// CardanoTransaction is one transaction referencing a Cardano address.
type CardanoTransaction struct {
	Hash      string
	BlockTime int64
}

// CardanoStakeAccount holds the controlled balance of a stake account.
type CardanoStakeAccount struct {
	Active             bool
	ControlledLovelace int64
}

// CardanoStakeReward is one epoch reward paid to a stake account.
type CardanoStakeReward struct {
	Epoch          int64
	AmountLovelace int64
}
