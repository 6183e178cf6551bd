package entity

// WalletRequest is a single (chain, address) pair submitted for resolution.
type WalletRequest struct {
	Chain   Chain  `json:"chain"`
	Address string `json:"address"`
}

// BitcoinAddressKind classifies the syntactic shape of a Bitcoin input string.
type BitcoinAddressKind int

const (
	// BitcoinAddressInvalid marks input that cannot be an address or key.
	BitcoinAddressInvalid BitcoinAddressKind = iota
	// BitcoinAddressStandard marks a single spendable address.
	BitcoinAddressStandard
	// BitcoinAddressXPub marks an extended public key (xpub/ypub/zpub).
	BitcoinAddressXPub
)

// CardanoAddressKind classifies a Cardano input string by prefix.
type CardanoAddressKind int

const (
	// CardanoAddressPayment marks a regular payment address.
	CardanoAddressPayment CardanoAddressKind = iota
	// CardanoAddressStake marks a stake (reward account) address.
	CardanoAddressStake
)
