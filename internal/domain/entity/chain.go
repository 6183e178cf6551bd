package entity

// Chain identifies one of the blockchains the tracker can resolve.
type Chain string

const (
	// ChainBTC is the Bitcoin main chain.
	ChainBTC Chain = "BTC"
	// ChainETH is the Ethereum main chain.
	ChainETH Chain = "ETH"
	// ChainSOL is the Solana main chain.
	ChainSOL Chain = "SOL"
	// ChainADA is the Cardano main chain.
	ChainADA Chain = "ADA"
)

// ChainDefinition holds the static metadata for a supported chain.
// This structure is defined at the domain level to be used across
// application and infrastructure layers.
type ChainDefinition struct {
	ID           Chain  `json:"chain" yaml:"chain"`
	Name         string `json:"name" yaml:"name"`
	NativeSymbol string `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals     int32  `json:"decimals" yaml:"decimals"`
	// CoinGeckoID is the asset identifier used by the price provider.
	CoinGeckoID string `json:"-" yaml:"coingeckoId"`
}
