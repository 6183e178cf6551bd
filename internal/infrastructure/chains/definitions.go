package chains

import (
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

// Predefined chain definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Bitcoin = entity.ChainDefinition{
		ID:           entity.ChainBTC,
		Name:         "Bitcoin",
		NativeSymbol: "BTC",
		Decimals:     8,
		CoinGeckoID:  "bitcoin",
	}
	Ethereum = entity.ChainDefinition{
		ID:           entity.ChainETH,
		Name:         "Ethereum",
		NativeSymbol: "ETH",
		Decimals:     18,
		CoinGeckoID:  "ethereum",
	}
	Solana = entity.ChainDefinition{
		ID:           entity.ChainSOL,
		Name:         "Solana",
		NativeSymbol: "SOL",
		Decimals:     9,
		CoinGeckoID:  "solana",
	}
	Cardano = entity.ChainDefinition{
		ID:           entity.ChainADA,
		Name:         "Cardano",
		NativeSymbol: "ADA",
		Decimals:     6,
		CoinGeckoID:  "cardano",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[entity.Chain]entity.ChainDefinition{
	Bitcoin.ID:  Bitcoin,
	Ethereum.ID: Ethereum,
	Solana.ID:   Solana,
	Cardano.ID:  Cardano,
}

// Definitions returns every supported chain definition in a stable order.
func Definitions() []entity.ChainDefinition {
	return []entity.ChainDefinition{Bitcoin, Ethereum, Solana, Cardano}
}

// DefinitionFor returns the definition for the given chain identifier.
func DefinitionFor(chain entity.Chain) (entity.ChainDefinition, bool) {
	def, ok := allKnownDefinitions[chain]
	return def, ok
}
