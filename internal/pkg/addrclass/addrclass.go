// Package addrclass contains the cheap syntactic checks that run before any
// provider call: Bitcoin address-vs-xpub classification, Cardano payment-vs-
// stake detection and Solana public key validation.
package addrclass

import (
	"strings"
	"unicode"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
)

// solanaPubKeyLength is the byte length of an ed25519 public key.
const solanaPubKeyLength = 32

var xpubPrefixes = []string{"xpub", "ypub", "zpub"}

// Normalize strips all whitespace from a raw address string. Wallet lists are
// frequently copy-pasted, so embedded spaces and tabs are removed, not just
// trimmed.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// ClassifyBitcoin decides whether a Bitcoin input string is a standard
// address or an extended public key. The guard is deliberately loose: it
// only rejects input that no legacy, bech32 or extended-key encoding could
// ever produce, and leaves real validation to the data provider.
func ClassifyBitcoin(input string) entity.BitcoinAddressKind {
	if input == "" || !isAlphanumeric(input) {
		return entity.BitcoinAddressInvalid
	}
	lower := strings.ToLower(input)
	for _, prefix := range xpubPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return entity.BitcoinAddressXPub
		}
	}
	return entity.BitcoinAddressStandard
}

// ClassifyCardano routes a Cardano input string to the payment or stake
// lookup path based on its bech32 prefix.
func ClassifyCardano(input string) entity.CardanoAddressKind {
	if strings.HasPrefix(strings.ToLower(input), "stake1") {
		return entity.CardanoAddressStake
	}
	return entity.CardanoAddressPayment
}

// ValidateSolanaPubKey checks that the input decodes to a 32-byte ed25519
// public key.
func ValidateSolanaPubKey(input string) error {
	decoded, err := base58.Decode(input)
	if err != nil {
		return errors.Wrap(err, "decode base58 public key")
	}
	if len(decoded) != solanaPubKeyLength {
		return errors.Errorf("decoded public key is %d bytes, want %d", len(decoded), solanaPubKeyLength)
	}
	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
