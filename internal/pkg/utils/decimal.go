package utils

import "math/big"

// MinorToDecimal converts an integer amount of minor units (satoshi, wei,
// lamports, lovelace) into a decimal amount of the major unit.
// Example: amount=1234500000000000000, decimals=18 => 1.2345
func MinorToDecimal(amount *big.Int, decimals uint8) float64 {
	if amount == nil {
		return 0
	}
	amountFloat := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value, _ := new(big.Float).Quo(amountFloat, divisor).Float64()
	return value
}

// Int64MinorToDecimal is MinorToDecimal for amounts that fit in an int64.
func Int64MinorToDecimal(amount int64, decimals uint8) float64 {
	return MinorToDecimal(big.NewInt(amount), decimals)
}

// Uint64MinorToDecimal is MinorToDecimal for unsigned amounts.
func Uint64MinorToDecimal(amount uint64, decimals uint8) float64 {
	return MinorToDecimal(new(big.Int).SetUint64(amount), decimals)
}
