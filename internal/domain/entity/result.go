package entity

// ErrorKind is the machine-readable error taxonomy for a failed wallet resolution.
type ErrorKind string

const (
	// ErrInvalidFormat is returned when local format checks reject the input
	// before any provider call.
	ErrInvalidFormat ErrorKind = "InvalidFormat"
	// ErrMalformedAddress is returned when the data provider rejects the
	// address itself (HTTP 4xx class).
	ErrMalformedAddress ErrorKind = "MalformedAddress"
	// ErrInvalidAddress is returned when public-key validation fails.
	ErrInvalidAddress ErrorKind = "InvalidAddress"
	// ErrProviderUnavailable is returned on network or provider faults.
	ErrProviderUnavailable ErrorKind = "ProviderUnavailable"
	// ErrUnsupportedChain is returned for chains without a registered resolver.
	ErrUnsupportedChain ErrorKind = "UnsupportedChain"
	// ErrResolutionFailed is returned when every data path for a wallet failed
	// or the resolver panicked.
	ErrResolutionFailed ErrorKind = "ResolutionFailed"
)

// WalletResult is the outcome of resolving one wallet against its chain.
// Either the balance fields or Err is populated, never both.
type WalletResult struct {
	Chain         Chain           `json:"chain"`
	Address       string          `json:"address"`
	BalanceNative float64         `json:"balanceNative"`
	Activity      []ActivityEntry `json:"activity"`
	Err           ErrorKind       `json:"error,omitempty"`
}
