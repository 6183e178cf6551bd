package entity

// PriceQuote holds the fiat unit prices of one asset in the fixed currency set.
type PriceQuote struct {
	USD float64 `json:"usd"`
	EUR float64 `json:"eur"`
	CHF float64 `json:"chf"`
}

// FiatValue holds the fiat value of a holding (balance multiplied by price).
type FiatValue struct {
	USD float64 `json:"usd"`
	EUR float64 `json:"eur"`
	CHF float64 `json:"chf"`
}

// PortfolioEntry is one element of the portfolio response. A successfully
// resolved wallet carries balance, activity, price and value; a failed one
// carries only the error kind. Pointer fields keep the two shapes disjoint
// on the wire, so an empty activity list still serializes as [].
type PortfolioEntry struct {
	Chain         Chain            `json:"chain"`
	Address       string           `json:"address"`
	BalanceNative *float64         `json:"balanceNative,omitempty"`
	Activity      *[]ActivityEntry `json:"activity,omitempty"`
	Price         *PriceQuote      `json:"price,omitempty"`
	Value         *FiatValue       `json:"value,omitempty"`
	Error         ErrorKind        `json:"error,omitempty"`
}
