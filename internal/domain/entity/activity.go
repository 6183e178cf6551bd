package entity

// MaxActivityEntries caps the number of recent activity entries per wallet.
const MaxActivityEntries = 5

// ActivityStatus describes the state of a single activity entry.
type ActivityStatus string

const (
	// ActivityConfirmed marks an on-chain transaction with a confirmation timestamp.
	ActivityConfirmed ActivityStatus = "Confirmed"
	// ActivityPending marks a transaction still waiting in the mempool.
	ActivityPending ActivityStatus = "Pending"
	// ActivitySuccess marks a transaction that executed without error.
	ActivitySuccess ActivityStatus = "Success"
	// ActivityFail marks a transaction that executed but errored on chain.
	ActivityFail ActivityStatus = "Fail"
	// ActivityInfo marks an informational entry (rewards, placeholders).
	ActivityInfo ActivityStatus = "Info"
	// ActivityMixed marks an aggregate entry spanning derived addresses.
	ActivityMixed ActivityStatus = "Mixed"
)

// ActivityEntry is one normalized item of recent wallet activity, newest first.
type ActivityEntry struct {
	Hash   string         `json:"hash"`
	Label  string         `json:"label"`
	Date   string         `json:"date"`
	Status ActivityStatus `json:"status"`
}
