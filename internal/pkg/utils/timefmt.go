package utils

import "time"

// FormatUnixUTC renders a unix timestamp as RFC 3339 in UTC. Zero and
// negative timestamps render as the empty string, the sentinel for
// transactions without a confirmed block time.
func FormatUnixUTC(seconds int64) string {
	if seconds <= 0 {
		return ""
	}
	return time.Unix(seconds, 0).UTC().Format(time.RFC3339)
}
