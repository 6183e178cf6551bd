package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
)

// blockchairClient implements port.XPubDataProvider against the Blockchair
// xpub dashboard, which derives child addresses server-side and returns the
// aggregated totals in one call.
type blockchairClient struct {
	doer    *httpDoer
	baseURL string
	logger  *zap.Logger
}

type blockchairXPubData struct {
	Xpub struct {
		AddressCount     int   `json:"address_count"`
		Balance          int64 `json:"balance"`
		TransactionCount int64 `json:"transaction_count"`
	} `json:"xpub"`
	Transactions []string `json:"transactions"`
}

type blockchairXPubResp struct {
	Data map[string]blockchairXPubData `json:"data"`
}

// NewBlockchairClient creates a new instance of blockchairClient.
func NewBlockchairClient(cfg configloader.BitcoinProviderConfig, logger *zap.Logger) port.XPubDataProvider {
	namedLogger := logger.Named("BlockchairClient")
	timeout := time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond
	retryDelay := time.Duration(cfg.RetryDelayMs) * time.Millisecond
	return &blockchairClient{
		doer:    newHTTPDoer("blockchair", timeout, cfg.RateLimit, cfg.BurstLimit, cfg.MaxRetries, retryDelay, namedLogger),
		baseURL: strings.TrimRight(cfg.XPubBaseURL, "/"),
		logger:  namedLogger,
	}
}

// XPubSummary implements the port.XPubDataProvider interface.
func (c *blockchairClient) XPubSummary(ctx context.Context, xpub string, lookahead int) (entity.XPubSummary, error) {
	requestURL := fmt.Sprintf("%s/bitcoin/dashboards/xpub/%s?limit=%d", c.baseURL, xpub, lookahead)

	var resp blockchairXPubResp
	if err := c.doer.getJSON(ctx, requestURL, nil, &resp); err != nil {
		return entity.XPubSummary{}, err
	}

	data, ok := resp.Data[xpub]
	if !ok {
		// The payload is keyed by the requested key; fall back to the first
		// entry in case the provider re-encodes it.
		for _, v := range resp.Data {
			data = v
			ok = true
			break
		}
	}
	if !ok {
		c.logger.Warn("Blockchair returned no dashboard data for xpub")
		return entity.XPubSummary{}, fmt.Errorf("no dashboard data returned for extended key")
	}

	hashes := data.Transactions
	if lookahead > 0 && len(hashes) > lookahead {
		hashes = hashes[:lookahead]
	}

	return entity.XPubSummary{
		BalanceSats:  data.Xpub.Balance,
		TxHashes:     hashes,
		AddressCount: data.Xpub.AddressCount,
	}, nil
}
