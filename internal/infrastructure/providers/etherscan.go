package providers

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
)

// etherscanClient implements port.EthereumDataProvider against the Etherscan
// account API. The balance comes back as a decimal wei string.
type etherscanClient struct {
	doer    *httpDoer
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

type etherscanBalanceResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// NewEtherscanClient creates a new instance of etherscanClient.
func NewEtherscanClient(cfg configloader.EthereumProviderConfig, logger *zap.Logger) port.EthereumDataProvider {
	namedLogger := logger.Named("EtherscanClient")
	timeout := time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond
	retryDelay := time.Duration(cfg.RetryDelayMs) * time.Millisecond
	return &etherscanClient{
		doer:    newHTTPDoer("etherscan", timeout, cfg.RateLimit, cfg.BurstLimit, cfg.MaxRetries, retryDelay, namedLogger),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  namedLogger,
	}
}

// NativeBalance implements the port.EthereumDataProvider interface.
func (c *etherscanClient) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	requestURL := fmt.Sprintf("%s/api?module=account&action=balance&address=%s&tag=latest", c.baseURL, address)
	if c.apiKey != "" {
		requestURL += "&apikey=" + c.apiKey
	}

	var resp etherscanBalanceResp
	if err := c.doer.getJSON(ctx, requestURL, nil, &resp); err != nil {
		return nil, err
	}

	// The explorer reports rejections (bad address, rate limit) with HTTP 200
	// and status "0"; the reason lands in result.
	if resp.Status != "1" {
		c.logger.Warn("Explorer rejected balance request",
			zap.String("message", resp.Message),
			zap.String("result", resp.Result))
		return nil, fmt.Errorf("explorer rejected balance request: %s: %s", resp.Message, resp.Result)
	}

	wei, ok := new(big.Int).SetString(resp.Result, 10)
	if !ok {
		return nil, fmt.Errorf("unparseable wei amount %q", resp.Result)
	}
	return wei, nil
}
