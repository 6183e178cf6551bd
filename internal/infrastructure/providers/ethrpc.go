package providers

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
	"github.com/rickwengdev/crypto-portfolio-tracker/pkg/metrics"
)

// ethRPCClient implements port.EthereumDataProvider over raw JSON-RPC. It is
// the alternative to the explorer backend for deployments with their own node.
type ethRPCClient struct {
	ethClient   *ethclient.Client
	callTimeout time.Duration
	logger      *zap.Logger
}

// NewEthRPCClient dials the configured RPC endpoints in order and returns a
// client on the first endpoint that accepts the connection.
func NewEthRPCClient(cfg configloader.EthereumProviderConfig, logger *zap.Logger) (port.EthereumDataProvider, error) {
	namedLogger := logger.Named("EthRPCClient")
	timeout := time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond

	rpcURLs := append([]string{cfg.RPCURL}, cfg.FallbackRPCURLs...)
	var lastErr error
	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			namedLogger.Info("Connected to Ethereum RPC", zap.String("url", rpcURL))
			return &ethRPCClient{ethClient: client, callTimeout: timeout, logger: namedLogger}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	return nil, fmt.Errorf("all RPC connection attempts failed: %w", lastErr)
}

// NativeBalance implements the port.EthereumDataProvider interface.
func (c *ethRPCClient) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	balance, err := c.ethClient.BalanceAt(callCtx, common.HexToAddress(address), nil)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("ethrpc", "error").Inc()
		c.logger.Error("eth_getBalance call failed", zap.String("address", address), zap.Error(err))
		return nil, fmt.Errorf("eth_getBalance failed: %w", err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("ethrpc", "success").Inc()
	return balance, nil
}
