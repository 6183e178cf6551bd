package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
	"github.com/rickwengdev/crypto-portfolio-tracker/pkg/metrics"
)

// solanaRPCClient implements port.SolanaDataProvider against a Solana
// JSON-RPC node.
type solanaRPCClient struct {
	rpcClient   *rpc.Client
	callTimeout time.Duration
	logger      *zap.Logger
}

// NewSolanaRPCClient creates a new instance of solanaRPCClient.
func NewSolanaRPCClient(cfg configloader.SolanaProviderConfig, logger *zap.Logger) port.SolanaDataProvider {
	return &solanaRPCClient{
		rpcClient:   rpc.New(cfg.RPCURL),
		callTimeout: time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond,
		logger:      logger.Named("SolanaRPCClient"),
	}
}

// Balance implements the port.SolanaDataProvider interface.
func (c *solanaRPCClient) Balance(ctx context.Context, address string) (uint64, error) {
	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("parse public key: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	out, err := c.rpcClient.GetBalance(callCtx, pubKey, rpc.CommitmentFinalized)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("solanarpc", "error").Inc()
		c.logger.Error("getBalance call failed", zap.String("address", address), zap.Error(err))
		return 0, fmt.Errorf("getBalance failed: %w", err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("solanarpc", "success").Inc()
	return out.Value, nil
}

// RecentSignatures implements the port.SolanaDataProvider interface.
// The node returns signatures newest first; Failed is set from the per
// transaction err field.
func (c *solanaRPCClient) RecentSignatures(ctx context.Context, address string, limit int) ([]entity.SolSignatureInfo, error) {
	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	opts := &rpc.GetSignaturesForAddressOpts{Commitment: rpc.CommitmentFinalized}
	if limit > 0 {
		opts.Limit = &limit
	}

	signatures, err := c.rpcClient.GetSignaturesForAddressWithOpts(callCtx, pubKey, opts)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("solanarpc", "error").Inc()
		c.logger.Error("getSignaturesForAddress call failed", zap.String("address", address), zap.Error(err))
		return nil, fmt.Errorf("getSignaturesForAddress failed: %w", err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("solanarpc", "success").Inc()

	out := make([]entity.SolSignatureInfo, 0, len(signatures))
	for _, signature := range signatures {
		info := entity.SolSignatureInfo{
			Signature: signature.Signature.String(),
			Failed:    signature.Err != nil,
		}
		if signature.BlockTime != nil {
			info.BlockTime = int64(*signature.BlockTime)
		}
		out = append(out, info)
	}
	return out, nil
}
