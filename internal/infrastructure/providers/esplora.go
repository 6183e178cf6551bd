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

// esploraClient implements port.BitcoinDataProvider against an
// esplora-compatible explorer API such as blockstream.info.
type esploraClient struct {
	doer    *httpDoer
	baseURL string
	logger  *zap.Logger
}

type esploraAddressResp struct {
	ChainStats struct {
		FundedTxoSum int64 `json:"funded_txo_sum"`
		SpentTxoSum  int64 `json:"spent_txo_sum"`
		TxCount      int64 `json:"tx_count"`
	} `json:"chain_stats"`
	MempoolStats struct {
		FundedTxoSum int64 `json:"funded_txo_sum"`
		SpentTxoSum  int64 `json:"spent_txo_sum"`
		TxCount      int64 `json:"tx_count"`
	} `json:"mempool_stats"`
}

type esploraTxResp struct {
	TxID string `json:"txid"`
	Vin  []struct {
		Prevout struct {
			ScriptPubKeyAddress string `json:"scriptpubkey_address"`
		} `json:"prevout"`
	} `json:"vin"`
	Status struct {
		BlockTime int64 `json:"block_time"`
	} `json:"status"`
}

// spentBy reports whether the given address funded any of the transaction
// inputs.
func (t esploraTxResp) spentBy(address string) bool {
	for _, in := range t.Vin {
		if in.Prevout.ScriptPubKeyAddress == address {
			return true
		}
	}
	return false
}

// NewEsploraClient creates a new instance of esploraClient.
func NewEsploraClient(cfg configloader.BitcoinProviderConfig, logger *zap.Logger) port.BitcoinDataProvider {
	namedLogger := logger.Named("EsploraClient")
	timeout := time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond
	retryDelay := time.Duration(cfg.RetryDelayMs) * time.Millisecond
	return &esploraClient{
		doer:    newHTTPDoer("esplora", timeout, cfg.RateLimit, cfg.BurstLimit, cfg.MaxRetries, retryDelay, namedLogger),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  namedLogger,
	}
}

// AddressStats implements the port.BitcoinDataProvider interface.
func (c *esploraClient) AddressStats(ctx context.Context, address string) (entity.UTXOAddressStats, error) {
	requestURL := fmt.Sprintf("%s/address/%s", c.baseURL, address)

	var resp esploraAddressResp
	if err := c.doer.getJSON(ctx, requestURL, nil, &resp); err != nil {
		return entity.UTXOAddressStats{}, err
	}

	return entity.UTXOAddressStats{
		FundedSats:        resp.ChainStats.FundedTxoSum,
		SpentSats:         resp.ChainStats.SpentTxoSum,
		MempoolFundedSats: resp.MempoolStats.FundedTxoSum,
		MempoolSpentSats:  resp.MempoolStats.SpentTxoSum,
		TxCount:           resp.ChainStats.TxCount + resp.MempoolStats.TxCount,
	}, nil
}

// RecentTransactions implements the port.BitcoinDataProvider interface.
// The explorer returns mempool transactions first, then confirmed ones by
// recency, so the slice is already newest first.
func (c *esploraClient) RecentTransactions(ctx context.Context, address string, limit int) ([]entity.UTXOTransaction, error) {
	requestURL := fmt.Sprintf("%s/address/%s/txs", c.baseURL, address)

	var txs []esploraTxResp
	if err := c.doer.getJSON(ctx, requestURL, nil, &txs); err != nil {
		return nil, err
	}

	out := make([]entity.UTXOTransaction, 0, len(txs))
	for _, tx := range txs {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, entity.UTXOTransaction{
			Hash:      tx.TxID,
			BlockTime: tx.Status.BlockTime,
			Spent:     tx.spentBy(address),
		})
	}
	return out, nil
}
