package providers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/domain/entity"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
)

// lovelaceUnit is the asset unit Blockfrost uses for the native coin.
const lovelaceUnit = "lovelace"

// blockfrostClient implements port.CardanoDataProvider against the Blockfrost
// API. Blockfrost answers 404 for addresses and accounts that never appeared
// on chain; those are mapped to empty results rather than errors.
type blockfrostClient struct {
	doer      *httpDoer
	baseURL   string
	projectID string
	logger    *zap.Logger
}

type blockfrostAddressResp struct {
	Address string `json:"address"`
	Amount  []struct {
		Unit     string `json:"unit"`
		Quantity string `json:"quantity"`
	} `json:"amount"`
	StakeAddress string `json:"stake_address"`
}

type blockfrostTxResp struct {
	TxHash    string `json:"tx_hash"`
	BlockTime int64  `json:"block_time"`
}

type blockfrostAccountResp struct {
	StakeAddress     string `json:"stake_address"`
	Active           bool   `json:"active"`
	ControlledAmount string `json:"controlled_amount"`
}

type blockfrostRewardResp struct {
	Epoch  int64  `json:"epoch"`
	Amount string `json:"amount"`
}

// NewBlockfrostClient creates a new instance of blockfrostClient.
func NewBlockfrostClient(cfg configloader.CardanoProviderConfig, logger *zap.Logger) port.CardanoDataProvider {
	namedLogger := logger.Named("BlockfrostClient")
	timeout := time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond
	retryDelay := time.Duration(cfg.RetryDelayMs) * time.Millisecond
	return &blockfrostClient{
		doer:      newHTTPDoer("blockfrost", timeout, cfg.RateLimit, cfg.BurstLimit, cfg.MaxRetries, retryDelay, namedLogger),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		projectID: cfg.ProjectID,
		logger:    namedLogger,
	}
}

func (c *blockfrostClient) headers() map[string]string {
	if c.projectID == "" {
		return nil
	}
	return map[string]string{"project_id": c.projectID}
}

// AddressInfo implements the port.CardanoDataProvider interface.
func (c *blockfrostClient) AddressInfo(ctx context.Context, address string) (entity.CardanoAddressInfo, error) {
	requestURL := fmt.Sprintf("%s/addresses/%s", c.baseURL, address)

	var resp blockfrostAddressResp
	if err := c.doer.getJSON(ctx, requestURL, c.headers(), &resp); err != nil {
		if IsNotFound(err) {
			c.logger.Debug("Address unknown to Blockfrost, treating as unused", zap.String("address", address))
			return entity.CardanoAddressInfo{}, nil
		}
		return entity.CardanoAddressInfo{}, err
	}

	info := entity.CardanoAddressInfo{StakeAddress: resp.StakeAddress}
	for _, amount := range resp.Amount {
		if amount.Unit != lovelaceUnit {
			continue
		}
		lovelace, err := strconv.ParseInt(amount.Quantity, 10, 64)
		if err != nil {
			return entity.CardanoAddressInfo{}, fmt.Errorf("unparseable lovelace quantity %q: %w", amount.Quantity, err)
		}
		info.Lovelace = lovelace
	}
	return info, nil
}

// AddressTransactions implements the port.CardanoDataProvider interface.
func (c *blockfrostClient) AddressTransactions(ctx context.Context, address string, limit int) ([]entity.CardanoTransaction, error) {
	requestURL := fmt.Sprintf("%s/addresses/%s/transactions?order=desc&count=%d", c.baseURL, address, limit)

	var resp []blockfrostTxResp
	if err := c.doer.getJSON(ctx, requestURL, c.headers(), &resp); err != nil {
		if IsNotFound(err) {
			return []entity.CardanoTransaction{}, nil
		}
		return nil, err
	}

	out := make([]entity.CardanoTransaction, 0, len(resp))
	for _, tx := range resp {
		out = append(out, entity.CardanoTransaction{Hash: tx.TxHash, BlockTime: tx.BlockTime})
	}
	return out, nil
}

// StakeAccount implements the port.CardanoDataProvider interface.
func (c *blockfrostClient) StakeAccount(ctx context.Context, stakeAddress string) (entity.CardanoStakeAccount, error) {
	requestURL := fmt.Sprintf("%s/accounts/%s", c.baseURL, stakeAddress)

	var resp blockfrostAccountResp
	if err := c.doer.getJSON(ctx, requestURL, c.headers(), &resp); err != nil {
		if IsNotFound(err) {
			c.logger.Debug("Stake account unknown to Blockfrost, treating as unused", zap.String("stakeAddress", stakeAddress))
			return entity.CardanoStakeAccount{}, nil
		}
		return entity.CardanoStakeAccount{}, err
	}

	account := entity.CardanoStakeAccount{Active: resp.Active}
	if resp.ControlledAmount != "" {
		lovelace, err := strconv.ParseInt(resp.ControlledAmount, 10, 64)
		if err != nil {
			return entity.CardanoStakeAccount{}, fmt.Errorf("unparseable controlled amount %q: %w", resp.ControlledAmount, err)
		}
		account.ControlledLovelace = lovelace
	}
	return account, nil
}

// StakeRewards implements the port.CardanoDataProvider interface.
func (c *blockfrostClient) StakeRewards(ctx context.Context, stakeAddress string, limit int) ([]entity.CardanoStakeReward, error) {
	requestURL := fmt.Sprintf("%s/accounts/%s/rewards?order=desc&count=%d", c.baseURL, stakeAddress, limit)

	var resp []blockfrostRewardResp
	if err := c.doer.getJSON(ctx, requestURL, c.headers(), &resp); err != nil {
		if IsNotFound(err) {
			return []entity.CardanoStakeReward{}, nil
		}
		return nil, err
	}

	out := make([]entity.CardanoStakeReward, 0, len(resp))
	for _, reward := range resp {
		amount, err := strconv.ParseInt(reward.Amount, 10, 64)
		if err != nil {
			c.logger.Warn("Skipping reward with unparseable amount",
				zap.Int64("epoch", reward.Epoch),
				zap.String("amount", reward.Amount))
			continue
		}
		out = append(out, entity.CardanoStakeReward{Epoch: reward.Epoch, AmountLovelace: amount})
	}
	return out, nil
}
