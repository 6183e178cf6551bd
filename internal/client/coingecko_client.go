package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/pkg/metrics"
)

// coinGeckoClientImpl implements port.PriceSource against the CoinGecko
// simple-price API.
type coinGeckoClientImpl struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a new instance of coinGeckoClientImpl.
func NewCoinGeckoClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger) port.PriceSource {
	return &coinGeckoClientImpl{
		client:  resty.New().SetTimeout(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// SimplePrices implements the port.PriceSource interface. One call covers
// every requested asset and currency; assets CoinGecko does not know are
// absent from the result map.
func (c *coinGeckoClientImpl) SimplePrices(ctx context.Context, ids []string, vsCurrencies []string) (map[string]map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]map[string]float64{}, nil
	}

	requestURL := fmt.Sprintf("%s/simple/price", c.baseURL)
	c.logger.Debug("Requesting simple prices from CoinGecko",
		zap.Strings("ids", ids),
		zap.Strings("vsCurrencies", vsCurrencies))

	request := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetQueryParam("vs_currencies", strings.Join(vsCurrencies, ",")).
		SetResult(map[string]map[string]float64{})
	if c.apiKey != "" {
		request.SetHeader("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := request.Get(requestURL)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("coingecko", "error").Inc()
		c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}
	if resp.IsError() {
		metrics.ProviderRequestsTotal.WithLabelValues("coingecko", "error").Inc()
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("CoinGecko API request to %s failed with status %d: %s", requestURL, resp.StatusCode(), resp.String())
	}
	metrics.ProviderRequestsTotal.WithLabelValues("coingecko", "success").Inc()

	prices, ok := resp.Result().(*map[string]map[string]float64)
	if !ok || prices == nil {
		return nil, fmt.Errorf("unexpected response shape from %s", requestURL)
	}

	c.logger.Debug("Successfully fetched simple prices", zap.Int("assetCount", len(*prices)))
	return *prices, nil
}
