package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rickwengdev/crypto-portfolio-tracker/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned when a provider responds with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// IsClientError reports whether err carries a 4xx provider status.
func IsClientError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500
}

// IsNotFound reports whether err carries a 404 provider status.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == fasthttp.StatusNotFound
}

// httpDoer wraps a fasthttp client with the rate-limit and retry behavior
// shared by the explorer-style providers.
type httpDoer struct {
	name       string
	client     *fasthttp.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

func newHTTPDoer(name string, timeout time.Duration, rateLimit, burstLimit, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *httpDoer {
	var limiter *rate.Limiter
	if rateLimit > 0 {
		burst := burstLimit
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rateLimit), burst)
	}
	return &httpDoer{
		name:       name,
		client:     &fasthttp.Client{},
		timeout:    timeout,
		limiter:    limiter,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// getJSON performs a GET request and unmarshals the 200 response body into
// out. Transport errors and 5xx responses are retried up to maxRetries extra
// times; 4xx responses are returned immediately as *StatusError since
// retrying a rejected address cannot succeed.
func (d *httpDoer) getJSON(ctx context.Context, requestURL string, headers map[string]string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			d.logger.Debug("Retrying provider request",
				zap.String("url", requestURL),
				zap.Int("attempt", attempt+1))
			if d.retryDelay > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(d.retryDelay):
				}
			}
		}
		lastErr = d.getJSONOnce(ctx, requestURL, headers, out)
		if lastErr == nil {
			metrics.ProviderRequestsTotal.WithLabelValues(d.name, "success").Inc()
			return nil
		}
		if IsClientError(lastErr) {
			break
		}
	}
	metrics.ProviderRequestsTotal.WithLabelValues(d.name, "error").Inc()
	return lastErr
}

func (d *httpDoer) getJSONOnce(ctx context.Context, requestURL string, headers map[string]string, out any) error {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait for %s: %w", d.name, err)
		}
	}

	d.logger.Debug("Requesting provider endpoint", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := d.client.DoDeadline(req, resp, deadline); err != nil {
			d.logger.Error("Failed to execute provider request", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := d.client.DoTimeout(req, resp, d.timeout); err != nil {
			d.logger.Error("Failed to execute provider request (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		d.logger.Error("Provider request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return &StatusError{Code: resp.StatusCode(), Body: string(rawBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		d.logger.Error("Failed to unmarshal provider response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return fmt.Errorf("failed to unmarshal response from %s: %w", requestURL, err)
	}
	return nil
}
