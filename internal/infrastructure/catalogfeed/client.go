package catalogfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shadematch/backend/internal/domain"
)

const (
	maxAttempts = 3

	// maxErrorBodyBytes caps how much of a failed response is logged
	maxErrorBodyBytes = 1024

	// maxDocumentBytes caps the size of a catalog document
	maxDocumentBytes = 8 << 20

	defaultTimeout = 10 * time.Second
)

// Client fetches the foundation catalog from a remote JSON feed
type Client struct {
	httpClient  *http.Client
	feedURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	debug       bool
	backoff     func(attempt int) time.Duration
	maxBytes    int64
}

// NewClient creates a feed client. perHour bounds how often the feed is
// requested; a non-positive value disables the limit.
func NewClient(feedURL string, timeout time.Duration, perHour int, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if perHour > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(perHour)/3600), max(1, perHour/60))
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		feedURL:     feedURL,
		rateLimiter: limiter,
		logger:      logger.Named("catalogfeed"),
		backoff:     exponentialBackoff,
		maxBytes:    maxDocumentBytes,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(msg string, fields ...zap.Field) {
	if c.debug {
		c.logger.Debug(msg, fields...)
	}
}

// exponentialBackoff returns the delay before retrying after attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

var errDocumentTooLarge = errors.New("document too large")

// readDocument reads all of r, failing if it holds more than limit bytes
func readDocument(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d bytes", errDocumentTooLarge, limit)
	}
	return body, nil
}

func retryable(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShadeMatch/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFeedFailure, err)
	}

	return resp, nil
}

// FetchCatalog downloads and decodes the catalog document. Transport
// errors, 5xx and 429 responses are retried; other 4xx fail immediately.
func (c *Client) FetchCatalog(ctx context.Context) (*domain.CatalogDocument, error) {
	c.debugLog("fetching catalog", zap.String("url", c.feedURL))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			c.logger.Warn("catalog feed request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := readLimitedBody(resp.Body, maxErrorBodyBytes)
			resp.Body.Close()

			c.logger.Warn("catalog feed returned error status",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", body),
			)

			if resp.StatusCode == http.StatusNotFound {
				return nil, domain.ErrNotFound
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogFeedFailure, resp.StatusCode)
			if !retryable(resp.StatusCode) {
				return nil, lastErr
			}
			continue
		}

		body, err := readDocument(resp.Body, c.maxBytes)
		resp.Body.Close()
		if errors.Is(err, errDocumentTooLarge) {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
		}
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrCatalogFeedFailure, err)
			continue
		}

		var doc domain.CatalogDocument
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if len(doc.Base) == 0 && len(doc.Premium) == 0 {
			return nil, fmt.Errorf("%w: feed returned no records", domain.ErrCatalogInvalid)
		}

		c.debugLog("catalog fetched",
			zap.String("version", doc.Version),
			zap.Int("base", len(doc.Base)),
			zap.Int("premium", len(doc.Premium)),
		)
		return &doc, nil
	}

	c.logger.Error("all catalog feed attempts failed", zap.Error(lastErr))
	return nil, lastErr
}
