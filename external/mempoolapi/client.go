package mempoolapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"
	"github.com/qubic/go-mempool-matrix/entities"
	"go.uber.org/zap"
)

const (
	MempoolBlocksPath = "/api/v1/fees/mempool-blocks"
	BlocksPath        = "/api/v1/blocks"

	blocksKey = "blocks"
)

type Config struct {
	NodeAddress string
	Timeout     time.Duration
	Attempts    int
	RetryDelay  time.Duration
	MaxBlocks   int
	CacheTTL    time.Duration // mined blocks are cached for this long, 0 disables
}

// StatusError is returned for non 2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status [%d]: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	attempts    int
	retryDelay  time.Duration
	maxBlocks   int
	blocksCache *ttlcache.Cache[string, []entities.MinedBlock]
	logger      *zap.SugaredLogger
}

func NewClient(cfg Config, logger *zap.SugaredLogger) (*Client, error) {
	baseURL, err := NormalizeNodeAddress(cfg.NodeAddress)
	if err != nil {
		return nil, errors.Wrap(err, "parsing node address")
	}

	cl := Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		attempts:   max(cfg.Attempts, 1),
		retryDelay: cfg.RetryDelay,
		maxBlocks:  cfg.MaxBlocks,
		logger:     logger,
	}
	if cfg.CacheTTL > 0 {
		cl.blocksCache = ttlcache.New[string, []entities.MinedBlock](
			ttlcache.WithTTL[string, []entities.MinedBlock](cfg.CacheTTL),
			ttlcache.WithDisableTouchOnHit[string, []entities.MinedBlock](),
		)
	}
	return &cl, nil
}

// NormalizeNodeAddress turns a node address like "umbrel.local:3006" into a base url
// without trailing slash.
func NormalizeNodeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", errors.New("empty node address")
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	u, err := url.Parse(address)
	if err != nil {
		return "", errors.Wrapf(err, "invalid node address [%s]", address)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Errorf("unsupported scheme [%s]", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.Errorf("missing host in [%s]", address)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetMempoolBlocks returns the projected mempool blocks, next block first.
func (c *Client) GetMempoolBlocks(ctx context.Context) ([]entities.MempoolBlock, error) {
	var blocks []entities.MempoolBlock
	err := c.getJSON(ctx, MempoolBlocksPath, &blocks)
	if err != nil {
		return nil, errors.Wrap(err, "getting mempool blocks")
	}
	return limitSlice(blocks, c.maxBlocks), nil
}

// GetBlocks returns the latest mined blocks, newest first.
func (c *Client) GetBlocks(ctx context.Context) ([]entities.MinedBlock, error) {
	if c.blocksCache != nil {
		if item := c.blocksCache.Get(blocksKey); item != nil {
			return item.Value(), nil
		}
	}

	var blocks []entities.MinedBlock
	err := c.getJSON(ctx, BlocksPath, &blocks)
	if err != nil {
		return nil, errors.Wrap(err, "getting blocks")
	}
	blocks = limitSlice(blocks, c.maxBlocks)

	if c.blocksCache != nil {
		c.blocksCache.Set(blocksKey, blocks, ttlcache.DefaultTTL)
	}
	return blocks, nil
}

func limitSlice[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		err = c.fetch(ctx, path, target)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return errors.Wrap(err, "request cancelled")
		}
		if attempt == c.attempts {
			break
		}

		c.logger.Warnw("request failed; retrying...", "path", path, "attempt", attempt, "delay", c.retryDelay, "error", err)
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for retry")
		case <-time.After(c.retryDelay):
		}
	}
	return errors.Wrapf(err, "giving up on [%s] after [%d] attempts", path, c.attempts)
}

func (c *Client) fetch(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	err = json.NewDecoder(resp.Body).Decode(target)
	if err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}
