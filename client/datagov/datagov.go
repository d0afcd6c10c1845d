package datagov

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"resale-explorer/config"
	"resale-explorer/models"
	"resale-explorer/utils"
)

// FetchError reports a transport failure or non-2xx response for one
// partition request.
type FetchError struct {
	ResourceID string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("datagov: fetch resource %s: %v", e.ResourceID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that does not match the expected
// result.records shape, or a record that cannot be coerced downstream.
type ParseError struct {
	ResourceID string
	Err        error
}

func (e *ParseError) Error() string {
	if e.ResourceID == "" {
		return fmt.Sprintf("datagov: parse: %v", e.Err)
	}
	return fmt.Sprintf("datagov: parse resource %s: %v", e.ResourceID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// searchResponse mirrors the datastore_search envelope. Only the records
// path is read; everything else in the body is ignored.
type searchResponse struct {
	Result struct {
		Records []models.RawRecord `json:"records"`
	} `json:"result"`
}

// Client fetches resale-transaction partitions from the datastore API.
type Client struct {
	cfg    *config.Config
	logger *utils.Logger
	http   *http.Client
	pool   *utils.WorkerPool
}

// New creates a ready-to-use datastore Client.
func New(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
		http: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		},
		pool: utils.NewWorkerPool(cfg.MaxConcurrency,
			time.Duration(cfg.RateLimitMs)*time.Millisecond),
	}
}

// FetchAll retrieves every configured partition and concatenates the results
// in declaration order, regardless of which request finishes first. The
// first partition failure (in declaration order) invalidates the whole
// fetch: no retries, no partial results.
func (c *Client) FetchAll(ctx context.Context) ([]models.RawRecord, error) {
	n := len(c.cfg.ResourceIDs)
	parts := make([][]models.RawRecord, n)
	errs := make([]error, n)

	c.logger.Info("[datagov] Fetching %d partitions — concurrency: %d", n, c.cfg.MaxConcurrency)

	for i, id := range c.cfg.ResourceIDs {
		i, id := i, id
		c.pool.Submit(func() {
			parts[i], errs[i] = c.fetchPartition(ctx, id)
		})
	}
	c.pool.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var all []models.RawRecord
	for i, part := range parts {
		c.logger.Debug("[datagov] Partition %s: %d records", c.cfg.ResourceIDs[i], len(part))
		all = append(all, part...)
	}

	c.logger.Info("[datagov] Fetched %d records across %d partitions", len(all), n)
	return all, nil
}

func (c *Client) fetchPartition(ctx context.Context, resourceID string) ([]models.RawRecord, error) {
	q := url.Values{}
	q.Set("resource_id", resourceID)
	q.Set("limit", strconv.Itoa(c.cfg.FetchLimit))
	endpoint := c.cfg.BaseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{ResourceID: resourceID, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{ResourceID: resourceID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			ResourceID: resourceID,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ParseError{ResourceID: resourceID, Err: err}
	}

	return body.Result.Records, nil
}
