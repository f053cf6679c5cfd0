package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobdigest/internal/scrape/types"

	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint = "https://www.googleapis.com/customsearch/v1"
	DefaultRegion   = "in"
	DefaultTimeout  = 15 * time.Second

	maxBody = 4 << 20
)

type Config struct {
	Endpoint string
	APIKey   string
	EngineID string // cx
	Region   string // gl
	Timeout  time.Duration
}

// Client talks to the Custom Search JSON API. One request per call, no
// retries and no paging.
type Client struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Name() string { return "google" }

// Search fetches one results page for query, starting at the 1-based offset
// start, and returns the raw JSON body.
func (c *Client) Search(ctx context.Context, query string, start int) ([]byte, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("google: empty query")
	}
	if start < 1 {
		start = 1
	}

	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("google endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", c.cfg.APIKey)
	q.Set("cx", c.cfg.EngineID)
	q.Set("q", query)
	q.Set("start", strconv.Itoa(start))
	q.Set("gl", c.cfg.Region)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("google request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jobdigest/1.0 (+local)")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google get: %w", redactKey(err, c.cfg.APIKey))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return nil, fmt.Errorf("google status %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("google read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("google decode: response is not valid JSON")
	}
	return body, nil
}

// Run searches the first page for query and extracts its items.
func (c *Client) Run(ctx context.Context, query string) types.QueryResult {
	body, err := c.Search(ctx, query, 1)
	if err != nil {
		return types.Failed(query, err)
	}
	return types.QueryResult{Query: query, Records: Extract(body)}
}

// redactKey keeps the API key out of logged url.Error messages.
func redactKey(err error, key string) error {
	var ue *url.Error
	if key == "" || !errors.As(err, &ue) {
		return err
	}
	return &url.Error{
		Op:  ue.Op,
		URL: strings.ReplaceAll(ue.URL, url.QueryEscape(key), "REDACTED"),
		Err: ue.Err,
	}
}
