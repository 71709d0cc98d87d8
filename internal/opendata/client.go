package opendata

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 32 << 20

// Config describes the CKAN datastore_search endpoint and the two resources
// queried through it.
type Config struct {
	BaseURL           string
	CitiesResourceID  string
	StreetsResourceID string
	CitiesLimit       int
	StreetsLimit      int
	Timeout           time.Duration
}

// Client queries the data.gov.il CKAN datastore. Requests are made once; a
// failure is returned to the caller without retrying.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// New creates a Client with its own transport and cfg.Timeout per request.
func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// Cities returns the raw JSON of the city registry.
func (c *Client) Cities(ctx context.Context) ([]byte, error) {
	return c.search(ctx, c.cfg.CitiesResourceID, c.cfg.CitiesLimit, "")
}

// Streets returns the raw JSON of the street registry filtered by a
// full-text match on cityCode.
func (c *Client) Streets(ctx context.Context, cityCode string) ([]byte, error) {
	return c.search(ctx, c.cfg.StreetsResourceID, c.cfg.StreetsLimit, cityCode)
}

func (c *Client) searchURL(resourceID string, limit int, q string) (string, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	params := u.Query()
	params.Set("resource_id", resourceID)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if q != "" {
		params.Set("q", q)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func (c *Client) search(ctx context.Context, resourceID string, limit int, q string) ([]byte, error) {
	endpoint, err := c.searchURL(resourceID, limit, q)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response of %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", endpoint, resp.StatusCode)
	}
	return body, nil
}
