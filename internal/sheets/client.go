package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/types"
)

// ErrNoEndpoint is returned when no sheet script URL is configured.
var ErrNoEndpoint = errors.New("sheet endpoint not configured")

// UnknownIP is recorded when the public IP cannot be determined.
const UnknownIP = "unknown"

// Client talks to the spreadsheet-backed script endpoint: reads return every
// stored row, writes append one flat record.
type Client struct {
	URL             string
	IPLookupURL     string
	IPLookupTimeout time.Duration
	MaxElapsed      time.Duration // retry budget for a single read

	HTTP *http.Client
	Log  *logger.Logger
	Now  func() time.Time
}

func New(sheetURL, ipLookupURL string, ipTimeout, httpTimeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		URL:             sheetURL,
		IPLookupURL:     ipLookupURL,
		IPLookupTimeout: ipTimeout,
		MaxElapsed:      12 * time.Second,
		HTTP:            &http.Client{Timeout: httpTimeout},
		Log:             log.Component("sheets"),
		Now:             time.Now,
	}
}

// Fetch reads every stored row. A response that is not a JSON array yields
// no rows.
func (c *Client) Fetch(ctx context.Context) ([]any, error) {
	if c.URL == "" {
		return nil, ErrNoEndpoint
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("parse sheet url: %w", err)
	}
	q := u.Query()
	q.Set("action", "read")
	q.Set("nocache", strconv.FormatInt(c.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	var body any
	if err := c.doJSON(ctx, http.MethodGet, u.String(), &body); err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	rows, ok := body.([]any)
	if !ok {
		c.Log.WithField("type", fmt.Sprintf("%T", body)).Warn("sheet read returned a non-array body")
		return []any{}, nil
	}
	return rows, nil
}

// Submit posts one record. The script endpoint answers with an opaque
// redirect, so only transport errors and error statuses are reported.
func (c *Client) Submit(ctx context.Context, p types.SubmissionPayload) error {
	if c.URL == "" {
		return ErrNoEndpoint
	}
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")
	resp, err := c.client().Do(req)
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("post submission: status %d", resp.StatusCode)
	}
	return nil
}

// LookupIP asks the public IP echo service for the caller's address. Any
// failure, including the lookup timeout, yields UnknownIP.
func (c *Client) LookupIP(ctx context.Context) string {
	if c.IPLookupURL == "" {
		return UnknownIP
	}
	timeout := c.IPLookupTimeout
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.IPLookupURL, nil)
	if err != nil {
		return UnknownIP
	}
	resp, err := c.client().Do(req)
	if err != nil {
		c.Log.WithError(err).Debug("ip lookup failed")
		return UnknownIP
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return UnknownIP
	}
	var out struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.IP == "" {
		return UnknownIP
	}
	return out.IP
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// doJSON retries transport failures and 5xx responses with exponential
// backoff. 4xx responses and undecodable bodies are not retried.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, target any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.MaxElapsed
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.client().Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("client error: status %d: %s", resp.StatusCode, truncate(body, 200))
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %w", err)
			return backoff.Permanent(lastErr)
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.Log.WithError(err).WithField("retry_in", wait.String()).Warn("sheet request failed, retrying")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
