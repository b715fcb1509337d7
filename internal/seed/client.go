package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/mindlab/internal/adapters/http/api"
	"github.com/okian/mindlab/internal/domain/types"
)

// Submission outcomes.
const (
	outcomeCreated   = "created"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

// maxErrorBody caps how much of an error response is quoted.
const maxErrorBody = 512

// Client talks to the journal API.
type Client struct {
	client     *http.Client
	baseURL    string
	passphrase string
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, timeout time.Duration, passphrase string) *Client {
	return &Client{
		client:     &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		passphrase: passphrase,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var rd io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.passphrase != "" {
		req.Header.Set(api.HeaderPassphrase, c.passphrase)
	}
	return c.client.Do(req)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("%s %s: status %d: %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, bytes.TrimSpace(raw))
}

// Health checks that the service answers.
func (c *Client) Health(ctx context.Context) error {
	var status map[string]string
	if err := c.getJSON(ctx, "/healthz", &status); err != nil {
		return err
	}
	if status["status"] != "ok" {
		return fmt.Errorf("unexpected health status %q", status["status"])
	}
	return nil
}

// Submit posts one entry and classifies the answer.
func (c *Client) Submit(ctx context.Context, sub Submission) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/records", sub)
	if err != nil {
		return outcomeFailed, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusCreated:
		return outcomeCreated, nil
	case http.StatusOK:
		var receipt types.Receipt
		if err := json.NewDecoder(resp.Body).Decode(&receipt); err == nil && receipt.Duplicate {
			return outcomeDuplicate, nil
		}
		return outcomeCreated, nil
	default:
		return outcomeFailed, statusError(resp)
	}
}

// History fetches the entries for a period.
func (c *Client) History(ctx context.Context, token string) ([]types.Entry, error) {
	var out struct {
		Entries []types.Entry `json:"entries"`
	}
	if err := c.getJSON(ctx, "/records?period="+url.QueryEscape(token), &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// Analysis fetches the skill averages for a period.
func (c *Client) Analysis(ctx context.Context, token string) (types.Analysis, error) {
	var out types.Analysis
	err := c.getJSON(ctx, "/analysis?period="+url.QueryEscape(token), &out)
	return out, err
}
