// Package translate is the HTTP client for the remote translation
// gateway. The gateway is treated as opaque, possibly slow, and
// possibly failing; callers own their timeouts via ctx.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"linguasync/contract"
	"linguasync/domain"
)

var _ contract.Translator = (*Client)(nil)

type Client struct {
	log      *slog.Logger
	http     *http.Client
	endpoint string
	apiKey   string
}

// NewClient builds a gateway client for the given base endpoint.
// The http.Client timeout is a hard backstop; per-call deadlines come
// from the caller's ctx.
func NewClient(log *slog.Logger, endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		log:      log,
		http:     &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

type translateRequest struct {
	Text    string            `json:"text"`
	Source  domain.LangCode   `json:"source"`
	Targets []domain.LangCode `json:"targets"`
}

type translateResponse struct {
	Translations map[domain.LangCode]string `json:"translations"`
}

// Translate maps (text, source, targets) to a target→text mapping.
// A missing target key in the response is a valid outcome; only
// transport failures and non-2xx statuses are errors.
func (c *Client) Translate(ctx context.Context, text string, source domain.LangCode,
	targets []domain.LangCode) (map[domain.LangCode]string, error) {
	body, err := json.Marshal(translateRequest{Text: text, Source: source, Targets: targets})
	if err != nil {
		return nil, fmt.Errorf("translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translation gateway: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("translation gateway returned %s", resp.Status)
	}

	var decoded translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("translation response: %w", err)
	}
	return decoded.Translations, nil
}

// Ping verifies the gateway is reachable. Boot fails fast when it is not:
// the relay has no degraded mode without its translator.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("gateway health check: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway health check: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway health check returned %s", resp.Status)
	}
	c.log.Debug("Translation gateway reachable", "endpoint", c.endpoint)
	return nil
}
