// Package translate is a thin client for the Google Translate v2 REST API.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"restaurant/internal/apperr"
)

const DefaultTarget = "es"

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Format string `json:"format"`
}

// Translate returns text translated into target. Upstream failures are
// returned as gateway errors carrying the upstream body; there is no retry.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperr.InvalidInput("text is required")
	}
	target = strings.TrimSpace(target)
	if target == "" {
		target = DefaultTarget
	}
	if c.apiKey == "" {
		return "", apperr.Gateway("translation unavailable", errors.New("translation API key not configured"))
	}

	payload, err := json.Marshal(translateRequest{Q: text, Target: target, Format: "text"})
	if err != nil {
		return "", apperr.Internal("encode translation request", err)
	}

	endpoint := c.endpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apperr.Internal("build translation request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperr.Gateway("translation request failed", scrubKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperr.Gateway("read translation response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.Gateway("translation failed", fmt.Errorf("%s", strings.TrimSpace(string(body))))
	}

	translated := gjson.GetBytes(body, "data.translations.0.translatedText")
	if !translated.Exists() {
		return "", apperr.Gateway("translation failed", errors.New("unexpected response shape"))
	}
	return translated.String(), nil
}

// scrubKey removes the API key from transport errors, which embed the URL.
func scrubKey(err error, key string) error {
	return errors.New(strings.ReplaceAll(err.Error(), url.QueryEscape(key), "REDACTED"))
}
