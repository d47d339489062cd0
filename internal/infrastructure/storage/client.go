// Package storage signs upload URLs against the provider's storage API so the
// service key never leaves the backend.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for the storage API connection. ServiceKey is
// the privileged key; it is only ever used server-side for signing.
type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// CreateSignedUploadURL asks the storage API for a one-time upload URL for the
// given object. The returned URL is absolute and can be used by a browser
// without credentials.
func (c *Client) CreateSignedUploadURL(ctx context.Context, bucket, objectKey string) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/upload/sign/%s/%s", c.cfg.BaseURL, bucket, objectKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader("{}"))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.ServiceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage sign: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage sign: status %d", resp.StatusCode)
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("storage sign: decode: %w", err)
	}
	if body.URL == "" {
		return "", fmt.Errorf("storage sign: empty url in response")
	}

	// The API returns a path relative to the storage root.
	if strings.HasPrefix(body.URL, "/") {
		return c.cfg.BaseURL + "/storage/v1" + body.URL, nil
	}
	return body.URL, nil
}
