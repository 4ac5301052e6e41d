package httpjson

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "user-demo/pkg/errors"
	"user-demo/pkg/logger"
)

// Client performs single JSON GET requests.
type Client struct {
	http *http.Client
	log  *zap.Logger
}

// New creates a Client. A zero timeout leaves the transport default in place.
func New(timeout time.Duration, log *zap.Logger) *Client {
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return NewWithHTTPClient(hc, log)
}

// NewWithHTTPClient creates a Client around an existing http.Client.
func NewWithHTTPClient(hc *http.Client, log *zap.Logger) *Client {
	return &Client{http: hc, log: log}
}

// FetchJSON issues one GET to url and decodes the body as JSON.
// Failures are logged and returned as NetworkError, HTTPStatusError or DecodeError.
func (c *Client) FetchJSON(ctx context.Context, url string) (any, error) {
	log := logger.WithContext(ctx, c.log).With(zap.String("url", url))

	data, err := c.fetch(ctx, url)
	if err != nil {
		log.Error("fetching data failed", zap.Error(err))
		return nil, err
	}

	return data, nil
}

func (c *Client) fetch(ctx context.Context, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewNetworkError(url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, apperrors.NewHTTPStatusError(url, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError(url, err)
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apperrors.NewDecodeError(url, err)
	}

	return data, nil
}
