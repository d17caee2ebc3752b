package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/srisaikitchen/storefront/pkg/config"
	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
)

var (
	errBaseURLRequired = errors.New("api base url is required")
	errLoggerRequired  = errors.New("rest logger is required")
)

// Client performs JSON requests against the storefront backend with
// centralized error mapping and request logging.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient validates the configuration and builds a REST client.
func NewClient(cfg config.APIConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logg,
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request. A 204 response is success with no body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	ctx = c.logger.WithRequestID(ctx, requestID)
	ctx = c.logger.WithFields(ctx, map[string]any{"method": method, "path": path})
	c.logger.Debug(ctx, "api request")

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "api request failed")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s", method, path))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(res.Body)
		message := strings.TrimSpace(string(text))
		if message == "" {
			message = res.Status
		}
		c.logger.Warn(c.logger.WithField(ctx, "status", res.StatusCode), "api error response")
		return pkgerrors.New(pkgerrors.CodeForStatus(res.StatusCode), fmt.Sprintf("api %d: %s", res.StatusCode, message)).
			WithDetails(map[string]any{"status": res.StatusCode, "body": message})
	}

	// 204 and empty bodies are valid success responses.
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	text, err := io.ReadAll(res.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading response body")
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return nil
	}
	if err := json.Unmarshal(text, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding response body")
	}
	return nil
}
