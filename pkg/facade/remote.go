package facade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
	"github.com/sitedesk/sitedesk-engine/pkg/retry"
)

// DefaultTimeout is the maximum time to wait for remote API responses.
const DefaultTimeout = 30 * time.Second

// RemoteClient talks to a hosted sitedesk API exposing the same operations as
// the local services. It is only constructed when remote mode is configured;
// the default deployment never uses it.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRemoteClient creates a client for the remote API at baseURL.
func NewRemoteClient(baseURL string, logger *zap.Logger) *RemoteClient {
	return &RemoteClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.Named("remote"),
	}
}

func (c *RemoteClient) endpoint(path string) (string, error) {
	joined, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return "", fmt.Errorf("failed to build URL: %w", err)
	}
	return joined, nil
}

// decodeError turns a non-2xx response into the uniform error shape. Bodies
// that carry the API's error JSON keep their code; anything else becomes a
// database error.
func decodeError(status int, body []byte) error {
	var appErr apperrors.Error
	if err := json.Unmarshal(body, &appErr); err == nil && appErr.Code != "" {
		appErr.Status = status
		return &appErr
	}
	return apperrors.Database("remote call", fmt.Errorf("unexpected status %d", status))
}

func (c *RemoteClient) do(ctx context.Context, method, path string, body any, out any) error {
	endpoint, err := c.endpoint(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Remote API call",
		zap.String("method", method),
		zap.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Database("remote call", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Database("remote call", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperrors.Database("remote call", fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func remoteGet[T any](ctx context.Context, c *RemoteClient, path string) (T, error) {
	var out T
	// Reads are idempotent, so transient network failures get a bounded
	// retry.
	err := retry.Do(ctx, nil, func() error {
		return c.do(ctx, http.MethodGet, path, nil, &out)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func remoteSend[T any](ctx context.Context, c *RemoteClient, method, path string, body any) (T, error) {
	var out T
	if err := c.do(ctx, method, path, body, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func remoteDelete(ctx context.Context, c *RemoteClient, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
