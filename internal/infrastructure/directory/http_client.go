// Package directory provides clients for the org-directory service that
// resolves a user's reporting chain. Two transports exist: a plain HTTP
// client and an AWS Lambda invoker, selected by configuration.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/workhive/todos-backend/internal/domain/identity"
	"github.com/workhive/todos-backend/internal/domain/shared"
)

// HTTPClient resolves managers by calling the directory service over HTTP
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a directory client that calls baseURL directly
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("directory"),
	}
}

// GetManagers fetches the full management chain for the given user.
// Any transport or decode failure maps to UPSTREAM_UNAVAILABLE so callers
// degrade uniformly regardless of the failure mode.
func (c *HTTPClient) GetManagers(ctx context.Context, userID string) ([]identity.DirectoryUser, error) {
	endpoint := fmt.Sprintf("%s/users/%s/managers", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Directory request failed", zap.String("user_id", userID), zap.Error(err))
		return nil, shared.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []identity.DirectoryUser{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Directory returned unexpected status",
			zap.String("user_id", userID),
			zap.Int("status", resp.StatusCode))
		return nil, shared.ErrUpstreamUnavailable
	}

	var managers []identity.DirectoryUser
	if err := json.NewDecoder(resp.Body).Decode(&managers); err != nil {
		c.logger.Warn("Failed to decode directory response", zap.String("user_id", userID), zap.Error(err))
		return nil, shared.ErrUpstreamUnavailable
	}

	return managers, nil
}

var _ identity.DirectoryService = (*HTTPClient)(nil)
