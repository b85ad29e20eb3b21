// Package gsclient provides the main entry point for creating Giant Swarm API clients
package gsclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/giantswarm/internal/client"
	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// New creates a new Giant Swarm API client. The endpoint is normalized
// in place and defaults to the public API.
func New(ctx context.Context, config *giantswarm.Config) (giantswarm.Client, error) {
	if config == nil {
		return nil, constants.ErrConfigRequired
	}

	config.Endpoint = NormalizeEndpoint(config.Endpoint)

	client, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	if config.Logger != nil {
		config.Logger.Debug("giantswarm client created", map[string]interface{}{
			"endpoint":  config.Endpoint,
			"logged_in": client.IsLoggedIn(),
		})
	}

	return client, nil
}

// NormalizeEndpoint trims a trailing slash and adds "https://" when no
// scheme is present. An empty endpoint becomes the public API.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return constants.DefaultEndpoint
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithEndpoint creates a new logged out client for endpoint.
func NewWithEndpoint(ctx context.Context, endpoint string) (giantswarm.Client, error) {
	return New(ctx, &giantswarm.Config{
		Endpoint: endpoint,
	})
}

// NewWithToken creates a new client for endpoint with a restored session.
func NewWithToken(ctx context.Context, endpoint, token string) (giantswarm.Client, error) {
	return New(ctx, &giantswarm.Config{
		Endpoint: endpoint,
		Token:    token,
	})
}
