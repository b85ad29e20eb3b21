package client

import (
	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/prometheus/client_golang/prometheus"
)

// NewTestClient creates a client against baseURL with an in-memory
// environment store and a memory response cache. An empty token starts
// logged out.
func NewTestClient(baseURL, token string, logger giantswarm.Logger, reg prometheus.Registerer) (*Client, error) {
	return New(&giantswarm.Config{
		Endpoint:          baseURL,
		Token:             token,
		Cache:             giantswarm.NewMemoryCache(constants.DefaultCacheSize),
		Logger:            logger,
		MetricsRegisterer: reg,
	})
}
