package client

import (
	"errors"
	"fmt"
	"io"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/internal/environments"
	"github.com/fivetwenty-io/giantswarm/internal/http"
	"github.com/fivetwenty-io/giantswarm/internal/logging"
	"github.com/fivetwenty-io/giantswarm/internal/metrics"
	"github.com/fivetwenty-io/giantswarm/internal/pipeline"
	"github.com/fivetwenty-io/giantswarm/internal/session"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"go.uber.org/zap"
)

// Client implements the giantswarm.Client interface.
type Client struct {
	core    *core
	cache   giantswarm.Cache
	logger  giantswarm.Logger
	metrics *metrics.Recorder

	// Resource clients
	auth         *AuthClient
	companies    *CompaniesClient
	environments *EnvironmentsClient
	applications *ApplicationsClient
	instances    *InstancesClient
	account      *AccountClient
	cluster      *ClusterClient
}

var _ giantswarm.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *giantswarm.Config, logger giantswarm.Logger) []http.Option {
	httpOpts := []http.Option{http.WithLogger(logger)}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a client that talks to config.Endpoint over HTTP.
func New(config *giantswarm.Config) (*Client, error) {
	if config == nil {
		return nil, constants.ErrConfigRequired
	}

	logger := loggerOf(config)

	return NewWithTransport(config, http.NewClient(createHTTPClientOptions(config, logger)...))
}

// NewWithTransport creates a client on a custom transport.
func NewWithTransport(config *giantswarm.Config, transport pipeline.Transport) (*Client, error) {
	if config == nil {
		return nil, constants.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, constants.ErrEndpointRequired
	}

	logger := loggerOf(config)

	store := config.EnvironmentStore
	if store == nil {
		opened, err := environments.Open(config.DatabasePath, zapOf(logger))
		if err != nil {
			return nil, fmt.Errorf("creating environment store: %w", err)
		}

		store = opened
	}

	cache := config.Cache
	if cache == nil {
		cache = giantswarm.NewNoOpCache()
	}

	recorder := metrics.New(config.MetricsRegisterer)

	state := session.New(config.Token,
		session.WithPersister(config.Endpoint, config.TokenPersister),
		session.WithLogger(logger),
	)

	shared := &core{
		pipeline: pipeline.New(pipeline.Config{
			Endpoint:  config.Endpoint,
			UserAgent: config.UserAgent,
			Transport: transport,
			Tokens:    state,
			Cache:     cache,
			Logger:    logger,
			Metrics:   recorder,
		}),
		session: state,
		store:   store,
		logger:  logger,
	}

	client := &Client{
		core:    shared,
		cache:   cache,
		logger:  logger,
		metrics: recorder,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.auth = newAuthClient(c.core)
	c.companies = newCompaniesClient(c.core)
	c.environments = newEnvironmentsClient(c.core.store)
	c.applications = newApplicationsClient(c.core, c.companies, c.environments)
	c.instances = newInstancesClient(c.core)
	c.account = newAccountClient(c.core)
	c.cluster = newClusterClient(c.core)
}

// Close releases the environment store and the cache.
func (c *Client) Close() error {
	var errs []error

	err := c.core.store.Close()
	if err != nil {
		errs = append(errs, err)
	}

	if closer, ok := c.cache.(io.Closer); ok {
		err = closer.Close()
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func loggerOf(config *giantswarm.Config) giantswarm.Logger {
	if config.Logger != nil {
		return config.Logger
	}

	return logging.Nop()
}

func zapOf(logger giantswarm.Logger) *zap.Logger {
	if zapLogger, ok := logger.(*logging.ZapLogger); ok {
		return zapLogger.Zap()
	}

	return nil
}

// settle is the one place where failures stop: each public method hands
// its error here, where it is logged and turned into false.
func (c *Client) settle(operation string, err error) bool {
	if err == nil {
		return true
	}

	fields := map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	}

	if kind, ok := giantswarm.KindOf(err); ok {
		fields["kind"] = kind.String()

		if kind == giantswarm.ErrorKindResponseStatusMismatch {
			c.metrics.EnvelopeMismatch(operation)
		}
	}

	c.logger.Warn("giantswarm operation failed", fields)

	return false
}

// settleValue returns value, or fallback once settle has logged err.
func settleValue[T any](c *Client, operation string, value T, err error, fallback T) T {
	if !c.settle(operation, err) {
		return fallback
	}

	return value
}
