// Package pipeline sends API requests, classifies their transport status
// and replays read responses through the response cache.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/internal/envelope"
	gshttp "github.com/fivetwenty-io/giantswarm/internal/http"
	"github.com/fivetwenty-io/giantswarm/internal/metrics"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// Transport performs one HTTP round trip. 4xx and 5xx are responses,
// not errors.
type Transport interface {
	Send(ctx context.Context, req *gshttp.Request) (*gshttp.Response, error)
}

// TokenSource yields the current session token, empty when logged out.
type TokenSource interface {
	Token() string
}

// Request describes one logical call. Path is relative to the endpoint
// and must already be escaped. Sensitive marks a call carrying
// credentials, whose bodies must not be logged.
type Request struct {
	Method    string
	Path      string
	Body      []byte
	Sensitive bool
}

// Config holds the pipeline collaborators. Cache, Logger and Metrics are
// optional.
type Config struct {
	Endpoint  string
	UserAgent string
	Transport Transport
	Tokens    TokenSource
	Cache     giantswarm.Cache
	Logger    giantswarm.Logger
	Metrics   *metrics.Recorder
}

// Pipeline is safe for concurrent use.
type Pipeline struct {
	endpoint  string
	userAgent string
	transport Transport
	tokens    TokenSource
	cache     giantswarm.Cache
	logger    giantswarm.Logger
	metrics   *metrics.Recorder

	// cacheMu serializes the lookup, send, store sequence of SendCached.
	cacheMu sync.Mutex
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	pipeline := &Pipeline{
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		userAgent: cfg.UserAgent,
		transport: cfg.Transport,
		tokens:    cfg.Tokens,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}

	if pipeline.userAgent == "" {
		pipeline.userAgent = constants.DefaultUserAgent
	}

	if pipeline.cache == nil {
		pipeline.cache = giantswarm.NewNoOpCache()
	}

	return pipeline
}

// SendLive sends req and classifies the transport status. The envelope
// is left for the caller to validate.
func (p *Pipeline) SendLive(ctx context.Context, req Request) (*gshttp.Response, error) {
	start := time.Now()

	resp, err := p.transport.Send(ctx, p.buildRequest(req))
	if err != nil {
		p.metrics.ObserveRequest(req.Method, "transport_error", time.Since(start))

		return nil, fmt.Errorf("sending %s %s: %w", req.Method, req.Path, err)
	}

	err = Classify(resp.StatusCode)
	if err != nil {
		p.metrics.ObserveRequest(req.Method, outcomeOf(err), time.Since(start))

		return nil, err
	}

	p.metrics.ObserveRequest(req.Method, metrics.OutcomeSuccess, time.Since(start))

	return resp, nil
}

// SendCached replays the snapshot stored under key when there is a
// readable one. Otherwise it sends req live and stores the response.
// An empty key disables caching for the call.
func (p *Pipeline) SendCached(ctx context.Context, key string, req Request) (*gshttp.Response, error) {
	if key == "" {
		p.debug("empty cache key, sending live", map[string]interface{}{"path": req.Path})

		return p.SendLive(ctx, req)
	}

	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	if resp, ok := p.lookup(ctx, key); ok {
		return resp, nil
	}

	resp, err := p.SendLive(ctx, req)
	if err != nil {
		return nil, err
	}

	err = p.cache.Store(ctx, key, envelope.ToSnapshot(resp))
	if err != nil {
		p.warn("failed to store response in cache", map[string]interface{}{
			"cache_key": key,
			"error":     err.Error(),
		})
	}

	return resp, nil
}

// Invalidate drops the given keys from the cache.
func (p *Pipeline) Invalidate(ctx context.Context, keys ...string) {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	for _, key := range keys {
		err := p.cache.Delete(ctx, key)
		if err != nil {
			p.warn("failed to invalidate cache entry", map[string]interface{}{
				"cache_key": key,
				"error":     err.Error(),
			})
		}
	}
}

// ClearCache drops every cached response.
func (p *Pipeline) ClearCache(ctx context.Context) {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	err := p.cache.Clear(ctx)
	if err != nil {
		p.warn("failed to clear cache", map[string]interface{}{"error": err.Error()})
	}
}

// lookup must be called with cacheMu held.
func (p *Pipeline) lookup(ctx context.Context, key string) (*gshttp.Response, bool) {
	if !p.cache.Has(ctx, key) {
		p.metrics.CacheLookup(metrics.CacheMiss)

		return nil, false
	}

	value, err := p.cache.Fetch(ctx, key)
	if err != nil {
		p.metrics.CacheLookup(metrics.CacheMiss)

		return nil, false
	}

	resp, err := envelope.FromSnapshot(value)
	if err != nil {
		p.metrics.CacheLookup(metrics.CacheCorrupt)
		p.warn("discarding unreadable cache entry", map[string]interface{}{
			"cache_key": key,
			"error":     err.Error(),
		})

		return nil, false
	}

	p.metrics.CacheLookup(metrics.CacheHit)

	return resp, true
}

func (p *Pipeline) buildRequest(req Request) *gshttp.Request {
	headers := http.Header{}
	headers.Set("Accept", constants.MediaTypeJSON)
	headers.Set("User-Agent", p.userAgent)

	if p.tokens != nil {
		if token := p.tokens.Token(); token != "" {
			headers.Set("Authorization", constants.AuthorizationScheme+" "+token)
		}
	}

	if len(req.Body) > 0 {
		headers.Set("Content-Type", constants.MediaTypeJSON)
	}

	return &gshttp.Request{
		Method:    req.Method,
		URL:       p.endpoint + req.Path,
		Headers:   headers,
		Body:      req.Body,
		Sensitive: req.Sensitive,
	}
}

// Classify maps a transport status to an error kind. The order of the
// checks is significant: 403 is not a generic client error, and 404 is
// checked after the 4xx rule excludes it.
func Classify(status int) error {
	var kind giantswarm.ErrorKind

	switch {
	case status == http.StatusForbidden:
		kind = giantswarm.ErrorKindNotAllowedToRequestURI
	case status >= constants.HTTPStatusClientErrorMin && status < constants.HTTPStatusServerErrorMin &&
		status != http.StatusNotFound:
		kind = giantswarm.ErrorKindClientError
	case status >= constants.HTTPStatusServerErrorMin && status < constants.HTTPStatusServerErrorMax:
		kind = giantswarm.ErrorKindServerError
	case status >= constants.HTTPStatusRedirectionMin && status < constants.HTTPStatusClientErrorMin:
		kind = giantswarm.ErrorKindResponseContainsRedirection
	case status == http.StatusNotFound:
		kind = giantswarm.ErrorKindNotFound
	case status < constants.HTTPStatusSuccessMin || status >= constants.HTTPStatusRedirectionMin:
		kind = giantswarm.ErrorKindUnexpectedResponseStatus
	default:
		return nil
	}

	return &giantswarm.Error{Kind: kind, StatusCode: status}
}

func outcomeOf(err error) string {
	if kind, ok := giantswarm.KindOf(err); ok {
		return kind.String()
	}

	return "error"
}

func (p *Pipeline) debug(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, fields)
	}
}

func (p *Pipeline) warn(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, fields)
	}
}
