package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/internal/envelope"
	"github.com/fivetwenty-io/giantswarm/internal/pipeline"
	"github.com/fivetwenty-io/giantswarm/internal/session"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/tidwall/gjson"
)

// secretBody is a request body carrying credentials.
type secretBody map[string]string

// core is shared by every resource client.
type core struct {
	pipeline *pipeline.Pipeline
	session  *session.State
	store    giantswarm.EnvironmentStore
	logger   giantswarm.Logger
}

// read performs an authenticated GET through the cache and returns the
// envelope payload. A cached response whose envelope is wrong is dropped
// so the next read goes to the API.
func (c *core) read(ctx context.Context, key, path string) (gjson.Result, error) {
	err := c.session.RequireAuth()
	if err != nil {
		return gjson.Result{}, err
	}

	resp, err := c.pipeline.SendCached(ctx, key, pipeline.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return gjson.Result{}, err
	}

	err = envelope.ValidateStatus(resp.Body, giantswarm.StatusSuccess)
	if err != nil {
		c.pipeline.Invalidate(ctx, key)

		return gjson.Result{}, err
	}

	return c.payload(path, resp.Body), nil
}

// call performs an authenticated live request.
func (c *core) call(ctx context.Context, method, path string, body interface{}, expected giantswarm.EnvelopeStatus) (gjson.Result, error) {
	err := c.session.RequireAuth()
	if err != nil {
		return gjson.Result{}, err
	}

	return c.send(ctx, method, path, body, expected)
}

// send performs a live request without the authentication precondition.
func (c *core) send(ctx context.Context, method, path string, body interface{}, expected giantswarm.EnvelopeStatus) (gjson.Result, error) {
	var payload []byte

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("encoding request body: %w", err)
		}

		payload = encoded
	}

	_, sensitive := body.(secretBody)

	resp, err := c.pipeline.SendLive(ctx, pipeline.Request{
		Method:    method,
		Path:      path,
		Body:      payload,
		Sensitive: sensitive,
	})
	if err != nil {
		return gjson.Result{}, err
	}

	err = envelope.ValidateStatus(resp.Body, expected)
	if err != nil {
		return gjson.Result{}, err
	}

	return c.payload(path, resp.Body), nil
}

func (c *core) payload(path string, body []byte) gjson.Result {
	data, ok := envelope.Payload(body)
	if !ok {
		c.logger.Warn("response body is not JSON, using empty payload", map[string]interface{}{"path": path})
	}

	return data
}

// encodeSecret encodes a secret field the way the API expects it.
func encodeSecret(value string) string {
	return base64.StdEncoding.EncodeToString([]byte(value))
}

// cacheKey joins a key prefix and its parameters. Parameters are
// escaped so none can contain the separator.
func cacheKey(prefix string, params ...string) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, prefix)

	for _, param := range params {
		parts = append(parts, url.QueryEscape(param))
	}

	return strings.Join(parts, constants.CacheKeySeparator)
}

// resourcePath joins escaped path segments.
func resourcePath(segments ...string) string {
	var builder strings.Builder

	for _, segment := range segments {
		builder.WriteString("/")
		builder.WriteString(url.PathEscape(segment))
	}

	return builder.String()
}

func stringsOf(values []gjson.Result) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, value.String())
	}

	return result
}
