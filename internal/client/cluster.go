package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/internal/pipeline"
)

// ClusterClient provides cluster level calls.
type ClusterClient struct {
	core *core
}

func newClusterClient(shared *core) *ClusterClient {
	return &ClusterClient{core: shared}
}

// Ping checks that the API answers within ShortHTTPTimeout. It needs no
// session and the answer carries no envelope.
func (c *ClusterClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.ShortHTTPTimeout)
	defer cancel()

	resp, err := c.core.pipeline.SendLive(ctx, pipeline.Request{Method: http.MethodGet, Path: "/ping"})
	if err != nil {
		return err
	}

	body := strings.TrimSpace(string(resp.Body))
	if body != constants.PingResponse {
		return fmt.Errorf("%w: %q", constants.ErrPingFailed, body)
	}

	return nil
}
