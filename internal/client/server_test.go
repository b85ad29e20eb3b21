package client_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	. "github.com/fivetwenty-io/giantswarm/internal/client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// reply is a canned API answer.
type reply struct {
	status int
	body   string
}

type recordedRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          string
}

// apiServer answers "METHOD /escaped/path" routes and records every
// request. Unknown routes get a 404.
type apiServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string][]reply
	requests []recordedRequest
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	server := &apiServer{routes: map[string][]reply{}}
	server.Server = httptest.NewServer(http.HandlerFunc(server.serve))
	t.Cleanup(server.Close)

	return server
}

// on queues replies for a route. The last reply repeats once the queue
// is drained.
func (s *apiServer) on(route string, replies ...reply) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes[route] = append(s.routes[route], replies...)
}

func (s *apiServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{
		Method:        r.Method,
		Path:          r.URL.EscapedPath(),
		Authorization: r.Header.Get("Authorization"),
		Body:          string(body),
	})

	route := r.Method + " " + r.URL.EscapedPath()
	queue := s.routes[route]

	var answer reply

	switch len(queue) {
	case 0:
		answer = reply{status: http.StatusNotFound, body: `{"status_code":10001}`}
	case 1:
		answer = queue[0]
	default:
		answer = queue[0]
		s.routes[route] = queue[1:]
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(answer.status)
	_, _ = w.Write([]byte(answer.body))
}

func (s *apiServer) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

func (s *apiServer) count(route string) int {
	n := 0

	for _, req := range s.recorded() {
		if req.Method+" "+req.Path == route {
			n++
		}
	}

	return n
}

// envelope renders an API body with the given status code and data.
func envelope(code int, data string) string {
	return fmt.Sprintf(`{"status_code":%d,"data":%s}`, code, data)
}

func okReply(code int, data string) reply {
	return reply{status: http.StatusOK, body: envelope(code, data)}
}

// newClient creates a client against server, logged in when token is set.
func newClient(t *testing.T, server *apiServer, token string) (*Client, *prometheus.Registry, *recordingLogger) {
	t.Helper()

	reg := prometheus.NewRegistry()
	logger := &recordingLogger{}

	client, err := NewTestClient(server.URL, token, logger, reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, reg, logger
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []map[string]interface{}
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Error(string, map[string]interface{}) {}
func (l *recordingLogger) Warn(_ string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warns = append(l.warns, fields)
}

// kinds returns the error kinds of the logged operation failures.
func (l *recordingLogger) kinds() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var kinds []string

	for _, fields := range l.warns {
		if kind, ok := fields["kind"].(string); ok {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}
