// Package envelope converts transport responses to and from cache
// snapshots and reads the API's {"status_code", "data"} body envelope.
package envelope

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	gshttp "github.com/fivetwenty-io/giantswarm/internal/http"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/tidwall/gjson"
)

// Snapshot is the cached form of a response.
type Snapshot struct {
	Status  int              `json:"status"`
	Headers []SnapshotHeader `json:"headers"`
	Body    string           `json:"body"`
}

// SnapshotHeader is one header line. Multi-valued headers produce one
// entry per value.
type SnapshotHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ToSnapshot serializes resp. Headers are listed sorted by name so the
// same response always yields the same bytes.
func ToSnapshot(resp *gshttp.Response) string {
	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}

	sort.Strings(names)

	snapshot := Snapshot{
		Status:  resp.StatusCode,
		Headers: make([]SnapshotHeader, 0, len(names)),
		Body:    string(resp.Body),
	}

	for _, name := range names {
		for _, value := range resp.Headers[name] {
			snapshot.Headers = append(snapshot.Headers, SnapshotHeader{Name: name, Value: value})
		}
	}

	// A struct of ints and strings always marshals.
	data, _ := json.Marshal(snapshot)

	return string(data)
}

// FromSnapshot rebuilds a response from a snapshot produced by ToSnapshot.
func FromSnapshot(value string) (*gshttp.Response, error) {
	var snapshot Snapshot

	err := json.Unmarshal([]byte(value), &snapshot)
	if err != nil {
		return nil, giantswarm.NewError(giantswarm.ErrorKindInvalidJSONFromCache, err)
	}

	headers := make(http.Header, len(snapshot.Headers))
	for _, header := range snapshot.Headers {
		headers[header.Name] = append(headers[header.Name], header.Value)
	}

	return &gshttp.Response{
		StatusCode: snapshot.Status,
		Headers:    headers,
		Body:       []byte(snapshot.Body),
	}, nil
}

// Payload returns the "data" member of body. ok is false when body is
// not JSON; the returned result is then empty, so reads degrade to empty
// values instead of failing.
func Payload(body []byte) (data gjson.Result, ok bool) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, false
	}

	return gjson.GetBytes(body, "data"), true
}

// ValidateStatus checks that body carries status_code == expected.
func ValidateStatus(body []byte, expected giantswarm.EnvelopeStatus) error {
	if !gjson.ValidBytes(body) {
		return giantswarm.NewError(giantswarm.ErrorKindInvalidJSONFromAPI,
			fmt.Errorf("%d bytes of malformed body", len(body)))
	}

	code := gjson.GetBytes(body, "status_code")

	var actual giantswarm.EnvelopeStatus
	if code.Type == gjson.Number {
		actual = giantswarm.EnvelopeStatus(code.Int())
	}

	if code.Type != gjson.Number || actual != expected {
		return &giantswarm.Error{
			Kind:     giantswarm.ErrorKindResponseStatusMismatch,
			Expected: expected,
			Actual:   actual,
		}
	}

	return nil
}
