package giantswarm

import "strconv"

// EnvelopeStatus is the application-level status code carried in the
// "status_code" field of every API response body.
type EnvelopeStatus int

// Envelope status codes declared by the API.
const (
	StatusSuccess EnvelopeStatus = 10000
	StatusCreated EnvelopeStatus = 10003
	StatusStarted EnvelopeStatus = 10004
	StatusStopped EnvelopeStatus = 10005
	StatusUpdated EnvelopeStatus = 10006
	StatusDeleted EnvelopeStatus = 10007
)

// String returns the status name, or the bare number for unknown codes.
func (s EnvelopeStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusCreated:
		return "created"
	case StatusStarted:
		return "started"
	case StatusStopped:
		return "stopped"
	case StatusUpdated:
		return "updated"
	case StatusDeleted:
		return "deleted"
	default:
		return strconv.Itoa(int(s))
	}
}
