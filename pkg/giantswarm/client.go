package giantswarm

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AuthClient manages the session token.
type AuthClient interface {
	Login(ctx context.Context, email, password string) bool
	Logout(ctx context.Context) bool
	IsLoggedIn() bool
	SetToken(token string)
}

// CompaniesClient provides access to companies and their members.
type CompaniesClient interface {
	GetCompanies(ctx context.Context) []string
	HasCompanies(ctx context.Context) bool
	CreateCompany(ctx context.Context, companyName string) bool
	DeleteCompany(ctx context.Context, companyName string) bool
	GetCompanyUsers(ctx context.Context, companyName string) []string
	AddUserToCompany(ctx context.Context, companyName, username string) bool
	RemoveUserFromCompany(ctx context.Context, companyName, username string) bool
}

// EnvironmentsClient provides access to locally remembered environments.
type EnvironmentsClient interface {
	GetEnvironments(ctx context.Context) []Environment
	HasEnvironments(ctx context.Context) bool
	HasEnvironment(ctx context.Context, companyName, environmentName string) bool
	CreateEnvironment(ctx context.Context, companyName, environmentName string) bool
	DeleteEnvironment(ctx context.Context, companyName, environmentName string) bool
}

// ApplicationsClient provides access to applications and their lifecycle.
type ApplicationsClient interface {
	GetAllApplications(ctx context.Context) []Application
	GetApplications(ctx context.Context, companyName, environmentName string) []Application
	GetApplicationStatus(ctx context.Context, companyName, environmentName, applicationName string) ApplicationStatus
	StartApplication(ctx context.Context, companyName, environmentName, applicationName string) bool
	StopApplication(ctx context.Context, companyName, environmentName, applicationName string) bool
	ScaleApplicationUp(ctx context.Context, target ComponentRef) bool
	ScaleApplicationUpBy(ctx context.Context, target ComponentRef, count int) bool
	ScaleApplicationDown(ctx context.Context, target ComponentRef) bool
	ScaleApplicationDownBy(ctx context.Context, target ComponentRef, count int) bool
}

// InstancesClient provides access to instance statistics.
type InstancesClient interface {
	GetInstanceStatistics(ctx context.Context, companyName, instanceID string) InstanceStatistics
}

// AccountClient provides access to the logged in user's account.
type AccountClient interface {
	GetUser(ctx context.Context) User
	UpdateEmail(ctx context.Context, email string) bool
	UpdatePassword(ctx context.Context, oldPassword, newPassword string) bool
}

// ClusterClient provides cluster level operations.
type ClusterClient interface {
	Ping(ctx context.Context) bool
}

// Client is the Giant Swarm API client.
//
// No method returns an error: every failure is logged through the
// configured Logger and turned into a neutral result (false, an empty
// slice, or a zero value). Callers that need the precise failure must
// inspect the log output.
type Client interface {
	AuthClient
	CompaniesClient
	EnvironmentsClient
	ApplicationsClient
	InstancesClient
	AccountClient
	ClusterClient

	// Close releases the environment store and the cache.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TokenPersister stores the session token outside the process so a later
// client can restore it with Config.Token. An empty token means logout.
type TokenPersister interface {
	UpdateToken(endpoint, token string) error
}

// EnvironmentStore remembers environment names per company. Uniqueness
// of (company, name) is enforced by callers through Has before Add.
type EnvironmentStore interface {
	All(ctx context.Context) ([]Environment, error)
	AllForCompany(ctx context.Context, companyName string) ([]string, error)
	Has(ctx context.Context, companyName, environmentName string) (bool, error)
	Add(ctx context.Context, companyName, environmentName string) error
	Remove(ctx context.Context, companyName, environmentName string) error
	Clear(ctx context.Context) error
	ClearCompany(ctx context.Context, companyName string) error
	Close() error
}

// Config represents client configuration for building a giantswarm.Client.
//
// # Collaborators
//
// Cache defaults to a NoOpCache, so the client is correct with caching
// disabled. EnvironmentStore defaults to a SQLite store at DatabasePath;
// when DatabasePath is empty an in-memory database is used and the
// environments are lost when the client is closed.
//
// # Timeouts and retries
//
// The request pipeline never retries. RetryMax configures the transport
// only and is zero by default. Per-request deadlines should be set on the
// context passed to client methods.
type Config struct {
	// Endpoint: base URL of the API (e.g., "https://api.giantswarm.io/v1").
	// gsclient.New trims a trailing slash and adds "https://" if no scheme
	// is present.
	Endpoint string

	// Token: restores a session without a network call.
	Token string
	// TokenPersister: optional hook called after login and logout.
	TokenPersister TokenPersister

	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// HTTPTimeout: overall timeout of one transport round trip.
	HTTPTimeout time.Duration
	// RetryMax: transport-level retries for connection errors and 5xx.
	RetryMax int
	// RetryWaitMin: minimum backoff between transport retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between transport retries.
	RetryWaitMax time.Duration

	// Cache: response cache used by read operations.
	Cache Cache
	// EnvironmentStore: overrides the SQLite environment store.
	EnvironmentStore EnvironmentStore
	// DatabasePath: SQLite file backing the default environment store.
	DatabasePath string

	// Debug: enables request/response logging in the transport.
	Debug bool
	// Logger: receives every swallowed failure.
	Logger Logger
	// MetricsRegisterer: registers pipeline metrics when set.
	MetricsRegisterer prometheus.Registerer
}
