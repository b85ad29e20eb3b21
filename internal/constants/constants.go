package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// CLI configuration locations, relative to the user's home directory.
const (
	ConfigDirName      = ".giantswarm"
	ConfigFileName     = "config"
	ConfigFileType     = "yml"
	CacheDBName        = "cache.db"
	EnvironmentVarBase = "GIANTSWARM"
)

// API defaults.
const (
	// DefaultEndpoint is the production Giant Swarm API base URL.
	DefaultEndpoint = "https://api.giantswarm.io/v1"

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "bb-giantswarm/0.0.1"

	// AuthorizationScheme prefixes the session token in the Authorization header.
	AuthorizationScheme = "giantswarm"

	// MediaTypeJSON is used for Accept and Content-Type headers.
	MediaTypeJSON = "application/json"

	// PingResponse is the exact body the /ping endpoint answers with.
	PingResponse = `"OK"`
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout bounds a ping.
	ShortHTTPTimeout = 10 * time.Second
)

// Transport retry limits. The request pipeline itself never retries.
const (
	// DefaultRetryMax disables transport retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// HTTP status code class boundaries.
const (
	HTTPStatusSuccessMin     = 200
	HTTPStatusRedirectionMin = 300
	HTTPStatusClientErrorMin = 400
	HTTPStatusServerErrorMin = 500
	HTTPStatusServerErrorMax = 600
)

// Cache keys for read operations. Parameterized keys are joined with
// CacheKeySeparator.
const (
	CacheKeyCompanies     = "companies"
	CacheKeyCompanyUsers  = "company_users"
	CacheKeyApplications  = "applications"
	CacheKeyInstanceStats = "instance_stats"
	CacheKeyUser          = "user"
	CacheKeySeparator     = ":"
)

// Cache backend defaults.
const (
	// DefaultCacheSize is the maximum number of entries of a memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the lifetime of a memory cache entry.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultNATSBucket is the JetStream KV bucket for response snapshots.
	DefaultNATSBucket = "giantswarm_responses"

	// MaxCacheValueSize bounds a single stored snapshot.
	MaxCacheValueSize = 1024 * 1024
)

// SQLite defaults.
const (
	DefaultEnvironmentDBName = "giantswarm.db"
	DefaultSQLitePoolSize    = 4
	SQLiteInMemoryPath       = ":memory:"
	SQLiteInMemoryURIFormat  = "file:giantswarm-%d?mode=memory&cache=shared"
	SQLiteBusyTimeoutMillis  = 5000
)

// DefaultScaleInstanceCount is used by the scale operations without a count.
const DefaultScaleInstanceCount = 1

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Validation and limits.
const (
	// MinimumArgumentCount is the minimum number of command line arguments.
	MinimumArgumentCount = 2

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"
)
