// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default configuration values used when no
// explicit configuration is provided through the config file or environment.
package constants

const (
	// DefaultServerHost is the host the HTTP server binds to by default.
	DefaultServerHost = "0.0.0.0"

	// DefaultServerPort is the port the HTTP server listens on by default.
	DefaultServerPort = 8080

	// DefaultDBHost is the default database host.
	DefaultDBHost = "localhost"

	// DefaultDBPort is the default PostgreSQL port.
	DefaultDBPort = 5432

	// DefaultDBName is the default database name.
	DefaultDBName = "bank_reviews"

	// DefaultDBMaxConns is the default maximum number of open connections.
	DefaultDBMaxConns = 10

	// DefaultDBMinConns is the default number of idle connections to keep.
	DefaultDBMinConns = 2

	// DefaultDBSSLMode is the default sslmode for the Postgres DSN.
	DefaultDBSSLMode = "disable"
)

// Pagination defaults shared by all list endpoints.
const (
	// DefaultPage is the page number used when none is supplied.
	DefaultPage = 1

	// DefaultPageSize is the page size used when none is supplied.
	DefaultPageSize = 20

	// MinPageSize is the smallest page size a client may request.
	MinPageSize = 1

	// MaxPageSize is the largest page size a client may request.
	MaxPageSize = 100
)

// Insight policy defaults. These are policy knobs, not fixed formulas: the
// driver/pain-point classification reads them from configuration so the same
// aggregation code works across datasets with different score distributions.
const (
	// DefaultMinThemeSample is the smallest per-(bank, theme) sample size a
	// theme needs before it participates in driver/pain-point ranking.
	DefaultMinThemeSample = 15

	// DefaultInsightTopK is how many drivers and pain points are reported per bank.
	DefaultInsightTopK = 3

	// DefaultEvidenceLimit is how many evidence snippets are sampled per
	// (bank, theme) pair.
	DefaultEvidenceLimit = 2

	// DefaultMaxSnippetChars is the character budget for a single evidence
	// snippet. Truncation at this budget is deterministic.
	DefaultMaxSnippetChars = 180

	// MinRecommendations is the minimum number of recommendations produced
	// for a bank, padded with generic fallbacks when pain themes are sparse.
	MinRecommendations = 2

	// MaxRecommendations caps the recommendation list per bank.
	MaxRecommendations = 3
)

// Query parameter names shared across handlers.
const (
	// QueryParamPage is the query parameter carrying the page number.
	QueryParamPage = "page"

	// QueryParamPageSize is the query parameter carrying the page size.
	QueryParamPageSize = "page_size"

	// QueryParamBankID is the query parameter carrying a bank identifier.
	QueryParamBankID = "bank_id"

	// QueryParamTheme is the query parameter carrying a theme name.
	QueryParamTheme = "theme"

	// QueryParamKind is the query parameter selecting driver or pain-point evidence.
	QueryParamKind = "kind"

	// QueryParamBatchID is the query parameter carrying a batch identifier.
	QueryParamBatchID = "batch_id"
)

// Environment names recognized by the configuration layer.
const (
	// EnvDevelopment marks a development deployment.
	EnvDevelopment = "development"

	// EnvProduction marks a production deployment.
	EnvProduction = "production"

	// EnvTesting marks a test deployment.
	EnvTesting = "testing"
)

// Response success flags, used to keep response construction explicit.
const (
	// ResponseSuccess marks a successful API response.
	ResponseSuccess = true

	// ResponseFailure marks a failed API response.
	ResponseFailure = false
)
