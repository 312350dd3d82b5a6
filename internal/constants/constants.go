package constants

import "time"

// Environment variables.
const (
	// EnvPrefix is the viper environment prefix (PLAYEROK_ACCESS_TOKEN, ...).
	EnvPrefix = "PLAYEROK"

	// EnvAccessToken holds the session token when no config value is given.
	EnvAccessToken = "PLAYEROK_ACCESS_TOKEN"

	// EnvBaseURL overrides the marketplace base URL.
	EnvBaseURL = "PLAYEROK_BASE_URL"
)

// Endpoints.
const (
	// DefaultBaseURL is the marketplace root.
	DefaultBaseURL = "https://playerok.com/"

	// GraphQLPath is the single GraphQL endpoint, relative to the base URL.
	GraphQLPath = "graphql"

	// TokenCookieName is the cookie carrying the access token.
	TokenCookieName = "token"
)

// HTTP and network timeouts.
const (
	// DefaultRequestTimeout is the default per-request timeout.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultRetryWaitMin is the minimum backoff when retries are enabled.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff when retries are enabled.
	DefaultRetryWaitMax = 30 * time.Second
)

// Server page caps. A request never asks for more records than these.
const (
	// ChatsPageSize caps chats per page.
	ChatsPageSize = 24

	// MessagesPageSize caps chat messages per page.
	MessagesPageSize = 50

	// DealsPageSize caps deals per page.
	DealsPageSize = 24

	// ItemsPageSize caps items per page.
	ItemsPageSize = 24

	// GamesPageSize caps games and game category sub-resources per page.
	GamesPageSize = 24
)

// Default list limits used when the caller passes a zero limit.
const (
	DefaultListLimit     = 24
	DefaultMessagesLimit = 50
)

// File permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0o750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0o600
)

// CloudflareSignatures are body fragments of a Cloudflare challenge page.
var CloudflareSignatures = []string{
	"<title>Just a moment...</title>",
	"window._cf_chl_opt",
	"Enable JavaScript and cookies to continue",
	"cf-browser-verification",
}

// DefaultUserAgents are picked from when Config.UserAgent is empty.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
}
