package playerok

import (
	"context"
	"time"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
)

// Client is one authenticated marketplace session. Every entity it returns
// keeps a reference to it and re-enters it for further calls.
type Client interface {
	Account() AccountClient
	Chats() ChatsClient
	Deals() DealsClient
	Items() ItemsClient
	Games() GamesClient

	// MeID is the id of the authenticated user, resolved once at startup.
	MeID() string
	// SessionID identifies this session in log lines.
	SessionID() string
	// Attached reports whether the session is still usable.
	Attached() bool
	// Close releases the transport and clears every identity map. Entities
	// issued by this session fail with ErrClientNotAttached afterwards.
	Close(ctx context.Context) error
}

// AccountClient covers the authenticated account and user lookups.
type AccountClient interface {
	Me(ctx context.Context) (*Account, error)
	Profile(ctx context.Context) (*AccountProfile, error)
	// GetUser returns a stub user carrying only the id when the lookup was by
	// id and the marketplace has no record. A username lookup with no record
	// fails with ErrNotFound.
	GetUser(ctx context.Context, lookup UserLookup, opts ...GetOption) (*User, error)
}

// ChatsClient covers chats and chat messages.
type ChatsClient interface {
	Get(ctx context.Context, chatID string, opts ...GetOption) (*Chat, error)
	List(ctx context.Context, opts *ChatListOptions) ([]*Chat, error)
	Iter(ctx context.Context, opts *ChatListOptions) *PaginationIterator[*Chat]
	// SendMessage sends text, a photo, or both. With both, the photo is sent
	// first and the text second as two separate calls; a failure of the text
	// call leaves the photo message in place.
	SendMessage(ctx context.Context, chatID string, req *SendMessageRequest) (*ChatMessage, error)
	MarkAsRead(ctx context.Context, chatID string) error
	Messages(ctx context.Context, chatID string, opts *ListOptions) ([]*ChatMessage, error)
	IterMessages(ctx context.Context, chatID string, cursor string) *PaginationIterator[*ChatMessage]
	Deals(ctx context.Context, chatID string) ([]*Deal, error)
}

// DealsClient covers deals of the authenticated user.
type DealsClient interface {
	Get(ctx context.Context, dealID string, opts ...GetOption) (*Deal, error)
	List(ctx context.Context, opts *DealListOptions) ([]*Deal, error)
	Iter(ctx context.Context, opts *DealListOptions) *PaginationIterator[*Deal]
	Confirm(ctx context.Context, dealID string) (*Deal, error)
	Complete(ctx context.Context, dealID string) (*Deal, error)
	Cancel(ctx context.Context, dealID string) (*Deal, error)
}

// ItemsClient covers public listings and the authenticated user's own items.
type ItemsClient interface {
	Get(ctx context.Context, lookup ItemLookup, opts ...GetOption) (*Item, error)
	List(ctx context.Context, opts *ItemListOptions) ([]*Item, error)
	Iter(ctx context.Context, opts *ItemListOptions) *PaginationIterator[*Item]
	ListMine(ctx context.Context, opts *ListOptions) ([]*MyItem, error)
	IterMine(ctx context.Context, cursor string) *PaginationIterator[*MyItem]
	Create(ctx context.Context, req *ItemCreateRequest) (*MyItem, error)
	Update(ctx context.Context, itemID string, req *ItemUpdateRequest) (*MyItem, error)
	Remove(ctx context.Context, itemID string) (bool, error)
	Publish(ctx context.Context, itemID string, premium bool) (*MyItem, error)
	SetNormalPriority(ctx context.Context, itemID string) (*MyItem, error)
	SetPremiumPriority(ctx context.Context, itemID string) (*MyItem, error)
	PriorityStatuses(ctx context.Context, itemID string, price int) ([]PriorityStatus, error)
}

// GamesClient covers the game catalogue and category metadata.
type GamesClient interface {
	Get(ctx context.Context, lookup GameLookup, opts ...GetOption) (*Game, error)
	List(ctx context.Context, opts *GameListOptions) ([]*Game, error)
	Iter(ctx context.Context, opts *GameListOptions) *PaginationIterator[*Game]
	GetCategory(ctx context.Context, lookup CategoryLookup) (*GameCategory, error)

	Agreements(ctx context.Context, opts *AgreementListOptions) ([]*Agreement, error)
	IterAgreements(ctx context.Context, opts *AgreementListOptions) *PaginationIterator[*Agreement]
	AcceptAgreement(ctx context.Context, agreementID string) (bool, error)

	ObtainingTypes(ctx context.Context, categoryID string, opts *ListOptions) ([]*ObtainingType, error)
	IterObtainingTypes(ctx context.Context, categoryID string, cursor string) *PaginationIterator[*ObtainingType]

	Instructions(ctx context.Context, categoryID, obtainingTypeID string, opts *ListOptions) ([]*Instruction, error)
	IterInstructions(ctx context.Context, categoryID, obtainingTypeID string, cursor string) *PaginationIterator[*Instruction]
	DataFields(ctx context.Context, categoryID, obtainingTypeID string) ([]*DataField, error)

	Options(ctx context.Context, categoryID string) ([]*CategoryOption, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a playerok.Client.
//
// # Authentication
//
// The marketplace authenticates with a session token sent as the "token"
// cookie. AccessToken takes precedence; when it is empty the
// PLAYEROK_ACCESS_TOKEN environment variable is used.
//
// # Timeouts and retries
//
// RequestTimeout bounds each HTTP attempt. Retries are disabled unless
// RetryMax is positive; only 5xx, 429 and connection errors are retried.
type Config struct {
	// AccessToken: session token. Never written by WriteYAML.
	AccessToken string `mapstructure:"access_token" yaml:"-"`
	// BaseURL: marketplace root, "https://playerok.com/" by default. The
	// GraphQL endpoint is BaseURL + "graphql".
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// UserAgent: sent with every request. A browser User-Agent is picked at
	// random when empty.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent,omitempty"`
	// RequestTimeout: per-attempt HTTP timeout.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	// UseIdentityMap: keep one entity instance per id for the session.
	UseIdentityMap bool `mapstructure:"use_identity_map" yaml:"use_identity_map"`
	// RetryMax: maximum retries for transient failures. 0 disables retries.
	RetryMax int `mapstructure:"retry_max" yaml:"retry_max"`
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min" yaml:"retry_wait_min"`
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max" yaml:"retry_wait_max"`
	// Debug: enables HTTP request/response logging when a Logger is provided.
	Debug bool `mapstructure:"debug" yaml:"debug"`
	// LogLevel: level of the console logger built by LoadConfig callers.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// PersistedQueries: operation name to sha256 hash of an already
	// registered query. Operations listed here are sent by hash only.
	PersistedQueries map[string]string `mapstructure:"persisted_queries" yaml:"persisted_queries,omitempty"`
	// Logger: optional structured logger. Nil means silent.
	Logger Logger `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns a Config with the library defaults applied.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        constants.DefaultBaseURL,
		RequestTimeout: constants.DefaultRequestTimeout,
		UseIdentityMap: true,
		RetryWaitMin:   constants.DefaultRetryWaitMin,
		RetryWaitMax:   constants.DefaultRetryWaitMax,
		LogLevel:       "info",
	}
}

// GetOptions tunes a single-entity lookup.
type GetOptions struct {
	// ForceRefresh bypasses the identity map and always fetches.
	ForceRefresh bool
}

// GetOption configures a lookup.
type GetOption func(*GetOptions)

// WithForceRefresh bypasses the identity map for this lookup.
func WithForceRefresh() GetOption {
	return func(o *GetOptions) {
		o.ForceRefresh = true
	}
}

// ApplyGetOptions folds opts into a GetOptions value.
func ApplyGetOptions(opts ...GetOption) GetOptions {
	var options GetOptions

	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	return options
}
