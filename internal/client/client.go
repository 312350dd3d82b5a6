package client

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/playerok-client/internal/auth"
	"github.com/fivetwenty-io/playerok-client/internal/graphql"
	"github.com/fivetwenty-io/playerok-client/internal/http"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrEmptyResponse   = errors.New("empty response")
)

// identityMaps holds one identity map per entity kind for a session.
type identityMaps struct {
	users *playerok.IdentityMap[string, *playerok.User]
	chats *playerok.IdentityMap[string, *playerok.Chat]
	deals *playerok.IdentityMap[string, *playerok.Deal]
	items *playerok.IdentityMap[string, playerok.Listing]
	games *playerok.IdentityMap[string, *playerok.Game]
}

func newIdentityMaps() *identityMaps {
	return &identityMaps{
		users: playerok.NewIdentityMap[string, *playerok.User](),
		chats: playerok.NewIdentityMap[string, *playerok.Chat](),
		deals: playerok.NewIdentityMap[string, *playerok.Deal](),
		items: playerok.NewIdentityMap[string, playerok.Listing](),
		games: playerok.NewIdentityMap[string, *playerok.Game](),
	}
}

func (m *identityMaps) clear() {
	m.users.Clear()
	m.chats.Clear()
	m.deals.Clear()
	m.items.Clear()
	m.games.Clear()
}

// Client implements the playerok.Client interface.
type Client struct {
	mu sync.RWMutex
	// gql is nil once the session is closed.
	gql          *graphql.Executor
	httpClient   *http.Client
	tokenManager *auth.StaticTokenManager
	logger       playerok.Logger
	config       *playerok.Config
	sessionID    string
	meID         string
	// maps is nil when the identity map is disabled.
	maps *identityMaps

	// Resource clients
	account *AccountClient
	chats   *ChatsClient
	deals   *DealsClient
	items   *ItemsClient
	games   *GamesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *playerok.Config, logger *loggerAdapter) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RequestTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.RequestTimeout))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return httpOpts
}

// New creates a session: it builds the transport and resolves the
// authenticated user. A rejected token fails here; no half-started session
// is returned.
func New(ctx context.Context, config *playerok.Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	sessionID := uuid.NewString()
	logger := newLoggerAdapter(config.Logger, sessionID)

	tokenManager := auth.NewStaticTokenManager(config.AccessToken)
	httpClient := http.NewClient(config.BaseURL, tokenManager, createHTTPClientOptions(config, logger)...)

	client := newClient(config, httpClient, tokenManager, sessionID)

	err := client.start(ctx)
	if err != nil {
		httpClient.Close()

		return nil, err
	}

	return client, nil
}

func newClient(config *playerok.Config, httpClient *http.Client, tokenManager *auth.StaticTokenManager, sessionID string) *Client {
	logger := newLoggerAdapter(config.Logger, sessionID)

	client := &Client{
		gql: graphql.NewExecutor(httpClient,
			graphql.WithPersistedQueries(maps.Clone(config.PersistedQueries)),
			graphql.WithLogger(logger),
		),
		httpClient:   httpClient,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
		sessionID:    sessionID,
	}

	if config.UseIdentityMap {
		client.maps = newIdentityMaps()
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.account = NewAccountClient(c)
	c.chats = NewChatsClient(c)
	c.deals = NewDealsClient(c)
	c.items = NewItemsClient(c)
	c.games = NewGamesClient(c)
}

// start resolves the authenticated user once.
func (c *Client) start(ctx context.Context) error {
	account, err := c.account.Me(ctx)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	c.meID = account.ID

	c.logger.Info("Session started", map[string]interface{}{
		"user_id":  account.ID,
		"username": account.Username,
	})

	return nil
}

// executor returns the GraphQL executor, or ErrClientNotAttached once the
// session is closed.
func (c *Client) executor() (*graphql.Executor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.gql == nil {
		return nil, playerok.ErrClientNotAttached
	}

	return c.gql, nil
}

// Close implements playerok.Client.Close.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gql == nil {
		return nil
	}

	c.gql = nil
	c.tokenManager.Revoke()
	c.httpClient.Close()

	if c.maps != nil {
		c.maps.clear()
	}

	c.logger.Info("Session closed", nil)

	return nil
}

// Attached implements playerok.Client.Attached.
func (c *Client) Attached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.gql != nil
}

// MeID implements playerok.Client.MeID.
func (c *Client) MeID() string {
	return c.meID
}

// SessionID implements playerok.Client.SessionID.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Resource client accessors

// Account implements playerok.Client.Account.
func (c *Client) Account() playerok.AccountClient {
	return c.account
}

// Chats implements playerok.Client.Chats.
func (c *Client) Chats() playerok.ChatsClient {
	return c.chats
}

// Deals implements playerok.Client.Deals.
func (c *Client) Deals() playerok.DealsClient {
	return c.deals
}

// Items implements playerok.Client.Items.
func (c *Client) Items() playerok.ItemsClient {
	return c.items
}

// Games implements playerok.Client.Games.
func (c *Client) Games() playerok.GamesClient {
	return c.games
}

// fetchOne runs op and returns the object under root, nil when the
// marketplace answered null.
func fetchOne[T any](ctx context.Context, session *Client, op graphql.Operation, root string, vars graphql.Variables) (*T, error) {
	executor, err := session.executor()
	if err != nil {
		return nil, err
	}

	var data map[string]*T

	err = executor.Execute(ctx, op, vars, &data)
	if err != nil {
		return nil, err
	}

	return data[root], nil
}

// fetchList runs op and returns the list under root.
func fetchList[T any](ctx context.Context, session *Client, op graphql.Operation, root string, vars graphql.Variables) ([]T, error) {
	executor, err := session.executor()
	if err != nil {
		return nil, err
	}

	var data map[string][]T

	err = executor.Execute(ctx, op, vars, &data)
	if err != nil {
		return nil, err
	}

	return data[root], nil
}

// pageFetcher adapts a connection-returning operation to a PageFetcher.
// vars receives the pagination object for each request.
func pageFetcher[T any](session *Client, op graphql.Operation, root string, vars func(pagination map[string]interface{}) graphql.Variables) playerok.PageFetcher[T] {
	return func(ctx context.Context, cursor string, pageSize int) (*playerok.Page[T], error) {
		executor, err := session.executor()
		if err != nil {
			return nil, err
		}

		var data map[string]*graphql.Connection[T]

		err = executor.Execute(ctx, op, vars(graphql.Pagination(pageSize, cursor)), &data)
		if err != nil {
			return nil, err
		}

		page := data[root].Page()

		fields := map[string]interface{}{
			"operation": op.Name,
			"cursor":    cursor,
			"size":      pageSize,
		}
		if page != nil {
			fields["records"] = len(page.Records)
			fields["has_next_page"] = page.PageInfo.HasNextPage
		}

		session.logger.Debug("Fetched page", fields)

		return page, nil
	}
}

// loggerAdapter adapts playerok.Logger to http.Logger and tags every entry
// with the session id.
type loggerAdapter struct {
	logger    playerok.Logger
	sessionID string
}

func newLoggerAdapter(logger playerok.Logger, sessionID string) *loggerAdapter {
	if logger == nil {
		logger = playerok.NopLogger{}
	}

	return &loggerAdapter{logger: logger, sessionID: sessionID}
}

func (l *loggerAdapter) with(fields map[string]interface{}) map[string]interface{} {
	tagged := make(map[string]interface{}, len(fields)+1)
	maps.Copy(tagged, fields)
	tagged["session"] = l.sessionID

	return tagged
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, l.with(fields))
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, l.with(fields))
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, l.with(fields))
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, l.with(fields))
}
