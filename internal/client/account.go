package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/playerok-client/internal/graphql"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// AccountClient implements playerok.AccountClient.
type AccountClient struct {
	session *Client
}

// NewAccountClient creates a new account client.
func NewAccountClient(session *Client) *AccountClient {
	return &AccountClient{
		session: session,
	}
}

// Me implements playerok.AccountClient.Me.
func (c *AccountClient) Me(ctx context.Context) (*playerok.Account, error) {
	viewer, err := fetchOne[graphql.ViewerRecord](ctx, c.session, graphql.OpViewer, "viewer", nil)
	if err != nil {
		return nil, fmt.Errorf("getting viewer: %w", err)
	}

	if viewer == nil || viewer.ID == "" {
		return nil, fmt.Errorf("getting viewer: %w", playerok.ErrUnauthorized)
	}

	return viewer.Account(), nil
}

// Profile implements playerok.AccountClient.Profile.
func (c *AccountClient) Profile(ctx context.Context) (*playerok.AccountProfile, error) {
	me, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}

	record, err := c.fetchUser(ctx, playerok.UserByUsername(me.Username))
	if err != nil {
		return nil, fmt.Errorf("getting account profile: %w", err)
	}

	profile := record.UserProfile()
	if profile == nil {
		return nil, fmt.Errorf("getting account profile %s: %w", me.Username, playerok.ErrNotFound)
	}

	return profile.AccountProfile(), nil
}

// GetUser implements playerok.AccountClient.GetUser.
func (c *AccountClient) GetUser(ctx context.Context, lookup playerok.UserLookup, opts ...playerok.GetOption) (*playerok.User, error) {
	err := lookup.Validate()
	if err != nil {
		return nil, err
	}

	options := playerok.ApplyGetOptions(opts...)

	if !options.ForceRefresh {
		if cached, ok := c.session.cachedUser(lookup.ID()); ok {
			return cached, nil
		}
	}

	record, err := c.fetchUser(ctx, lookup)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	profile := record.UserProfile()
	if profile == nil && lookup.ID() == "" {
		return nil, fmt.Errorf("getting user %q: %w", lookup.Username(), playerok.ErrNotFound)
	}

	return c.session.resolveUser(lookup.ID(), profile, true), nil
}

func (c *AccountClient) fetchUser(ctx context.Context, lookup playerok.UserLookup) (*graphql.UserRecord, error) {
	vars := graphql.Variables{
		"id":               nil,
		"username":         nil,
		"hasSupportAccess": false,
	}

	if lookup.ID() != "" {
		vars["id"] = lookup.ID()
	}

	if lookup.Username() != "" {
		vars["username"] = lookup.Username()
	}

	return fetchOne[graphql.UserRecord](ctx, c.session, graphql.OpUser, "user", vars)
}
