package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
	"github.com/fivetwenty-io/playerok-client/internal/graphql"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// DealsClient implements playerok.DealsClient.
type DealsClient struct {
	session *Client
}

// NewDealsClient creates a new deals client.
func NewDealsClient(session *Client) *DealsClient {
	return &DealsClient{
		session: session,
	}
}

// Get implements playerok.DealsClient.Get. A deal the marketplace does not
// know is returned as nil without error.
func (c *DealsClient) Get(ctx context.Context, dealID string, opts ...playerok.GetOption) (*playerok.Deal, error) {
	if dealID == "" {
		return nil, playerok.InvalidArgumentError("deal id is required")
	}

	options := playerok.ApplyGetOptions(opts...)

	if !options.ForceRefresh {
		if cached, ok := c.session.cachedDeal(dealID); ok {
			return cached, nil
		}
	}

	record, err := fetchOne[graphql.DealRecord](ctx, c.session, graphql.OpDeal, "deal", graphql.Variables{"id": dealID})
	if err != nil {
		return nil, fmt.Errorf("getting deal: %w", err)
	}

	if record == nil {
		return nil, nil
	}

	return c.session.registerDeal(record, ""), nil
}

// List implements playerok.DealsClient.List.
func (c *DealsClient) List(ctx context.Context, opts *playerok.DealListOptions) ([]*playerok.Deal, error) {
	if opts == nil {
		opts = &playerok.DealListOptions{}
	}

	deals, err := c.pager(opts).List(ctx, opts.LimitOr(constants.DefaultListLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}

	return deals, nil
}

// Iter implements playerok.DealsClient.Iter.
func (c *DealsClient) Iter(ctx context.Context, opts *playerok.DealListOptions) *playerok.PaginationIterator[*playerok.Deal] {
	if opts == nil {
		opts = &playerok.DealListOptions{}
	}

	return c.pager(opts).Iter(ctx, opts.CursorOrEmpty())
}

func (c *DealsClient) pager(opts *playerok.DealListOptions) *playerok.Pager[graphql.DealRecord, *playerok.Deal] {
	pager := &playerok.Pager[graphql.DealRecord, *playerok.Deal]{
		Fetch: pageFetcher[graphql.DealRecord](c.session, graphql.OpDeals, "deals",
			func(pagination map[string]interface{}) graphql.Variables {
				filter := map[string]interface{}{"userId": c.session.MeID()}

				if len(opts.Statuses) > 0 {
					statuses := make([]string, 0, len(opts.Statuses))
					for _, status := range opts.Statuses {
						statuses = append(statuses, string(status))
					}

					filter["status"] = statuses
				}

				if opts.Direction != playerok.DealDirectionAny {
					filter["direction"] = string(opts.Direction)
				}

				return graphql.Variables{"pagination": pagination, "filter": filter}
			}),
		PageSize: constants.DealsPageSize,
		Resolve: func(record graphql.DealRecord) *playerok.Deal {
			return c.session.registerDeal(&record, "")
		},
	}

	if opts.UserID != "" || opts.ItemID != "" {
		pager.Filter = func(record graphql.DealRecord) bool {
			if opts.UserID != "" && graphql.RefID(record.User) != opts.UserID {
				return false
			}

			return opts.ItemID == "" || graphql.RefID(record.Item) == opts.ItemID
		}
	}

	return pager
}

// Confirm implements playerok.DealsClient.Confirm.
func (c *DealsClient) Confirm(ctx context.Context, dealID string) (*playerok.Deal, error) {
	return c.update(ctx, dealID, playerok.DealStatusConfirmed)
}

// Complete implements playerok.DealsClient.Complete.
func (c *DealsClient) Complete(ctx context.Context, dealID string) (*playerok.Deal, error) {
	return c.update(ctx, dealID, playerok.DealStatusSent)
}

// Cancel implements playerok.DealsClient.Cancel.
func (c *DealsClient) Cancel(ctx context.Context, dealID string) (*playerok.Deal, error) {
	return c.update(ctx, dealID, playerok.DealStatusRolledBack)
}

// update moves the deal to status. When the marketplace answers without the
// deal, it is fetched again.
func (c *DealsClient) update(ctx context.Context, dealID string, status playerok.DealStatus) (*playerok.Deal, error) {
	if dealID == "" {
		return nil, playerok.InvalidArgumentError("deal id is required")
	}

	vars := graphql.Variables{
		"input": map[string]interface{}{"id": dealID, "status": string(status)},
	}

	record, err := fetchOne[graphql.DealRecord](ctx, c.session, graphql.OpUpdateDeal, "updateDeal", vars)
	if err != nil {
		return nil, fmt.Errorf("updating deal %s to %s: %w", dealID, status, err)
	}

	if record == nil {
		return c.Get(ctx, dealID, playerok.WithForceRefresh())
	}

	return c.session.registerDeal(record, ""), nil
}
