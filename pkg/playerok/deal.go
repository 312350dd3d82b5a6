package playerok

import (
	"context"
	"fmt"
)

// Deal is a purchase of an item between two users.
type Deal struct {
	session

	id string

	Status    DealStatus
	Direction DealDirection
	// UserID is the other party of the deal. Empty when unknown.
	UserID string
	ChatID string
	ItemID string
}

// NewDeal creates a deal bound to client.
func NewDeal(client Client, id string) *Deal {
	return &Deal{session: session{client: client}, id: id}
}

// ID returns the immutable deal id.
func (d *Deal) ID() string {
	return d.id
}

// Confirm moves the deal to CONFIRMED.
func (d *Deal) Confirm(ctx context.Context) (*Deal, error) {
	client, err := d.require()
	if err != nil {
		return nil, err
	}

	return client.Deals().Confirm(ctx, d.id)
}

// Complete marks the deal as sent by the seller.
func (d *Deal) Complete(ctx context.Context) (*Deal, error) {
	client, err := d.require()
	if err != nil {
		return nil, err
	}

	return client.Deals().Complete(ctx, d.id)
}

// Cancel rolls the deal back and refunds the buyer.
func (d *Deal) Cancel(ctx context.Context) (*Deal, error) {
	client, err := d.require()
	if err != nil {
		return nil, err
	}

	return client.Deals().Cancel(ctx, d.id)
}

// Chat returns the chat of the deal, nil when unknown.
func (d *Deal) Chat(ctx context.Context) (*Chat, error) {
	client, err := d.require()
	if err != nil {
		return nil, err
	}

	if d.ChatID == "" {
		return nil, nil
	}

	return client.Chats().Get(ctx, d.ChatID)
}

// User returns the other party, nil when unknown.
func (d *Deal) User(ctx context.Context) (*User, error) {
	client, err := d.require()
	if err != nil {
		return nil, err
	}

	if d.UserID == "" {
		return nil, nil
	}

	return client.Account().GetUser(ctx, UserByID(d.UserID))
}

// Item returns the item being sold, nil when unknown.
func (d *Deal) Item(ctx context.Context) (*Item, error) {
	client, err := d.require()
	if err != nil {
		return nil, err
	}

	if d.ItemID == "" {
		return nil, nil
	}

	return client.Items().Get(ctx, ItemByID(d.ItemID))
}

// Refresh fetches the deal again, bypassing the identity map.
func (d *Deal) Refresh(ctx context.Context) (*Deal, error) {
	client, err := d.require()
	if err != nil {
		return nil, err
	}

	deal, err := client.Deals().Get(ctx, d.id, WithForceRefresh())
	if err != nil {
		return nil, fmt.Errorf("refreshing deal %s: %w", d.id, err)
	}

	return deal, nil
}
