package playerok

import (
	"context"
	"fmt"
)

// Listing is what the item identity map holds: a public Item or the
// authenticated user's own MyItem.
type Listing interface {
	ID() string
	Base() *Item
}

// Item is a public listing.
type Item struct {
	session

	id string

	Slug             *string
	Name             *string
	Description      *string
	Price            *int
	RawPrice         *int
	Status           ItemStatus
	Priority         PriorityType
	PriorityPosition *int
	GameID           string
	CategoryID       string
	// UserID is the seller. Empty when unknown.
	UserID string
}

// NewItem creates an item bound to client.
func NewItem(client Client, id string) *Item {
	return &Item{session: session{client: client}, id: id}
}

// ID returns the immutable item id.
func (i *Item) ID() string {
	return i.id
}

// Base returns the public part of the listing.
func (i *Item) Base() *Item {
	return i
}

// Refresh fetches the item again, bypassing the identity map.
func (i *Item) Refresh(ctx context.Context) (*Item, error) {
	client, err := i.require()
	if err != nil {
		return nil, err
	}

	item, err := client.Items().Get(ctx, ItemByID(i.id), WithForceRefresh())
	if err != nil {
		return nil, fmt.Errorf("refreshing item %s: %w", i.id, err)
	}

	return item, nil
}

// User returns the seller, nil when unknown.
func (i *Item) User(ctx context.Context) (*User, error) {
	client, err := i.require()
	if err != nil {
		return nil, err
	}

	if i.UserID == "" {
		return nil, nil
	}

	return client.Account().GetUser(ctx, UserByID(i.UserID))
}

// Game returns the game the item is listed under, nil when unknown.
func (i *Item) Game(ctx context.Context) (*Game, error) {
	client, err := i.require()
	if err != nil {
		return nil, err
	}

	if i.GameID == "" {
		return nil, nil
	}

	return client.Games().Get(ctx, GameByID(i.GameID))
}

// Category returns the category of the item from its game, nil when
// unknown.
func (i *Item) Category(ctx context.Context) (*GameCategory, error) {
	if i.CategoryID == "" {
		if _, err := i.require(); err != nil {
			return nil, err
		}

		return nil, nil
	}

	game, err := i.Game(ctx)
	if err != nil || game == nil {
		return nil, err
	}

	return game.Category(i.CategoryID), nil
}

// Deals returns up to limit deals of the authenticated user on this item.
func (i *Item) Deals(ctx context.Context, limit int) ([]*Deal, error) {
	client, err := i.require()
	if err != nil {
		return nil, err
	}

	return client.Deals().List(ctx, &DealListOptions{
		ListOptions: ListOptions{Limit: limit},
		ItemID:      i.id,
	})
}

// MyItem is a listing owned by the authenticated user, with the fields only
// the owner can see.
type MyItem struct {
	Item

	PrevPrice     *int
	PriorityPrice *int
	IsEditable    *bool
	Buyer         *UserProfile
}

// NewMyItem creates an owned item bound to client.
func NewMyItem(client Client, id string) *MyItem {
	return &MyItem{Item: Item{session: session{client: client}, id: id}}
}

// Update changes the listing.
func (m *MyItem) Update(ctx context.Context, req *ItemUpdateRequest) (*MyItem, error) {
	client, err := m.require()
	if err != nil {
		return nil, err
	}

	return client.Items().Update(ctx, m.id, req)
}

// Remove deletes the listing.
func (m *MyItem) Remove(ctx context.Context) (bool, error) {
	client, err := m.require()
	if err != nil {
		return false, err
	}

	return client.Items().Remove(ctx, m.id)
}

// Publish puts the listing on sale with normal or premium priority.
func (m *MyItem) Publish(ctx context.Context, premium bool) (*MyItem, error) {
	client, err := m.require()
	if err != nil {
		return nil, err
	}

	return client.Items().Publish(ctx, m.id, premium)
}

// SetNormalPriority moves the listing to the cheapest priority tier.
func (m *MyItem) SetNormalPriority(ctx context.Context) (*MyItem, error) {
	client, err := m.require()
	if err != nil {
		return nil, err
	}

	return client.Items().SetNormalPriority(ctx, m.id)
}

// SetPremiumPriority moves the listing to the top priority tier.
func (m *MyItem) SetPremiumPriority(ctx context.Context) (*MyItem, error) {
	client, err := m.require()
	if err != nil {
		return nil, err
	}

	return client.Items().SetPremiumPriority(ctx, m.id)
}
