package client

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
	"github.com/fivetwenty-io/playerok-client/internal/graphql"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// approvedStatus is the only status public listings are requested with.
const approvedStatus = "APPROVED"

// ItemsClient implements playerok.ItemsClient.
type ItemsClient struct {
	session *Client
}

// NewItemsClient creates a new items client.
func NewItemsClient(session *Client) *ItemsClient {
	return &ItemsClient{
		session: session,
	}
}

// Get implements playerok.ItemsClient.Get. An unknown id yields nil without
// error; an unknown slug fails with playerok.ErrNotFound.
func (c *ItemsClient) Get(ctx context.Context, lookup playerok.ItemLookup, opts ...playerok.GetOption) (*playerok.Item, error) {
	err := lookup.Validate()
	if err != nil {
		return nil, err
	}

	options := playerok.ApplyGetOptions(opts...)

	if !options.ForceRefresh {
		if cached, ok := c.session.cachedListing(lookup.ID()); ok {
			return cached.Base(), nil
		}
	}

	record, err := c.fetchItem(ctx, lookup)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	if record == nil {
		if lookup.ID() == "" {
			return nil, fmt.Errorf("getting item %q: %w", lookup.Slug(), playerok.ErrNotFound)
		}

		return nil, nil
	}

	return c.session.resolveItem(record, true), nil
}

func (c *ItemsClient) fetchItem(ctx context.Context, lookup playerok.ItemLookup) (*graphql.ItemRecord, error) {
	vars := graphql.Variables{
		"id":                 nil,
		"slug":               nil,
		"hasSupportAccess":   false,
		"showForbiddenImage": true,
	}

	if lookup.ID() != "" {
		vars["id"] = lookup.ID()
	}

	if lookup.Slug() != "" {
		vars["slug"] = lookup.Slug()
	}

	return fetchOne[graphql.ItemRecord](ctx, c.session, graphql.OpItem, "item", vars)
}

// List implements playerok.ItemsClient.List.
func (c *ItemsClient) List(ctx context.Context, opts *playerok.ItemListOptions) ([]*playerok.Item, error) {
	if opts == nil {
		opts = &playerok.ItemListOptions{}
	}

	items, err := c.pager(opts).List(ctx, opts.LimitOr(constants.DefaultListLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	return items, nil
}

// Iter implements playerok.ItemsClient.Iter.
func (c *ItemsClient) Iter(ctx context.Context, opts *playerok.ItemListOptions) *playerok.PaginationIterator[*playerok.Item] {
	if opts == nil {
		opts = &playerok.ItemListOptions{}
	}

	return c.pager(opts).Iter(ctx, opts.CursorOrEmpty())
}

func (c *ItemsClient) pager(opts *playerok.ItemListOptions) *playerok.Pager[graphql.ItemRecord, *playerok.Item] {
	return &playerok.Pager[graphql.ItemRecord, *playerok.Item]{
		Fetch: pageFetcher[graphql.ItemRecord](c.session, graphql.OpItems, "items",
			func(pagination map[string]interface{}) graphql.Variables {
				return graphql.Variables{
					"pagination": pagination,
					"filter":     itemFilter(opts),
					"sort":       itemSort(opts.Sort),
				}
			}),
		PageSize: constants.ItemsPageSize,
		Resolve: func(record graphql.ItemRecord) *playerok.Item {
			return c.session.resolveItem(&record, false)
		},
	}
}

func itemFilter(opts *playerok.ItemListOptions) map[string]interface{} {
	filter := map[string]interface{}{"status": []string{approvedStatus}}

	if opts.GameID != "" {
		filter["gameId"] = opts.GameID
	}

	if opts.CategoryID != "" {
		filter["gameCategoryId"] = opts.CategoryID
	}

	if opts.UserID != "" {
		filter["userId"] = opts.UserID
	}

	if opts.MinPrice != nil || opts.MaxPrice != nil {
		price := map[string]interface{}{}
		if opts.MinPrice != nil {
			price["min"] = *opts.MinPrice
		}

		if opts.MaxPrice != nil {
			price["max"] = *opts.MaxPrice
		}

		filter["price"] = price
	}

	if opts.HasDiscount {
		filter["hasDiscount"] = true
	}

	if opts.HasReviews {
		filter["hasTestimonials"] = true
	}

	if len(opts.Attributes) > 0 {
		attributes := make([]map[string]string, 0, len(opts.Attributes))
		for _, field := range slices.Sorted(maps.Keys(opts.Attributes)) {
			attributes = append(attributes, map[string]string{"field": field, "value": opts.Attributes[field]})
		}

		filter["attributes"] = attributes
	}

	if opts.Search != "" {
		filter["searchQuery"] = opts.Search
	}

	return filter
}

func itemSort(sort playerok.ItemSort) interface{} {
	if sort == playerok.ItemSortDefault {
		return nil
	}

	return map[string]string{"field": sort.Field(), "direction": sort.Direction()}
}

// ListMine implements playerok.ItemsClient.ListMine.
func (c *ItemsClient) ListMine(ctx context.Context, opts *playerok.ListOptions) ([]*playerok.MyItem, error) {
	items, err := c.minePager().List(ctx, opts.LimitOr(constants.DefaultListLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing own items: %w", err)
	}

	return items, nil
}

// IterMine implements playerok.ItemsClient.IterMine.
func (c *ItemsClient) IterMine(ctx context.Context, cursor string) *playerok.PaginationIterator[*playerok.MyItem] {
	return c.minePager().Iter(ctx, cursor)
}

func (c *ItemsClient) minePager() *playerok.Pager[graphql.ItemRecord, *playerok.MyItem] {
	return &playerok.Pager[graphql.ItemRecord, *playerok.MyItem]{
		Fetch: pageFetcher[graphql.ItemRecord](c.session, graphql.OpItems, "items",
			func(pagination map[string]interface{}) graphql.Variables {
				return graphql.Variables{
					"pagination": pagination,
					"filter": map[string]interface{}{
						"userId": c.session.MeID(),
						"status": []string{approvedStatus},
					},
					"sort": nil,
				}
			}),
		PageSize: constants.ItemsPageSize,
		Resolve: func(record graphql.ItemRecord) *playerok.MyItem {
			return c.session.resolveMyItem(&record, false)
		},
	}
}

// Create implements playerok.ItemsClient.Create.
func (c *ItemsClient) Create(ctx context.Context, req *playerok.ItemCreateRequest) (*playerok.MyItem, error) {
	err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	input := map[string]interface{}{
		"gameCategoryId":  req.Category.ID(),
		"obtainingTypeId": req.ObtainingType.ID(),
		"name":            req.Name,
		"price":           req.Price,
		"description":     req.Description,
		"attributes":      attributesInput(req.Options),
		"dataFields":      dataFieldsInput(req.DataFields),
	}

	record, err := c.upload(ctx, graphql.OpCreateItem, "createItem", "attachments", input, req.Attachments)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if record == nil {
		return nil, &playerok.UpstreamError{Operation: graphql.OpCreateItem.Name, Err: ErrEmptyResponse}
	}

	return c.session.registerMyItem(record), nil
}

func validateCreate(req *playerok.ItemCreateRequest) error {
	switch {
	case req == nil:
		return playerok.InvalidArgumentError("item create request is required")
	case req.Category.ID() == "":
		return playerok.InvalidArgumentError("item category is required")
	case req.ObtainingType.ID() == "":
		return playerok.InvalidArgumentError("item obtaining type is required")
	case req.Name == "":
		return playerok.InvalidArgumentError("item name is required")
	case req.Price <= 0:
		return playerok.InvalidArgumentError("item price must be positive, got %d", req.Price)
	}

	for _, photo := range req.Attachments {
		err := photo.Validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// Update implements playerok.ItemsClient.Update.
func (c *ItemsClient) Update(ctx context.Context, itemID string, req *playerok.ItemUpdateRequest) (*playerok.MyItem, error) {
	if itemID == "" {
		return nil, playerok.InvalidArgumentError("item id is required")
	}

	if req == nil {
		req = &playerok.ItemUpdateRequest{}
	}

	if req.Price != nil && *req.Price <= 0 {
		return nil, playerok.InvalidArgumentError("item price must be positive, got %d", *req.Price)
	}

	for _, photo := range req.AddAttachments {
		err := photo.Validate()
		if err != nil {
			return nil, err
		}
	}

	input := map[string]interface{}{"id": itemID}

	if req.Name != nil {
		input["name"] = *req.Name
	}

	if req.Price != nil {
		input["price"] = *req.Price
	}

	if req.Description != nil {
		input["description"] = *req.Description
	}

	if len(req.Options) > 0 {
		input["attributes"] = attributesInput(req.Options)
	}

	if len(req.DataFields) > 0 {
		input["dataFields"] = dataFieldsInput(req.DataFields)
	}

	if len(req.RemoveAttachments) > 0 {
		input["removedAttachments"] = req.RemoveAttachments
	}

	record, err := c.upload(ctx, graphql.OpUpdateItem, "updateItem", "addedAttachments", input, req.AddAttachments)
	if err != nil {
		return nil, fmt.Errorf("updating item %s: %w", itemID, err)
	}

	if record == nil {
		return nil, &playerok.UpstreamError{Operation: graphql.OpUpdateItem.Name, Err: ErrEmptyResponse}
	}

	return c.session.registerMyItem(record), nil
}

// upload runs an item mutation with photos bound to the list variable named
// fileVar. Without photos it is a plain JSON request.
func (c *ItemsClient) upload(ctx context.Context, op graphql.Operation, root, fileVar string, input map[string]interface{}, photos []playerok.Photo) (*graphql.ItemRecord, error) {
	executor, err := c.session.executor()
	if err != nil {
		return nil, err
	}

	uploads := make([]graphql.Upload, 0, len(photos))
	placeholders := make([]interface{}, 0, len(photos))

	for i, photo := range photos {
		content, err := photo.Open()
		if err != nil {
			return nil, err
		}
		defer func(content io.Closer) { _ = content.Close() }(content)

		uploads = append(uploads, graphql.Upload{
			Variable: fmt.Sprintf("%s.%d", fileVar, i),
			FileName: photo.Name(),
			Reader:   content,
		})
		placeholders = append(placeholders, nil)
	}

	vars := graphql.Variables{"input": input, fileVar: placeholders}

	var data map[string]*graphql.ItemRecord

	err = executor.Upload(ctx, op, vars, uploads, &data)
	if err != nil {
		return nil, err
	}

	return data[root], nil
}

// attributesInput maps option slugs to their selected values.
func attributesInput(options map[string]string) map[string]string {
	attributes := make(map[string]string, len(options))
	maps.Copy(attributes, options)

	return attributes
}

// dataFieldsInput lists data field values ordered by field id.
func dataFieldsInput(fields map[string]string) []map[string]string {
	values := make([]map[string]string, 0, len(fields))

	for _, id := range slices.Sorted(maps.Keys(fields)) {
		values = append(values, map[string]string{"fieldId": id, "value": fields[id]})
	}

	return values
}

// Remove implements playerok.ItemsClient.Remove.
func (c *ItemsClient) Remove(ctx context.Context, itemID string) (bool, error) {
	if itemID == "" {
		return false, playerok.InvalidArgumentError("item id is required")
	}

	removed, err := fetchOne[graphql.IDRecord](ctx, c.session, graphql.OpRemoveItem, "removeItem", graphql.Variables{"id": itemID})
	if err != nil {
		return false, fmt.Errorf("removing item %s: %w", itemID, err)
	}

	return removed != nil, nil
}

// PriorityStatuses implements playerok.ItemsClient.PriorityStatuses.
func (c *ItemsClient) PriorityStatuses(ctx context.Context, itemID string, price int) ([]playerok.PriorityStatus, error) {
	if itemID == "" {
		return nil, playerok.InvalidArgumentError("item id is required")
	}

	vars := graphql.Variables{"itemId": itemID, "price": price}

	records, err := fetchList[graphql.PriorityStatusRecord](ctx, c.session, graphql.OpItemPriorityStatuses, "itemPriorityStatuses", vars)
	if err != nil {
		return nil, fmt.Errorf("getting priority statuses of item %s: %w", itemID, err)
	}

	statuses := make([]playerok.PriorityStatus, 0, len(records))
	for i := range records {
		statuses = append(statuses, records[i].PriorityStatus())
	}

	return statuses, nil
}

// Publish implements playerok.ItemsClient.Publish.
func (c *ItemsClient) Publish(ctx context.Context, itemID string, premium bool) (*playerok.MyItem, error) {
	return c.prioritize(ctx, graphql.OpPublishItem, "publishItem", itemID, premium)
}

// SetNormalPriority implements playerok.ItemsClient.SetNormalPriority.
func (c *ItemsClient) SetNormalPriority(ctx context.Context, itemID string) (*playerok.MyItem, error) {
	return c.prioritize(ctx, graphql.OpIncreaseItemPriorityStatus, "increaseItemPriorityStatus", itemID, false)
}

// SetPremiumPriority implements playerok.ItemsClient.SetPremiumPriority.
func (c *ItemsClient) SetPremiumPriority(ctx context.Context, itemID string) (*playerok.MyItem, error) {
	return c.prioritize(ctx, graphql.OpIncreaseItemPriorityStatus, "increaseItemPriorityStatus", itemID, true)
}

// prioritize runs op with the priority status offered for the item's
// current price. The marketplace lists statuses from the most to the least
// expensive: premium is the first, normal the last.
func (c *ItemsClient) prioritize(ctx context.Context, op graphql.Operation, root, itemID string, premium bool) (*playerok.MyItem, error) {
	if itemID == "" {
		return nil, playerok.InvalidArgumentError("item id is required")
	}

	item, err := c.Get(ctx, playerok.ItemByID(itemID))
	if err != nil {
		return nil, err
	}

	if item == nil {
		return nil, fmt.Errorf("getting item %s: %w", itemID, playerok.ErrNotFound)
	}

	if item.Price == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, playerok.ErrItemPriceUnknown)
	}

	statuses, err := c.PriorityStatuses(ctx, itemID, *item.Price)
	if err != nil {
		return nil, err
	}

	if len(statuses) == 0 {
		return nil, fmt.Errorf("item %s: %w", itemID, playerok.ErrNoPriorityStatus)
	}

	status := statuses[len(statuses)-1]
	if premium {
		status = statuses[0]
	}

	vars := graphql.Variables{
		"input": map[string]interface{}{
			"itemId":           itemID,
			"priorityStatuses": []string{status.ID},
		},
	}

	record, err := fetchOne[graphql.ItemRecord](ctx, c.session, op, root, vars)
	if err != nil {
		return nil, fmt.Errorf("setting priority %s of item %s: %w", status.Type, itemID, err)
	}

	if record == nil {
		return nil, nil
	}

	c.session.logger.Debug("Item priority set", map[string]interface{}{
		"item_id":  itemID,
		"status":   status.ID,
		"premium":  premium,
		"price":    status.Price,
		"mutation": op.Name,
	})

	return c.session.registerMyItem(record), nil
}
