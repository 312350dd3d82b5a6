package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
	"github.com/fivetwenty-io/playerok-client/internal/graphql"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// GamesClient implements playerok.GamesClient.
type GamesClient struct {
	session *Client
}

// NewGamesClient creates a new games client.
func NewGamesClient(session *Client) *GamesClient {
	return &GamesClient{
		session: session,
	}
}

// Get implements playerok.GamesClient.Get. An unknown id yields nil without
// error; an unknown slug fails with playerok.ErrNotFound.
func (c *GamesClient) Get(ctx context.Context, lookup playerok.GameLookup, opts ...playerok.GetOption) (*playerok.Game, error) {
	err := lookup.Validate()
	if err != nil {
		return nil, err
	}

	options := playerok.ApplyGetOptions(opts...)

	if !options.ForceRefresh {
		if cached, ok := c.session.cachedGame(lookup.ID()); ok {
			return cached, nil
		}
	}

	vars := graphql.Variables{"id": nil, "slug": nil}

	if lookup.ID() != "" {
		vars["id"] = lookup.ID()
	}

	if lookup.Slug() != "" {
		vars["slug"] = lookup.Slug()
	}

	record, err := fetchOne[graphql.GameRecord](ctx, c.session, graphql.OpGame, "game", vars)
	if err != nil {
		return nil, fmt.Errorf("getting game: %w", err)
	}

	if record == nil {
		if lookup.ID() == "" {
			return nil, fmt.Errorf("getting game %q: %w", lookup.Slug(), playerok.ErrNotFound)
		}

		return nil, nil
	}

	return c.session.resolveGame(record, true), nil
}

// List implements playerok.GamesClient.List.
func (c *GamesClient) List(ctx context.Context, opts *playerok.GameListOptions) ([]*playerok.Game, error) {
	if opts == nil {
		opts = &playerok.GameListOptions{}
	}

	games, err := c.pager(opts).List(ctx, opts.LimitOr(constants.DefaultListLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}

	return games, nil
}

// Iter implements playerok.GamesClient.Iter.
func (c *GamesClient) Iter(ctx context.Context, opts *playerok.GameListOptions) *playerok.PaginationIterator[*playerok.Game] {
	if opts == nil {
		opts = &playerok.GameListOptions{}
	}

	return c.pager(opts).Iter(ctx, opts.CursorOrEmpty())
}

func (c *GamesClient) pager(opts *playerok.GameListOptions) *playerok.Pager[graphql.GameRecord, *playerok.Game] {
	return &playerok.Pager[graphql.GameRecord, *playerok.Game]{
		Fetch: pageFetcher[graphql.GameRecord](c.session, graphql.OpGames, "games",
			func(pagination map[string]interface{}) graphql.Variables {
				filter := map[string]interface{}{}
				if opts.Type != playerok.GameTypeAny {
					filter["type"] = string(opts.Type)
				}

				return graphql.Variables{"pagination": pagination, "filter": filter}
			}),
		PageSize: constants.GamesPageSize,
		Resolve: func(record graphql.GameRecord) *playerok.Game {
			return c.session.resolveGame(&record, false)
		},
	}
}

// GetCategory implements playerok.GamesClient.GetCategory.
func (c *GamesClient) GetCategory(ctx context.Context, lookup playerok.CategoryLookup) (*playerok.GameCategory, error) {
	err := lookup.Validate()
	if err != nil {
		return nil, err
	}

	vars := graphql.Variables{"id": nil, "gameId": nil, "slug": nil}

	if lookup.ID() != "" {
		vars["id"] = lookup.ID()
	}

	if lookup.GameID() != "" {
		vars["gameId"] = lookup.GameID()
	}

	if lookup.Slug() != "" {
		vars["slug"] = lookup.Slug()
	}

	record, err := fetchOne[graphql.CategoryRecord](ctx, c.session, graphql.OpGameCategory, "gameCategory", vars)
	if err != nil {
		return nil, fmt.Errorf("getting game category: %w", err)
	}

	if record == nil {
		if lookup.ID() == "" {
			return nil, fmt.Errorf("getting game category %q: %w", lookup.Slug(), playerok.ErrNotFound)
		}

		return nil, nil
	}

	category := c.session.newCategory(record)
	if category.GameID == "" {
		category.GameID = lookup.GameID()
	}

	return category, nil
}

// Agreements implements playerok.GamesClient.Agreements.
func (c *GamesClient) Agreements(ctx context.Context, opts *playerok.AgreementListOptions) ([]*playerok.Agreement, error) {
	if opts == nil || opts.CategoryID == "" {
		return nil, playerok.InvalidArgumentError("game category id is required")
	}

	agreements, err := c.agreementsPager(opts).List(ctx, opts.LimitOr(constants.DefaultListLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing agreements of category %s: %w", opts.CategoryID, err)
	}

	return agreements, nil
}

// IterAgreements implements playerok.GamesClient.IterAgreements. A missing
// category id surfaces as the iterator's first error.
func (c *GamesClient) IterAgreements(ctx context.Context, opts *playerok.AgreementListOptions) *playerok.PaginationIterator[*playerok.Agreement] {
	if opts == nil {
		opts = &playerok.AgreementListOptions{}
	}

	return c.agreementsPager(opts).Iter(ctx, opts.CursorOrEmpty())
}

func (c *GamesClient) agreementsPager(opts *playerok.AgreementListOptions) *playerok.Pager[graphql.AgreementRecord, *playerok.Agreement] {
	fetch := pageFetcher[graphql.AgreementRecord](c.session, graphql.OpGameCategoryAgreements, "gameCategoryAgreements",
		func(pagination map[string]interface{}) graphql.Variables {
			filter := map[string]interface{}{
				"gameCategoryId": opts.CategoryID,
				"userId":         c.session.MeID(),
			}

			if opts.ObtainingTypeID != "" {
				filter["gameCategoryObtainingTypeId"] = opts.ObtainingTypeID
			}

			return graphql.Variables{"pagination": pagination, "filter": filter}
		})

	return &playerok.Pager[graphql.AgreementRecord, *playerok.Agreement]{
		Fetch: func(ctx context.Context, cursor string, pageSize int) (*playerok.Page[graphql.AgreementRecord], error) {
			if opts.CategoryID == "" {
				return nil, playerok.InvalidArgumentError("game category id is required")
			}

			return fetch(ctx, cursor, pageSize)
		},
		PageSize: constants.GamesPageSize,
		Resolve: func(record graphql.AgreementRecord) *playerok.Agreement {
			return c.session.newAgreement(&record, opts.CategoryID, opts.ObtainingTypeID)
		},
	}
}

// AcceptAgreement implements playerok.GamesClient.AcceptAgreement.
func (c *GamesClient) AcceptAgreement(ctx context.Context, agreementID string) (bool, error) {
	if agreementID == "" {
		return false, playerok.InvalidArgumentError("agreement id is required")
	}

	vars := graphql.Variables{
		"input": map[string]interface{}{"agreementId": agreementID},
	}

	accepted, err := fetchOne[graphql.IDRecord](ctx, c.session, graphql.OpAcceptGameCategoryAgreement, "acceptGameCategoryAgreement", vars)
	if err != nil {
		return false, fmt.Errorf("accepting agreement %s: %w", agreementID, err)
	}

	return accepted != nil, nil
}

// ObtainingTypes implements playerok.GamesClient.ObtainingTypes.
func (c *GamesClient) ObtainingTypes(ctx context.Context, categoryID string, opts *playerok.ListOptions) ([]*playerok.ObtainingType, error) {
	if categoryID == "" {
		return nil, playerok.InvalidArgumentError("game category id is required")
	}

	obtainingTypes, err := c.obtainingTypesPager(categoryID).List(ctx, opts.LimitOr(constants.DefaultListLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing obtaining types of category %s: %w", categoryID, err)
	}

	return obtainingTypes, nil
}

// IterObtainingTypes implements playerok.GamesClient.IterObtainingTypes.
func (c *GamesClient) IterObtainingTypes(ctx context.Context, categoryID string, cursor string) *playerok.PaginationIterator[*playerok.ObtainingType] {
	return c.obtainingTypesPager(categoryID).Iter(ctx, cursor)
}

func (c *GamesClient) obtainingTypesPager(categoryID string) *playerok.Pager[graphql.ObtainingTypeRecord, *playerok.ObtainingType] {
	return &playerok.Pager[graphql.ObtainingTypeRecord, *playerok.ObtainingType]{
		Fetch: pageFetcher[graphql.ObtainingTypeRecord](c.session, graphql.OpGameCategoryObtainingTypes, "gameCategoryObtainingTypes",
			func(pagination map[string]interface{}) graphql.Variables {
				return graphql.Variables{
					"pagination": pagination,
					"filter":     map[string]interface{}{"gameCategoryId": categoryID},
				}
			}),
		PageSize: constants.GamesPageSize,
		Resolve: func(record graphql.ObtainingTypeRecord) *playerok.ObtainingType {
			return c.session.newObtainingType(&record, categoryID)
		},
	}
}

// Instructions implements playerok.GamesClient.Instructions.
func (c *GamesClient) Instructions(ctx context.Context, categoryID, obtainingTypeID string, opts *playerok.ListOptions) ([]*playerok.Instruction, error) {
	err := requireCategoryAndObtainingType(categoryID, obtainingTypeID)
	if err != nil {
		return nil, err
	}

	instructions, err := c.instructionsPager(categoryID, obtainingTypeID).List(ctx, opts.LimitOr(constants.DefaultListLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing instructions of obtaining type %s: %w", obtainingTypeID, err)
	}

	return instructions, nil
}

// IterInstructions implements playerok.GamesClient.IterInstructions.
func (c *GamesClient) IterInstructions(ctx context.Context, categoryID, obtainingTypeID string, cursor string) *playerok.PaginationIterator[*playerok.Instruction] {
	return c.instructionsPager(categoryID, obtainingTypeID).Iter(ctx, cursor)
}

func (c *GamesClient) instructionsPager(categoryID, obtainingTypeID string) *playerok.Pager[graphql.InstructionRecord, *playerok.Instruction] {
	return &playerok.Pager[graphql.InstructionRecord, *playerok.Instruction]{
		Fetch: pageFetcher[graphql.InstructionRecord](c.session, graphql.OpGameCategoryInstructions, "gameCategoryInstructions",
			func(pagination map[string]interface{}) graphql.Variables {
				return graphql.Variables{
					"pagination": pagination,
					"filter": map[string]interface{}{
						"gameCategoryId":              categoryID,
						"gameCategoryObtainingTypeId": obtainingTypeID,
					},
				}
			}),
		PageSize: constants.GamesPageSize,
		Resolve: func(record graphql.InstructionRecord) *playerok.Instruction {
			return &playerok.Instruction{
				ID:              record.ID,
				Text:            record.Text,
				CategoryID:      categoryID,
				ObtainingTypeID: obtainingTypeID,
			}
		},
	}
}

// DataFields implements playerok.GamesClient.DataFields. Every page is read.
func (c *GamesClient) DataFields(ctx context.Context, categoryID, obtainingTypeID string) ([]*playerok.DataField, error) {
	err := requireCategoryAndObtainingType(categoryID, obtainingTypeID)
	if err != nil {
		return nil, err
	}

	pager := &playerok.Pager[graphql.DataFieldRecord, *playerok.DataField]{
		Fetch: pageFetcher[graphql.DataFieldRecord](c.session, graphql.OpGameCategoryDataFields, "gameCategoryDataFields",
			func(pagination map[string]interface{}) graphql.Variables {
				return graphql.Variables{
					"pagination": pagination,
					"filter": map[string]interface{}{
						"gameCategoryId":              categoryID,
						"gameCategoryObtainingTypeId": obtainingTypeID,
					},
				}
			}),
		PageSize: constants.GamesPageSize,
		Resolve: func(record graphql.DataFieldRecord) *playerok.DataField {
			return record.DataField()
		},
	}

	fields, err := pager.Iter(ctx, "").All()
	if err != nil {
		return nil, fmt.Errorf("listing data fields of obtaining type %s: %w", obtainingTypeID, err)
	}

	if fields == nil {
		fields = []*playerok.DataField{}
	}

	return fields, nil
}

// Options implements playerok.GamesClient.Options.
func (c *GamesClient) Options(ctx context.Context, categoryID string) ([]*playerok.CategoryOption, error) {
	if categoryID == "" {
		return nil, playerok.InvalidArgumentError("game category id is required")
	}

	records, err := fetchList[graphql.OptionRecord](ctx, c.session, graphql.OpGameCategoryOptions, "gameCategoryOptions",
		graphql.Variables{"gameCategoryId": categoryID})
	if err != nil {
		return nil, fmt.Errorf("listing options of category %s: %w", categoryID, err)
	}

	return expandOptions(records), nil
}

func requireCategoryAndObtainingType(categoryID, obtainingTypeID string) error {
	if categoryID == "" {
		return playerok.InvalidArgumentError("game category id is required")
	}

	if obtainingTypeID == "" {
		return playerok.InvalidArgumentError("obtaining type id is required")
	}

	return nil
}
