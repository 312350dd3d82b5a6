package playerok

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Game is a catalogue entry. Its categories come with it.
type Game struct {
	session

	id string

	Slug       *string
	Name       *string
	Type       GameType
	Logo       *File
	Banner     *File
	CreatedAt  *time.Time
	Categories []*GameCategory
}

// NewGame creates a game bound to client.
func NewGame(client Client, id string) *Game {
	return &Game{session: session{client: client}, id: id}
}

// ID returns the immutable game id.
func (g *Game) ID() string {
	return g.id
}

// Category returns the category with the given id, nil when the game has
// none.
func (g *Game) Category(categoryID string) *GameCategory {
	for _, category := range g.Categories {
		if category.id == categoryID {
			return category
		}
	}

	return nil
}

// Refresh fetches the game again, bypassing the identity map.
func (g *Game) Refresh(ctx context.Context) (*Game, error) {
	client, err := g.require()
	if err != nil {
		return nil, err
	}

	game, err := client.Games().Get(ctx, GameByID(g.id), WithForceRefresh())
	if err != nil {
		return nil, fmt.Errorf("refreshing game %s: %w", g.id, err)
	}

	return game, nil
}

// GameCategory is a section of a game, e.g. accounts or currency.
type GameCategory struct {
	session

	id string

	GameID string
	Slug   string
	Name   string
}

// NewGameCategory creates a category bound to client.
func NewGameCategory(client Client, id string) *GameCategory {
	return &GameCategory{session: session{client: client}, id: id}
}

// ID returns the immutable category id.
func (c *GameCategory) ID() string {
	return c.id
}

// Ref refers to this category in an ItemCreateRequest.
func (c *GameCategory) Ref() CategoryRef {
	return CategoryRefID(c.id)
}

// Agreements returns up to limit seller agreements of the category.
func (c *GameCategory) Agreements(ctx context.Context, limit int) ([]*Agreement, error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	return client.Games().Agreements(ctx, &AgreementListOptions{
		ListOptions: ListOptions{Limit: limit},
		CategoryID:  c.id,
	})
}

// IterAgreements walks every seller agreement of the category.
func (c *GameCategory) IterAgreements(ctx context.Context) (*PaginationIterator[*Agreement], error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	return client.Games().IterAgreements(ctx, &AgreementListOptions{CategoryID: c.id}), nil
}

// ObtainingTypes returns up to limit ways a buyer can receive an item.
func (c *GameCategory) ObtainingTypes(ctx context.Context, limit int) ([]*ObtainingType, error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	return client.Games().ObtainingTypes(ctx, c.id, &ListOptions{Limit: limit})
}

// IterObtainingTypes walks every obtaining type of the category.
func (c *GameCategory) IterObtainingTypes(ctx context.Context) (*PaginationIterator[*ObtainingType], error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	return client.Games().IterObtainingTypes(ctx, c.id, ""), nil
}

// Options returns the item options of the category, grouped by slug.
func (c *GameCategory) Options(ctx context.Context) ([]*CategoryOption, error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	return client.Games().Options(ctx, c.id)
}

// ObtainingType is a way a buyer receives an item of a category.
type ObtainingType struct {
	session

	id string

	CategoryID  string
	Name        string
	Description string
	Sequence    int
}

// NewObtainingType creates an obtaining type bound to client.
func NewObtainingType(client Client, id string) *ObtainingType {
	return &ObtainingType{session: session{client: client}, id: id}
}

// ID returns the immutable obtaining type id.
func (o *ObtainingType) ID() string {
	return o.id
}

// Ref refers to this obtaining type in an ItemCreateRequest.
func (o *ObtainingType) Ref() ObtainingTypeRef {
	return ObtainingTypeRefID(o.id)
}

// Instructions returns up to limit seller and buyer instructions.
func (o *ObtainingType) Instructions(ctx context.Context, limit int) ([]*Instruction, error) {
	client, err := o.require()
	if err != nil {
		return nil, err
	}

	return client.Games().Instructions(ctx, o.CategoryID, o.id, &ListOptions{Limit: limit})
}

// IterInstructions walks every instruction of the obtaining type.
func (o *ObtainingType) IterInstructions(ctx context.Context) (*PaginationIterator[*Instruction], error) {
	client, err := o.require()
	if err != nil {
		return nil, err
	}

	return client.Games().IterInstructions(ctx, o.CategoryID, o.id, ""), nil
}

// DataFields returns every data field the seller fills in.
func (o *ObtainingType) DataFields(ctx context.Context) ([]*DataField, error) {
	client, err := o.require()
	if err != nil {
		return nil, err
	}

	return client.Games().DataFields(ctx, o.CategoryID, o.id)
}

// Agreements returns up to limit agreements specific to the obtaining type.
func (o *ObtainingType) Agreements(ctx context.Context, limit int) ([]*Agreement, error) {
	client, err := o.require()
	if err != nil {
		return nil, err
	}

	return client.Games().Agreements(ctx, &AgreementListOptions{
		ListOptions:     ListOptions{Limit: limit},
		CategoryID:      o.CategoryID,
		ObtainingTypeID: o.id,
	})
}

// Agreement is a rule a seller accepts before listing in a category.
type Agreement struct {
	session

	id string

	Description     string
	IconType        string
	Sequence        int
	CategoryID      string
	ObtainingTypeID string
}

// NewAgreement creates an agreement bound to client.
func NewAgreement(client Client, id string) *Agreement {
	return &Agreement{session: session{client: client}, id: id}
}

// ID returns the immutable agreement id.
func (a *Agreement) ID() string {
	return a.id
}

// Accept accepts the agreement on behalf of the authenticated user.
func (a *Agreement) Accept(ctx context.Context) (bool, error) {
	client, err := a.require()
	if err != nil {
		return false, err
	}

	return client.Games().AcceptAgreement(ctx, a.id)
}

// Instruction is guidance shown to a party of a deal.
type Instruction struct {
	ID              string `json:"id"                yaml:"id"`
	Text            string `json:"text"              yaml:"text"`
	CategoryID      string `json:"category_id"       yaml:"category_id"`
	ObtainingTypeID string `json:"obtaining_type_id" yaml:"obtaining_type_id"`
}

// DataField is a value the seller provides when listing an item.
type DataField struct {
	ID        string             `json:"id"              yaml:"id"`
	Type      DataFieldType      `json:"type"            yaml:"type"`
	InputType DataFieldInputType `json:"input_type"      yaml:"input_type"`
	Name      string             `json:"name"            yaml:"name"`
	Required  bool               `json:"required"        yaml:"required"`
	Hidden    bool               `json:"hidden"          yaml:"hidden"`
	Copyable  bool               `json:"copyable"        yaml:"copyable"`
	Value     *string            `json:"value,omitempty" yaml:"value,omitempty"`
	// Input is the caller's value for an ItemCreateRequest.
	Input *string `json:"-" yaml:"-"`
}

// SetValue records the caller's value for this field.
func (f *DataField) SetValue(value string) *DataField {
	f.Input = &value

	return f
}

// OptionValue is one selectable value of a category option.
type OptionValue struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// CategoryOption is an attribute of items in a category. Selector options
// list their values; range options list every integer in range; switch
// options offer "false" and "true".
type CategoryOption struct {
	ID     string        `json:"id"     yaml:"id"`
	Type   OptionType    `json:"type"   yaml:"type"`
	Group  string        `json:"group"  yaml:"group"`
	Slug   string        `json:"slug"   yaml:"slug"`
	Values []OptionValue `json:"values" yaml:"values"`

	selected *string
}

// Select chooses one of the possible values.
func (o *CategoryOption) Select(value string) error {
	if !slices.ContainsFunc(o.Values, func(v OptionValue) bool { return v.Value == value }) {
		return InvalidArgumentError("option %s has no value %q", o.Slug, value)
	}

	o.selected = &value

	return nil
}

// SelectBool chooses a switch value.
func (o *CategoryOption) SelectBool(value bool) error {
	return o.Select(strconv.FormatBool(value))
}

// Selected returns the chosen value.
func (o *CategoryOption) Selected() (string, bool) {
	if o.selected == nil {
		return "", false
	}

	return *o.selected, true
}
