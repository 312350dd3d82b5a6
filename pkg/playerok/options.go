package playerok

// ListOptions bounds a list call. A zero Limit selects the resource default.
type ListOptions struct {
	Limit  int
	Cursor string
}

// LimitOr returns the limit, or def when the options are nil or unset.
func (o *ListOptions) LimitOr(def int) int {
	if o == nil || o.Limit <= 0 {
		return def
	}

	return o.Limit
}

// CursorOrEmpty returns the starting cursor, empty for the first page.
func (o *ListOptions) CursorOrEmpty() string {
	if o == nil {
		return ""
	}

	return o.Cursor
}

// ChatListOptions filters chats server-side.
type ChatListOptions struct {
	ListOptions

	Type   ChatType
	Status ChatStatus
}

// DealListOptions filters deals. Statuses and Direction are applied by the
// marketplace; UserID and ItemID are applied client-side after each page
// arrives.
type DealListOptions struct {
	ListOptions

	Statuses  []DealStatus
	Direction DealDirection
	UserID    string
	ItemID    string
}

// ItemListOptions filters public listings.
type ItemListOptions struct {
	ListOptions

	GameID      string
	CategoryID  string
	UserID      string
	MinPrice    *int
	MaxPrice    *int
	HasDiscount bool
	HasReviews  bool
	Attributes  map[string]string
	Search      string
	Sort        ItemSort
}

// GameListOptions filters the game catalogue.
type GameListOptions struct {
	ListOptions

	Type GameType
}

// AgreementListOptions selects the agreements of a category, optionally
// narrowed to one obtaining type.
type AgreementListOptions struct {
	ListOptions

	CategoryID      string
	ObtainingTypeID string
}

// SendMessageRequest is the payload of ChatsClient.SendMessage. At least one
// of Text and Photo must be set.
type SendMessageRequest struct {
	Text  string
	Photo *Photo
	// MarkAsRead marks the chat as read before sending.
	MarkAsRead bool
}

// ItemCreateRequest describes a new listing.
type ItemCreateRequest struct {
	Category      CategoryRef
	ObtainingType ObtainingTypeRef
	Name          string
	Price         int
	Description   string
	// Options maps option slugs to values; see OptionValues.
	Options map[string]string
	// DataFields maps data field ids to values; see DataFieldValues.
	DataFields  map[string]string
	Attachments []Photo
}

// ItemUpdateRequest changes an existing listing. Nil and empty fields are
// left unchanged.
type ItemUpdateRequest struct {
	Name              *string
	Price             *int
	Description       *string
	Options           map[string]string
	DataFields        map[string]string
	RemoveAttachments []string
	AddAttachments    []Photo
}

// OptionValues collects the selected values of category options into the
// map expected by ItemCreateRequest.Options. Options without a selection are
// skipped.
func OptionValues(options ...*CategoryOption) map[string]string {
	values := make(map[string]string)

	for _, option := range options {
		if option == nil {
			continue
		}

		if value, ok := option.Selected(); ok {
			values[option.Slug] = value
		}
	}

	return values
}

// DataFieldValues collects filled data fields into the map expected by
// ItemCreateRequest.DataFields.
func DataFieldValues(fields ...*DataField) map[string]string {
	values := make(map[string]string)

	for _, field := range fields {
		if field == nil || field.Input == nil {
			continue
		}

		values[field.ID] = *field.Input
	}

	return values
}
