package client

import (
	"strconv"

	"github.com/fivetwenty-io/playerok-client/internal/graphql"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// Entity factories. resolveX returns the cached instance for the record's
// id unless refresh is set, and registers whatever it builds. registerX
// always builds from the record and overwrites the map slot; it is used
// where the record is known to be newer than anything cached (chat and deal
// listings, mutation responses).

// cachingEnabled reports whether the session keeps identity maps.
func (c *Client) cachingEnabled() bool {
	return c.maps != nil
}

// remember stores value under the session lock. A record that arrives
// after Close is returned to its caller but never cached.
func remember[V any](c *Client, m *playerok.IdentityMap[string, V], id string, value V) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.gql == nil {
		return
	}

	m.Set(id, value)
}

func (c *Client) newUser(profile *graphql.ProfileRecord) *playerok.User {
	user := playerok.NewUser(c, profile.ID)

	if profile.Username != "" {
		username := profile.Username
		user.Username = &username
	}

	user.AvatarURL = profile.AvatarURL
	user.Role = playerok.UserRole(profile.Role)
	user.IsOnline = profile.IsOnline
	user.IsBlocked = profile.IsBlocked
	user.Rating = profile.Rating
	user.ReviewsCount = profile.TestimonialCounter

	return user
}

func (c *Client) cachedUser(id string) (*playerok.User, bool) {
	if !c.cachingEnabled() || id == "" {
		return nil, false
	}

	return c.maps.users.Get(id)
}

// resolveUser builds a user from profile. A nil profile with an id yields a
// stub carrying only that id.
func (c *Client) resolveUser(id string, profile *graphql.ProfileRecord, refresh bool) *playerok.User {
	if profile != nil && profile.ID != "" {
		id = profile.ID
	}

	if !refresh {
		if cached, ok := c.cachedUser(id); ok {
			return cached
		}
	}

	var user *playerok.User
	if profile == nil {
		user = playerok.NewUser(c, id)
	} else {
		user = c.newUser(profile)
	}

	if c.cachingEnabled() {
		remember(c, c.maps.users, user.ID(), user)
	}

	return user
}

// counterpartID is the first participant that is not the session user, or
// the first participant when every participant is.
func (c *Client) counterpartID(participants []graphql.ParticipantRecord) string {
	if len(participants) == 0 {
		return ""
	}

	for _, participant := range participants {
		if c.meID != "" && participant.ID != c.meID {
			return participant.ID
		}
	}

	return participants[0].ID
}

func (c *Client) newChat(record *graphql.ChatRecord) *playerok.Chat {
	chat := playerok.NewChat(c, record.ID)
	chat.Type = playerok.ChatType(record.Type)
	chat.Status = playerok.ChatStatus(record.Status)
	chat.UnreadMessagesCounter = record.UnreadMessagesCounter
	chat.UserID = c.counterpartID(record.Participants)

	return chat
}

func (c *Client) cachedChat(id string) (*playerok.Chat, bool) {
	if !c.cachingEnabled() || id == "" {
		return nil, false
	}

	return c.maps.chats.Get(id)
}

func (c *Client) registerChat(record *graphql.ChatRecord) *playerok.Chat {
	chat := c.newChat(record)

	if c.cachingEnabled() {
		remember(c, c.maps.chats, chat.ID(), chat)
	}

	return chat
}

func (c *Client) newDeal(record *graphql.DealRecord, chatID string) *playerok.Deal {
	deal := playerok.NewDeal(c, record.ID)
	deal.Status = playerok.DealStatus(record.Status)
	deal.Direction = playerok.DealDirection(record.Direction)
	deal.UserID = graphql.RefID(record.User)
	deal.ChatID = graphql.RefID(record.Chat)
	deal.ItemID = graphql.RefID(record.Item)

	if deal.ChatID == "" {
		deal.ChatID = chatID
	}

	return deal
}

func (c *Client) cachedDeal(id string) (*playerok.Deal, bool) {
	if !c.cachingEnabled() || id == "" {
		return nil, false
	}

	return c.maps.deals.Get(id)
}

// registerDeal builds a deal. chatID fills in the chat when the record was
// embedded in one and does not name it.
func (c *Client) registerDeal(record *graphql.DealRecord, chatID string) *playerok.Deal {
	deal := c.newDeal(record, chatID)

	if c.cachingEnabled() {
		remember(c, c.maps.deals, deal.ID(), deal)
	}

	return deal
}

func fillItem(item *playerok.Item, record *graphql.ItemRecord) {
	item.Slug = record.Slug
	item.Name = record.Name
	item.Description = record.Description
	item.Price = record.Price
	item.RawPrice = record.RawPrice
	item.Status = playerok.ItemStatus(record.Status)
	item.Priority = playerok.PriorityType(record.Priority)
	item.PriorityPosition = record.PriorityPosition
	item.GameID = graphql.RefID(record.Game)
	item.CategoryID = graphql.RefID(record.Category)
	item.UserID = record.UserID()
}

func (c *Client) newItem(record *graphql.ItemRecord) *playerok.Item {
	item := playerok.NewItem(c, record.ID)
	fillItem(item, record)

	return item
}

func (c *Client) newMyItem(record *graphql.ItemRecord) *playerok.MyItem {
	item := playerok.NewMyItem(c, record.ID)
	fillItem(&item.Item, record)

	if !record.IsMine() {
		// Only the public fields arrived; the raw price is what the owner
		// set before any discount.
		item.PrevPrice = record.RawPrice

		return item
	}

	item.PrevPrice = record.PrevPrice
	item.PriorityPrice = record.PriorityPrice
	item.IsEditable = record.IsEditable

	if record.Buyer != nil {
		buyer := record.Buyer.UserProfile()
		item.Buyer = &buyer
	}

	return item
}

func (c *Client) cachedListing(id string) (playerok.Listing, bool) {
	if !c.cachingEnabled() || id == "" {
		return nil, false
	}

	return c.maps.items.Get(id)
}

// resolveItem returns the public view of an item. A cached MyItem serves
// its embedded Item so both views stay the same instance.
func (c *Client) resolveItem(record *graphql.ItemRecord, refresh bool) *playerok.Item {
	if !refresh {
		if cached, ok := c.cachedListing(record.ID); ok {
			return cached.Base()
		}
	}

	if record.IsMine() {
		return &c.registerMyItem(record).Item
	}

	item := c.newItem(record)

	if c.cachingEnabled() {
		remember[playerok.Listing](c, c.maps.items, item.ID(), item)
	}

	return item
}

// resolveMyItem returns the owner view of an item. A cached public Item is
// upgraded in place of the map slot.
func (c *Client) resolveMyItem(record *graphql.ItemRecord, refresh bool) *playerok.MyItem {
	if !refresh {
		if cached, ok := c.cachedListing(record.ID); ok {
			if mine, isMine := cached.(*playerok.MyItem); isMine {
				return mine
			}
		}
	}

	return c.registerMyItem(record)
}

func (c *Client) registerMyItem(record *graphql.ItemRecord) *playerok.MyItem {
	item := c.newMyItem(record)

	if c.cachingEnabled() {
		remember[playerok.Listing](c, c.maps.items, item.ID(), item)
	}

	return item
}

func (c *Client) newGame(record *graphql.GameRecord) *playerok.Game {
	game := playerok.NewGame(c, record.ID)
	game.Slug = record.Slug
	game.Name = record.Name
	game.Type = playerok.GameType(record.Type)
	game.Logo = record.Logo.ToFile()
	game.Banner = record.Banner.ToFile()
	game.CreatedAt = record.CreatedAt

	game.Categories = make([]*playerok.GameCategory, 0, len(record.Categories))
	for i := range record.Categories {
		category := c.newCategory(&record.Categories[i])
		if category.GameID == "" {
			category.GameID = record.ID
		}

		game.Categories = append(game.Categories, category)
	}

	return game
}

func (c *Client) cachedGame(id string) (*playerok.Game, bool) {
	if !c.cachingEnabled() || id == "" {
		return nil, false
	}

	return c.maps.games.Get(id)
}

func (c *Client) resolveGame(record *graphql.GameRecord, refresh bool) *playerok.Game {
	if !refresh {
		if cached, ok := c.cachedGame(record.ID); ok {
			return cached
		}
	}

	game := c.newGame(record)

	if c.cachingEnabled() {
		remember(c, c.maps.games, game.ID(), game)
	}

	return game
}

func (c *Client) newCategory(record *graphql.CategoryRecord) *playerok.GameCategory {
	category := playerok.NewGameCategory(c, record.ID)
	category.GameID = record.GameID
	category.Slug = record.Slug
	category.Name = record.Name

	return category
}

func (c *Client) newObtainingType(record *graphql.ObtainingTypeRecord, categoryID string) *playerok.ObtainingType {
	obtainingType := playerok.NewObtainingType(c, record.ID)
	obtainingType.CategoryID = record.GameCategoryID
	obtainingType.Name = record.Name
	obtainingType.Description = record.Description
	obtainingType.Sequence = record.Sequence

	if obtainingType.CategoryID == "" {
		obtainingType.CategoryID = categoryID
	}

	return obtainingType
}

func (c *Client) newAgreement(record *graphql.AgreementRecord, categoryID, obtainingTypeID string) *playerok.Agreement {
	agreement := playerok.NewAgreement(c, record.ID)
	agreement.Description = record.Description
	agreement.IconType = record.IconType
	agreement.Sequence = record.Sequence
	agreement.CategoryID = categoryID
	agreement.ObtainingTypeID = obtainingTypeID

	return agreement
}

// expandOptions groups option rows by field slug and lists every value a
// seller may pick: selector rows contribute their value, a range
// contributes each integer from min(0, min) up to but excluding max(0, max),
// and a switch offers false and true.
func expandOptions(records []graphql.OptionRecord) []*playerok.CategoryOption {
	options := make([]*playerok.CategoryOption, 0)
	bySlug := make(map[string]*playerok.CategoryOption)

	for _, record := range records {
		option, ok := bySlug[record.Field]
		if !ok {
			option = &playerok.CategoryOption{
				ID:     record.ID,
				Type:   playerok.OptionType(record.Type),
				Group:  record.Group,
				Slug:   record.Field,
				Values: []playerok.OptionValue{},
			}
			bySlug[record.Field] = option
			options = append(options, option)
		}

		switch playerok.OptionType(record.Type) {
		case playerok.OptionTypeSelector:
			option.Values = append(option.Values, playerok.OptionValue{Name: record.Label, Value: record.Value})
		case playerok.OptionTypeRange:
			low, high := 0, 0
			if record.ValueRangeLimit != nil {
				if record.ValueRangeLimit.Min != nil {
					low = min(0, *record.ValueRangeLimit.Min)
				}

				if record.ValueRangeLimit.Max != nil {
					high = max(0, *record.ValueRangeLimit.Max)
				}
			}

			for i := low; i < high; i++ {
				value := strconv.Itoa(i)
				option.Values = append(option.Values, playerok.OptionValue{Name: value, Value: value})
			}
		case playerok.OptionTypeSwitch:
			if len(option.Values) == 0 {
				option.Values = append(option.Values,
					playerok.OptionValue{Name: "No", Value: "false"},
					playerok.OptionValue{Name: "Yes", Value: "true"},
				)
			}
		}
	}

	return options
}
