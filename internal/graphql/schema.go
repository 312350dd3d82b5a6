package graphql

import (
	"time"

	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// Typenames of the user union.
const (
	TypenameUser         = "User"
	TypenameUserFragment = "UserFragment"
	TypenameMyItem       = "MyItem"
)

// IDRecord is any object of which only the id was selected.
type IDRecord struct {
	ID string `json:"id"`
}

// RefID returns the id of an optional reference, empty when absent.
func RefID(ref *IDRecord) string {
	if ref == nil {
		return ""
	}

	return ref.ID
}

// FileRecord is an uploaded file.
type FileRecord struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Mime     string `json:"mime"`
}

// ToFile converts the record, nil-safe.
func (r *FileRecord) ToFile() *playerok.File {
	if r == nil {
		return nil
	}

	return &playerok.File{ID: r.ID, URL: r.URL, Filename: r.Filename, Mime: r.Mime}
}

// CounterRecord is a total/finished pair.
type CounterRecord struct {
	Total    int `json:"total"`
	Finished int `json:"finished"`
}

// BalanceRecord is the balance of the account.
type BalanceRecord struct {
	ID            string  `json:"id"`
	Value         float64 `json:"value"`
	Available     float64 `json:"available"`
	Frozen        float64 `json:"frozen"`
	PendingIncome float64 `json:"pendingIncome"`
	Withdrawable  float64 `json:"withdrawable"`
}

// StatsRecord is the items and deals summary of the account.
type StatsRecord struct {
	Items CounterRecord `json:"items"`
	Deals struct {
		Incoming CounterRecord `json:"incoming"`
		Outgoing CounterRecord `json:"outgoing"`
	} `json:"deals"`
}

// ProfileRecord is a public user profile. The account-only fields are set
// only when the authenticated user asks for their own profile.
type ProfileRecord struct {
	ID                 string     `json:"id"`
	Username           string     `json:"username"`
	Role               string     `json:"role"`
	AvatarURL          *string    `json:"avatarURL"`
	IsOnline           *bool      `json:"isOnline"`
	IsBlocked          *bool      `json:"isBlocked"`
	Rating             *float64   `json:"rating"`
	TestimonialCounter *int       `json:"testimonialCounter"`
	CreatedAt          *time.Time `json:"createdAt"`

	Email                   string         `json:"email"`
	IsVerified              *bool          `json:"isVerified"`
	HasFrozenBalance        bool           `json:"hasFrozenBalance"`
	HasEnabledNotifications bool           `json:"hasEnabledNotifications"`
	SupportChatID           string         `json:"supportChatId"`
	SystemChatID            string         `json:"systemChatId"`
	Balance                 *BalanceRecord `json:"balance"`
	Stats                   *StatsRecord   `json:"stats"`
}

// UserProfile converts the public part of the record.
func (r *ProfileRecord) UserProfile() playerok.UserProfile {
	return playerok.UserProfile{
		ID:           r.ID,
		Username:     r.Username,
		Role:         playerok.UserRole(r.Role),
		AvatarURL:    r.AvatarURL,
		IsOnline:     r.IsOnline,
		IsBlocked:    r.IsBlocked,
		Rating:       r.Rating,
		ReviewsCount: r.TestimonialCounter,
		CreatedAt:    r.CreatedAt,
	}
}

// AccountProfile converts the record of the authenticated user.
func (r *ProfileRecord) AccountProfile() *playerok.AccountProfile {
	profile := &playerok.AccountProfile{
		UserProfile:             r.UserProfile(),
		Email:                   r.Email,
		IsVerified:              r.IsVerified,
		HasFrozenBalance:        r.HasFrozenBalance,
		HasEnabledNotifications: r.HasEnabledNotifications,
		SupportChatID:           r.SupportChatID,
		SystemChatID:            r.SystemChatID,
	}

	if r.Balance != nil {
		profile.Balance = playerok.AccountBalance(*r.Balance)
	}

	if r.Stats != nil {
		profile.Stats = playerok.AccountStats{
			Items:         playerok.Counter(r.Stats.Items),
			IncomingDeals: playerok.Counter(r.Stats.Deals.Incoming),
			OutgoingDeals: playerok.Counter(r.Stats.Deals.Outgoing),
		}
	}

	return profile
}

// UserRecord is the user union: a "User" carries its profile in a nested
// object, a "UserFragment" carries the profile fields directly.
type UserRecord struct {
	Typename string `json:"__typename"`

	ProfileRecord

	Profile *ProfileRecord `json:"profile"`
}

// UserProfile returns the profile whichever variant arrived, nil for an
// unknown variant.
func (r *UserRecord) UserProfile() *ProfileRecord {
	if r == nil {
		return nil
	}

	switch r.Typename {
	case TypenameUserFragment:
		profile := r.ProfileRecord

		return &profile
	case TypenameUser:
		if r.Profile == nil {
			return nil
		}

		profile := *r.Profile
		if profile.ID == "" {
			profile.ID = r.ID
		}

		if profile.Username == "" {
			profile.Username = r.Username
		}

		return &profile
	default:
		return nil
	}
}

// ViewerRecord is the authenticated user.
type ViewerRecord struct {
	ID                      string     `json:"id"`
	Username                string     `json:"username"`
	Email                   string     `json:"email"`
	Role                    string     `json:"role"`
	HasFrozenBalance        bool       `json:"hasFrozenBalance"`
	SupportChatID           string     `json:"supportChatId"`
	SystemChatID            string     `json:"systemChatId"`
	UnreadChatsCounter      int        `json:"unreadChatsCounter"`
	IsBlocked               bool       `json:"isBlocked"`
	IsFundsProtectionActive bool       `json:"isFundsProtectionActive"`
	CreatedAt               time.Time  `json:"createdAt"`
	LastItemCreatedAt       *time.Time `json:"lastItemCreatedAt"`
	HasConfirmedPhoneNumber bool       `json:"hasConfirmedPhoneNumber"`
	CanPublishItems         bool       `json:"canPublishItems"`
	Profile                 *struct {
		ID                 string  `json:"id"`
		AvatarURL          *string `json:"avatarURL"`
		TestimonialCounter *int    `json:"testimonialCounter"`
	} `json:"profile"`
}

// Account converts the record.
func (r *ViewerRecord) Account() *playerok.Account {
	account := &playerok.Account{
		ID:                      r.ID,
		Username:                r.Username,
		Email:                   r.Email,
		Role:                    playerok.UserRole(r.Role),
		HasFrozenBalance:        r.HasFrozenBalance,
		SupportChatID:           r.SupportChatID,
		SystemChatID:            r.SystemChatID,
		UnreadChatsCounter:      r.UnreadChatsCounter,
		IsBlocked:               r.IsBlocked,
		IsFundsProtectionActive: r.IsFundsProtectionActive,
		HasConfirmedPhoneNumber: r.HasConfirmedPhoneNumber,
		CanPublishItems:         r.CanPublishItems,
		CreatedAt:               r.CreatedAt,
		LastItemCreatedAt:       r.LastItemCreatedAt,
	}

	if r.Profile != nil {
		account.AvatarURL = r.Profile.AvatarURL
		account.ReviewsCount = r.Profile.TestimonialCounter
	}

	return account
}

// ParticipantRecord is a chat participant.
type ParticipantRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ChatRecord is a chat with its participants and deals.
type ChatRecord struct {
	ID                    string              `json:"id"`
	Type                  string              `json:"type"`
	Status                string              `json:"status"`
	UnreadMessagesCounter *int                `json:"unreadMessagesCounter"`
	Participants          []ParticipantRecord `json:"participants"`
	Deals                 []DealRecord        `json:"deals"`
}

// MessageRecord is a chat message.
type MessageRecord struct {
	ID        string      `json:"id"`
	Text      *string     `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
	IsRead    bool        `json:"isRead"`
	User      *IDRecord   `json:"user"`
	File      *FileRecord `json:"file"`
}

// ChatMessage converts the record.
func (r *MessageRecord) ChatMessage(chatID string) *playerok.ChatMessage {
	return &playerok.ChatMessage{
		ID:     r.ID,
		SentAt: r.CreatedAt,
		IsRead: r.IsRead,
		Text:   r.Text,
		File:   r.File.ToFile(),
		UserID: RefID(r.User),
		ChatID: chatID,
	}
}

// DealRecord is a deal.
type DealRecord struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Direction string    `json:"direction"`
	User      *IDRecord `json:"user"`
	Chat      *IDRecord `json:"chat"`
	Item      *IDRecord `json:"item"`
}

// ItemRecord is a public listing or, with __typename "MyItem", a listing
// of the authenticated user.
type ItemRecord struct {
	Typename         string         `json:"__typename"`
	ID               string         `json:"id"`
	Slug             *string        `json:"slug"`
	Name             *string        `json:"name"`
	Description      *string        `json:"description"`
	Price            *int           `json:"price"`
	RawPrice         *int           `json:"rawPrice"`
	Status           string         `json:"status"`
	Priority         string         `json:"priority"`
	PriorityPosition *int           `json:"priorityPosition"`
	Game             *IDRecord      `json:"game"`
	Category         *IDRecord      `json:"category"`
	User             *ProfileRecord `json:"user"`
	Attachments      []FileRecord   `json:"attachments"`

	PrevPrice     *int           `json:"prevPrice"`
	PriorityPrice *int           `json:"priorityPrice"`
	IsEditable    *bool          `json:"isEditable"`
	Buyer         *ProfileRecord `json:"buyer"`
}

// IsMine reports whether the record carries the owner-only fields.
func (r *ItemRecord) IsMine() bool {
	return r.Typename == TypenameMyItem
}

// UserID returns the seller id, empty when absent.
func (r *ItemRecord) UserID() string {
	if r.User == nil {
		return ""
	}

	return r.User.ID
}

// PriorityStatusRecord is one promotion tier.
type PriorityStatusRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Price  int    `json:"price"`
	Period *int   `json:"period"`
}

// PriorityStatus converts the record.
func (r *PriorityStatusRecord) PriorityStatus() playerok.PriorityStatus {
	return playerok.PriorityStatus{
		ID:     r.ID,
		Name:   r.Name,
		Type:   playerok.PriorityType(r.Type),
		Price:  r.Price,
		Period: r.Period,
	}
}

// CategoryRecord is a game category.
type CategoryRecord struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	GameID string `json:"gameId"`
}

// GameRecord is a game with its categories.
type GameRecord struct {
	ID         string           `json:"id"`
	Slug       *string          `json:"slug"`
	Name       *string          `json:"name"`
	Type       string           `json:"type"`
	CreatedAt  *time.Time       `json:"createdAt"`
	Logo       *FileRecord      `json:"logo"`
	Banner     *FileRecord      `json:"banner"`
	Categories []CategoryRecord `json:"categories"`
}

// AgreementRecord is a seller agreement.
type AgreementRecord struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IconType    string `json:"iconType"`
	Sequence    int    `json:"sequence"`
}

// ObtainingTypeRecord is a way of receiving an item.
type ObtainingTypeRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	GameCategoryID string `json:"gameCategoryId"`
	Sequence       int    `json:"sequence"`
}

// InstructionRecord is an instruction text.
type InstructionRecord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// DataFieldRecord is a category data field.
type DataFieldRecord struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Type      string  `json:"type"`
	InputType string  `json:"inputType"`
	Copyable  bool    `json:"copyable"`
	Hidden    bool    `json:"hidden"`
	Required  bool    `json:"required"`
	Value     *string `json:"value"`
}

// DataField converts the record.
func (r *DataFieldRecord) DataField() *playerok.DataField {
	return &playerok.DataField{
		ID:        r.ID,
		Type:      playerok.DataFieldType(r.Type),
		InputType: playerok.DataFieldInputType(r.InputType),
		Name:      r.Label,
		Required:  r.Required,
		Hidden:    r.Hidden,
		Copyable:  r.Copyable,
		Value:     r.Value,
	}
}

// RangeRecord bounds a RANGE option.
type RangeRecord struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// OptionRecord is one row of a category option: a selector value, a range
// or a switch. Rows sharing Field belong to the same option.
type OptionRecord struct {
	ID              string       `json:"id"`
	Group           string       `json:"group"`
	Label           string       `json:"label"`
	Type            string       `json:"type"`
	Field           string       `json:"field"`
	Value           string       `json:"value"`
	ValueRangeLimit *RangeRecord `json:"valueRangeLimit"`
}
