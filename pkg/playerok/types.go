package playerok

import (
	"strings"
	"time"
)

// UserRole is the marketplace role of a user. The zero value is unknown.
type UserRole string

// UserRole values.
const (
	UserRoleUnknown   UserRole = ""
	UserRoleUser      UserRole = "USER"
	UserRoleModerator UserRole = "MODERATOR"
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleBot       UserRole = "BOT"
)

// ChatType is the kind of a chat. The zero value is unknown.
type ChatType string

// ChatType values.
const (
	ChatTypeUnknown       ChatType = ""
	ChatTypePM            ChatType = "PM"
	ChatTypeNotifications ChatType = "NOTIFICATIONS"
	ChatTypeSupport       ChatType = "SUPPORT"
)

// ChatStatus is the lifecycle state of a chat.
type ChatStatus string

// ChatStatus values.
const (
	ChatStatusUnknown  ChatStatus = ""
	ChatStatusNew      ChatStatus = "NEW"
	ChatStatusFinished ChatStatus = "FINISHED"
)

// DealStatus is the lifecycle state of a deal.
type DealStatus string

// DealStatus values.
const (
	DealStatusUnknown    DealStatus = ""
	DealStatusPaid       DealStatus = "PAID"
	DealStatusPending    DealStatus = "PENDING"
	DealStatusSent       DealStatus = "SENT"
	DealStatusConfirmed  DealStatus = "CONFIRMED"
	DealStatusRolledBack DealStatus = "ROLLED_BACK"
)

// DealDirection tells incoming (sales) from outgoing (purchases) deals.
type DealDirection string

// DealDirection values.
const (
	DealDirectionAny DealDirection = ""
	DealDirectionIn  DealDirection = "IN"
	DealDirectionOut DealDirection = "OUT"
)

// ItemStatus is the moderation state of an item.
type ItemStatus string

// ItemStatus values.
const (
	ItemStatusUnknown           ItemStatus = ""
	ItemStatusDraft             ItemStatus = "DRAFT"
	ItemStatusPendingApproval   ItemStatus = "PENDING_APPROVAL"
	ItemStatusPendingModeration ItemStatus = "PENDING_MODERATION"
	ItemStatusApproved          ItemStatus = "APPROVED"
	ItemStatusDeclined          ItemStatus = "DECLINED"
	ItemStatusBlocked           ItemStatus = "BLOCKED"
	ItemStatusExpired           ItemStatus = "EXPIRED"
	ItemStatusSold              ItemStatus = "SOLD"
)

// PriorityType is the promotion tier of an item.
type PriorityType string

// PriorityType values.
const (
	PriorityTypeUnknown PriorityType = ""
	PriorityTypeDefault PriorityType = "DEFAULT"
	PriorityTypePremium PriorityType = "PREMIUM"
)

// GameType separates games from applications in the catalogue.
type GameType string

// GameType values.
const (
	GameTypeAny         GameType = ""
	GameTypeGame        GameType = "GAME"
	GameTypeApplication GameType = "APPLICATION"
)

// ItemSort orders public listings.
type ItemSort string

// ItemSort values.
const (
	ItemSortDefault    ItemSort = ""
	ItemSortPriceAsc   ItemSort = "PRICE_ASC"
	ItemSortPriceDesc  ItemSort = "PRICE_DESC"
	ItemSortRatingAsc  ItemSort = "RATING_ASC"
	ItemSortRatingDesc ItemSort = "RATING_DESC"
)

// Field is the marketplace sort field.
func (s ItemSort) Field() string {
	if strings.HasPrefix(string(s), "PRICE") {
		return "price"
	}

	return "userRating"
}

// Direction is ASC or DESC.
func (s ItemSort) Direction() string {
	if strings.HasSuffix(string(s), "ASC") {
		return "ASC"
	}

	return "DESC"
}

// OptionType is the input kind of a category option.
type OptionType string

// OptionType values.
const (
	OptionTypeSelector OptionType = "SELECTOR"
	OptionTypeSwitch   OptionType = "SWITCH"
	OptionTypeRange    OptionType = "RANGE"
)

// DataFieldType tells item data from data requested at obtaining time.
type DataFieldType string

// DataFieldType values.
const (
	DataFieldTypeItemData      DataFieldType = "ITEM_DATA"
	DataFieldTypeObtainingData DataFieldType = "OBTAINING_DATA"
)

// DataFieldInputType is the widget of a data field.
type DataFieldInputType string

// DataFieldInputType values.
const (
	DataFieldInputTypeInput    DataFieldInputType = "INPUT"
	DataFieldInputTypeTextarea DataFieldInputType = "TEXTAREA"
)

// File is an uploaded attachment.
type File struct {
	ID       string `json:"id"       yaml:"id"`
	URL      string `json:"url"      yaml:"url"`
	Filename string `json:"filename" yaml:"filename"`
	Mime     string `json:"mime"     yaml:"mime"`
}

// Account is the authenticated user as returned by the viewer query.
type Account struct {
	ID                      string     `json:"id"                         yaml:"id"`
	Username                string     `json:"username"                   yaml:"username"`
	Email                   string     `json:"email"                      yaml:"email"`
	Role                    UserRole   `json:"role"                       yaml:"role"`
	HasFrozenBalance        bool       `json:"has_frozen_balance"         yaml:"has_frozen_balance"`
	SupportChatID           string     `json:"support_chat_id"            yaml:"support_chat_id"`
	SystemChatID            string     `json:"system_chat_id"             yaml:"system_chat_id"`
	UnreadChatsCounter      int        `json:"unread_chats_counter"       yaml:"unread_chats_counter"`
	IsBlocked               bool       `json:"is_blocked"                 yaml:"is_blocked"`
	IsFundsProtectionActive bool       `json:"is_funds_protection_active" yaml:"is_funds_protection_active"`
	HasConfirmedPhoneNumber bool       `json:"has_confirmed_phone_number" yaml:"has_confirmed_phone_number"`
	CanPublishItems         bool       `json:"can_publish_items"          yaml:"can_publish_items"`
	AvatarURL               *string    `json:"avatar_url,omitempty"       yaml:"avatar_url,omitempty"`
	ReviewsCount            *int       `json:"reviews_count,omitempty"    yaml:"reviews_count,omitempty"`
	CreatedAt               time.Time  `json:"created_at"                 yaml:"created_at"`
	LastItemCreatedAt       *time.Time `json:"last_item_created_at"       yaml:"last_item_created_at"`
}

// UserProfile is the public profile of a user.
type UserProfile struct {
	ID           string     `json:"id"                      yaml:"id"`
	Username     string     `json:"username"                yaml:"username"`
	Role         UserRole   `json:"role"                    yaml:"role"`
	AvatarURL    *string    `json:"avatar_url,omitempty"    yaml:"avatar_url,omitempty"`
	IsOnline     *bool      `json:"is_online,omitempty"     yaml:"is_online,omitempty"`
	IsBlocked    *bool      `json:"is_blocked,omitempty"    yaml:"is_blocked,omitempty"`
	Rating       *float64   `json:"rating,omitempty"        yaml:"rating,omitempty"`
	ReviewsCount *int       `json:"reviews_count,omitempty" yaml:"reviews_count,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"    yaml:"created_at,omitempty"`
}

// AccountBalance is the money held by the account.
type AccountBalance struct {
	ID            string  `json:"id"             yaml:"id"`
	Value         float64 `json:"value"          yaml:"value"`
	Available     float64 `json:"available"      yaml:"available"`
	Frozen        float64 `json:"frozen"         yaml:"frozen"`
	PendingIncome float64 `json:"pending_income" yaml:"pending_income"`
	Withdrawable  float64 `json:"withdrawable"   yaml:"withdrawable"`
}

// Counter is a total/finished pair.
type Counter struct {
	Total    int `json:"total"    yaml:"total"`
	Finished int `json:"finished" yaml:"finished"`
}

// AccountStats summarises items and deals of the account.
type AccountStats struct {
	Items         Counter `json:"items"          yaml:"items"`
	IncomingDeals Counter `json:"incoming_deals" yaml:"incoming_deals"`
	OutgoingDeals Counter `json:"outgoing_deals" yaml:"outgoing_deals"`
}

// AccountProfile is the full profile of the authenticated user.
type AccountProfile struct {
	UserProfile `yaml:",inline"`

	Email                   string         `json:"email"                     yaml:"email"`
	Balance                 AccountBalance `json:"balance"                   yaml:"balance"`
	Stats                   AccountStats   `json:"stats"                     yaml:"stats"`
	IsVerified              *bool          `json:"is_verified,omitempty"     yaml:"is_verified,omitempty"`
	HasFrozenBalance        bool           `json:"has_frozen_balance"        yaml:"has_frozen_balance"`
	HasEnabledNotifications bool           `json:"has_enabled_notifications" yaml:"has_enabled_notifications"`
	SupportChatID           string         `json:"support_chat_id"           yaml:"support_chat_id"`
	SystemChatID            string         `json:"system_chat_id"            yaml:"system_chat_id"`
}

// PriorityStatus is one promotion tier offered for an item at a price.
type PriorityStatus struct {
	ID     string       `json:"id"               yaml:"id"`
	Name   string       `json:"name"             yaml:"name"`
	Type   PriorityType `json:"type"             yaml:"type"`
	Price  int          `json:"price"            yaml:"price"`
	Period *int         `json:"period,omitempty" yaml:"period,omitempty"`
}
