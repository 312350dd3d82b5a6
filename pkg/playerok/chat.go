package playerok

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
)

// ChatMessage is one message of a chat. Messages are values and are not
// kept in an identity map.
type ChatMessage struct {
	ID     string    `json:"id"             yaml:"id"`
	SentAt time.Time `json:"sent_at"        yaml:"sent_at"`
	IsRead bool      `json:"is_read"        yaml:"is_read"`
	Text   *string   `json:"text,omitempty" yaml:"text,omitempty"`
	File   *File     `json:"file,omitempty" yaml:"file,omitempty"`
	UserID string    `json:"user_id"        yaml:"user_id"`
	ChatID string    `json:"chat_id"        yaml:"chat_id"`
}

// Chat is a conversation the authenticated user takes part in.
type Chat struct {
	session

	id string

	Type                  ChatType
	Status                ChatStatus
	UnreadMessagesCounter *int
	// UserID is the counterpart: the first participant that is not the
	// authenticated user. Empty when unknown.
	UserID string
}

// NewChat creates a chat bound to client.
func NewChat(client Client, id string) *Chat {
	return &Chat{session: session{client: client}, id: id}
}

// ID returns the immutable chat id.
func (c *Chat) ID() string {
	return c.id
}

// SendText sends a text message to the chat.
func (c *Chat) SendText(ctx context.Context, text string) (*ChatMessage, error) {
	return c.Send(ctx, &SendMessageRequest{Text: text})
}

// SendPhoto sends a photo to the chat.
func (c *Chat) SendPhoto(ctx context.Context, photo Photo) (*ChatMessage, error) {
	return c.Send(ctx, &SendMessageRequest{Photo: &photo})
}

// Send sends text, a photo, or both to the chat.
func (c *Chat) Send(ctx context.Context, req *SendMessageRequest) (*ChatMessage, error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	return client.Chats().SendMessage(ctx, c.id, req)
}

// MarkAsRead marks the chat as read.
func (c *Chat) MarkAsRead(ctx context.Context) error {
	client, err := c.require()
	if err != nil {
		return err
	}

	return client.Chats().MarkAsRead(ctx, c.id)
}

// Messages returns up to limit messages, newest page first as the
// marketplace orders them. A limit of 0 means 50.
func (c *Chat) Messages(ctx context.Context, limit int) ([]*ChatMessage, error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = constants.DefaultMessagesLimit
	}

	return client.Chats().Messages(ctx, c.id, &ListOptions{Limit: limit})
}

// IterMessages walks every message of the chat.
func (c *Chat) IterMessages(ctx context.Context) (*PaginationIterator[*ChatMessage], error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	return client.Chats().IterMessages(ctx, c.id, ""), nil
}

// User returns the counterpart, or nil when the chat has none.
func (c *Chat) User(ctx context.Context) (*User, error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	if c.UserID == "" {
		return nil, nil
	}

	return client.Account().GetUser(ctx, UserByID(c.UserID))
}

// Deals returns the deals attached to the chat.
func (c *Chat) Deals(ctx context.Context) ([]*Deal, error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	return client.Chats().Deals(ctx, c.id)
}

// Refresh fetches the chat again, bypassing the identity map.
func (c *Chat) Refresh(ctx context.Context) (*Chat, error) {
	client, err := c.require()
	if err != nil {
		return nil, err
	}

	chat, err := client.Chats().Get(ctx, c.id, WithForceRefresh())
	if err != nil {
		return nil, fmt.Errorf("refreshing chat %s: %w", c.id, err)
	}

	return chat, nil
}
