package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
	"github.com/fivetwenty-io/playerok-client/internal/graphql"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// ChatsClient implements playerok.ChatsClient.
type ChatsClient struct {
	session *Client
}

// NewChatsClient creates a new chats client.
func NewChatsClient(session *Client) *ChatsClient {
	return &ChatsClient{
		session: session,
	}
}

// Get implements playerok.ChatsClient.Get. A chat the marketplace does not
// know is returned as nil without error.
func (c *ChatsClient) Get(ctx context.Context, chatID string, opts ...playerok.GetOption) (*playerok.Chat, error) {
	if chatID == "" {
		return nil, playerok.InvalidArgumentError("chat id is required")
	}

	options := playerok.ApplyGetOptions(opts...)

	if !options.ForceRefresh {
		if cached, ok := c.session.cachedChat(chatID); ok {
			return cached, nil
		}
	}

	record, err := c.fetchChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("getting chat: %w", err)
	}

	if record == nil {
		return nil, nil
	}

	return c.session.registerChat(record), nil
}

// List implements playerok.ChatsClient.List.
func (c *ChatsClient) List(ctx context.Context, opts *playerok.ChatListOptions) ([]*playerok.Chat, error) {
	if opts == nil {
		opts = &playerok.ChatListOptions{}
	}

	chats, err := c.pager(opts).List(ctx, opts.LimitOr(constants.DefaultListLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}

	return chats, nil
}

// Iter implements playerok.ChatsClient.Iter.
func (c *ChatsClient) Iter(ctx context.Context, opts *playerok.ChatListOptions) *playerok.PaginationIterator[*playerok.Chat] {
	if opts == nil {
		opts = &playerok.ChatListOptions{}
	}

	return c.pager(opts).Iter(ctx, opts.CursorOrEmpty())
}

func (c *ChatsClient) pager(opts *playerok.ChatListOptions) *playerok.Pager[graphql.ChatRecord, *playerok.Chat] {
	return &playerok.Pager[graphql.ChatRecord, *playerok.Chat]{
		Fetch: pageFetcher[graphql.ChatRecord](c.session, graphql.OpChats, "chats",
			func(pagination map[string]interface{}) graphql.Variables {
				filter := map[string]interface{}{"userId": c.session.MeID()}

				if opts.Type != playerok.ChatTypeUnknown {
					filter["type"] = string(opts.Type)
				}

				if opts.Status != playerok.ChatStatusUnknown {
					filter["status"] = string(opts.Status)
				}

				return graphql.Variables{"pagination": pagination, "filter": filter}
			}),
		PageSize: constants.ChatsPageSize,
		Resolve: func(record graphql.ChatRecord) *playerok.Chat {
			return c.session.registerChat(&record)
		},
	}
}

// SendMessage implements playerok.ChatsClient.SendMessage.
func (c *ChatsClient) SendMessage(ctx context.Context, chatID string, req *playerok.SendMessageRequest) (*playerok.ChatMessage, error) {
	if chatID == "" {
		return nil, playerok.InvalidArgumentError("chat id is required")
	}

	if req == nil || (req.Text == "" && req.Photo == nil) {
		return nil, playerok.InvalidArgumentError("a message needs text or a photo")
	}

	if req.Photo != nil {
		err := req.Photo.Validate()
		if err != nil {
			return nil, err
		}
	}

	if req.MarkAsRead {
		err := c.MarkAsRead(ctx, chatID)
		if err != nil {
			return nil, err
		}
	}

	var message *playerok.ChatMessage

	if req.Photo != nil {
		sent, err := c.sendPhoto(ctx, chatID, *req.Photo)
		if err != nil {
			return nil, fmt.Errorf("sending photo to chat %s: %w", chatID, err)
		}

		message = sent
	}

	if req.Text != "" {
		sent, err := c.sendText(ctx, chatID, req.Text)
		if err != nil {
			return nil, fmt.Errorf("sending text to chat %s: %w", chatID, err)
		}

		message = sent
	}

	return message, nil
}

func (c *ChatsClient) sendText(ctx context.Context, chatID, text string) (*playerok.ChatMessage, error) {
	vars := graphql.Variables{
		"input": map[string]interface{}{"chatId": chatID, "text": text},
	}

	record, err := fetchOne[graphql.MessageRecord](ctx, c.session, graphql.OpCreateChatMessage, "createChatMessage", vars)
	if err != nil {
		return nil, err
	}

	if record == nil {
		return nil, &playerok.UpstreamError{Operation: graphql.OpCreateChatMessage.Name, Err: ErrEmptyResponse}
	}

	return record.ChatMessage(chatID), nil
}

func (c *ChatsClient) sendPhoto(ctx context.Context, chatID string, photo playerok.Photo) (*playerok.ChatMessage, error) {
	executor, err := c.session.executor()
	if err != nil {
		return nil, err
	}

	content, err := photo.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = content.Close() }()

	vars := graphql.Variables{
		"input": map[string]interface{}{"chatId": chatID},
		"file":  nil,
	}

	var data struct {
		Message *graphql.MessageRecord `json:"createChatMessage"`
	}

	err = executor.Upload(ctx, graphql.OpCreateChatMessage, vars,
		[]graphql.Upload{{Variable: "file", FileName: photo.Name(), Reader: content}}, &data)
	if err != nil {
		return nil, err
	}

	if data.Message == nil {
		return nil, &playerok.UpstreamError{Operation: graphql.OpCreateChatMessage.Name, Err: ErrEmptyResponse}
	}

	return data.Message.ChatMessage(chatID), nil
}

// MarkAsRead implements playerok.ChatsClient.MarkAsRead.
func (c *ChatsClient) MarkAsRead(ctx context.Context, chatID string) error {
	if chatID == "" {
		return playerok.InvalidArgumentError("chat id is required")
	}

	vars := graphql.Variables{
		"input": map[string]interface{}{"chatId": chatID},
	}

	_, err := fetchOne[graphql.IDRecord](ctx, c.session, graphql.OpMarkChatAsRead, "markChatAsRead", vars)
	if err != nil {
		return fmt.Errorf("marking chat %s as read: %w", chatID, err)
	}

	return nil
}

// Messages implements playerok.ChatsClient.Messages.
func (c *ChatsClient) Messages(ctx context.Context, chatID string, opts *playerok.ListOptions) ([]*playerok.ChatMessage, error) {
	if chatID == "" {
		return nil, playerok.InvalidArgumentError("chat id is required")
	}

	messages, err := c.messagesPager(chatID).List(ctx, opts.LimitOr(constants.DefaultMessagesLimit), opts.CursorOrEmpty())
	if err != nil {
		return nil, fmt.Errorf("listing messages of chat %s: %w", chatID, err)
	}

	return messages, nil
}

// IterMessages implements playerok.ChatsClient.IterMessages.
func (c *ChatsClient) IterMessages(ctx context.Context, chatID string, cursor string) *playerok.PaginationIterator[*playerok.ChatMessage] {
	return c.messagesPager(chatID).Iter(ctx, cursor)
}

func (c *ChatsClient) messagesPager(chatID string) *playerok.Pager[graphql.MessageRecord, *playerok.ChatMessage] {
	return &playerok.Pager[graphql.MessageRecord, *playerok.ChatMessage]{
		Fetch: pageFetcher[graphql.MessageRecord](c.session, graphql.OpChatMessages, "chatMessages",
			func(pagination map[string]interface{}) graphql.Variables {
				return graphql.Variables{
					"pagination": pagination,
					"filter":     map[string]interface{}{"chatId": chatID},
				}
			}),
		PageSize: constants.MessagesPageSize,
		Resolve: func(record graphql.MessageRecord) *playerok.ChatMessage {
			return record.ChatMessage(chatID)
		},
	}
}

// Deals implements playerok.ChatsClient.Deals.
func (c *ChatsClient) Deals(ctx context.Context, chatID string) ([]*playerok.Deal, error) {
	if chatID == "" {
		return nil, playerok.InvalidArgumentError("chat id is required")
	}

	record, err := c.fetchChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("getting deals of chat %s: %w", chatID, err)
	}

	if record == nil {
		return []*playerok.Deal{}, nil
	}

	deals := make([]*playerok.Deal, 0, len(record.Deals))
	for i := range record.Deals {
		deals = append(deals, c.session.registerDeal(&record.Deals[i], chatID))
	}

	return deals, nil
}

func (c *ChatsClient) fetchChat(ctx context.Context, chatID string) (*graphql.ChatRecord, error) {
	return fetchOne[graphql.ChatRecord](ctx, c.session, graphql.OpChat, "chat", graphql.Variables{"id": chatID})
}
