package websocket

import (
	"context"
	"encoding/json"

	"immomarket/pkg/logger"
)

// MessageHandler processes inbound frames from a client.
type MessageHandler interface {
	Handle(c *Client, raw []byte)
}

// LiveFeeds provides blocking watch loops over backend data. Each call runs
// until its context is cancelled, pushing JSON frames through send.
type LiveFeeds interface {
	WatchChats(ctx context.Context, userID string, send func([]byte))
	WatchMessages(ctx context.Context, chatID, userID string, send func([]byte))
	WatchProperties(ctx context.Context, send func([]byte))
}

type clientFrame struct {
	Type   string `json:"type"`
	Topic  string `json:"topic,omitempty"`
	ChatID string `json:"chatId,omitempty"`
}

// SubscriptionHandler translates subscribe/unsubscribe frames into live
// watchers bound to the client connection.
type SubscriptionHandler struct {
	feeds LiveFeeds
}

func NewSubscriptionHandler(feeds LiveFeeds) *SubscriptionHandler {
	return &SubscriptionHandler{feeds: feeds}
}

func (h *SubscriptionHandler) Handle(c *Client, raw []byte) {
	var frame clientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.sendError("Invalid frame")
		return
	}

	switch frame.Type {
	case "subscribe":
		h.subscribe(c, frame)
	case "unsubscribe":
		c.RemoveSubscription(subscriptionKey(frame))
	case "ping":
		c.deliver([]byte(`{"type":"pong"}`))
	default:
		logger.Debug("Ignoring unknown frame type %q from %s", frame.Type, c.UserID)
	}
}

func (h *SubscriptionHandler) subscribe(c *Client, frame clientFrame) {
	key := subscriptionKey(frame)

	switch frame.Topic {
	case "chats":
		ctx, cancel := context.WithCancel(context.Background())
		c.AddSubscription(key, cancel)
		go h.feeds.WatchChats(ctx, c.UserID, c.deliver)

	case "messages":
		if frame.ChatID == "" {
			c.sendError("chatId is required for a messages subscription")
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		c.AddSubscription(key, cancel)
		go h.feeds.WatchMessages(ctx, frame.ChatID, c.UserID, c.deliver)

	case "properties":
		ctx, cancel := context.WithCancel(context.Background())
		c.AddSubscription(key, cancel)
		go h.feeds.WatchProperties(ctx, c.deliver)

	default:
		c.sendError("Unknown topic")
	}
}

func subscriptionKey(frame clientFrame) string {
	if frame.ChatID != "" {
		return frame.Topic + ":" + frame.ChatID
	}
	return frame.Topic
}

func (c *Client) sendError(message string) {
	frame, _ := json.Marshal(map[string]string{
		"type":  "error",
		"error": message,
	})
	c.deliver(frame)
}
