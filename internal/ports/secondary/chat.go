package secondary

import "context"

// ChatMessage is a message as seen through the chat transport.
type ChatMessage struct {
	ID      string
	Author  string
	Content string
}

// Messenger defines the secondary port for the chat transport. The real
// transport lives outside this repository; every call is blocking I/O from
// the caller's point of view.
type Messenger interface {
	// SendMessage posts content to a channel and returns the new message id.
	SendMessage(ctx context.Context, channelName, content string) (string, error)

	// EditMessage replaces the content of an existing message in place.
	EditMessage(ctx context.Context, channelName, messageID, content string) error

	// DeleteMessage removes a message.
	DeleteMessage(ctx context.Context, channelName, messageID string) error

	// ListRecentMessages returns a channel's recent history, newest first.
	// Used to find and clear bot-authored messages and to locate the
	// status page.
	ListRecentMessages(ctx context.Context, channelName string) ([]*ChatMessage, error)

	// NotifyUser sends a direct reply to a user (rejections, try-again
	// denials, generic failures).
	NotifyUser(ctx context.Context, memberID, content string) error
}
