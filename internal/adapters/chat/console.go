// Package chat implements the secondary Messenger port. The console
// messenger keeps channel state in memory and echoes traffic to stdout, which
// is what the operator CLI runs against.
package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/fatih/color"

	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// ConsoleMessenger is an in-memory Messenger. Messages sent through it are
// attributed to the configured bot name so the cleanup sweep can tell its
// own messages from user ones.
type ConsoleMessenger struct {
	mu       sync.Mutex
	nextID   int
	botName  string
	channels map[string][]*secondary.ChatMessage
	quiet    bool
}

// NewConsoleMessenger creates a ConsoleMessenger posting as botName.
func NewConsoleMessenger(botName string) *ConsoleMessenger {
	return &ConsoleMessenger{
		nextID:   1,
		botName:  botName,
		channels: make(map[string][]*secondary.ChatMessage),
	}
}

// SetQuiet disables console echo. Used when another command owns stdout.
func (m *ConsoleMessenger) SetQuiet(quiet bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quiet = quiet
}

func (m *ConsoleMessenger) echo(format string, args ...any) {
	if m.quiet {
		return
	}
	fmt.Println(color.CyanString(format, args...))
}

// SendMessage posts content to a channel and returns the new message id.
func (m *ConsoleMessenger) SendMessage(ctx context.Context, channelName, content string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := fmt.Sprintf("console-%d", m.nextID)
	m.nextID++
	m.channels[channelName] = append(m.channels[channelName], &secondary.ChatMessage{
		ID:      id,
		Author:  m.botName,
		Content: content,
	})
	m.echo("[#%s] %s:\n%s", channelName, m.botName, content)
	return id, nil
}

// EditMessage replaces the content of an existing message in place.
func (m *ConsoleMessenger) EditMessage(ctx context.Context, channelName, messageID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, msg := range m.channels[channelName] {
		if msg.ID == messageID {
			msg.Content = content
			m.echo("[#%s] %s (edited %s):\n%s", channelName, m.botName, messageID, content)
			return nil
		}
	}
	return fmt.Errorf("message %s in #%s: %w", messageID, channelName, secondary.ErrNotFound)
}

// DeleteMessage removes a message from its channel.
func (m *ConsoleMessenger) DeleteMessage(ctx context.Context, channelName, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.channels[channelName]
	for i, msg := range msgs {
		if msg.ID == messageID {
			m.channels[channelName] = append(msgs[:i:i], msgs[i+1:]...)
			m.echo("[#%s] deleted %s", channelName, messageID)
			return nil
		}
	}
	return fmt.Errorf("message %s in #%s: %w", messageID, channelName, secondary.ErrNotFound)
}

// ListRecentMessages returns a channel's messages, newest first.
func (m *ConsoleMessenger) ListRecentMessages(ctx context.Context, channelName string) ([]*secondary.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.channels[channelName]
	out := make([]*secondary.ChatMessage, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		copied := *msgs[i]
		out = append(out, &copied)
	}
	return out, nil
}

// NotifyUser delivers a direct reply to one member.
func (m *ConsoleMessenger) NotifyUser(ctx context.Context, memberID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.echo("[dm -> %s] %s", memberID, content)
	return nil
}

// Ensure ConsoleMessenger implements the interface
var _ secondary.Messenger = (*ConsoleMessenger)(nil)
