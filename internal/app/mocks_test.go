package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/trickcandle/commissionqueue/internal/config"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockCommissionRepo implements secondary.CommissionRepository in memory.
// Safe for concurrent use so serializer tests can race real goroutines.
type mockCommissionRepo struct {
	mu      sync.Mutex
	records []*secondary.CommissionRecord
	nextID  int64
}

func newMockCommissionRepo() *mockCommissionRepo {
	return &mockCommissionRepo{nextID: 1}
}

func cloneRecord(r *secondary.CommissionRecord) *secondary.CommissionRecord {
	c := *r
	return &c
}

// seed stores a record directly, assigning an id when missing.
func (m *mockCommissionRepo) seed(rec *secondary.CommissionRecord) *secondary.CommissionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == 0 {
		rec.ID = m.nextID
	}
	if rec.ID >= m.nextID {
		m.nextID = rec.ID + 1
	}
	m.records = append(m.records, cloneRecord(rec))
	return cloneRecord(rec)
}

func (m *mockCommissionRepo) findByMessageID(messageID string) *secondary.CommissionRecord {
	for _, r := range m.records {
		if r.MessageID == messageID && messageID != "" {
			return r
		}
	}
	return nil
}

func (m *mockCommissionRepo) findByNaturalKey(timestamp, email string) *secondary.CommissionRecord {
	for _, r := range m.records {
		if r.Timestamp == timestamp && r.Email == email {
			return r
		}
	}
	return nil
}

func (m *mockCommissionRepo) Insert(ctx context.Context, sub *secondary.Submission) (*secondary.CommissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing := m.findByNaturalKey(sub.Timestamp, sub.Email); existing != nil {
		return cloneRecord(existing), nil
	}
	rec := &secondary.CommissionRecord{
		ID:              m.nextID,
		Timestamp:       sub.Timestamp,
		Email:           sub.Email,
		Name:            sub.Name,
		Twitch:          sub.Twitch,
		Twitter:         sub.Twitter,
		Discord:         sub.Discord,
		ReferenceImages: sub.ReferenceImages,
		Description:     sub.Description,
		Expression:      sub.Expression,
		Notes:           sub.Notes,
		ArtistChoice:    sub.ArtistChoice,
		IfQueueIsFull:   sub.IfQueueIsFull,
	}
	m.nextID++
	m.records = append(m.records, rec)
	return cloneRecord(rec), nil
}

func (m *mockCommissionRepo) GetByNaturalKey(ctx context.Context, timestamp, email string) (*secondary.CommissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec := m.findByNaturalKey(timestamp, email); rec != nil {
		return cloneRecord(rec), nil
	}
	return nil, fmt.Errorf("commission (%s, %s): %w", timestamp, email, secondary.ErrNotFound)
}

func (m *mockCommissionRepo) GetByMessageID(ctx context.Context, messageID string) (*secondary.CommissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec := m.findByMessageID(messageID); rec != nil {
		return cloneRecord(rec), nil
	}
	return nil, fmt.Errorf("commission for message %s: %w", messageID, secondary.ErrNotFound)
}

func (m *mockCommissionRepo) GetByID(ctx context.Context, id int64) (*secondary.CommissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			return cloneRecord(r), nil
		}
	}
	return nil, fmt.Errorf("commission %d: %w", id, secondary.ErrNotFound)
}

func (m *mockCommissionRepo) ListAll(ctx context.Context) ([]*secondary.CommissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*secondary.CommissionRecord, len(m.records))
	for i, r := range m.records {
		out[i] = cloneRecord(r)
	}
	return out, nil
}

func (m *mockCommissionRepo) ListByChannel(ctx context.Context, channelName string) ([]*secondary.CommissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.CommissionRecord
	for _, r := range m.records {
		if r.ChannelName == channelName {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func (m *mockCommissionRepo) mutateByMessageID(messageID string, apply func(*secondary.CommissionRecord)) (*secondary.CommissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.findByMessageID(messageID)
	if rec == nil {
		return nil, fmt.Errorf("commission for message %s: %w", messageID, secondary.ErrNotFound)
	}
	apply(rec)
	return cloneRecord(rec), nil
}

func (m *mockCommissionRepo) mutateByNaturalKey(timestamp, email string, apply func(*secondary.CommissionRecord)) (*secondary.CommissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.findByNaturalKey(timestamp, email)
	if rec == nil {
		return nil, fmt.Errorf("commission (%s, %s): %w", timestamp, email, secondary.ErrNotFound)
	}
	apply(rec)
	return cloneRecord(rec), nil
}

func (m *mockCommissionRepo) Assign(ctx context.Context, messageID, assignedTo string) (*secondary.CommissionRecord, error) {
	return m.mutateByMessageID(messageID, func(r *secondary.CommissionRecord) { r.AssignedTo = assignedTo })
}

func (m *mockCommissionRepo) AssignByNaturalKey(ctx context.Context, timestamp, email, assignedTo string) (*secondary.CommissionRecord, error) {
	return m.mutateByNaturalKey(timestamp, email, func(r *secondary.CommissionRecord) { r.AssignedTo = assignedTo })
}

func (m *mockCommissionRepo) SetAllowAnyArtist(ctx context.Context, timestamp, email string, allow bool) (*secondary.CommissionRecord, error) {
	return m.mutateByNaturalKey(timestamp, email, func(r *secondary.CommissionRecord) { r.AllowAnyArtist = allow })
}

func (m *mockCommissionRepo) SetSpecialty(ctx context.Context, timestamp, email string, specialty bool) (*secondary.CommissionRecord, error) {
	return m.mutateByNaturalKey(timestamp, email, func(r *secondary.CommissionRecord) { r.Specialty = specialty })
}

func (m *mockCommissionRepo) SetAccepted(ctx context.Context, messageID string, accepted bool) (*secondary.CommissionRecord, error) {
	return m.mutateByMessageID(messageID, func(r *secondary.CommissionRecord) { r.Accepted = accepted })
}

func (m *mockCommissionRepo) SetHidden(ctx context.Context, messageID string, hidden bool) (*secondary.CommissionRecord, error) {
	return m.mutateByMessageID(messageID, func(r *secondary.CommissionRecord) { r.Hidden = hidden })
}

func (m *mockCommissionRepo) SetInvoiced(ctx context.Context, messageID string) (*secondary.CommissionRecord, error) {
	return m.mutateByMessageID(messageID, func(r *secondary.CommissionRecord) { r.Invoiced = true })
}

func (m *mockCommissionRepo) SetPaid(ctx context.Context, messageID string) (*secondary.CommissionRecord, error) {
	return m.mutateByMessageID(messageID, func(r *secondary.CommissionRecord) { r.Paid = true })
}

func (m *mockCommissionRepo) SetFinished(ctx context.Context, messageID string) (*secondary.CommissionRecord, error) {
	return m.mutateByMessageID(messageID, func(r *secondary.CommissionRecord) { r.Finished = true })
}

func (m *mockCommissionRepo) UpdateCounter(ctx context.Context, timestamp, email string, counter int) (*secondary.CommissionRecord, error) {
	return m.mutateByNaturalKey(timestamp, email, func(r *secondary.CommissionRecord) { r.Counter = counter })
}

func (m *mockCommissionRepo) UpdateMessageRef(ctx context.Context, timestamp, email, channelName, messageID string) (*secondary.CommissionRecord, error) {
	return m.mutateByNaturalKey(timestamp, email, func(r *secondary.CommissionRecord) {
		r.ChannelName = channelName
		r.MessageID = messageID
	})
}

var _ secondary.CommissionRepository = (*mockCommissionRepo)(nil)

// mockChannelRepo implements secondary.ChannelRepository in memory.
type mockChannelRepo struct {
	mu       sync.Mutex
	counters map[string]int
}

func newMockChannelRepo() *mockChannelRepo {
	return &mockChannelRepo{counters: make(map[string]int)}
}

func (m *mockChannelRepo) EnsureChannel(ctx context.Context, channelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.counters[channelName]; !ok {
		m.counters[channelName] = -1
	}
	return nil
}

func (m *mockChannelRepo) IncrementCounter(ctx context.Context, channelName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counter, ok := m.counters[channelName]
	if !ok {
		return 0, fmt.Errorf("channel %s: %w", channelName, secondary.ErrNotFound)
	}
	counter++
	m.counters[channelName] = counter
	return counter, nil
}

var _ secondary.ChannelRepository = (*mockChannelRepo)(nil)

// mockMessenger implements secondary.Messenger in memory. sendStarted and
// sendBlock let concurrency tests hold a transition inside its first send.
type mockMessenger struct {
	mu       sync.Mutex
	nextID   int
	botName  string
	channels map[string][]*secondary.ChatMessage
	notices  map[string][]string // memberID -> direct replies

	sendStarted chan struct{}
	sendBlock   chan struct{}

	failSend   error
	failEdit   error
	failDelete error
}

func newMockMessenger(botName string) *mockMessenger {
	return &mockMessenger{
		nextID:   1,
		botName:  botName,
		channels: make(map[string][]*secondary.ChatMessage),
		notices:  make(map[string][]string),
	}
}

// seedMessage places a pre-existing message (bot- or user-authored).
func (m *mockMessenger) seedMessage(channel, id, author, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[channel] = append(m.channels[channel], &secondary.ChatMessage{ID: id, Author: author, Content: content})
}

func (m *mockMessenger) SendMessage(ctx context.Context, channelName, content string) (string, error) {
	if m.sendStarted != nil {
		select {
		case m.sendStarted <- struct{}{}:
		default:
		}
	}
	if m.sendBlock != nil {
		<-m.sendBlock
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSend != nil {
		return "", m.failSend
	}
	id := fmt.Sprintf("msg-%d", m.nextID)
	m.nextID++
	m.channels[channelName] = append(m.channels[channelName], &secondary.ChatMessage{
		ID: id, Author: m.botName, Content: content,
	})
	return id, nil
}

func (m *mockMessenger) EditMessage(ctx context.Context, channelName, messageID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failEdit != nil {
		return m.failEdit
	}
	for _, msg := range m.channels[channelName] {
		if msg.ID == messageID {
			msg.Content = content
			return nil
		}
	}
	return fmt.Errorf("message %s in %s: %w", messageID, channelName, secondary.ErrNotFound)
}

func (m *mockMessenger) DeleteMessage(ctx context.Context, channelName, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return m.failDelete
	}
	msgs := m.channels[channelName]
	for i, msg := range msgs {
		if msg.ID == messageID {
			m.channels[channelName] = append(msgs[:i:i], msgs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("message %s in %s: %w", messageID, channelName, secondary.ErrNotFound)
}

func (m *mockMessenger) ListRecentMessages(ctx context.Context, channelName string) ([]*secondary.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.channels[channelName]
	out := make([]*secondary.ChatMessage, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- { // newest first
		copied := *msgs[i]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockMessenger) NotifyUser(ctx context.Context, memberID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices[memberID] = append(m.notices[memberID], content)
	return nil
}

func (m *mockMessenger) messagesIn(channel string) []*secondary.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*secondary.ChatMessage, len(m.channels[channel]))
	for i, msg := range m.channels[channel] {
		copied := *msg
		out[i] = &copied
	}
	return out
}

func (m *mockMessenger) noticesFor(memberID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.notices[memberID]...)
}

var _ secondary.Messenger = (*mockMessenger)(nil)

// mockRowSource implements secondary.RowSource with a fixed batch.
type mockRowSource struct {
	rows []*secondary.SubmissionRow
	err  error
}

func (m *mockRowSource) FetchRows(ctx context.Context) ([]*secondary.SubmissionRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

var _ secondary.RowSource = (*mockRowSource)(nil)

// ============================================================================
// Fixtures
// ============================================================================

func testConfig() *config.Config {
	return &config.Config{
		DatabasePath: "unused",
		BotName:      "CommissionQueueBot",
		ArtistChannels: map[string]string{
			"Jonas":  "jonas-queue",
			"Lauren": "lauren-queue",
		},
		ArtistNames: map[string]string{
			"1001": "Jonas",
			"1002": "Lauren",
		},
		AnyArtistChannel: "any-artist",
		VoidChannel:      "the-void",
		IntakeChannel:    "intake",
		StatusChannel:    "queue-status",
		AuditChannel:     "bot-spam",
	}
}

type testEngine struct {
	lifecycle  *LifecycleService
	statusPage *StatusPageService
	repo       *mockCommissionRepo
	channels   *mockChannelRepo
	messenger  *mockMessenger
	cfg        *config.Config
}

func newTestEngine() *testEngine {
	cfg := testConfig()
	repo := newMockCommissionRepo()
	channels := newMockChannelRepo()
	messenger := newMockMessenger(cfg.BotName)
	logger := zap.NewNop()
	statusPage := NewStatusPageService(repo, messenger, cfg, logger)
	lifecycle := NewLifecycleService(repo, channels, messenger, statusPage, cfg, logger)
	return &testEngine{
		lifecycle:  lifecycle,
		statusPage: statusPage,
		repo:       repo,
		channels:   channels,
		messenger:  messenger,
		cfg:        cfg,
	}
}

// seedRendered stores a commission and its live message in one step.
func (e *testEngine) seedRendered(rec *secondary.CommissionRecord) *secondary.CommissionRecord {
	stored := e.repo.seed(rec)
	if stored.ChannelName != "" && stored.MessageID != "" {
		e.messenger.seedMessage(stored.ChannelName, stored.MessageID, e.cfg.BotName, "card")
	}
	return stored
}
