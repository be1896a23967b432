package app

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trickcandle/commissionqueue/internal/config"
	"github.com/trickcandle/commissionqueue/internal/ports/primary"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// CleanupService rebuilds channel contents from store state: it deletes
// every bot-authored message and re-sends the stored commissions. This is
// the reconciliation path for presentation inconsistencies left behind by
// failed transitions.
type CleanupService struct {
	repo       secondary.CommissionRepository
	messenger  secondary.Messenger
	lifecycle  *LifecycleService
	statusPage *StatusPageService
	cfg        *config.Config
	logger     *zap.Logger
}

// NewCleanupService creates a new CleanupService with injected dependencies.
func NewCleanupService(
	repo secondary.CommissionRepository,
	messenger secondary.Messenger,
	lifecycle *LifecycleService,
	statusPage *StatusPageService,
	cfg *config.Config,
	logger *zap.Logger,
) *CleanupService {
	return &CleanupService{
		repo:       repo,
		messenger:  messenger,
		lifecycle:  lifecycle,
		statusPage: statusPage,
		cfg:        cfg,
		logger:     logger,
	}
}

// CleanupAndResend sweeps the managed channels (or just channel, when
// non-empty) and re-sends the stored commissions, optionally in randomized
// order. Channels are independent, so the sweep runs them concurrently;
// per-commission serialization still applies to each resend.
func (s *CleanupService) CleanupAndResend(ctx context.Context, channel string, shuffle bool) error {
	channels := s.cfg.ManagedChannels()
	if channel != "" {
		channels = []string{channel}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range channels {
		name := name
		g.Go(func() error {
			return s.sweepChannel(gctx, name)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var (
		records []*secondary.CommissionRecord
		err     error
	)
	if channel == "" {
		records, err = s.repo.ListAll(ctx)
	} else {
		records, err = s.repo.ListByChannel(ctx, channel)
	}
	if err != nil {
		return fmt.Errorf("failed to list commissions for resend: %w", err)
	}

	if shuffle {
		rand.Shuffle(len(records), func(i, j int) {
			records[i], records[j] = records[j], records[i]
		})
	}

	for _, rec := range records {
		if err := s.lifecycle.Resend(ctx, rec); err != nil {
			s.logger.Error("failed to resend commission",
				zap.Int64("commission_id", rec.ID), zap.Error(err))
		}
	}

	return s.statusPage.Refresh(ctx)
}

// sweepChannel deletes every bot-authored message in one channel.
func (s *CleanupService) sweepChannel(ctx context.Context, channelName string) error {
	messages, err := s.messenger.ListRecentMessages(ctx, channelName)
	if err != nil {
		return fmt.Errorf("failed to list messages in %s: %w", channelName, err)
	}
	for _, msg := range messages {
		if msg.Author != s.cfg.BotName {
			continue
		}
		if err := s.messenger.DeleteMessage(ctx, channelName, msg.ID); err != nil {
			s.logger.Warn("failed to delete bot message during sweep",
				zap.String("channel", channelName),
				zap.String("message_id", msg.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// StatusPageText renders the current status page without touching chat.
func (s *CleanupService) StatusPageText(ctx context.Context) (string, error) {
	return s.statusPage.Text(ctx)
}

// RefreshStatusPage rebuilds the persistent status page message.
func (s *CleanupService) RefreshStatusPage(ctx context.Context) error {
	return s.statusPage.Refresh(ctx)
}

// Ensure CleanupService implements the interface
var _ primary.MaintenanceService = (*CleanupService)(nil)
