package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/trickcandle/commissionqueue/internal/config"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
	"github.com/trickcandle/commissionqueue/internal/render"
)

// StatusPageService maintains the single persistent status page message.
// The page is located by scanning the status channel's recent history for
// the known prefix and edited in place; if none exists one is created.
type StatusPageService struct {
	repo      secondary.CommissionRepository
	messenger secondary.Messenger
	cfg       *config.Config
	logger    *zap.Logger
}

// NewStatusPageService creates a new StatusPageService with injected dependencies.
func NewStatusPageService(
	repo secondary.CommissionRepository,
	messenger secondary.Messenger,
	cfg *config.Config,
	logger *zap.Logger,
) *StatusPageService {
	return &StatusPageService{
		repo:      repo,
		messenger: messenger,
		cfg:       cfg,
		logger:    logger,
	}
}

// Text renders the current status page from store state.
func (s *StatusPageService) Text(ctx context.Context) (string, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list commissions for status page: %w", err)
	}
	return render.StatusPage(records, s.cfg.VoidChannel), nil
}

// Refresh rebuilds the status page message in the status channel.
func (s *StatusPageService) Refresh(ctx context.Context) error {
	text, err := s.Text(ctx)
	if err != nil {
		return err
	}

	messages, err := s.messenger.ListRecentMessages(ctx, s.cfg.StatusChannel)
	if err != nil {
		return fmt.Errorf("failed to scan status channel: %w", err)
	}
	for _, msg := range messages {
		if msg.Author == s.cfg.BotName && strings.HasPrefix(msg.Content, render.StatusPagePrefix) {
			return s.messenger.EditMessage(ctx, s.cfg.StatusChannel, msg.ID, text)
		}
	}

	if _, err := s.messenger.SendMessage(ctx, s.cfg.StatusChannel, text); err != nil {
		return fmt.Errorf("failed to create status page: %w", err)
	}
	s.logger.Info("created new status page", zap.String("channel", s.cfg.StatusChannel))
	return nil
}
