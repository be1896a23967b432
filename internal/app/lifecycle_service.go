package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/trickcandle/commissionqueue/internal/config"
	"github.com/trickcandle/commissionqueue/internal/core/commission"
	"github.com/trickcandle/commissionqueue/internal/ports/primary"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
	"github.com/trickcandle/commissionqueue/internal/render"
)

// LifecycleService is the commission state machine. Every transition runs
// under the per-commission action lock: one atomic store mutation (or a
// short chain of them), followed by a channel-presence update and, for
// audited actions, an audit notification plus a status page refresh.
type LifecycleService struct {
	repo       secondary.CommissionRepository
	channels   secondary.ChannelRepository
	messenger  secondary.Messenger
	cfg        *config.Config
	routing    commission.RoutingTable
	statusPage *StatusPageService
	locks      *actionLocks
	logger     *zap.Logger
}

// NewLifecycleService creates a new LifecycleService with injected dependencies.
func NewLifecycleService(
	repo secondary.CommissionRepository,
	channels secondary.ChannelRepository,
	messenger secondary.Messenger,
	statusPage *StatusPageService,
	cfg *config.Config,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		repo:       repo,
		channels:   channels,
		messenger:  messenger,
		cfg:        cfg,
		routing:    cfg.RoutingTable(),
		statusPage: statusPage,
		locks:      newActionLocks(),
		logger:     logger,
	}
}

// HandleAction dispatches one interactive action on the commission rendered
// by messageID. Precondition failures surface as *primary.Rejection and a
// direct reply to the actor; a concurrent action on the same commission is
// denied with primary.ErrConcurrentAction. Unexpected panics are caught
// here, logged with a stack trace, and surfaced as a generic failure.
func (s *LifecycleService) HandleAction(ctx context.Context, action primary.Action, actor primary.Actor, messageID string) (out *primary.Commission, err error) {
	release, lockErr := s.locks.acquire(messageID)
	if lockErr != nil {
		s.notify(ctx, actor, primary.ErrConcurrentAction.Error())
		return nil, lockErr
	}
	defer release()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("action dispatch panicked",
				zap.Stringer("action", action),
				zap.String("message_id", messageID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			s.notify(ctx, actor, "Something went wrong handling that action. Please try again.")
			out, err = nil, fmt.Errorf("action %s failed unexpectedly", action)
		}
	}()

	rec, err := s.repo.GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	var updated *secondary.CommissionRecord
	switch action {
	case primary.ActionClaim:
		updated, err = s.claim(ctx, rec, actor)
	case primary.ActionReject:
		updated, err = s.reject(ctx, rec, actor)
	case primary.ActionAccept:
		updated, err = s.accept(ctx, rec)
	case primary.ActionShow:
		updated, err = s.setHidden(ctx, rec, false)
	case primary.ActionHide:
		updated, err = s.setHidden(ctx, rec, true)
	case primary.ActionInvoice:
		updated, err = s.invoice(ctx, rec)
	case primary.ActionPay:
		updated, err = s.pay(ctx, rec)
	case primary.ActionFinish:
		updated, err = s.finish(ctx, rec)
	default:
		err = fmt.Errorf("unknown action %v", action)
	}
	if err != nil {
		if rej, ok := primary.AsRejection(err); ok {
			s.notify(ctx, actor, rej.Reply)
		}
		return nil, err
	}

	if action.Audited() {
		s.audit(ctx, action, updated, actor)
		if err := s.statusPage.Refresh(ctx); err != nil {
			s.logger.Warn("status page refresh failed",
				zap.Int64("commission_id", updated.ID), zap.Error(err))
		}
	}

	return toPrimary(updated), nil
}

// claim assigns an open commission to the acting artist. Unless this is a
// recovery claim (a voided commission returning to its originally requested
// artist), claiming also accepts. The card moves to the artist's channel.
func (s *LifecycleService) claim(ctx context.Context, rec *secondary.CommissionRecord, actor primary.Actor) (*secondary.CommissionRecord, error) {
	claimCtx := commission.ClaimContext{
		AssignedTo:     rec.AssignedTo,
		AllowAnyArtist: rec.AllowAnyArtist,
		ArtistChoice:   rec.ArtistChoice,
		ClaimerName:    s.cfg.ArtistName(actor.MemberID),
		InVoidChannel:  rec.ChannelName == s.cfg.VoidChannel,
	}
	if result := commission.CanClaim(claimCtx); !result.Allowed {
		s.logger.Info("claim denied",
			zap.Int64("commission_id", rec.ID),
			zap.String("actor", actor.DisplayName),
			zap.String("reason", result.Reason),
		)
		return nil, &primary.Rejection{Reply: result.Reason}
	}

	updated, err := s.repo.Assign(ctx, rec.MessageID, claimCtx.ClaimerName)
	if err != nil {
		return nil, err
	}
	if !commission.IsRecoveryClaim(claimCtx) {
		updated, err = s.repo.SetAccepted(ctx, updated.MessageID, true)
		if err != nil {
			return nil, err
		}
	}
	return s.rerender(ctx, updated, rec.ChannelName, rec.MessageID)
}

// reject returns an assigned commission to the open pool and clears its
// acceptance. The card moves back to its open-pool channel.
func (s *LifecycleService) reject(ctx context.Context, rec *secondary.CommissionRecord, actor primary.Actor) (*secondary.CommissionRecord, error) {
	rejectCtx := commission.RejectContext{
		AssignedTo:         rec.AssignedTo,
		RejectorName:       s.cfg.ArtistName(actor.MemberID),
		RestrictToAssignee: s.cfg.RestrictRejectToAssignee,
	}
	if result := commission.CanReject(rejectCtx); !result.Allowed {
		return nil, &primary.Rejection{Reply: result.Reason}
	}

	updated, err := s.repo.Assign(ctx, rec.MessageID, "")
	if err != nil {
		return nil, err
	}
	updated, err = s.repo.SetAccepted(ctx, updated.MessageID, false)
	if err != nil {
		return nil, err
	}
	return s.rerender(ctx, updated, rec.ChannelName, rec.MessageID)
}

func (s *LifecycleService) accept(ctx context.Context, rec *secondary.CommissionRecord) (*secondary.CommissionRecord, error) {
	updated, err := s.repo.SetAccepted(ctx, rec.MessageID, true)
	if err != nil {
		return nil, err
	}
	s.editInPlace(ctx, updated)
	return updated, nil
}

func (s *LifecycleService) setHidden(ctx context.Context, rec *secondary.CommissionRecord, hidden bool) (*secondary.CommissionRecord, error) {
	updated, err := s.repo.SetHidden(ctx, rec.MessageID, hidden)
	if err != nil {
		return nil, err
	}
	s.editInPlace(ctx, updated)
	return updated, nil
}

func (s *LifecycleService) invoice(ctx context.Context, rec *secondary.CommissionRecord) (*secondary.CommissionRecord, error) {
	updated, err := s.repo.SetInvoiced(ctx, rec.MessageID)
	if err != nil {
		return nil, err
	}
	s.editInPlace(ctx, updated)
	return updated, nil
}

func (s *LifecycleService) pay(ctx context.Context, rec *secondary.CommissionRecord) (*secondary.CommissionRecord, error) {
	updated, err := s.repo.SetPaid(ctx, rec.MessageID)
	if err != nil {
		return nil, err
	}
	s.editInPlace(ctx, updated)
	return updated, nil
}

// finish marks the commission done and hides its card.
func (s *LifecycleService) finish(ctx context.Context, rec *secondary.CommissionRecord) (*secondary.CommissionRecord, error) {
	updated, err := s.repo.SetFinished(ctx, rec.MessageID)
	if err != nil {
		return nil, err
	}
	updated, err = s.repo.SetHidden(ctx, updated.MessageID, true)
	if err != nil {
		return nil, err
	}
	s.editInPlace(ctx, updated)
	return updated, nil
}

// Admit ingests one externally-sourced row: a no-op when the natural key
// already exists, otherwise insert, derive the assignment and visibility
// flags from the submission's free text, and render the first card.
// Returns whether a new commission was admitted.
func (s *LifecycleService) Admit(ctx context.Context, row *secondary.SubmissionRow) (bool, error) {
	key := commission.NaturalKey{Timestamp: row.Timestamp, Email: row.Email}
	release, err := s.locks.acquire(key.String())
	if err != nil {
		return false, err
	}
	defer release()

	if _, err := s.repo.GetByNaturalKey(ctx, row.Timestamp, row.Email); err == nil {
		return false, nil
	} else if !errors.Is(err, secondary.ErrNotFound) {
		return false, err
	}

	rec, err := s.repo.Insert(ctx, &row.Submission)
	if err != nil {
		return false, err
	}

	if assigned := commission.DeriveAssignment(rec.ArtistChoice); assigned != "" {
		rec, err = s.repo.AssignByNaturalKey(ctx, rec.Timestamp, rec.Email, assigned)
		if err != nil {
			return true, err
		}
	}
	rec, err = s.repo.SetAllowAnyArtist(ctx, rec.Timestamp, rec.Email, commission.DeriveAllowAnyArtist(rec.IfQueueIsFull))
	if err != nil {
		return true, err
	}
	if commission.DeriveSpecialty(row.Specialty, rec.ArtistChoice) {
		rec, err = s.repo.SetSpecialty(ctx, rec.Timestamp, rec.Email, true)
		if err != nil {
			return true, err
		}
	}

	if _, err := s.renderCard(ctx, rec, true); err != nil {
		return true, err
	}
	return true, nil
}

// Resend re-renders one commission from store state without consuming a new
// counter value. Used by the cleanup sweep after bot messages are cleared.
func (s *LifecycleService) Resend(ctx context.Context, rec *secondary.CommissionRecord) error {
	release, err := s.locks.acquire(lockKey(rec))
	if err != nil {
		return err
	}
	defer release()

	_, err = s.renderCard(ctx, rec, false)
	return err
}

// renderCard routes the commission, optionally consumes the destination
// channel's next counter value, posts the card and persists the new
// channel/message linkage.
func (s *LifecycleService) renderCard(ctx context.Context, rec *secondary.CommissionRecord, setCounter bool) (*secondary.CommissionRecord, error) {
	channel := commission.Route(rec.AssignedTo, rec.AllowAnyArtist, s.routing)

	if setCounter {
		if err := s.channels.EnsureChannel(ctx, channel); err != nil {
			return nil, err
		}
		counter, err := s.channels.IncrementCounter(ctx, channel)
		if err != nil {
			return nil, err
		}
		rec, err = s.repo.UpdateCounter(ctx, rec.Timestamp, rec.Email, counter)
		if err != nil {
			return nil, err
		}
	}

	messageID, err := s.messenger.SendMessage(ctx, channel, render.Card(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to send rendering: %w", err)
	}
	return s.repo.UpdateMessageRef(ctx, rec.Timestamp, rec.Email, channel, messageID)
}

// rerender posts the new card in the routed channel, then deletes the
// previous rendering. The store commits first; a presentation failure after
// that leaves store and display divergent until the next resend sweep and
// is logged rather than retried.
func (s *LifecycleService) rerender(ctx context.Context, rec *secondary.CommissionRecord, oldChannel, oldMessageID string) (*secondary.CommissionRecord, error) {
	updated, err := s.renderCard(ctx, rec, true)
	if err != nil {
		s.logger.Error("rendering failed after store commit, display diverges until the next resend sweep",
			zap.Int64("commission_id", rec.ID), zap.Error(err))
		return nil, err
	}

	if oldChannel != "" && oldMessageID != "" {
		if err := s.messenger.DeleteMessage(ctx, oldChannel, oldMessageID); err != nil {
			s.logger.Error("failed to delete stale rendering, duplicate card remains until the next resend sweep",
				zap.Int64("commission_id", rec.ID),
				zap.String("channel", oldChannel),
				zap.String("message_id", oldMessageID),
				zap.Error(err),
			)
		}
	}
	return updated, nil
}

// editInPlace replaces the live card's content. The store already committed
// when this runs, so a transport failure is logged, not returned.
func (s *LifecycleService) editInPlace(ctx context.Context, rec *secondary.CommissionRecord) {
	if rec.ChannelName == "" || rec.MessageID == "" {
		return
	}
	if err := s.messenger.EditMessage(ctx, rec.ChannelName, rec.MessageID, render.Card(rec)); err != nil {
		s.logger.Error("failed to edit rendering after store commit, display diverges until the next resend sweep",
			zap.Int64("commission_id", rec.ID), zap.Error(err))
	}
}

func (s *LifecycleService) audit(ctx context.Context, action primary.Action, rec *secondary.CommissionRecord, actor primary.Actor) {
	content := fmt.Sprintf("%s %s · commission #%d by %s in #%s",
		action.Emoji(), action, rec.ID, actor.DisplayName, rec.ChannelName)
	if _, err := s.messenger.SendMessage(ctx, s.cfg.AuditChannel, content); err != nil {
		s.logger.Warn("audit notification failed", zap.Error(err))
	}
}

func (s *LifecycleService) notify(ctx context.Context, actor primary.Actor, content string) {
	if err := s.messenger.NotifyUser(ctx, actor.MemberID, content); err != nil {
		s.logger.Warn("user notification failed",
			zap.String("member_id", actor.MemberID), zap.Error(err))
	}
}

func lockKey(rec *secondary.CommissionRecord) string {
	if rec.MessageID != "" {
		return rec.MessageID
	}
	return commission.NaturalKey{Timestamp: rec.Timestamp, Email: rec.Email}.String()
}

func toPrimary(rec *secondary.CommissionRecord) *primary.Commission {
	return &primary.Commission{
		ID:             rec.ID,
		Timestamp:      rec.Timestamp,
		Email:          rec.Email,
		Name:           rec.Name,
		AssignedTo:     rec.AssignedTo,
		AllowAnyArtist: rec.AllowAnyArtist,
		Specialty:      rec.Specialty,
		Accepted:       rec.Accepted,
		Hidden:         rec.Hidden,
		Invoiced:       rec.Invoiced,
		Paid:           rec.Paid,
		Finished:       rec.Finished,
		ChannelName:    rec.ChannelName,
		MessageID:      rec.MessageID,
		Counter:        rec.Counter,
	}
}

// Ensure LifecycleService implements the interface
var _ primary.CommissionActions = (*LifecycleService)(nil)
