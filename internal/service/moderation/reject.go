package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wordchainhub/moderation-backend/internal/domain"
)

// RejectAdd declines a pending add request. The only writes are the audit
// event and the removal of the request; the dictionary is untouched and
// nobody is credited.
//
// Returns (false, nil) when no add request is pending for the word.
func (s *Service) RejectAdd(ctx context.Context, wordText string) (bool, error) {
	return s.reject(ctx, wordText, domain.RequestTypeAdd)
}

// RejectDelete declines a pending delete request; the canonical word stays.
//
// Returns (false, nil) when no delete request is pending for the word.
func (s *Service) RejectDelete(ctx context.Context, wordText string) (bool, error) {
	return s.reject(ctx, wordText, domain.RequestTypeDelete)
}

func (s *Service) reject(ctx context.Context, wordText string, requestType domain.RequestType) (bool, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return false, err
	}
	if err := requireModerator(actor); err != nil {
		return false, err
	}
	if err := s.acquire(); err != nil {
		return false, err
	}
	defer s.release()

	req, err := s.pending.GetByWord(ctx, wordText, requestType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get pending %s: %w", requestType, err)
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if evErr := s.events.AppendModeration(txCtx, domain.ModerationEvent{
			Word:        req.Word,
			RequestType: requestType,
			Outcome:     domain.OutcomeRejected,
			RequestedBy: req.RequestedBy,
			ProcessedBy: &actor.ID,
		}); evErr != nil {
			return fmt.Errorf("append moderation event: %w", evErr)
		}

		if delErr := s.pending.Delete(txCtx, req.ID); delErr != nil {
			return fmt.Errorf("remove pending request: %w", delErr)
		}

		return nil
	})
	if txErr != nil {
		return false, txErr
	}

	s.log.InfoContext(ctx, "request rejected",
		slog.String("word", req.Word),
		slog.String("request_type", requestType.String()),
		slog.String("rejected_by", actor.ID.String()),
	)

	return true, nil
}
