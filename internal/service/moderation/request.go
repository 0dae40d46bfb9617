package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wordchainhub/moderation-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// RequestAdd
// ---------------------------------------------------------------------------

// RequestAdd submits a word for addition with the topics it should carry.
// Any authenticated user may submit. Returns domain.ErrAlreadyExists when
// the word is already canonical or an identical request is live.
func (s *Service) RequestAdd(ctx context.Context, wordText string, topicIDs []int64) (*domain.PendingRequest, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	wordText = strings.TrimSpace(wordText)
	if wordText == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	if _, err := s.words.GetByText(ctx, wordText); err == nil {
		return nil, fmt.Errorf("word %s is already in the dictionary: %w", wordText, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get word: %w", err)
	}

	req := &domain.PendingRequest{
		Word:        wordText,
		RequestType: domain.RequestTypeAdd,
		RequestedBy: &actor.ID,
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, createErr := s.pending.Create(txCtx, req)
		if createErr != nil {
			return createErr
		}
		req.ID = id

		if stageErr := s.pending.StageTopics(txCtx, id, topicIDs); stageErr != nil {
			return fmt.Errorf("stage topics: %w", stageErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "add request submitted",
		slog.String("word", wordText),
		slog.Int("topics", len(topicIDs)),
	)

	return req, nil
}

// ---------------------------------------------------------------------------
// RequestDelete
// ---------------------------------------------------------------------------

// RequestDelete stages a delete proposal for a canonical word. Returns
// domain.ErrNotFound when the word is not in the dictionary and
// domain.ErrAlreadyExists when a delete request is already live.
func (s *Service) RequestDelete(ctx context.Context, wordText string) (*domain.PendingRequest, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	w, err := s.words.GetByText(ctx, wordText)
	if err != nil {
		return nil, err
	}

	req := &domain.PendingRequest{
		Word:        w.Text,
		RequestType: domain.RequestTypeDelete,
		RequestedBy: &actor.ID,
		WordID:      &w.ID,
	}

	id, err := s.pending.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id

	s.log.InfoContext(ctx, "delete request submitted",
		slog.String("word", w.Text),
	)

	return req, nil
}

// ---------------------------------------------------------------------------
// CancelRequest
// ---------------------------------------------------------------------------

// CancelRequest withdraws the caller's own pending request. No audit event
// is written; the request simply disappears. Returns (false, nil) when no
// such request is pending and domain.ErrForbidden when the request belongs
// to someone else.
func (s *Service) CancelRequest(ctx context.Context, wordText string, requestType domain.RequestType) (bool, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
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

	if req.RequestedBy == nil || *req.RequestedBy != actor.ID {
		return false, fmt.Errorf("request for %s belongs to another user: %w", wordText, domain.ErrForbidden)
	}

	if err := s.pending.Delete(ctx, req.ID); err != nil {
		return false, fmt.Errorf("remove pending request: %w", err)
	}

	s.log.InfoContext(ctx, "request cancelled",
		slog.String("word", wordText),
		slog.String("request_type", requestType.String()),
	)

	return true, nil
}

// ---------------------------------------------------------------------------
// ListPending
// ---------------------------------------------------------------------------

// ListPending returns the moderation queue for one request type, oldest
// first. Moderators only.
func (s *Service) ListPending(ctx context.Context, requestType domain.RequestType) ([]domain.PendingRequest, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireModerator(actor); err != nil {
		return nil, err
	}

	if !requestType.IsValid() {
		return nil, domain.NewValidationError("request_type", "must be add or delete")
	}

	return s.pending.ListByType(ctx, requestType)
}
