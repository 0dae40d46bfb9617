package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wordchainhub/moderation-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// ApproveAdd
// ---------------------------------------------------------------------------

// ApproveAdd promotes a pending add request into a canonical word: the word
// is created with its senior-mode usability classified from the staged
// topic codes, topic links materialize, audit events are appended, matching
// letter/topic documents are touched and the requester is credited. All
// writes happen in one transaction.
//
// Returns (false, nil) when no add request is pending for the word.
func (s *Service) ApproveAdd(ctx context.Context, wordText string) (bool, error) {
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

	req, err := s.pending.GetByWord(ctx, wordText, domain.RequestTypeAdd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get pending add: %w", err)
	}

	staged, err := s.pending.StagedTopics(ctx, req.ID)
	if err != nil {
		return false, fmt.Errorf("staged topics: %w", err)
	}
	topics := stagedToTopics(staged)

	docs, err := s.documents.ListAll(ctx)
	if err != nil {
		return false, fmt.Errorf("list documents: %w", err)
	}
	idx := domain.BuildDocumentIndex(docs)

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		wordID, createErr := s.words.Create(txCtx, &domain.Word{
			Text:         req.Word,
			SeniorUsable: s.classify(topicCodes(topics)),
			AddedBy:      req.RequestedBy,
		})
		if createErr != nil {
			return fmt.Errorf("create word: %w", createErr)
		}

		if linkErr := s.topics.LinkBatch(txCtx, wordID, topicIDs(topics)); linkErr != nil {
			return fmt.Errorf("link topics: %w", linkErr)
		}

		if evErr := s.events.AppendModeration(txCtx, domain.ModerationEvent{
			Word:        req.Word,
			RequestType: domain.RequestTypeAdd,
			Outcome:     domain.OutcomeApproved,
			RequestedBy: req.RequestedBy,
			ProcessedBy: &actor.ID,
		}); evErr != nil {
			return fmt.Errorf("append moderation event: %w", evErr)
		}

		docIDs := idx.Match(req.Word, topicNames(topics))
		for _, docID := range docIDs {
			if evErr := s.events.AppendDocument(txCtx, domain.DocumentEvent{
				DocumentID: docID,
				Word:       req.Word,
				Action:     domain.RequestTypeAdd,
				Actor:      req.RequestedBy,
			}); evErr != nil {
				return fmt.Errorf("append document event: %w", evErr)
			}
		}
		if touchErr := s.documents.TouchLastUpdate(txCtx, docIDs); touchErr != nil {
			return fmt.Errorf("touch documents: %w", touchErr)
		}

		if req.RequestedBy != nil {
			if incErr := s.users.IncrementContribution(txCtx, *req.RequestedBy, 1); incErr != nil {
				return fmt.Errorf("credit requester: %w", incErr)
			}
		}

		if delErr := s.pending.Delete(txCtx, req.ID); delErr != nil {
			return fmt.Errorf("remove pending request: %w", delErr)
		}

		return nil
	})
	if txErr != nil {
		return false, txErr
	}

	s.log.InfoContext(ctx, "add request approved",
		slog.String("word", req.Word),
		slog.String("approved_by", actor.ID.String()),
	)

	return true, nil
}

// ---------------------------------------------------------------------------
// ApproveDelete
// ---------------------------------------------------------------------------

// ApproveDelete executes a pending delete request: the canonical word, its
// topic links and staged topic changes are removed, audit events are
// appended, affected documents are touched and the requester is credited.
// All writes happen in one transaction.
//
// Returns (false, nil) when no delete request is pending for the word, or
// when the canonical word has already disappeared.
func (s *Service) ApproveDelete(ctx context.Context, wordText string) (bool, error) {
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

	req, err := s.pending.GetByWord(ctx, wordText, domain.RequestTypeDelete)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get pending delete: %w", err)
	}

	w, err := s.words.GetByText(ctx, req.Word)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get word: %w", err)
	}

	topics, err := s.topics.TopicsByWordID(ctx, w.ID)
	if err != nil {
		return false, fmt.Errorf("word topics: %w", err)
	}

	docs, err := s.documents.ListAll(ctx)
	if err != nil {
		return false, fmt.Errorf("list documents: %w", err)
	}
	idx := domain.BuildDocumentIndex(docs)

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// The pending row references the word with ON DELETE CASCADE, so it
		// must go first; deleting the word first would cascade it away and
		// make the explicit delete report zero rows.
		if delErr := s.pending.Delete(txCtx, req.ID); delErr != nil {
			return fmt.Errorf("remove pending request: %w", delErr)
		}

		if unlinkErr := s.topics.UnlinkAll(txCtx, w.ID); unlinkErr != nil {
			return fmt.Errorf("unlink topics: %w", unlinkErr)
		}
		if chgErr := s.topics.DeleteChangesByWordIDs(txCtx, []int64{w.ID}); chgErr != nil {
			return fmt.Errorf("clear staged changes: %w", chgErr)
		}
		if delErr := s.words.Delete(txCtx, w.ID); delErr != nil {
			return fmt.Errorf("delete word: %w", delErr)
		}

		if evErr := s.events.AppendModeration(txCtx, domain.ModerationEvent{
			Word:        req.Word,
			RequestType: domain.RequestTypeDelete,
			Outcome:     domain.OutcomeApproved,
			RequestedBy: req.RequestedBy,
			ProcessedBy: &actor.ID,
		}); evErr != nil {
			return fmt.Errorf("append moderation event: %w", evErr)
		}

		docIDs := idx.Match(req.Word, topicNames(topics))
		for _, docID := range docIDs {
			if evErr := s.events.AppendDocument(txCtx, domain.DocumentEvent{
				DocumentID: docID,
				Word:       req.Word,
				Action:     domain.RequestTypeDelete,
				Actor:      req.RequestedBy,
			}); evErr != nil {
				return fmt.Errorf("append document event: %w", evErr)
			}
		}
		if touchErr := s.documents.TouchLastUpdate(txCtx, docIDs); touchErr != nil {
			return fmt.Errorf("touch documents: %w", touchErr)
		}

		if req.RequestedBy != nil {
			if incErr := s.users.IncrementContribution(txCtx, *req.RequestedBy, 1); incErr != nil {
				return fmt.Errorf("credit requester: %w", incErr)
			}
		}

		return nil
	})
	if txErr != nil {
		return false, txErr
	}

	s.log.InfoContext(ctx, "delete request approved",
		slog.String("word", req.Word),
		slog.String("approved_by", actor.ID.String()),
	)

	return true, nil
}
