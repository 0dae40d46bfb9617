package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wordchainhub/moderation-backend/internal/domain"
)

// AdminDirectDelete removes a canonical word without any pending request:
// topic links and staged changes go, audit events record the acting
// moderator as both requester and processor, affected documents are touched
// and the actor is credited. A live delete request for the word, if any, is
// swept away in the same transaction.
//
// Returns (false, nil) when the word is not in the dictionary.
func (s *Service) AdminDirectDelete(ctx context.Context, wordText string) (bool, error) {
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

	w, err := s.words.GetByText(ctx, wordText)
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

	// A stale delete request would point at a word that no longer exists.
	staleReq, err := s.pending.GetByWord(ctx, w.Text, domain.RequestTypeDelete)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("get pending delete: %w", err)
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Sweep the stale request while its row still exists: it references
		// the word with ON DELETE CASCADE, and deleting the word first would
		// make the explicit delete report zero rows.
		if staleReq != nil {
			if delErr := s.pending.Delete(txCtx, staleReq.ID); delErr != nil {
				return fmt.Errorf("remove stale delete request: %w", delErr)
			}
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
			Word:        w.Text,
			RequestType: domain.RequestTypeDelete,
			Outcome:     domain.OutcomeApproved,
			RequestedBy: &actor.ID,
			ProcessedBy: &actor.ID,
		}); evErr != nil {
			return fmt.Errorf("append moderation event: %w", evErr)
		}

		docIDs := idx.Match(w.Text, topicNames(topics))
		for _, docID := range docIDs {
			if evErr := s.events.AppendDocument(txCtx, domain.DocumentEvent{
				DocumentID: docID,
				Word:       w.Text,
				Action:     domain.RequestTypeDelete,
				Actor:      &actor.ID,
			}); evErr != nil {
				return fmt.Errorf("append document event: %w", evErr)
			}
		}
		if touchErr := s.documents.TouchLastUpdate(txCtx, docIDs); touchErr != nil {
			return fmt.Errorf("touch documents: %w", touchErr)
		}

		if incErr := s.users.IncrementContribution(txCtx, actor.ID, 1); incErr != nil {
			return fmt.Errorf("credit actor: %w", incErr)
		}

		return nil
	})
	if txErr != nil {
		return false, txErr
	}

	s.log.InfoContext(ctx, "word deleted directly",
		slog.String("word", w.Text),
		slog.String("deleted_by", actor.ID.String()),
	)

	return true, nil
}
