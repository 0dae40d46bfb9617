package purge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/wordchainhub/moderation-backend/internal/domain"
	"github.com/wordchainhub/moderation-backend/pkg/chunk"
	"github.com/wordchainhub/moderation-backend/pkg/ctxutil"
)

// Workflow phases, reported in order through ProgressFunc.
const (
	PhaseParse    = "parse"
	PhaseResolve  = "resolve"
	PhaseClassify = "classify"
	PhaseAudit    = "audit"
	PhaseDelete   = "delete"
	PhaseFinalize = "finalize"
)

// Run executes the bulk-delete workflow over a raw newline-delimited word
// list. Moderators only. Words linked to a senior topic are protected and
// skipped; audit events for the remainder are written all-or-nothing before
// any deletion; deletes then run in chunks, and a failed chunk aborts the
// rest. Each deleted word credits exactly one contribution point, to the
// pending delete's author if one exists, else the word's original adder,
// else the acting moderator.
func (s *Service) Run(ctx context.Context, input string, progress ProgressFunc) (*Result, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.Role.CanModerate() {
		return nil, fmt.Errorf("role %s may not bulk-delete: %w", actor.Role, domain.ErrForbidden)
	}

	if !s.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrBusy
	}
	defer s.busy.Store(false)

	result := &Result{}
	report := func(phase string, percent int) {
		result.Phases = append(result.Phases, phase)
		if progress != nil {
			progress(phase, percent)
		}
	}

	// Phase 1: parse the upload into distinct non-empty words.
	report(PhaseParse, 5)
	requested := parseWordList(input)
	result.Requested = len(requested)
	if len(requested) == 0 {
		report(PhaseFinalize, 100)
		return result, nil
	}

	// Phase 2: resolve canonical words, pending delete authors and the
	// document index.
	report(PhaseResolve, 20)

	docs, err := s.documents.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	idx := domain.BuildDocumentIndex(docs)

	pendingDeletes, err := s.pending.ListDeleteByWords(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("list pending deletes: %w", err)
	}
	pendingByWord := make(map[string]domain.PendingRequest, len(pendingDeletes))
	for _, req := range pendingDeletes {
		pendingByWord[req.Word] = req
	}

	var found []domain.Word
	for _, part := range chunk.Slice(requested, s.cfg.ReadChunkSize) {
		words, readErr := s.words.GetByTexts(ctx, part)
		if readErr != nil {
			return nil, fmt.Errorf("resolve words: %w", readErr)
		}
		found = append(found, words...)
	}

	foundByText := make(map[string]domain.Word, len(found))
	for _, w := range found {
		foundByText[w.Text] = w
	}
	for _, text := range requested {
		if _, ok := foundByText[text]; !ok {
			result.Missing = append(result.Missing, text)
		}
	}

	// Phase 3: load topic links and split protected words out.
	report(PhaseClassify, 40)

	wordIDs := make([]int64, 0, len(found))
	for _, w := range found {
		wordIDs = append(wordIDs, w.ID)
	}

	topicsByWordID := make(map[int64][]domain.Topic)
	for _, part := range chunk.Slice(wordIDs, s.cfg.ReadChunkSize) {
		links, linkErr := s.topics.TopicsByWordIDs(ctx, part)
		if linkErr != nil {
			return nil, fmt.Errorf("resolve topics: %w", linkErr)
		}
		for _, l := range links {
			topicsByWordID[l.WordID] = append(topicsByWordID[l.WordID], l.Topic)
		}
	}

	var deletable []domain.Word
	for _, w := range found {
		if isProtected(topicsByWordID[w.ID]) {
			result.Protected = append(result.Protected, w.Text)
			continue
		}
		deletable = append(deletable, w)
	}

	if len(deletable) == 0 {
		report(PhaseFinalize, 100)
		return result, nil
	}

	// Phase 4: audit events for every word about to go, all-or-nothing.
	report(PhaseAudit, 55)

	var (
		modEvents   []domain.ModerationEvent
		docEvents   []domain.DocumentEvent
		docIDSet    = make(map[int64]struct{})
		creditCount = make(map[uuid.UUID]int)
	)
	for _, w := range deletable {
		credited := attributeDeletion(w, pendingByWord, actor.ID)
		creditCount[credited]++

		modEvents = append(modEvents, domain.ModerationEvent{
			Word:        w.Text,
			RequestType: domain.RequestTypeDelete,
			Outcome:     domain.OutcomeApproved,
			RequestedBy: &credited,
			ProcessedBy: &actor.ID,
		})

		names := make([]string, 0, len(topicsByWordID[w.ID]))
		for _, t := range topicsByWordID[w.ID] {
			names = append(names, t.Name)
		}
		for _, docID := range idx.Match(w.Text, names) {
			docIDSet[docID] = struct{}{}
			docEvents = append(docEvents, domain.DocumentEvent{
				DocumentID: docID,
				Word:       w.Text,
				Action:     domain.RequestTypeDelete,
				Actor:      &credited,
			})
		}
	}

	if err := s.events.AppendModerationBatch(ctx, modEvents); err != nil {
		return nil, fmt.Errorf("append moderation events: %w", err)
	}
	if err := s.events.AppendDocumentBatch(ctx, docEvents); err != nil {
		return nil, fmt.Errorf("append document events: %w", err)
	}

	// Phase 5: delete links, staged changes, pending rows and the words
	// themselves, chunked. A failed chunk aborts the remainder; events for
	// not-yet-deleted words then stand ahead of the data, which the next
	// run converges.
	report(PhaseDelete, 75)

	deletableIDs := make([]int64, len(deletable))
	for i, w := range deletable {
		deletableIDs[i] = w.ID
	}

	var pendingIDs []int64
	for _, w := range deletable {
		if req, ok := pendingByWord[w.Text]; ok {
			pendingIDs = append(pendingIDs, req.ID)
		}
	}

	for _, part := range chunk.Slice(deletableIDs, s.cfg.DeleteChunkSize) {
		if err := s.topics.UnlinkByWordIDs(ctx, part); err != nil {
			return nil, fmt.Errorf("unlink topics: %w", err)
		}
		if err := s.topics.DeleteChangesByWordIDs(ctx, part); err != nil {
			return nil, fmt.Errorf("clear staged changes: %w", err)
		}
		n, delErr := s.words.DeleteByIDs(ctx, part)
		if delErr != nil {
			return nil, fmt.Errorf("delete words: %w", delErr)
		}
		result.Deleted += int(n)
	}

	if _, err := s.pending.DeleteByIDs(ctx, pendingIDs); err != nil {
		return nil, fmt.Errorf("delete pending requests: %w", err)
	}

	// Phase 6: touch affected documents and credit contributions.
	report(PhaseFinalize, 95)

	docIDs := make([]int64, 0, len(docIDSet))
	for id := range docIDSet {
		docIDs = append(docIDs, id)
	}
	if err := s.documents.TouchLastUpdate(ctx, docIDs); err != nil {
		return nil, fmt.Errorf("touch documents: %w", err)
	}

	for userID, n := range creditCount {
		if err := s.users.IncrementContribution(ctx, userID, n); err != nil {
			return nil, fmt.Errorf("credit contributions: %w", err)
		}
	}

	s.log.InfoContext(ctx, "bulk delete finished",
		slog.Int("requested", result.Requested),
		slog.Int("deleted", result.Deleted),
		slog.Int("protected", len(result.Protected)),
		slog.Int("missing", len(result.Missing)),
	)

	return result, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// parseWordList splits a raw upload into distinct trimmed words, dropping
// blanks and carriage returns, preserving first-seen order.
func parseWordList(input string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, line := range strings.Split(input, "\n") {
		w := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// isProtected reports whether any linked topic is a senior topic.
func isProtected(topics []domain.Topic) bool {
	for _, t := range topics {
		if domain.IsSeniorTopicCode(t.Code) {
			return true
		}
	}
	return false
}

// attributeDeletion picks who gets the contribution point for a deleted
// word: pending delete author first, then the word's original adder, then
// the acting moderator.
func attributeDeletion(w domain.Word, pendingByWord map[string]domain.PendingRequest, actorID uuid.UUID) uuid.UUID {
	if req, ok := pendingByWord[w.Text]; ok && req.RequestedBy != nil {
		return *req.RequestedBy
	}
	if w.AddedBy != nil {
		return *w.AddedBy
	}
	return actorID
}
