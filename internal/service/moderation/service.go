// Package moderation implements the dictionary word lifecycle engine: it
// drives pending add/delete requests through approval, rejection,
// cancellation and direct deletion while keeping the canonical words, topic
// links, aggregation documents, audit events and contribution counters
// consistent with each other.
package moderation

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/wordchainhub/moderation-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByText(ctx context.Context, text string) (*domain.Word, error)
	Create(ctx context.Context, w *domain.Word) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type pendingRepo interface {
	GetByWord(ctx context.Context, word string, requestType domain.RequestType) (*domain.PendingRequest, error)
	ListByType(ctx context.Context, requestType domain.RequestType) ([]domain.PendingRequest, error)
	StagedTopics(ctx context.Context, requestID int64) ([]domain.StagedTopic, error)
	Create(ctx context.Context, req *domain.PendingRequest) (int64, error)
	StageTopics(ctx context.Context, requestID int64, topicIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type topicLinkRepo interface {
	TopicsByWordID(ctx context.Context, wordID int64) ([]domain.Topic, error)
	LinkBatch(ctx context.Context, wordID int64, topicIDs []int64) error
	UnlinkAll(ctx context.Context, wordID int64) error
	DeleteChangesByWordIDs(ctx context.Context, wordIDs []int64) error
}

type documentRepo interface {
	ListAll(ctx context.Context) ([]domain.Document, error)
	TouchLastUpdate(ctx context.Context, ids []int64) error
}

type eventRepo interface {
	AppendModeration(ctx context.Context, ev domain.ModerationEvent) error
	AppendDocument(ctx context.Context, ev domain.DocumentEvent) error
}

type userRepo interface {
	IncrementContribution(ctx context.Context, id uuid.UUID, delta int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Classifier decides whether a word with the given topic codes may be used
// in the restricted senior game mode. Supplied externally; the engine never
// inspects codes itself.
type Classifier func(topicCodes []string) bool

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the moderation engine. One operation runs at a time
// per instance; concurrent calls are rejected with domain.ErrBusy.
type Service struct {
	log       *slog.Logger
	words     wordRepo
	pending   pendingRepo
	topics    topicLinkRepo
	documents documentRepo
	events    eventRepo
	users     userRepo
	tx        txManager
	classify  Classifier

	busy atomic.Bool
}

// NewService creates a new moderation engine. A nil classifier falls back
// to domain.SeniorUsable.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	pending pendingRepo,
	topics topicLinkRepo,
	documents documentRepo,
	events eventRepo,
	users userRepo,
	tx txManager,
	classify Classifier,
) *Service {
	if classify == nil {
		classify = domain.SeniorUsable
	}
	return &Service{
		log:       logger.With("service", "moderation"),
		words:     words,
		pending:   pending,
		topics:    topics,
		documents: documents,
		events:    events,
		users:     users,
		tx:        tx,
		classify:  classify,
	}
}

// acquire claims the engine for one operation. Callers must release() on
// success.
func (s *Service) acquire() error {
	if !s.busy.CompareAndSwap(false, true) {
		return domain.ErrBusy
	}
	return nil
}

func (s *Service) release() {
	s.busy.Store(false)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func topicNames(topics []domain.Topic) []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

func topicCodes(topics []domain.Topic) []string {
	codes := make([]string, len(topics))
	for i, t := range topics {
		codes[i] = t.Code
	}
	return codes
}

func topicIDs(topics []domain.Topic) []int64 {
	ids := make([]int64, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return ids
}

func stagedToTopics(staged []domain.StagedTopic) []domain.Topic {
	topics := make([]domain.Topic, len(staged))
	for i, st := range staged {
		topics[i] = st.Topic
	}
	return topics
}
