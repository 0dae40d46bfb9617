// Package purge implements the admin bulk-delete workflow: an uploaded
// newline-delimited word list is resolved against the dictionary, words on
// protected (senior) topics are excluded, audit events are written
// all-or-nothing, and the remaining words are deleted in chunks with
// contribution credited per word.
package purge

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/wordchainhub/moderation-backend/internal/adapter/postgres/topiclink"
	"github.com/wordchainhub/moderation-backend/internal/config"
	"github.com/wordchainhub/moderation-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByTexts(ctx context.Context, texts []string) ([]domain.Word, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type pendingRepo interface {
	ListDeleteByWords(ctx context.Context, words []string) ([]domain.PendingRequest, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type topicLinkRepo interface {
	TopicsByWordIDs(ctx context.Context, wordIDs []int64) ([]topiclink.TopicWithWordID, error)
	UnlinkByWordIDs(ctx context.Context, wordIDs []int64) error
	DeleteChangesByWordIDs(ctx context.Context, wordIDs []int64) error
}

type documentRepo interface {
	ListAll(ctx context.Context) ([]domain.Document, error)
	TouchLastUpdate(ctx context.Context, ids []int64) error
}

type eventRepo interface {
	AppendModerationBatch(ctx context.Context, evs []domain.ModerationEvent) error
	AppendDocumentBatch(ctx context.Context, evs []domain.DocumentEvent) error
}

type userRepo interface {
	IncrementContribution(ctx context.Context, id uuid.UUID, delta int) error
}

// ProgressFunc receives named workflow phases with a rough percentage.
// A nil ProgressFunc is valid.
type ProgressFunc func(phase string, percent int)

// Result summarizes one bulk-delete run.
type Result struct {
	// Requested is the number of distinct words parsed from the upload.
	Requested int
	// Deleted is the number of canonical words actually removed.
	Deleted int
	// Protected lists words excluded because a linked topic is a senior
	// topic (fully numeric code).
	Protected []string
	// Missing lists words that were not in the dictionary.
	Missing []string
	// Phases is the trail of progress phases, in order.
	Phases []string
}

// Service implements the bulk-delete workflow. One run at a time per
// instance; concurrent runs are rejected with domain.ErrBusy.
type Service struct {
	log       *slog.Logger
	words     wordRepo
	pending   pendingRepo
	topics    topicLinkRepo
	documents documentRepo
	events    eventRepo
	users     userRepo
	cfg       config.ModerationConfig

	busy atomic.Bool
}

// NewService creates a new bulk-delete service.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	pending pendingRepo,
	topics topicLinkRepo,
	documents documentRepo,
	events eventRepo,
	users userRepo,
	cfg config.ModerationConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "purge"),
		words:     words,
		pending:   pending,
		topics:    topics,
		documents: documents,
		events:    events,
		users:     users,
		cfg:       cfg,
	}
}
