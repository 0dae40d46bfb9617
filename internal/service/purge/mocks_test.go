package purge

import (
	"context"

	"github.com/google/uuid"

	"github.com/wordchainhub/moderation-backend/internal/adapter/postgres/topiclink"
	"github.com/wordchainhub/moderation-backend/internal/domain"
)

var (
	_ wordRepo      = &wordRepoMock{}
	_ pendingRepo   = &pendingRepoMock{}
	_ topicLinkRepo = &topicLinkRepoMock{}
	_ documentRepo  = &documentRepoMock{}
	_ eventRepo     = &eventRepoMock{}
	_ userRepo      = &userRepoMock{}
)

type wordRepoMock struct {
	GetByTextsFunc  func(ctx context.Context, texts []string) ([]domain.Word, error)
	DeleteByIDsFunc func(ctx context.Context, ids []int64) (int64, error)

	GetByTextsCalls  [][]string
	DeleteByIDsCalls [][]int64
}

func (m *wordRepoMock) GetByTexts(ctx context.Context, texts []string) ([]domain.Word, error) {
	m.GetByTextsCalls = append(m.GetByTextsCalls, texts)
	return m.GetByTextsFunc(ctx, texts)
}

func (m *wordRepoMock) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	m.DeleteByIDsCalls = append(m.DeleteByIDsCalls, ids)
	return m.DeleteByIDsFunc(ctx, ids)
}

type pendingRepoMock struct {
	ListDeleteByWordsFunc func(ctx context.Context, words []string) ([]domain.PendingRequest, error)
	DeleteByIDsFunc       func(ctx context.Context, ids []int64) (int64, error)

	DeleteByIDsCalls [][]int64
}

func (m *pendingRepoMock) ListDeleteByWords(ctx context.Context, words []string) ([]domain.PendingRequest, error) {
	return m.ListDeleteByWordsFunc(ctx, words)
}

func (m *pendingRepoMock) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	m.DeleteByIDsCalls = append(m.DeleteByIDsCalls, ids)
	return m.DeleteByIDsFunc(ctx, ids)
}

type topicLinkRepoMock struct {
	TopicsByWordIDsFunc        func(ctx context.Context, wordIDs []int64) ([]topiclink.TopicWithWordID, error)
	UnlinkByWordIDsFunc        func(ctx context.Context, wordIDs []int64) error
	DeleteChangesByWordIDsFunc func(ctx context.Context, wordIDs []int64) error

	UnlinkCalls [][]int64
}

func (m *topicLinkRepoMock) TopicsByWordIDs(ctx context.Context, wordIDs []int64) ([]topiclink.TopicWithWordID, error) {
	return m.TopicsByWordIDsFunc(ctx, wordIDs)
}

func (m *topicLinkRepoMock) UnlinkByWordIDs(ctx context.Context, wordIDs []int64) error {
	m.UnlinkCalls = append(m.UnlinkCalls, wordIDs)
	return m.UnlinkByWordIDsFunc(ctx, wordIDs)
}

func (m *topicLinkRepoMock) DeleteChangesByWordIDs(ctx context.Context, wordIDs []int64) error {
	return m.DeleteChangesByWordIDsFunc(ctx, wordIDs)
}

type documentRepoMock struct {
	ListAllFunc         func(ctx context.Context) ([]domain.Document, error)
	TouchLastUpdateFunc func(ctx context.Context, ids []int64) error

	TouchCalls [][]int64
}

func (m *documentRepoMock) ListAll(ctx context.Context) ([]domain.Document, error) {
	return m.ListAllFunc(ctx)
}

func (m *documentRepoMock) TouchLastUpdate(ctx context.Context, ids []int64) error {
	m.TouchCalls = append(m.TouchCalls, ids)
	return m.TouchLastUpdateFunc(ctx, ids)
}

type eventRepoMock struct {
	AppendModerationBatchFunc func(ctx context.Context, evs []domain.ModerationEvent) error
	AppendDocumentBatchFunc   func(ctx context.Context, evs []domain.DocumentEvent) error

	ModerationBatches [][]domain.ModerationEvent
	DocumentBatches   [][]domain.DocumentEvent
}

func (m *eventRepoMock) AppendModerationBatch(ctx context.Context, evs []domain.ModerationEvent) error {
	m.ModerationBatches = append(m.ModerationBatches, evs)
	return m.AppendModerationBatchFunc(ctx, evs)
}

func (m *eventRepoMock) AppendDocumentBatch(ctx context.Context, evs []domain.DocumentEvent) error {
	m.DocumentBatches = append(m.DocumentBatches, evs)
	return m.AppendDocumentBatchFunc(ctx, evs)
}

type userRepoMock struct {
	IncrementContributionFunc func(ctx context.Context, id uuid.UUID, delta int) error

	IncrementCalls map[uuid.UUID]int
}

func (m *userRepoMock) IncrementContribution(ctx context.Context, id uuid.UUID, delta int) error {
	if m.IncrementCalls == nil {
		m.IncrementCalls = make(map[uuid.UUID]int)
	}
	m.IncrementCalls[id] += delta
	return m.IncrementContributionFunc(ctx, id, delta)
}
