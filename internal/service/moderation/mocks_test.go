package moderation

import (
	"context"

	"github.com/google/uuid"

	"github.com/wordchainhub/moderation-backend/internal/domain"
)

// Hand-written function-field mocks for the engine's private interfaces.

var (
	_ wordRepo      = &wordRepoMock{}
	_ pendingRepo   = &pendingRepoMock{}
	_ topicLinkRepo = &topicLinkRepoMock{}
	_ documentRepo  = &documentRepoMock{}
	_ eventRepo     = &eventRepoMock{}
	_ userRepo      = &userRepoMock{}
	_ txManager     = &txManagerMock{}
)

type wordRepoMock struct {
	GetByTextFunc func(ctx context.Context, text string) (*domain.Word, error)
	CreateFunc    func(ctx context.Context, w *domain.Word) (int64, error)
	DeleteFunc    func(ctx context.Context, id int64) error

	CreateCalls []domain.Word
	DeleteCalls []int64
}

func (m *wordRepoMock) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	if m.GetByTextFunc == nil {
		panic("wordRepoMock.GetByTextFunc is nil")
	}
	return m.GetByTextFunc(ctx, text)
}

func (m *wordRepoMock) Create(ctx context.Context, w *domain.Word) (int64, error) {
	if m.CreateFunc == nil {
		panic("wordRepoMock.CreateFunc is nil")
	}
	m.CreateCalls = append(m.CreateCalls, *w)
	return m.CreateFunc(ctx, w)
}

func (m *wordRepoMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		panic("wordRepoMock.DeleteFunc is nil")
	}
	m.DeleteCalls = append(m.DeleteCalls, id)
	return m.DeleteFunc(ctx, id)
}

type pendingRepoMock struct {
	GetByWordFunc    func(ctx context.Context, word string, requestType domain.RequestType) (*domain.PendingRequest, error)
	ListByTypeFunc   func(ctx context.Context, requestType domain.RequestType) ([]domain.PendingRequest, error)
	StagedTopicsFunc func(ctx context.Context, requestID int64) ([]domain.StagedTopic, error)
	CreateFunc       func(ctx context.Context, req *domain.PendingRequest) (int64, error)
	StageTopicsFunc  func(ctx context.Context, requestID int64, topicIDs []int64) error
	DeleteFunc       func(ctx context.Context, id int64) error

	DeleteCalls []int64
}

func (m *pendingRepoMock) GetByWord(ctx context.Context, word string, requestType domain.RequestType) (*domain.PendingRequest, error) {
	if m.GetByWordFunc == nil {
		panic("pendingRepoMock.GetByWordFunc is nil")
	}
	return m.GetByWordFunc(ctx, word, requestType)
}

func (m *pendingRepoMock) ListByType(ctx context.Context, requestType domain.RequestType) ([]domain.PendingRequest, error) {
	if m.ListByTypeFunc == nil {
		panic("pendingRepoMock.ListByTypeFunc is nil")
	}
	return m.ListByTypeFunc(ctx, requestType)
}

func (m *pendingRepoMock) StagedTopics(ctx context.Context, requestID int64) ([]domain.StagedTopic, error) {
	if m.StagedTopicsFunc == nil {
		panic("pendingRepoMock.StagedTopicsFunc is nil")
	}
	return m.StagedTopicsFunc(ctx, requestID)
}

func (m *pendingRepoMock) Create(ctx context.Context, req *domain.PendingRequest) (int64, error) {
	if m.CreateFunc == nil {
		panic("pendingRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, req)
}

func (m *pendingRepoMock) StageTopics(ctx context.Context, requestID int64, topicIDs []int64) error {
	if m.StageTopicsFunc == nil {
		panic("pendingRepoMock.StageTopicsFunc is nil")
	}
	return m.StageTopicsFunc(ctx, requestID, topicIDs)
}

func (m *pendingRepoMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		panic("pendingRepoMock.DeleteFunc is nil")
	}
	m.DeleteCalls = append(m.DeleteCalls, id)
	return m.DeleteFunc(ctx, id)
}

type topicLinkRepoMock struct {
	TopicsByWordIDFunc         func(ctx context.Context, wordID int64) ([]domain.Topic, error)
	LinkBatchFunc              func(ctx context.Context, wordID int64, topicIDs []int64) error
	UnlinkAllFunc              func(ctx context.Context, wordID int64) error
	DeleteChangesByWordIDsFunc func(ctx context.Context, wordIDs []int64) error

	LinkBatchCalls [][]int64
	UnlinkAllCalls []int64
}

func (m *topicLinkRepoMock) TopicsByWordID(ctx context.Context, wordID int64) ([]domain.Topic, error) {
	if m.TopicsByWordIDFunc == nil {
		panic("topicLinkRepoMock.TopicsByWordIDFunc is nil")
	}
	return m.TopicsByWordIDFunc(ctx, wordID)
}

func (m *topicLinkRepoMock) LinkBatch(ctx context.Context, wordID int64, topicIDs []int64) error {
	if m.LinkBatchFunc == nil {
		panic("topicLinkRepoMock.LinkBatchFunc is nil")
	}
	m.LinkBatchCalls = append(m.LinkBatchCalls, topicIDs)
	return m.LinkBatchFunc(ctx, wordID, topicIDs)
}

func (m *topicLinkRepoMock) UnlinkAll(ctx context.Context, wordID int64) error {
	if m.UnlinkAllFunc == nil {
		panic("topicLinkRepoMock.UnlinkAllFunc is nil")
	}
	m.UnlinkAllCalls = append(m.UnlinkAllCalls, wordID)
	return m.UnlinkAllFunc(ctx, wordID)
}

func (m *topicLinkRepoMock) DeleteChangesByWordIDs(ctx context.Context, wordIDs []int64) error {
	if m.DeleteChangesByWordIDsFunc == nil {
		panic("topicLinkRepoMock.DeleteChangesByWordIDsFunc is nil")
	}
	return m.DeleteChangesByWordIDsFunc(ctx, wordIDs)
}

type documentRepoMock struct {
	ListAllFunc         func(ctx context.Context) ([]domain.Document, error)
	TouchLastUpdateFunc func(ctx context.Context, ids []int64) error

	TouchCalls [][]int64
}

func (m *documentRepoMock) ListAll(ctx context.Context) ([]domain.Document, error) {
	if m.ListAllFunc == nil {
		panic("documentRepoMock.ListAllFunc is nil")
	}
	return m.ListAllFunc(ctx)
}

func (m *documentRepoMock) TouchLastUpdate(ctx context.Context, ids []int64) error {
	if m.TouchLastUpdateFunc == nil {
		panic("documentRepoMock.TouchLastUpdateFunc is nil")
	}
	m.TouchCalls = append(m.TouchCalls, ids)
	return m.TouchLastUpdateFunc(ctx, ids)
}

type eventRepoMock struct {
	AppendModerationFunc func(ctx context.Context, ev domain.ModerationEvent) error
	AppendDocumentFunc   func(ctx context.Context, ev domain.DocumentEvent) error

	ModerationCalls []domain.ModerationEvent
	DocumentCalls   []domain.DocumentEvent
}

func (m *eventRepoMock) AppendModeration(ctx context.Context, ev domain.ModerationEvent) error {
	if m.AppendModerationFunc == nil {
		panic("eventRepoMock.AppendModerationFunc is nil")
	}
	m.ModerationCalls = append(m.ModerationCalls, ev)
	return m.AppendModerationFunc(ctx, ev)
}

func (m *eventRepoMock) AppendDocument(ctx context.Context, ev domain.DocumentEvent) error {
	if m.AppendDocumentFunc == nil {
		panic("eventRepoMock.AppendDocumentFunc is nil")
	}
	m.DocumentCalls = append(m.DocumentCalls, ev)
	return m.AppendDocumentFunc(ctx, ev)
}

type userRepoMock struct {
	IncrementContributionFunc func(ctx context.Context, id uuid.UUID, delta int) error

	IncrementCalls []uuid.UUID
}

func (m *userRepoMock) IncrementContribution(ctx context.Context, id uuid.UUID, delta int) error {
	if m.IncrementContributionFunc == nil {
		panic("userRepoMock.IncrementContributionFunc is nil")
	}
	m.IncrementCalls = append(m.IncrementCalls, id)
	return m.IncrementContributionFunc(ctx, id, delta)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc is nil")
	}
	return m.RunInTxFunc(ctx, fn)
}
