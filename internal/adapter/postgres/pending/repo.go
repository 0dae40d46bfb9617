// Package pending implements the pending moderation request collection
// using PostgreSQL, including reads of staged topic links for add requests.
package pending

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/wordchainhub/moderation-backend/internal/adapter/postgres"
	"github.com/wordchainhub/moderation-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	table   = "pending_words"
	columns = "id, word, request_type, requested_by, requested_at, word_id"
)

type row struct {
	ID          int64      `db:"id"`
	Word        string     `db:"word"`
	RequestType string     `db:"request_type"`
	RequestedBy *uuid.UUID `db:"requested_by"`
	RequestedAt time.Time  `db:"requested_at"`
	WordID      *int64     `db:"word_id"`
}

func (r row) toDomain() domain.PendingRequest {
	return domain.PendingRequest{
		ID:          r.ID,
		Word:        r.Word,
		RequestType: domain.RequestType(r.RequestType),
		RequestedBy: r.RequestedBy,
		RequestedAt: r.RequestedAt,
		WordID:      r.WordID,
	}
}

type stagedTopicRow struct {
	RequestID int64  `db:"pending_word_id"`
	Word      string `db:"word"`
	TopicID   int64  `db:"topic_id"`
	TopicName string `db:"topic_name"`
	TopicCode string `db:"topic_code"`
}

func (r stagedTopicRow) toDomain() domain.StagedTopic {
	return domain.StagedTopic{
		RequestID: r.RequestID,
		Word:      r.Word,
		Topic: domain.Topic{
			ID:   r.TopicID,
			Name: r.TopicName,
			Code: r.TopicCode,
		},
	}
}

// Repo provides pending request persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new pending request repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByWord returns the live pending request for (word, requestType).
// At most one such row exists (unique index). Returns domain.ErrNotFound
// if no request is pending.
func (r *Repo) GetByWord(ctx context.Context, word string, requestType domain.RequestType) (*domain.PendingRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(columns).From(table).
		Where(squirrel.Eq{"word": word, "request_type": requestType.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "pending_request", word)
	}

	req := rw.toDomain()
	return &req, nil
}

// ListByType returns all pending requests of the given type, oldest first.
// Returns an empty slice (not nil) when the queue is empty.
func (r *Repo) ListByType(ctx context.Context, requestType domain.RequestType) ([]domain.PendingRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(columns).From(table).
		Where(squirrel.Eq{"request_type": requestType.String()}).
		OrderBy("requested_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}

	reqs := make([]domain.PendingRequest, len(rows))
	for i, rw := range rows {
		reqs[i] = rw.toDomain()
	}

	return reqs, nil
}

// ListDeleteByWords returns pending delete requests whose word is in words.
// Used by the bulk-delete workflow to attribute deletions to the requester.
func (r *Repo) ListDeleteByWords(ctx context.Context, words []string) ([]domain.PendingRequest, error) {
	if len(words) == 0 {
		return []domain.PendingRequest{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(columns).From(table).
		Where(squirrel.Eq{"request_type": domain.RequestTypeDelete.String(), "word": words}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list pending deletes: %w", err)
	}

	reqs := make([]domain.PendingRequest, len(rows))
	for i, rw := range rows {
		reqs[i] = rw.toDomain()
	}

	return reqs, nil
}

const stagedTopicsSQL = `
SELECT
    pt.pending_word_id, pw.word,
    t.id AS topic_id, t.name AS topic_name, t.code AS topic_code
FROM pending_word_topics pt
JOIN pending_words pw ON pw.id = pt.pending_word_id
JOIN topics t ON t.id = pt.topic_id
WHERE pt.pending_word_id = $1
ORDER BY t.name`

// StagedTopics returns the topics staged on a pending add request, with the
// topic name and code needed for classification and document matching.
func (r *Repo) StagedTopics(ctx context.Context, requestID int64) ([]domain.StagedTopic, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []stagedTopicRow
	if err := pgxscan.Select(ctx, q, &rows, stagedTopicsSQL, requestID); err != nil {
		return nil, fmt.Errorf("staged topics: %w", err)
	}

	staged := make([]domain.StagedTopic, len(rows))
	for i, rw := range rows {
		staged[i] = rw.toDomain()
	}

	return staged, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new pending request and returns its id.
// Returns domain.ErrAlreadyExists when a request for the same
// (word, request_type) pair is already live.
func (r *Repo) Create(ctx context.Context, req *domain.PendingRequest) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Insert(table).
		Columns("word", "request_type", "requested_by", "word_id").
		Values(req.Word, req.RequestType.String(), req.RequestedBy, req.WordID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "pending_request", req.Word)
	}

	return id, nil
}

// StageTopics attaches staged topic links to a pending add request.
func (r *Repo) StageTopics(ctx context.Context, requestID int64, topicIDs []int64) error {
	if len(topicIDs) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	batch := &pgx.Batch{}
	for _, topicID := range topicIDs {
		batch.Queue(
			`INSERT INTO pending_word_topics (pending_word_id, topic_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			requestID, topicID,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range topicIDs {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "pending_word_topic", fmt.Sprint(requestID))
		}
	}

	return nil
}

// Delete removes a pending request by id. Staged topic links go with it
// (ON DELETE CASCADE). Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "pending_request", fmt.Sprint(id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending_request %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByIDs removes pending requests in one statement. Missing ids are
// not an error; the count of deleted rows is returned.
func (r *Repo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Delete(table).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete pending requests: %w", err)
	}

	return tag.RowsAffected(), nil
}
