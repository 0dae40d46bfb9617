// Package topiclink implements the word-topic M2M collection and the staged
// topic-change rows tied to canonical words.
package topiclink

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/wordchainhub/moderation-backend/internal/adapter/postgres"
	"github.com/wordchainhub/moderation-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// TopicWithWordID is the batch result type for TopicsByWordIDs. It embeds
// domain.Topic and adds WordID for grouping by the caller.
type TopicWithWordID struct {
	WordID int64
	domain.Topic
}

type topicRow struct {
	WordID int64  `db:"word_id"`
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Code   string `db:"code"`
}

// Repo provides word-topic link persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new topic link repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const topicsByWordIDSQL = `
SELECT wt.word_id, t.id, t.name, t.code
FROM word_topics wt
JOIN topics t ON t.id = wt.topic_id
WHERE wt.word_id = $1
ORDER BY t.name`

// TopicsByWordID returns all topics linked to a word, ordered by name.
// Returns an empty slice (not nil) when no topics are linked.
func (r *Repo) TopicsByWordID(ctx context.Context, wordID int64) ([]domain.Topic, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []topicRow
	if err := pgxscan.Select(ctx, q, &rows, topicsByWordIDSQL, wordID); err != nil {
		return nil, fmt.Errorf("topics by word_id: %w", err)
	}

	topics := make([]domain.Topic, len(rows))
	for i, rw := range rows {
		topics[i] = domain.Topic{ID: rw.ID, Name: rw.Name, Code: rw.Code}
	}

	return topics, nil
}

const topicsByWordIDsSQL = `
SELECT wt.word_id, t.id, t.name, t.code
FROM word_topics wt
JOIN topics t ON t.id = wt.topic_id
WHERE wt.word_id = ANY($1::bigint[])
ORDER BY wt.word_id, t.name`

// TopicsByWordIDs returns topics for multiple words in one query. Results
// carry WordID so the caller can group them.
func (r *Repo) TopicsByWordIDs(ctx context.Context, wordIDs []int64) ([]TopicWithWordID, error) {
	if len(wordIDs) == 0 {
		return []TopicWithWordID{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []topicRow
	if err := pgxscan.Select(ctx, q, &rows, topicsByWordIDsSQL, wordIDs); err != nil {
		return nil, fmt.Errorf("topics by word_ids: %w", err)
	}

	result := make([]TopicWithWordID, len(rows))
	for i, rw := range rows {
		result[i] = TopicWithWordID{
			WordID: rw.WordID,
			Topic:  domain.Topic{ID: rw.ID, Name: rw.Name, Code: rw.Code},
		}
	}

	return result, nil
}

// LinkBatch links a word to the given topics. Idempotent per pair
// (ON CONFLICT DO NOTHING).
func (r *Repo) LinkBatch(ctx context.Context, wordID int64, topicIDs []int64) error {
	if len(topicIDs) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	batch := &pgx.Batch{}
	for _, topicID := range topicIDs {
		batch.Queue(
			`INSERT INTO word_topics (word_id, topic_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			wordID, topicID,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range topicIDs {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "word_topic", fmt.Sprint(wordID))
		}
	}

	return nil
}

// UnlinkAll removes every topic link of a word. Zero rows is not an error.
func (r *Repo) UnlinkAll(ctx context.Context, wordID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Delete("word_topics").
		Where(squirrel.Eq{"word_id": wordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("unlink topics: %w", err)
	}

	return nil
}

// UnlinkByWordIDs removes every topic link of the given words in one
// statement. Zero rows is not an error.
func (r *Repo) UnlinkByWordIDs(ctx context.Context, wordIDs []int64) error {
	if len(wordIDs) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Delete("word_topics").
		Where(squirrel.Eq{"word_id": wordIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("unlink topics: %w", err)
	}

	return nil
}

// DeleteChangesByWordIDs removes staged topic changes for the given words,
// so a deleted word never leaves dangling change rows behind.
func (r *Repo) DeleteChangesByWordIDs(ctx context.Context, wordIDs []int64) error {
	if len(wordIDs) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Delete("word_topic_changes").
		Where(squirrel.Eq{"word_id": wordIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete topic changes: %w", err)
	}

	return nil
}
