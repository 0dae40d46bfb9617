// Package eventlog implements the append-only moderation and document
// event collections using PostgreSQL.
package eventlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/wordchainhub/moderation-backend/internal/adapter/postgres"
	"github.com/wordchainhub/moderation-backend/internal/domain"
)

const (
	insertModerationSQL = `
INSERT INTO moderation_events (word, request_type, outcome, requested_by, processed_by)
VALUES ($1, $2, $3, $4, $5)`

	insertDocumentSQL = `
INSERT INTO document_events (document_id, word, action, actor)
VALUES ($1, $2, $3, $4)`
)

// Repo provides event log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new event log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// AppendModeration records one processed moderation request.
func (r *Repo) AppendModeration(ctx context.Context, ev domain.ModerationEvent) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, insertModerationSQL,
		ev.Word, ev.RequestType.String(), ev.Outcome.String(), ev.RequestedBy, ev.ProcessedBy)
	if err != nil {
		return postgres.MapError(err, "moderation_event", ev.Word)
	}

	return nil
}

// AppendModerationBatch records many processed requests in one round trip.
// All-or-nothing: the first failed insert aborts the batch.
func (r *Repo) AppendModerationBatch(ctx context.Context, evs []domain.ModerationEvent) error {
	if len(evs) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	batch := &pgx.Batch{}
	for _, ev := range evs {
		batch.Queue(insertModerationSQL,
			ev.Word, ev.RequestType.String(), ev.Outcome.String(), ev.RequestedBy, ev.ProcessedBy)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for i := range evs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("append moderation events (row %d): %w", i, err)
		}
	}

	return nil
}

// AppendDocument records one document membership change.
func (r *Repo) AppendDocument(ctx context.Context, ev domain.DocumentEvent) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, insertDocumentSQL,
		ev.DocumentID, ev.Word, ev.Action.String(), ev.Actor)
	if err != nil {
		return postgres.MapError(err, "document_event", ev.Word)
	}

	return nil
}

// AppendDocumentBatch records many document events in one round trip.
// All-or-nothing: the first failed insert aborts the batch.
func (r *Repo) AppendDocumentBatch(ctx context.Context, evs []domain.DocumentEvent) error {
	if len(evs) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	batch := &pgx.Batch{}
	for _, ev := range evs {
		batch.Queue(insertDocumentSQL,
			ev.DocumentID, ev.Word, ev.Action.String(), ev.Actor)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for i := range evs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("append document events (row %d): %w", i, err)
		}
	}

	return nil
}
