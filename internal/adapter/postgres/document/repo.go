// Package document implements the aggregation document collection
// (letter and topic index nodes) using PostgreSQL.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/wordchainhub/moderation-backend/internal/adapter/postgres"
	"github.com/wordchainhub/moderation-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	table   = "documents"
	columns = "id, kind, name, last_update, created_at"
)

type row struct {
	ID         int64     `db:"id"`
	Kind       string    `db:"kind"`
	Name       string    `db:"name"`
	LastUpdate time.Time `db:"last_update"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Document {
	return domain.Document{
		ID:         r.ID,
		Kind:       domain.DocumentKind(r.Kind),
		Name:       r.Name,
		LastUpdate: r.LastUpdate,
		CreatedAt:  r.CreatedAt,
	}
}

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListAll returns every document. The engine builds its (kind, name)
// lookup index from this once per operation.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(columns).From(table).
		OrderBy("kind, name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]domain.Document, len(rows))
	for i, rw := range rows {
		docs[i] = rw.toDomain()
	}

	return docs, nil
}

// TouchLastUpdate refreshes last_update to now() for the given documents.
// Unknown ids are ignored.
func (r *Repo) TouchLastUpdate(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Update(table).
		Set("last_update", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("touch documents: %w", err)
	}

	return nil
}
