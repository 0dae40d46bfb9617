// Package word implements the canonical words collection using PostgreSQL.
package word

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/wordchainhub/moderation-backend/internal/adapter/postgres"
	"github.com/wordchainhub/moderation-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	table   = "words"
	columns = "id, word, senior_usable, added_by, added_at"
)

type row struct {
	ID           int64      `db:"id"`
	Word         string     `db:"word"`
	SeniorUsable bool       `db:"senior_usable"`
	AddedBy      *uuid.UUID `db:"added_by"`
	AddedAt      time.Time  `db:"added_at"`
}

func (r row) toDomain() domain.Word {
	return domain.Word{
		ID:           r.ID,
		Text:         r.Word,
		SeniorUsable: r.SeniorUsable,
		AddedBy:      r.AddedBy,
		AddedAt:      r.AddedAt,
	}
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByText returns the canonical word with the given text.
// Returns domain.ErrNotFound if the word does not exist.
func (r *Repo) GetByText(ctx context.Context, text string) (*domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(columns).From(table).
		Where(squirrel.Eq{"word": text}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "word", text)
	}

	w := rw.toDomain()
	return &w, nil
}

// GetByTexts returns the canonical words whose text is in texts. Words not
// present in the dictionary are simply absent from the result; order is not
// specified. Returns an empty slice (not nil) when nothing matches.
func (r *Repo) GetByTexts(ctx context.Context, texts []string) ([]domain.Word, error) {
	if len(texts) == 0 {
		return []domain.Word{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(columns).From(table).
		Where(squirrel.Eq{"word": texts}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get words by texts: %w", err)
	}

	words := make([]domain.Word, len(rows))
	for i, rw := range rows {
		words[i] = rw.toDomain()
	}

	return words, nil
}

// Create inserts a new canonical word and returns its id.
// Returns domain.ErrAlreadyExists if the text is already in the dictionary.
func (r *Repo) Create(ctx context.Context, w *domain.Word) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Insert(table).
		Columns("word", "senior_usable", "added_by").
		Values(w.Text, w.SeniorUsable, w.AddedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "word", w.Text)
	}

	return id, nil
}

// Delete removes a canonical word by id.
// Returns domain.ErrNotFound if no row was deleted.
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
		return postgres.MapError(err, "word", fmt.Sprint(id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByIDs removes the given words in one statement and returns the
// number of rows deleted. Missing ids are not an error.
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
		return 0, fmt.Errorf("delete words: %w", err)
	}

	return tag.RowsAffected(), nil
}
