// Package user implements the users collection using PostgreSQL. The
// moderation engine only needs contribution counters and profile reads.
package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/wordchainhub/moderation-backend/internal/adapter/postgres"
	"github.com/wordchainhub/moderation-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	table   = "users"
	columns = "id, nickname, role, contribution, month_contribution"
)

type row struct {
	ID                uuid.UUID `db:"id"`
	Nickname          string    `db:"nickname"`
	Role              string    `db:"role"`
	Contribution      int       `db:"contribution"`
	MonthContribution int       `db:"month_contribution"`
}

func (r row) toDomain() domain.User {
	return domain.User{
		ID:                r.ID,
		Nickname:          r.Nickname,
		Role:              domain.Role(r.Role),
		Contribution:      r.Contribution,
		MonthContribution: r.MonthContribution,
	}
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a user by id. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Select(columns).From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}

	u := rw.toDomain()
	return &u, nil
}

// IncrementContribution adds delta to both the all-time and monthly
// contribution counters. Unknown users are ignored (zero rows affected is
// not an error; the original adder may have left the community).
func (r *Repo) IncrementContribution(ctx context.Context, id uuid.UUID, delta int) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := qb.Update(table).
		Set("contribution", squirrel.Expr("contribution + ?", delta)).
		Set("month_contribution", squirrel.Expr("month_contribution + ?", delta)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("increment contribution: %w", err)
	}

	return nil
}
