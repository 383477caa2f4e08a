package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("availability not found")

// Store provides access to per-user availability templates. Templates are
// edited through the profile surface and read by the booking pipeline.
type Store interface {
	Get(ctx context.Context, userID string) (Template, error)
	Update(ctx context.Context, userID string, t Template) error
}

type pgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore creates a Store backed by the users.availability jsonb column.
func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

func (s *pgxStore) Get(ctx context.Context, userID string) (Template, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("availability").
		From("public.users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return Template{}, fmt.Errorf("build get availability query failed: %w", err)
	}

	var raw []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Template{}, ErrNotFound
		}
		return Template{}, fmt.Errorf("get availability failed: %w", err)
	}

	// A user created before the availability column gained its default has
	// an empty value; fall back to the standard template.
	if len(raw) == 0 || string(raw) == "{}" || string(raw) == "null" {
		return DefaultTemplate(), nil
	}

	var t Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return Template{}, fmt.Errorf("decode availability for user %s failed: %w", userID, err)
	}
	return t, nil
}

func (s *pgxStore) Update(ctx context.Context, userID string, t Template) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode availability failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.users").
		Set("availability", raw).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update availability query failed: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update availability failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
