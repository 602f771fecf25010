package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const kvTable = "kv_store"

// PostgresStore - хранение коллекций в таблице kv_store (key TEXT PRIMARY KEY, value TEXT).
// Значение хранится как TEXT, а не JSONB: повреждённое содержимое должно читаться, а не падать.
type PostgresStore struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *PostgresStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.psql.Select("value").From(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("сборка запроса: %w", err)
	}

	var value string
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresStore) SetItem(ctx context.Context, key string, value string) error {
	query, args, err := s.psql.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("сборка запроса: %w", err)
	}
	_, err = s.pool.Exec(ctx, query, args...)
	return err
}

func (s *PostgresStore) RemoveItem(ctx context.Context, key string) error {
	query, args, err := s.psql.Delete(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("сборка запроса: %w", err)
	}
	_, err = s.pool.Exec(ctx, query, args...)
	return err
}
