package database

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// KVRepository stores named JSON blobs in Postgres.
// It satisfies store.KV.
type KVRepository struct {
	db *DB
}

func NewKVRepository(db *DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get returns the raw JSON for key, reporting false when the key was never written
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := selectValueQuery(key)
	if err != nil {
		return nil, false, err
	}

	var value string
	err = r.db.Pool.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return []byte(value), true, nil
}

// Set inserts or replaces the value for key
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := upsertValueQuery(key, value)
	if err != nil {
		return err
	}

	if _, err := r.db.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

func selectValueQuery(key string) (string, []interface{}, error) {
	query, args, err := psql.
		Select("value::text").
		From("kv_store").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build select query: %w", err)
	}
	return query, args, nil
}

func upsertValueQuery(key string, value []byte) (string, []interface{}, error) {
	query, args, err := psql.
		Insert("kv_store").
		Columns("key", "value", "updated_at").
		Values(key, sq.Expr("?::jsonb", string(value)), sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build upsert query: %w", err)
	}
	return query, args, nil
}
