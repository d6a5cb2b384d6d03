package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const localStorageTable = "local_storage"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStorage keeps the slot as one row of the local_storage table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool, verifies it and makes sure the
// local_storage table exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &PostgresStorage{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *PostgresStorage) ensureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+localStorageTable+` (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create %s table: %w", localStorageTable, err)
	}
	return nil
}

// Load reads the slot row.
func (p *PostgresStorage) Load(ctx context.Context) ([]byte, error) {
	query, args, err := loadQuery()
	if err != nil {
		return nil, err
	}

	var value []byte
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", StorageKey, err)
	}
	return value, nil
}

// Save upserts the slot row.
func (p *PostgresStorage) Save(ctx context.Context, data []byte) error {
	query, args, err := saveQuery(data)
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save %s: %w", StorageKey, err)
	}
	return nil
}

// Clear deletes the slot row.
func (p *PostgresStorage) Clear(ctx context.Context) error {
	query, args, err := clearQuery()
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear %s: %w", StorageKey, err)
	}
	return nil
}

// Close closes the connection pool.
func (p *PostgresStorage) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func loadQuery() (string, []any, error) {
	query, args, err := psql.Select("value").
		From(localStorageTable).
		Where(sq.Eq{"key": StorageKey}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build load query: %w", err)
	}
	return query, args, nil
}

func saveQuery(data []byte) (string, []any, error) {
	query, args, err := psql.Insert(localStorageTable).
		Columns("key", "value").
		Values(StorageKey, string(data)).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build save query: %w", err)
	}
	return query, args, nil
}

func clearQuery() (string, []any, error) {
	query, args, err := psql.Delete(localStorageTable).
		Where(sq.Eq{"key": StorageKey}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build clear query: %w", err)
	}
	return query, args, nil
}
