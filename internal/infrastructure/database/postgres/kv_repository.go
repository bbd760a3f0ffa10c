package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wichananm65/profile-registry/internal/domain/repository"
)

const (
	createTableQuery = `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			"updatedAt" TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	getValueQuery    = `SELECT value FROM kv_store WHERE key = $1`
	upsertValueQuery = `
		INSERT INTO kv_store (key, value, "updatedAt")
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			"updatedAt" = EXCLUDED."updatedAt"
	`
	deleteValueQuery = `DELETE FROM kv_store WHERE key = $1`
)

// KeyValueRepository is a PostgreSQL implementation of KeyValueRepository
// backed by a single kv_store table.
type KeyValueRepository struct {
	db *sql.DB
}

var _ repository.KeyValueRepository = (*KeyValueRepository)(nil)

func NewKeyValueRepository(db *sql.DB) *KeyValueRepository {
	return &KeyValueRepository{db: db}
}

// Open connects through the pgx stdlib driver and ensures the table exists.
func Open(ctx context.Context, databaseURL string) (*KeyValueRepository, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	repo := NewKeyValueRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *KeyValueRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

func (r *KeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, getValueQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *KeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertValueQuery, key, value); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (r *KeyValueRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, deleteValueQuery, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrKeyNotFound
	}
	return nil
}

func (r *KeyValueRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
