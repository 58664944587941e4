package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/search_bridge/pkg/config"
	"github.com/iWorld-y/search_bridge/pkg/search"
)

// PostgresStore 基于 PostgreSQL 的缓存后端，供多个进程共享缓存时使用
type PostgresStore struct {
	db *sql.DB
}

// Ensure PostgresStore implements Store
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore 创建 PostgreSQL 缓存后端并初始化表结构
func NewPostgresStore(cfg config.DBConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS search_cache (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ttl_seconds INTEGER NOT NULL
	)`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query %s: %w", query, err)
	}
	return nil
}

// Get implements Store
func (s *PostgresStore) Get(ctx context.Context, key string) ([]search.Result, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM search_cache
		WHERE cache_key = $1
		  AND created_at + ttl_seconds * INTERVAL '1 second' > CURRENT_TIMESTAMP`,
		key).Scan(&payload)
	if err == sql.ErrNoRows {
		// 顺手清掉已过期的行
		_, _ = s.db.ExecContext(ctx, `
			DELETE FROM search_cache
			WHERE cache_key = $1
			  AND created_at + ttl_seconds * INTERVAL '1 second' <= CURRENT_TIMESTAMP`, key)
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	var results []search.Result
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, fmt.Errorf("failed to decode cache payload: %w", err)
	}
	return results, nil
}

// Put implements Store
func (s *PostgresStore) Put(ctx context.Context, key string, results []search.Result, ttl time.Duration) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode cache payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO search_cache (cache_key, payload, created_at, ttl_seconds)
		VALUES ($1, $2, CURRENT_TIMESTAMP, $3)
		ON CONFLICT (cache_key) DO UPDATE
		SET payload = EXCLUDED.payload,
		    created_at = EXCLUDED.created_at,
		    ttl_seconds = EXCLUDED.ttl_seconds`,
		key, string(payload), int(ttl.Seconds()))
	if err != nil {
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}
	return nil
}

// Close implements Store
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
