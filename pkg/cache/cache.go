// Package cache 提供归一化查询到结果集的 TTL 键值缓存。
// 后端可替换：进程内存、PostgreSQL 或永远未命中的空实现。
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/search_bridge/pkg/config"
	"github.com/iWorld-y/search_bridge/pkg/search"
)

// ErrMiss 表示没有可用的缓存条目。键不存在与条目过期都返回该错误，
// 调用方无法区分，两种情况都应回源查询
var ErrMiss = errors.New("cache: miss")

// Store 缓存后端接口。实现必须支持并发读写；
// 同一键的并发读写允许读到新旧任一值，但不允许读到损坏的值
type Store interface {
	// Get 按键读取已排序的结果集，无可用条目时返回 ErrMiss
	Get(ctx context.Context, key string) ([]search.Result, error)
	// Put 写入结果集并重置条目创建时间，覆盖同键旧值
	Put(ctx context.Context, key string, results []search.Result, ttl time.Duration) error
	// Close 释放后端资源
	Close() error
}

// NewStore 根据配置创建缓存后端
func NewStore(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "postgres":
		return NewPostgresStore(cfg.DB)
	case "none":
		return NewNoopStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
