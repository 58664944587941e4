package cache

import (
	"context"
	"time"

	"github.com/iWorld-y/search_bridge/pkg/search"
)

// NoopStore 永远未命中的空实现，即关闭缓存
type NoopStore struct{}

// Ensure NoopStore implements Store
var _ Store = (*NoopStore)(nil)

// NewNoopStore 创建空缓存
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

// Get implements Store
func (s *NoopStore) Get(ctx context.Context, key string) ([]search.Result, error) {
	return nil, ErrMiss
}

// Put implements Store
func (s *NoopStore) Put(ctx context.Context, key string, results []search.Result, ttl time.Duration) error {
	return nil
}

// Close implements Store
func (s *NoopStore) Close() error {
	return nil
}
