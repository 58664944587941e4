package cache

import (
	"context"
	"sync"
	"time"

	"github.com/iWorld-y/search_bridge/pkg/search"
)

// entry 单个缓存条目
type entry struct {
	results   []search.Result
	createdAt time.Time
	ttl       time.Duration
}

// expired 判断条目在 now 时刻是否已过期
func (e *entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.After(e.createdAt.Add(e.ttl))
}

// MemoryStore 进程内缓存，读写锁保护，过期条目在读取时惰性删除
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	// now 可注入，测试时用于模拟时间推进
	now func() time.Time
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore 创建内存缓存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Get implements Store
func (s *MemoryStore) Get(ctx context.Context, key string) ([]search.Result, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if e.expired(s.now()) {
		// 惰性删除过期条目
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && cur == e {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, ErrMiss
	}

	// 返回副本，避免调用方修改缓存内部状态
	results := make([]search.Result, len(e.results))
	copy(results, e.results)
	return results, nil
}

// Put implements Store
func (s *MemoryStore) Put(ctx context.Context, key string, results []search.Result, ttl time.Duration) error {
	stored := make([]search.Result, len(results))
	copy(stored, results)

	s.mu.Lock()
	s.entries[key] = &entry{
		results:   stored,
		createdAt: s.now(),
		ttl:       ttl,
	}
	s.mu.Unlock()
	return nil
}

// Close implements Store
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.entries = make(map[string]*entry)
	s.mu.Unlock()
	return nil
}
