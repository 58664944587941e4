package cache

import (
	"context"
	"testing"
	"time"

	"github.com/iWorld-y/search_bridge/pkg/config"
	"github.com/iWorld-y/search_bridge/pkg/search"
)

var sample = []search.Result{
	{Title: "Python news", URL: "https://example.com", Description: "daily python headlines"},
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "python news", sample, time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "python news")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 1 || got[0].URL != sample[0].URL {
		t.Errorf("Get() = %v, want %v", got, sample)
	}
}

func TestMemoryStoreMissOnUnknownKey(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); err != ErrMiss {
		t.Errorf("Get() error = %v, want ErrMiss", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// 注入可控时钟模拟时间推进
	now := time.Now()
	s.now = func() time.Time { return now }

	if err := s.Put(ctx, "k", sample, 5*time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	now = now.Add(4 * time.Minute)
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Errorf("TTL 内 Get() error = %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, "k"); err != ErrMiss {
		t.Errorf("过期后 Get() error = %v, want ErrMiss", err)
	}

	// 惰性删除后条目不应再出现
	if _, err := s.Get(ctx, "k"); err != ErrMiss {
		t.Errorf("删除后 Get() error = %v, want ErrMiss", err)
	}
}

func TestMemoryStoreOverwriteResetsAge(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	if err := s.Put(ctx, "k", sample, 5*time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	now = now.Add(4 * time.Minute)
	replacement := []search.Result{{Title: "fresh", URL: "https://fresh.com"}}
	if err := s.Put(ctx, "k", replacement, 5*time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// 覆盖重置了创建时间，再过 4 分钟仍未过期
	now = now.Add(4 * time.Minute)
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got[0].Title != "fresh" {
		t.Errorf("Get() = %v, 覆盖写入应返回新值", got)
	}
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "k", sample, time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	got[0].Title = "mutated"

	again, _ := s.Get(ctx, "k")
	if again[0].Title != "Python news" {
		t.Errorf("缓存内部状态被调用方修改")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 200; i++ {
			_ = s.Put(ctx, "k", sample, time.Minute)
		}
		close(done)
	}()
	for i := 0; i < 200; i++ {
		if got, err := s.Get(ctx, "k"); err == nil && len(got) != 1 {
			t.Errorf("并发读取到损坏的值: %v", got)
		}
	}
	<-done
}

func TestNoopStoreAlwaysMisses(t *testing.T) {
	s := NewNoopStore()
	ctx := context.Background()

	if err := s.Put(ctx, "k", sample, time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != ErrMiss {
		t.Errorf("Get() error = %v, want ErrMiss", err)
	}
}

func TestNewStoreBackendSelection(t *testing.T) {
	if _, err := NewStore(config.CacheConfig{Backend: "memory"}); err != nil {
		t.Errorf("memory backend error = %v", err)
	}
	if _, err := NewStore(config.CacheConfig{Backend: "none"}); err != nil {
		t.Errorf("none backend error = %v", err)
	}
	if _, err := NewStore(config.CacheConfig{Backend: "bogus"}); err == nil {
		t.Errorf("未知后端应返回错误")
	}
}
