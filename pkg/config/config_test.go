package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
search:
  provider: searxng
  max_results: 5
  searxng:
    base_url: http://localhost:8888
cache:
  backend: none
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Search.Provider != "searxng" {
		t.Errorf("Provider = %q, want searxng", cfg.Search.Provider)
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("MaxResults = %d, want 5", cfg.Search.MaxResults)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("Backend = %q, want none", cfg.Cache.Backend)
	}

	// 未出现在 yaml 中的字段保留默认值
	if cfg.Search.Retry.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 默认值 3", cfg.Search.Retry.MaxAttempts)
	}
	if !cfg.Enrich.Enabled || !cfg.Rerank.Enabled {
		t.Errorf("增强与重排序默认应开启")
	}
	if cfg.Concurrency.RPM != 60 {
		t.Errorf("RPM = %d, want 默认值 60", cfg.Concurrency.RPM)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Errorf("不存在的配置文件应返回错误")
	}
}

func TestDurationHelpers(t *testing.T) {
	r := RetryConfig{BaseDelayMS: 500, JitterMaxMS: 250}
	if r.BaseDelay() != 500*time.Millisecond {
		t.Errorf("BaseDelay() = %v", r.BaseDelay())
	}
	if r.JitterMax() != 250*time.Millisecond {
		t.Errorf("JitterMax() = %v", r.JitterMax())
	}

	c := CacheConfig{TTLSeconds: 300}
	if c.TTL() != 5*time.Minute {
		t.Errorf("TTL() = %v", c.TTL())
	}
}
