package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/search_bridge/internal/conf"
	"github.com/iWorld-y/search_bridge/pkg/bridge"
	"github.com/iWorld-y/search_bridge/pkg/cache"
	"github.com/iWorld-y/search_bridge/pkg/config"
	sbLogger "github.com/iWorld-y/search_bridge/pkg/logger"
)

// NewSearchBridge 初始化检索流水线及其缓存后端
func NewSearchBridge(c *conf.Bridge, logger log.Logger) (*bridge.Bridge, func(), error) {
	cfg := toConfig(c)

	// 初始化流水线自身的日志
	if err := sbLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init bridge logger: %v", err)
		_ = sbLogger.InitLogger("info", "") // 降级处理
	}

	// 初始化缓存后端，进程级状态，随服务生命周期创建与关闭
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init cache store: %v", err)
		return nil, nil, err
	}

	b, err := bridge.New(cfg, store)
	if err != nil {
		store.Close()
		log.NewHelper(logger).Errorf("Failed to init bridge: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up search bridge")
		store.Close()
	}

	return b, cleanup, nil
}

// toConfig 将 internal/conf.Bridge 转换为 pkg/config.Config，
// 未出现的字段保持默认值
func toConfig(c *conf.Bridge) *config.Config {
	cfg := config.Default()
	if c == nil {
		return &cfg
	}

	if c.Search != nil {
		if c.Search.Provider != "" {
			cfg.Search.Provider = c.Search.Provider
		}
		if c.Search.MaxResults > 0 {
			cfg.Search.MaxResults = int(c.Search.MaxResults)
		}
		if c.Search.Timeout > 0 {
			cfg.Search.Timeout = int(c.Search.Timeout)
		}
		cfg.Search.FetchContent = c.Search.FetchContent
		if c.Search.Retry != nil {
			cfg.Search.Retry = config.RetryConfig{
				MaxAttempts: int(c.Search.Retry.MaxAttempts),
				BaseDelayMS: int(c.Search.Retry.BaseDelayMs),
				JitterMaxMS: int(c.Search.Retry.JitterMaxMs),
			}
		}
		if c.Search.Brave != nil {
			cfg.Search.Brave.APIKey = c.Search.Brave.ApiKey
			if c.Search.Brave.BaseUrl != "" {
				cfg.Search.Brave.BaseURL = c.Search.Brave.BaseUrl
			}
		}
		if c.Search.Searxng != nil {
			cfg.Search.SearXNG.BaseURL = c.Search.Searxng.BaseUrl
		}
	}
	if c.Enrich != nil {
		cfg.Enrich.Enabled = c.Enrich.Enabled
	}
	if c.Rerank != nil {
		cfg.Rerank.Enabled = c.Rerank.Enabled
	}
	if c.Cache != nil {
		if c.Cache.Backend != "" {
			cfg.Cache.Backend = c.Cache.Backend
		}
		if c.Cache.TtlSeconds > 0 {
			cfg.Cache.TTLSeconds = int(c.Cache.TtlSeconds)
		}
		if c.Cache.Db != nil {
			cfg.Cache.DB = config.DBConfig{
				Host:     c.Cache.Db.Host,
				Port:     int(c.Cache.Db.Port),
				User:     c.Cache.Db.User,
				Password: c.Cache.Db.Password,
				Name:     c.Cache.Db.Name,
			}
		}
	}
	if c.Log != nil {
		if c.Log.Level != "" {
			cfg.Log.Level = c.Log.Level
		}
		cfg.Log.File = c.Log.File
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS: int(c.Concurrency.Qps),
			RPM: int(c.Concurrency.Rpm),
		}
	}

	return &cfg
}
