package factory

import (
	"fmt"

	"github.com/iWorld-y/search_bridge/pkg/brave"
	"github.com/iWorld-y/search_bridge/pkg/config"
	"github.com/iWorld-y/search_bridge/pkg/search"
	"github.com/iWorld-y/search_bridge/pkg/searxng"
)

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	retry := search.RetryConfig{
		MaxAttempts: cfg.Search.Retry.MaxAttempts,
		BaseDelay:   cfg.Search.Retry.BaseDelay(),
		JitterMax:   cfg.Search.Retry.JitterMax(),
	}

	provider := cfg.Search.Provider
	if provider == "" {
		// 默认回退逻辑：如果有 brave key，则使用 brave
		if cfg.Search.Brave.APIKey != "" {
			provider = "brave"
		} else {
			return nil, fmt.Errorf("search provider not configured")
		}
	}

	switch provider {
	case "brave":
		if cfg.Search.Brave.APIKey == "" {
			return nil, fmt.Errorf("brave api key is missing")
		}
		return brave.NewClient(cfg.Search.Brave.BaseURL, cfg.Search.Brave.APIKey, cfg.Search.Timeout, retry), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.Timeout, retry), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
