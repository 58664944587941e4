// Package bridge 串联检索流水线：查询增强 → 缓存查找 →（未命中时）上游
// 搜索 → 重排序 → 缓存写入。缓存中的结果集已完成排序，命中时直接返回。
package bridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/search_bridge/pkg/cache"
	"github.com/iWorld-y/search_bridge/pkg/config"
	"github.com/iWorld-y/search_bridge/pkg/enrich"
	"github.com/iWorld-y/search_bridge/pkg/logger"
	"github.com/iWorld-y/search_bridge/pkg/rerank"
	"github.com/iWorld-y/search_bridge/pkg/search"
	"github.com/iWorld-y/search_bridge/pkg/search/factory"
)

// 描述短于该长度的结果才会触发正文抓取补全
const minDescriptionLen = 100

// Bridge 检索流水线编排器。单个实例可被多个请求并发使用，
// 除缓存后端外不持有跨请求的可变状态
type Bridge struct {
	cfg      *config.Config
	enricher *enrich.Enricher
	searcher search.Searcher
	store    cache.Store
	limiter  *rate.Limiter
}

// New 创建流水线实例。store 由调用方构造并负责关闭，
// 进程内所有请求共享同一个 store
func New(cfg *config.Config, store cache.Store) (*Bridge, error) {
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}
	return NewWithSearcher(cfg, store, searcher), nil
}

// NewWithSearcher 使用外部注入的搜索客户端创建流水线，测试时替换上游
func NewWithSearcher(cfg *config.Config, store cache.Store, searcher search.Searcher) *Bridge {
	// 初始化限流器
	limit := rate.Inf
	burst := 1
	if cfg.Concurrency.RPM > 0 {
		limit = rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
		burst = cfg.Concurrency.QPS
		if burst < 1 {
			burst = 1
		}
	}

	return &Bridge{
		cfg:      cfg,
		enricher: enrich.New(cfg.Enrich.Enabled),
		searcher: searcher,
		store:    store,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Search 执行一次完整的检索。空查询返回 ErrInvalidQuery；
// 上游不可用返回 ErrProviderUnavailable；缓存故障不会中断流水线
func (b *Bridge) Search(ctx context.Context, query string) (*search.Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, search.ErrInvalidQuery
	}

	// 阶段一：查询增强，输出同时作为缓存键
	start := time.Now()
	key := b.enricher.Enrich(query)
	logStage("enrich", key, start)

	// 阶段二：缓存查找。后端故障按未命中处理，继续回源
	start = time.Now()
	cached, err := b.store.Get(ctx, key)
	logStage("cache_lookup", key, start)
	if err == nil {
		logger.Log.Infof("缓存命中 [%s]，返回 %d 条结果", key, len(cached))
		return &search.Response{Query: key, Results: cached}, nil
	}
	if err != cache.ErrMiss {
		logger.Log.Warnf("缓存读取失败 [%s]，按未命中处理: %v", key, err)
	}

	// 阶段三：上游搜索（限流 + 有界重试在客户端内完成）
	start = time.Now()
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", search.ErrProviderUnavailable, err)
	}
	resp, err := b.searcher.Search(ctx, &search.Request{
		Query:      key,
		MaxResults: b.cfg.Search.MaxResults,
	})
	logStage("provider_fetch", key, start)
	if err != nil {
		return nil, err
	}
	results := resp.Results

	// 可选阶段：抓取正文补全过短的描述
	if b.cfg.Search.FetchContent {
		start = time.Now()
		results = b.fillDescriptions(results)
		logStage("fetch_content", key, start)
	}

	// 阶段四：重排序。关闭时保持上游顺序
	if b.cfg.Rerank.Enabled {
		start = time.Now()
		results = rerank.Rerank(key, results)
		logStage("rerank", key, start)
	}

	// 阶段五：缓存写入。失败只记录，不影响本次响应
	start = time.Now()
	if err := b.store.Put(ctx, key, results, b.cfg.Cache.TTL()); err != nil {
		logger.Log.Warnf("缓存写入失败 [%s]: %v", key, err)
	}
	logStage("cache_write", key, start)

	return &search.Response{Query: key, Results: results}, nil
}

// fillDescriptions 对描述过短的结果抓取页面正文作为描述
func (b *Bridge) fillDescriptions(results []search.Result) []search.Result {
	timeout := time.Duration(b.cfg.Search.Timeout) * time.Second
	filled := make([]search.Result, len(results))
	copy(filled, results)
	for i, r := range filled {
		if len(r.Description) >= minDescriptionLen {
			continue
		}
		article, err := readability.FromURL(r.URL, timeout)
		if err != nil {
			logger.Log.Debugf("正文抓取失败 [%s]: %v", r.URL, err)
			continue
		}
		text := strings.TrimSpace(article.TextContent)
		if len(text) > 280 {
			text = text[:280]
		}
		if len(text) > len(r.Description) {
			filled[i].Description = text
		}
	}
	return filled
}

// logStage 记录阶段耗时
func logStage(stage, query string, start time.Time) {
	logger.Log.Debugf("阶段 [%s] 完成 [%s]，耗时 %v", stage, query, time.Since(start))
}
