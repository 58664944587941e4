package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/url"
	"time"

	"github.com/iWorld-y/search_bridge/pkg/logger"
)

// RetryConfig 重试策略配置
type RetryConfig struct {
	// MaxAttempts 总尝试次数上限（含首次请求），最少为 1
	MaxAttempts int
	// BaseDelay 退避基础时延，第 n 次重试前等待 BaseDelay * 2^(n-1) + jitter
	BaseDelay time.Duration
	// JitterMax 随机抖动上界，避免重试风暴
	JitterMax time.Duration
}

// DoWithRetry 在有界重试循环内执行一次上游搜索请求。
// 仅对瞬时失败（超时、连接错误、5xx、429）重试；重试耗尽或遇到
// 不可重试的失败时，返回的错误可通过 errors.Is 匹配 ErrProviderUnavailable。
// 最坏总耗时 ≈ 单次超时 × MaxAttempts + 各次退避时延之和。
func DoWithRetry(ctx context.Context, name string, cfg RetryConfig, fn func(ctx context.Context) (*Response, error)) (*Response, error) {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		start := time.Now()
		resp, err := fn(ctx)
		latency := time.Since(start)

		if err == nil {
			logger.Log.Debugf("搜索请求成功 [%s] 第 %d 次尝试, 耗时 %v", name, attempt, latency)
			return resp, nil
		}

		lastErr = err
		logger.Log.Warnf("搜索请求失败 [%s] 第 %d 次尝试, 耗时 %v: %v", name, attempt, latency, err)

		if ctx.Err() != nil {
			break
		}
		if !transient(err) {
			break
		}
		if attempt == attempts {
			break
		}

		delay := backoffDelay(cfg, attempt)
		logger.Log.Debugf("等待 %v 后重试 [%s]", delay, name)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, lastErr)
}

// backoffDelay 计算第 attempt 次尝试失败后的退避时延（指数退避 + 全抖动）
func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	delay := cfg.BaseDelay * time.Duration(1<<(attempt-1))
	if cfg.JitterMax > 0 {
		delay += time.Duration(rand.Int63n(int64(cfg.JitterMax)))
	}
	return delay
}

// transient 判断错误是否为可重试的瞬时失败
func transient(err error) bool {
	if errors.Is(err, ErrParse) {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	// http.Client.Do 的传输层错误（连接被拒、DNS 失败等）都包装在 url.Error 里
	var ue *url.Error
	return errors.As(err, &ue)
}
