package search

import (
	"errors"
	"fmt"
)

// 错误分类。桥接层只向调用方暴露 ErrInvalidQuery 和 ErrProviderUnavailable，
// 解析错误会被包装为 ErrProviderUnavailable，但日志中单独记录。
var (
	// ErrInvalidQuery 查询为空或格式非法，直接失败，不重试
	ErrInvalidQuery = errors.New("invalid query")
	// ErrProviderUnavailable 重试耗尽或上游出现不可重试的失败
	ErrProviderUnavailable = errors.New("search provider unavailable")
	// ErrParse 上游返回了无法解析的响应
	ErrParse = errors.New("malformed provider response")
)

// StatusError 上游返回的非 200 状态码
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider http error (status %d): %s", e.StatusCode, e.Body)
}

// Retryable 判断该状态码是否值得重试：5xx 和 429（限流）为瞬时失败，
// 其余 4xx 视为请求本身有问题，重试没有意义
func (e *StatusError) Retryable() bool {
	if e.StatusCode == 429 {
		return true
	}
	return e.StatusCode >= 500
}
