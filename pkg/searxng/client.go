package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/search_bridge/pkg/search"
)

// Client SearXNG API 客户端
type Client struct {
	baseURL string
	retry   search.RetryConfig
	client  *http.Client
}

// NewClient 创建一个新的 SearXNG 客户端，timeout 为单次请求的超时秒数
func NewClient(baseURL string, timeout int, retry search.RetryConfig) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		retry:   retry,
		client: &http.Client{
			Timeout: t,
		},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// SearchResponse SearXNG 响应结构
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// SearchResult SearXNG 单条结果
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	return search.DoWithRetry(ctx, "searxng", c.retry, func(ctx context.Context) (*search.Response, error) {
		return c.doSearch(ctx, req.Query, req.MaxResults)
	})
}

// doSearch 执行一次搜索请求 (Internal)
func (c *Client) doSearch(ctx context.Context, query string, count int) (*search.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/search"

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("categories", "general")
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	// 添加 User-Agent 避免被简单的反爬虫策略拦截
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, &search.StatusError{StatusCode: res.StatusCode, Body: string(body)}
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: %w", search.ErrParse, err)
	}

	if count <= 0 {
		count = len(searchResp.Results)
	}

	results := make([]search.Result, 0, count)
	for i, r := range searchResp.Results {
		if i >= count {
			break
		}
		results = append(results, search.Result{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Content,
		})
	}

	return &search.Response{Query: query, Results: results}, nil
}
