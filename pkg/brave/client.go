package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iWorld-y/search_bridge/pkg/search"
)

// maxCount Brave API 单次请求的结果数上限
const maxCount = 10

// Client Brave Search API 客户端
type Client struct {
	baseURL string
	apiKey  string
	retry   search.RetryConfig
	client  *http.Client
}

// NewClient 创建一个新的 Brave 客户端，timeout 为单次请求的超时秒数
func NewClient(baseURL, apiKey string, timeout int, retry search.RetryConfig) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 12 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		retry:   retry,
		client: &http.Client{
			Timeout: t,
		},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// SearchResponse Brave 搜索响应
type SearchResponse struct {
	Web WebResults `json:"web"`
}

// WebResults 网页搜索结果集合
type WebResults struct {
	Results []SearchResult `json:"results"`
}

// SearchResult 单条搜索结果
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	count := req.MaxResults
	if count <= 0 || count > maxCount {
		count = maxCount
	}

	resp, err := search.DoWithRetry(ctx, "brave", c.retry, func(ctx context.Context) (*search.Response, error) {
		return c.doSearch(ctx, req.Query, count)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// doSearch 执行一次搜索请求 (Internal)
func (c *Client) doSearch(ctx context.Context, query string, count int) (*search.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("count", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Subscription-Token", c.apiKey)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, &search.StatusError{StatusCode: res.StatusCode, Body: string(body)}
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: %w", search.ErrParse, err)
	}

	results := make([]search.Result, 0, len(searchResp.Web.Results))
	for i, r := range searchResp.Web.Results {
		if i >= count {
			break
		}
		results = append(results, search.Result{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}

	return &search.Response{Query: query, Results: results}, nil
}
