package search

import "context"

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	// Query 已经过归一化处理的查询串，同时作为缓存键
	Query      string
	MaxResults int
}

// Response 通用搜索响应
type Response struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// Result 单条搜索结果，创建后不可修改
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
