package brave

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iWorld-y/search_bridge/pkg/search"
)

const sampleBody = `{
	"web": {
		"results": [
			{"title": "Python.org", "url": "https://python.org", "description": "Official site"},
			{"title": "Python news", "url": "https://news.example.com", "description": "Daily headlines"}
		]
	}
}`

func testRetry() search.RetryConfig {
	return search.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, JitterMax: 0}
}

func TestSearchSuccess(t *testing.T) {
	var gotToken, gotQuery, gotCount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Subscription-Token")
		gotQuery = r.URL.Query().Get("q")
		gotCount = r.URL.Query().Get("count")
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5, testRetry())
	resp, err := c.Search(context.Background(), &search.Request{Query: "python news", MaxResults: 5})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotToken != "secret" {
		t.Errorf("X-Subscription-Token = %q", gotToken)
	}
	if gotQuery != "python news" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotCount != "5" {
		t.Errorf("count = %q", gotCount)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("结果条数 = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].Title != "Python.org" || resp.Results[0].URL != "https://python.org" {
		t.Errorf("首条结果 = %+v", resp.Results[0])
	}
}

func TestSearchClampsCount(t *testing.T) {
	var gotCount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCount = r.URL.Query().Get("count")
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5, testRetry())
	// Brave API 上限为 10
	if _, err := c.Search(context.Background(), &search.Request{Query: "q", MaxResults: 50}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotCount != "10" {
		t.Errorf("count = %q, want 10", gotCount)
	}
}

func TestSearchRetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5, testRetry())
	resp, err := c.Search(context.Background(), &search.Request{Query: "python", MaxResults: 5})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("尝试次数 = %d, want 3", attempts)
	}
	if len(resp.Results) != 2 {
		t.Errorf("结果条数 = %d, want 2", len(resp.Results))
	}
}

func TestSearchExhaustsRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5, testRetry())
	_, err := c.Search(context.Background(), &search.Request{Query: "python", MaxResults: 5})
	if !errors.Is(err, search.ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
	if attempts != 3 {
		t.Errorf("尝试次数 = %d, want 3", attempts)
	}
}

func TestSearchDoesNotRetryAuthFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", 5, testRetry())
	_, err := c.Search(context.Background(), &search.Request{Query: "python", MaxResults: 5})
	if !errors.Is(err, search.ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
	if attempts != 1 {
		t.Errorf("尝试次数 = %d, 401 不应重试", attempts)
	}
}

func TestSearchParseError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5, testRetry())
	_, err := c.Search(context.Background(), &search.Request{Query: "python", MaxResults: 5})
	if !errors.Is(err, search.ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
	if !errors.Is(err, search.ErrProviderUnavailable) {
		t.Errorf("err = %v, 对调用方应表现为 ErrProviderUnavailable", err)
	}
	if attempts != 1 {
		t.Errorf("尝试次数 = %d, 解析错误不应重试", attempts)
	}
}

func TestSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"web": {"results": []}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5, testRetry())
	resp, err := c.Search(context.Background(), &search.Request{Query: "python", MaxResults: 5})
	if err != nil {
		t.Fatalf("空结果集是合法的成功响应, error = %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("结果条数 = %d, want 0", len(resp.Results))
	}
}
