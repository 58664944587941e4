package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/search_bridge/pkg/bridge"
	"github.com/iWorld-y/search_bridge/pkg/search"
)

// SearchService HTTP 层服务，把查询参数转交给流水线并序列化结果
type SearchService struct {
	bridge *bridge.Bridge
	log    *log.Helper
}

func NewSearchService(b *bridge.Bridge, logger log.Logger) *SearchService {
	return &SearchService{
		bridge: b,
		log:    log.NewHelper(logger),
	}
}

// errorReply 结构化错误响应，与空结果集的成功响应可区分
type errorReply struct {
	Error string `json:"error"`
}

// Search 处理 GET /v1/search?q=...&count=...
func (s *SearchService) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	resp, err := s.bridge.Search(r.Context(), query)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, search.ErrInvalidQuery):
			status = http.StatusBadRequest
		case errors.Is(err, search.ErrProviderUnavailable):
			status = http.StatusBadGateway
		}
		s.log.Errorf("search failed [%s]: %v", query, err)
		writeJSON(w, status, errorReply{Error: err.Error()})
		return
	}

	// count 仅裁剪响应条数，不影响缓存内容
	results := resp.Results
	if c, err := strconv.Atoi(r.URL.Query().Get("count")); err == nil && c > 0 && c < len(results) {
		results = results[:c]
	}

	writeJSON(w, http.StatusOK, &search.Response{Query: resp.Query, Results: results})
}

// Health 处理 GET /health
func (s *SearchService) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
