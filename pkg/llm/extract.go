// Package llm 从自然语言消息中提取网页搜索查询，
// 供 CLI 的 -message 模式使用。检索流水线本身不依赖本包。
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/search_bridge/pkg/config"
)

const systemPrompt = "你是一个 JSON 生成器。请只输出 JSON 字符串。"

const extractPrompt = `请从下面的用户消息中识别出需要进行网页搜索的查询。
提取用户想了解的具体网站或主题，严格按照以下 JSON 格式返回，不要包含任何 markdown 标记：
{
	"queries": ["查询1", "查询2"]
}
如果没有识别出任何查询，queries 返回空数组。

用户消息：
%s`

// Extractor 基于 OpenAI 兼容模型的查询提取器
type Extractor struct {
	chatModel model.ChatModel
}

// NewExtractor 创建查询提取器
func NewExtractor(ctx context.Context, cfg config.LLMConfig) (*Extractor, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &Extractor{chatModel: chatModel}, nil
}

// extractReply LLM 返回的 JSON 结构
type extractReply struct {
	Queries []string `json:"queries"`
}

// ExtractQueries 提取消息中的搜索查询。识别不出查询时返回空切片；
// 对 429 限流响应做有界重试
func (e *Extractor) ExtractQueries(ctx context.Context, message string) ([]string, error) {
	maxRetries := 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		messages := []*schema.Message{
			{Role: schema.System, Content: systemPrompt},
			{Role: schema.User, Content: fmt.Sprintf(extractPrompt, message)},
		}

		resp, err := e.chatModel.Generate(ctx, messages)
		if err != nil {
			if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "too many requests") {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return nil, err
		}

		cleanContent := strings.TrimSpace(resp.Content)
		cleanContent = strings.TrimPrefix(cleanContent, "```json")
		cleanContent = strings.TrimPrefix(cleanContent, "```")
		cleanContent = strings.TrimSuffix(cleanContent, "```")

		var reply extractReply
		if err := json.Unmarshal([]byte(cleanContent), &reply); err != nil {
			lastErr = err
			if i < maxRetries {
				continue
			}
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
		return reply.Queries, nil
	}
	return nil, lastErr
}
