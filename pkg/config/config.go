package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Search      SearchConfig      `yaml:"search"`
	Enrich      EnrichConfig      `yaml:"enrich"`
	Rerank      RerankConfig      `yaml:"rerank"`
	Cache       CacheConfig       `yaml:"cache"`
	LLM         LLMConfig         `yaml:"llm"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider   string        `yaml:"provider"` // brave 或 searxng
	MaxResults int           `yaml:"max_results"`
	Timeout    int           `yaml:"timeout"` // 单次请求超时（秒），非整条流水线超时
	Retry      RetryConfig   `yaml:"retry"`
	Brave      BraveConfig   `yaml:"brave"`
	SearXNG    SearXNGConfig `yaml:"searxng"`
	// FetchContent 对描述过短的结果用 readability 抓取正文补全，默认关闭
	FetchContent bool `yaml:"fetch_content"`
}

// RetryConfig 重试与退避配置
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	BaseDelayMS int `yaml:"base_delay_ms"`
	JitterMaxMS int `yaml:"jitter_max_ms"`
}

// BaseDelay 退避基础时延
func (r RetryConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelayMS) * time.Millisecond
}

// JitterMax 抖动上界
func (r RetryConfig) JitterMax() time.Duration {
	return time.Duration(r.JitterMaxMS) * time.Millisecond
}

// BraveConfig Brave Search API 配置
type BraveConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
}

// EnrichConfig 查询增强配置
type EnrichConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RerankConfig 重排序配置
type RerankConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CacheConfig 缓存相关配置
type CacheConfig struct {
	// Backend 可选 memory / postgres / none
	Backend    string   `yaml:"backend"`
	TTLSeconds int      `yaml:"ttl_seconds"`
	DB         DBConfig `yaml:"db"`
}

// TTL 缓存条目存活时间
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LLMConfig LLM 相关配置（仅用于从自然语言消息中提取查询）
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 对上游的限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// Default 返回带默认值的配置，yaml 中出现的字段会覆盖默认值
func Default() Config {
	return Config{
		Search: SearchConfig{
			Provider:   "brave",
			MaxResults: 10,
			Timeout:    12,
			Retry: RetryConfig{
				MaxAttempts: 3,
				BaseDelayMS: 500,
				JitterMaxMS: 250,
			},
			Brave: BraveConfig{
				BaseURL: "https://api.search.brave.com/res/v1/web/search",
			},
		},
		Enrich: EnrichConfig{Enabled: true},
		Rerank: RerankConfig{Enabled: true},
		Cache: CacheConfig{
			Backend:    "memory",
			TTLSeconds: 300,
		},
		Log: LogConfig{Level: "info"},
		Concurrency: ConcurrencyConfig{
			QPS: 2,
			RPM: 60,
		},
	}
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
