package conf

type Bootstrap struct {
	Server *Server
	Bridge *Bridge
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Bridge struct {
	Search      *Search      `json:"search"`
	Enrich      *Toggle      `json:"enrich"`
	Rerank      *Toggle      `json:"rerank"`
	Cache       *Cache       `json:"cache"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type Search struct {
	Provider     string   `json:"provider"`
	MaxResults   int32    `json:"max_results"`
	Timeout      int32    `json:"timeout"`
	Retry        *Retry   `json:"retry"`
	Brave        *Brave   `json:"brave"`
	Searxng      *SearXNG `json:"searxng"`
	FetchContent bool     `json:"fetch_content"`
}

type Retry struct {
	MaxAttempts int32 `json:"max_attempts"`
	BaseDelayMs int32 `json:"base_delay_ms"`
	JitterMaxMs int32 `json:"jitter_max_ms"`
}

type Brave struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
}

type Toggle struct {
	Enabled bool `json:"enabled"`
}

type Cache struct {
	Backend    string `json:"backend"`
	TtlSeconds int32  `json:"ttl_seconds"`
	Db         *DB    `json:"db"`
}

type DB struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
