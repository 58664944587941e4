package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/iWorld-y/search_bridge/pkg/bridge"
	"github.com/iWorld-y/search_bridge/pkg/cache"
	"github.com/iWorld-y/search_bridge/pkg/config"
	"github.com/iWorld-y/search_bridge/pkg/llm"
	"github.com/iWorld-y/search_bridge/pkg/logger"
	"github.com/iWorld-y/search_bridge/pkg/search"
)

var (
	flagconf    string
	flagMessage string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagMessage, "message", "", "自然语言消息，用 LLM 提取其中的搜索查询")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	ctx := context.Background()

	// 3. 收集查询：命令行参数直接作为查询，或由 LLM 从消息中提取
	var queries []string
	if args := flag.Args(); len(args) > 0 {
		queries = []string{strings.Join(args, " ")}
	} else if flagMessage != "" {
		extractor, err := llm.NewExtractor(ctx, cfg.LLM)
		if err != nil {
			logger.Log.Fatalf("%v", err)
		}
		queries, err = extractor.ExtractQueries(ctx, flagMessage)
		if err != nil {
			logger.Log.Fatalf("提取查询失败: %v", err)
		}
		if len(queries) == 0 {
			logger.Log.Info("消息中未识别出搜索查询")
			return
		}
	} else {
		logger.Log.Fatal("用法: search_bridge [-conf 配置文件] <查询词...> 或 -message <消息>")
	}

	// 4. 初始化缓存后端
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		logger.Log.Fatalf("缓存初始化失败: %v", err)
	}
	defer store.Close()

	// 5. 构建流水线并执行
	b, err := bridge.New(cfg, store)
	if err != nil {
		logger.Log.Fatalf("%v", err)
	}

	responses := make([]*search.Response, 0, len(queries))
	for _, q := range queries {
		resp, err := b.Search(ctx, q)
		if err != nil {
			logger.Log.Errorf("搜索失败 [%s]: %v", q, err)
			os.Exit(1)
		}
		responses = append(responses, resp)
	}

	out, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		logger.Log.Fatalf("结果序列化失败: %v", err)
	}
	fmt.Println(string(out))
}
