// Package rerank 按查询词的词频相关性对搜索结果做本地重排序，
// 与上游返回的排名无关。
package rerank

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/iWorld-y/search_bridge/pkg/search"
)

// titleWeight 标题命中的权重倍数
const titleWeight = 2.0

// Rerank 计算每条结果的 TF-IDF 得分并按得分降序稳定排序。
// IDF 只在当前结果集内统计，不依赖全局语料。
// 空结果集返回空切片；查询与所有结果都无词汇重叠时保持上游原始顺序。
func Rerank(query string, results []search.Result) []search.Result {
	if len(results) == 0 {
		return []search.Result{}
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return results
	}

	// 每条结果的词频统计，标题与描述分开以便加权
	titleCounts := make([]map[string]int, len(results))
	descCounts := make([]map[string]int, len(results))
	for i, r := range results {
		titleCounts[i] = termCounts(r.Title)
		descCounts[i] = termCounts(r.Description)
	}

	// 文档频率：包含该查询词的结果条数
	df := make(map[string]int, len(terms))
	for _, term := range terms {
		for i := range results {
			if titleCounts[i][term] > 0 || descCounts[i][term] > 0 {
				df[term]++
			}
		}
	}

	n := float64(len(results))
	scores := make([]float64, len(results))
	for i := range results {
		var score float64
		for _, term := range terms {
			tf := float64(titleCounts[i][term])*titleWeight + float64(descCounts[i][term])
			if tf == 0 {
				continue
			}
			idf := math.Log((n+1)/float64(df[term]+1)) + 1
			score += tf * idf
		}
		scores[i] = score
	}

	ranked := make([]search.Result, len(results))
	copy(ranked, results)
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	// 稳定排序：得分相同保持上游顺序
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	for i, idx := range order {
		ranked[i] = results[idx]
	}
	return ranked
}

// tokenize 切分并归一化为小写词元，去重
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// termCounts 统计文本中每个词元的出现次数
func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, f := range fields {
		counts[f]++
	}
	return counts
}
