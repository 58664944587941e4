// Package enrich 提供查询预处理：大小写/空白归一化、拼写纠错与同义词扩展。
// 输出对相同输入是确定的，直接作为缓存键使用。
package enrich

import (
	"strings"

	"github.com/agext/levenshtein"
)

// Enricher 查询增强器。纯函数，无 I/O，任何输入都不会失败
type Enricher struct {
	enabled bool
	known   map[string]struct{}
}

// New 创建查询增强器。disabled 时 Enrich 只做空白与大小写归一化
func New(enabled bool) *Enricher {
	known := make(map[string]struct{}, len(vocab)+len(synonyms)*2)
	for _, w := range vocab {
		known[w] = struct{}{}
	}
	for _, w := range typoDict {
		known[w] = struct{}{}
	}
	for k, vs := range synonyms {
		known[k] = struct{}{}
		for _, v := range vs {
			known[v] = struct{}{}
		}
	}
	return &Enricher{enabled: enabled, known: known}
}

// Enrich 归一化并扩展查询。处理顺序：空白/大小写归一化 → 拼写纠错 →
// 同义词扩展（保留原词，追加到末尾，去重）。幂等：Enrich(Enrich(q)) == Enrich(q)
func (e *Enricher) Enrich(query string) string {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if !e.enabled || len(tokens) == 0 {
		return strings.Join(tokens, " ")
	}

	seen := make(map[string]struct{}, len(tokens)*2)
	corrected := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = e.correct(tok)
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		corrected = append(corrected, tok)
	}

	// 同义词追加在原始词序之后，保证原查询短语完整
	expanded := corrected
	for _, tok := range corrected {
		for _, syn := range synonyms[tok] {
			if _, ok := seen[syn]; ok {
				continue
			}
			seen[syn] = struct{}{}
			expanded = append(expanded, syn)
		}
	}

	return strings.Join(expanded, " ")
}

// correct 对单个未知词做纠错：先查拼写错误词典，再按编辑距离匹配词表。
// 已知词原样返回，保证幂等
func (e *Enricher) correct(tok string) string {
	if _, ok := e.known[tok]; ok {
		return tok
	}
	if fixed, ok := typoDict[tok]; ok {
		return fixed
	}
	if len(tok) < 5 {
		return tok
	}

	// 编辑距离阈值取 2，能覆盖常见的字符互换错误（pyhton -> python）
	best := tok
	bestDist := 3
	for _, w := range vocab {
		if d := levenshtein.Distance(tok, w, nil); d < bestDist {
			best = w
			bestDist = d
		}
	}
	return best
}
