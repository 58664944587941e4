package enrich

// typoDict 常见拼写错误词典，优先于编辑距离纠错
var typoDict = map[string]string{
	"teh":       "the",
	"pyhton":    "python",
	"pytohn":    "python",
	"javasript": "javascript",
	"golnag":    "golang",
	"recieve":   "receive",
	"seach":     "search",
	"serach":    "search",
	"wether":    "weather",
	"instal":    "install",
	"udpate":    "update",
	"tutorail":  "tutorial",
	"databse":   "database",
	"kubernets": "kubernetes",
}

// vocab 纠错参照词表，编辑距离在阈值内的未知词会被纠正为表中的词
var vocab = []string{
	"python", "java", "golang", "javascript", "rust", "linux", "windows",
	"docker", "kubernetes", "database", "network", "security", "cloud",
	"server", "api", "framework", "machine", "learning", "artificial",
	"intelligence", "model", "news", "tutorial", "install", "update",
	"download", "release", "error", "search", "weather", "price",
	"review", "guide", "example", "performance", "latest", "open",
	"source", "test", "the",
}

// synonyms 同义词扩展表，单向映射。
// 不变式：值不得作为键出现，否则 Enrich 失去幂等性
var synonyms = map[string][]string{
	"fast":  {"quick", "rapid"},
	"big":   {"large", "huge"},
	"cheap": {"affordable", "budget"},
	"buy":   {"purchase", "order"},
	"fix":   {"repair", "resolve"},
	"news":  {"headlines"},
	"guide": {"tutorial"},
	"error": {"bug", "issue"},
	"car":   {"automobile", "vehicle"},
	"best":  {"top", "recommended"},
	"free":  {"gratis"},
	"ai":    {"artificial", "intelligence"},
	"ml":    {"machine", "learning"},
}
