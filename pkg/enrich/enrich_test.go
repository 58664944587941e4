package enrich

import "testing"

func TestEnrichDisabled(t *testing.T) {
	e := New(false)
	got := e.Enrich("  Fast   Car  ")
	if got != "fast car" {
		t.Errorf("Enrich() = %q, want %q", got, "fast car")
	}
}

func TestEnrichTypoCorrection(t *testing.T) {
	e := New(true)
	got := e.Enrich("Pyhton AI news")
	want := "python ai news artificial intelligence headlines"
	if got != want {
		t.Errorf("Enrich() = %q, want %q", got, want)
	}
}

func TestEnrichEditDistanceCorrection(t *testing.T) {
	e := New(true)
	// "pythn" 不在拼写词典里，依赖编辑距离纠错
	got := e.Enrich("pythn guide")
	want := "python guide tutorial"
	if got != want {
		t.Errorf("Enrich() = %q, want %q", got, want)
	}
}

func TestEnrichSynonymExpansion(t *testing.T) {
	e := New(true)
	got := e.Enrich("fast car")
	want := "fast car quick rapid automobile vehicle"
	if got != want {
		t.Errorf("Enrich() = %q, want %q", got, want)
	}
}

func TestEnrichUnknownTokensPassThrough(t *testing.T) {
	e := New(true)
	got := e.Enrich("zxqv kwyhzzmtr")
	if got != "zxqv kwyhzzmtr" {
		t.Errorf("Enrich() = %q, 未知词应原样保留", got)
	}
}

func TestEnrichIdempotent(t *testing.T) {
	e := New(true)
	for _, q := range []string{"Pyhton AI news", "fast car", "the teh test", "golang tutorail"} {
		once := e.Enrich(q)
		twice := e.Enrich(once)
		if once != twice {
			t.Errorf("Enrich 不幂等 [%s]: %q != %q", q, once, twice)
		}
	}
}

func TestEnrichEmptyQuery(t *testing.T) {
	e := New(true)
	if got := e.Enrich("   "); got != "" {
		t.Errorf("Enrich() = %q, want empty", got)
	}
}

func TestSynonymValuesAreNotKeys(t *testing.T) {
	// 同义词表的值出现在键里会破坏幂等性
	for k, vs := range synonyms {
		for _, v := range vs {
			if _, ok := synonyms[v]; ok {
				t.Errorf("同义词值 %q (键 %q) 同时也是键", v, k)
			}
		}
	}
}
