package stat

import (
	"testing"

	sent "github.com/revelaction/conllx/sentence"
)

func tok(cpos, rel, feats string, head int) sent.Token {
	return sent.NewTokenBuilder().Form("w").CPOS(cpos).POS(cpos).Features(sent.NewFeatures(feats)).Head(head).HeadRel(rel).Token()
}

func TestAggregate(t *testing.T) {
	doc := sent.Doc{
		Sentences: []sent.Sentence{
			{tok("ART", "DET", "case:nom|number:sg", 2), tok("N", "ROOT", "case:nom", 0)},
			{tok("N", "ROOT", "nsm", 0), tok("N", "APP", "case:nom", 1), tok("V", "OBJ", "", 1), tok("N", "OBJ", "case:acc|case:nom", 1)},
		},
	}

	h := NewHandler()
	h.Aggregate(doc)
	stats := h.Get()

	if stats.NumDocs != 1 || stats.NumSentences != 2 || stats.NumTokens != 6 {
		t.Fatalf("unexpected counts %+v", stats)
	}

	if stats.TokensPerSentenceMean != 3 {
		t.Errorf("expected mean 3, got %d", stats.TokensPerSentenceMean)
	}

	if stats.TokensPerSentenceDis[2] != 1 || stats.TokensPerSentenceDis[4] != 1 {
		t.Errorf("unexpected distribution %v", stats.TokensPerSentenceDis)
	}

	if stats.NumRoots != 2 {
		t.Errorf("expected 2 roots, got %d", stats.NumRoots)
	}

	if stats.CPOS["N"] != 4 || stats.DepRel["OBJ"] != 2 {
		t.Errorf("unexpected frequencies %v %v", stats.CPOS, stats.DepRel)
	}

	// a repeated key counts once per token
	if stats.Features["case"] != 4 || stats.Features["nsm"] != 1 {
		t.Errorf("unexpected feature frequencies %v", stats.Features)
	}
}

func TestGetEmpty(t *testing.T) {
	stats := NewHandler().Get()
	if stats.NumSentences != 0 || stats.TokensPerSentenceMean != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestTop(t *testing.T) {
	got := Top(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}, 3)
	want := []Count{{"c", 5}, {"a", 2}, {"b", 2}}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	if len(Top(map[string]int{"a": 1}, 0)) != 1 {
		t.Errorf("n <= 0 must return all")
	}
}
