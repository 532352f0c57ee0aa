package sentence

import (
	"encoding/json"
	"testing"
)

func TestTokenBuilderDefaults(t *testing.T) {
	tok := NewTokenBuilder().Token()

	if tok.Form() != "" || tok.Lemma() != "" || tok.CPOS() != "" || tok.POS() != "" {
		t.Errorf("expected empty textual columns, got %+v", tok)
	}

	if _, ok := tok.Features(); ok {
		t.Errorf("expected absent features")
	}
	if _, ok := tok.Head(); ok {
		t.Errorf("expected absent head")
	}
	if _, ok := tok.HeadRel(); ok {
		t.Errorf("expected absent head relation")
	}
	if _, ok := tok.PHead(); ok {
		t.Errorf("expected absent projective head")
	}
	if _, ok := tok.PHeadRel(); ok {
		t.Errorf("expected absent projective head relation")
	}
}

func TestTokenBuilderColumns(t *testing.T) {
	tok := NewTokenBuilder().
		Form("Die").
		Lemma("die").
		CPOS("ART").
		POS("ART").
		Features(NewFeatures("nsf")).
		Head(2).
		HeadRel("DET").
		PHead(2).
		PHeadRel("DET").
		Token()

	if tok.Form() != "Die" || tok.Lemma() != "die" || tok.CPOS() != "ART" || tok.POS() != "ART" {
		t.Errorf("unexpected textual columns %+v", tok)
	}

	if f, ok := tok.Features(); !ok || f.String() != "nsf" {
		t.Errorf("Features() = %q, %v", f.String(), ok)
	}
	if h, ok := tok.Head(); !ok || h != 2 {
		t.Errorf("Head() = %d, %v", h, ok)
	}
	if r, ok := tok.HeadRel(); !ok || r != "DET" {
		t.Errorf("HeadRel() = %q, %v", r, ok)
	}
	if h, ok := tok.PHead(); !ok || h != 2 {
		t.Errorf("PHead() = %d, %v", h, ok)
	}
	if r, ok := tok.PHeadRel(); !ok || r != "DET" {
		t.Errorf("PHeadRel() = %q, %v", r, ok)
	}
}

func TestTokenEquality(t *testing.T) {
	a := NewTokenBuilder().Form("Gilles").Features(NewFeatures("nsm")).Head(0).Token()
	b := NewTokenBuilder().Form("Gilles").Features(NewFeatures("nsm")).Head(0).Token()
	if a != b {
		t.Errorf("expected equal tokens")
	}

	empty := NewTokenBuilder().Form("Gilles").Features(NewFeatures("")).Head(0).Token()
	absent := NewTokenBuilder().Form("Gilles").Head(0).Token()
	if empty == absent {
		t.Errorf("empty and absent features must differ")
	}

	if !a.IsRoot() {
		t.Errorf("expected root token")
	}
}

func TestBuilderReuseDoesNotChangeToken(t *testing.T) {
	b := NewTokenBuilder().Form("a")
	first := b.Token()
	b.Form("b")

	if first.Form() != "a" {
		t.Errorf("built token changed to %q", first.Form())
	}
}

func TestTokenJSON(t *testing.T) {
	tok := NewTokenBuilder().Form("Die").Lemma("die").CPOS("ART").POS("ART").Head(2).HeadRel("DET").Token()

	data, err := json.Marshal(tok)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	want := `{"form":"Die","lemma":"die","cpos":"ART","pos":"ART","head":2,"deprel":"DET"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var back Token
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if back != tok {
		t.Errorf("round trip mismatch: %+v != %+v", back, tok)
	}
}

func TestTokenJSONRejectsNegativeHead(t *testing.T) {
	for _, data := range []string{
		`{"form":"Die","head":-1}`,
		`{"form":"Die","head":1,"phead":-2}`,
	} {
		var tok Token
		if err := json.Unmarshal([]byte(data), &tok); err == nil {
			t.Errorf("%s: expected error", data)
		}
	}
}

func TestSentenceHelpers(t *testing.T) {
	s := Sentence{
		NewTokenBuilder().Form("Die").Lemma("die").Head(2).Token(),
		NewTokenBuilder().Form("Großaufnahme").Lemma("Großaufnahme").Head(0).Token(),
		NewTokenBuilder().Form("die").Lemma("die").Head(2).Token(),
	}

	if got := s.Root(); got != 1 {
		t.Errorf("Root() = %d, want 1", got)
	}

	lemmas := s.Lemmas()
	if len(lemmas) != 2 || lemmas[0] != "die" || lemmas[1] != "Großaufnahme" {
		t.Errorf("Lemmas() = %v", lemmas)
	}

	if !s.Equal(append(Sentence{}, s...)) {
		t.Errorf("expected equal sentences")
	}

	if s.Equal(s[:2]) {
		t.Errorf("expected different sentences")
	}

	doc := Doc{Sentences: []Sentence{s, s[:1]}}
	if doc.NumTokens() != 4 {
		t.Errorf("NumTokens() = %d, want 4", doc.NumTokens())
	}
}
