package query

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/revelaction/conllx/file"
	"github.com/revelaction/conllx/render"
	sent "github.com/revelaction/conllx/sentence"
	"github.com/revelaction/conllx/storage/filesystem"
)

func newHandler(t *testing.T, out *bytes.Buffer) *Handler {
	t.Helper()
	dir := t.TempDir()

	tok := func(form, lemma, pos string) sent.Token {
		return sent.NewTokenBuilder().Form(form).Lemma(lemma).CPOS(pos).POS(pos).Token()
	}

	doc := sent.Doc{Title: "tiger", Sentences: []sent.Sentence{
		{tok("Die", "die", "ART"), tok("Katze", "Katze", "NN")},
		{tok("Der", "der", "ART"), tok("Hund", "Hund", "NN")},
		{tok("Die", "die", "ART"), tok("Maus", "Maus", "NN")},
	}}
	if err := file.WriteDoc(filepath.Join(dir, "tiger.conll"), doc); err != nil {
		t.Fatal(err)
	}

	store, err := filesystem.NewDocStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	return NewHandler(store, render.NewRenderer(out), out)
}

func TestExecute(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(t, &out)

	if err := h.Execute("die 1 NN"); err != nil {
		t.Fatal(err)
	}

	want := "Die Katze\nDie Maus\n✍  2 sentences\n"
	if got := out.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExecuteLimit(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(t, &out)
	h.Limit = 1

	if err := h.Execute("NN"); err != nil {
		t.Fatal(err)
	}

	want := "Die Katze\n✍  1 sentences\n"
	if got := out.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExecuteInvalid(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(t, &out)

	if err := h.Execute("die 0 NN"); err == nil {
		t.Fatal("expected error")
	}

	if len(h.history) != 0 {
		t.Errorf("invalid input must not be stored in history")
	}
}

func TestSuggest(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(t, &out)
	h.history = []string{"die 1 NN"}

	s := h.suggest("fe", "fe")
	if len(s) != 1 || s[0].Text != "feat=" {
		t.Errorf("unexpected suggestions %v", s)
	}

	s = h.suggest("die 1", "1")
	if len(s) != 1 || s[0].Text != "1 NN" {
		t.Errorf("unexpected history suggestions %v", s)
	}

	if s = h.suggest("", ""); len(s) != 0 {
		t.Errorf("expected no suggestions, got %v", s)
	}
}
