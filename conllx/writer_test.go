package conllx

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	sent "github.com/revelaction/conllx/sentence"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	for _, s := range testSentences() {
		if err := w.WriteSentence(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if buf.String() != testFragmentMarkedEmpty {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), testFragmentMarkedEmpty)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	for _, input := range []string{testFragment, testFragmentRobust, testFragmentMarkedEmpty} {
		sentences := readAll(t, input)

		var buf bytes.Buffer
		w := NewWriter(&buf)
		for _, s := range sentences {
			if err := w.WriteSentence(s); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assertSentences(t, readAll(t, buf.String()), sentences)

		// the canonical form is a fixed point
		if buf.String() != testFragmentMarkedEmpty {
			t.Errorf("output is not canonical:\n%s", buf.String())
		}
	}
}

func TestWriterKeepsRawFeatures(t *testing.T) {
	raw := "number:singular|case:nominative|case:accusative|flag"
	s := sent.Sentence{
		sent.NewTokenBuilder().Form("a").Features(sent.NewFeatures(raw)).Token(),
		sent.NewTokenBuilder().Form("b").Features(sent.NewFeatures("")).Token(),
	}

	// query the view, it must not influence the output
	f, _ := s[0].Features()
	_ = f.Map()

	got := Format(s)
	want := "1\ta\t\t\t\t" + raw + "\t_\t_\t_\t_\n" +
		"2\tb\t\t\t\t\t_\t_\t_\t_\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	back := readAll(t, got)
	assertSentences(t, back, []sent.Sentence{s})
}

func TestWriterEmptySentence(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf).WriteSentence(nil)
	if !errors.Is(err, ErrEmptySentence) {
		t.Errorf("expected ErrEmptySentence, got %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

type failingWriter struct {
	err error
}

func (f failingWriter) Write(p []byte) (int, error) {
	return 0, f.err
}

func TestWriterIOError(t *testing.T) {
	boom := errors.New("boom")
	w := NewWriter(failingWriter{err: boom})

	err := w.WriteSentence(testSentences()[0])
	if !errors.Is(err, boom) {
		t.Errorf("expected the sink error, got %v", err)
	}
}

// countingWriter records the number of Write calls.
type countingWriter struct {
	bytes.Buffer
	calls int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.calls++
	return c.Buffer.Write(p)
}

func TestWriterOneWritePerSentence(t *testing.T) {
	var cw countingWriter
	w := NewWriter(&cw)

	for _, s := range testSentences() {
		if err := w.WriteSentence(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if cw.calls != 2 {
		t.Errorf("expected 2 writes, got %d", cw.calls)
	}

	if strings.Count(cw.String(), "\n\n") != 1 {
		t.Errorf("expected exactly one blank line separator")
	}
}

func TestWriterRejectsUnrepresentable(t *testing.T) {
	base := func() *sent.TokenBuilder {
		return sent.NewTokenBuilder().Form("Die").Lemma("die").CPOS("ART").POS("ART").Head(2).HeadRel("DET")
	}

	tests := []struct {
		name string
		tok  sent.Token
	}{
		{"negative head", base().Head(-1).Token()},
		{"negative projective head", base().PHead(-3).Token()},
		{"tab in form", base().Form("a\tb").Token()},
		{"newline in lemma", base().Lemma("a\nb").Token()},
		{"carriage return in pos", base().POS("ART\r").Token()},
		{"tab in features", base().Features(sent.NewFeatures("a:b\tc")).Token()},
		{"empty marker features", base().Features(sent.NewFeatures("_")).Token()},
		{"empty marker deprel", base().HeadRel("_").Token()},
		{"empty marker pdeprel", base().PHeadRel("_").Token()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := sent.Sentence{base().Token(), tt.tok}

			err := NewWriter(&buf).WriteSentence(s)
			if !errors.Is(err, ErrUnrepresentable) {
				t.Fatalf("expected ErrUnrepresentable, got %v", err)
			}

			if !strings.Contains(err.Error(), "token 2") {
				t.Errorf("expected the token position in %q", err)
			}

			if buf.Len() != 0 {
				t.Errorf("expected no output, got %q", buf.String())
			}
		})
	}
}

func TestValidateAcceptsRoundTrip(t *testing.T) {
	s := sent.Sentence{
		sent.NewTokenBuilder().Form("_").Lemma("_").CPOS("_").POS("_").Features(sent.NewFeatures("")).Head(0).HeadRel("").Token(),
		sent.NewTokenBuilder().Form("a b").Features(sent.NewFeatures("x:_")).PHead(0).PHeadRel("ROOT").Token(),
	}

	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteSentence(s); err != nil {
		t.Fatal(err)
	}

	assertSentences(t, readAll(t, buf.String()), []sent.Sentence{s})
}
