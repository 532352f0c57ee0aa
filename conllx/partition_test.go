package conllx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	sent "github.com/revelaction/conllx/sentence"
)

func corpus(n int) []sent.Sentence {
	var sentences []sent.Sentence
	for i := range n {
		sentences = append(sentences, sent.Sentence{
			sent.NewTokenBuilder().Form(fmt.Sprintf("w%d", i)).Lemma("w").CPOS("N").POS("NN").Head(0).HeadRel("ROOT").Token(),
		})
	}
	return sentences
}

// recorder remembers the forms written to it.
type recorder struct {
	forms []string
}

func (r *recorder) WriteSentence(s sent.Sentence) error {
	r.forms = append(r.forms, s[0].Form())
	return nil
}

func partition(t *testing.T, sel Selector, n int, sentences []sent.Sentence) [][]string {
	t.Helper()

	recorders := make([]*recorder, n)
	writers := make([]SentenceWriter, n)
	for i := range n {
		recorders[i] = &recorder{}
		writers[i] = recorders[i]
	}

	pw, err := NewPartitioningSentenceWriter(writers, sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range sentences {
		if err := pw.WriteSentence(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if pw.Written() != len(sentences) {
		t.Errorf("Written() = %d, want %d", pw.Written(), len(sentences))
	}

	res := make([][]string, n)
	for i, r := range recorders {
		res[i] = r.forms
	}
	return res
}

func TestRoundRobin(t *testing.T) {
	got := partition(t, RoundRobin(), 3, corpus(7))
	want := [][]string{{"w0", "w3", "w6"}, {"w1", "w4"}, {"w2", "w5"}}

	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWeighted(t *testing.T) {
	sel, err := Weighted(8, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := partition(t, sel, 3, corpus(20))
	if len(got[0]) != 16 || len(got[1]) != 2 || len(got[2]) != 2 {
		t.Errorf("unexpected split sizes %d/%d/%d", len(got[0]), len(got[1]), len(got[2]))
	}

	if got[1][0] != "w8" || got[2][0] != "w9" {
		t.Errorf("unexpected assignment %v", got)
	}
}

func TestWeightedInvalid(t *testing.T) {
	if _, err := Weighted(0, 0); err == nil {
		t.Errorf("expected error for zero weights")
	}
	if _, err := Weighted(1, -1); err == nil {
		t.Errorf("expected error for negative weight")
	}
}

func TestPartitionDeterminism(t *testing.T) {
	sentences := corpus(50)
	weighted, _ := Weighted(3, 1)

	for name, sel := range map[string]Selector{
		"roundrobin": RoundRobin(),
		"weighted":   weighted,
		"hash":       Hash(nil),
	} {
		t.Run(name, func(t *testing.T) {
			first := partition(t, sel, 2, sentences)
			second := partition(t, sel, 2, sentences)

			if fmt.Sprint(first) != fmt.Sprint(second) {
				t.Errorf("two runs differ:\n%v\n%v", first, second)
			}

			total := len(first[0]) + len(first[1])
			if total != len(sentences) {
				t.Errorf("expected %d sentences in all partitions, got %d", len(sentences), total)
			}
		})
	}
}

func TestHashSameContentSamePartition(t *testing.T) {
	s := corpus(1)[0]
	sel := Hash(nil)

	want := sel.Select(0, s, 5)
	for i := 1; i < 20; i++ {
		if got := sel.Select(i, s, 5); got != want {
			t.Fatalf("position %d: partition %d, want %d", i, got, want)
		}
	}
}

func TestHashKey(t *testing.T) {
	sel := Hash(func(index int, _ sent.Sentence) []byte {
		return []byte("same")
	})

	sentences := corpus(10)
	got := partition(t, sel, 4, sentences)

	nonEmpty := 0
	for _, p := range got {
		if len(p) > 0 {
			nonEmpty++
		}
	}

	if nonEmpty != 1 {
		t.Errorf("expected all sentences in one partition, got %v", got)
	}
}

func TestPartitioningWriterSinks(t *testing.T) {
	var train, test bytes.Buffer

	pw, err := NewPartitioningWriter([]io.Writer{&train, &test}, RoundRobin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range testSentences() {
		if err := pw.WriteSentence(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assertSentences(t, readAll(t, train.String()), testSentences()[:1])
	assertSentences(t, readAll(t, test.String()), testSentences()[1:])
}

type failingSentenceWriter struct{}

func (failingSentenceWriter) WriteSentence(sent.Sentence) error {
	return errors.New("disk full")
}

func TestPartitioningWriterHaltsOnError(t *testing.T) {
	ok := &recorder{}
	pw, err := NewPartitioningSentenceWriter([]SentenceWriter{ok, failingSentenceWriter{}}, RoundRobin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sentences := corpus(4)
	if err := pw.WriteSentence(sentences[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := pw.WriteSentence(sentences[1]); err == nil {
		t.Fatalf("expected error from failing partition")
	}

	// no more writes after the failure
	if err := pw.WriteSentence(sentences[2]); err == nil {
		t.Errorf("expected sticky error")
	}

	if len(ok.forms) != 1 {
		t.Errorf("expected 1 sentence in the healthy partition, got %v", ok.forms)
	}
}

func TestPartitioningWriterOutOfRange(t *testing.T) {
	sel := SelectorFunc(func(int, sent.Sentence, int) int { return 7 })
	pw, err := NewPartitioningSentenceWriter([]SentenceWriter{&recorder{}}, sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := pw.WriteSentence(corpus(1)[0]); err == nil {
		t.Errorf("expected out of range error")
	}
}

func TestNewPartitioningWriterInvalid(t *testing.T) {
	if _, err := NewPartitioningWriter(nil, RoundRobin()); err == nil {
		t.Errorf("expected error for no partitions")
	}

	if _, err := NewPartitioningWriter([]io.Writer{io.Discard}, nil); err == nil {
		t.Errorf("expected error for nil selector")
	}
}
