package conllx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/conllx/sentence"
)

// SentenceWriter is implemented by Writer and PartitioningWriter.
type SentenceWriter interface {
	WriteSentence(s sent.Sentence) error
}

// Writer writes sentences in the CoNLL-X format. Each sentence is formatted
// in memory and passed to the underlying writer in a single Write call.
type Writer struct {
	w io.Writer

	// first is false after the first sentence is written.
	first bool
}

var _ SentenceWriter = (*Writer)(nil)

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true}
}

// WriteSentence writes s with synthetic 1-based IDs and all 10 columns.
// Sentences are separated by one blank line.
func (w *Writer) WriteSentence(s sent.Sentence) error {
	if err := Validate(s); err != nil {
		return err
	}

	var b strings.Builder
	if !w.first {
		b.WriteString("\n")
	}

	for i, t := range s {
		appendToken(&b, i+1, t)
	}

	if _, err := w.w.Write([]byte(b.String())); err != nil {
		return fmt.Errorf("conllx: write sentence: %w", err)
	}

	w.first = false
	return nil
}

// Validate checks that s can be written and read back unchanged.
func Validate(s sent.Sentence) error {
	if len(s) == 0 {
		return ErrEmptySentence
	}

	for i, t := range s {
		if err := validateToken(t); err != nil {
			return fmt.Errorf("conllx: token %d: %w", i+1, err)
		}
	}
	return nil
}

func validateToken(t sent.Token) error {
	text := [...]struct {
		col   int
		value string
	}{
		{colForm, t.Form()},
		{colLemma, t.Lemma()},
		{colCPOS, t.CPOS()},
		{colPOS, t.POS()},
	}
	for _, c := range text {
		if strings.ContainsAny(c.value, "\t\n\r") {
			return unrepresentable(c.col, c.value)
		}
	}

	feats, hasFeats := t.Features()
	rel, hasRel := t.HeadRel()
	pRel, hasPRel := t.PHeadRel()

	optional := [...]struct {
		col     int
		value   string
		present bool
	}{
		{colFeats, feats.String(), hasFeats},
		{colDepRel, rel, hasRel},
		{colPDepRel, pRel, hasPRel},
	}
	for _, c := range optional {
		if !c.present {
			continue
		}
		if c.value == EmptyMarker || strings.ContainsAny(c.value, "\t\n\r") {
			return unrepresentable(c.col, c.value)
		}
	}

	if h, ok := t.Head(); ok && h < 0 {
		return unrepresentable(colHead, strconv.Itoa(h))
	}
	if h, ok := t.PHead(); ok && h < 0 {
		return unrepresentable(colPHead, strconv.Itoa(h))
	}

	return nil
}

func unrepresentable(col int, value string) error {
	return fmt.Errorf("%w: column %s (%q)", ErrUnrepresentable, columnNames[col], value)
}

// Format returns the CoNLL-X text of s as the first sentence of a stream. It
// does not validate s; use Validate before storing the text.
func Format(s sent.Sentence) string {
	var b strings.Builder
	for i, t := range s {
		appendToken(&b, i+1, t)
	}
	return b.String()
}

func appendToken(b *strings.Builder, id int, t sent.Token) {
	features := EmptyMarker
	if f, ok := t.Features(); ok {
		features = f.String()
	}

	columns := [numColumns]string{
		colID:      strconv.Itoa(id),
		colForm:    t.Form(),
		colLemma:   t.Lemma(),
		colCPOS:    t.CPOS(),
		colPOS:     t.POS(),
		colFeats:   features,
		colHead:    optionalInt(t.Head()),
		colDepRel:  optionalString(t.HeadRel()),
		colPHead:   optionalInt(t.PHead()),
		colPDepRel: optionalString(t.PHeadRel()),
	}

	b.WriteString(strings.Join(columns[:], fieldSeparator))
	b.WriteString("\n")
}

func optionalInt(v int, ok bool) string {
	if !ok {
		return EmptyMarker
	}
	return strconv.Itoa(v)
}

func optionalString(v string, ok bool) string {
	if !ok {
		return EmptyMarker
	}
	return v
}
