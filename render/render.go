package render

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/revelaction/conllx/conllx"
	"github.com/revelaction/conllx/match"
	sent "github.com/revelaction/conllx/sentence"
)

const (
	partialOffset = 6
	Defaultformat = "all"
)

var (
	Red       = "\033[1;31m"
	Green     = "\033[1;32m"
	Yellow    = "\033[0;33m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

var blindRe = regexp.MustCompile(`#+`)

// MatchRenderer writes search results.
type MatchRenderer interface {
	Match(results []*match.SentenceMatch) error
}

var _ MatchRenderer = (*Renderer)(nil)

func SupportedFormats() []string {
	return []string{"all", "part", "lemma", "aggr", "conll"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	PrefixFunc func(*match.SentenceMatch) string

	// Format determines the format of the sentence
	//
	// all: print all sentence
	// part: print the surrounding of the matches in the sentence, cut the rest.
	// lemma: print only the lemmas of the matched tokens
	// aggr: print the matched lemmas ordered by frequency
	// conll: print the sentence in CoNLL-X format
	Format string
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Format: Defaultformat}
}

// Match writes the matched sentences in the current Format.
func (r *Renderer) Match(results []*match.SentenceMatch) error {
	// if aggr format, we collect the aggr lemmas here
	aggregatedLemmas := map[string]int{}

	for _, sm := range results {
		positions := sm.Positions()

		var text string
		switch r.Format {
		case "part":
			text = r.syntagma(sm.Sentence, positions)
		case "lemma":
			text = lemmas(sm.Tokens())
		case "aggr":
			aggregatedLemmas[lemmas(sm.Tokens())]++
			continue
		case "conll":
			if _, err := fmt.Fprintf(r.W, "%s%s\n", r.buildPrefix(sm), conllx.Format(sm.Sentence)); err != nil {
				return err
			}
			continue
		default:
			text = r.sentence(sm.Sentence, positions)
		}

		if _, err := fmt.Fprintf(r.W, "%s%s\n", r.buildPrefix(sm), text); err != nil {
			return err
		}
	}

	if r.Format == "aggr" {
		return r.aggrLemmas(aggregatedLemmas)
	}

	return nil
}

// Sentence writes the text of s.
func (r *Renderer) Sentence(s sent.Sentence, prefix string) error {
	if r.Format == "conll" {
		_, err := fmt.Fprintf(r.W, "%s\n%s", prefix, conllx.Format(s))
		return err
	}

	_, err := fmt.Fprintf(r.W, "%s%s\n", prefix, r.sentence(s, nil))
	return err
}

// SentenceString returns the text of s with the tokens at positions
// highlighted.
func (r *Renderer) SentenceString(s sent.Sentence, positions []int) string {
	return r.sentence(s, positions)
}

// SentenceBlindedString returns the text of the sentence s with the tokens at
// positions substituted by a mask (###).
func (r *Renderer) SentenceBlindedString(s sent.Sentence, positions []int) string {
	words := make([]string, len(s))
	for i, t := range s {
		words[i] = t.Form()
		if isIn(i, positions) {
			words[i] = strings.Repeat("#", len([]rune(t.Form())))
		}
	}

	return blindRe.ReplaceAllLiteralString(strings.Join(words, " "), "###")
}

// sentence joins the forms with spaces. CoNLL-X has no token offsets, so
// the original spacing is not available.
func (r *Renderer) sentence(s sent.Sentence, positions []int) string {
	var str strings.Builder
	for i, t := range s {
		if i > 0 {
			str.WriteString(" ")
		}
		str.WriteString(r.colorToken(t.Form(), isIn(i, positions)))
	}

	return str.String()
}

func (r *Renderer) syntagma(s sent.Sentence, positions []int) string {
	// if not matches, we print the whole sentence
	if len(positions) == 0 {
		return r.sentence(s, positions)
	}

	// positions are sorted
	first := positions[0]
	last := positions[len(positions)-1]
	lastTokenIndex := len(s) - 1

	start := 0
	end := lastTokenIndex

	if first > partialOffset {
		start = first - partialOffset
	}

	if lastTokenIndex-last > partialOffset {
		end = last + partialOffset
	}

	shifted := make([]int, len(positions))
	for i, p := range positions {
		shifted[i] = p - start
	}

	return r.sentence(s[start:end+1], shifted)
}

// lemmas renders only the matched tokens (the lemma field)
func lemmas(tokens []sent.Token) string {
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		words = append(words, t.Lemma())
	}

	return strings.Join(words, " ")
}

func (r *Renderer) colorToken(form string, matched bool) string {
	if !r.HasColor || !matched {
		return form
	}

	return Green256 + form + Off
}

func isIn(i int, positions []int) bool {
	for _, p := range positions {
		if p == i {
			return true
		}
	}
	return false
}

func (r *Renderer) buildPrefix(sm *match.SentenceMatch) string {
	if !r.HasPrefix {
		return PrefixFuncEmpty(sm)
	}

	if r.PrefixFunc != nil {
		return r.PrefixFunc(sm)
	}

	// Default
	return fmt.Sprintf("[%s %2d %5d] ✍  ", r.title(sm.DocTitle), sm.DocId, sm.SentenceId)
}

func PrefixFuncEmpty(*match.SentenceMatch) string {
	return ""
}

func PrefixFuncIconHand(sm *match.SentenceMatch) string {
	return fmt.Sprintf("%2d ✍  ", sm.SentenceId)
}

func (r *Renderer) title(title string) string {
	runes := []rune(title)
	var part string
	if len(runes) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = string(runes[:20])
	}

	if !r.HasColor {
		return part
	}

	return Grey256 + part + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}

	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}

func (r *Renderer) aggrLemmas(agls map[string]int) error {
	type aggr struct {
		NumSent  int
		LemmaStr string
	}

	// flatten map to sort
	sl := make([]aggr, 0, len(agls))
	for lemmaStr, n := range agls {
		sl = append(sl, aggr{n, lemmaStr})
	}

	// first by num sentences, then shorter lemma strings
	sort.Slice(sl, func(i, j int) bool {
		if sl[i].NumSent != sl[j].NumSent {
			return sl[i].NumSent > sl[j].NumSent
		}

		if len(sl[i].LemmaStr) != len(sl[j].LemmaStr) {
			return len(sl[i].LemmaStr) < len(sl[j].LemmaStr)
		}

		return sl[i].LemmaStr < sl[j].LemmaStr
	})

	var prefix string
	for _, s := range sl {
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%5d] ✍  ", s.NumSent)
		}

		if _, err := fmt.Fprintf(r.W, "%s%s\n", prefix, s.LemmaStr); err != nil {
			return err
		}
	}

	return nil
}
