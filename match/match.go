package match

import (
	"sort"
	"strings"

	sent "github.com/revelaction/conllx/sentence"
)

// Matcher matches sentences against an Expr.
type Matcher struct {
	Expr Expr
}

func NewMatcher(expr Expr) *Matcher {
	return &Matcher{Expr: expr}
}

// candidate is an ordered set of token positions (0-based) matched by
// consecutive items of the expression.
//
// the expression
//
//	cuando 3 VERB
//
// matches the sentence
//
//	Cuando me vio abrir los ojos
//
// with two candidates: [cuando, vio] and [cuando, abrir].
type candidate []int

// SentenceMatch is a sentence matched by an Expr, with the positions of the
// matched tokens.
type SentenceMatch struct {
	DocId      int    `json:"doc_id"`
	DocTitle   string `json:"doc_title,omitempty"`
	SentenceId int    `json:"sentence_id"`

	Sentence sent.Sentence `json:"sentence"`

	// Matches contains one entry per way the expression matches.
	Matches [][]int `json:"matches"`
}

// Positions returns the sorted unique positions of all matched tokens.
func (sm *SentenceMatch) Positions() []int {
	seen := map[int]bool{}
	var positions []int
	for _, m := range sm.Matches {
		for _, p := range m {
			if !seen[p] {
				seen[p] = true
				positions = append(positions, p)
			}
		}
	}

	sort.Ints(positions)
	return positions
}

// Tokens returns the matched tokens in sentence order.
func (sm *SentenceMatch) Tokens() []sent.Token {
	var tokens []sent.Token
	for _, p := range sm.Positions() {
		tokens = append(tokens, sm.Sentence[p])
	}
	return tokens
}

// MatchSentence returns nil if the sentence does not match.
func (m *Matcher) MatchSentence(s sent.Sentence, docId, sentId int) *SentenceMatch {
	matches, ok := sentenceExprMatch(s, m.Expr)
	if !ok {
		return nil
	}

	return &SentenceMatch{
		DocId:      docId,
		SentenceId: sentId,
		Sentence:   s,
		Matches:    matches,
	}
}

// Match returns the matching sentences of doc.
func (m *Matcher) Match(doc sent.Doc) []*SentenceMatch {
	var res []*SentenceMatch
	for i, s := range doc.Sentences {
		if sm := m.MatchSentence(s, doc.Id, i); sm != nil {
			sm.DocTitle = doc.Title
			res = append(res, sm)
		}
	}
	return res
}

func sentenceExprMatch(s sent.Sentence, expr Expr) ([][]int, bool) {
	if len(expr) == 0 {
		return nil, false
	}

	// chains of candidates, a RequiresOne item starts a new chain and
	// RequiresNear items extend the last one.
	var chains [][]candidate

	for _, item := range expr {
		switch item.Requirement() {
		case RequiresOne:
			var chain []candidate
			for i, t := range s {
				if isTokenMatch(t, item) {
					chain = append(chain, candidate{i})
				}
			}
			if len(chain) == 0 {
				return nil, false
			}
			chains = append(chains, chain)

		case RequiresNear:
			last := len(chains) - 1
			if last < 0 {
				return nil, false
			}
			chain := matchNear(s, chains[last], item)
			if len(chain) == 0 {
				return nil, false
			}
			chains[last] = chain

		case RequiresNone:
			for _, t := range s {
				if isTokenMatch(t, item) {
					return nil, false
				}
			}
		}
	}

	var matches [][]int
	for _, chain := range chains {
		for _, c := range chain {
			matches = append(matches, c)
		}
	}

	return matches, true
}

func matchNear(s sent.Sentence, previous []candidate, item Item) []candidate {
	var matched []candidate
	sentenceEnd := len(s) - 1

	for _, c := range previous {
		previousPos := c[len(c)-1]

		end := previousPos + item.Near
		if end > sentenceEnd {
			end = sentenceEnd
		}

		for pos := previousPos + 1; pos <= end; pos++ {
			if isTokenMatch(s[pos], item) {
				next := make(candidate, 0, len(c)+1)
				next = append(next, c...)
				next = append(next, pos)
				matched = append(matched, next)
			}
		}
	}

	return matched
}

func isTokenMatch(t sent.Token, item Item) bool {
	if item.Form != "" && !matchValue(item.Form, t.Form()) {
		return false
	}

	if lemma := strings.TrimPrefix(item.Lemma, negation); lemma != "" && !matchValue(lemma, t.Lemma()) {
		return false
	}

	if item.CPOS != "" && !matchValue(item.CPOS, t.CPOS()) {
		return false
	}

	if item.POS != "" && !matchValue(item.POS, t.POS()) {
		return false
	}

	if item.Dep != "" {
		rel, ok := t.HeadRel()
		if !ok || !matchValue(item.Dep, rel) {
			return false
		}
	}

	if item.Feat != "" && !matchFeature(t, item.Feat) {
		return false
	}

	return true
}

// matchValue compares a token value with a pattern value that may contain
// alternatives separated by '|'.
func matchValue(pattern, value string) bool {
	for _, alt := range strings.Split(pattern, orSeparator) {
		if alt == value {
			return true
		}
	}
	return false
}

func matchFeature(t sent.Token, pattern string) bool {
	f, ok := t.Features()
	if !ok {
		return false
	}

	m := f.Map()
	for _, alt := range strings.Split(pattern, orSeparator) {
		key, value, hasValue := strings.Cut(alt, ":")
		v, present := m[key]
		if !present {
			continue
		}

		if !hasValue {
			return true
		}

		if v != nil && *v == value {
			return true
		}
	}

	return false
}
