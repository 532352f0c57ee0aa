package sentence

import "slices"

// Sentence is an ordered sequence of tokens. The position of a token, starting
// at 1, is the index that Head and PHead of other tokens refer to.
type Sentence []Token

// Equal reports whether both sentences have the same tokens in the same order.
func (s Sentence) Equal(o Sentence) bool {
	return slices.Equal(s, o)
}

// Forms returns the words of the sentence.
func (s Sentence) Forms() []string {
	forms := make([]string, len(s))
	for i, t := range s {
		forms[i] = t.Form()
	}
	return forms
}

// Lemmas returns the unique non empty lemmas in order of appearance.
func (s Sentence) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, t := range s {
		l := t.Lemma()
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		lemmas = append(lemmas, l)
	}
	return lemmas
}

// Root returns the 0-based position of the first token attached to the root,
// or -1.
func (s Sentence) Root() int {
	for i, t := range s {
		if t.IsRoot() {
			return i
		}
	}
	return -1
}

// Doc is a corpus file: a title, optional labels and its sentences.
type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// NumTokens returns the number of tokens in all sentences of the doc.
func (d Doc) NumTokens() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s)
	}
	return n
}
