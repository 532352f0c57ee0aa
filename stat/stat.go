package stat

import (
	"sort"

	sent "github.com/revelaction/conllx/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs               int
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// NumRoots is the number of tokens attached to the root.
	NumRoots int

	CPOS     map[string]int
	POS      map[string]int
	DepRel   map[string]int
	Features map[string]int
}

// Count is a value with its frequency.
type Count struct {
	Value string
	N     int
}

// Top returns the n most frequent values of m, ties in alphabetical order.
// n <= 0 returns all.
func Top(m map[string]int, n int) []Count {
	counts := make([]Count, 0, len(m))
	for v, c := range m {
		counts = append(counts, Count{Value: v, N: c})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Value < counts[j].Value
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

func (h *Handler) Get() Stats {
	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		CPOS:                 map[string]int{},
		POS:                  map[string]int{},
		DepRel:               map[string]int{},
		Features:             map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences of doc. It can be called for several docs.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumDocs++
	for _, s := range doc.Sentences {
		h.AddSentence(s)
	}
}

func (h *Handler) AddSentence(s sent.Sentence) {
	h.stats.NumSentences++
	h.stats.NumTokens += len(s)
	h.stats.TokensPerSentenceDis[len(s)]++

	for _, t := range s {
		if t.IsRoot() {
			h.stats.NumRoots++
		}

		h.stats.CPOS[t.CPOS()]++
		h.stats.POS[t.POS()]++

		if rel, ok := t.HeadRel(); ok {
			h.stats.DepRel[rel]++
		}

		if f, ok := t.Features(); ok {
			for k := range f.Map() {
				h.stats.Features[k]++
			}
		}
	}
}
