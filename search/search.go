package search

import (
	"github.com/revelaction/conllx/match"
	"github.com/revelaction/conllx/storage"
)

// Search finds the sentences of a document repository that match an
// expression.
type Search struct {
	repo  storage.DocReader
	docID *int
}

// New creates a new Search over the given repository.
func New(dr storage.DocReader) *Search {
	return &Search{
		repo: dr,
	}
}

// WithDocID restricts the search to a single document ID.
// If set, the doc is read and scanned completely (Read) instead of using the
// indexed strategy (FindCandidates).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// Sentences calls onMatch for each sentence matching expr, resuming after
// cursor and visiting at most limit candidate sentences. It returns the
// cursor for the next page; the cursor does not change when there are no
// more sentences. A single doc search is not paginated.
func (s *Search) Sentences(expr match.Expr, cursor storage.Cursor, limit int, onMatch func(*match.SentenceMatch) error) (storage.Cursor, error) {
	matcher := match.NewMatcher(expr)

	if s.docID != nil {
		doc, err := s.repo.Read(*s.docID)
		if err != nil {
			return cursor, err
		}
		doc.Id = *s.docID

		for _, m := range matcher.Match(doc) {
			if err := onMatch(m); err != nil {
				return cursor, err
			}
		}
		return cursor, nil
	}

	// Only the plain lemmas narrow the candidates; the matcher checks the rest.
	return s.repo.FindCandidates(expr.Lemmas(), cursor, limit, func(res storage.SentenceResult) error {
		m := matcher.MatchSentence(res.Sentence, res.DocID, res.SentenceID)
		if m == nil {
			return nil
		}

		m.DocTitle = res.DocTitle
		return onMatch(m)
	})
}

// All calls onMatch for every matching sentence of the repository, paging
// through the candidates.
func (s *Search) All(expr match.Expr, pageSize int, onMatch func(*match.SentenceMatch) error) error {
	var cursor storage.Cursor
	for {
		next, err := s.Sentences(expr, cursor, pageSize, onMatch)
		if err != nil {
			return err
		}

		if s.docID != nil || next == cursor {
			return nil
		}
		cursor = next
	}
}
