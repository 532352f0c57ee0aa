package storage

import (
	"strings"

	sent "github.com/revelaction/conllx/sentence"
)

// Cursor for paginated candidate queries. The zero Cursor is the start.
type Cursor int64

// SentenceResult is a sentence with its location in the corpus.
type SentenceResult struct {
	// RowID identifies the sentence in the store. It is the Cursor value
	// after this sentence.
	RowID int64

	DocID    int
	DocTitle string

	// SentenceID is the index of the sentence inside of the doc.
	SentenceID int

	Sentence sent.Sentence
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Sentences) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates calls onCandidate for each sentence containing ALL given
	// lemmas (every sentence if lemmas is empty), resuming after the given
	// cursor and visiting at most limit sentences.
	// Returns the new cursor; it is equal to after when there are no more
	// sentences.
	FindCandidates(lemmas []string, after Cursor, limit int, onCandidate func(SentenceResult) error) (Cursor, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences/lemmas to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}

// HasLabel reports whether one of labels contains match. An empty match
// matches everything.
func HasLabel(labels []string, match string) bool {
	if match == "" {
		return true
	}

	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}

	return false
}
