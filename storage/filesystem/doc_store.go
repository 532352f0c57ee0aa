package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/conllx/file"
	sent "github.com/revelaction/conllx/sentence"
	"github.com/revelaction/conllx/storage"
)

// DocStore is a directory of CoNLL-X files, one doc per file. Labels are not
// supported: every doc has none.
type DocStore struct {
	docDir string

	// file names, the index is the doc id
	names []string

	// In-memory cache
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document handler.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	h := &DocStore{docDir: docDir}
	for _, f := range files {
		if f.IsDir() || !file.IsCorpus(f.Name()) {
			continue
		}
		h.add(f.Name(), sent.Doc{Title: file.Title(f.Name())}, false)
	}

	return h, nil
}

func (h *DocStore) add(name string, doc sent.Doc, loaded bool) {
	doc.Id = len(h.docs)
	h.names = append(h.names, name)
	h.docs = append(h.docs, doc)
	h.loaded = append(h.loaded, loaded)
}

// Preload reads all docs into memory.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.names[i])
		}

		if _, err := h.load(i); err != nil {
			return err
		}
	}

	return nil
}

func (h *DocStore) load(id int) (sent.Doc, error) {
	if h.loaded[id] {
		return h.docs[id], nil
	}

	doc, err := file.ReadDoc(filepath.Join(h.docDir, h.names[id]))
	if err != nil {
		return sent.Doc{}, err
	}

	h.docs[id].Sentences = doc.Sentences
	h.loaded[id] = true
	return h.docs[id], nil
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	var docs []sent.Doc
	for _, d := range h.docs {
		if !storage.HasLabel(d.Labels, labelMatch) {
			continue
		}
		docs = append(docs, sent.Doc{Id: d.Id, Title: d.Title, Labels: d.Labels})
	}

	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}
	return h.load(id)
}

// FindCandidates scans the docs in order. The cursor is the number of
// sentences visited so far.
func (h *DocStore) FindCandidates(lemmas []string, after storage.Cursor, limit int, onCandidate func(storage.SentenceResult) error) (storage.Cursor, error) {
	var pos int64
	visited := 0

	for id := range h.docs {
		doc, err := h.load(id)
		if err != nil {
			return after, err
		}

		for sentId, s := range doc.Sentences {
			pos++
			if pos <= int64(after) {
				continue
			}

			if !hasLemmas(s, lemmas) {
				continue
			}

			res := storage.SentenceResult{
				RowID:      pos,
				DocID:      doc.Id,
				DocTitle:   doc.Title,
				SentenceID: sentId,
				Sentence:   s,
			}
			if err := onCandidate(res); err != nil {
				return after, err
			}

			visited++
			if visited == limit {
				return storage.Cursor(pos), nil
			}
		}
	}

	if visited == 0 {
		return after, nil
	}

	return storage.Cursor(pos), nil
}

func hasLemmas(s sent.Sentence, lemmas []string) bool {
	for _, l := range lemmas {
		found := false
		for _, t := range s {
			if t.Lemma() == l {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	seen := map[string]bool{}
	for _, d := range h.docs {
		for _, l := range d.Labels {
			if strings.Contains(l, pattern) {
				seen[l] = true
			}
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels, nil
}

// Write stores doc as <title>.conll in the directory. Existing files are not
// overwritten.
func (h *DocStore) Write(doc sent.Doc) error {
	name := doc.Title + ".conll"
	for _, n := range h.names {
		if n == name {
			return fmt.Errorf("doc already exists: %s", name)
		}
	}

	if err := file.WriteDoc(filepath.Join(h.docDir, name), doc); err != nil {
		return err
	}

	h.add(name, sent.Doc{Title: doc.Title, Sentences: doc.Sentences}, true)
	return nil
}
