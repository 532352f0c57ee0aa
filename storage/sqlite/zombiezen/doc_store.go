package zombiezen

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/revelaction/conllx/conllx"
	sent "github.com/revelaction/conllx/sentence"
	"github.com/revelaction/conllx/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore keeps docs in SQLite. Sentences are stored as CoNLL-X text and
// indexed by lemma.
type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY title", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:     stmt.ColumnInt(0),
				Title:  stmt.ColumnText(1),
				Labels: splitLabels(stmt.ColumnText(2)),
			}

			if !storage.HasLabel(doc.Labels, labelMatch) {
				return nil
			}

			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			doc.Labels = splitLabels(stmt.ColumnText(1))
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s, err := parseSentence(stmt.ColumnText(0))
			if err != nil {
				return fmt.Errorf("doc %d: %w", id, err)
			}
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

func (h *DocStore) FindCandidates(lemmas []string, after storage.Cursor, limit int, onCandidate func(storage.SentenceResult) error) (storage.Cursor, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	var (
		query strings.Builder
		args  []any
	)

	query.WriteString("SELECT s.rowid, s.doc_id, s.position, s.data, d.title FROM sentences s JOIN docs d ON s.doc_id = d.id WHERE s.rowid > ?")
	args = append(args, int64(after))

	// INTERSECT keeps the sentences that contain ALL lemmas.
	if len(lemmas) > 0 {
		query.WriteString(" AND s.rowid IN (")
		for i, lemma := range lemmas {
			if i > 0 {
				query.WriteString(" INTERSECT ")
			}
			query.WriteString("SELECT sentence_rowid FROM sentence_lemmas WHERE lemma = ?")
			args = append(args, lemma)
		}
		query.WriteString(")")
	}

	query.WriteString(" ORDER BY s.rowid LIMIT ?")
	args = append(args, limit)

	newCursor := after
	err = sqlitex.Execute(conn, query.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			res := storage.SentenceResult{
				RowID:      stmt.ColumnInt64(0),
				DocID:      stmt.ColumnInt(1),
				SentenceID: stmt.ColumnInt(2),
				DocTitle:   stmt.ColumnText(4),
			}

			s, err := parseSentence(stmt.ColumnText(3))
			if err != nil {
				return fmt.Errorf("sentence %d: %w", res.RowID, err)
			}
			res.Sentence = s

			newCursor = storage.Cursor(res.RowID)
			return onCandidate(res)
		},
	})
	if err != nil {
		return after, err
	}

	return newCursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	seen := map[string]bool{}
	err = sqlitex.Execute(conn, "SELECT labels FROM docs", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			for _, l := range splitLabels(stmt.ColumnText(0)) {
				if strings.Contains(l, pattern) {
					seen[l] = true
				}
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels, nil
}

func (h *DocStore) Write(doc sent.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []any{doc.Title, strings.Join(doc.Labels, ",")},
	})
	if err != nil {
		return fmt.Errorf("failed to insert doc %s: %w", doc.Title, err)
	}
	docID := conn.LastInsertRowID()

	for position, s := range doc.Sentences {
		// the stored text must parse back on Read
		if err := conllx.Validate(s); err != nil {
			return fmt.Errorf("doc %s: sentence %d: %w", doc.Title, position, err)
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, position, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{docID, position, conllx.Format(s)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		for _, lemma := range s.Lemmas() {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_lemmas (lemma, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []any{lemma, sentRowID},
			})
			if err != nil {
				return fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return nil
}

func parseSentence(data string) (sent.Sentence, error) {
	return conllx.NewReader(strings.NewReader(data)).ReadSentence()
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
