package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"

	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// CreateSchemas runs the embedded script sql/<name>. The scripts only use
// IF NOT EXISTS, so running one on an existing corpus is a no-op.
func CreateSchemas(pool *sqlitex.Pool, name string) error {
	script, err := sqlFiles.ReadFile(path.Join("sql", name))
	if err != nil {
		return fmt.Errorf("unknown schema %s: %w", name, err)
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("schema %s: %w", name, err)
	}
	return nil
}

// CreateDocTables creates the docs, sentences and lemma index tables.
func CreateDocTables(pool *sqlitex.Pool) error {
	return CreateSchemas(pool, "docs.sql")
}
