package main

import (
	"fmt"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/storage/filesystem"
	"github.com/revelaction/conllx/storage/sqlite/zombiezen"
)

func exportCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export a SQLite corpus to a directory of CoNLL-X files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "SQLite database", Required: true},
			&cli.StringFlag{Name: "to", Usage: "target directory, created if needed", Required: true},
		},
		Action: func(c *cli.Context) error {
			return exportDocs(c.String("from"), c.String("to"), ui)
		},
	}
}

func exportDocs(from, to string, ui UI) error {
	if _, err := os.Stat(from); err != nil {
		return fmt.Errorf("repository not found: %s", from)
	}

	pool, err := zombiezen.NewPool(from)
	if err != nil {
		return err
	}
	defer pool.Close()
	src := zombiezen.NewDocStore(pool)

	// Ensure target directory exists
	if err := os.MkdirAll(to, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	dst, err := filesystem.NewDocStore(to)
	if err != nil {
		return err
	}

	docs, err := src.List("")
	if err != nil {
		return err
	}

	progress := uiprogress.New()
	progress.SetOut(ui.Err)
	progress.Start()
	defer progress.Stop()

	bar := progress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	for _, meta := range docs {
		doc, err := src.Read(meta.Id)
		if err != nil {
			return fmt.Errorf("failed to read doc %s (id %d): %w", meta.Title, meta.Id, err)
		}

		// Ensure title is set in the exported document
		doc.Title = meta.Title

		if err := dst.Write(doc); err != nil {
			return fmt.Errorf("failed to export doc %s: %w", meta.Title, err)
		}
		bar.Incr()
	}

	_, err = fmt.Fprintf(ui.Out, "Successfully exported %d docs from %s to %s\n", len(docs), from, to)
	return err
}
