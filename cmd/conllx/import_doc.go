package main

import (
	"errors"
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/storage/filesystem"
	"github.com/revelaction/conllx/storage/sqlite/zombiezen"
)

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import a directory of CoNLL-X files into a SQLite corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "directory of CoNLL-X files", Required: true},
			&cli.StringFlag{Name: "to", Usage: "SQLite database, created if needed", Required: true},
			&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "label of the imported docs"},
		},
		Action: func(c *cli.Context) error {
			return importDocs(c.String("from"), c.String("to"), c.StringSlice("label"), ui)
		},
	}
}

func importDocs(from, to string, labels []string, ui UI) error {
	src, err := filesystem.NewDocStore(from)
	if err != nil {
		return err
	}

	docs, err := src.List("")
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return errors.New("import: no CoNLL-X files in " + from)
	}

	pool, err := zombiezen.NewPool(to)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := zombiezen.CreateDocTables(pool); err != nil {
		return fmt.Errorf("failed to create docs table: %w", err)
	}

	dst := zombiezen.NewDocStore(pool)

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
			return fmt.Errorf("failed to read doc %s: %w", meta.Title, err)
		}

		doc.Labels = labels
		if err := dst.Write(doc); err != nil {
			return fmt.Errorf("failed to write doc %s: %w", meta.Title, err)
		}
		bar.Incr()
	}

	_, err = fmt.Fprintf(ui.Out, "Successfully imported %d docs from %s to %s\n", len(docs), from, to)
	return err
}
