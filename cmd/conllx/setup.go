package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/storage"
	"github.com/revelaction/conllx/storage/filesystem"
	"github.com/revelaction/conllx/storage/sqlite/zombiezen"
)

// NewDocRepository opens the corpus at path: a directory of CoNLL-X files or
// a SQLite database.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	if path == "" {
		return nil, errors.New("no corpus given, use --doc-path or CONLLX_DOC_PATH")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func docRepository(c *cli.Context, p *Pool) (storage.DocRepository, error) {
	return NewDocRepository(p, c.String(docPathFlag))
}

// preload loads repositories that support it, showing a progress bar on the
// error stream.
func preload(repo storage.DocReader, ui UI) error {
	pl, ok := repo.(storage.Preloader)
	if !ok {
		return nil
	}

	progress := uiprogress.New()
	progress.SetOut(ui.Err)
	progress.Start()
	defer progress.Stop()

	bar := progress.AddBar(1) // total is set in the callback
	bar.AppendCompleted()
	bar.PrependElapsed()

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	return pl.Preload(func(current, total int, name string) {
		if bar.Total != total {
			bar.Total = total
		}
		currentName = name
		_ = bar.Set(current)
	})
}
