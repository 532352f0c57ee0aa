package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/file"
	"github.com/revelaction/conllx/stat"
	"github.com/revelaction/conllx/storage"
)

func statCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print statistics of CoNLL-X files or of the corpus",
		ArgsUsage: "[file]...",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "doc", Usage: "only this doc of the corpus", Value: -1},
			&cli.IntFlag{Name: "top", Usage: "number of most frequent values per column", Value: 10},
		},
		Action: func(c *cli.Context) error {
			hdl := stat.NewHandler()

			if c.NArg() > 0 {
				for _, path := range c.Args().Slice() {
					doc, err := file.ReadDoc(path)
					if err != nil {
						return err
					}
					hdl.Aggregate(doc)
				}

				return printStats(ui.Out, hdl.Get(), c.Int("top"))
			}

			repo, err := docRepository(c, pool)
			if err != nil {
				return err
			}

			if err := aggregateRepo(hdl, repo, c.Int("doc")); err != nil {
				return err
			}

			return printStats(ui.Out, hdl.Get(), c.Int("top"))
		},
	}
}

// aggregateRepo adds the doc with docId, or every doc if docId is negative.
func aggregateRepo(hdl *stat.Handler, repo storage.DocReader, docId int) error {
	if docId >= 0 {
		doc, err := repo.Read(docId)
		if err != nil {
			return err
		}
		hdl.Aggregate(doc)
		return nil
	}

	docs, err := repo.List("")
	if err != nil {
		return err
	}

	for _, meta := range docs {
		doc, err := repo.Read(meta.Id)
		if err != nil {
			return err
		}
		hdl.Aggregate(doc)
	}

	return nil
}

func printStats(w io.Writer, stats stat.Stats, top int) error {
	fmt.Fprintf(w, "docs        %d\n", stats.NumDocs)
	fmt.Fprintf(w, "sentences   %d\n", stats.NumSentences)
	fmt.Fprintf(w, "tokens      %d\n", stats.NumTokens)
	fmt.Fprintf(w, "mean length %d\n", stats.TokensPerSentenceMean)
	fmt.Fprintf(w, "roots       %d\n", stats.NumRoots)

	lengths := make([]int, 0, len(stats.TokensPerSentenceDis))
	for l := range stats.TokensPerSentenceDis {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)

	fmt.Fprintln(w, "\nlength distribution")
	for _, l := range lengths {
		fmt.Fprintf(w, "%6d %d\n", l, stats.TokensPerSentenceDis[l])
	}

	for _, col := range []struct {
		name string
		m    map[string]int
	}{
		{"CPOSTAG", stats.CPOS},
		{"POSTAG", stats.POS},
		{"DEPREL", stats.DepRel},
		{"FEATS", stats.Features},
	} {
		fmt.Fprintf(w, "\n%s\n", col.name)
		for _, c := range stat.Top(col.m, top) {
			fmt.Fprintf(w, "%8d %s\n", c.N, c.Value)
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
