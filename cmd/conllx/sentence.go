package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/render"
)

func sentenceCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print a sentence of the corpus with its columns",
		ArgsUsage: "<docId> <sentenceId>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("sentence: need <docId> and <sentenceId>")
			}

			docId, err := strconv.Atoi(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid doc id: %w", err)
			}

			sentId, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid sentence id: %w", err)
			}

			repo, err := docRepository(c, pool)
			if err != nil {
				return err
			}

			doc, err := repo.Read(docId)
			if err != nil {
				return err
			}

			if sentId < 0 || sentId >= len(doc.Sentences) {
				return fmt.Errorf("sentence index %d out of bounds (0-%d)", sentId, len(doc.Sentences)-1)
			}

			s := doc.Sentences[sentId]
			r := render.NewRenderer(ui.Out)
			if err := r.Sentence(s, fmt.Sprintf("✍  %d-%d ", docId, sentId)); err != nil {
				return err
			}
			fmt.Fprintln(ui.Out)

			for i, t := range s {
				head, rel := "_", "_"
				if h, ok := t.Head(); ok {
					head = strconv.Itoa(h)
				}
				if hr, ok := t.HeadRel(); ok {
					rel = hr
				}
				feats := "_"
				if f, ok := t.Features(); ok {
					feats = f.String()
				}

				fmt.Fprintf(ui.Out, "%4d %20q %15q %8s %8s %4s %8s %s\n", i+1, t.Form(), t.Lemma(), t.CPOS(), t.POS(), head, rel, feats)
			}

			return nil
		},
	}
}
