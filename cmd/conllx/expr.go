package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/match"
	"github.com/revelaction/conllx/render"
	"github.com/revelaction/conllx/search"
)

const exprPageSize = 500

func exprCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "expr",
		Usage:     "print the sentences matching an expression",
		ArgsUsage: "<item> [n <item>]...",
		Description: "A bare word is a lemma, an uppercase word a POS tag. form=, lemma=,\n" +
			"cpos=, pos=, dep= and feat=key[:value] select other columns, a|b are\n" +
			"alternatives and !lemma excludes sentences. A number n requires the\n" +
			"next item within n tokens of the previous one.",
		Flags: append(renderFlags(),
			&cli.IntFlag{Name: "doc", Usage: "only this doc", Value: -1},
			&cli.BoolFlag{Name: "json", Usage: "print the matches as JSON"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("expr: no expression given")
			}

			expr, err := match.Parse(c.Args().Slice())
			if err != nil {
				return err
			}

			repo, err := docRepository(c, pool)
			if err != nil {
				return err
			}

			s := search.New(repo)
			if docId := c.Int("doc"); docId >= 0 {
				s.WithDocID(docId)
			}

			var results []*match.SentenceMatch
			err = s.All(expr, exprPageSize, func(sm *match.SentenceMatch) error {
				results = append(results, sm)
				return nil
			})
			if err != nil {
				return err
			}

			var r render.MatchRenderer
			if c.Bool("json") {
				r = render.NewJSONRenderer(ui.Out)
			} else {
				r, err = newRenderer(c, ui)
				if err != nil {
					return err
				}
			}

			return r.Match(results)
		},
	}
}
