package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/query"
)

func queryCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "search the corpus interactively",
		Flags: append(renderFlags(),
			&cli.IntFlag{Name: "limit", Usage: "maximum matched sentences per query", Value: query.DefaultLimit},
		),
		Action: func(c *cli.Context) error {
			repo, err := docRepository(c, pool)
			if err != nil {
				return err
			}

			if err := preload(repo, ui); err != nil {
				return err
			}

			r, err := newRenderer(c, ui)
			if err != nil {
				return err
			}

			h := query.NewHandler(repo, r, ui.Out)
			h.Limit = c.Int("limit")
			return h.Run()
		},
	}
}
