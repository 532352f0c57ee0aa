package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func lsCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list the docs of the corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "only docs with a label containing this string"},
		},
		Action: func(c *cli.Context) error {
			repo, err := docRepository(c, pool)
			if err != nil {
				return err
			}

			docs, err := repo.List(c.String("label"))
			if err != nil {
				return err
			}

			for _, doc := range docs {
				if len(doc.Labels) == 0 {
					fmt.Fprintf(ui.Out, "📖 %d %s\n", doc.Id, doc.Title)
					continue
				}
				fmt.Fprintf(ui.Out, "📖 %d %s 🔖 %s\n", doc.Id, doc.Title, strings.Join(doc.Labels, ", "))
			}

			return nil
		},
	}
}

func labelsCommand(pool *Pool, ui UI) *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "list the labels of the corpus",
		ArgsUsage: "[match]",
		Action: func(c *cli.Context) error {
			repo, err := docRepository(c, pool)
			if err != nil {
				return err
			}

			labels, err := repo.Labels(c.Args().First())
			if err != nil {
				return err
			}

			if len(labels) > 0 {
				fmt.Fprintln(ui.Out, strings.Join(labels, ", "))
			}

			return nil
		},
	}
}
