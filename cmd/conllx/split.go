package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/conllx"
	"github.com/revelaction/conllx/file"
	sent "github.com/revelaction/conllx/sentence"
)

func splitCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     "partition the sentences of a CoNLL-X file over several files",
		ArgsUsage: "<in> <out>...",
		Description: "roundrobin sends sentence i to output i mod n. weighted sends\n" +
			"consecutive blocks by --weights (f.ex. 8,1,1 for train, dev, test).\n" +
			"hash sends equal sentences to the same output.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rule", Usage: "roundrobin, weighted or hash", Value: "roundrobin"},
			&cli.IntSliceFlag{Name: "weights", Usage: "one weight per output, for the weighted rule"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return errors.New("split: need <in> and at least one <out>")
			}

			args := c.Args().Slice()
			selector, err := newSelector(c.String("rule"), c.IntSlice("weights"), len(args)-1)
			if err != nil {
				return err
			}

			counts, err := split(args[0], args[1:], selector)
			if err != nil {
				return err
			}

			for i, out := range args[1:] {
				fmt.Fprintf(ui.Out, "%s: %d sentences\n", out, counts[i])
			}
			return nil
		},
	}
}

func newSelector(rule string, weights []int, n int) (conllx.Selector, error) {
	switch rule {
	case "roundrobin":
		return conllx.RoundRobin(), nil
	case "hash":
		return conllx.Hash(conllx.ContentKey), nil
	case "weighted":
		if len(weights) != n {
			return nil, fmt.Errorf("split: %d weights for %d outputs", len(weights), n)
		}
		return conllx.Weighted(weights...)
	}

	return nil, fmt.Errorf("split: unknown rule %q", rule)
}

// countingWriter counts the sentences written to one partition.
type countingWriter struct {
	w *conllx.Writer
	n int
}

func (c *countingWriter) WriteSentence(s sent.Sentence) error {
	if err := c.w.WriteSentence(s); err != nil {
		return err
	}
	c.n++
	return nil
}

// split writes the sentences of in to outs and returns the number of
// sentences per output.
func split(in string, outs []string, selector conllx.Selector) (counts []int, err error) {
	r, err := file.Open(in)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}()

	writers := make([]*countingWriter, len(outs))
	sinks := make([]conllx.SentenceWriter, len(outs))
	for i, out := range outs {
		w, err := file.Create(out)
		if err != nil {
			return nil, err
		}
		closers = append(closers, w)

		writers[i] = &countingWriter{w: conllx.NewWriter(w)}
		sinks[i] = writers[i]
	}

	pw, err := conllx.NewPartitioningSentenceWriter(sinks, selector)
	if err != nil {
		return nil, err
	}

	for s, err := range conllx.NewReader(r).Sentences() {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}

		if err := pw.WriteSentence(s); err != nil {
			return nil, err
		}
	}

	counts = make([]int, len(writers))
	for i, w := range writers {
		counts[i] = w.n
	}
	return counts, nil
}
