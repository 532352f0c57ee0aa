package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/conllx"
	"github.com/revelaction/conllx/file"
)

func convertCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "rewrite a CoNLL-X file in canonical 10 column form",
		ArgsUsage: "<in> <out>",
		Description: "Use - for stdin or stdout. The extensions .gz, .xz and .zst select\n" +
			"the compression of each side.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "skip-malformed", Usage: "log and drop malformed sentences"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("convert: need <in> and <out>")
			}

			logger, err := newLogger(c, ui)
			if err != nil {
				return err
			}

			in, out := c.Args().Get(0), c.Args().Get(1)
			n, skipped, err := convert(in, out, c.Bool("skip-malformed"), func(pe *conllx.ParseError) {
				logger.Warn("skipping malformed sentence", "file", in, "line", pe.Line, "err", pe.Err)
			})
			if err != nil {
				return err
			}

			logger.Info("converted", "sentences", n, "skipped", skipped)
			return nil
		},
	}
}

// convert copies the sentences of in to out. Without skip, the first parse
// error aborts.
func convert(in, out string, skip bool, onSkip func(*conllx.ParseError)) (n, skipped int, err error) {
	if in != "-" && out != "-" && samePath(in, out) {
		return 0, 0, fmt.Errorf("convert: input and output are the same file: %s", in)
	}

	r, err := file.Open(in)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	w, err := file.Create(out)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	cw := conllx.NewWriter(w)
	for s, rerr := range conllx.NewReader(r).Sentences() {
		if rerr != nil {
			var pe *conllx.ParseError
			if skip && errors.As(rerr, &pe) {
				onSkip(pe)
				skipped++
				continue
			}
			return n, skipped, fmt.Errorf("%s: %w", in, rerr)
		}

		if err := cw.WriteSentence(s); err != nil {
			return n, skipped, err
		}
		n++
	}

	return n, skipped, nil
}

// samePath reports whether a and b name the same file. b may not exist yet.
func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}

	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
