package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/conllx"
	"github.com/revelaction/conllx/file"
)

var errMalformed = errors.New("malformed sentences found")

func validateCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "report every malformed sentence of CoNLL-X files",
		ArgsUsage: "<file>...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("validate: no files given")
			}

			logger, err := newLogger(c, ui)
			if err != nil {
				return err
			}

			malformed := 0
			for _, path := range c.Args().Slice() {
				n, err := validateFile(path, logger, ui)
				if err != nil {
					return err
				}
				malformed += n
			}

			if malformed > 0 {
				return fmt.Errorf("%w: %d", errMalformed, malformed)
			}
			return nil
		},
	}
}

// validateFile returns the number of malformed sentences of path.
func validateFile(path string, logger *log.Logger, ui UI) (int, error) {
	f, err := file.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sentences, tokens, malformed := 0, 0, 0
	for s, err := range conllx.NewReader(f).Sentences() {
		if err != nil {
			var pe *conllx.ParseError
			if !errors.As(err, &pe) {
				return malformed, err
			}

			logger.Warn("malformed sentence", "file", path, "line", pe.Line, "err", pe.Err)
			malformed++
			continue
		}

		sentences++
		tokens += len(s)
	}

	_, err = fmt.Fprintf(ui.Out, "%s: %d sentences, %d tokens, %d malformed\n", path, sentences, tokens, malformed)
	return malformed, err
}
