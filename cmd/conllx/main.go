package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllx/render"
)

const (
	docPathFlag  = "doc-path"
	logLevelFlag = "log-level"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "conllx: %v\n", err)
}

func newApp(ui UI) *cli.App {
	pool := &Pool{}

	return &cli.App{
		Name:      "conllx",
		Usage:     "read, validate, split and search CoNLL-X corpora",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		// errors are printed by main
		ExitErrHandler:  func(*cli.Context, error) {},
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    docPathFlag,
				Aliases: []string{"d"},
				Usage:   "corpus directory or SQLite database",
				EnvVars: []string{"CONLLX_DOC_PATH"},
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{"CONLLX_LOG_LEVEL"},
			},
		},
		After: func(*cli.Context) error {
			return pool.Close()
		},
		Commands: []*cli.Command{
			validateCommand(ui),
			convertCommand(ui),
			splitCommand(ui),
			statCommand(pool, ui),
			importCommand(ui),
			exportCommand(ui),
			lsCommand(pool, ui),
			labelsCommand(pool, ui),
			sentenceCommand(pool, ui),
			exprCommand(pool, ui),
			queryCommand(pool, ui),
			versionCommand(ui),
		},
	}
}

func newLogger(c *cli.Context, ui UI) (*log.Logger, error) {
	logger := log.NewWithOptions(ui.Err, log.Options{
		Prefix: "conllx",
	})

	level, err := log.ParseLevel(c.String(logLevelFlag))
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	return logger, nil
}

// renderFlags are the output options of the search commands.
func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "all, part, lemma, aggr or conll",
			Value:   render.Defaultformat,
		},
		&cli.BoolFlag{Name: "no-color", Usage: "do not highlight matches"},
		&cli.BoolFlag{Name: "no-prefix", Usage: "do not print doc and sentence ids"},
	}
}

func newRenderer(c *cli.Context, ui UI) (*render.Renderer, error) {
	format := c.String("format")
	supported := false
	for _, f := range render.SupportedFormats() {
		if f == format {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	r := render.NewRenderer(ui.Out)
	r.Format = format
	r.HasColor = !c.Bool("no-color")
	r.HasPrefix = !c.Bool("no-prefix")
	return r, nil
}
