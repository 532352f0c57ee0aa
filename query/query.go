package query

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/conllx/match"
	"github.com/revelaction/conllx/render"
	"github.com/revelaction/conllx/search"
	"github.com/revelaction/conllx/storage"
)

const (
	// DefaultLimit is the maximum number of matched sentences per query.
	DefaultLimit = 2000

	pageSize = 500
)

var fieldPrefixes = []string{"form=", "lemma=", "cpos=", "pos=", "dep=", "feat="}

// errLimit stops a search once the limit is reached.
var errLimit = errors.New("candidate limit reached")

type Handler struct {
	DocRepo  storage.DocReader
	Renderer *render.Renderer
	Out      io.Writer

	// Limit is the maximum number of matched sentences per query.
	Limit int

	history []string
}

func NewHandler(dr storage.DocReader, r *render.Renderer, out io.Writer) *Handler {
	return &Handler{
		DocRepo:  dr,
		Renderer: r,
		Out:      out,
		Limit:    DefaultLimit,
	}
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("conllx query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(h.history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}

		if in == "" {
			continue
		}

		if err := h.Execute(in); err != nil {
			fmt.Fprintf(h.Out, "✍  %v\n", err)
		}
	}
}

// Execute parses one line of input as an expression, searches the
// repository and renders the matches.
func (h *Handler) Execute(in string) error {
	expr, err := match.Parse(strings.Fields(in))
	if err != nil {
		return err
	}

	h.addHistory(in)

	var results []*match.SentenceMatch
	err = search.New(h.DocRepo).All(expr, pageSize, func(sm *match.SentenceMatch) error {
		results = append(results, sm)
		if h.Limit > 0 && len(results) >= h.Limit {
			return errLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].DocId != results[j].DocId {
			return results[i].DocId < results[j].DocId
		}
		return results[i].SentenceId < results[j].SentenceId
	})

	if err := h.Renderer.Match(results); err != nil {
		return err
	}

	_, err = fmt.Fprintf(h.Out, "✍  %d sentences\n", len(results))
	return err
}

func (h *Handler) addHistory(in string) {
	for _, past := range h.history {
		if past == in {
			return
		}
	}
	h.history = append(h.history, in)
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.suggest(in.TextBeforeCursor(), in.GetWordBeforeCursor())
}

// suggest completes the word before the cursor with the field prefixes and
// the whole line with past expressions.
func (h *Handler) suggest(line, word string) []prompt.Suggest {
	s := []prompt.Suggest{}
	if line == "" {
		return s
	}

	for _, past := range h.history {
		if len(past) > len(line) && strings.HasPrefix(past, line) {
			s = append(s, prompt.Suggest{Text: past[len(line)-len(word):], Description: "history"})
		}
	}

	if word == "" || strings.Contains(word, "=") {
		return s
	}

	for _, p := range fieldPrefixes {
		if strings.HasPrefix(p, word) {
			s = append(s, prompt.Suggest{Text: p, Description: "field"})
		}
	}

	return s
}
