// Package conllx reads and writes dependency treebanks in the CoNLL-X format.
//
// Each token is a line of tab separated columns:
//
//	ID FORM LEMMA CPOSTAG POSTAG FEATS HEAD DEPREL PHEAD PDEPREL
//
// and sentences are separated by blank lines. The reader accepts lines with
// 8 to 10 columns and any number of blank lines between sentences. The writer
// always emits 10 columns and exactly one blank line between sentences.
package conllx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	sent "github.com/revelaction/conllx/sentence"
)

const (
	fieldSeparator = "\t"

	// EmptyMarker is the value of an absent column.
	EmptyMarker = "_"

	numRequiredColumns = 8
	numColumns         = 10
)

const (
	colID = iota
	colForm
	colLemma
	colCPOS
	colPOS
	colFeats
	colHead
	colDepRel
	colPHead
	colPDepRel
)

var columnNames = [numColumns]string{"ID", "FORM", "LEMMA", "CPOSTAG", "POSTAG", "FEATS", "HEAD", "DEPREL", "PHEAD", "PDEPREL"}

// Reader reads sentences from a CoNLL-X stream. It is a single forward pass
// over the stream and is not safe for concurrent use.
type Reader struct {
	r    *bufio.Reader
	line int

	// err is the sticky I/O error.
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadSentence returns the next sentence. At the end of the stream it returns
// io.EOF.
//
// A malformed sentence returns a *ParseError after consuming the rest of the
// sentence, so the next call continues with the following sentence. Any other
// error comes from the underlying reader and is returned on every following
// call.
func (r *Reader) ReadSentence() (sent.Sentence, error) {
	if r.err != nil {
		return nil, r.err
	}

	var (
		tokens   sent.Sentence
		parseErr error
		pending  bool
	)

	for {
		line, err := r.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = fmt.Errorf("conllx: read line %d: %w", r.line+1, err)
				return nil, r.err
			}

			// EOF terminates a pending sentence
			if !pending {
				return nil, io.EOF
			}
			break
		}

		if strings.TrimSpace(line) == "" {
			if pending {
				break
			}
			continue
		}

		pending = true
		if parseErr != nil {
			// skip till the next separator
			continue
		}

		token, err := parseToken(line, r.line)
		if err != nil {
			parseErr = err
			continue
		}

		tokens = append(tokens, token)
	}

	if parseErr != nil {
		return nil, parseErr
	}

	return tokens, nil
}

// Sentences returns the remaining sentences of the stream as a sequence. A
// parse error is yielded in place of its sentence and the sequence goes on;
// an I/O error is yielded once and ends the sequence.
func (r *Reader) Sentences() iter.Seq2[sent.Sentence, error] {
	return func(yield func(sent.Sentence, error) bool) {
		for {
			s, err := r.ReadSentence()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(s, err) {
				return
			}

			if err != nil && !IsParseError(err) {
				return
			}
		}
	}
}

// readLine returns the next line without the line terminator. A last line
// without terminator is returned with a nil error.
func (r *Reader) readLine() (string, error) {
	line, err := r.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	r.line++
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func parseToken(line string, lineNo int) (sent.Token, error) {
	fields := strings.Split(line, fieldSeparator)

	// the ID is checked first: a line that is not a token at all fails as a
	// non numeric ID.
	id, err := parseInt(fields[colID], colID, lineNo)
	if err != nil {
		return sent.Token{}, err
	}
	if id == 0 {
		return sent.Token{}, &ParseError{
			Line:   lineNo,
			Column: columnNames[colID],
			Value:  fields[colID],
			Err:    fmt.Errorf("%w: ID must be positive", ErrIntegerParse),
		}
	}

	if len(fields) < numRequiredColumns || len(fields) > numColumns {
		return sent.Token{}, &ParseError{
			Line:  lineNo,
			Value: line,
			Err:   fmt.Errorf("%w: %d columns, want %d to %d", ErrMalformedRecord, len(fields), numRequiredColumns, numColumns),
		}
	}

	b := sent.NewTokenBuilder().
		Form(fields[colForm]).
		Lemma(fields[colLemma]).
		CPOS(fields[colCPOS]).
		POS(fields[colPOS])

	if f := fields[colFeats]; f != EmptyMarker {
		b.Features(sent.NewFeatures(f))
	}

	if v := fields[colHead]; v != EmptyMarker {
		head, err := parseInt(v, colHead, lineNo)
		if err != nil {
			return sent.Token{}, err
		}
		b.Head(head)
	}

	if v := fields[colDepRel]; v != EmptyMarker {
		b.HeadRel(v)
	}

	if len(fields) > colPHead && fields[colPHead] != EmptyMarker {
		pHead, err := parseInt(fields[colPHead], colPHead, lineNo)
		if err != nil {
			return sent.Token{}, err
		}
		b.PHead(pHead)
	}

	if len(fields) > colPDepRel && fields[colPDepRel] != EmptyMarker {
		b.PHeadRel(fields[colPDepRel])
	}

	return b.Token(), nil
}

// parseInt parses a non negative integer column.
func parseInt(value string, col, lineNo int) (int, error) {
	n, err := strconv.ParseUint(value, 10, strconv.IntSize-1)
	if err != nil {
		return 0, &ParseError{
			Line:   lineNo,
			Column: columnNames[col],
			Value:  value,
			Err:    fmt.Errorf("%w: %w", ErrIntegerParse, err),
		}
	}

	return int(n), nil
}
