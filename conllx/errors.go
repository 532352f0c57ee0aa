package conllx

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is returned for a line with a wrong number of columns.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrIntegerParse is returned when ID, HEAD or PHEAD is not a valid
	// integer.
	ErrIntegerParse = errors.New("invalid integer")

	// ErrEmptySentence is returned when writing a sentence without tokens.
	ErrEmptySentence = errors.New("empty sentence")

	// ErrUnrepresentable is returned when writing a token that would not read
	// back as the same token: a column with a tab or line break, a negative
	// HEAD or PHEAD, or a present FEATS, DEPREL or PDEPREL equal to "_".
	ErrUnrepresentable = errors.New("token not representable")
)

// ParseError describes a malformed sentence. Only the first problem of the
// sentence is reported.
type ParseError struct {
	// Line is the 1-based line number of the offending line.
	Line int

	// Column is the name of the column that failed, empty for arity errors.
	Column string

	// Value is the offending value (the whole line for arity errors).
	Value string

	Err error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %s (%q): %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is a per sentence parse error, after
// which reading can continue. Any other error from the Reader is an I/O
// error.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
