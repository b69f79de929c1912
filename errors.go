package dsv

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfRecord is returned by PopField when the current record has no more fields.
	// Call NextRecord to move on.
	ErrEndOfRecord = errors.New("dsv: no more fields in record")
	// ErrUnterminatedQuote is returned when the stream ends inside a quoted field.
	ErrUnterminatedQuote = errors.New("dsv: unterminated quoted field")
	// ErrUnexpectedChar is returned when a closing quote is followed by something other than
	// a separator, a line break, the end of the stream or another quote.
	ErrUnexpectedChar = errors.New("dsv: unexpected character after closing quote")
	// ErrInvalidState reports a reader defect rather than malformed input. It is never wrapped
	// in a ParseError.
	ErrInvalidState = errors.New("dsv: reader reached an invalid state")
)

// ParseError contains location information for malformed input.
type ParseError struct {
	Line   int
	Column int
	// Char is the offending rune, or EOF when the stream ended early.
	Char rune
	Err  error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Char == EOF {
		return fmt.Sprintf("dsv: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("dsv: parse error on line %d, column %d near %q: %v", e.Line, e.Column, e.Char, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Is.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
