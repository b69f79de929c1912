package dsv

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

type readerState uint8

const (
	stateFieldStart readerState = iota
	stateUnquoted
	stateQuoted
	stateRecordEnd
)

// Reader pulls fields and records lazily from a Source.
//
// A new Reader is positioned on the first record: call PopField until it returns
// ErrEndOfRecord, then NextRecord to move to the following record.
type Reader struct {
	src    Source
	closer io.Closer

	// Separator is the field delimiter. Default is ','.
	Separator rune
	// Quote is the quote character. Default is '"'.
	Quote rune

	state readerState
	field strings.Builder
	err   error

	offset  int
	line    int
	column  int
	afterCR bool
}

// NewReader creates a Reader that consumes UTF-8 text from r, panicking if r is nil.
// If r is an io.Closer, Close closes it.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("dsv: reader source cannot be nil")
	}
	return NewSourceReader(NewSource(r))
}

// NewStringReader creates a Reader over an in-memory string.
func NewStringReader(s string) *Reader {
	return NewSourceReader(NewStringSource(s))
}

// NewSourceReader creates a Reader over src, panicking if src is nil. If src is an
// io.Closer, Close closes it.
func NewSourceReader(src Source) *Reader {
	if src == nil {
		panic("dsv: reader source cannot be nil")
	}
	r := &Reader{
		src:       src,
		Separator: ',',
		Quote:     '"',
		line:      1,
	}
	if c, ok := src.(io.Closer); ok {
		r.closer = c
	}
	return r
}

// PopField returns the next field of the current record. It returns ErrEndOfRecord once the
// record is exhausted. Any other error is terminal and is returned by every later call.
func (r *Reader) PopField() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.state == stateRecordEnd {
		return "", ErrEndOfRecord
	}
	field, err := r.lexField()
	if err != nil {
		return "", r.fail(err)
	}
	return field, nil
}

// NextRecord discards the unread fields of the current record and moves past its line break.
// It reports false once the stream is exhausted.
func (r *Reader) NextRecord() (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for r.state != stateRecordEnd {
		if _, err := r.PopField(); err != nil {
			return false, err
		}
	}

	c, err := r.src.Peek()
	if err != nil {
		return false, r.fail(err)
	}
	if c == EOF {
		return false, nil
	}
	// CRLF, LF and CR all end a record.
	for _, brk := range [...]rune{'\r', '\n'} {
		if c != brk {
			continue
		}
		if _, err := r.advance(); err != nil {
			return false, r.fail(err)
		}
		if c, err = r.src.Peek(); err != nil {
			return false, r.fail(err)
		}
	}
	if c == EOF {
		return false, nil
	}
	r.state = stateFieldStart
	return true, nil
}

// ReadRecord returns the fields of the next record, or io.EOF when none remain.
// An empty stream holds no records.
func (r *Reader) ReadRecord() ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.state == stateRecordEnd {
		ok, err := r.NextRecord()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, io.EOF
		}
	} else if r.offset == 0 {
		c, err := r.src.Peek()
		if err != nil {
			return nil, r.fail(err)
		}
		if c == EOF {
			r.state = stateRecordEnd
			return nil, io.EOF
		}
	}

	var record []string
	for {
		field, err := r.PopField()
		if errors.Is(err, ErrEndOfRecord) {
			return record, nil
		}
		if err != nil {
			return nil, err
		}
		record = append(record, field)
	}
}

// ReadAll exhausts the reader, repeatedly calling ReadRecord until io.EOF and returning the
// accumulated records plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.ReadRecord()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// Records iterates over the remaining records. Iteration stops after the first error.
func (r *Reader) Records() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			record, err := r.ReadRecord()
			if err == io.EOF {
				return
			}
			if !yield(record, err) || err != nil {
				return
			}
		}
	}
}

// Close closes the underlying stream if the reader owns one. Only the first call reaches
// the stream.
func (r *Reader) Close() error {
	c := r.closer
	if c == nil {
		return nil
	}
	r.closer = nil
	return c.Close()
}

// lexField runs the field state machine from stateFieldStart until the field is closed.
func (r *Reader) lexField() (string, error) {
	sep, quote := r.delimiters()
	r.field.Reset()
	r.state = stateFieldStart

	for {
		c, err := r.src.Peek()
		if err != nil {
			return "", err
		}

		switch r.state {
		case stateFieldStart:
			r.state = stateUnquoted
			if c == quote {
				if _, err := r.advance(); err != nil {
					return "", err
				}
				r.state = stateQuoted
			}
		case stateUnquoted:
			if isFieldEnd(c, sep) {
				return r.closeField(sep)
			}
			if _, err := r.advance(); err != nil {
				return "", err
			}
			r.field.WriteRune(c)
		case stateQuoted:
			if c == EOF {
				return "", r.parseError(r.column+1, EOF, ErrUnterminatedQuote)
			}
			if _, err := r.advance(); err != nil {
				return "", err
			}
			if c != quote {
				r.field.WriteRune(c)
				continue
			}

			// A quote either closes the field or escapes the quote after it.
			next, err := r.src.Peek()
			if err != nil {
				return "", err
			}
			switch {
			case isFieldEnd(next, sep):
				return r.closeField(sep)
			case next == quote:
				if _, err := r.advance(); err != nil {
					return "", err
				}
				r.field.WriteRune(quote)
			default:
				if _, err := r.advance(); err != nil {
					return "", err
				}
				return "", r.parseError(r.column, next, ErrUnexpectedChar)
			}
		default:
			return "", fmt.Errorf("%w: lexing from state %d", ErrInvalidState, r.state)
		}
	}
}

// closeField consumes the separator after a field, or marks the record finished when a line
// break or the end of the stream follows.
func (r *Reader) closeField(sep rune) (string, error) {
	c, err := r.src.Peek()
	if err != nil {
		return "", err
	}
	switch c {
	case EOF, '\r', '\n':
		r.state = stateRecordEnd
	case sep:
		if _, err := r.advance(); err != nil {
			return "", err
		}
		r.state = stateFieldStart
	default:
		return "", fmt.Errorf("%w: %q follows a closed field on line %d", ErrInvalidState, c, r.line)
	}
	return r.field.String(), nil
}

// advance consumes one rune and updates the line and column counters.
func (r *Reader) advance() (rune, error) {
	c, err := r.src.Next()
	if err != nil || c == EOF {
		return c, err
	}
	r.offset++
	switch {
	case c == '\n' && r.afterCR:
		r.afterCR = false
	case c == '\n' || c == '\r':
		r.line++
		r.column = 0
		r.afterCR = c == '\r'
	default:
		r.afterCR = false
		r.column++
	}
	return c, nil
}

func (r *Reader) delimiters() (sep, quote rune) {
	sep = r.Separator
	if sep == 0 {
		sep = ','
	}
	quote = r.Quote
	if quote == 0 {
		quote = '"'
	}
	return sep, quote
}

// parseError attaches the current line and supplied column to err, producing a *ParseError.
func (r *Reader) parseError(column int, c rune, err error) error {
	return &ParseError{Line: r.line, Column: column, Char: c, Err: err}
}

func (r *Reader) fail(err error) error {
	r.err = err
	return err
}

func isFieldEnd(c, sep rune) bool {
	return c == sep || c == '\r' || c == '\n' || c == EOF
}
