package dsv

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// EOF is the rune a Source reports once the stream is exhausted.
const EOF rune = -1

// Source is a character stream with one rune of lookahead.
//
// Peek returns the next rune without consuming it and Next consumes and returns it. Both
// report EOF with a nil error at the end of the stream. A non-nil error is a failure of the
// underlying stream.
type Source interface {
	Peek() (rune, error)
	Next() (rune, error)
}

type runeSource struct {
	rd     io.RuneReader
	closer io.Closer

	next   rune
	err    error
	peeked bool
}

// NewSource returns a Source reading UTF-8 text from r. If r is an io.Closer, closing the
// Source closes r.
func NewSource(r io.Reader) Source {
	if r == nil {
		panic("dsv: source reader cannot be nil")
	}
	return newRuneSource(r, r)
}

// NewStringSource returns a Source over s.
func NewStringSource(s string) Source {
	return newRuneSource(strings.NewReader(s), nil)
}

// NewDecodingSource returns a Source that decodes r from enc to UTF-8 before it is lexed,
// e.g. charmap.Windows1252. If r is an io.Closer, closing the Source closes r.
func NewDecodingSource(r io.Reader, enc encoding.Encoding) Source {
	if r == nil {
		panic("dsv: source reader cannot be nil")
	}
	if enc == nil {
		enc = encoding.Nop
	}
	return newRuneSource(transform.NewReader(r, enc.NewDecoder()), r)
}

func newRuneSource(r io.Reader, owner io.Reader) *runeSource {
	rd, ok := r.(io.RuneReader)
	if !ok {
		rd = bufio.NewReaderSize(r, defaultBufferSize)
	}
	s := &runeSource{rd: rd}
	if c, ok := owner.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Peek implements Source.
func (s *runeSource) Peek() (rune, error) {
	if !s.peeked {
		s.next, s.err = s.read()
		s.peeked = true
	}
	return s.next, s.err
}

// Next implements Source. EOF and read errors are sticky.
func (s *runeSource) Next() (rune, error) {
	r, err := s.Peek()
	if err == nil && r != EOF {
		s.peeked = false
	}
	return r, err
}

func (s *runeSource) read() (rune, error) {
	r, _, err := s.rd.ReadRune()
	if err == io.EOF {
		return EOF, nil
	}
	if err != nil {
		return EOF, err
	}
	return r, nil
}

// Close releases the underlying stream once; later calls return nil.
func (s *runeSource) Close() error {
	c := s.closer
	if c == nil {
		return nil
	}
	s.closer = nil
	return c.Close()
}
