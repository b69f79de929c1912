package dsv

import (
	"io"
	"runtime"
	"strings"
)

// Writer accumulates delimited text in memory, quoting fields on demand.
type Writer struct {
	buf strings.Builder

	// Separator is the field delimiter. Default is ','.
	Separator rune
	// Quote is the quote character. Default is '"'.
	Quote rune
	// AlwaysWrap forces quoting for all fields when enabled.
	AlwaysWrap bool
	// NewLine terminates each record. Default is the platform line terminator.
	NewLine string

	midRecord bool
}

// NewWriter creates an empty Writer using the platform line terminator.
func NewWriter() *Writer {
	return &Writer{
		Separator: ',',
		Quote:     '"',
		NewLine:   platformNewLine(),
	}
}

// WriteField appends field to the current record. Fields containing the separator, a quote,
// a line break, a comma or a tab are quoted so the output stays readable as CSV and TSV.
func (w *Writer) WriteField(field string) {
	sep, quote := w.delimiters()
	if w.midRecord {
		w.buf.WriteRune(sep)
	}
	w.midRecord = true

	if !w.AlwaysWrap && !fieldNeedsQuote(field, sep, quote) {
		w.buf.WriteString(field)
		return
	}

	q := string(quote)
	w.buf.WriteString(q)
	w.buf.WriteString(strings.ReplaceAll(field, q, q+q))
	w.buf.WriteString(q)
}

// NextRecord terminates the current record with NewLine, or the platform line terminator
// when NewLine is empty.
func (w *Writer) NextRecord() {
	newLine := w.NewLine
	if newLine == "" {
		newLine = platformNewLine()
	}
	w.buf.WriteString(newLine)
	w.midRecord = false
}

// WriteRecord writes every field of record and terminates it.
func (w *Writer) WriteRecord(record []string) {
	for _, field := range record {
		w.WriteField(field)
	}
	w.NextRecord()
}

// WriteAll writes multiple records.
func (w *Writer) WriteAll(records [][]string) {
	for _, record := range records {
		w.WriteRecord(record)
	}
}

// String returns the accumulated text. It does not reset the writer.
func (w *Writer) String() string {
	return w.buf.String()
}

// Len returns the number of accumulated bytes.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteTo copies the accumulated text to dst without resetting the writer.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := io.WriteString(dst, w.buf.String())
	return int64(n), err
}

// Clear discards the accumulated text. The writer stays usable and keeps its configuration.
func (w *Writer) Clear() {
	w.buf.Reset()
	w.midRecord = false
}

func (w *Writer) delimiters() (sep, quote rune) {
	sep = w.Separator
	if sep == 0 {
		sep = ','
	}
	quote = w.Quote
	if quote == 0 {
		quote = '"'
	}
	return sep, quote
}

// fieldNeedsQuote checks comma and tab whatever the separator is.
func fieldNeedsQuote(field string, sep, quote rune) bool {
	for _, c := range field {
		switch c {
		case sep, quote, '\n', '\r', ',', '\t':
			return true
		}
	}
	return false
}

func platformNewLine() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
