// # DSV: A Streaming RFC 4180 Reader and Writer for Go
//
// DSV reads and writes delimiter-separated text following the RFC 4180 grammar, with the
// separator generalised to any single character so the same code handles CSV, TSV and other
// DSV variants. The reader pulls one field at a time from a character stream with a single
// rune of lookahead and never materialises the whole input.
//
// # Features
//
// - Field-level reader (`Reader.PopField`, `Reader.NextRecord`) over any `Source`, plus
//   record helpers (`ReadRecord`, `ReadAll`, `Records`).
// - CRLF, LF and CR line endings, quoted fields with embedded separators, quotes and newlines.
// - Structured error reporting via `ParseError`, `ErrUnterminatedQuote` and `ErrUnexpectedChar`.
// - Buffered writer with configurable separator, line terminator and forced quoting.
// - Legacy encodings decoded on the fly through `NewDecodingSource`.
//
// # Grammar
//
//	record         = field *(SEP field) (CRLF / LF / CR / EOF)
//	field          = quoted-field / unquoted-field
//	unquoted-field = *(any char except SEP, CR, LF)
//	quoted-field   = DQUOTE *(any char except DQUOTE / 2DQUOTE) DQUOTE
//
// Reader and Writer values are not safe for concurrent use.
package dsv
