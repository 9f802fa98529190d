package dict

import (
	"errors"
	"fmt"
	"strings"
)

// Node operation results. Callers match them with errors.Is; the returned
// errors usually wrap one of these with context.
var (
	ErrNotFound  = errors.New("node not found")
	ErrWrongDict = errors.New("node belongs to a different dictionary")
	ErrExists    = errors.New("node already exists")
	ErrFailed    = errors.New("operation failed")
)

// ErrKind classifies a parse failure.
type ErrKind int

const (
	ErrKindNone                ErrKind = iota
	ErrKindEOF                         // unexpected end of input
	ErrKindUnterminatedString          // EOF inside a quoted string
	ErrKindUnterminatedComment         // EOF inside a multiline comment
	ErrKindUnexpectedChar              // illegal byte
	ErrKindExpectedName                // structural byte where a name was required
	ErrKindTokens                      // too many consecutive tokens
	ErrKindUnbalanced                  // unbalanced brackets
	ErrKindBlock                       // unexpected structure element
	ErrKindNullDict                    // nil dictionary
	ErrKindInternal                    // everything else
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNone:
		return "no error"
	case ErrKindEOF:
		return "unexpected EOF"
	case ErrKindUnterminatedString:
		return "unterminated quoted string"
	case ErrKindUnterminatedComment:
		return "unterminated multiline comment"
	case ErrKindUnexpectedChar:
		return "unexpected character"
	case ErrKindExpectedName:
		return "expected node name / identifier"
	case ErrKindTokens:
		return "too many consecutive identifiers"
	case ErrKindUnbalanced:
		return "unbalanced bracket(s) found"
	case ErrKindBlock:
		return "unexpected block element"
	case ErrKindNullDict:
		return "dictionary is nil"
	default:
		return "internal parser error"
	}
}

// excerptWidth is the widest source window shown in a parse error hint.
const excerptWidth = 80

// ParseError is the terminal state of a failed parse: what went wrong and
// where. Line and Pos point at the offending byte; for unterminated strings
// and comments they point at the opening delimiter instead of the buffer
// end. The source excerpt is captured at error time so the error stays
// usable after the caller discards the input buffer.
type ParseError struct {
	Kind ErrKind
	Line int // 1-based line number
	Pos  int // 0-based position within the line

	char    byte   // offending byte, when Kind is ErrKindUnexpectedChar
	excerpt string // source line window around the error
	caret   int    // caret position within excerpt
	ltrunc  bool
	rtrunc  bool
}

func (e *ParseError) Error() string {
	if e.Kind == ErrKindUnexpectedChar {
		return fmt.Sprintf("%s: %q (0x%02x) at line %d position %d", e.Kind, e.char, e.char, e.Line, e.Pos)
	}
	return fmt.Sprintf("%s at line %d position %d", e.Kind, e.Line, e.Pos)
}

// Excerpt returns a two-line hint: the source window around the error and a
// caret pointing at the offending byte.
func (e *ParseError) Excerpt() string {
	var b strings.Builder
	if e.ltrunc {
		b.WriteString("...")
	}
	b.WriteString(e.excerpt)
	if e.rtrunc {
		b.WriteString("...")
	}
	b.WriteByte('\n')
	if e.ltrunc {
		b.WriteString("   ")
	}
	b.WriteString(strings.Repeat(" ", e.caret))
	b.WriteByte('^')
	return b.String()
}

// newParseError captures position and source context from the scanner.
// Kinds raised while looking for a closing delimiter report the saved
// position where the construct was opened.
func newParseError(kind ErrKind, s *scanner) *ParseError {
	lineStart, lineNo, linePos := s.lineStart, s.lineNo, s.linePos
	switch kind {
	case ErrKindUnterminatedString, ErrKindUnterminatedComment, ErrKindUnbalanced:
		lineStart, lineNo, linePos = s.sLineStart, s.sLineNo, s.sLinePos
	}

	e := &ParseError{Kind: kind, Line: lineNo, Pos: linePos}
	if kind == ErrKindUnexpectedChar && s.pos < len(s.buf) {
		e.char = s.buf[s.pos]
	}

	// carve the source window around the error position
	start := lineStart
	half := excerptWidth / 2
	caret := linePos
	if linePos > half {
		start += linePos - half
		caret = half
		e.ltrunc = true
	}
	end := start
	for end < len(s.buf) && end-start < excerptWidth {
		if chclass(s.buf[end], clNewline) {
			break
		}
		end++
	}
	if end < len(s.buf) && !chclass(s.buf[end], clNewline) {
		e.rtrunc = true
	}
	if start > len(s.buf) {
		start = len(s.buf)
	}
	if end > len(s.buf) {
		end = len(s.buf)
	}
	e.excerpt = s.buf[start:end]
	if caret > len(e.excerpt) {
		caret = len(e.excerpt)
	}
	e.caret = caret
	return e
}
