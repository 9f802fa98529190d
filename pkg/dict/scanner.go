package dict

import "strings"

// scanEvent is what a single scanner step produced.
type scanEvent uint8

const (
	evNone scanEvent = iota
	evToken
	evEndVal
	evBlockStart
	evBlockEnd
	evArrayStart
	evArrayEnd
	evEOF
	evError
)

func (e scanEvent) String() string {
	switch e {
	case evToken:
		return "token"
	case evEndVal:
		return "end of value"
	case evBlockStart:
		return "start of block"
	case evBlockEnd:
		return "end of block"
	case evArrayStart:
		return "start of array"
	case evArrayEnd:
		return "end of array"
	case evEOF:
		return "EOF"
	case evError:
		return "error"
	default:
		return "none"
	}
}

// token is a bare or quoted run of bytes. Bare tokens alias the input
// buffer; quoted tokens are unescaped copies.
type token struct {
	data   string
	quoted bool
}

// scanner states
const (
	scanSkipWhitespace = iota
	scanGetToken
	scanGetQuoted
	scanSkipComment
	scanSkipNewline
	scanSkipMLComment
)

// scanner walks a resident buffer byte by byte, classifying each byte
// through chflags, and emits exactly one event per next() call. It tracks
// line/position for diagnostics, plus a saved position captured when
// entering a construct that needs a closing delimiter, so unterminated
// strings and comments are reported at their opening byte.
type scanner struct {
	buf  string
	pos  int
	c    int // current byte, -1 at end of input
	prev int

	lineStart int
	lineNo    int
	linePos   int

	sLineStart int
	sLineNo    int
	sLinePos   int

	state int
	qchar int // quote byte that opened the current quoted string
	err   ErrKind
	tok   token
}

func newScanner(buf string) *scanner {
	s := &scanner{
		buf:    buf,
		c:      -1,
		lineNo: 1,
		sLineNo: 1,
		state:  scanSkipWhitespace,
	}
	if len(buf) > 0 && buf[0] != 0 {
		s.c = int(buf[0])
	}
	return s
}

// forward advances to the next byte and returns it, or -1 at end of input.
// A NUL terminates input like the end of the buffer. Two different adjacent
// newline bytes count as a single line break, so CRLF and LFCR both advance
// the line number once.
func (s *scanner) forward() int {
	if s.pos >= len(s.buf) {
		s.c = -1
		return -1
	}
	s.prev = s.c
	s.pos++
	if s.pos >= len(s.buf) || s.buf[s.pos] == 0 {
		s.c = -1
		return -1
	}
	c := s.buf[s.pos]
	if chclass(c, clNewline) {
		if s.prev < 0 || !chclass(byte(s.prev), clNewline) || int(c) == s.prev {
			s.lineStart = s.pos + 1
			s.lineNo++
		}
	}
	s.linePos = s.pos - s.lineStart
	if s.linePos < 0 {
		s.linePos = 0
	}
	s.c = int(c)
	return s.c
}

// peek looks at the byte after the current one without advancing.
func (s *scanner) peek() int {
	if s.pos+1 >= len(s.buf) {
		return -1
	}
	return int(s.buf[s.pos+1])
}

// save records the current position; restored into diagnostics when a
// closing delimiter never arrives.
func (s *scanner) save() {
	s.sLineStart, s.sLineNo, s.sLinePos = s.lineStart, s.lineNo, s.linePos
}

// next runs the scanner until an event occurs.
func (s *scanner) next() scanEvent {
	for {
		switch s.state {

		case scanSkipWhitespace:
			for s.c >= 0 && chclass(byte(s.c), clSpace|clNewline) {
				s.forward()
			}
			// a '/' here may open a comment; inside a token it is an
			// ordinary token byte (10.0.0.0/24)
			if s.c == mlCommentOut {
				if s.peek() == mlCommentIn {
					s.save()
					s.forward()
					s.state = scanSkipMLComment
					continue
				}
				if s.peek() == mlCommentOut {
					s.forward()
					s.state = scanSkipComment
					continue
				}
			}
			s.state = scanGetToken

		case scanGetToken:
			start := s.pos
			for s.c >= 0 && chclass(byte(s.c), clToken|clExt) {
				s.forward()
			}
			if s.pos > start {
				s.tok = token{data: s.buf[start:s.pos]}
				s.state = scanSkipWhitespace
				return evToken
			}

		case scanGetQuoted:
			var b strings.Builder
			for s.c != s.qchar {
				if s.c == escapeChar {
					s.forward()
					if s.c >= 0 && chclass(byte(s.c), clEscIn) {
						b.WriteByte(escIn[byte(s.c)])
						s.forward()
						continue
					}
					if s.c >= 0 && chclass(byte(s.c), clSpace|clNewline) {
						// trailing escape: the literal continues on the
						// next line, the whitespace run is swallowed
						for s.c >= 0 && chclass(byte(s.c), clSpace|clNewline) {
							s.forward()
						}
						continue
					}
					// unknown escape: drop the backslash, keep the byte
				}
				if s.c < 0 {
					s.err = ErrKindUnterminatedString
					return evError
				}
				b.WriteByte(byte(s.c))
				s.forward()
			}
			s.forward() // closing quote
			s.tok = token{data: b.String(), quoted: true}
			s.state = scanSkipWhitespace
			return evToken

		case scanSkipComment:
			for s.c >= 0 && !chclass(byte(s.c), clNewline) {
				s.forward()
			}
			s.state = scanSkipNewline

		case scanSkipNewline:
			for s.c >= 0 && chclass(byte(s.c), clNewline) {
				s.forward()
			}
			s.state = scanSkipWhitespace

		case scanSkipMLComment:
			for s.c >= 0 && s.c != mlCommentOut {
				s.forward()
			}
			if s.c < 0 {
				s.err = ErrKindUnterminatedComment
				return evError
			}
			if s.prev == mlCommentIn {
				s.state = scanSkipWhitespace
			}
			s.forward()

		default:
			s.err = ErrKindInternal
			return evError
		}

		// no event raised: dispatch on structural bytes
		switch s.c {
		case quoteChar, quoteAltChar:
			s.save()
			s.qchar = s.c
			s.state = scanGetQuoted
			s.forward()
		case endValChar, endValAltChar:
			s.state = scanSkipWhitespace
			s.forward()
			return evEndVal
		case startBlockChar:
			s.save()
			s.state = scanSkipWhitespace
			s.forward()
			return evBlockStart
		case endBlockChar:
			s.state = scanSkipWhitespace
			s.forward()
			return evBlockEnd
		case startArrayChar:
			s.save()
			s.state = scanSkipWhitespace
			s.forward()
			return evArrayStart
		case endArrayChar:
			s.state = scanSkipWhitespace
			s.forward()
			return evArrayEnd
		case commentChar:
			s.state = scanSkipComment
			s.forward()
		default:
			if s.c < 0 {
				return evEOF
			}
			// anything that can neither start a token nor be skipped is
			// rejected here, or the state machine would never advance
			if !chclass(byte(s.c), clToken|clExt|clSpace|clNewline) {
				s.err = ErrKindUnexpectedChar
				return evError
			}
		}
	}
}
