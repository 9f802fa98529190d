package dict

// Byte class flags. A byte can belong to several classes so the scanner can
// treat it differently depending on its state: ':' is whitespace while
// skipping (JSON "key": value) but a legal extended token byte while a token
// is being collected (interface names, inactive: prefixes).
const (
	clToken   = 1 << iota // legal part of a token
	clExt                 // extended token byte, joins a token already started
	clCtrl                // structural byte handled by the scanner switch
	clSpace               // whitespace
	clNewline             // line break
	clIllegal             // rejected outside quoted strings
	clEscOut              // must be escaped when dumped inside quotes
	clEscIn               // legal byte after the escape character
)

// Default structural bytes, Juniper / gated style with JSON tolerance.
const (
	endValChar     = ';'
	endValAltChar  = ','
	quoteChar      = '"'
	quoteAltChar   = '\''
	startBlockChar = '{'
	endBlockChar   = '}'
	startArrayChar = '['
	endArrayChar   = ']'
	escapeChar     = '\\'
	commentChar    = '#'
	mlCommentOut   = '/'
	mlCommentIn    = '*'
	indentWidth    = 4
)

// DefaultPathSep separates segments in path queries.
const DefaultPathSep = '/'

// chclass reports whether b carries any of the class bits in mask.
func chclass(b byte, mask uint8) bool { return chflags[b]&mask != 0 }

// chflags is the process-wide byte classification table. It is built once
// and never written afterwards.
var chflags = func() [256]uint8 {
	var t [256]uint8

	// everything below SPC and above DEL is illegal unless reclassified
	for i := 0; i < 32; i++ {
		t[i] = clIllegal
	}
	for i := 127; i < 256; i++ {
		t[i] = clIllegal
	}

	for b := byte('a'); b <= 'z'; b++ {
		t[b] = clToken
	}
	for b := byte('A'); b <= 'Z'; b++ {
		t[b] = clToken
	}
	for b := byte('0'); b <= '9'; b++ {
		t[b] = clToken
	}
	for _, b := range []byte("@*+-./<>?~^_") {
		t[b] = clToken
	}

	t[' '] = clSpace
	t['\t'] = clSpace | clEscOut
	t['\n'] = clNewline | clEscOut
	t['\r'] = clNewline | clEscOut
	t['\b'] = clIllegal | clEscOut
	t['\f'] = clIllegal | clEscOut

	// ':' doubles as whitespace and as an extended token byte; '=' and '|'
	// are separators in some of the formats we tolerate
	t[':'] = clSpace | clExt
	t['='] = clSpace
	t['|'] = clSpace

	t[endValChar] = clCtrl
	t[endValAltChar] = clCtrl
	t[startBlockChar] = clCtrl
	t[endBlockChar] = clCtrl
	t[startArrayChar] = clCtrl | clEscOut | clEscIn
	t[endArrayChar] = clCtrl | clEscOut | clEscIn
	t[commentChar] = clCtrl
	t[quoteChar] = clCtrl | clEscOut | clEscIn
	t[quoteAltChar] = clCtrl | clEscOut | clEscIn
	t[escapeChar] = clEscOut | clEscIn

	for _, b := range []byte("btnfr") {
		t[b] |= clEscIn
	}

	// any printable byte with no class yet ($, %, & and friends) is illegal
	// outside quoted strings
	for i := 33; i < 127; i++ {
		if t[i] == 0 {
			t[i] = clIllegal
		}
	}

	return t
}()

// escIn maps the byte following an escape character to the byte it encodes.
// Bytes that escape to themselves (quotes, brackets, the escape character)
// are handled by identity.
var escIn = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	t['b'] = '\b'
	t['t'] = '\t'
	t['n'] = '\n'
	t['f'] = '\f'
	t['r'] = '\r'
	return t
}()

// escOut is the inverse of escIn for the control bytes that cannot appear
// raw in quoted output.
var escOut = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	t['\b'] = 'b'
	t['\t'] = 't'
	t['\n'] = 'n'
	t['\f'] = 'f'
	t['\r'] = 'r'
	return t
}()
