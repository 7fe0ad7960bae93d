package pdf

import (
	"bytes"
	"strconv"
)

// stateFn is one state of the tokenizer's state machine. It is handed the
// current buffer window and the index to resume from, consumes as much of
// the window as it can make sense of, and returns the index it stopped at.
// Reaching the end of the window without completing a lexeme is not an
// error: the same stateFn runs again once the cursor refills. A stateFn
// transitions by assigning t.state before returning.
type stateFn func(t *Tokenizer, buf []byte, i int) int

// Tokenizer drives BufferCursor through the byte-level state machine that
// recognizes PDF Reference §3.2 lexical tokens. It is resumable across
// buffer refills: all in-progress-lexeme state lives in the Tokenizer's own
// fields, never on the Go call stack, so a partial token spanning two
// BufferCursor windows is handled transparently.
type Tokenizer struct {
	buf    *BufferCursor
	policy Policy

	state stateFn

	currentToken    []byte
	currentTokenPos int64

	hexBuf     []byte // NameHex's pending 0-2 hex digits
	octal      []byte // StringEscape's pending 0-3 octal digits
	parenDepth int     // String's nesting depth of unescaped parens

	pending []Token
	eof     bool
}

// NewTokenizer constructs a Tokenizer reading from buf.
func NewTokenizer(buf *BufferCursor, opts ...Option) *Tokenizer {
	return &Tokenizer{
		buf:    buf,
		policy: newPolicy(opts...),
		state:  stateMain,
	}
}

// Seek repositions the tokenizer, discarding any in-progress lexeme and
// pending tokens along with the underlying buffer.
func (t *Tokenizer) Seek(pos int64) error {
	if err := t.buf.Seek(pos); err != nil {
		return err
	}
	t.state = stateMain
	t.currentToken = nil
	t.currentTokenPos = 0
	t.hexBuf = nil
	t.octal = nil
	t.pending = nil
	t.eof = false
	return nil
}

// Tell returns the tokenizer's underlying cursor position.
func (t *Tokenizer) Tell() int64 { return t.buf.Tell() }

func (t *Tokenizer) emit(tok Token) {
	t.pending = append(t.pending, tok)
	t.policy.logger().Debug("token", "kind", tok.Kind, "pos", tok.Pos, "value", tok.String())
}

// NextToken drives the state machine until at least one token is ready and
// returns it. Once the underlying stream is exhausted, NextToken flushes any
// in-progress lexeme with one synthetic whitespace byte: if that flush
// completes a token, it is returned and eof latches so every later call
// fails; if it completes nothing, UnexpectedEOF is returned immediately.
func (t *Tokenizer) NextToken() (Token, error) {
	if t.eof && len(t.pending) == 0 {
		return Token{}, newError(UnexpectedEOF, t.buf.Tell(), "no more tokens")
	}
	for len(t.pending) == 0 {
		if err := t.buf.Fillbuf(); err != nil {
			before := len(t.pending)
			t.flushAtEOF()
			t.eof = true
			if len(t.pending) == before {
				return Token{}, err
			}
			break
		}
		buf, pos := t.buf.Window()
		newPos := t.state(t, buf, pos)
		t.buf.Advance(newPos - pos)
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok, nil
}

// flushAtEOF feeds the state machine a single synthetic whitespace byte,
// repeatedly if needed, to let a lexeme that was only waiting on a delimiter
// reach completion at true stream end. A plain Name or Number completes on
// the first call, but a Name ending mid-hex-escape (/Foo#4) needs a second:
// the first call only decodes the pending hex digit and falls back to the
// Name state, which must run again on the same byte to see the delimiter
// and emit. maxHops bounds this at more than that deepest known chain;
// further calls once a token is pending, or once a state stops progressing,
// are idempotent no-ops, so looping past completion is harmless.
func (t *Tokenizer) flushAtEOF() {
	const maxHops = 4
	flushBuf := []byte{'\n'}
	for hop := 0; hop < maxHops && len(t.pending) == 0; hop++ {
		t.state(t, flushBuf, 0)
	}
}

// --- byte classification, matching the PDF Reference's whitespace and
// delimiter character classes ---

func isWhitespace(b byte) bool {
	return b == 0 || b == '\t' || b == '\n' || b == '\f' || b == '\r' || b == ' '
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

// isNameDelim is the character class that ends a Name or Operator lexeme.
func isNameDelim(b byte) bool {
	switch b {
	case '#', '/', '%', '[', ']', '(', ')', '<', '>', '{', '}':
		return true
	}
	return isWhitespace(b)
}

// --- Main ---

func stateMain(t *Tokenizer, buf []byte, i int) int {
	for i < len(buf) && isWhitespace(buf[i]) {
		i++
	}
	if i >= len(buf) {
		return i
	}
	c := buf[i]
	switch {
	case c == '%':
		t.currentTokenPos = t.buf.AbsPos(i)
		t.currentToken = append(t.currentToken[:0], '%')
		t.state = stateComment
		return i + 1
	case c == '/':
		t.currentTokenPos = t.buf.AbsPos(i)
		t.currentToken = t.currentToken[:0]
		t.state = stateName
		return i + 1
	case c == '-' || c == '+' || isDigit(c):
		t.currentTokenPos = t.buf.AbsPos(i)
		t.currentToken = append(t.currentToken[:0], c)
		t.state = stateNumber
		return i + 1
	case c == '.':
		t.currentTokenPos = t.buf.AbsPos(i)
		t.currentToken = append(t.currentToken[:0], c)
		t.state = stateReal
		return i + 1
	case isAlpha(c):
		t.currentTokenPos = t.buf.AbsPos(i)
		t.currentToken = append(t.currentToken[:0], c)
		t.state = stateOperator
		return i + 1
	case c == '(':
		t.currentTokenPos = t.buf.AbsPos(i)
		t.currentToken = t.currentToken[:0]
		t.parenDepthInit()
		t.state = stateString
		return i + 1
	case c == '<':
		t.currentTokenPos = t.buf.AbsPos(i)
		t.currentToken = t.currentToken[:0]
		t.state = stateAngleOpen
		return i + 1
	case c == '>':
		t.currentTokenPos = t.buf.AbsPos(i)
		t.currentToken = t.currentToken[:0]
		t.state = stateAngleClose
		return i + 1
	case c == 0:
		return i + 1
	default:
		t.emit(Token{Kind: TokOperator, Value: InternOperator(buf[i : i+1]), Pos: t.buf.AbsPos(i)})
		return i + 1
	}
}

// --- Comment ---

func stateComment(t *Tokenizer, buf []byte, i int) int {
	start := i
	for i < len(buf) && buf[i] != '\r' && buf[i] != '\n' {
		i++
	}
	t.currentToken = append(t.currentToken, buf[start:i]...)
	if i >= len(buf) {
		return i
	}
	t.state = stateMain
	return i // the terminating CR/LF is left for Main to consume as whitespace
}

// --- Name ---

func stateName(t *Tokenizer, buf []byte, i int) int {
	start := i
	for i < len(buf) {
		if buf[i] == '#' {
			t.currentToken = append(t.currentToken, buf[start:i]...)
			t.hexBuf = t.hexBuf[:0]
			t.state = stateNameHex
			return i + 1
		}
		if isNameDelim(buf[i]) {
			t.currentToken = append(t.currentToken, buf[start:i]...)
			t.completeName()
			t.state = stateMain
			return i
		}
		i++
	}
	t.currentToken = append(t.currentToken, buf[start:i]...)
	return i
}

func (t *Tokenizer) completeName() {
	// string(bytes) never fails in Go regardless of UTF-8 validity, so the
	// source parser's "decode as UTF-8, else use raw bytes" fallback
	// collapses to one conversion here: valid UTF-8 yields that text,
	// invalid UTF-8 yields the same bytes reinterpreted as the intern key.
	t.emit(Token{Kind: TokName, Value: InternName(string(t.currentToken)), Pos: t.currentTokenPos})
}

// stateNameHex handles one byte of a /Name#xx escape at a time, mirroring
// the source parser's _parse_literal_hex exactly: a non-hex byte after at
// least one collected hex digit decodes what was collected so far (even a
// single digit) rather than discarding it; a non-hex byte with nothing
// collected commits no byte and falls straight through to Name.
func stateNameHex(t *Tokenizer, buf []byte, i int) int {
	c := buf[i]
	if isHexDigit(c) && len(t.hexBuf) < 2 {
		t.hexBuf = append(t.hexBuf, c)
		return i + 1
	}
	if len(t.hexBuf) > 0 {
		v, _ := strconv.ParseUint(string(t.hexBuf), 16, 8)
		t.currentToken = append(t.currentToken, byte(v))
	}
	t.state = stateName
	return i
}

// --- Number / Real ---

func stateNumber(t *Tokenizer, buf []byte, i int) int {
	start := i
	for i < len(buf) && isDigit(buf[i]) {
		i++
	}
	t.currentToken = append(t.currentToken, buf[start:i]...)
	if i >= len(buf) {
		return i
	}
	if buf[i] == '.' {
		t.currentToken = append(t.currentToken, '.')
		t.state = stateReal
		return i + 1
	}
	if v, err := strconv.ParseInt(string(t.currentToken), 10, 64); err == nil {
		t.emit(Token{Kind: TokInteger, Value: v, Pos: t.currentTokenPos})
	}
	t.state = stateMain
	return i
}

func stateReal(t *Tokenizer, buf []byte, i int) int {
	start := i
	for i < len(buf) && isDigit(buf[i]) {
		i++
	}
	t.currentToken = append(t.currentToken, buf[start:i]...)
	if i >= len(buf) {
		return i
	}
	if v, err := strconv.ParseFloat(string(t.currentToken), 64); err == nil {
		t.emit(Token{Kind: TokReal, Value: v, Pos: t.currentTokenPos})
	}
	t.state = stateMain
	return i
}

// --- Operator ---

func stateOperator(t *Tokenizer, buf []byte, i int) int {
	start := i
	for i < len(buf) && !isNameDelim(buf[i]) {
		i++
	}
	t.currentToken = append(t.currentToken, buf[start:i]...)
	if i >= len(buf) {
		return i
	}
	switch string(t.currentToken) {
	case "true":
		t.emit(Token{Kind: TokBoolean, Value: true, Pos: t.currentTokenPos})
	case "false":
		t.emit(Token{Kind: TokBoolean, Value: false, Pos: t.currentTokenPos})
	default:
		t.emit(Token{Kind: TokOperator, Value: InternOperator(t.currentToken), Pos: t.currentTokenPos})
	}
	t.state = stateMain
	return i
}

// --- String (literal, parenthesized) ---

func (t *Tokenizer) parenDepthInit() { t.parenDepth = 1 }

func stateString(t *Tokenizer, buf []byte, i int) int {
	for {
		idx := bytes.IndexAny(buf[i:], "()\\")
		if idx < 0 {
			t.currentToken = append(t.currentToken, buf[i:]...)
			return len(buf)
		}
		j := i + idx
		t.currentToken = append(t.currentToken, buf[i:j]...)
		switch buf[j] {
		case '(':
			t.parenDepth++
			t.currentToken = append(t.currentToken, '(')
			i = j + 1
		case ')':
			t.parenDepth--
			if t.parenDepth == 0 {
				t.emit(Token{Kind: TokByteString, Value: append([]byte(nil), t.currentToken...), Pos: t.currentTokenPos})
				t.state = stateMain
				return j + 1
			}
			t.currentToken = append(t.currentToken, ')')
			i = j + 1
		case '\\':
			t.octal = t.octal[:0]
			t.state = stateStringEscape
			return j + 1
		}
	}
}

// stateStringEscape processes one byte following a backslash inside a
// literal string. Octal digits accumulate up to three, then decode as a
// single byte (masked to 8 bits: a malformed \777-style escape is a PDF
// Reference violation, not a condition this package raises an error for).
// A bare \r, optionally followed by \n, is a line continuation and
// contributes nothing to the string.
func stateStringEscape(t *Tokenizer, buf []byte, i int) int {
	c := buf[i]
	if isOctalDigit(c) && len(t.octal) < 3 {
		t.octal = append(t.octal, c)
		return i + 1
	}
	if len(t.octal) > 0 {
		v, _ := strconv.ParseUint(string(t.octal), 8, 16)
		t.currentToken = append(t.currentToken, byte(v&0xFF))
		t.state = stateString
		return i
	}
	switch c {
	case 'b':
		t.currentToken = append(t.currentToken, 0x08)
	case 't':
		t.currentToken = append(t.currentToken, 0x09)
	case 'n':
		t.currentToken = append(t.currentToken, 0x0A)
	case 'f':
		t.currentToken = append(t.currentToken, 0x0C)
	case 'r':
		t.currentToken = append(t.currentToken, 0x0D)
	case '(':
		t.currentToken = append(t.currentToken, 0x28)
	case ')':
		t.currentToken = append(t.currentToken, 0x29)
	case '\\':
		t.currentToken = append(t.currentToken, 0x5C)
	case '\r':
		t.state = stateStringEscapeCR
		return i + 1
	case '\n':
		// line continuation, nothing appended
	default:
		// unrecognized escape letter: dropped silently
	}
	t.state = stateString
	return i + 1
}

// stateStringEscapeCR swallows the \n half of a \r\n line continuation when
// present, without consuming a byte that turns out to belong to the string.
func stateStringEscapeCR(t *Tokenizer, buf []byte, i int) int {
	if buf[i] == '\n' {
		t.state = stateString
		return i + 1
	}
	t.state = stateString
	return i
}

// --- Angle brackets: "<<", ">>", or a hex string ---

func stateAngleOpen(t *Tokenizer, buf []byte, i int) int {
	if buf[i] == '<' {
		t.emit(Token{Kind: TokOperator, Value: OpDictBegin, Pos: t.currentTokenPos})
		t.state = stateMain
		return i + 1
	}
	t.state = stateHexString
	return i
}

func stateAngleClose(t *Tokenizer, buf []byte, i int) int {
	if buf[i] == '>' {
		t.emit(Token{Kind: TokOperator, Value: OpDictEnd, Pos: t.currentTokenPos})
		t.state = stateMain
		return i + 1
	}
	t.state = stateMain
	return i
}

func stateHexString(t *Tokenizer, buf []byte, i int) int {
	start := i
	for i < len(buf) && (isWhitespace(buf[i]) || isHexDigit(buf[i])) {
		i++
	}
	t.currentToken = append(t.currentToken, buf[start:i]...)
	if i >= len(buf) {
		return i
	}
	decoded := decodeHexPairs(stripWhitespace(t.currentToken))
	t.emit(Token{Kind: TokByteString, Value: decoded, Pos: t.currentTokenPos})
	t.state = stateMain
	return i // the non-hex terminator (typically the closing '>') is left for Main
}

func stripWhitespace(s []byte) []byte {
	out := make([]byte, 0, len(s))
	for _, b := range s {
		if !isWhitespace(b) {
			out = append(out, b)
		}
	}
	return out
}

// decodeHexPairs decodes a hex-digit string into bytes; an odd-length input
// is treated as if a trailing '0' were appended, per the PDF Reference's
// hex-string rule.
func decodeHexPairs(s []byte) []byte {
	if len(s)%2 != 0 {
		s = append(s, '0')
	}
	out := make([]byte, len(s)/2)
	for k := 0; k < len(s); k += 2 {
		v, _ := strconv.ParseUint(string(s[k:k+2]), 16, 8)
		out[k/2] = byte(v)
	}
	return out
}
