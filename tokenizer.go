// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"errors"
	"strconv"

	"github.com/creachadair/jsont/internal/escape"

	"go4.org/mem"
)

// A Tokenizer reads lexical tokens from a byte buffer supplied by the
// caller. Each call to Next advances the tokenizer to the next token of
// the input and returns it.
//
// The tokenizer borrows the buffer and never copies or modifies it.
// Tokens that carry a value refer to sub-slices of the buffer, so the
// buffer must outlive any token text the caller retains. A Tokenizer
// must not be shared among concurrent goroutines without external
// synchronization.
type Tokenizer struct {
	input    []byte
	offset   int  // cursor: position of the first unconsumed byte
	pos, end int  // span of the current token
	comments bool // allow comments

	tok   Token
	err   ErrorCode
	last  Token // most recent non-comment token, for comma checks
	comma bool  // a comma has been consumed since the last token
	sep   bool  // the current token was preceded by a comma
}

// NewTokenizer constructs a new Tokenizer that consumes input from data.
// The tokenizer holds a reference to data and does not copy it.
func NewTokenizer(data []byte) *Tokenizer { return &Tokenizer{input: data} }

// Reset discards all tokenizer state and restarts it on data.
func (t *Tokenizer) Reset(data []byte) { *t = Tokenizer{input: data, comments: t.comments} }

// AllowComments configures the tokenizer to report (true) or reject
// (false) comment tokens. Comments are a non-standard extension of the
// JSON spec. If enabled, C++ style block comments (/* ... */) and line
// comments (// ...) are recognized and emitted as tokens. Because field
// names are recognized by byte-level lookahead, a comment may not
// separate a string from the colon or separator that follows it.
func (t *Tokenizer) AllowComments(ok bool) { t.comments = ok }

// Next advances t to the next token of the input and returns it. At the
// end of the input Next returns End, and keeps returning End on
// subsequent calls. Once a lexical error has been reported, Next keeps
// returning Error with the same code until the tokenizer is reset.
func (t *Tokenizer) Next() Token {
	if t.tok == Error {
		return Error
	}
	for {
		t.skipSpace()
		if t.offset >= len(t.input) {
			return t.setToken(End, t.offset)
		}
		start := t.offset
		b := t.input[t.offset]
		t.offset++
		switch b {
		case '{':
			return t.setToken(ObjectStart, start)
		case '}':
			return t.closeBracket(ObjectEnd, start)
		case '[':
			return t.setToken(ArrayStart, start)
		case ']':
			return t.closeBracket(ArrayEnd, start)
		case 'n':
			return t.readAtom("ull", Null, start)
		case 't':
			return t.readAtom("rue", True, start)
		case 'f':
			return t.readAtom("alse", False, start)
		case '"':
			return t.readString(start)
		case ',':
			// A comma is only legal after a value or a closing bracket.
			// It produces no token of its own; the next value follows.
			if t.comma || !isValueEnd(t.last) {
				return t.fail(UnexpectedComma, start)
			}
			t.comma = true
		case 0:
			return t.fail(InvalidByte, start)
		case '/':
			if t.comments {
				return t.readComment(start)
			}
			return t.fail(InvalidByte, start)
		default:
			return t.readNumber(b, start)
		}
	}
}

// Token returns the type of the current token.
func (t *Tokenizer) Token() Token { return t.tok }

// Err returns the error code of the current token. Its value is only
// meaningful when Token reports Error.
func (t *Tokenizer) Err() ErrorCode { return t.err }

// Text returns the undecoded text of the current token, a sub-slice of
// the input buffer. For String and FieldName tokens the surrounding
// quotation marks are included. Tokens that carry no value (End and the
// structural markers) report the raw bytes of the token itself, which
// may be empty.
func (t *Tokenizer) Text() []byte { return t.input[t.pos:t.end] }

// Copy returns a copy of the undecoded text of the current token, for
// callers that need the text beyond the lifetime of the input buffer.
func (t *Tokenizer) Copy() []byte { return append([]byte(nil), t.Text()...) }

// Span returns the location span of the current token.
func (t *Tokenizer) Span() Span { return Span{Pos: t.pos, End: t.end} }

// Location returns the complete location of the current token. The line
// and column offsets are computed on demand from the input.
func (t *Tokenizer) Location() Location {
	return Location{
		Span:  t.Span(),
		First: lineCol(t.input, t.pos),
		Last:  lineCol(t.input, t.end),
	}
}

// Offset reports the cursor position, the offset of the first byte of
// input not yet consumed.
func (t *Tokenizer) Offset() int { return t.offset }

// CommaBefore reports whether a comma was consumed between the previous
// token and the current one. The tokenizer consumes value-separating
// commas silently; this lets the caller check that values inside a
// container are properly separated.
func (t *Tokenizer) CommaBefore() bool { return t.sep }

// Int64 returns the value of the current token as an integer. Integer
// tokens are parsed from their text; Float tokens are truncated. A True
// token reports 1; all other tokens without a numeric value report 0.
func (t *Tokenizer) Int64() int64 {
	if !t.tok.HasValue() {
		if t.tok == True {
			return 1
		}
		return 0
	}
	if t.tok == Float {
		return int64(t.Float64())
	}
	// The string conversion makes a bounded copy of the token text, so
	// parsing can never read past the end of the caller's buffer, even
	// when the literal reaches exactly to the end of the input.
	v, _ := strconv.ParseInt(string(t.Text()), 10, 64)
	return v
}

// Float64 returns the value of the current token as a floating-point
// number, under the same rules as Int64.
func (t *Tokenizer) Float64() float64 {
	if !t.tok.HasValue() {
		if t.tok == True {
			return 1
		}
		return 0
	}
	v, _ := strconv.ParseFloat(string(t.Text()), 64)
	return v
}

// Unescape returns the decoded contents of the current String or
// FieldName token, with the quotation marks removed and escape
// sequences replaced. It reports MalformedUnicodeEscapeSequence for a
// truncated Unicode escape and PrematureEndOfInput for a string ending
// in a bare backslash escape.
func (t *Tokenizer) Unescape() ([]byte, error) {
	if t.tok != String && t.tok != FieldName {
		return nil, SyntaxError
	}
	text := t.Text()
	dec, err := escape.Unquote(mem.B(text[1 : len(text)-1]))
	if errors.Is(err, escape.ErrIncompleteUnicode) {
		return nil, MalformedUnicodeEscapeSequence
	} else if err != nil {
		return nil, PrematureEndOfInput
	}
	return dec, nil
}

// setToken records tok spanning from start to the cursor as the current
// token and returns it.
func (t *Tokenizer) setToken(tok Token, start int) Token { return t.setSpan(tok, start, t.offset) }

// setSpan records tok with the explicit span [pos, end) as the current
// token. Comment tokens do not participate in comma bookkeeping.
func (t *Tokenizer) setSpan(tok Token, pos, end int) Token {
	t.tok = tok
	t.pos, t.end = pos, end
	if !tok.isComment() {
		t.sep = t.comma
		t.comma = false
		t.last = tok
	}
	return tok
}

// fail moves the tokenizer into the Error state with the given code.
// The span of the Error token covers the rejected bytes.
func (t *Tokenizer) fail(code ErrorCode, start int) Token {
	t.err = code
	t.tok = Error
	t.pos, t.end = start, t.offset
	return Error
}

func (t *Tokenizer) skipSpace() {
	for t.offset < len(t.input) && isSpace(t.input[t.offset]) {
		t.offset++
	}
}

// readAtom matches the remainder of a constant whose first byte has
// already been consumed. A valid match must be followed by a
// non-alphanumeric byte or the end of input, so that inputs like
// "nullable" are rejected instead of silently matching "null".
func (t *Tokenizer) readAtom(rest string, tok Token, start int) Token {
	want := mem.S(rest)
	if len(t.input)-t.offset < want.Len() {
		t.offset = len(t.input)
		return t.fail(PrematureEndOfInput, start)
	}
	if !mem.B(t.input[t.offset : t.offset+want.Len()]).Equal(want) {
		return t.fail(InvalidByte, start)
	}
	t.offset += want.Len()
	if t.offset < len(t.input) && isAlnum(t.input[t.offset]) {
		return t.fail(SyntaxError, start)
	}
	return t.setToken(tok, start)
}

// closeBracket handles "}" and "]", rejecting a dangling comma left
// over from the preceding value.
func (t *Tokenizer) closeBracket(tok Token, start int) Token {
	if t.comma {
		return t.fail(UnexpectedTrailingComma, start)
	}
	return t.setToken(tok, start)
}

// readNumber scans a numeric literal whose first byte b has already
// been consumed: -?digit+ ('.' digit+)? ([eE] [+-]? digit+)?. The token
// starts as Integer and is upgraded to Float as soon as a fraction or
// exponent part is seen.
func (t *Tokenizer) readNumber(b byte, start int) Token {
	if b != '-' && !isDigit(b) {
		return t.fail(InvalidByte, start)
	}
	tok := Integer

	// A leading sign does not count as a digit: at least one digit must
	// be present before any fraction or exponent.
	n := t.readDigits()
	if b != '-' {
		n++
	}
	if n == 0 {
		return t.fail(MalformedNumberLiteral, start)
	}

	if t.offset < len(t.input) && t.input[t.offset] == '.' {
		t.offset++
		tok = Float
		if t.readDigits() == 0 {
			return t.fail(MalformedNumberLiteral, start)
		}
	}

	if t.offset < len(t.input) && (t.input[t.offset] == 'e' || t.input[t.offset] == 'E') {
		t.offset++
		tok = Float
		if t.offset < len(t.input) && (t.input[t.offset] == '+' || t.input[t.offset] == '-') {
			t.offset++
		}
		if t.readDigits() == 0 {
			return t.fail(MalformedNumberLiteral, start)
		}
	}
	return t.setToken(tok, start)
}

// readDigits consumes a run of decimal digits and reports how many.
func (t *Tokenizer) readDigits() int {
	n := 0
	for t.offset < len(t.input) && isDigit(t.input[t.offset]) {
		t.offset++
		n++
	}
	return n
}

// readString scans a quoted string whose opening quote has already been
// consumed. A backslash consumes the following byte unconditionally;
// escape sequences are not decoded here (see Unescape). The token text
// includes both quotation marks.
func (t *Tokenizer) readString(start int) Token {
	for t.offset < len(t.input) {
		b := t.input[t.offset]
		t.offset++
		switch b {
		case '\\':
			if t.offset >= len(t.input) {
				return t.fail(PrematureEndOfInput, start)
			}
			t.offset++
		case '"':
			return t.classifyString(start, t.offset)
		case 0:
			return t.fail(InvalidByte, start)
		}
	}
	return t.fail(UnterminatedString, start)
}

// classifyString decides whether the string spanning [start, strEnd) is
// a field name or an ordinary value, by looking at the next significant
// byte. A colon makes it a FieldName and is consumed; a separator or
// container terminator leaves the byte for the next call; anything else
// is an error.
func (t *Tokenizer) classifyString(start, strEnd int) Token {
	t.skipSpace()
	if t.offset >= len(t.input) {
		return t.setSpan(String, start, strEnd)
	}
	switch t.input[t.offset] {
	case ':':
		t.offset++
		return t.setSpan(FieldName, start, strEnd)
	case ',', ']', '}':
		return t.setSpan(String, start, strEnd)
	case 0:
		t.offset++
		return t.fail(InvalidByte, start)
	default:
		t.offset++
		return t.fail(SyntaxError, start)
	}
}

// readComment scans a line or block comment whose leading "/" has
// already been consumed. Line comments include their terminating
// newline, if present; block comments include their "*/" terminator.
func (t *Tokenizer) readComment(start int) Token {
	if t.offset >= len(t.input) {
		return t.fail(InvalidByte, start)
	}
	switch t.input[t.offset] {
	case '/':
		t.offset++
		for t.offset < len(t.input) {
			b := t.input[t.offset]
			t.offset++
			if b == '\n' {
				break
			}
		}
		return t.setToken(LineComment, start)

	case '*':
		t.offset++
		for t.offset+1 < len(t.input) {
			if t.input[t.offset] == '*' && t.input[t.offset+1] == '/' {
				t.offset += 2
				return t.setToken(BlockComment, start)
			}
			t.offset++
		}
		t.offset = len(t.input)
		return t.fail(PrematureEndOfInput, start)

	default:
		return t.fail(InvalidByte, start)
	}
}

// isValueEnd reports whether tok may legally precede a comma.
func isValueEnd(tok Token) bool {
	switch tok {
	case ObjectEnd, ArrayEnd, True, False, Null, Integer, Float, String:
		return true
	}
	return false
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isAlnum(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
