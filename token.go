// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values. The zero value is End, so
// that a freshly constructed or reset Tokenizer reports "no input
// consumed yet" and an exhausted one keeps reporting End.
const (
	End         Token = iota // end of input
	ObjectStart              // left brace "{"
	ObjectEnd                // right brace "}"
	ArrayStart               // left square bracket "["
	ArrayEnd                 // right square bracket "]"
	True                     // constant: true
	False                    // constant: false
	Null                     // constant: null
	Integer                  // number: integer with no fraction or exponent
	Float                    // number with fraction and/or exponent
	String                   // quoted string value
	FieldName                // quoted object key, i.e. a string followed by ":"
	Error                    // lexical error; see Tokenizer.Err

	LineComment  // comment: // ... <LF> (only when comments are enabled)
	BlockComment // comment: /* ... */ (only when comments are enabled)

	// Do not modify the order of these constants without updating the
	// value-bearing token check below.
)

var tokenStr = [...]string{
	End:         "end of input",
	ObjectStart: `"{"`,
	ObjectEnd:   `"}"`,
	ArrayStart:  `"["`,
	ArrayEnd:    `"]"`,
	True:        "true",
	False:       "false",
	Null:        "null",
	Integer:     "integer",
	Float:       "number",
	String:      "string",
	FieldName:   "field name",
	Error:       "error",

	LineComment:  "line comment",
	BlockComment: "block comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return "invalid token"
	}
	return tokenStr[v]
}

// HasValue reports whether t carries a text value from the input.
func (t Token) HasValue() bool { return t >= Integer && t <= FieldName }

func (t Token) isComment() bool { return t == LineComment || t == BlockComment }

// An ErrorCode identifies the kind of lexical error that moved a
// Tokenizer into the Error state. ErrorCode implements the error
// interface; the message for a given code is static.
type ErrorCode byte

// Constants defining the valid ErrorCode values. UnspecifiedError is a
// defensive fallback that a correct Tokenizer never reports.
const (
	UnspecifiedError ErrorCode = iota
	UnexpectedComma
	UnexpectedTrailingComma
	InvalidByte
	PrematureEndOfInput
	MalformedUnicodeEscapeSequence
	MalformedNumberLiteral
	UnterminatedString
	SyntaxError
)

var errorStr = [...]string{
	UnspecifiedError:               "unspecified error",
	UnexpectedComma:                "unexpected comma",
	UnexpectedTrailingComma:        "unexpected trailing comma",
	InvalidByte:                    "invalid input byte",
	PrematureEndOfInput:            "premature end of input",
	MalformedUnicodeEscapeSequence: "malformed Unicode escape sequence",
	MalformedNumberLiteral:         "malformed number literal",
	UnterminatedString:             "unterminated string",
	SyntaxError:                    "illegal JSON (syntax error)",
}

// Error satisfies the error interface.
func (e ErrorCode) Error() string { return e.String() }

func (e ErrorCode) String() string {
	v := int(e)
	if v >= len(errorStr) {
		return errorStr[UnspecifiedError]
	}
	return errorStr[v]
}
