// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The text of the key is
	// still quoted; the handler is responsible for unescaping key values if
	// the plain string is required (see jsont.Unquote).
	BeginMember(loc Anchor) error

	// End the current object member, giving the location and type of the
	// token that terminated the member: either the key of the member that
	// follows it, or the closing brace of the object.
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can
	// be recovered from the token. String tokens are quoted.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// CommentHandler is an optional interface that a Handler may implement to
// handle comment tokens. If a handler implements this method and comments are
// enabled in the tokenizer, Comment will be called for each comment token
// that occurs in the input. If the handler does not provide this method,
// comments will be silently discarded.
type CommentHandler interface {
	// Process the line or block comment at the specified location.
	// Line comments include their leading "//" and trailing newline (if present).
	// Block comments include their leading "/*" and trailing "*/".
	Comment(loc Anchor)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input. It maintains the
// container-nesting state that the Tokenizer itself does not track, so
// mismatched brackets and missing value separators are reported here.
type Stream struct {
	t *Tokenizer
}

// NewStream constructs a new Stream that consumes input from data.
// The stream holds a reference to data and does not copy it.
func NewStream(data []byte) *Stream { return &Stream{t: NewTokenizer(data)} }

// NewStreamWithTokenizer constructs a new Stream that consumes input from t.
func NewStreamWithTokenizer(t *Tokenizer) *Stream { return &Stream{t: t} }

// AllowComments configures the tokenizer associated with s to report (true)
// or reject (false) comment tokens.
func (s *Stream) AllowComments(ok bool) { s.t.AllowComments(ok) }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *ParseError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an
// error occurs or the input is exhausted. In case of a syntax error, the
// returned error has type [*ParseError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for {
		err := s.nextToken(h)
		if err == io.EOF {
			h.EndOfInput(s.t)
			return nil
		} else if err != nil {
			s.syntaxError(err, "%v", err)
		}

		s.parseElement(h)
	}
}

// ParseOne parses a single value from the input stream and delivers events
// to h until the value is complete or an error occurs. If no further value
// is available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*ParseError].
func (s *Stream) ParseOne(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if err := s.nextToken(h); err == io.EOF {
		h.EndOfInput(s.t)
		return err
	} else if err != nil {
		s.syntaxError(err, "%v", err)
	}
	s.parseElement(h)
	return nil
}

// parseElement consumes a single value of any type.
// Precondition: the current token begins a value.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.t.Token(); tok {
	case ObjectStart:
		s.checkError(h.BeginObject(s.t))
		s.parseMembers(h)
		s.checkError(h.EndObject(s.t))
	case ArrayStart:
		s.checkError(h.BeginArray(s.t))
		s.parseElements(h)
		s.checkError(h.EndArray(s.t))
	case Integer, Float, String, True, False, Null:
		s.checkError(h.Value(s.t))
	default:
		s.syntaxError(nil, "unexpected %v", tok)
	}
}

// parseMembers consumes zero or more key:value object members. The tokenizer
// fuses each key with its colon into a single FieldName token and consumes
// the commas between members, so the parser checks member separation with
// CommaBefore instead of looking for comma tokens.
//
// Precondition: token == ObjectStart.
// Postcondition: token == ObjectEnd.
func (s *Stream) parseMembers(h Handler) {
	tok := s.advance(h, ObjectEnd, FieldName)
	first := true
	for tok != ObjectEnd {
		if !first && !s.t.CommaBefore() {
			s.syntaxError(nil, "missing comma before %v", tok)
		}
		first = false

		// Parse a single member: "key": value
		s.checkError(h.BeginMember(s.t))
		s.advance(h)
		s.parseElement(h)

		// Check whether we have more members (a field name) or are done ("}").
		tok = s.advance(h, ObjectEnd, FieldName)
		s.checkError(h.EndMember(s.t))
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == ArrayStart.
// Postcondition: token == ArrayEnd.
func (s *Stream) parseElements(h Handler) {
	tok := s.advance(h)
	first := true
	for tok != ArrayEnd {
		if !first && !s.t.CommaBefore() && beginsValue(tok) {
			s.syntaxError(nil, "missing comma before %v", tok)
		}
		first = false

		s.parseElement(h)
		tok = s.advance(h)
	}
}

// beginsValue reports whether tok can begin a value.
func beginsValue(tok Token) bool {
	switch tok {
	case ObjectStart, ArrayStart, Integer, Float, String, True, False, Null:
		return true
	}
	return false
}

// nextToken advances the tokenizer, delivering any comment tokens to h along
// the way. It reports io.EOF at the end of input, and the tokenizer's error
// code if the tokenizer failed.
func (s *Stream) nextToken(h Handler) error {
	for {
		switch tok := s.t.Next(); tok {
		case End:
			return io.EOF
		case Error:
			return s.t.Err()
		case LineComment, BlockComment:
			if ch, ok := h.(CommentHandler); ok {
				ch.Comment(s.t)
			}
		default:
			return nil
		}
	}
}

func (s *Stream) advance(h Handler, tokens ...Token) Token {
	if err := s.nextToken(h); err == io.EOF {
		s.syntaxError(err, "%v", tokLabel(tokens, err))
	} else if err != nil {
		s.syntaxError(err, "%v", err)
	}
	tok := s.t.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		s.syntaxError(nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) syntaxError(err error, msg string, args ...any) {
	panic(&ParseError{
		Location: s.t.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected more input, got %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// ParseError is the concrete type of errors reported by the stream parser.
// When the underlying cause was a lexical error, the wrapped error is the
// tokenizer's ErrorCode.
type ParseError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (p *ParseError) Error() string {
	return fmt.Sprintf("at %s: %s", p.Location, p.Message)
}

// Unwrap supports error wrapping.
func (p *ParseError) Unwrap() error { return p.err }
