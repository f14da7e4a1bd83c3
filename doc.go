// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsont implements an incremental, zero-copy lexical scanner
// for JSON text, and a stream parser built on top of it.
//
// # Scanning
//
// The Tokenizer type scans a byte buffer supplied by the caller and
// produces one token per call to its Next method. Token values are
// sub-slices of the input buffer; the tokenizer never copies the input,
// so the buffer must outlive any token text the caller retains.
//
//	t := jsont.NewTokenizer(data)
//	for tok := t.Next(); tok != jsont.End; tok = t.Next() {
//	   if tok == jsont.Error {
//	      log.Fatalf("Scanning failed: %v", t.Err())
//	   }
//	   log.Printf("Next token: %v", tok)
//	}
//
// The tokenizer does not build a document and does not check that
// brackets are balanced across tokens. Structural validation is the
// caller's job; the Stream type below is one such caller.
//
// Quoted object keys are distinguished from ordinary string values by
// lookahead for a colon: a string followed by ":" is reported as a
// FieldName token and the colon is consumed with it. Commas between
// values are consumed silently, after checking that they follow a value
// and do not dangle before a closing bracket.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser. The parser
// works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *jsont.ParseError is returned.
//
// Construct a Stream from a byte buffer, and call its Parse method.
// Parse returns nil if the input was fully processed without error. If
// a Handler method reports an error, parsing stops and that error is
// returned.
//
//	s := jsont.NewStream(data)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne.
// This method returns io.EOF if no further values are available.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The
// methods of a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve
// location and type information. The Anchor passed to a handler method
// is only valid for the duration of that method call; the handler must
// copy any data it needs to retain beyond the lifetime of the call.
//
// The parser ensures that corresponding Begin and End methods are
// correctly paired, or that a ParseError is reported.
package jsont
