// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for JSON values, and a parser that
// constructs syntax trees from JSON source text.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/creachadair/jsont"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON renders the value as JSON source text.
	JSON() string
}

// An Object is a collection of key-value members.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object. The key
// is stored in plain (unquoted) form.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, val Value) *Member { return &Member{Key: key, Value: val} }

// JSON renders the member as JSON source text.
func (m *Member) JSON() string { return jsont.Quote(m.Key) + ":" + m.Value.JSON() }

// An Array is a sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A Quoted is a string value as written in the source, quotation marks
// and escape sequences intact.
type Quoted struct{ text []byte }

// JSON satisfies the Value interface.
func (q Quoted) JSON() string { return string(q.text) }

func (q Quoted) String() string { return q.JSON() }

// Unquote returns the plain text of q, with the quotation marks removed
// and escape sequences replaced.
func (q Quoted) Unquote() String {
	dec, err := jsont.Unquote(q.text)
	if err != nil {
		return ""
	}
	return String(dec)
}

// A String is a plain (unquoted) string value.
type String string

// Unquote returns s unmodified. It exists so that Quoted and String
// satisfy a common interface for fetching plain strings.
func (s String) Unquote() String { return s }

// JSON satisfies the Value interface.
func (s String) JSON() string { return jsont.Quote(string(s)) }

// A Number is a numeric literal as written in the source.
type Number struct{ text []byte }

// JSON satisfies the Value interface.
func (n Number) JSON() string { return string(n.text) }

func (n Number) String() string { return n.JSON() }

// IsInt reports whether n is representable as an integer, meaning its
// literal has no fraction or exponent part.
func (n Number) IsInt() bool { return !bytes.ContainsAny(n.text, ".eE") }

// Int64 returns n as an int64, truncating toward zero if the literal
// has a fractional or exponent part.
func (n Number) Int64() int64 {
	if n.IsInt() {
		v, _ := strconv.ParseInt(string(n.text), 10, 64)
		return v
	}
	return int64(n.Float64())
}

// Float64 returns n as a float64.
func (n Number) Float64() float64 {
	v, _ := strconv.ParseFloat(string(n.text), 64)
	return v
}

// An Int is an integer value.
type Int int64

// JSON satisfies the Value interface.
func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Float is a floating-point value.
type Float float64

// JSON satisfies the Value interface.
func (f Float) JSON() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Null represents the JSON null constant.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) JSON() string { return "null" }

func (nullValue) String() string { return "null" }
