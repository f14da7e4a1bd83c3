// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jsont"
)

// Parse parses and returns the JSON values from data. In case of error,
// any complete values already parsed are returned along with the error.
func Parse(data []byte) ([]Value, error) {
	h := new(parseHandler)
	st := jsont.NewStream(data)
	for {
		if err := st.ParseOne(h); err == io.EOF {
			return h.vs, nil
		} else if err != nil {
			return h.vs, err
		}
		if len(h.stk) != 0 {
			return h.vs, errors.New("incomplete value")
		}
	}
}

// ParseSingle parses a single JSON value from data. It is an error if
// the input is empty, or if anything besides whitespace follows the
// first value.
func ParseSingle(data []byte) (Value, error) {
	h := new(parseHandler)
	st := jsont.NewStream(data)
	if err := st.ParseOne(h); err == io.EOF {
		return nil, errors.New("no value found")
	} else if err != nil {
		return nil, err
	}
	if err := st.ParseOne(h); err != io.EOF {
		return nil, errors.New("extra input after value")
	}
	return h.vs[0], nil
}

// A parseHandler implements the jsont.Handler interface to construct
// syntax trees for JSON values. Completed top-level values accumulate
// in vs; partially-built containers live on the stack.
type parseHandler struct {
	vs   []Value
	stk  []Value // *Object, *Array, and *Member entries under construction
	tbuf [][]byte
}

// intern interns a copy of text and returns a slice of the copy.
// Allocations are batched to reduce allocation overhead.
func (h *parseHandler) intern(text []byte) []byte {
	const bufBlockBytes = 8192

	if len(text) >= bufBlockBytes {
		return append([]byte(nil), text...)
	}

	i := 0
	for i < len(h.tbuf) {
		if len(h.tbuf[i])+len(text) < cap(h.tbuf[i]) {
			break
		}
		i++
	}
	if i == len(h.tbuf) {
		h.tbuf = append(h.tbuf, make([]byte, 0, bufBlockBytes))
	}
	s := len(h.tbuf[i])
	h.tbuf[i] = append(h.tbuf[i], text...)
	return h.tbuf[i][s : s+len(text)]
}

// reduceValue attaches the completed value v to the container under
// construction atop the stack, or records it as a top-level result if
// the stack is empty.
func (h *parseHandler) reduceValue(v Value) {
	if len(h.stk) == 0 {
		h.vs = append(h.vs, v)
		return
	}
	switch top := h.top().(type) {
	case *Member:
		top.Value = v
	case *Array:
		*top = append(*top, v)
	case *Object:
		// members are attached eagerly in BeginMember
	}
}

func (h *parseHandler) top() Value { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() Value {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v Value) { h.stk = append(h.stk, v) }

func (h *parseHandler) BeginObject(loc jsont.Anchor) error {
	h.push(new(Object))
	return nil
}

func (h *parseHandler) EndObject(loc jsont.Anchor) error {
	obj := h.pop().(*Object)
	h.reduceValue(*obj)
	return nil
}

func (h *parseHandler) BeginArray(loc jsont.Anchor) error {
	h.push(new(Array))
	return nil
}

func (h *parseHandler) EndArray(loc jsont.Anchor) error {
	arr := h.pop().(*Array)
	h.reduceValue(*arr)
	return nil
}

func (h *parseHandler) BeginMember(loc jsont.Anchor) error {
	// The object this member belongs to is atop the stack. Add a pointer
	// to the new member into its collection eagerly, so that the member
	// value can be attached without reducing twice.
	key, err := jsont.Unquote(loc.Text())
	if err != nil {
		return err
	}
	mem := &Member{Key: string(key)}
	obj := h.top().(*Object)
	*obj = append(*obj, mem)
	h.push(mem)
	return nil
}

func (h *parseHandler) EndMember(loc jsont.Anchor) error {
	h.pop()
	return nil
}

func (h *parseHandler) Value(loc jsont.Anchor) error {
	switch loc.Token() {
	case jsont.String:
		h.reduceValue(Quoted{text: h.intern(loc.Text())})
	case jsont.Integer, jsont.Float:
		h.reduceValue(Number{text: h.intern(loc.Text())})
	case jsont.True, jsont.False:
		h.reduceValue(Bool(loc.Token() == jsont.True))
	case jsont.Null:
		h.reduceValue(Null)
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
	return nil
}

func (h *parseHandler) EndOfInput(loc jsont.Anchor) {}
