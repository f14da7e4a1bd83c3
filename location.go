// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"bytes"
	"fmt"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location
// in source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%d:%d-%d", loc.First.Line, loc.First.Column, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// lineCol computes the line and column of the given offset in data.
func lineCol(data []byte, off int) LineCol {
	prefix := data[:off]
	nl := bytes.LastIndexByte(prefix, '\n')
	return LineCol{
		Line:   bytes.Count(prefix, []byte("\n")) + 1,
		Column: off - (nl + 1),
	}
}
