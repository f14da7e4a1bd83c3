// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont_test

import (
	"testing"

	"github.com/creachadair/jsont"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

func TestComments(t *testing.T) {
	tests := []struct {
		input string
		want  []jsont.Token
		coms  []string
	}{
		{"/* block comment */\n\n\n", []jsont.Token{jsont.BlockComment},
			[]string{"/* block comment */"}},
		{"// line 1\n\n// line 2\n", []jsont.Token{jsont.LineComment, jsont.LineComment},
			[]string{"// line 1\n", "// line 2\n"}}, // N.B. includes terminating newline, if present
		{"// line at EOF", []jsont.Token{jsont.LineComment},
			[]string{"// line at EOF"}},

		{"[1, /*x*/ 2]", []jsont.Token{
			jsont.ArrayStart, jsont.Integer, jsont.BlockComment, jsont.Integer, jsont.ArrayEnd,
		}, []string{"/*x*/"}},
		{"[1 /*x*/, 2]", []jsont.Token{
			jsont.ArrayStart, jsont.Integer, jsont.BlockComment, jsont.Integer, jsont.ArrayEnd,
		}, []string{"/*x*/"}},

		{`{
 "x": 1, // howdy do
 "y": 2.0 }`, []jsont.Token{
			jsont.ObjectStart, jsont.FieldName, jsont.Integer, jsont.LineComment,
			jsont.FieldName, jsont.Float, jsont.ObjectEnd,
		}, []string{
			"// howdy do\n",
		}},

		{"/* x */\n{\n}//foo", []jsont.Token{
			jsont.BlockComment, jsont.ObjectStart, jsont.ObjectEnd, jsont.LineComment,
		}, []string{
			"/* x */", "//foo",
		}},

		{"/**\n*/", []jsont.Token{jsont.BlockComment}, []string{"/**\n*/"}},

		{`/**/1/***/2/****/false/*x*/null`, []jsont.Token{
			jsont.BlockComment, jsont.Integer,
			jsont.BlockComment, jsont.Integer,
			jsont.BlockComment, jsont.False,
			jsont.BlockComment, jsont.Null,
		}, []string{
			"/**/", "/***/", "/****/", "/*x*/",
		}},
	}

	for _, test := range tests {
		var got []jsont.Token
		var coms []string
		tok := jsont.NewTokenizer([]byte(test.input))
		tok.AllowComments(true)
		for cur := tok.Next(); cur != jsont.End; cur = tok.Next() {
			if cur == jsont.Error {
				t.Fatalf("Input: %#q\nNext failed: %v", test.input, tok.Err())
			}
			got = append(got, cur)
			if cur == jsont.LineComment || cur == jsont.BlockComment {
				coms = append(coms, string(tok.Text()))
			}
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input: %#q\nComments: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestCommentErrors(t *testing.T) {
	tests := []struct {
		input string
		code  jsont.ErrorCode
	}{
		{"/* never closed", jsont.PrematureEndOfInput},
		{"/* almost *", jsont.PrematureEndOfInput},
		{"/", jsont.InvalidByte},
		{"/x", jsont.InvalidByte},

		// A comment cannot separate a string from its colon or separator:
		// field-name detection is byte-level lookahead.
		{`{"a" /*x*/: 1}`, jsont.SyntaxError},

		// A comment does not hide a dangling comma.
		{"[1, /*x*/]", jsont.UnexpectedTrailingComma},
	}
	for _, test := range tests {
		tok := jsont.NewTokenizer([]byte(test.input))
		tok.AllowComments(true)
		for cur := tok.Next(); cur != jsont.Error; cur = tok.Next() {
			if cur == jsont.End {
				t.Fatalf("Input: %#q: no error reported", test.input)
			}
		}
		if tok.Err() != test.code {
			t.Errorf("Input: %#q: got error code %v, want %v", test.input, tok.Err(), test.code)
		}
	}
}

// valueTokens collects the non-comment tokens of input.
func valueTokens(t *testing.T, input []byte, comments bool) []jsont.Token {
	t.Helper()
	tok := jsont.NewTokenizer(input)
	tok.AllowComments(comments)
	var got []jsont.Token
	for cur := tok.Next(); cur != jsont.End; cur = tok.Next() {
		if cur == jsont.Error {
			t.Fatalf("Input: %#q\nNext failed: %v", input, tok.Err())
		}
		if cur == jsont.LineComment || cur == jsont.BlockComment {
			continue
		}
		got = append(got, cur)
	}
	return got
}

// Scanning a commented document must produce the same value tokens as
// scanning its standardized (comment-free) equivalent. The hujson
// standardizer is the reference for stripping comments.
func TestCommentsMatchStandardized(t *testing.T) {
	const input = `// top-level config
{
  "name": "zervice", // display name
  "port": 8080,
  /* retry policy */
  "retries": [1, 2.5, 10],
  "strict": false,
  "fallback": null
}`

	std, err := hujson.Standardize([]byte(input))
	if err != nil {
		t.Fatalf("Standardize failed: %v", err)
	}

	got := valueTokens(t, []byte(input), true)
	want := valueTokens(t, std, false)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Value tokens: (-want, +got)\n%s", diff)
	}
}
