// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package token_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/token"
)

/*
TestSplit_Records verifies that top-level records are isolated while nested
parentheses, quoted strings and comments are skipped.
*/
func TestSplit_Records(t *testing.T) {
	text := "; header comment (not a record\n" +
		"(first (name \"Paren ) inside\") (song (tracks_count (2 2))))\n" +
		"\n" +
		"(second (name \"Quote \\q)\\q\"))\n"

	blocks, err := token.Split(text)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, `(first (name "Paren ) inside") (song (tracks_count (2 2))))`, blocks[0].Text)
	assert.Equal(t, 2, blocks[0].Line)
	assert.Equal(t, `(second (name "Quote \q)\q"))`, blocks[1].Text)
	assert.Equal(t, 4, blocks[1].Line)
}

/*
TestSplit_Malformed checks every failure mode of the splitter.
*/
func TestSplit_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"never_closed", "(song (name \"x\")"},
		{"extra_closer", "(song))"},
		{"open_string", "(song (name \"x))"},
		{"stray_token", "song (name \"x\")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.Split(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, dtaerr.ErrMalformedDocument))
		})
	}
}

/*
TestSplit_ByteOrderMark ensures a leading BOM is not treated as a stray token.
*/
func TestSplit_ByteOrderMark(t *testing.T) {
	blocks, err := token.Split("\ufeff(a (name \"x\"))")
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

/*
TestEscape_RoundTrip pins the quote escaping rule.
*/
func TestEscape_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		escaped string
	}{
		{"plain", "Song", "Song"},
		{"quote", `Say "Hi"`, `Say \qHi\q`},
		{"backslash", `AC\DC`, `AC\\DC`},
		{"backslash_then_q", `\q`, `\\q`},
		{"backslash_before_quote", `a\"b`, `a\\\qb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.escaped, token.Escape(tt.raw))
			assert.Equal(t, tt.raw, token.Unescape(tt.escaped))
		})
	}
}

/*
TestParse_Tree checks atom classification and comment collection.
*/
func TestParse_Tree(t *testing.T) {
	block := "(\n\t'mysong'\n\t(name \"The \\qBest\\q\")\n\t(song_id 1234)\n\t(fake TRUE)\n\t(preview 1000 31000)\n;Song authored by Someone\n)"

	root, err := token.Parse(block)
	require.NoError(t, err)
	require.Len(t, root.Children, 5)

	id := root.Children[0]
	assert.Equal(t, token.KindSymbol, id.Kind)
	assert.True(t, id.Quoted)
	assert.Equal(t, "mysong", id.Text)

	key, ok := root.Children[1].Key()
	require.True(t, ok)
	assert.Equal(t, "name", key)
	assert.Equal(t, token.KindString, root.Children[1].Values()[0].Kind)
	assert.Equal(t, `The "Best"`, root.Children[1].Values()[0].Text)

	songID, ok := root.Children[2].Values()[0].Int()
	require.True(t, ok)
	assert.Equal(t, 1234, songID)

	assert.Equal(t, token.KindSymbol, root.Children[3].Values()[0].Kind)
	assert.Len(t, root.Children[4].Values(), 2)

	assert.Equal(t, []string{"Song authored by Someone"}, root.Comments)
}

/*
TestParse_Malformed rejects trailing content and unterminated atoms.
*/
func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"not_a_list", `name "x"`},
		{"trailing", `(a (name "x")) extra`},
		{"open_symbol", `('a (name "x"))`},
		{"open_list", `(a (name "x")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.Parse(tt.block)
			require.Error(t, err)
			assert.ErrorIs(t, err, dtaerr.ErrMalformedDocument)
		})
	}
}

func TestInline(t *testing.T) {
	root, err := token.Parse(`(a (midi_file "songs/a/a.mid") (quirk 'x' (1 2.5)))`)
	require.NoError(t, err)

	assert.Equal(t, `"songs/a/a.mid"`, token.Inline(root.Children[1].Values()))
	assert.Equal(t, `'x' (1 2.5)`, token.Inline(root.Children[2].Values()))
}
