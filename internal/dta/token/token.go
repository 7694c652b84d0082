// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package token splits raw DTA text into per-record blocks and parses a block
into a tree of [Node] values.

Grammar:

	document := (record | comment | whitespace)*
	record   := "(" value* ")"
	value    := record | "quoted string" | 'quoted symbol' | bare-token
	comment  := ";" any* end-of-line

Quoted strings use the \q marker for embedded quotes (see [Escape]).
*/
package token

import (
	"strings"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
)

// byteOrderMark is skipped when it prefixes a document.
const byteOrderMark = "\ufeff"

// Block is the text of one balanced top-level record.
type Block struct {
	// Text holds the record verbatim, including its outer parentheses.
	Text string

	// Line is the 1-based line on which the record opens.
	Line int
}

// # Block Splitting

// Split returns one [Block] per top-level parenthesized record of text.
//
// Parentheses inside quoted strings and comments are ignored. It fails with
// a MalformedDocument error when a closing parenthesis has no opener, when
// a string is left open, when a bare token appears outside any record, or
// when nesting never returns to zero.
func Split(text string) ([]Block, error) {
	text = strings.TrimPrefix(text, byteOrderMark)

	var (
		blocks    []Block
		depth     int
		start     int
		startLine int
		line      = 1
		inString  bool
		inComment bool
	)

	for index := 0; index < len(text); index++ {
		char := text[index]

		if char == '\n' {
			line++
			inComment = false
			continue
		}

		switch {
		case inComment:
			continue

		case inString:
			if char == '\\' && index+1 < len(text) && text[index+1] != '\n' {
				index++
				continue
			}
			if char == '"' {
				inString = false
			}

		case char == ';':
			inComment = true

		case char == '"':
			if depth == 0 {
				return nil, dtaerr.Malformed("quoted string outside of a record at line %d", line)
			}
			inString = true

		case char == '(':
			if depth == 0 {
				start = index
				startLine = line
			}
			depth++

		case char == ')':
			depth--
			if depth < 0 {
				return nil, dtaerr.Malformed("unexpected closing parenthesis at line %d", line)
			}
			if depth == 0 {
				blocks = append(blocks, Block{Text: text[start : index+1], Line: startLine})
			}

		case depth == 0 && !isSpace(char):
			return nil, dtaerr.Malformed("unexpected token outside of a record at line %d", line)
		}
	}

	if inString {
		return nil, dtaerr.Malformed("unterminated quoted string")
	}

	if depth != 0 {
		return nil, dtaerr.Malformed("unbalanced parentheses: record opened at line %d is never closed", startLine)
	}

	return blocks, nil
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\r' || char == '\n' || char == '\f' || char == '\v'
}
