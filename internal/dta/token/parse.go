// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package token

import (
	"strconv"
	"strings"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
)

// # Tree Model

// Kind identifies the shape of a [Node].
type Kind int

const (
	KindList Kind = iota
	KindString
	KindSymbol
	KindNumber
)

// Node is one element of a parsed record.
type Node struct {
	Kind Kind

	// Text is the unescaped string body, the symbol name or the number literal.
	Text string

	// Quoted reports a symbol written between apostrophes ('name').
	Quoted bool

	// Children holds the elements of a list.
	Children []*Node

	// Comments holds the ";" line comments found inside a record, without
	// the leading semicolon. Only set on the root node returned by [Parse].
	Comments []string
}

// IsAtom reports whether the node is not a list.
func (node *Node) IsAtom() bool { return node.Kind != KindList }

// Key returns the text of the first child when it is an atom. Fields are
// written as (key value...), so this is the field name.
func (node *Node) Key() (string, bool) {
	if node.Kind != KindList || len(node.Children) == 0 || !node.Children[0].IsAtom() {
		return "", false
	}
	return node.Children[0].Text, true
}

// Values returns the children following the key.
func (node *Node) Values() []*Node {
	if node.Kind != KindList || len(node.Children) < 2 {
		return nil
	}
	return node.Children[1:]
}

// Float parses a number node.
func (node *Node) Float() (float64, bool) {
	if node.Kind != KindNumber {
		return 0, false
	}
	value, err := strconv.ParseFloat(node.Text, 64)
	return value, err == nil
}

// Int parses a number node holding an integral value.
func (node *Node) Int() (int, bool) {
	value, ok := node.Float()
	if !ok || value != float64(int(value)) {
		return 0, false
	}
	return int(value), true
}

// # Parsing

type parser struct {
	text     string
	position int
	line     int
	comments []string
}

// Parse builds the tree of a single balanced record, as returned by [Split].
func Parse(block string) (*Node, error) {
	state := &parser{text: block, line: 1}

	state.skipSpace()
	if state.done() || state.peek() != '(' {
		return nil, dtaerr.Malformed("record must start with an opening parenthesis")
	}

	root, err := state.list()
	if err != nil {
		return nil, err
	}

	state.skipSpace()
	if !state.done() {
		return nil, dtaerr.Malformed("unexpected content after record at line %d", state.line)
	}

	root.Comments = state.comments
	return root, nil
}

func (state *parser) done() bool { return state.position >= len(state.text) }

func (state *parser) peek() byte { return state.text[state.position] }

// skipSpace consumes whitespace and comments, recording comment bodies.
func (state *parser) skipSpace() {
	for !state.done() {
		char := state.peek()
		switch {
		case char == '\n':
			state.line++
			state.position++
		case isSpace(char):
			state.position++
		case char == ';':
			end := strings.IndexByte(state.text[state.position:], '\n')
			if end < 0 {
				end = len(state.text) - state.position
			}
			comment := strings.TrimRight(state.text[state.position+1:state.position+end], "\r")
			state.comments = append(state.comments, comment)
			state.position += end
		default:
			return
		}
	}
}

func (state *parser) list() (*Node, error) {
	openLine := state.line
	state.position++ // (

	node := &Node{Kind: KindList}
	for {
		state.skipSpace()
		if state.done() {
			return nil, dtaerr.Malformed("list opened at line %d is never closed", openLine)
		}

		switch state.peek() {
		case ')':
			state.position++
			return node, nil
		case '(':
			child, err := state.list()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case '"':
			child, err := state.quotedString()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case '\'':
			child, err := state.quotedSymbol()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		default:
			node.Children = append(node.Children, state.bare())
		}
	}
}

func (state *parser) quotedString() (*Node, error) {
	openLine := state.line
	state.position++ // "
	start := state.position

	for !state.done() {
		char := state.peek()
		switch char {
		case '\\':
			if state.position+1 < len(state.text) && state.text[state.position+1] == '\n' {
				state.line++
			}
			state.position += 2
			continue
		case '\n':
			state.line++
		case '"':
			body := state.text[start:state.position]
			state.position++
			return &Node{Kind: KindString, Text: Unescape(body)}, nil
		}
		state.position++
	}

	return nil, dtaerr.Malformed("string opened at line %d is never closed", openLine)
}

func (state *parser) quotedSymbol() (*Node, error) {
	openLine := state.line
	state.position++ // '
	end := strings.IndexByte(state.text[state.position:], '\'')
	if end < 0 {
		return nil, dtaerr.Malformed("quoted symbol opened at line %d is never closed", openLine)
	}

	text := state.text[state.position : state.position+end]
	state.position += end + 1
	state.line += strings.Count(text, "\n")

	if isNumber(text) {
		return &Node{Kind: KindNumber, Text: text, Quoted: true}, nil
	}
	return &Node{Kind: KindSymbol, Text: text, Quoted: true}, nil
}

func (state *parser) bare() *Node {
	start := state.position
	for !state.done() {
		char := state.peek()
		if isSpace(char) || char == '(' || char == ')' || char == ';' || char == '"' {
			break
		}
		state.position++
	}

	text := state.text[start:state.position]
	if isNumber(text) {
		return &Node{Kind: KindNumber, Text: text}
	}
	return &Node{Kind: KindSymbol, Text: text}
}

func isNumber(text string) bool {
	if text == "" {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return false
	}
	// ParseFloat accepts forms such as "inf" and "0x1p-2" that are symbols in DTA.
	for index := 0; index < len(text); index++ {
		char := text[index]
		if (char < '0' || char > '9') && char != '.' && char != '-' && char != '+' && char != 'e' && char != 'E' {
			return false
		}
	}
	return true
}

// # Writing

// Inline writes nodes on a single line separated by spaces, in a form that
// [Parse] reads back to the same tree.
func Inline(nodes []*Node) string {
	var builder strings.Builder
	writeInline(&builder, nodes)
	return builder.String()
}

func writeInline(builder *strings.Builder, nodes []*Node) {
	for index, node := range nodes {
		if index > 0 {
			builder.WriteByte(' ')
		}
		switch {
		case node.Kind == KindList:
			builder.WriteByte('(')
			writeInline(builder, node.Children)
			builder.WriteByte(')')
		case node.Kind == KindString:
			builder.WriteByte('"')
			builder.WriteString(Escape(node.Text))
			builder.WriteByte('"')
		case node.Quoted:
			builder.WriteByte('\'')
			builder.WriteString(node.Text)
			builder.WriteByte('\'')
		default:
			builder.WriteString(node.Text)
		}
	}
}
