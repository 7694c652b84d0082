// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package locale holds the static enumeration tables of the DTA format.

Each [Table] maps raw file tokens (e.g. "sfx/kit01_bank.milo") to display
names (e.g. "Hard Rock Kit") in both directions while keeping declaration
order, which is also the order used by listing views.

The package also owns [FieldOrder], the canonical field order consulted by
the record renderer.

All tables are read-only after package initialization.
*/
package locale

import "strconv"

// Entry is one token/display-name pair.
type Entry struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Table is an ordered, bidirectional token/name table.
type Table struct {
	entries []Entry
	byToken map[string]string
	byName  map[string]string
}

func newTable(entries ...Entry) *Table {
	table := &Table{
		entries: entries,
		byToken: make(map[string]string, len(entries)),
		byName:  make(map[string]string, len(entries)),
	}
	for _, entry := range entries {
		table.byToken[entry.Token] = entry.Name
		if _, taken := table.byName[entry.Name]; !taken {
			table.byName[entry.Name] = entry.Token
		}
	}
	return table
}

// Name returns the display name of token, or token itself when unknown.
func (table *Table) Name(token string) string {
	if name, ok := table.byToken[token]; ok {
		return name
	}
	return token
}

// NameOf is [Table.Name] for numeric tokens.
func (table *Table) NameOf(token int) string {
	return table.Name(strconv.Itoa(token))
}

// Token returns the token registered for a display name.
func (table *Table) Token(name string) (string, bool) {
	token, ok := table.byName[name]
	return token, ok
}

// Resolve accepts either a token or a display name and returns the token.
func (table *Table) Resolve(tokenOrName string) (string, bool) {
	if table.Has(tokenOrName) {
		return tokenOrName, true
	}
	return table.Token(tokenOrName)
}

// Has reports whether token is part of the table.
func (table *Table) Has(token string) bool {
	_, ok := table.byToken[token]
	return ok
}

// Index returns the declaration position of token, or -1.
func (table *Table) Index(token string) int {
	for index, entry := range table.entries {
		if entry.Token == token {
			return index
		}
	}
	return -1
}

// Entries returns a copy of the table in declaration order.
func (table *Table) Entries() []Entry {
	copied := make([]Entry, len(table.entries))
	copy(copied, table.entries)
	return copied
}

// Tokens returns the tokens in declaration order.
func (table *Table) Tokens() []string {
	tokens := make([]string, len(table.entries))
	for index, entry := range table.entries {
		tokens[index] = entry.Token
	}
	return tokens
}

// Len returns the number of entries.
func (table *Table) Len() int { return len(table.entries) }
