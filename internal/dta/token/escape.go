// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package token

import "strings"

// # Quote Escaping
//
// Quoted strings never contain a raw double quote. A quote is written as the
// two-character marker \q and a backslash is doubled, so \q inside a string
// never terminates it.

// Escape converts text into the body of a quoted DTA string.
func Escape(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(text, `"`, `\q`)
}

// Unescape is the exact inverse of [Escape]. Unknown backslash sequences are
// kept verbatim.
func Unescape(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))

	for index := 0; index < len(text); index++ {
		char := text[index]
		if char != '\\' || index+1 >= len(text) {
			builder.WriteByte(char)
			continue
		}

		switch text[index+1] {
		case '\\':
			builder.WriteByte('\\')
			index++
		case 'q':
			builder.WriteByte('"')
			index++
		default:
			builder.WriteByte(char)
		}
	}

	return builder.String()
}
