// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package value

// Layout controls whether a keyed value spans one line or several.
type Layout int

const (
	// Inline writes (key value).
	Inline Layout = iota

	// Expanded writes the opening parenthesis, key and value on their own
	// lines. Only strings, arrays and object keys are affected.
	Expanded
)

// Format describes how values are written.
type Format struct {
	// QuoteKey wraps keys in apostrophes ('key'). Numeric keys are always
	// quoted.
	QuoteKey bool

	// QuoteSymbol wraps symbol values in apostrophes.
	QuoteSymbol bool

	Layout Layout

	// Precision is the number of decimals written for floats. A negative
	// precision writes the shortest text that reads back exactly.
	Precision int

	// NumericBool writes booleans as 1/0 instead of TRUE/FALSE.
	NumericBool bool

	// Parens wraps array items in their own parentheses:
	// (key (a b)) instead of (key a b).
	Parens bool
}

// Authoring is the layout produced by song authoring tools.
var Authoring = Format{
	QuoteKey:    true,
	Layout:      Expanded,
	Precision:   2,
	NumericBool: true,
	Parens:      true,
}

// Distribution is the compact layout of official releases.
var Distribution = Format{
	Layout:    Inline,
	Precision: 1,
	Parens:    true,
}

// Inlined returns a copy of format with the inline layout.
func (format Format) Inlined() Format {
	format.Layout = Inline
	return format
}

// Bare returns a copy of format without array parentheses.
func (format Format) Bare() Format {
	format.Parens = false
	return format
}

// WithPrecision returns a copy of format with another float precision.
// An exact format stays exact.
func (format Format) WithPrecision(decimals int) Format {
	if format.Precision >= 0 {
		format.Precision = decimals
	}
	return format
}

// Exact returns a copy of format that writes floats without rounding.
func (format Format) Exact() Format {
	format.Precision = -1
	return format
}
