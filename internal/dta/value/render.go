// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package value

import (
	"strconv"
	"strings"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/token"
)

// Render writes a single field at depth zero, terminated by a newline.
func Render(field Field, base Format) (string, error) {
	var builder strings.Builder
	if err := Write(&builder, field, 0, base); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Write appends field to builder, indented by depth tabs.
func Write(builder *strings.Builder, field Field, depth int, inherited Format) error {
	format := field.Value.effective(inherited)

	if field.Key == "" {
		return writeAnonymous(builder, field.Value, depth, format)
	}

	indent(builder, depth)
	builder.WriteByte('(')

	switch field.Value.kind {
	case KindObject:
		writeKey(builder, field.Key, format, depth, format.Layout == Expanded)
		builder.WriteByte('\n')
		if err := writeFields(builder, field.Value.fields, depth+1, format); err != nil {
			return err
		}
		builder.WriteString(field.Value.trailer)
		indent(builder, depth)

	case KindArray:
		expanded := format.Layout == Expanded && len(field.Value.items) > 0
		writeKey(builder, field.Key, format, depth, expanded)
		if len(field.Value.items) > 0 {
			separate(builder, depth, expanded)
			if err := writeItems(builder, field.Value, format); err != nil {
				return err
			}
		}
		if expanded {
			builder.WriteByte('\n')
			indent(builder, depth)
		}

	case KindString:
		expanded := format.Layout == Expanded
		writeKey(builder, field.Key, format, depth, expanded)
		separate(builder, depth, expanded)
		writeScalar(builder, field.Value, format)
		if expanded {
			builder.WriteByte('\n')
			indent(builder, depth)
		}

	default:
		writeKey(builder, field.Key, format, depth, false)
		builder.WriteByte(' ')
		if err := writeScalar(builder, field.Value, format); err != nil {
			return err
		}
	}

	builder.WriteString(")\n")
	return nil
}

func writeFields(builder *strings.Builder, fields []Field, depth int, format Format) error {
	for _, field := range fields {
		if err := Write(builder, field, depth, format); err != nil {
			return err
		}
	}
	return nil
}

// writeAnonymous writes an unkeyed list. Expanded lists put each field on
// its own indented line; inline lists keep the fields aligned one column
// after the opening parenthesis.
func writeAnonymous(builder *strings.Builder, v Value, depth int, format Format) error {
	indent(builder, depth)
	if v.kind != KindObject {
		if err := writeInline(builder, v, format); err != nil {
			return err
		}
		builder.WriteByte('\n')
		return nil
	}

	if format.Layout == Expanded {
		builder.WriteString("(\n")
		if err := writeFields(builder, v.fields, depth+1, format); err != nil {
			return err
		}
		indent(builder, depth)
		builder.WriteString(")\n")
		return nil
	}

	builder.WriteByte('(')
	for index, field := range v.fields {
		if index > 0 {
			builder.WriteByte('\n')
			indent(builder, depth)
			builder.WriteByte(' ')
		}
		if err := writeInlineField(builder, field, format); err != nil {
			return err
		}
	}
	builder.WriteString(")\n")
	return nil
}

// writeInlineField writes (key value) without indentation or newline.
func writeInlineField(builder *strings.Builder, field Field, inherited Format) error {
	format := field.Value.effective(inherited)
	builder.WriteByte('(')
	writeKey(builder, field.Key, format, 0, false)
	if field.Value.kind == KindArray {
		if len(field.Value.items) > 0 {
			builder.WriteByte(' ')
		}
		if err := writeItems(builder, field.Value, format); err != nil {
			return err
		}
	} else {
		builder.WriteByte(' ')
		if err := writeInline(builder, field.Value, format); err != nil {
			return err
		}
	}
	builder.WriteByte(')')
	return nil
}

// writeItems writes array items separated by spaces, wrapped in their own
// parentheses when the format asks for it.
func writeItems(builder *strings.Builder, array Value, format Format) error {
	if format.Parens {
		builder.WriteByte('(')
	}
	for index, item := range array.items {
		if index > 0 {
			builder.WriteByte(' ')
		}
		if err := writeInline(builder, item, item.effective(format)); err != nil {
			return err
		}
	}
	if format.Parens {
		builder.WriteByte(')')
	}
	return nil
}

// writeInline writes any value on a single line.
func writeInline(builder *strings.Builder, v Value, format Format) error {
	switch v.kind {
	case KindArray:
		builder.WriteByte('(')
		for index, item := range v.items {
			if index > 0 {
				builder.WriteByte(' ')
			}
			if err := writeInline(builder, item, item.effective(format)); err != nil {
				return err
			}
		}
		builder.WriteByte(')')
		return nil
	case KindObject:
		builder.WriteByte('(')
		for index, field := range v.fields {
			if index > 0 {
				builder.WriteByte(' ')
			}
			if err := writeInlineField(builder, field, format); err != nil {
				return err
			}
		}
		builder.WriteByte(')')
		return nil
	default:
		return writeScalar(builder, v, format)
	}
}

func writeScalar(builder *strings.Builder, v Value, format Format) error {
	switch v.kind {
	case KindString:
		builder.WriteByte('"')
		builder.WriteString(token.Escape(v.text))
		builder.WriteByte('"')
	case KindSymbol:
		if format.QuoteSymbol {
			builder.WriteByte('\'')
			builder.WriteString(v.text)
			builder.WriteByte('\'')
		} else {
			builder.WriteString(v.text)
		}
	case KindInteger:
		builder.WriteString(strconv.FormatInt(v.integer, 10))
	case KindFloat:
		text, err := formatFloat(v.float, format.Precision)
		if err != nil {
			return err
		}
		builder.WriteString(text)
	case KindBoolean:
		builder.WriteString(formatBoolean(v.boolean, format))
	default:
		return writeInline(builder, v, format)
	}
	return nil
}

// formatFloat writes number with decimals digits after the point. Text that
// would read back as another number is refused.
func formatFloat(number float64, decimals int) (string, error) {
	if !finite(number) {
		return "", dtaerr.ValueRange("float value %v cannot be written", number)
	}
	text := strconv.FormatFloat(number, 'f', decimals, 64)
	if parsed, err := strconv.ParseFloat(text, 64); err != nil || parsed != number {
		return "", dtaerr.ValueRange("float value %v does not fit in %d decimals", number, decimals)
	}
	return text, nil
}

func formatBoolean(flag bool, format Format) string {
	switch {
	case format.NumericBool && flag:
		return "1"
	case format.NumericBool:
		return "0"
	case flag:
		return "TRUE"
	default:
		return "FALSE"
	}
}

// writeKey writes the key, on its own line when expanded.
func writeKey(builder *strings.Builder, key string, format Format, depth int, expanded bool) {
	if expanded {
		builder.WriteByte('\n')
		indent(builder, depth+1)
	}
	if format.QuoteKey || isNumeric(key) {
		builder.WriteByte('\'')
		builder.WriteString(key)
		builder.WriteByte('\'')
		return
	}
	builder.WriteString(key)
}

// separate writes the gap between a key and its value.
func separate(builder *strings.Builder, depth int, expanded bool) {
	if expanded {
		builder.WriteByte('\n')
		indent(builder, depth+1)
		return
	}
	builder.WriteByte(' ')
}

func indent(builder *strings.Builder, depth int) {
	for range depth {
		builder.WriteByte('\t')
	}
}

func isNumeric(text string) bool {
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}

func (v Value) effective(inherited Format) Format {
	if v.format != nil {
		return *v.format
	}
	return inherited
}
