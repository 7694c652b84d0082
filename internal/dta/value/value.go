// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package value is the generic DTA value tree and its text renderer.

A [Value] is one of seven kinds: String, Symbol, Integer, Float, Boolean,
Object and Array. Objects hold ordered [Field]s. Each value may carry its own
[Format]; otherwise it inherits the format of its parent, and ultimately the
base format given to [Render].
*/
package value

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"unicode"
)

// Kind tags the variant held by a [Value].
type Kind int

const (
	KindString Kind = iota
	KindSymbol
	KindInteger
	KindFloat
	KindBoolean
	KindObject
	KindArray
)

var kindNames = [...]string{"string", "symbol", "integer", "float", "boolean", "object", "array"}

func (kind Kind) String() string {
	if int(kind) < len(kindNames) {
		return kindNames[kind]
	}
	return "unknown"
}

// Value is an immutable DTA value.
type Value struct {
	kind    Kind
	text    string
	integer int64
	float   float64
	boolean bool
	fields  []Field
	items   []Value
	trailer string
	format  *Format
}

// Field is a keyed value inside an object. An empty Key renders the value
// as an anonymous parenthesized list.
type Field struct {
	Key   string
	Value Value
}

// # Constructors

func String(text string) Value { return Value{kind: KindString, text: text} }
func Symbol(text string) Value { return Value{kind: KindSymbol, text: text} }
func Integer(number int64) Value { return Value{kind: KindInteger, integer: number} }
func Int(number int) Value { return Integer(int64(number)) }
func Float(number float64) Value { return Value{kind: KindFloat, float: number} }
func Boolean(flag bool) Value { return Value{kind: KindBoolean, boolean: flag} }
func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }
func Object(fields ...Field) Value { return Value{kind: KindObject, fields: fields} }

// F builds a field.
func F(key string, value Value) Field { return Field{Key: key, Value: value} }

// Ints builds an array of integers.
func Ints(numbers []int) Value {
	items := make([]Value, len(numbers))
	for index, number := range numbers {
		items[index] = Int(number)
	}
	return Array(items...)
}

// Floats builds an array of floats.
func Floats(numbers []float64) Value {
	items := make([]Value, len(numbers))
	for index, number := range numbers {
		items[index] = Float(number)
	}
	return Array(items...)
}

// Symbols builds an array of symbols.
func Symbols(names []string) Value {
	items := make([]Value, len(names))
	for index, name := range names {
		items[index] = Symbol(name)
	}
	return Array(items...)
}

// # Accessors

func (v Value) Kind() Kind { return v.kind }
func (v Value) Text() string { return v.text }
func (v Value) Integer() int64 { return v.integer }
func (v Value) Float() float64 { return v.float }
func (v Value) Boolean() bool { return v.boolean }
func (v Value) Fields() []Field { return slices.Clone(v.fields) }
func (v Value) Items() []Value { return slices.Clone(v.items) }
func (v Value) Format() *Format { return v.format }

// WithFormat returns a copy of v rendered with format instead of the
// inherited one. Children inherit it too unless they carry their own.
func (v Value) WithFormat(format Format) Value {
	v.format = &format
	return v
}

// WithTrailer returns a copy of an object that writes text verbatim before
// its closing parenthesis. It is used for trailing comment blocks.
func (v Value) WithTrailer(text string) Value {
	v.trailer = text
	return v
}

// # Classification

// Classify converts a plain Go value into a [Value]. Strings shaped like
// identifiers become symbols, maps become objects with sorted keys and
// slices become arrays. Unsupported types classify as their string form.
func Classify(raw any) Value {
	switch typed := raw.(type) {
	case Value:
		return typed
	case nil:
		return Array()
	case string:
		if IsIdentifier(typed) {
			return Symbol(typed)
		}
		return String(typed)
	case bool:
		return Boolean(typed)
	case int:
		return Int(typed)
	case int32:
		return Integer(int64(typed))
	case int64:
		return Integer(typed)
	case float32:
		return Float(float64(typed))
	case float64:
		return Float(typed)
	case []Field:
		return Object(typed...)
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		fields := make([]Field, len(keys))
		for index, key := range keys {
			fields[index] = F(key, Classify(typed[key]))
		}
		return Object(fields...)
	}

	reflected := reflect.ValueOf(raw)
	if reflected.Kind() == reflect.Slice || reflected.Kind() == reflect.Array {
		items := make([]Value, reflected.Len())
		for index := range items {
			items[index] = Classify(reflected.Index(index).Interface())
		}
		return Array(items...)
	}
	return String(fmt.Sprint(raw))
}

// IsIdentifier reports whether text is a bare DTA identifier: lowercase,
// without whitespace, not numeric and not starting with punctuation.
func IsIdentifier(text string) bool {
	if text == "" {
		return false
	}
	for index, char := range text {
		switch {
		case index == 0 && !unicode.IsLower(char):
			return false
		case unicode.IsSpace(char) || unicode.IsUpper(char):
			return false
		case strings.ContainsRune(`"'();`, char):
			return false
		}
	}
	return true
}

func finite(number float64) bool {
	return !math.IsNaN(number) && !math.IsInf(number, 0)
}
