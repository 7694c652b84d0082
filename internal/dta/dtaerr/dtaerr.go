// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dtaerr defines the error taxonomy of the DTA engine.

Every failure raised by the tokenizer, projector, renderer or façade is an
[*Error] carrying one of four kinds:

  - MalformedDocument: unbalanced parentheses or an invalid token stream.
  - SchemaViolation: a complete-mode record missing required fields or
    holding fields that disagree.
  - EncodingDetectionFailure: bytes not decodable under a supported charset.
  - ValueRangeError: a value that cannot be represented by the dialect.

Callers match kinds with [errors.Is] against the exported sentinels.
*/
package dtaerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an engine error.
type Kind string

const (
	KindMalformedDocument Kind = "MALFORMED_DOCUMENT"
	KindSchemaViolation   Kind = "SCHEMA_VIOLATION"
	KindEncodingFailure   Kind = "ENCODING_DETECTION_FAILURE"
	KindValueRange        Kind = "VALUE_RANGE"
)

// Error is the canonical engine error.
type Error struct {
	Kind    Kind
	Message string

	// Record is the id of the record being processed, when known.
	Record string

	// Missing lists the absent required fields of a SchemaViolation.
	Missing []string

	// Inconsistent lists the fields of a SchemaViolation whose values
	// disagree with each other.
	Inconsistent []string

	Cause error
}

// # Sentinels

var (
	ErrMalformedDocument = &Error{Kind: KindMalformedDocument}
	ErrSchemaViolation   = &Error{Kind: KindSchemaViolation}
	ErrEncodingFailure   = &Error{Kind: KindEncodingFailure}
	ErrValueRange        = &Error{Kind: KindValueRange}
)

func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString("dta: ")
	builder.WriteString(e.Message)
	if e.Record != "" {
		builder.WriteString(" (record ")
		builder.WriteString(e.Record)
		builder.WriteString(")")
	}
	if len(e.Missing) > 0 {
		builder.WriteString(": missing ")
		builder.WriteString(strings.Join(e.Missing, ", "))
	}
	if len(e.Inconsistent) > 0 {
		builder.WriteString(": inconsistent ")
		builder.WriteString(strings.Join(e.Inconsistent, ", "))
	}
	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}
	return builder.String()
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an [*Error] of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// # Constructors

// Malformed creates a MalformedDocument error.
func Malformed(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedDocument, Message: fmt.Sprintf(format, args...)}
}

// SchemaViolation creates a SchemaViolation error for a record.
func SchemaViolation(recordID string, missing ...string) *Error {
	return &Error{
		Kind:    KindSchemaViolation,
		Message: "record is missing values required for a complete song",
		Record:  recordID,
		Missing: missing,
	}
}

// Inconsistent creates a SchemaViolation error for a record whose fields
// disagree.
func Inconsistent(recordID string, fields ...string) *Error {
	return &Error{
		Kind:         KindSchemaViolation,
		Message:      "record values do not agree with each other",
		Record:       recordID,
		Inconsistent: fields,
	}
}

// EncodingFailure creates an EncodingDetectionFailure error.
func EncodingFailure(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindEncodingFailure, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ValueRange creates a ValueRangeError.
func ValueRange(format string, args ...any) *Error {
	return &Error{Kind: KindValueRange, Message: fmt.Sprintf(format, args...)}
}

// InRecord returns a copy of err tagged with the record id.
// Errors that are not engine errors are wrapped as MalformedDocument.
func InRecord(err error, recordID string) error {
	if err == nil {
		return nil
	}
	var engineErr *Error
	if errors.As(err, &engineErr) {
		copied := *engineErr
		if copied.Record == "" {
			copied.Record = recordID
		}
		return &copied
	}
	return &Error{Kind: KindMalformedDocument, Message: "invalid record", Record: recordID, Cause: err}
}

// As extracts the [*Error] from err's chain. It returns nil if not found.
func As(err error) *Error {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr
	}
	return nil
}
