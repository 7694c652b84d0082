// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// It is used in the service layer only. Handlers decode, services validate.
package validate

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/taibuivan/dtakit/internal/dta/locale"
	"github.com/taibuivan/dtakit/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field errors. It is not safe for concurrent use;
// create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the rune count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range fails if the value is outside [min, max].
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// UUID fails if the value does not parse as a UUID.
func (v *Validator) UUID(field, value string) *Validator {
	if _, err := uuid.Parse(value); err != nil {
		v.add(field, "Must be a valid UUID")
	}
	return v
}

// OneOf fails if the value is not in the allowed set.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if !slices.Contains(allowed, value) {
		v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	}
	return v
}

// SongKey fails unless value can be written as a bare DTA symbol: no
// whitespace, parentheses, quotes or semicolons.
func (v *Validator) SongKey(field, value string) *Validator {
	if value == "" {
		v.add(field, "This field is required")
		return v
	}
	if strings.IndexFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`()"';`, r)
	}) >= 0 {
		v.add(field, "Must not contain whitespace, parentheses, quotes or semicolons")
	}
	return v
}

// Locale fails if value is neither a token nor a display name of table.
// Empty values pass.
func (v *Validator) Locale(field, value string, table *locale.Table) *Validator {
	if value == "" {
		return v
	}
	if _, ok := table.Resolve(value); !ok {
		v.add(field, fmt.Sprintf("Unknown value %q", value))
	}
	return v
}

// SubGenre fails if subGenre does not belong to genre. Both are tokens;
// empty values pass.
func (v *Validator) SubGenre(field, genre, subGenre string) *Validator {
	if genre == "" || subGenre == "" {
		return v
	}
	if !locale.IsSubGenreOf(genre, subGenre) {
		v.add(field, fmt.Sprintf("%q is not a sub-genre of %q", subGenre, genre))
	}
	return v
}

// Custom adds message when failed is true.
//
//	v.Custom("slot", slot%2 == 0, "Must be odd")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR when any rule failed, nil otherwise.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
