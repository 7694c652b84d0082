// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs for document titles
// ("Rock Band 3 DLC" → "rock-band-3-dlc").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds generated slugs.
const MaxLength = 80

// Fallback is used for titles without a single ASCII letter or digit.
const Fallback = "untitled"

var multiHyphen = regexp.MustCompile(`-{2,}`)

// From folds accents, lowercases and replaces every run of characters
// other than a-z and 0-9 with one hyphen.
func From(s string) string {
	folded, _, _ := transform.String(transform.Chain(norm.NFD, transform.RemoveFunc(isMn)), s)
	folded = strings.ToLower(folded)

	result := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, folded)

	result = strings.Trim(multiHyphen.ReplaceAllString(result, "-"), "-")
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	if result == "" {
		return Fallback
	}
	return result
}

// isMn reports whether r is a non-spacing mark (an accent after NFD).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
