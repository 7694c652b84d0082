// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses query-string values leniently.

A missing or malformed value yields the caller's default instead of an
error, which suits optional flags on read endpoints. Use strconv directly
where a malformed value must be reported.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD parses s, returning def when s is empty or malformed.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ToBoolD parses "true", "1", "false", "0" and friends, returning def when
// s is empty or malformed.
func ToBoolD(s string, def bool) bool {
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return def
}

// ToBoolPtr is the tri-state form of [ToBoolD]: nil means "not given".
func ToBoolPtr(s string) *bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

// ToStrings splits a comma-separated value into trimmed, non-empty parts.
func ToStrings(s string) []string {
	var parts []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
