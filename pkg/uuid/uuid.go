// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the time-ordered identifiers used as document keys.

Version 7 values sort by creation time, so the primary key index of the
documents table stays append-only.
*/
package uuid

import "github.com/google/uuid"

// New generates a UUIDv7 string. It panics only when the OS random source
// fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Time returns the creation time embedded in a v7 id, in Unix milliseconds.
// ok is false for other versions.
func Time(s string) (millis int64, ok bool) {
	id, err := uuid.Parse(s)
	if err != nil || id.Version() != 7 {
		return 0, false
	}
	seconds, nanos := id.Time().UnixTime()
	return seconds*1000 + nanos/1_000_000, true
}
