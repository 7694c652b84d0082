// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package builder

import (
	"strings"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
)

// Tonality values of song_tonality.
const (
	Major = 0
	Minor = 1
)

var tonics = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3, "E": 4, "F": 5,
	"F#": 6, "Gb": 6, "G": 7, "G#": 8, "Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11,
}

// ParseKey reads a key name into its tonic note (0 = C) and tonality.
// Accepted spellings are "C#", "C# Major", "C#m" and "C# Minor", with
// flats written as "Db".
func ParseKey(name string) (tonic, tonality int, err error) {
	name = strings.TrimSpace(name)
	tonality = Major

	switch {
	case strings.HasSuffix(name, " Major"):
		name = strings.TrimSuffix(name, " Major")
	case strings.HasSuffix(name, " Minor"):
		name, tonality = strings.TrimSuffix(name, " Minor"), Minor
	case strings.HasSuffix(name, "m"):
		name, tonality = strings.TrimSuffix(name, "m"), Minor
	}

	tonic, ok := tonics[name]
	if !ok {
		return 0, 0, dtaerr.ValueRange("unknown song key %q", name)
	}
	return tonic, tonality, nil
}

// ParseTonic reads a bare note name such as "F#" or "Bb".
func ParseTonic(name string) (int, error) {
	tonic, ok := tonics[strings.TrimSpace(name)]
	if !ok {
		return 0, dtaerr.ValueRange("unknown note %q", name)
	}
	return tonic, nil
}
