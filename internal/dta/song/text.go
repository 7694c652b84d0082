// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/dtakit/pkg/pointer"
)

// Encodings of DTA text fields.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf8"
)

// ShortName turns free text into a record id: accents are stripped, only
// ASCII letters and digits are kept and the result is lowercased.
func ShortName(text string) string {
	var builder strings.Builder
	for _, char := range FoldAccents(text) {
		switch {
		case char >= 'a' && char <= 'z', char >= '0' && char <= '9':
			builder.WriteRune(char)
		case char >= 'A' && char <= 'Z':
			builder.WriteRune(unicode.ToLower(char))
		}
	}
	return builder.String()
}

// FoldAccents decomposes text and drops the combining marks, turning "é"
// into "e".
func FoldAccents(text string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(stripper, text)
	if err != nil {
		return text
	}
	return folded
}

// NeedsUTF8 reports whether text holds a character outside 7-bit ASCII.
func NeedsUTF8(text string) bool {
	for index := 0; index < len(text); index++ {
		if text[index] > unicode.MaxASCII {
			return true
		}
	}
	return false
}

// DetectEncoding returns the encoding a record's text fields require.
func DetectEncoding(r *Record) string {
	for _, text := range []*string{r.Name, r.Artist, r.AlbumName, r.PackName, r.Author, r.StringsAuthor, r.KeysAuthor, r.LoadingPhrase} {
		if NeedsUTF8(pointer.Val(text)) {
			return EncodingUTF8
		}
	}
	return EncodingLatin1
}

// SongNameFromPath extracts the songname from a (song (name ...)) path such
// as "songs/x/x" or "dlc/sZAE/001/content/songs/x/x".
func SongNameFromPath(path string) string {
	path = strings.TrimSuffix(path, "/")
	if index := strings.LastIndexByte(path, '/'); index >= 0 {
		return path[index+1:]
	}
	return path
}
