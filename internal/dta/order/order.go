// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package order sorts and filters song records and groups them into header
views for browsing.

Sorting never mutates the input slice. Comparison keys fold case and
accents and ignore a leading article ("a", "an", "the"); the records
themselves are never rewritten.
*/
package order

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// SortBy selects a record order.
type SortBy string

const (
	SortNone                 SortBy = "none"
	SortID                   SortBy = "id"
	SortSongID               SortBy = "songId"
	SortTitle                SortBy = "title"
	SortArtist               SortBy = "artist"
	SortArtistYearAlbumTrack SortBy = "artistYearAlbumTrack"
)

// SortOrders lists every accepted [SortBy].
var SortOrders = []SortBy{SortNone, SortID, SortSongID, SortTitle, SortArtist, SortArtistYearAlbumTrack}

// ParseSortBy reads a sort name. The empty string means [SortNone].
func ParseSortBy(text string) (SortBy, bool) {
	if text == "" {
		return SortNone, true
	}
	for _, by := range SortOrders {
		if strings.EqualFold(string(by), text) {
			return by, true
		}
	}
	return SortNone, false
}

var articles = []string{"a", "an", "the"}

// OmitLeadingArticle drops a leading "a", "an" or "the" word.
func OmitLeadingArticle(text string) string {
	first, rest, found := strings.Cut(text, " ")
	if found && slices.Contains(articles, strings.ToLower(first)) {
		return rest
	}
	return text
}

// Sort returns the records in the requested order. Equal records keep
// their relative order.
func Sort(records []*song.Record, by SortBy) []*song.Record {
	sorted := slices.Clone(records)
	if by == SortNone || by == "" {
		return sorted
	}

	compare := comparator(by)
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(by SortBy) func(a, b *song.Record) int {
	// A collator keeps scratch buffers, so each sort gets its own.
	collator := collate.New(language.Und, collate.Loose)
	text := func(a, b string) int {
		return collator.CompareString(OmitLeadingArticle(a), OmitLeadingArticle(b))
	}
	title := func(a, b *song.Record) int {
		return text(pointer.Val(a.Name), pointer.Val(b.Name))
	}

	switch by {
	case SortID:
		return func(a, b *song.Record) int { return strings.Compare(a.ID, b.ID) }

	case SortSongID:
		return compareSongID

	case SortTitle:
		return title

	case SortArtist:
		return func(a, b *song.Record) int {
			return cmp.Or(text(pointer.Val(a.Artist), pointer.Val(b.Artist)), title(a, b))
		}

	case SortArtistYearAlbumTrack:
		return func(a, b *song.Record) int {
			return cmp.Or(
				text(pointer.Val(a.Artist), pointer.Val(b.Artist)),
				cmp.Compare(pointer.Val(a.YearReleased), pointer.Val(b.YearReleased)),
				text(pointer.Val(a.AlbumName), pointer.Val(b.AlbumName)),
				cmp.Compare(pointer.Val(a.AlbumTrackNumber), pointer.Val(b.AlbumTrackNumber)),
				title(a, b),
			)
		}

	default:
		return func(a, b *song.Record) int { return 0 }
	}
}

// compareSongID puts numeric ids first in numeric order, then string ids
// in lexicographic order, then records without a song id.
func compareSongID(a, b *song.Record) int {
	rankOf := func(record *song.Record) (int, int64, string) {
		if record.SongID == nil {
			return 2, 0, ""
		}
		if number, ok := record.SongID.Int(); ok {
			return 0, number, ""
		}
		return 1, 0, string(*record.SongID)
	}

	classA, numberA, textA := rankOf(a)
	classB, numberB, textB := rankOf(b)
	return cmp.Or(
		cmp.Compare(classA, classB),
		cmp.Compare(numberA, numberB),
		strings.Compare(textA, textB),
	)
}
