// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/locale"
	"github.com/taibuivan/dtakit/internal/dta/rank"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// Header groups records by one browsing criterion. Songs holds positions
// in the source collection, never copies.
type Header struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Songs  []int    `json:"songs"`
	Count  int      `json:"count"`
	Albums []Header `json:"albums,omitempty"`
}

// View is the result of a header grouping.
type View struct {
	SortedBy string   `json:"sorted_by"`
	Headers  []Header `json:"headers"`
}

// Header view names.
const (
	ViewTitle      = "title"
	ViewGenre      = "genre"
	ViewDifficulty = "difficulty"
	ViewAuthor     = "author"
	ViewYear       = "year"
	ViewArtist     = "artist"
)

// Views lists every header view name.
var Views = []string{ViewTitle, ViewGenre, ViewDifficulty, ViewAuthor, ViewYear, ViewArtist}

// DefaultAlbumThreshold is the number of songs an album needs to get its
// own header in [ByArtist].
const DefaultAlbumThreshold = 3

// NoAlbum names songs without an album_name.
const NoAlbum = "No Album Specified"

// # Grouping Helpers

// byTitle filters and orders records by title, keeping positions.
func byTitle(records []*song.Record, filter Filter) []Indexed {
	matched := Apply(records, filter)
	compare := comparator(SortTitle)
	slices.SortStableFunc(matched, func(a, b Indexed) int { return compare(a.Record, b.Record) })
	return matched
}

// bucket collects positions under fixed keys, keeping key order.
type bucket struct {
	keys    []string
	headers map[string]*Header
}

func newBucket() *bucket {
	return &bucket{headers: make(map[string]*Header)}
}

func (b *bucket) declare(id, name string) {
	if _, ok := b.headers[id]; ok {
		return
	}
	b.keys = append(b.keys, id)
	b.headers[id] = &Header{ID: id, Name: name, Songs: []int{}}
}

func (b *bucket) add(id, name string, index int) {
	b.declare(id, name)
	header := b.headers[id]
	header.Songs = append(header.Songs, index)
	header.Count = len(header.Songs)
}

// result returns the headers in declaration order. Empty headers are
// dropped unless keepEmpty is set.
func (b *bucket) result(keepEmpty bool) []Header {
	headers := make([]Header, 0, len(b.keys))
	for _, key := range b.keys {
		header := b.headers[key]
		if header.Count == 0 && !keepEmpty {
			continue
		}
		headers = append(headers, *header)
	}
	return headers
}

// # Views

// TitleInitial returns the title-initial bucket of a song name: a lowercase
// ASCII letter, or "123" for anything else. Han characters use the first
// letter of their pinyin reading.
func TitleInitial(name string) string {
	folded := song.FoldAccents(OmitLeadingArticle(strings.TrimSpace(name)))
	char, _ := utf8.DecodeRuneInString(folded)

	switch {
	case char <= unicode.MaxASCII && unicode.IsLetter(char):
		return string(unicode.ToLower(char))
	case unicode.Is(unicode.Han, char):
		if readings := pinyin.LazyConvert(string(char), nil); len(readings) > 0 && readings[0] != "" {
			return readings[0][:1]
		}
	}
	return locale.TitleInitials[0]
}

// ByTitle groups records under the title initial.
func ByTitle(records []*song.Record, filter Filter) View {
	groups := newBucket()
	for _, initial := range locale.TitleInitials {
		groups.declare(initial, strings.ToUpper(initial))
	}

	for _, item := range byTitle(records, filter) {
		initial := TitleInitial(pointer.Val(item.Record.Name))
		groups.add(initial, strings.ToUpper(initial), item.Index)
	}
	return View{SortedBy: ViewTitle, Headers: groups.result(false)}
}

// ByGenre groups records by genre, in genre table order. Unknown genres
// follow the known ones.
func ByGenre(records []*song.Record, filter Filter) View {
	groups := newBucket()
	for _, entry := range locale.Genre.Entries() {
		groups.declare(entry.Token, entry.Name)
	}

	for _, item := range byTitle(records, filter) {
		genre := pointer.Val(item.Record.Genre)
		groups.add(genre, locale.Genre.Name(genre), item.Index)
	}
	return View{SortedBy: ViewGenre, Headers: groups.result(false)}
}

// difficultyOrder lists the rank tiers in header order.
var difficultyOrder = []int{0, 1, 2, 3, 4, 5, 6, rank.NoPart}

// ByDifficulty groups records by the rank tier of one instrument.
func ByDifficulty(records []*song.Record, filter Filter, instrument rank.Instrument) (View, error) {
	if instrument == "" {
		instrument = rank.Band
	}
	if !instrument.Valid() {
		return View{}, dtaerr.ValueRange("unknown instrument %q", instrument)
	}

	tierName := func(tier int) string { return locale.RankName.Name(strconv.Itoa(tier)) }
	tierID := func(tier int) string {
		return "rank_" + string(instrument) + "_" + strings.ReplaceAll(strings.ToLower(tierName(tier)), " ", "_")
	}

	groups := newBucket()
	for _, tier := range difficultyOrder {
		groups.declare(tierID(tier), tierName(tier))
	}

	for _, item := range byTitle(records, filter) {
		raw, _ := item.Record.IntField(instrument.Field())
		tier := rank.For(instrument, raw)
		groups.add(tierID(tier), tierName(tier), item.Index)
	}
	return View{SortedBy: ViewDifficulty, Headers: groups.result(false)}, nil
}

// ByAuthor groups records by charter, ordered by the author id.
func ByAuthor(records []*song.Record, filter Filter) View {
	groups := newBucket()
	for _, item := range byTitle(records, filter) {
		author := pointer.Fallback(item.Record.Author, song.UnknownAuthor)
		if author == "" {
			author = song.UnknownAuthor
		}
		groups.add(song.ShortName(author), author, item.Index)
	}

	headers := groups.result(false)
	slices.SortStableFunc(headers, func(a, b Header) int { return strings.Compare(a.ID, b.ID) })
	return View{SortedBy: ViewAuthor, Headers: headers}
}

// ByYear groups records by release year, ascending.
func ByYear(records []*song.Record, filter Filter) View {
	matched := byTitle(records, filter)

	years := make([]int, 0, len(matched))
	for _, item := range matched {
		years = append(years, pointer.Val(item.Record.YearReleased))
	}
	slices.Sort(years)

	groups := newBucket()
	for _, year := range slices.Compact(years) {
		groups.declare("year_released_"+strconv.Itoa(year), strconv.Itoa(year))
	}
	for _, item := range matched {
		year := strconv.Itoa(pointer.Val(item.Record.YearReleased))
		groups.add("year_released_"+year, year, item.Index)
	}
	return View{SortedBy: ViewYear, Headers: groups.result(false)}
}

// ByArtist groups records by artist. Albums holding at least threshold
// songs get their own sub-header ordered by track number; other songs are
// listed on the artist header by title.
func ByArtist(records []*song.Record, filter Filter, threshold int) View {
	if threshold <= 0 {
		threshold = DefaultAlbumThreshold
	}

	collator := collate.New(language.Und, collate.Loose)
	compareText := func(a, b string) int {
		return collator.CompareString(OmitLeadingArticle(a), OmitLeadingArticle(b))
	}

	matched := byTitle(records, filter)

	artists := make(map[string][]Indexed)
	var names []string
	for _, item := range matched {
		id := song.ShortName(pointer.Val(item.Record.Artist))
		if _, seen := artists[id]; !seen {
			names = append(names, pointer.Val(item.Record.Artist))
		}
		artists[id] = append(artists[id], item)
	}
	slices.SortStableFunc(names, compareText)

	headers := make([]Header, 0, len(names))
	for _, name := range names {
		id := song.ShortName(name)
		songs := artists[id]
		header := Header{ID: id, Name: name, Songs: []int{}, Count: len(songs)}

		albums := make(map[string][]Indexed)
		var albumNames []string
		for _, item := range songs {
			album := strings.ToLower(pointer.Val(item.Record.AlbumName))
			if _, seen := albums[album]; !seen {
				albumNames = append(albumNames, pointer.Val(item.Record.AlbumName))
			}
			albums[album] = append(albums[album], item)
		}
		slices.SortStableFunc(albumNames, compareText)

		for _, album := range albumNames {
			tracks := albums[strings.ToLower(album)]
			if len(tracks) < threshold {
				for _, track := range tracks {
					header.Songs = append(header.Songs, track.Index)
				}
				continue
			}

			slices.SortStableFunc(tracks, func(a, b Indexed) int {
				return cmp.Compare(pointer.Val(a.Record.AlbumTrackNumber), pointer.Val(b.Record.AlbumTrackNumber))
			})
			albumName := cmp.Or(album, NoAlbum)
			sub := Header{ID: "album_" + id + "_" + song.ShortName(albumName), Name: albumName, Count: len(tracks)}
			for _, track := range tracks {
				sub.Songs = append(sub.Songs, track.Index)
			}
			header.Albums = append(header.Albums, sub)
		}
		headers = append(headers, header)
	}
	return View{SortedBy: ViewArtist, Headers: headers}
}
