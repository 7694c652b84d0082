// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/order"
	"github.com/taibuivan/dtakit/internal/dta/rank"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

type fixture struct {
	id, name, artist, album string
	songID                  song.SongID
	year, track             int
}

func records(fixtures ...fixture) []*song.Record {
	out := make([]*song.Record, 0, len(fixtures))
	for _, f := range fixtures {
		record := &song.Record{
			ID:               f.id,
			Name:             pointer.To(f.name),
			Artist:           pointer.To(f.artist),
			YearReleased:     pointer.To(f.year),
			AlbumTrackNumber: pointer.To(f.track),
		}
		if f.album != "" {
			record.AlbumName = pointer.To(f.album)
		}
		if f.songID != "" {
			record.SongID = pointer.To(f.songID)
		}
		out = append(out, record)
	}
	return out
}

func ids(records []*song.Record) []string {
	out := make([]string, len(records))
	for index, record := range records {
		out[index] = record.ID
	}
	return out
}

/*
TestSort covers every order.
*/
func TestSort(t *testing.T) {
	input := records(
		fixture{id: "zoo", name: "The Zoo", artist: "Beta", songID: "300", year: 2001},
		fixture{id: "aard", name: "Aardvark", artist: "The Alpha", songID: "custom", year: 1999},
		fixture{id: "egg", name: "Égal", artist: "beta", songID: "20", year: 1990},
	)

	tests := []struct {
		by   order.SortBy
		want []string
	}{
		{order.SortNone, []string{"zoo", "aard", "egg"}},
		{order.SortID, []string{"aard", "egg", "zoo"}},
		{order.SortSongID, []string{"egg", "zoo", "aard"}},
		{order.SortTitle, []string{"aard", "egg", "zoo"}},
		{order.SortArtist, []string{"aard", "egg", "zoo"}},
		{order.SortArtistYearAlbumTrack, []string{"aard", "egg", "zoo"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.by), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(order.Sort(input, tt.by)))
		})
	}

	// Input order and titles are left untouched.
	assert.Equal(t, []string{"zoo", "aard", "egg"}, ids(input))
	assert.Equal(t, "The Zoo", *input[0].Name)
}

/*
TestParseSortBy accepts known names only.
*/
func TestParseSortBy(t *testing.T) {
	by, ok := order.ParseSortBy("songid")
	assert.True(t, ok)
	assert.Equal(t, order.SortSongID, by)

	by, ok = order.ParseSortBy("")
	assert.True(t, ok)
	assert.Equal(t, order.SortNone, by)

	_, ok = order.ParseSortBy("random")
	assert.False(t, ok)
}

/*
TestFilter checks PRO and keys predicates.
*/
func TestFilter(t *testing.T) {
	pro := &song.Record{ID: "pro", RankRealGuitar: pointer.To(200), RankRealBass: pointer.To(200)}
	keys := &song.Record{ID: "keys", RankKeys: pointer.To(200), RankRealKeys: pointer.To(200)}
	plain := &song.Record{ID: "plain"}
	all := []*song.Record{pro, keys, plain}

	tests := []struct {
		name   string
		filter order.Filter
		want   []string
	}{
		{"none", order.Filter{}, []string{"pro", "keys", "plain"}},
		{"with_pro", order.Filter{ProGuitarBass: pointer.To(true)}, []string{"pro"}},
		{"without_pro", order.Filter{ProGuitarBass: pointer.To(false)}, []string{"keys", "plain"}},
		{"with_keys", order.Filter{Keys: pointer.To(true)}, []string{"keys"}},
		{"without_keys", order.Filter{Keys: pointer.To(false)}, []string{"pro", "plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(order.Select(all, tt.filter)))
		})
	}

	indexed := order.Apply(all, order.Filter{Keys: pointer.To(true)})
	require.Len(t, indexed, 1)
	assert.Equal(t, 1, indexed[0].Index)
}

/*
TestTitleInitial buckets Latin, accented, numeric and Han titles.
*/
func TestTitleInitial(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"The Zoo", "z"},
		{"Écho", "e"},
		{"99 Problems", "123"},
		{"", "123"},
		{"东京", "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.TitleInitial(tt.name))
		})
	}
}

/*
TestByTitle references source positions, ordered by title.
*/
func TestByTitle(t *testing.T) {
	input := records(
		fixture{id: "zoo", name: "The Zoo"},
		fixture{id: "zed", name: "Zed"},
		fixture{id: "aard", name: "Aardvark"},
	)

	view := order.ByTitle(input, order.Filter{})
	assert.Equal(t, "title", view.SortedBy)
	require.Len(t, view.Headers, 2)
	assert.Equal(t, "a", view.Headers[0].ID)
	assert.Equal(t, []int{2}, view.Headers[0].Songs)
	assert.Equal(t, "z", view.Headers[1].ID)
	assert.Equal(t, []int{1, 0}, view.Headers[1].Songs)
	assert.Equal(t, 2, view.Headers[1].Count)
}

/*
TestByDifficulty orders tiers from warmup to impossible, then no part.
*/
func TestByDifficulty(t *testing.T) {
	input := []*song.Record{
		{ID: "none", Name: pointer.To("a")},
		{ID: "hard", Name: pointer.To("b"), RankDrum: pointer.To(448)},
		{ID: "easy", Name: pointer.To("c"), RankDrum: pointer.To(100)},
	}

	view, err := order.ByDifficulty(input, order.Filter{}, rank.Drum)
	require.NoError(t, err)

	headerIDs := make([]string, 0, len(view.Headers))
	for _, header := range view.Headers {
		headerIDs = append(headerIDs, header.ID)
	}
	assert.Equal(t, []string{"rank_drum_warmup", "rank_drum_impossible", "rank_drum_no_part"}, headerIDs)

	_, err = order.ByDifficulty(input, order.Filter{}, rank.Instrument("kazoo"))
	assert.ErrorIs(t, err, dtaerr.ErrValueRange)
}

/*
TestByAuthorAndYear covers the fallback author and year ordering.
*/
func TestByAuthorAndYear(t *testing.T) {
	input := []*song.Record{
		{ID: "a", Name: pointer.To("a"), Author: pointer.To("Zed Charts"), YearReleased: pointer.To(2010)},
		{ID: "b", Name: pointer.To("b"), YearReleased: pointer.To(1990)},
	}

	authors := order.ByAuthor(input, order.Filter{})
	require.Len(t, authors.Headers, 2)
	assert.Equal(t, song.UnknownAuthor, authors.Headers[0].Name)
	assert.Equal(t, "Zed Charts", authors.Headers[1].Name)

	years := order.ByYear(input, order.Filter{})
	require.Len(t, years.Headers, 2)
	assert.Equal(t, "year_released_1990", years.Headers[0].ID)
	assert.Equal(t, []int{1}, years.Headers[0].Songs)
}

/*
TestByArtist creates album sub-headers above the threshold.
*/
func TestByArtist(t *testing.T) {
	input := records(
		fixture{id: "t3", name: "Third", artist: "Band", album: "Record", track: 3},
		fixture{id: "t1", name: "First", artist: "Band", album: "Record", track: 1},
		fixture{id: "single", name: "Single", artist: "Band"},
		fixture{id: "other", name: "Other", artist: "Another Band", album: "Record"},
	)

	view := order.ByArtist(input, order.Filter{}, 2)
	require.Len(t, view.Headers, 2)

	assert.Equal(t, "Another Band", view.Headers[0].Name)
	assert.Equal(t, []int{3}, view.Headers[0].Songs)

	band := view.Headers[1]
	assert.Equal(t, "band", band.ID)
	assert.Equal(t, 3, band.Count)
	assert.Equal(t, []int{2}, band.Songs)
	require.Len(t, band.Albums, 1)
	assert.Equal(t, "album_band_record", band.Albums[0].ID)
	assert.Equal(t, []int{1, 0}, band.Albums[0].Songs)
}
