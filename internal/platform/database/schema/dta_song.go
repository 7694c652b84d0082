// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// DTASongTable represents the 'dta.song' table.
type DTASongTable struct {
	Table      string
	DocumentID string
	Position   string
	SongKey    string
	SongID     string
	Name       string
	Artist     string
	Album      string
	Year       string
	Genre      string
	Author     string
	RankBand   string
	SongLength string
}

// DTASong is the schema definition for dta.song.
var DTASong = DTASongTable{
	Table:      "dta.song",
	DocumentID: "documentid",
	Position:   "position",
	SongKey:    "songkey",
	SongID:     "songid",
	Name:       "name",
	Artist:     "artist",
	Album:      "album",
	Year:       "year",
	Genre:      "genre",
	Author:     "author",
	RankBand:   "rankband",
	SongLength: "songlength",
}

// Columns lists every column in insert order.
func (t DTASongTable) Columns() []string {
	return []string{t.DocumentID, t.Position, t.SongKey, t.SongID, t.Name, t.Artist, t.Album, t.Year, t.Genre, t.Author, t.RankBand, t.SongLength}
}
