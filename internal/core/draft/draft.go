// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package draft builds new song records from creation parameters or from the
tags of an audio file, and exposes the locale tables those parameters are
drawn from.

Drafts are never stored. A client renders a draft, edits it and merges it
into a document through the documents API.
*/
package draft

import (
	"github.com/taibuivan/dtakit/internal/dta/builder"
	"github.com/taibuivan/dtakit/internal/dta/locale"
	"github.com/taibuivan/dtakit/internal/dta/song"
)

// # Core Entities

// Draft is a built record with its rendering.
type Draft struct {
	Record  *song.Record `json:"record"`
	Dialect string       `json:"dialect"`
	Text    string       `json:"text"`

	// Params are the parameters the record was built from, after audio tags
	// were applied.
	Params builder.Params `json:"params"`

	// Source describes the audio file of a draft seeded from tags.
	Source *AudioTags `json:"source,omitempty"`
}

// AudioTags are the tags read from an uploaded audio file.
type AudioTags struct {
	Format   string `json:"format"`
	FileType string `json:"file_type"`
	Title    string `json:"title,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Year     int    `json:"year,omitempty"`
	Track    int    `json:"track,omitempty"`
}

// SubGenreList is the legal sub-genre list of one genre.
type SubGenreList struct {
	Genre     locale.Entry   `json:"genre"`
	SubGenres []locale.Entry `json:"sub_genres"`
}

// # Field Identifiers

const (
	FieldDialect = "dialect"
	FieldParams  = "params"
	FieldTable   = "table"
	FieldGenre   = "genre"
)
