// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package document stores DTA song lists and serves the engine operations on
them over HTTP.

A stored [Document] keeps the archive rendering of its records (authoring
layout, document order, Latin-1 or UTF-8 bytes) together with the canonical
hash of its content. Every mutation reloads the stored bytes through the
engine, applies the change, writes the new rendering back and replaces the
per-song summary rows in one transaction.

# Caching

Rendered variants and hashes are cached in Redis. Render keys embed the
document hash, so a mutated document never serves an old rendering.
*/
package document

import (
	"time"

	"github.com/taibuivan/dtakit/internal/dta"
	"github.com/taibuivan/dtakit/internal/dta/order"
	"github.com/taibuivan/dtakit/internal/dta/rank"
	"github.com/taibuivan/dtakit/internal/dta/render"
)

// # Core Entities

// Document is a stored song list.
type Document struct {
	ID        string `json:"id"` // UUIDv7
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Mode      string `json:"mode"`    // complete, partial
	Charset   string `json:"charset"` // latin1, utf8
	Hash      string `json:"hash"`
	SongCount int    `json:"song_count"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedBy string `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Content is the archive rendering. List queries leave it empty.
	Content []byte `json:"-"`

	// Duplicates lists record ids dropped while loading an upload. It is
	// not persisted.
	Duplicates []string `json:"duplicates,omitempty"`
}

// Song is the summary row of one record, used for listings and search.
type Song struct {
	DocumentID  string `json:"document_id,omitempty"`
	Position    int    `json:"position"`
	Key         string `json:"id"`
	SongID      string `json:"song_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	Year        int    `json:"year,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Author      string `json:"author,omitempty"`
	RankBand    int    `json:"rank_band,omitempty"`
	SongLength  int    `json:"song_length,omitempty"`
	LengthHuman string `json:"length_human,omitempty"`
}

// # Operation Inputs

// UploadInput is a document body with its metadata.
type UploadInput struct {
	Title    string
	Mode     string
	FileName string
	Data     []byte
}

// ImportInput references a document to fetch over HTTP(S).
type ImportInput struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Mode  string `json:"mode"`
}

// BatchResult reports the outcome of one file of a batch import.
type BatchResult struct {
	FileName string    `json:"file_name"`
	Document *Document `json:"document,omitempty"`
	Error    string    `json:"error,omitempty"`
	Code     string    `json:"code,omitempty"`
}

// RenderQuery selects a rendering. Nil fields keep the mode defaults.
type RenderQuery struct {
	Dialect          string
	SortBy           string
	SkipFake         *bool
	Compact          *bool
	InferPansVols    *bool
	Extended         *bool
	GuitarCores      *bool
	CustomAttributes *bool
	CustomSource     *bool
	WiiGen           string
	WiiSlot          int
}

// SongQuery sorts and filters the song listing of a document.
type SongQuery struct {
	SortBy string
	Filter order.Filter
}

// HeaderQuery selects a header view.
type HeaderQuery struct {
	View           string
	Instrument     string
	AlbumThreshold int
	Filter         order.Filter
}

// MergeOutcome is the result of a merge.
type MergeOutcome struct {
	dta.MergeResult
	Document *Document `json:"document"`
}

// PatchOutcome is the result of a song id or encoding patch.
type PatchOutcome struct {
	Patched  int       `json:"patched"`
	Document *Document `json:"document"`
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldMode       = "mode"
	FieldURL        = "url"
	FieldDialect    = "dialect"
	FieldSort       = "sort"
	FieldView       = "view"
	FieldInstrument = "instrument"
	FieldWiiSlot    = "wii_slot"
	FieldGenre      = "genre"
	FieldSubGenre   = "sub_genre"
	FieldQuery      = "q"
)

// # Option Tables

var dialectNames = func() []string {
	names := make([]string, 0, len(render.Dialects))
	for _, dialect := range render.Dialects {
		names = append(names, string(dialect))
	}
	return names
}()

var sortNames = func() []string {
	names := make([]string, 0, len(order.SortOrders))
	for _, sortBy := range order.SortOrders {
		names = append(names, string(sortBy))
	}
	return names
}()

var instrumentNames = func() []string {
	names := make([]string, 0, len(rank.Instruments))
	for _, instrument := range rank.Instruments {
		names = append(names, string(instrument))
	}
	return names
}()
