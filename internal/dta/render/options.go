// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render

import (
	"strings"

	"github.com/taibuivan/dtakit/internal/dta/order"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/internal/dta/value"
)

// Dialect selects the presentation of rendered records.
type Dialect string

const (
	// Authoring is the layout written by song authoring tools: quoted keys,
	// one value per line, numeric booleans.
	Authoring Dialect = "authoring"

	// DistributionA is the compact layout of downloadable content for the
	// current game build.
	DistributionA Dialect = "distribution-a"

	// DistributionB is DistributionA without the fields the older build
	// does not read.
	DistributionB Dialect = "distribution-b"
)

// Dialects lists every accepted [Dialect].
var Dialects = []Dialect{Authoring, DistributionA, DistributionB}

// ParseDialect reads a dialect name. The empty string means [DistributionA].
func ParseDialect(text string) (Dialect, bool) {
	if text == "" {
		return DistributionA, true
	}
	for _, dialect := range Dialects {
		if strings.EqualFold(string(dialect), text) {
			return dialect, true
		}
	}
	return "", false
}

func (dialect Dialect) format() value.Format {
	if dialect == Authoring {
		return value.Authoring
	}
	return value.Distribution
}

// WiiMode rewrites song paths to the layout of a Wii DLC slot.
type WiiMode struct {
	// Gen is the folder of the content generation, e.g. "sZAE".
	Gen string `json:"gen"`

	// Slot is the DLC slot number. It must be odd.
	Slot int `json:"slot"`
}

// Options drive a render. They are passed by value and never shared.
type Options struct {
	Dialect Dialect      `json:"dialect"`
	SortBy  order.SortBy `json:"sort_by"`

	SkipFakeRecords bool `json:"skip_fake_records"`

	// CompactPartialLayout writes each partial record on a single line.
	CompactPartialLayout bool `json:"compact_partial_layout"`

	// InferPansVols writes default pans and vols for complete records that
	// have none.
	InferPansVols bool `json:"infer_pans_vols"`

	// IncludeExtendedAuthorFields writes author, strings_author,
	// keys_author and loading_phrase.
	IncludeExtendedAuthorFields bool `json:"include_extended_author_fields"`

	// GuitarCores marks the guitar channels with 1 in the cores array.
	GuitarCores bool `json:"guitar_cores"`

	// PlaceCustomAttributes appends the authoring tool comment block to
	// complete records.
	PlaceCustomAttributes bool `json:"place_custom_attributes"`

	// UseCustomSource writes the #ifdef CUSTOMSOURCE alternatives of genre,
	// sub_genre and game_origin.
	UseCustomSource bool `json:"use_custom_source"`

	WiiMode *WiiMode `json:"wii_mode,omitempty"`

	// ExactFloats writes floats unrounded instead of at the dialect
	// precision. Without it a float the precision cannot hold fails the
	// render.
	ExactFloats bool `json:"exact_floats"`
}

// DefaultOptions returns the options used when a caller does not choose.
func DefaultOptions(mode song.Mode) Options {
	complete := mode == song.Complete
	return Options{
		Dialect:                     DistributionA,
		SortBy:                      order.SortNone,
		InferPansVols:               complete,
		IncludeExtendedAuthorFields: complete,
		GuitarCores:                 complete,
		PlaceCustomAttributes:       complete,
		UseCustomSource:             true,
	}
}

// format returns the value format of the render.
func (opts Options) format() value.Format {
	format := opts.Dialect.format()
	if opts.ExactFloats {
		return format.Exact()
	}
	return format
}

// omitted reports whether the dialect drops key.
func (dialect Dialect) omitted(key string) bool {
	if dialect != DistributionB {
		return false
	}
	switch key {
	case "rank_keys", "rank_real_keys", "rank_real_guitar", "rank_real_bass",
		"real_guitar_tuning", "real_bass_tuning",
		"vocal_tonic_note", "song_tonality", "song_key":
		return true
	}
	return false
}
