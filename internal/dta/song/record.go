// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package song defines the typed song record and projects parsed DTA trees
onto it.

A [Record] uses nil pointers and nil slices for absent fields, so the same
type serves complete records (every in-game field present) and partial
records (any subset keyed by id). Field-level behavior (presence, overlay,
projection) is driven by a single descriptor table in canonical order.
*/
package song

import (
	"encoding/json"
	"strconv"
	"strings"
)

// # Record

// Record is one song entry of a DTA document.
type Record struct {
	ID string `json:"id"`

	// Identity and presentation
	Name           *string `json:"name,omitempty"`
	Artist         *string `json:"artist,omitempty"`
	Fake           *bool   `json:"fake,omitempty"`
	Master         *bool   `json:"master,omitempty"`
	Context        *int    `json:"context,omitempty"`
	SongID         *SongID `json:"song_id,omitempty"`
	UpgradeVersion *int    `json:"upgrade_version,omitempty"`

	// Audio structure, written inside the (song ...) block
	SongName         *string   `json:"songname,omitempty"`
	TracksCount      []int     `json:"tracks_count,omitempty"`
	Pans             []float64 `json:"pans,omitempty"`
	Vols             []float64 `json:"vols,omitempty"`
	Cores            []int     `json:"cores,omitempty"`
	VocalParts       *int      `json:"vocal_parts,omitempty"`
	MuteVolume       *int      `json:"mute_volume,omitempty"`
	MuteVolumeVocals *int      `json:"mute_volume_vocals,omitempty"`
	HopoThreshold    *int      `json:"hopo_threshold,omitempty"`

	SongScrollSpeed *int    `json:"song_scroll_speed,omitempty"`
	Bank            *string `json:"bank,omitempty"`
	DrumBank        *string `json:"drum_bank,omitempty"`
	AnimTempo       *int    `json:"anim_tempo,omitempty"`
	BandFailCue     *string `json:"band_fail_cue,omitempty"`
	Preview         []int   `json:"preview,omitempty"`
	SongLength      *int    `json:"song_length,omitempty"`

	// Difficulty, written inside the (rank ...) block
	RankDrum       *int `json:"rank_drum,omitempty"`
	RankGuitar     *int `json:"rank_guitar,omitempty"`
	RankBass       *int `json:"rank_bass,omitempty"`
	RankVocals     *int `json:"rank_vocals,omitempty"`
	RankKeys       *int `json:"rank_keys,omitempty"`
	RankRealKeys   *int `json:"rank_real_keys,omitempty"`
	RankRealGuitar *int `json:"rank_real_guitar,omitempty"`
	RankRealBass   *int `json:"rank_real_bass,omitempty"`
	RankBand       *int `json:"rank_band,omitempty"`

	Solo              []string `json:"solo,omitempty"`
	Genre             *string  `json:"genre,omitempty"`
	SubGenre          *string  `json:"sub_genre,omitempty"`
	VocalGender       *string  `json:"vocal_gender,omitempty"`
	Format            *int     `json:"format,omitempty"`
	Version           *int     `json:"version,omitempty"`
	AlbumArt          *bool    `json:"album_art,omitempty"`
	AlbumName         *string  `json:"album_name,omitempty"`
	AlbumTrackNumber  *int     `json:"album_track_number,omitempty"`
	YearReleased      *int     `json:"year_released,omitempty"`
	YearRecorded      *int     `json:"year_recorded,omitempty"`
	Rating            *int     `json:"rating,omitempty"`
	TuningOffsetCents *float64 `json:"tuning_offset_cents,omitempty"`
	GuidePitchVolume  *float64 `json:"guide_pitch_volume,omitempty"`
	GameOrigin        *string  `json:"game_origin,omitempty"`
	Encoding          *string  `json:"encoding,omitempty"`

	// Tuning
	VocalTonicNote   *int     `json:"vocal_tonic_note,omitempty"`
	SongTonality     *int     `json:"song_tonality,omitempty"`
	SongKey          *int     `json:"song_key,omitempty"`
	RealGuitarTuning []int    `json:"real_guitar_tuning,omitempty"`
	RealBassTuning   []int    `json:"real_bass_tuning,omitempty"`
	AlternatePath    *bool    `json:"alternate_path,omitempty"`
	BasePoints       *int     `json:"base_points,omitempty"`
	ExtraAuthoring   []string `json:"extra_authoring,omitempty"`

	// Extended author fields
	Author        *string `json:"author,omitempty"`
	StringsAuthor *string `json:"strings_author,omitempty"`
	KeysAuthor    *string `json:"keys_author,omitempty"`
	LoadingPhrase *string `json:"loading_phrase,omitempty"`
	PackName      *string `json:"pack_name,omitempty"`

	// Authoring tool attributes, carried as ";Key=Value" comments
	Languages       []string      `json:"languages,omitempty"`
	Multitrack      *Multitrack   `json:"multitrack,omitempty"`
	UnpitchedVocals *bool         `json:"unpitched_vocals,omitempty"`
	Convert         *bool         `json:"convert,omitempty"`
	DoubleKick      *bool         `json:"double_kick,omitempty"`
	RhythmOn        *RhythmOn     `json:"rhythm_on,omitempty"`
	EMH             *EMH          `json:"emh,omitempty"`
	CustomSource    *CustomSource `json:"customsource,omitempty"`

	// Extra keeps unknown fields of partial records, in source order.
	Extra []Extra `json:"extra,omitempty"`
}

// Blocks an extra field can be nested in. Top-level fields have no scope.
const (
	ScopeSong = "song"
	ScopeRank = "rank"
)

// Extra is an unrecognized field kept verbatim. Raw is the inline text of
// the values following the key.
type Extra struct {
	Scope string `json:"scope,omitempty"`
	Key   string `json:"key"`
	Raw   string `json:"raw"`
}

// Path names the field as "key", or "block.key" when it is nested.
func (extra Extra) Path() string {
	if extra.Scope == "" {
		return extra.Key
	}
	return extra.Scope + "." + extra.Key
}

// ExtrasIn returns the extra fields nested in scope, in source order.
func (r *Record) ExtrasIn(scope string) []Extra {
	var extras []Extra
	for _, extra := range r.Extra {
		if extra.Scope == scope {
			extras = append(extras, extra)
		}
	}
	return extras
}

// CustomSource holds the alternative values written behind
// "#ifdef CUSTOMSOURCE".
type CustomSource struct {
	Genre      *string `json:"genre,omitempty"`
	SubGenre   *string `json:"sub_genre,omitempty"`
	GameOrigin *string `json:"game_origin,omitempty"`
}

// IsZero reports whether no alternative value is set.
func (source *CustomSource) IsZero() bool {
	return source == nil || (source.Genre == nil && source.SubGenre == nil && source.GameOrigin == nil)
}

// # Enumerations

// Multitrack describes the stems shipped with the song audio.
type Multitrack string

const (
	MultitrackKaraoke  Multitrack = "karaoke"
	MultitrackFull     Multitrack = "full"
	MultitrackDIYStems Multitrack = "diy_stems"
	MultitrackPartial  Multitrack = "partial"
)

// RhythmOn tells which track carries the rhythm guitar chart.
type RhythmOn string

const (
	RhythmOnKeys RhythmOn = "keys"
	RhythmOnBass RhythmOn = "bass"
)

// EMH tells how the easy/medium/hard difficulties were produced.
type EMH string

const (
	EMHCat        EMH = "cat"
	EMHExpertOnly EMH = "expert_only"
)

// # Song ID

// SongID is the save-game identifier of a song. It is usually numeric but
// older content uses string ids.
type SongID string

// IntID builds a numeric song id.
func IntID(number int64) SongID { return SongID(strconv.FormatInt(number, 10)) }

// Int returns the numeric value of the id.
func (id SongID) Int() (int64, bool) {
	number, err := strconv.ParseInt(string(id), 10, 64)
	return number, err == nil
}

// IsNumeric reports whether the id is an integer.
func (id SongID) IsNumeric() bool {
	_, ok := id.Int()
	return ok
}

// MarshalJSON writes numeric ids as JSON numbers.
func (id SongID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number or string.
func (id *SongID) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, `"`) {
		var decoded string
		if err := json.Unmarshal(data, &decoded); err != nil {
			return err
		}
		*id = SongID(decoded)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*id = SongID(number.String())
	return nil
}

// # Mode

// Mode selects how strictly a tree is projected.
type Mode int

const (
	// Complete drops unknown fields and requires every in-game field.
	Complete Mode = iota

	// Partial keeps every field and checks nothing but the id.
	Partial
)

func (mode Mode) String() string {
	if mode == Partial {
		return "partial"
	}
	return "complete"
}

// ParseMode reads "complete" or "partial".
func ParseMode(text string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "complete", "":
		return Complete, true
	case "partial":
		return Partial, true
	default:
		return Complete, false
	}
}
