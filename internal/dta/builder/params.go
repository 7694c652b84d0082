// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package builder

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/taibuivan/dtakit/internal/dta/song"
)

// # Creation Parameters

// Params describe a new song. Zero values select the documented default of
// each field, so only ID, Name and Artist are needed for a valid record.
type Params struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`

	// Master defaults to true.
	Master *bool `json:"master,omitempty"`

	// SongID defaults to the numeric id derived from SongName, or from ID
	// when SongName is empty.
	SongID *song.SongID `json:"song_id,omitempty"`

	// SongName is the audio folder name. Defaults to ID.
	SongName string `json:"songname,omitempty"`

	Drum   *Drum   `json:"drum,omitempty"`
	Bass   *Bass   `json:"bass,omitempty"`
	Guitar *Guitar `json:"guitar,omitempty"`
	Vocals *Vocals `json:"vocals,omitempty"`
	Keys   *Keys   `json:"keys,omitempty"`

	// Backing defaults to a stereo backing track.
	Backing *Backing `json:"backing,omitempty"`

	// Crowd adds the stereo crowd track when set.
	Crowd *Crowd `json:"crowd,omitempty"`

	MuteVolume       *int `json:"mute_volume,omitempty"`
	MuteVolumeVocals *int `json:"mute_volume_vocals,omitempty"`
	HopoThreshold    *int `json:"hopo_threshold,omitempty"`

	// Enumerations accept either the file token or the display name, e.g.
	// "sfx/kit02_bank.milo" or "Arena Kit".
	Bank            string `json:"bank,omitempty"`
	DrumBank        string `json:"drum_bank,omitempty"`
	AnimTempo       string `json:"anim_tempo,omitempty"`
	BandFailCue     string `json:"band_fail_cue,omitempty"`
	SongScrollSpeed string `json:"song_scroll_speed,omitempty"`
	GameOrigin      string `json:"game_origin,omitempty"`
	Rating          string `json:"rating,omitempty"`
	Genre           string `json:"genre,omitempty"`
	SubGenre        string `json:"sub_genre,omitempty"`

	// Preview is either [start] (30 seconds are added) or [start, end], in
	// milliseconds.
	Preview    []int `json:"preview,omitempty"`
	SongLength *int  `json:"song_length,omitempty"`

	// BandRank defaults to the average of the instrument ranks.
	BandRank *Tier `json:"band_rank,omitempty"`

	TuningOffsetCents *float64 `json:"tuning_offset_cents,omitempty"`
	GuidePitchVolume  *float64 `json:"guide_pitch_volume,omitempty"`
	Format            *int     `json:"format,omitempty"`
	Version           *int     `json:"version,omitempty"`

	YearReleased     int    `json:"year_released,omitempty"`
	YearRecorded     *int   `json:"year_recorded,omitempty"`
	AlbumArt         *bool  `json:"album_art,omitempty"`
	AlbumName        string `json:"album_name,omitempty"`
	AlbumTrackNumber *int   `json:"album_track_number,omitempty"`

	// SongKey is a key name such as "C", "F# Major", "Bbm" or "Db Minor".
	SongKey string `json:"song_key,omitempty"`

	// TrainerKeyOverride is the tonic used by the keys trainers.
	TrainerKeyOverride string `json:"trainer_key_override,omitempty"`

	PackName      string `json:"pack_name,omitempty"`
	LoadingPhrase string `json:"loading_phrase,omitempty"`
	Author        string `json:"author,omitempty"`
	StringsAuthor string `json:"strings_author,omitempty"`
	KeysAuthor    string `json:"keys_author,omitempty"`

	Languages       []string `json:"languages,omitempty"`
	Multitrack      string   `json:"multitrack,omitempty"`
	UnpitchedVocals bool     `json:"unpitched_vocals,omitempty"`
	Convert         bool     `json:"convert,omitempty"`
	DoubleKick      bool     `json:"double_kick,omitempty"`
	RhythmOn        string   `json:"rhythm_on,omitempty"`
	EMH             string   `json:"emh,omitempty"`

	CustomSource *song.CustomSource `json:"customsource,omitempty"`
}

// # Instruments

// Mix overrides the default pans and volumes of a part. When set, each
// slice must hold one value per channel.
type Mix struct {
	Pans []float64 `json:"pans,omitempty"`
	Vols []float64 `json:"vols,omitempty"`
}

// Part is the common shape of a playable instrument.
type Part struct {
	Mix

	// Channels is the number of audio channels: 1 or 2, or 2 to 6 for drums.
	Channels int  `json:"channels"`
	Rank     Tier `json:"rank"`
	HasSolo  bool `json:"has_solo,omitempty"`
}

type Drum struct {
	Part
}

type Bass struct {
	Part
	RankPRO *Tier `json:"rank_pro,omitempty"`

	// Tuning of the four PRO strings in semitones. Defaults to E standard
	// when a PRO rank is given.
	Tuning []int `json:"tuning,omitempty"`
}

type Guitar struct {
	Part
	RankPRO *Tier `json:"rank_pro,omitempty"`

	// Tuning of the six PRO strings in semitones.
	Tuning []int `json:"tuning,omitempty"`
}

type Keys struct {
	Part
	RankPRO *Tier `json:"rank_pro,omitempty"`
}

type Vocals struct {
	Part

	// Parts is 1 for solo vocals, 2 or 3 for harmonies.
	Parts int `json:"parts"`

	// Gender defaults to male.
	Gender string `json:"gender,omitempty"`
}

type Backing struct {
	Mix
	Channels int `json:"channels"`
}

// Crowd holds the volumes of the crowd pair. An empty Vols leaves both at
// 0 dB and a single value applies to both channels.
type Crowd struct {
	Vols []float64 `json:"vols,omitempty"`
}

// # Tier

// Tier is a difficulty given by tier number ("-1" to "6") or by name
// ("Moderate", "Devil Dots"). It decodes from a JSON number or string.
type Tier string

// TierOf returns the tier of a number.
func TierOf(tier int) Tier { return Tier(strconv.Itoa(tier)) }

func (tier *Tier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return err
		}
		*tier = Tier(number.String())
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*tier = Tier(text)
	return nil
}
