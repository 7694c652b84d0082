// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package builder_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dtakit/internal/dta/builder"
	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/render"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/internal/dta/token"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

func minimalParams() builder.Params {
	return builder.Params{
		ID:           "mysong",
		Name:         "My Song",
		Artist:       "The Band",
		YearReleased: 2020,
		Guitar:       &builder.Guitar{Part: builder.Part{Channels: 2, Rank: "Solid"}},
	}
}

func fullBandParams() builder.Params {
	return builder.Params{
		ID:           "lightsout",
		Name:         "Lights Out",
		Artist:       "Beyoncé Tribute",
		SongName:     "lightsout",
		YearReleased: 2009,
		YearRecorded: pointer.To(2008),
		AlbumName:    "Night Drive",
		Drum: &builder.Drum{Part: builder.Part{
			Channels: 4,
			Rank:     "Moderate",
			HasSolo:  true,
			Mix:      builder.Mix{Vols: []float64{0, -1.5, 0, 0}},
		}},
		Bass: &builder.Bass{
			Part:    builder.Part{Channels: 2, Rank: "Challenging", HasSolo: true},
			RankPRO: pointer.To(builder.TierOf(3)),
		},
		Vocals: &builder.Vocals{
			Part:   builder.Part{Channels: 1, Rank: "Devil Dots"},
			Parts:  2,
			Gender: "Female",
		},
		Keys:               &builder.Keys{Part: builder.Part{Channels: 2, Rank: "Warmup"}},
		Crowd:              &builder.Crowd{Vols: []float64{-3}},
		BandRank:           pointer.To(builder.Tier("Nightmare")),
		MuteVolume:         pointer.To(-90),
		HopoThreshold:      pointer.To(170),
		AnimTempo:          "kTempoFast",
		Genre:              "Rock",
		SubGenre:           "Hard Rock",
		Preview:            []int{45000},
		SongKey:            "Bbm",
		TrainerKeyOverride: "F#",
		Author:             "Charter",
		Languages:          []string{"English", "Spanish"},
		Multitrack:         "full",
		DoubleKick:         true,
		RhythmOn:           "keys",
	}
}

/*
TestBuild_Defaults verifies every default applied to a one-instrument song.
*/
func TestBuild_Defaults(t *testing.T) {
	record, err := builder.Build(minimalParams())
	require.NoError(t, err)

	assert.True(t, record.IsComplete())
	assert.Equal(t, "mysong", pointer.Val(record.SongName))
	assert.Equal(t, song.SongID("2131211554"), pointer.Val(record.SongID))
	assert.True(t, pointer.Val(record.Master))

	assert.Equal(t, []int{0, 0, 2, 0, 0, 2}, record.TracksCount)
	assert.Equal(t, []float64{-1, 1, -1, 1}, record.Pans)
	assert.Equal(t, []float64{0, 0, 0, 0}, record.Vols)
	assert.Nil(t, record.Cores)
	assert.Equal(t, 0, pointer.Val(record.VocalParts))
	assert.Equal(t, "male", pointer.Val(record.VocalGender))

	assert.Equal(t, 176, pointer.Val(record.RankGuitar))
	assert.Equal(t, 176, pointer.Val(record.RankBand))
	assert.Nil(t, record.RankDrum)

	assert.Nil(t, record.MuteVolume)
	assert.Nil(t, record.HopoThreshold)
	assert.Equal(t, "sfx/tambourine_bank.milo", pointer.Val(record.Bank))
	assert.Equal(t, "sfx/kit01_bank.milo", pointer.Val(record.DrumBank))
	assert.Equal(t, 32, pointer.Val(record.AnimTempo))
	assert.Equal(t, "band_fail_rock_keys.cue", pointer.Val(record.BandFailCue))
	assert.Equal(t, 2300, pointer.Val(record.SongScrollSpeed))
	assert.Equal(t, []int{0, 30000}, record.Preview)
	assert.Equal(t, 30000, pointer.Val(record.SongLength))

	assert.Equal(t, "other", pointer.Val(record.Genre))
	assert.Equal(t, "subgenre_other", pointer.Val(record.SubGenre))
	assert.Equal(t, "ugc_plus", pointer.Val(record.GameOrigin))
	assert.Equal(t, 4, pointer.Val(record.Rating))
	assert.Equal(t, 10, pointer.Val(record.Format))
	assert.Equal(t, 30, pointer.Val(record.Version))
	assert.Equal(t, -3.0, pointer.Val(record.GuidePitchVolume))
	assert.True(t, pointer.Val(record.AlbumArt))
	assert.Equal(t, 1, pointer.Val(record.AlbumTrackNumber))
	assert.Equal(t, 0, pointer.Val(record.VocalTonicNote))
	assert.Equal(t, 0, pointer.Val(record.SongTonality))
	assert.Nil(t, record.SongKey)

	assert.Equal(t, "latin1", pointer.Val(record.Encoding))
	assert.Equal(t, []string{"English"}, record.Languages)
	assert.Nil(t, record.Convert)
}

/*
TestBuild_FullBand checks channel layout, ranks and attributes of a song
using every instrument.
*/
func TestBuild_FullBand(t *testing.T) {
	record, err := builder.Build(fullBandParams())
	require.NoError(t, err)

	assert.Equal(t, []int{4, 2, 0, 1, 2, 2, 2}, record.TracksCount)
	assert.Equal(t, []float64{0, 0, -1, 1, -1, 1, 0, -1, 1, -1, 1, -2.5, 2.5}, record.Pans)
	assert.Equal(t, []float64{0, -1.5, 0, 0, 0, 0, 0, 0, 0, 0, 0, -3, -3}, record.Vols)
	assert.Equal(t, []string{"drum", "bass"}, record.Solo)

	assert.Equal(t, 178, pointer.Val(record.RankDrum))
	assert.Equal(t, 293, pointer.Val(record.RankBass))
	assert.Equal(t, 267, pointer.Val(record.RankRealBass))
	assert.Equal(t, []int{0, 0, 0, 0}, record.RealBassTuning)
	assert.Equal(t, 427, pointer.Val(record.RankVocals))
	assert.Equal(t, 1, pointer.Val(record.RankKeys))
	assert.Nil(t, record.RankRealKeys)
	assert.Equal(t, 292, pointer.Val(record.RankBand))

	assert.Equal(t, 2, pointer.Val(record.VocalParts))
	assert.Equal(t, "female", pointer.Val(record.VocalGender))
	assert.Equal(t, -90, pointer.Val(record.MuteVolume))
	assert.Nil(t, record.HopoThreshold)
	assert.Equal(t, 64, pointer.Val(record.AnimTempo))
	assert.Equal(t, []int{45000, 75000}, record.Preview)

	assert.Equal(t, "rock", pointer.Val(record.Genre))
	assert.Equal(t, "subgenre_hardrock", pointer.Val(record.SubGenre))
	assert.Equal(t, 10, pointer.Val(record.VocalTonicNote))
	assert.Equal(t, builder.Minor, pointer.Val(record.SongTonality))
	assert.Equal(t, 6, pointer.Val(record.SongKey))

	assert.Equal(t, "utf8", pointer.Val(record.Encoding))
	assert.Equal(t, song.MultitrackFull, pointer.Val(record.Multitrack))
	assert.Equal(t, song.RhythmOnKeys, pointer.Val(record.RhythmOn))
	assert.True(t, pointer.Val(record.DoubleKick))
	assert.Nil(t, record.UnpitchedVocals)
}

/*
TestBuild_BandAverage ensures the band rank averages the playable parts
when none is given.
*/
func TestBuild_BandAverage(t *testing.T) {
	params := minimalParams()
	params.Drum = &builder.Drum{Part: builder.Part{Channels: 2, Rank: "Impossible"}}

	record, err := builder.Build(params)
	require.NoError(t, err)

	// guitar 176, drum 448
	assert.Equal(t, 312, pointer.Val(record.RankBand))
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		tonic    int
		tonality int
	}{
		{"C", 0, builder.Major},
		{"C#m", 1, builder.Minor},
		{"Db Minor", 1, builder.Minor},
		{"Bb", 10, builder.Major},
		{"F# Major", 6, builder.Major},
		{"Em", 4, builder.Minor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tonic, tonality, err := builder.ParseKey(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.tonic, tonic)
			assert.Equal(t, tt.tonality, tonality)
		})
	}

	_, _, err := builder.ParseKey("H")
	assert.ErrorIs(t, err, dtaerr.ErrValueRange)
}

/*
TestBuild_Failures checks that invalid creation parameters are rejected
as value range errors.
*/
func TestBuild_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*builder.Params)
	}{
		{"missing_id", func(p *builder.Params) { p.ID = "" }},
		{"id_with_space", func(p *builder.Params) { p.ID = "my song" }},
		{"missing_artist", func(p *builder.Params) { p.Artist = " " }},
		{"mono_drums", func(p *builder.Params) {
			p.Drum = &builder.Drum{Part: builder.Part{Channels: 1, Rank: "1"}}
		}},
		{"three_guitar_channels", func(p *builder.Params) { p.Guitar.Channels = 3 }},
		{"pans_length", func(p *builder.Params) { p.Guitar.Pans = []float64{0} }},
		{"pans_decimals", func(p *builder.Params) { p.Guitar.Pans = []float64{-0.125, 0.125} }},
		{"vols_decimals", func(p *builder.Params) { p.Guitar.Vols = []float64{0, -0.005} }},
		{"guide_pitch_decimals", func(p *builder.Params) { p.GuidePitchVolume = pointer.To(-2.75) }},
		{"tuning_decimals", func(p *builder.Params) { p.TuningOffsetCents = pointer.To(12.345) }},
		{"unranked_vocals", func(p *builder.Params) {
			p.Vocals = &builder.Vocals{Part: builder.Part{Channels: 1, Rank: "-1"}, Parts: 1}
		}},
		{"unknown_rank", func(p *builder.Params) { p.Guitar.Rank = "Legendary" }},
		{"rank_out_of_range", func(p *builder.Params) { p.Guitar.Rank = "7" }},
		{"illegal_sub_genre", func(p *builder.Params) { p.Genre, p.SubGenre = "rock", "subgenre_bluegrass" }},
		{"preview_values", func(p *builder.Params) { p.Preview = []int{1, 2, 3} }},
		{"unknown_bank", func(p *builder.Params) { p.Bank = "Triangle" }},
		{"no_instruments", func(p *builder.Params) { p.Guitar = nil }},
		{"vocal_parts", func(p *builder.Params) {
			p.Vocals = &builder.Vocals{Part: builder.Part{Channels: 1, Rank: "1"}, Parts: 4}
		}},
		{"multitrack", func(p *builder.Params) { p.Multitrack = "stems" }},
		{"pro_tuning", func(p *builder.Params) {
			p.Guitar.RankPRO = pointer.To(builder.TierOf(2))
			p.Guitar.Tuning = []int{0, 0, 0, 0}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := minimalParams()
			tt.mutate(&params)

			_, err := builder.Build(params)
			require.Error(t, err)
			assert.ErrorIs(t, err, dtaerr.ErrValueRange)
		})
	}
}

/*
TestBuild_RoundTrip renders built records, parses them back and expects the
same record.
*/
func TestBuild_RoundTrip(t *testing.T) {
	dialects := []render.Dialect{render.Authoring, render.DistributionA}
	cases := map[string]builder.Params{
		"minimal":   minimalParams(),
		"full_band": fullBandParams(),
	}

	for name, params := range cases {
		for _, dialect := range dialects {
			t.Run(name+"/"+string(dialect), func(t *testing.T) {
				record, err := builder.Build(params)
				require.NoError(t, err)

				opts := render.DefaultOptions(song.Complete)
				opts.Dialect = dialect

				text, err := render.Record(record, song.Complete, opts)
				require.NoError(t, err)

				root, err := token.Parse(text)
				require.NoError(t, err)

				projected, err := song.Project(root, song.Complete)
				require.NoError(t, err)
				assert.Equal(t, record, projected)
			})
		}
	}
}

func TestParams_JSON(t *testing.T) {
	payload := `{
		"id": "jsonsong",
		"name": "From JSON",
		"artist": "Band",
		"song_id": 1234,
		"year_released": 1999,
		"drum": {"channels": 2, "rank": 4},
		"band_rank": "Solid"
	}`

	var params builder.Params
	require.NoError(t, json.Unmarshal([]byte(payload), &params))
	assert.Equal(t, builder.Tier("4"), params.Drum.Rank)

	record, err := builder.Build(params)
	require.NoError(t, err)
	assert.Equal(t, song.SongID("1234"), pointer.Val(record.SongID))
	assert.Equal(t, 242, pointer.Val(record.RankDrum))
	assert.Equal(t, 215, pointer.Val(record.RankBand))
}
