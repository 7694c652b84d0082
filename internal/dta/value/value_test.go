// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/value"
)

/*
TestRender_Presets writes the same fields with both presets.
*/
func TestRender_Presets(t *testing.T) {
	tests := []struct {
		name         string
		field        value.Field
		authoring    string
		distribution string
	}{
		{
			name:         "string",
			field:        value.F("name", value.String(`Say "Hi"`)),
			authoring:    "(\n\t'name'\n\t\"Say \\qHi\\q\"\n)\n",
			distribution: "(name \"Say \\qHi\\q\")\n",
		},
		{
			name:         "boolean",
			field:        value.F("fake", value.Boolean(true)),
			authoring:    "('fake' 1)\n",
			distribution: "(fake TRUE)\n",
		},
		{
			name:         "integer",
			field:        value.F("song_length", value.Int(30000)),
			authoring:    "('song_length' 30000)\n",
			distribution: "(song_length 30000)\n",
		},
		{
			name:         "symbol",
			field:        value.F("genre", value.Symbol("rock")),
			authoring:    "('genre' rock)\n",
			distribution: "(genre rock)\n",
		},
		{
			name:         "float_array",
			field:        value.F("pans", value.Floats([]float64{-1, 1})),
			authoring:    "(\n\t'pans'\n\t(-1.00 1.00)\n)\n",
			distribution: "(pans (-1.0 1.0))\n",
		},
		{
			name:         "object",
			field:        value.F("rank", value.Object(value.F("drum", value.Int(124)), value.F("band", value.Int(165)))),
			authoring:    "(\n\t'rank'\n\t('drum' 124)\n\t('band' 165)\n)\n",
			distribution: "(rank\n\t(drum 124)\n\t(band 165)\n)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authoring, err := value.Render(tt.field, value.Authoring)
			require.NoError(t, err)
			assert.Equal(t, tt.authoring, authoring)

			distribution, err := value.Render(tt.field, value.Distribution)
			require.NoError(t, err)
			assert.Equal(t, tt.distribution, distribution)
		})
	}
}

/*
TestRender_Overrides checks per-value formats and their inheritance.
*/
func TestRender_Overrides(t *testing.T) {
	preview := value.F("preview", value.Ints([]int{0, 30000}).WithFormat(value.Authoring.Inlined().Bare()))
	text, err := value.Render(preview, value.Authoring)
	require.NoError(t, err)
	assert.Equal(t, "('preview' 0 30000)\n", text)

	quoted := value.Authoring
	quoted.QuoteSymbol = true
	seqs := value.F("seqs", value.Symbols([]string{"kick.cue", "snare.cue"}).WithFormat(quoted))
	text, err = value.Render(seqs, value.Authoring)
	require.NoError(t, err)
	assert.Equal(t, "(\n\t'seqs'\n\t('kick.cue' 'snare.cue')\n)\n", text)

	pitch := value.F("guide_pitch_volume", value.Float(-3).WithFormat(value.Distribution.WithPrecision(1)))
	text, err = value.Render(pitch, value.Authoring)
	require.NoError(t, err)
	assert.Equal(t, "(guide_pitch_volume -3.0)\n", text)
}

/*
TestRender_AnonymousList covers the track map shapes of both presets.
*/
func TestRender_AnonymousList(t *testing.T) {
	tracks := value.F("tracks", value.Object(value.F("", value.Object(
		value.F("drum", value.Ints([]int{0, 1})),
		value.F("bass", value.Ints([]int{2}).WithFormat(value.Distribution.Bare())),
	))))

	text, err := value.Render(tracks, value.Distribution)
	require.NoError(t, err)
	assert.Equal(t, "(tracks\n\t((drum (0 1))\n\t (bass 2))\n)\n", text)

	expanded := value.F("tracks", value.Object(value.F("", value.Object(
		value.F("drum", value.Ints([]int{0, 1})),
	))))
	text, err = value.Render(expanded, value.Authoring)
	require.NoError(t, err)
	assert.Equal(t, "(\n\t'tracks'\n\t(\n\t\t(\n\t\t\t'drum'\n\t\t\t(0 1)\n\t\t)\n\t)\n)\n", text)
}

func TestRender_Trailer(t *testing.T) {
	record := value.F("song1", value.Object(value.F("name", value.String("A"))).WithTrailer(";Song=A\n"))
	text, err := value.Render(record, value.Distribution)
	require.NoError(t, err)
	assert.Equal(t, "(song1\n\t(name \"A\")\n;Song=A\n)\n", text)
}

func TestRender_NumericKeyQuoted(t *testing.T) {
	text, err := value.Render(value.F("1234", value.Object(value.F("name", value.String("A")))), value.Distribution)
	require.NoError(t, err)
	assert.Equal(t, "('1234'\n\t(name \"A\")\n)\n", text)
}

func TestRender_NonFiniteFloat(t *testing.T) {
	_, err := value.Render(value.F("pans", value.Floats([]float64{math.NaN()})), value.Distribution)
	assert.ErrorIs(t, err, dtaerr.ErrValueRange)

	_, err = value.Render(value.F("x", value.Float(math.Inf(1))), value.Authoring)
	assert.ErrorIs(t, err, dtaerr.ErrValueRange)
}

/*
TestRender_FloatPrecision refuses floats the precision would round and
writes them unrounded in an exact format.
*/
func TestRender_FloatPrecision(t *testing.T) {
	tests := []struct {
		name   string
		number float64
		format value.Format
		want   string
		err    bool
	}{
		{"fits_distribution", -2.5, value.Distribution, "(x -2.5)\n", false},
		{"padded_authoring", 0.1, value.Authoring.Inlined(), "('x' 0.10)\n", false},
		{"rounded_distribution", -2.75, value.Distribution, "", true},
		{"rounded_authoring", 0.125, value.Authoring.Inlined(), "", true},
		{"exact", 0.125, value.Distribution.Exact(), "(x 0.125)\n", false},
		{"exact_whole", -1, value.Distribution.Exact(), "(x -1)\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := value.Render(value.F("x", value.Float(tt.number)), tt.format)
			if tt.err {
				assert.ErrorIs(t, err, dtaerr.ErrValueRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}

	t.Run("exact_ignores_override", func(t *testing.T) {
		assert.Equal(t, -1, value.Distribution.Exact().WithPrecision(1).Precision)
	})
}

/*
TestClassify maps plain values onto kinds.
*/
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want value.Kind
	}{
		{"identifier", "rock", value.KindSymbol},
		{"path_symbol", "sfx/kit01_bank.milo", value.KindSymbol},
		{"title", "The Zoo", value.KindString},
		{"uppercase", "Rock", value.KindString},
		{"numeric_text", "123", value.KindString},
		{"punctuation", "_hidden", value.KindString},
		{"int", 42, value.KindInteger},
		{"float", 1.5, value.KindFloat},
		{"bool", true, value.KindBoolean},
		{"slice", []int{1, 2}, value.KindArray},
		{"map", map[string]any{"b": 1, "a": "x"}, value.KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, value.Classify(tt.raw).Kind())
		})
	}

	object := value.Classify(map[string]any{"b": 1, "a": "x"})
	fields := object.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Key)
}
