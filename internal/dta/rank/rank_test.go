// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/rank"
)

/*
TestFor_DrumBoundaries pins the drum tier edges.
*/
func TestFor_DrumBoundaries(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{0, -1},
		{100, 0},
		{123, 0},
		{124, 1},
		{150, 1},
		{151, 2},
		{447, 5},
		{448, 6},
		{1000, 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rank.For(rank.Drum, tt.raw), "raw %d", tt.raw)
	}
}

/*
TestFor_Monotonic walks every instrument table and checks the tier never
decreases as the raw value grows.
*/
func TestFor_Monotonic(t *testing.T) {
	for _, instrument := range rank.Instruments {
		t.Run(string(instrument), func(t *testing.T) {
			previous := rank.For(instrument, 1)
			for raw := 2; raw <= 600; raw++ {
				current := rank.For(instrument, raw)
				require.GreaterOrEqual(t, current, previous, "raw %d", raw)
				previous = current
			}
			assert.Equal(t, rank.Impossible, previous)
		})
	}
}

/*
TestThreshold_RoundTrip checks that every threshold classifies back to its
own tier.
*/
func TestThreshold_RoundTrip(t *testing.T) {
	for _, instrument := range rank.Instruments {
		for tier := rank.NoPart; tier <= rank.Impossible; tier++ {
			raw, err := rank.Threshold(instrument, tier)
			require.NoError(t, err)
			assert.Equal(t, tier, rank.For(instrument, raw), "%s tier %d", instrument, tier)
		}
	}

	raw, err := rank.Threshold(rank.Band, 6)
	require.NoError(t, err)
	assert.Equal(t, 345, raw)
}

func TestThreshold_OutOfRange(t *testing.T) {
	_, err := rank.Threshold(rank.Drum, 7)
	assert.ErrorIs(t, err, dtaerr.ErrValueRange)

	_, err = rank.Threshold(rank.Instrument("tambourine"), 1)
	assert.ErrorIs(t, err, dtaerr.ErrValueRange)
}

func TestBandAverage(t *testing.T) {
	average, err := rank.BandAverage(124+135+139, 3)
	require.NoError(t, err)
	assert.Equal(t, 133, average)

	average, err = rank.BandAverage(5, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, average)

	_, err = rank.BandAverage(10, 0)
	assert.ErrorIs(t, err, dtaerr.ErrValueRange)
}
