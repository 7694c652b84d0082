// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rank converts between raw DTA difficulty values and the seven-step
tier scale shown to players (-1 "No Part" through 6 "Impossible").
*/
package rank

import (
	"math"
	"slices"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
)

// Instrument names a difficulty track.
type Instrument string

const (
	Drum       Instrument = "drum"
	Bass       Instrument = "bass"
	Guitar     Instrument = "guitar"
	Vocals     Instrument = "vocals"
	Keys       Instrument = "keys"
	RealKeys   Instrument = "real_keys"
	RealBass   Instrument = "real_bass"
	RealGuitar Instrument = "real_guitar"
	Band       Instrument = "band"
)

// Tier bounds.
const (
	NoPart     = -1
	Warmup     = 0
	Impossible = 6
)

var thresholds = map[Instrument][6]int{
	Drum:       {124, 151, 178, 242, 345, 448},
	Bass:       {135, 181, 228, 293, 364, 436},
	Guitar:     {139, 176, 221, 267, 333, 409},
	Vocals:     {132, 175, 218, 279, 353, 427},
	Keys:       {153, 211, 269, 327, 385, 443},
	RealKeys:   {153, 211, 269, 327, 385, 443},
	RealBass:   {150, 208, 267, 325, 384, 442},
	RealGuitar: {150, 208, 267, 325, 384, 442},
	Band:       {165, 215, 243, 267, 292, 345},
}

// Instruments lists every instrument in rank-block order.
var Instruments = []Instrument{Drum, Guitar, Bass, Vocals, Keys, RealKeys, RealGuitar, RealBass, Band}

// Playable are the instruments counted by [BandAverage].
var Playable = []Instrument{Drum, Bass, Guitar, Vocals, Keys}

// Valid reports whether instrument has a threshold table.
func (instrument Instrument) Valid() bool {
	_, ok := thresholds[instrument]
	return ok
}

// Field returns the record field holding the instrument's raw rank.
func (instrument Instrument) Field() string {
	return "rank_" + string(instrument)
}

// IsPlayable reports whether the instrument takes part in the band average.
func (instrument Instrument) IsPlayable() bool {
	return slices.Contains(Playable, instrument)
}

// For classifies a raw value. Zero means the part does not exist; values
// below the first threshold are Warmup and every threshold reached adds one
// tier. Unknown instruments classify as [NoPart].
func For(instrument Instrument, raw int) int {
	table, ok := thresholds[instrument]
	if !ok || raw == 0 {
		return NoPart
	}

	tier := Warmup
	for _, threshold := range table {
		if raw >= threshold {
			tier++
		}
	}
	return tier
}

// Threshold returns the smallest raw value classifying as tier. [NoPart]
// maps to 0 and [Warmup] to 1.
func Threshold(instrument Instrument, tier int) (int, error) {
	table, ok := thresholds[instrument]
	if !ok {
		return 0, dtaerr.ValueRange("unknown rank instrument %q", instrument)
	}

	switch {
	case tier == NoPart:
		return 0, nil
	case tier == Warmup:
		return 1, nil
	case tier > Warmup && tier <= Impossible:
		return table[tier-1], nil
	default:
		return 0, dtaerr.ValueRange("rank tier %d is outside %d..%d", tier, NoPart, Impossible)
	}
}

// BandAverage returns sum/count rounded to the nearest integer.
func BandAverage(sum, count int) (int, error) {
	if count <= 0 {
		return 0, dtaerr.ValueRange("band average needs at least one playable instrument")
	}
	return int(math.Round(float64(sum) / float64(count))), nil
}
