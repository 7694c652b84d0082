// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package channel derives the audio channel layout of a song from its
tracks_count array: which absolute channels belong to each instrument group,
the default pans and volumes, and the drum kick/snare/kit sub-mixes.
*/
package channel

import (
	"slices"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
)

// Group names an instrument group of the multitrack audio.
type Group string

const (
	Drum    Group = "drum"
	Bass    Group = "bass"
	Guitar  Group = "guitar"
	Vocals  Group = "vocals"
	Keys    Group = "keys"
	Backing Group = "backing"
	Crowd   Group = "crowd"
)

// Groups is the order of tracks_count slots.
var Groups = []Group{Drum, Bass, Guitar, Vocals, Keys, Backing, Crowd}

// Crowd audio is always one stereo pair panned hard outside the mix.
const (
	CrowdChannels = 2
	CrowdPanLeft  = -2.5
	CrowdPanRight = 2.5
)

// Range is the run of absolute channel indices owned by a group.
type Range struct {
	Group   Group `json:"group"`
	Start   int   `json:"start"`
	Count   int   `json:"count"`
	Enabled bool  `json:"enabled"`
}

// Indices returns the absolute channel indices of the range.
func (r Range) Indices() []int {
	if r.Count == 0 {
		return nil
	}
	indices := make([]int, r.Count)
	for offset := range indices {
		indices[offset] = r.Start + offset
	}
	return indices
}

// Layout is the channel arrangement derived from tracks_count.
type Layout struct {
	Ranges      []Range   `json:"ranges"`
	Total       int       `json:"total"`
	DefaultPans []float64 `json:"default_pans"`
	DefaultVols []float64 `json:"default_vols"`
}

// Range returns the range of group.
func (layout Layout) Range(group Group) Range {
	for _, r := range layout.Ranges {
		if r.Group == group {
			return r
		}
	}
	return Range{Group: group}
}

// DefaultPans returns the standard pans of a group of count channels.
func DefaultPans(count int) ([]float64, error) {
	switch count {
	case 1:
		return []float64{0}, nil
	case 2:
		return []float64{-1, 1}, nil
	case 3:
		return []float64{0, -1, 1}, nil
	case 4:
		return []float64{0, 0, -1, 1}, nil
	case 5:
		return []float64{0, -1, 1, -1, 1}, nil
	case 6:
		return []float64{-1, 1, -1, 1, -1, 1}, nil
	default:
		return nil, dtaerr.ValueRange("a track group must have 1 to 6 channels, got %d", count)
	}
}

// Structure lays out the channels of tracks_count. The array holds six
// group counts in [Groups] order plus an optional seventh crowd slot. A
// non-zero crowd slot always yields one stereo pair and zero means no crowd.
func Structure(tracksCount []int) (Layout, error) {
	if len(tracksCount) < 6 || len(tracksCount) > 7 {
		return Layout{}, dtaerr.ValueRange("tracks_count must have 6 or 7 entries, got %d", len(tracksCount))
	}

	var layout Layout
	for index, count := range tracksCount {
		group := Groups[index]
		if count < 0 {
			return Layout{}, dtaerr.ValueRange("%s track count cannot be negative", group)
		}

		if group == Crowd && count > 0 {
			count = CrowdChannels
		}

		layout.Ranges = append(layout.Ranges, Range{Group: group, Start: layout.Total, Count: count, Enabled: count > 0})
		layout.Total += count

		if count == 0 {
			continue
		}
		if group == Crowd {
			layout.DefaultPans = append(layout.DefaultPans, CrowdPanLeft, CrowdPanRight)
			continue
		}

		pans, err := DefaultPans(count)
		if err != nil {
			return Layout{}, err
		}
		layout.DefaultPans = append(layout.DefaultPans, pans...)
	}

	layout.DefaultVols = make([]float64, layout.Total)
	return layout, nil
}

// HasCrowd reports whether tracks_count carries a non-zero crowd slot.
func HasCrowd(tracksCount []int) bool {
	return len(tracksCount) == 7 && tracksCount[6] > 0
}

// # Drum Sub-mixes

// DrumSplit is the number of channels given to each drum sub-mix.
type DrumSplit struct {
	Kick  int `json:"kick"`
	Snare int `json:"snare"`
	Kit   int `json:"kit"`
}

// SplitDrums divides the drum channels. Three or more channels isolate the
// kick (two when six), four or more also isolate the snare (two from five),
// and the kit is always a stereo pair when drums exist.
func SplitDrums(drumChannels int) DrumSplit {
	var split DrumSplit
	if drumChannels >= 3 {
		split.Kick = 1
		if drumChannels == 6 {
			split.Kick = 2
		}
	}
	if drumChannels >= 4 {
		split.Snare = 1
		if drumChannels >= 5 {
			split.Snare = 2
		}
	}
	if drumChannels > 0 {
		split.Kit = 2
	}
	return split
}

// # Audio File Structure

// Mix holds the pans and volumes of one group or sub-mix.
type Mix struct {
	Enabled  bool      `json:"enabled"`
	Channels int       `json:"channels"`
	Indices  []int     `json:"indices,omitempty"`
	Pans     []float64 `json:"pans"`
	Vols     []float64 `json:"vols"`
	HasSolo  bool      `json:"has_solo"`
}

// DrumMix extends [Mix] with the drum sub-mixes.
type DrumMix struct {
	Mix
	Separated bool `json:"separated"`
	Kick      Mix  `json:"kick"`
	Snare     Mix  `json:"snare"`
	Kit       Mix  `json:"kit"`
}

// AudioFile is the per-instrument view of a song's multitrack audio.
type AudioFile struct {
	Total   int     `json:"total"`
	Drum    DrumMix `json:"drum"`
	Bass    Mix     `json:"bass"`
	Guitar  Mix     `json:"guitar"`
	Vocals  Mix     `json:"vocals"`
	Keys    Mix     `json:"keys"`
	Backing Mix     `json:"backing"`
	Crowd   Mix     `json:"crowd"`
}

// soloTags maps groups to the solo tag that marks them.
var soloTags = map[Group]string{
	Drum:   "drum",
	Bass:   "bass",
	Guitar: "guitar",
	Vocals: "vocal_percussion",
	Keys:   "keys",
}

// Describe builds the audio file view. Absent pans or vols fall back to the
// layout defaults.
func Describe(tracksCount []int, pans, vols []float64, solo []string) (AudioFile, error) {
	layout, err := Structure(tracksCount)
	if err != nil {
		return AudioFile{}, err
	}
	if pans == nil {
		pans = layout.DefaultPans
	}
	if vols == nil {
		vols = layout.DefaultVols
	}

	mixOf := func(group Group) Mix {
		r := layout.Range(group)
		mix := Mix{Enabled: r.Enabled, Channels: r.Count, Indices: r.Indices()}
		mix.Pans = window(pans, r.Start, r.Count)
		mix.Vols = window(vols, r.Start, r.Count)
		if tag, ok := soloTags[group]; ok {
			mix.HasSolo = slices.Contains(solo, tag)
		}
		return mix
	}

	file := AudioFile{
		Total:   layout.Total,
		Bass:    mixOf(Bass),
		Guitar:  mixOf(Guitar),
		Vocals:  mixOf(Vocals),
		Keys:    mixOf(Keys),
		Backing: mixOf(Backing),
		Crowd:   mixOf(Crowd),
	}

	drums := mixOf(Drum)
	split := SplitDrums(drums.Channels)
	file.Drum = DrumMix{Mix: drums, Separated: drums.Channels > 2}
	if drums.Channels >= 3 {
		file.Drum.Kick = subMix(drums, 0, split.Kick)
		file.Drum.Snare = subMix(drums, split.Kick, split.Snare)
		file.Drum.Kit = subMix(drums, split.Kick+split.Snare, split.Kit)
	} else {
		file.Drum.Kit = subMix(drums, 0, drums.Channels)
	}
	return file, nil
}

func subMix(parent Mix, offset, count int) Mix {
	return Mix{
		Enabled:  count > 0,
		Channels: count,
		Indices:  windowInts(parent.Indices, offset, count),
		Pans:     window(parent.Pans, offset, count),
		Vols:     window(parent.Vols, offset, count),
	}
}

// window returns values[start:start+count], clipped to the slice bounds.
func window(values []float64, start, count int) []float64 {
	if count <= 0 || start >= len(values) {
		return []float64{}
	}
	end := min(start+count, len(values))
	return slices.Clone(values[start:end])
}

func windowInts(values []int, start, count int) []int {
	if count <= 0 || start >= len(values) {
		return nil
	}
	end := min(start+count, len(values))
	return slices.Clone(values[start:end])
}
