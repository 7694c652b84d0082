// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"slices"

	"github.com/taibuivan/dtakit/internal/dta/channel"
	"github.com/taibuivan/dtakit/internal/dta/locale"
)

// # Field Descriptors

type fieldKind int

const (
	kindText fieldKind = iota
	kindSymbol
	kindInt
	kindFloat
	kindBool
	kindInts
	kindFloats
	kindSymbols
	kindSongID
	kindTempo
	kindMultitrack
	kindRhythmOn
	kindEMH
	kindCustomSource
)

// descriptor binds a field key to its slot on a record. The slot function
// returns a pointer to the struct field (e.g. **string or *[]int).
type descriptor struct {
	key  string
	kind fieldKind
	slot func(*Record) any
}

// descriptors follows [locale.FieldOrder], without the id.
var descriptors = []descriptor{
	{"name", kindText, func(r *Record) any { return &r.Name }},
	{"artist", kindText, func(r *Record) any { return &r.Artist }},
	{"fake", kindBool, func(r *Record) any { return &r.Fake }},
	{"master", kindBool, func(r *Record) any { return &r.Master }},
	{"context", kindInt, func(r *Record) any { return &r.Context }},
	{"song_id", kindSongID, func(r *Record) any { return &r.SongID }},
	{"upgrade_version", kindInt, func(r *Record) any { return &r.UpgradeVersion }},
	{"songname", kindText, func(r *Record) any { return &r.SongName }},
	{"tracks_count", kindInts, func(r *Record) any { return &r.TracksCount }},
	{"pans", kindFloats, func(r *Record) any { return &r.Pans }},
	{"vols", kindFloats, func(r *Record) any { return &r.Vols }},
	{"cores", kindInts, func(r *Record) any { return &r.Cores }},
	{"vocal_parts", kindInt, func(r *Record) any { return &r.VocalParts }},
	{"mute_volume", kindInt, func(r *Record) any { return &r.MuteVolume }},
	{"mute_volume_vocals", kindInt, func(r *Record) any { return &r.MuteVolumeVocals }},
	{"hopo_threshold", kindInt, func(r *Record) any { return &r.HopoThreshold }},
	{"song_scroll_speed", kindInt, func(r *Record) any { return &r.SongScrollSpeed }},
	{"bank", kindSymbol, func(r *Record) any { return &r.Bank }},
	{"drum_bank", kindSymbol, func(r *Record) any { return &r.DrumBank }},
	{"anim_tempo", kindTempo, func(r *Record) any { return &r.AnimTempo }},
	{"band_fail_cue", kindSymbol, func(r *Record) any { return &r.BandFailCue }},
	{"preview", kindInts, func(r *Record) any { return &r.Preview }},
	{"song_length", kindInt, func(r *Record) any { return &r.SongLength }},
	{"rank_drum", kindInt, func(r *Record) any { return &r.RankDrum }},
	{"rank_guitar", kindInt, func(r *Record) any { return &r.RankGuitar }},
	{"rank_bass", kindInt, func(r *Record) any { return &r.RankBass }},
	{"rank_vocals", kindInt, func(r *Record) any { return &r.RankVocals }},
	{"rank_keys", kindInt, func(r *Record) any { return &r.RankKeys }},
	{"rank_real_keys", kindInt, func(r *Record) any { return &r.RankRealKeys }},
	{"rank_real_guitar", kindInt, func(r *Record) any { return &r.RankRealGuitar }},
	{"rank_real_bass", kindInt, func(r *Record) any { return &r.RankRealBass }},
	{"rank_band", kindInt, func(r *Record) any { return &r.RankBand }},
	{"solo", kindSymbols, func(r *Record) any { return &r.Solo }},
	{"genre", kindSymbol, func(r *Record) any { return &r.Genre }},
	{"sub_genre", kindSymbol, func(r *Record) any { return &r.SubGenre }},
	{"vocal_gender", kindSymbol, func(r *Record) any { return &r.VocalGender }},
	{"format", kindInt, func(r *Record) any { return &r.Format }},
	{"version", kindInt, func(r *Record) any { return &r.Version }},
	{"album_art", kindBool, func(r *Record) any { return &r.AlbumArt }},
	{"album_name", kindText, func(r *Record) any { return &r.AlbumName }},
	{"album_track_number", kindInt, func(r *Record) any { return &r.AlbumTrackNumber }},
	{"year_released", kindInt, func(r *Record) any { return &r.YearReleased }},
	{"year_recorded", kindInt, func(r *Record) any { return &r.YearRecorded }},
	{"rating", kindInt, func(r *Record) any { return &r.Rating }},
	{"tuning_offset_cents", kindFloat, func(r *Record) any { return &r.TuningOffsetCents }},
	{"guide_pitch_volume", kindFloat, func(r *Record) any { return &r.GuidePitchVolume }},
	{"game_origin", kindSymbol, func(r *Record) any { return &r.GameOrigin }},
	{"encoding", kindSymbol, func(r *Record) any { return &r.Encoding }},
	{"vocal_tonic_note", kindInt, func(r *Record) any { return &r.VocalTonicNote }},
	{"song_tonality", kindInt, func(r *Record) any { return &r.SongTonality }},
	{"song_key", kindInt, func(r *Record) any { return &r.SongKey }},
	{"real_guitar_tuning", kindInts, func(r *Record) any { return &r.RealGuitarTuning }},
	{"real_bass_tuning", kindInts, func(r *Record) any { return &r.RealBassTuning }},
	{"alternate_path", kindBool, func(r *Record) any { return &r.AlternatePath }},
	{"base_points", kindInt, func(r *Record) any { return &r.BasePoints }},
	{"extra_authoring", kindSymbols, func(r *Record) any { return &r.ExtraAuthoring }},
	{"author", kindText, func(r *Record) any { return &r.Author }},
	{"strings_author", kindText, func(r *Record) any { return &r.StringsAuthor }},
	{"keys_author", kindText, func(r *Record) any { return &r.KeysAuthor }},
	{"loading_phrase", kindText, func(r *Record) any { return &r.LoadingPhrase }},
	{"pack_name", kindText, func(r *Record) any { return &r.PackName }},
	{"languages", kindSymbols, func(r *Record) any { return &r.Languages }},
	{"multitrack", kindMultitrack, func(r *Record) any { return &r.Multitrack }},
	{"unpitched_vocals", kindBool, func(r *Record) any { return &r.UnpitchedVocals }},
	{"convert", kindBool, func(r *Record) any { return &r.Convert }},
	{"double_kick", kindBool, func(r *Record) any { return &r.DoubleKick }},
	{"rhythm_on", kindRhythmOn, func(r *Record) any { return &r.RhythmOn }},
	{"emh", kindEMH, func(r *Record) any { return &r.EMH }},
	{"customsource", kindCustomSource, func(r *Record) any { return &r.CustomSource }},
}

var descriptorByKey = func() map[string]*descriptor {
	index := make(map[string]*descriptor, len(descriptors))
	for position := range descriptors {
		index[descriptors[position].key] = &descriptors[position]
	}
	return index
}()

// Known reports whether key is a typed record field.
func Known(key string) bool {
	if key == "id" {
		return true
	}
	_, ok := descriptorByKey[key]
	return ok
}

// # Presence

// Has reports whether the field named key is present.
func (r *Record) Has(key string) bool {
	if key == "id" {
		return r.ID != ""
	}
	field, ok := descriptorByKey[key]
	if !ok {
		return slices.ContainsFunc(r.Extra, func(extra Extra) bool { return extra.Path() == key })
	}
	return isSet(field.slot(r))
}

// Keys returns the present typed fields in canonical order, followed by
// the extra field paths in source order.
func (r *Record) Keys() []string {
	keys := []string{"id"}
	for _, field := range descriptors {
		if isSet(field.slot(r)) {
			keys = append(keys, field.key)
		}
	}
	for _, extra := range r.Extra {
		keys = append(keys, extra.Path())
	}
	return keys
}

// Missing returns the required fields absent from the record, in the order
// they are declared.
func (r *Record) Missing() []string {
	var missing []string
	for _, key := range locale.RequiredFields {
		if !r.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// IsComplete reports whether every required field is present.
func (r *Record) IsComplete() bool {
	return len(r.Missing()) == 0
}

/*
Inconsistent returns the fields of the record that disagree with each other.

Description: pans and vols must hold one value per channel of tracks_count,
and vocal_parts is non-zero exactly when the vocals are ranked. A
tracks_count that cannot be laid out is left to the renderer.
*/
func (r *Record) Inconsistent() []string {
	var fields []string

	if r.TracksCount != nil {
		if layout, err := channel.Structure(r.TracksCount); err == nil {
			var mismatched []string
			if r.Pans != nil && len(r.Pans) != layout.Total {
				mismatched = append(mismatched, "pans")
			}
			if r.Vols != nil && len(r.Vols) != layout.Total {
				mismatched = append(mismatched, "vols")
			}
			if len(mismatched) > 0 {
				fields = append(append(fields, "tracks_count"), mismatched...)
			}
		}
	}

	if r.VocalParts != nil {
		ranked := r.RankVocals != nil && *r.RankVocals > 0
		if (*r.VocalParts > 0) != ranked {
			fields = append(fields, "vocal_parts", "rank_vocals")
		}
	}
	return fields
}

// IntField returns the value of an integer field such as "rank_drum".
func (r *Record) IntField(key string) (int, bool) {
	field, ok := descriptorByKey[key]
	if !ok {
		return 0, false
	}
	slot, ok := field.slot(r).(**int)
	if !ok || *slot == nil {
		return 0, false
	}
	return **slot, true
}

// # Overlay

// Overlay replaces every field of r that is present in update. The id is
// never changed. Extra fields replace those with the same path and the rest
// are appended.
func (r *Record) Overlay(update *Record) {
	for _, field := range descriptors {
		source := field.slot(update)
		if isSet(source) {
			assign(field.slot(r), source)
		}
	}

	for _, extra := range update.Extra {
		position := slices.IndexFunc(r.Extra, func(existing Extra) bool { return existing.Path() == extra.Path() })
		if position >= 0 {
			r.Extra[position] = extra
			continue
		}
		r.Extra = append(r.Extra, extra)
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	copied := &Record{ID: r.ID}
	copied.Overlay(r)
	return copied
}

// Clear removes the field named key. Unknown keys clear the extra field
// with that path.
func (r *Record) Clear(key string) {
	field, ok := descriptorByKey[key]
	if !ok {
		r.Extra = slices.DeleteFunc(r.Extra, func(extra Extra) bool { return extra.Path() == key })
		return
	}
	clearSlot(field.slot(r))
}

// # Slot Helpers

func isSet(slot any) bool {
	switch typed := slot.(type) {
	case **string:
		return *typed != nil
	case **int:
		return *typed != nil
	case **float64:
		return *typed != nil
	case **bool:
		return *typed != nil
	case **SongID:
		return *typed != nil
	case **Multitrack:
		return *typed != nil
	case **RhythmOn:
		return *typed != nil
	case **EMH:
		return *typed != nil
	case **CustomSource:
		return !(*typed).IsZero()
	case *[]int:
		return *typed != nil
	case *[]float64:
		return *typed != nil
	case *[]string:
		return *typed != nil
	default:
		return false
	}
}

// assign copies source into target. Both must be slots of the same field.
func assign(target, source any) {
	switch typed := target.(type) {
	case **string:
		copyPointer(typed, *source.(**string))
	case **int:
		copyPointer(typed, *source.(**int))
	case **float64:
		copyPointer(typed, *source.(**float64))
	case **bool:
		copyPointer(typed, *source.(**bool))
	case **SongID:
		copyPointer(typed, *source.(**SongID))
	case **Multitrack:
		copyPointer(typed, *source.(**Multitrack))
	case **RhythmOn:
		copyPointer(typed, *source.(**RhythmOn))
	case **EMH:
		copyPointer(typed, *source.(**EMH))
	case **CustomSource:
		from := *source.(**CustomSource)
		if from == nil {
			*typed = nil
			return
		}
		*typed = &CustomSource{
			Genre:      clonePointer(from.Genre),
			SubGenre:   clonePointer(from.SubGenre),
			GameOrigin: clonePointer(from.GameOrigin),
		}
	case *[]int:
		*typed = slices.Clone(*source.(*[]int))
	case *[]float64:
		*typed = slices.Clone(*source.(*[]float64))
	case *[]string:
		*typed = slices.Clone(*source.(*[]string))
	}
}

func clearSlot(slot any) {
	switch typed := slot.(type) {
	case **string:
		*typed = nil
	case **int:
		*typed = nil
	case **float64:
		*typed = nil
	case **bool:
		*typed = nil
	case **SongID:
		*typed = nil
	case **Multitrack:
		*typed = nil
	case **RhythmOn:
		*typed = nil
	case **EMH:
		*typed = nil
	case **CustomSource:
		*typed = nil
	case *[]int:
		*typed = nil
	case *[]float64:
		*typed = nil
	case *[]string:
		*typed = nil
	}
}

func copyPointer[T any](target **T, source *T) {
	*target = clonePointer(source)
}

func clonePointer[T any](source *T) *T {
	if source == nil {
		return nil
	}
	copied := *source
	return &copied
}
