// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package builder creates complete song records from structured creation
parameters.

[Build] fills every field the game requires, deriving what the caller left
out: default channel pans, the numeric song id, the band rank average and
the text encoding. Fields equal to the value the game assumes when absent
(mute volumes, hopo threshold) are left unset so that rendering and
re-projecting a built record yields the same record.
*/
package builder

import (
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/dtakit/internal/dta/channel"
	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/locale"
	"github.com/taibuivan/dtakit/internal/dta/rank"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// # Defaults

const (
	DefaultBackingChannels  = 2
	DefaultBank             = "sfx/tambourine_bank.milo"
	DefaultDrumBank         = "sfx/kit01_bank.milo"
	DefaultAnimTempo        = 32
	DefaultBandFailCue      = "band_fail_rock_keys.cue"
	DefaultSongScrollSpeed  = 2300
	DefaultPreviewLength    = 30000
	DefaultSongLength       = 30000
	DefaultGuidePitchVolume = -3
	DefaultFormat           = 10
	DefaultVersion          = 30
	DefaultGameOrigin       = "ugc_plus"
	DefaultRating           = 4
	DefaultGenre            = "other"
	DefaultSubGenre         = "subgenre_other"
	DefaultVocalGender      = "male"
	DefaultLanguage         = "English"

	// Values the game assumes when the field is absent.
	implicitMuteVolume       = -96
	implicitMuteVolumeVocals = -12
	implicitHopoThreshold    = 170

	// Decimals kept by the authoring layout, and by guide_pitch_volume in
	// every layout.
	mixDecimals        = 2
	guidePitchDecimals = 1
)

// Now is the clock used for the default release year.
var Now = time.Now

// # Build

// Build creates a complete record. Invalid parameters return a
// ValueRangeError naming the offending field.
func Build(params Params) (*song.Record, error) {
	if err := checkID(params.ID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Name) == "" || strings.TrimSpace(params.Artist) == "" {
		return nil, dtaerr.ValueRange("name and artist are required")
	}

	record := &song.Record{
		ID:     params.ID,
		Name:   pointer.To(params.Name),
		Artist: pointer.To(params.Artist),
		Master: pointer.To(pointer.Fallback(params.Master, true)),
	}

	songname := params.SongName
	if songname == "" {
		songname = params.ID
	}
	record.SongName = pointer.To(songname)

	if params.SongID != nil && *params.SongID != "" {
		record.SongID = pointer.To(*params.SongID)
	} else {
		record.SongID = pointer.To(song.NumericSongID(song.SongID(songname)))
	}

	steps := []func(*song.Record, Params) error{
		buildTracks,
		buildSettings,
		buildMetadata,
		buildKey,
		buildAuthoring,
	}
	for _, step := range steps {
		if err := step(record, params); err != nil {
			return nil, dtaerr.InRecord(err, params.ID)
		}
	}

	record.Encoding = pointer.To(song.DetectEncoding(record))
	return record, nil
}

func checkID(id string) error {
	if id == "" {
		return dtaerr.ValueRange("id is required")
	}
	if strings.ContainsAny(id, " \t\r\n()\"';") {
		return dtaerr.ValueRange("id %q must be a single symbol", id)
	}
	return nil
}

// # Tracks

// tracks accumulates the channel layout while instruments are added.
type tracks struct {
	counts  []int
	pans    []float64
	vols    []float64
	solo    []string
	ranks   int
	players int
}

// add appends a group of channels with its default or custom mix.
func (t *tracks) add(group channel.Group, channels int, mix Mix) error {
	pans, err := channel.DefaultPans(channels)
	if err != nil {
		return err
	}
	vols := make([]float64, channels)

	if mix.Pans != nil {
		if len(mix.Pans) != channels {
			return dtaerr.ValueRange("%s pans need %d values, got %d", group, channels, len(mix.Pans))
		}
		if err := checkDecimals(string(group)+" pans", mixDecimals, mix.Pans...); err != nil {
			return err
		}
		pans = mix.Pans
	}
	if mix.Vols != nil {
		if len(mix.Vols) != channels {
			return dtaerr.ValueRange("%s vols need %d values, got %d", group, channels, len(mix.Vols))
		}
		if err := checkDecimals(string(group)+" vols", mixDecimals, mix.Vols...); err != nil {
			return err
		}
		vols = mix.Vols
	}

	t.counts = append(t.counts, channels)
	t.pans = append(t.pans, pans...)
	t.vols = append(t.vols, vols...)
	return nil
}

// play registers a playable part and returns its raw rank.
func (t *tracks) play(instrument rank.Instrument, part Part, maxChannels int, soloTag string) (*int, error) {
	if part.Channels < 1 || part.Channels > maxChannels {
		return nil, dtaerr.ValueRange("%s must have 1 to %d channels, got %d", instrument, maxChannels, part.Channels)
	}
	if err := t.add(channel.Group(instrument), part.Channels, part.Mix); err != nil {
		return nil, err
	}

	raw, err := part.Rank.raw(instrument)
	if err != nil {
		return nil, err
	}
	t.ranks += raw
	t.players++

	if part.HasSolo {
		t.solo = append(t.solo, soloTag)
	}
	return pointer.NonZero(raw), nil
}

// skip registers an absent part.
func (t *tracks) skip() { t.counts = append(t.counts, 0) }

func buildTracks(record *song.Record, params Params) error {
	var layout tracks
	var err error

	if drum := params.Drum; drum != nil {
		if drum.Channels < 2 {
			return dtaerr.ValueRange("drum must have 2 to 6 channels, got %d", drum.Channels)
		}
		if record.RankDrum, err = layout.play(rank.Drum, drum.Part, 6, "drum"); err != nil {
			return err
		}
	} else {
		layout.skip()
	}

	if bass := params.Bass; bass != nil {
		if record.RankBass, err = layout.play(rank.Bass, bass.Part, 2, "bass"); err != nil {
			return err
		}
		if record.RankRealBass, err = pro(rank.RealBass, bass.RankPRO); err != nil {
			return err
		}
		if record.RankRealBass != nil {
			if record.RealBassTuning, err = tuning("bass", bass.Tuning, 4); err != nil {
				return err
			}
		}
	} else {
		layout.skip()
	}

	if guitar := params.Guitar; guitar != nil {
		if record.RankGuitar, err = layout.play(rank.Guitar, guitar.Part, 2, "guitar"); err != nil {
			return err
		}
		if record.RankRealGuitar, err = pro(rank.RealGuitar, guitar.RankPRO); err != nil {
			return err
		}
		if record.RankRealGuitar != nil {
			if record.RealGuitarTuning, err = tuning("guitar", guitar.Tuning, 6); err != nil {
				return err
			}
		}
	} else {
		layout.skip()
	}

	if vocals := params.Vocals; vocals != nil {
		if vocals.Parts < 1 || vocals.Parts > 3 {
			return dtaerr.ValueRange("vocals must have 1 to 3 parts, got %d", vocals.Parts)
		}
		if record.RankVocals, err = layout.play(rank.Vocals, vocals.Part, 2, "vocal_percussion"); err != nil {
			return err
		}
		if record.RankVocals == nil {
			return dtaerr.ValueRange("vocals with %d parts need a rank", vocals.Parts)
		}
		gender, err := resolve(locale.VocalGender, "vocal gender", strings.ToLower(vocals.Gender), DefaultVocalGender)
		if err != nil {
			return err
		}
		record.VocalParts = pointer.To(vocals.Parts)
		record.VocalGender = pointer.To(gender)
	} else {
		layout.skip()
		record.VocalParts = pointer.To(0)
		record.VocalGender = pointer.To(DefaultVocalGender)
	}

	if keys := params.Keys; keys != nil {
		if record.RankKeys, err = layout.play(rank.Keys, keys.Part, 2, "keys"); err != nil {
			return err
		}
		if record.RankRealKeys, err = pro(rank.RealKeys, keys.RankPRO); err != nil {
			return err
		}
	} else {
		layout.skip()
	}

	backing := Backing{Channels: DefaultBackingChannels}
	if params.Backing != nil {
		backing = *params.Backing
	}
	if backing.Channels < 1 || backing.Channels > 2 {
		return dtaerr.ValueRange("backing must have 1 or 2 channels, got %d", backing.Channels)
	}
	if err := layout.add(channel.Backing, backing.Channels, backing.Mix); err != nil {
		return err
	}

	if crowd := params.Crowd; crowd != nil {
		vols := []float64{0, 0}
		switch len(crowd.Vols) {
		case 0:
		case 1:
			vols = []float64{crowd.Vols[0], crowd.Vols[0]}
		case 2:
			vols = crowd.Vols
		default:
			return dtaerr.ValueRange("crowd vols need 1 or 2 values, got %d", len(crowd.Vols))
		}
		pans := []float64{channel.CrowdPanLeft, channel.CrowdPanRight}
		if err := layout.add(channel.Crowd, channel.CrowdChannels, Mix{Pans: pans, Vols: vols}); err != nil {
			return err
		}
	}

	if params.BandRank != nil {
		band, err := params.BandRank.raw(rank.Band)
		if err != nil {
			return err
		}
		record.RankBand = pointer.NonZero(band)
	} else {
		band, err := rank.BandAverage(layout.ranks, layout.players)
		if err != nil {
			return err
		}
		record.RankBand = pointer.NonZero(band)
	}
	if record.RankBand == nil {
		return dtaerr.ValueRange("band rank cannot be zero")
	}

	record.TracksCount = layout.counts
	record.Pans = layout.pans
	record.Vols = layout.vols
	record.Solo = layout.solo
	return nil
}

func pro(instrument rank.Instrument, tier *Tier) (*int, error) {
	if tier == nil {
		return nil, nil
	}
	raw, err := tier.raw(instrument)
	if err != nil {
		return nil, err
	}
	return pointer.NonZero(raw), nil
}

// tuning returns the PRO string offsets, E standard when none are given.
func tuning(part string, offsets []int, count int) ([]int, error) {
	if offsets == nil {
		return make([]int, count), nil
	}
	if len(offsets) != count {
		return nil, dtaerr.ValueRange("%s tuning needs %d strings, got %d", part, count, len(offsets))
	}
	return offsets, nil
}

// # Settings

func buildSettings(record *song.Record, params Params) error {
	record.MuteVolume = unlessImplicit(params.MuteVolume, implicitMuteVolume)
	record.MuteVolumeVocals = unlessImplicit(params.MuteVolumeVocals, implicitMuteVolumeVocals)
	record.HopoThreshold = unlessImplicit(params.HopoThreshold, implicitHopoThreshold)

	bank, err := resolve(locale.PercussionBank, "bank", params.Bank, DefaultBank)
	if err != nil {
		return err
	}
	drumBank, err := resolve(locale.DrumBank, "drum bank", params.DrumBank, DefaultDrumBank)
	if err != nil {
		return err
	}
	failCue, err := resolve(locale.BandFailCue, "band fail cue", params.BandFailCue, DefaultBandFailCue)
	if err != nil {
		return err
	}
	scroll, err := resolveInt(locale.SongScrollSpeed, "song scroll speed", params.SongScrollSpeed, DefaultSongScrollSpeed)
	if err != nil {
		return err
	}

	tempo := DefaultAnimTempo
	switch {
	case params.AnimTempo == "":
	case locale.AnimTempoSymbols.Has(params.AnimTempo):
		tempo, _ = strconv.Atoi(locale.AnimTempoSymbols.Name(params.AnimTempo))
	default:
		if tempo, err = resolveInt(locale.AnimTempo, "anim tempo", params.AnimTempo, DefaultAnimTempo); err != nil {
			return err
		}
	}

	preview, err := previewWindow(params.Preview)
	if err != nil {
		return err
	}

	record.Bank = pointer.To(bank)
	record.DrumBank = pointer.To(drumBank)
	record.AnimTempo = pointer.To(tempo)
	record.BandFailCue = pointer.To(failCue)
	record.SongScrollSpeed = pointer.To(scroll)
	record.Preview = preview
	record.SongLength = pointer.To(pointer.Fallback(params.SongLength, DefaultSongLength))
	tuningCents := pointer.Fallback(params.TuningOffsetCents, 0)
	if err := checkDecimals("tuning offset cents", mixDecimals, tuningCents); err != nil {
		return err
	}
	guidePitch := pointer.Fallback(params.GuidePitchVolume, DefaultGuidePitchVolume)
	if err := checkDecimals("guide pitch volume", guidePitchDecimals, guidePitch); err != nil {
		return err
	}

	record.TuningOffsetCents = pointer.To(tuningCents)
	record.GuidePitchVolume = pointer.To(guidePitch)
	record.Format = pointer.To(pointer.Fallback(params.Format, DefaultFormat))
	record.Version = pointer.To(pointer.Fallback(params.Version, DefaultVersion))
	return nil
}

// checkDecimals refuses numbers that decimals digits cannot hold.
func checkDecimals(field string, decimals int, numbers ...float64) error {
	for _, number := range numbers {
		text := strconv.FormatFloat(number, 'f', decimals, 64)
		if parsed, err := strconv.ParseFloat(text, 64); err != nil || parsed != number {
			return dtaerr.ValueRange("%s value %v has more than %d decimals", field, number, decimals)
		}
	}
	return nil
}

func previewWindow(preview []int) ([]int, error) {
	switch len(preview) {
	case 0:
		return []int{0, DefaultPreviewLength}, nil
	case 1:
		return []int{preview[0], preview[0] + DefaultPreviewLength}, nil
	case 2:
		if preview[1] < preview[0] {
			return nil, dtaerr.ValueRange("preview ends before it starts")
		}
		return []int{preview[0], preview[1]}, nil
	default:
		return nil, dtaerr.ValueRange("preview takes a start or a start and an end, got %d values", len(preview))
	}
}

// # Metadata

func buildMetadata(record *song.Record, params Params) error {
	origin, err := resolve(locale.GameOrigin, "game origin", params.GameOrigin, DefaultGameOrigin)
	if err != nil {
		return err
	}
	rating, err := resolveInt(locale.Rating, "rating", params.Rating, DefaultRating)
	if err != nil {
		return err
	}

	genre, err := resolve(locale.Genre, "genre", params.Genre, DefaultGenre)
	if err != nil {
		return err
	}
	subGenre, err := resolve(locale.SubGenre, "sub-genre", params.SubGenre, defaultSubGenre(genre))
	if err != nil {
		return err
	}
	if !locale.IsSubGenreOf(genre, subGenre) {
		return dtaerr.ValueRange("sub-genre %q does not belong to genre %q", subGenre, genre)
	}

	year := params.YearReleased
	if year == 0 {
		year = Now().Year()
	}

	record.GameOrigin = pointer.To(origin)
	record.Rating = pointer.To(rating)
	record.Genre = pointer.To(genre)
	record.SubGenre = pointer.To(subGenre)
	record.YearReleased = pointer.To(year)
	record.YearRecorded = params.YearRecorded
	record.AlbumArt = pointer.To(pointer.Fallback(params.AlbumArt, true))
	record.AlbumTrackNumber = pointer.To(pointer.Fallback(params.AlbumTrackNumber, 1))
	record.AlbumName = pointer.NonZero(params.AlbumName)
	record.PackName = pointer.NonZero(params.PackName)
	record.LoadingPhrase = pointer.NonZero(params.LoadingPhrase)
	record.Author = pointer.NonZero(params.Author)
	record.StringsAuthor = pointer.NonZero(params.StringsAuthor)
	record.KeysAuthor = pointer.NonZero(params.KeysAuthor)
	record.CustomSource = params.CustomSource
	return nil
}

// defaultSubGenre picks "Other" when the genre allows it, otherwise its
// only sub-genre.
func defaultSubGenre(genre string) string {
	if locale.IsSubGenreOf(genre, DefaultSubGenre) {
		return DefaultSubGenre
	}
	if legal := locale.SubGenresOf(genre); len(legal) > 0 {
		return legal[0]
	}
	return DefaultSubGenre
}

func buildKey(record *song.Record, params Params) error {
	name := params.SongKey
	if name == "" {
		name = "C"
	}
	tonic, tonality, err := ParseKey(name)
	if err != nil {
		return err
	}
	record.VocalTonicNote = pointer.To(tonic)
	record.SongTonality = pointer.To(tonality)

	if params.TrainerKeyOverride != "" {
		override, err := ParseTonic(params.TrainerKeyOverride)
		if err != nil {
			return err
		}
		record.SongKey = pointer.To(override)
	}
	return nil
}

// # Authoring Attributes

func buildAuthoring(record *song.Record, params Params) error {
	record.Languages = []string{DefaultLanguage}
	if len(params.Languages) > 0 {
		record.Languages = params.Languages
	}

	if params.Multitrack != "" {
		multitrack := song.Multitrack(params.Multitrack)
		switch multitrack {
		case song.MultitrackKaraoke, song.MultitrackFull, song.MultitrackDIYStems, song.MultitrackPartial:
			record.Multitrack = &multitrack
		default:
			return dtaerr.ValueRange("unknown multitrack kind %q", params.Multitrack)
		}
	}
	if params.RhythmOn != "" {
		rhythmOn := song.RhythmOn(params.RhythmOn)
		if rhythmOn != song.RhythmOnKeys && rhythmOn != song.RhythmOnBass {
			return dtaerr.ValueRange("rhythm can only be charted on keys or bass, got %q", params.RhythmOn)
		}
		record.RhythmOn = &rhythmOn
	}
	if params.EMH != "" {
		emh := song.EMH(params.EMH)
		if emh != song.EMHCat && emh != song.EMHExpertOnly {
			return dtaerr.ValueRange("unknown EMH kind %q", params.EMH)
		}
		record.EMH = &emh
	}

	record.UnpitchedVocals = pointer.NonZero(params.UnpitchedVocals)
	record.Convert = pointer.NonZero(params.Convert)
	record.DoubleKick = pointer.NonZero(params.DoubleKick)
	return nil
}

// # Helpers

// raw converts the tier to the raw rank of instrument.
func (tier Tier) raw(instrument rank.Instrument) (int, error) {
	text := strings.TrimSpace(string(tier))
	if text == "" {
		return 0, dtaerr.ValueRange("%s rank is required", instrument)
	}

	token, ok := locale.RankName.Resolve(text)
	if !ok {
		if token, ok = locale.RankDots.Resolve(text); !ok {
			return 0, dtaerr.ValueRange("unknown %s rank %q", instrument, text)
		}
	}
	number, _ := strconv.Atoi(token)
	return rank.Threshold(instrument, number)
}

func resolve(table *locale.Table, field, input, fallback string) (string, error) {
	if input == "" {
		return fallback, nil
	}
	token, ok := table.Resolve(input)
	if !ok {
		return "", dtaerr.ValueRange("unknown %s %q", field, input)
	}
	return token, nil
}

func resolveInt(table *locale.Table, field, input string, fallback int) (int, error) {
	token, err := resolve(table, field, input, strconv.Itoa(fallback))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(token)
}

func unlessImplicit(number *int, implicit int) *int {
	if number == nil || *number == implicit {
		return nil
	}
	return pointer.To(*number)
}

