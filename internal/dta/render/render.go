// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render writes song records as DTA text.

Records are turned into value trees in canonical field order, with the
song and rank fields nested back into their blocks, and then written by
the value renderer using the format of the chosen [Dialect]. Absent fields
are omitted.
*/
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/taibuivan/dtakit/internal/dta/channel"
	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/locale"
	"github.com/taibuivan/dtakit/internal/dta/order"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/internal/dta/token"
	"github.com/taibuivan/dtakit/internal/dta/value"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// Records writes records in the order chosen by opts.SortBy.
func Records(records []*song.Record, mode song.Mode, opts Options) (string, error) {
	var builder strings.Builder
	for _, record := range order.Sort(records, opts.SortBy) {
		if opts.SkipFakeRecords && pointer.Val(record.Fake) {
			continue
		}

		text, err := Record(record, mode, opts)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}

// Record writes a single record.
func Record(record *song.Record, mode song.Mode, opts Options) (string, error) {
	tree, err := Tree(record, mode, opts)
	if err != nil {
		return "", err
	}

	text, err := value.Render(tree, opts.format())
	if err != nil {
		return "", dtaerr.InRecord(err, record.ID)
	}

	if mode == song.Partial && opts.CompactPartialLayout {
		return compact(text)
	}
	return text, nil
}

// compact rewrites a rendered record on a single line.
func compact(text string) (string, error) {
	root, err := token.Parse(text)
	if err != nil {
		return "", err
	}
	return token.Inline([]*token.Node{root}) + "\n", nil
}

// Tree builds the value tree of a record. Complete records must hold every
// required field, with audio fields that agree.
func Tree(record *song.Record, mode song.Mode, opts Options) (value.Field, error) {
	if record.ID == "" {
		return value.Field{}, dtaerr.Malformed("record has no id")
	}
	if mode == song.Complete {
		if missing := record.Missing(); len(missing) > 0 {
			return value.Field{}, dtaerr.SchemaViolation(record.ID, missing...)
		}
		if fields := record.Inconsistent(); len(fields) > 0 {
			return value.Field{}, dtaerr.Inconsistent(record.ID, fields...)
		}
	}
	if opts.Dialect == "" {
		opts.Dialect = DistributionA
	}

	writer := &recordWriter{record: record, mode: mode, opts: opts, format: opts.format()}
	if err := writer.build(); err != nil {
		return value.Field{}, dtaerr.InRecord(err, record.ID)
	}

	entry := value.Object(writer.fields...)
	if mode == song.Complete && opts.PlaceCustomAttributes {
		entry = entry.WithTrailer(customAttributes(record))
	}
	return value.F(record.ID, entry), nil
}

// # Record Writer

type recordWriter struct {
	record *song.Record
	mode   song.Mode
	opts   Options
	format value.Format
	fields []value.Field
}

func (writer *recordWriter) add(key string, v value.Value) {
	if writer.opts.Dialect.omitted(key) {
		return
	}
	writer.fields = append(writer.fields, value.F(key, v))
}

func (writer *recordWriter) text(key string, text *string) {
	if text != nil {
		writer.add(key, value.String(*text))
	}
}

func (writer *recordWriter) symbol(key string, text *string) {
	if text != nil {
		writer.add(key, value.Symbol(*text))
	}
}

func (writer *recordWriter) integer(key string, number *int) {
	if number != nil {
		writer.add(key, value.Int(*number))
	}
}

func (writer *recordWriter) boolean(key string, flag *bool) {
	if flag != nil {
		writer.add(key, value.Boolean(*flag))
	}
}

// inline writes an array on the key line, keeping its parentheses.
func (writer *recordWriter) inline(key string, v value.Value) {
	writer.add(key, v.WithFormat(writer.format.Inlined()))
}

// bare writes an array on the key line without parentheses.
func (writer *recordWriter) bare(key string, v value.Value) {
	writer.add(key, v.WithFormat(writer.format.Inlined().Bare()))
}

// conditional writes a value with its custom source alternative.
func (writer *recordWriter) conditional(key string, text *string, alternative func(*song.CustomSource) *string) {
	if text == nil {
		return
	}
	if writer.opts.UseCustomSource && writer.record.CustomSource != nil {
		if alt := alternative(writer.record.CustomSource); alt != nil {
			writer.add(key, value.Symbol(fmt.Sprintf("#ifdef CUSTOMSOURCE %s #else %s #endif", *alt, *text)))
			return
		}
	}
	writer.add(key, value.Symbol(*text))
}

func (writer *recordWriter) build() error {
	record := writer.record

	writer.text("name", record.Name)
	writer.text("artist", record.Artist)
	writer.boolean("fake", record.Fake)
	writer.boolean("master", record.Master)
	writer.integer("context", record.Context)
	if record.SongID != nil {
		if number, ok := record.SongID.Int(); ok {
			writer.add("song_id", value.Integer(number))
		} else {
			writer.add("song_id", value.Symbol(string(*record.SongID)))
		}
	}
	writer.integer("upgrade_version", record.UpgradeVersion)

	if hasAny(record, locale.SongGroup) || writer.hasExtras(song.ScopeSong) {
		block, err := writer.songBlock()
		if err != nil {
			return err
		}
		writer.add("song", block)
	}
	if writer.mode == song.Partial {
		for _, extra := range record.ExtrasIn("") {
			if extra.Key == dryVox {
				writer.add(extra.Key, value.Symbol(extra.Raw))
			}
		}
	}

	writer.integer("song_scroll_speed", record.SongScrollSpeed)
	writer.symbol("bank", record.Bank)
	writer.symbol("drum_bank", record.DrumBank)
	if record.AnimTempo != nil {
		if writer.opts.Dialect == Authoring {
			writer.add("anim_tempo", value.Int(*record.AnimTempo))
		} else {
			writer.add("anim_tempo", value.Symbol(locale.AnimTempoSymbol(*record.AnimTempo)))
		}
	}
	writer.symbol("band_fail_cue", record.BandFailCue)
	if record.Preview != nil {
		writer.bare("preview", value.Ints(record.Preview))
	}
	writer.integer("song_length", record.SongLength)

	if hasAny(record, locale.RankGroup) || writer.hasExtras(song.ScopeRank) {
		writer.add("rank", writer.rankBlock())
	}

	if record.Solo != nil {
		writer.inline("solo", value.Symbols(record.Solo))
	}
	writer.conditional("genre", record.Genre, func(source *song.CustomSource) *string { return source.Genre })
	writer.conditional("sub_genre", record.SubGenre, func(source *song.CustomSource) *string { return source.SubGenre })
	writer.symbol("vocal_gender", record.VocalGender)
	writer.integer("format", record.Format)
	writer.integer("version", record.Version)
	writer.boolean("album_art", record.AlbumArt)
	writer.text("album_name", record.AlbumName)
	writer.integer("album_track_number", record.AlbumTrackNumber)
	writer.integer("year_released", record.YearReleased)
	writer.integer("year_recorded", record.YearRecorded)
	writer.integer("rating", record.Rating)
	if record.TuningOffsetCents != nil {
		writer.add("tuning_offset_cents", number(*record.TuningOffsetCents))
	}
	if record.GuidePitchVolume != nil {
		writer.add("guide_pitch_volume", value.Float(*record.GuidePitchVolume).WithFormat(writer.format.WithPrecision(guidePitchDecimals)))
	}
	writer.conditional("game_origin", record.GameOrigin, func(source *song.CustomSource) *string { return source.GameOrigin })
	writer.symbol("encoding", record.Encoding)
	writer.integer("vocal_tonic_note", record.VocalTonicNote)
	writer.integer("song_tonality", record.SongTonality)
	writer.integer("song_key", record.SongKey)
	if record.RealGuitarTuning != nil {
		writer.inline("real_guitar_tuning", value.Ints(record.RealGuitarTuning))
	}
	if record.RealBassTuning != nil {
		writer.inline("real_bass_tuning", value.Ints(record.RealBassTuning))
	}
	writer.boolean("alternate_path", record.AlternatePath)
	writer.integer("base_points", record.BasePoints)
	if record.ExtraAuthoring != nil {
		writer.inline("extra_authoring", value.Symbols(record.ExtraAuthoring))
	}

	if writer.opts.IncludeExtendedAuthorFields {
		writer.text("author", record.Author)
		writer.text("strings_author", record.StringsAuthor)
		writer.text("keys_author", record.KeysAuthor)
		writer.text("loading_phrase", record.LoadingPhrase)
	}
	writer.text("pack_name", record.PackName)

	if writer.mode == song.Partial {
		for _, extra := range record.ExtrasIn("") {
			if extra.Key != dryVox {
				writer.add(extra.Key, value.Symbol(extra.Raw))
			}
		}
	}
	return nil
}

// dryVox is the vocal part block kept raw on partial records.
const dryVox = "dry_vox"

// hasExtras reports whether a partial record keeps extra fields in scope.
func (writer *recordWriter) hasExtras(scope string) bool {
	return writer.mode == song.Partial && len(writer.record.ExtrasIn(scope)) > 0
}

// extras returns the extra fields of scope as raw values.
func (writer *recordWriter) extras(scope string) []value.Field {
	if writer.mode != song.Partial {
		return nil
	}
	var fields []value.Field
	for _, extra := range writer.record.ExtrasIn(scope) {
		fields = append(fields, value.F(extra.Key, value.Symbol(extra.Raw)))
	}
	return fields
}

// rankBlock writes the ranks under their instrument names. Complete records
// leave out zero ranks.
func (writer *recordWriter) rankBlock() value.Value {
	var fields []value.Field
	for _, key := range locale.RankGroup {
		if writer.opts.Dialect.omitted(key) {
			continue
		}
		if raw, ok := writer.record.IntField(key); ok && (raw != 0 || writer.mode == song.Partial) {
			fields = append(fields, value.F(strings.TrimPrefix(key, "rank_"), value.Int(raw)))
		}
	}
	return value.Object(append(fields, writer.extras(song.ScopeRank)...)...)
}

func hasAny(record *song.Record, keys []string) bool {
	for _, key := range keys {
		if record.Has(key) {
			return true
		}
	}
	return false
}

// number writes whole values as integers.
func number(float float64) value.Value {
	if float == math.Trunc(float) && math.Abs(float) < math.MaxInt32 {
		return value.Int(int(float))
	}
	return value.Float(float)
}

// # Song Block

// guide_pitch_volume keeps one decimal in every dialect.
const guidePitchDecimals = 1

// Values the game assumes when the field is absent.
const (
	defaultMuteVolume       = -96
	defaultMuteVolumeVocals = -12
	defaultHopoThreshold    = 170
)

func (writer *recordWriter) songBlock() (value.Value, error) {
	record := writer.record
	complete := writer.mode == song.Complete
	authoring := writer.opts.Dialect == Authoring

	var fields []value.Field
	add := func(key string, v value.Value) { fields = append(fields, value.F(key, v)) }

	if record.SongName != nil {
		path, err := writer.songPath(*record.SongName)
		if err != nil {
			return value.Value{}, err
		}
		add("name", value.String(path))
	}

	var layout *channel.Layout
	if record.TracksCount != nil {
		structure, err := channel.Structure(record.TracksCount)
		if err != nil {
			return value.Value{}, err
		}
		layout = &structure

		if authoring && complete {
			add("tracks_count", value.Ints(record.TracksCount))
		}
		add("tracks", writer.trackMap(structure))
	}

	infer := complete && layout != nil && writer.opts.InferPansVols
	switch {
	case record.Pans != nil:
		add("pans", value.Floats(record.Pans))
	case infer:
		add("pans", value.Floats(layout.DefaultPans))
	}
	switch {
	case record.Vols != nil:
		add("vols", value.Floats(record.Vols))
	case infer:
		add("vols", value.Floats(layout.DefaultVols))
	}

	if complete && layout != nil {
		cores := make([]int, layout.Total)
		guitar := layout.Range(channel.Guitar)
		for index := range cores {
			cores[index] = -1
			if writer.opts.GuitarCores && guitar.Enabled && index >= guitar.Start && index < guitar.Start+guitar.Count {
				cores[index] = 1
			}
		}
		add("cores", value.Ints(cores))
	} else if record.Cores != nil {
		add("cores", value.Ints(record.Cores))
	}

	if layout != nil {
		if crowd := layout.Range(channel.Crowd); crowd.Enabled {
			add("crowd_channels", value.Ints(crowd.Indices()).WithFormat(writer.format.Inlined().Bare()))
		}
	}

	if record.VocalParts != nil {
		add("vocal_parts", value.Int(*record.VocalParts))
	}

	if complete {
		fields = append(fields, writer.drumCues()...)
	}

	if record.MuteVolume != nil && *record.MuteVolume != defaultMuteVolume {
		add("mute_volume", value.Int(*record.MuteVolume))
	}
	if record.MuteVolumeVocals != nil && *record.MuteVolumeVocals != defaultMuteVolumeVocals {
		add("mute_volume_vocals", value.Int(*record.MuteVolumeVocals))
	}
	if record.HopoThreshold != nil && *record.HopoThreshold != defaultHopoThreshold {
		add("hopo_threshold", value.Int(*record.HopoThreshold))
	}

	return value.Object(append(fields, writer.extras(song.ScopeSong)...)...), nil
}

// songPath returns the (song (name ...)) path of a songname.
func (writer *recordWriter) songPath(songname string) (string, error) {
	wii := writer.opts.WiiMode
	if wii == nil {
		return fmt.Sprintf("songs/%s/%s", songname, songname), nil
	}
	if wii.Slot <= 0 || wii.Slot%2 == 0 {
		return "", dtaerr.ValueRange("Wii slot must be a positive odd number, got %d", wii.Slot)
	}
	return fmt.Sprintf("dlc/%s/%03d/content/songs/%s/%s", wii.Gen, wii.Slot, songname, songname), nil
}

// trackMap writes the channels of each instrument. The distribution
// layout writes single channels without parentheses.
func (writer *recordWriter) trackMap(layout channel.Layout) value.Value {
	var entries []value.Field
	for _, group := range channel.Groups[:5] {
		r := layout.Range(group)
		if !r.Enabled {
			continue
		}

		channels := value.Ints(r.Indices())
		if r.Count == 1 && writer.opts.Dialect != Authoring {
			channels = value.Int(r.Start)
		}
		entries = append(entries, value.F(string(group), channels))
	}
	return value.Object(value.F("", value.Object(entries...)))
}

var (
	drumSoloCues      = []string{"kick.cue", "snare.cue", "tom1.cue", "tom2.cue", "crash.cue"}
	drumFreestyleCues = []string{"kick.cue", "snare.cue", "hat.cue", "ride.cue", "crash.cue"}
)

// drumCues writes the drum fill sample sequences.
func (writer *recordWriter) drumCues() []value.Field {
	cues := func(names []string) value.Value {
		seqs := value.Symbols(names)
		if writer.opts.Dialect == Authoring {
			quoted := writer.format
			quoted.QuoteSymbol = true
			seqs = seqs.WithFormat(quoted)
		}
		return value.Object(value.F("seqs", seqs))
	}
	return []value.Field{
		value.F("drum_solo", cues(drumSoloCues)),
		value.F("drum_freestyle", cues(drumFreestyleCues)),
	}
}

// # Custom Attributes

// customAttributes writes the comment block authoring tools append to a
// record.
func customAttributes(record *song.Record) string {
	flag := func(on bool) string {
		if on {
			return "1"
		}
		return "0"
	}

	languages := "English,"
	if len(record.Languages) > 0 {
		languages = strings.Join(record.Languages, ", ") + ","
	}

	multitrack := pointer.Val(record.Multitrack)
	rhythmOn := pointer.Val(record.RhythmOn)
	emh := pointer.Val(record.EMH)

	lines := []string{
		"",
		";DO NOT EDIT THE FOLLOWING LINES MANUALLY",
		";Created using Magma: Rok On Edition v4.0.2",
		";Song authored by " + pointer.Fallback(record.Author, song.UnknownAuthor),
		";Song=" + pointer.Val(record.Name),
		";Language(s)=" + languages,
		";Karaoke=" + flag(multitrack == song.MultitrackKaraoke),
		";Multitrack=" + flag(multitrack == song.MultitrackFull),
		";DIYStems=" + flag(multitrack == song.MultitrackDIYStems),
		";PartialMultitrack=" + flag(multitrack == song.MultitrackPartial),
		";UnpitchedVocals=" + flag(pointer.Val(record.UnpitchedVocals)),
		";Convert=" + flag(pointer.Val(record.Convert)),
		";2xBass=" + flag(pointer.Val(record.DoubleKick)),
		";RhythmKeys=" + flag(rhythmOn == song.RhythmOnKeys),
		";RhythmBass=" + flag(rhythmOn == song.RhythmOnBass),
		";CATemh=" + flag(emh == song.EMHCat),
		";ExpertOnly=" + flag(emh == song.EMHExpertOnly),
	}
	return strings.Join(lines, "\n") + "\n"
}
