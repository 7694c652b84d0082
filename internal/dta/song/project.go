// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"slices"
	"strconv"
	"strings"

	"github.com/taibuivan/dtakit/internal/dta/channel"
	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/locale"
	"github.com/taibuivan/dtakit/internal/dta/token"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// Nested blocks whose children are flattened onto the record.
const (
	blockSong   = ScopeSong
	blockRank   = ScopeRank
	blockDryVox = "dry_vox"
	blockTracks = "tracks"
)

// projection carries the state of one [Project] call.
type projection struct {
	record *Record
	mode   Mode

	// trackMap holds the channel count of each instrument read from a
	// (tracks ...) map.
	trackMap      map[string]int
	crowdChannels bool
	crowdValues   []*token.Node
}

// Project reads a parsed record tree into a [Record].
//
// The first child of root is the id. Every following child is a
// (key value...) field; the song, rank and tracks blocks are flattened. In
// [Complete] mode unknown fields and the dry_vox block are dropped, and a
// missing required field or fields that disagree fail with a
// SchemaViolation. In [Partial] mode they are kept in [Record.Extra] under
// the block they were found in. Any malformed field fails the whole record.
func Project(root *token.Node, mode Mode) (*Record, error) {
	if root == nil || root.Kind != token.KindList || len(root.Children) == 0 || !root.Children[0].IsAtom() {
		return nil, dtaerr.Malformed("record does not start with an id")
	}

	id := root.Children[0].Text
	if strings.TrimSpace(id) == "" {
		return nil, dtaerr.Malformed("record id is empty")
	}

	state := &projection{record: &Record{ID: id}, mode: mode}
	for _, child := range root.Children[1:] {
		if err := state.field(child, ""); err != nil {
			return nil, dtaerr.InRecord(err, id)
		}
	}

	if err := state.finish(root.Comments); err != nil {
		return nil, dtaerr.InRecord(err, id)
	}

	if mode == Complete {
		if missing := state.record.Missing(); len(missing) > 0 {
			return nil, dtaerr.SchemaViolation(id, missing...)
		}
		if fields := state.record.Inconsistent(); len(fields) > 0 {
			return nil, dtaerr.Inconsistent(id, fields...)
		}
	}
	return state.record, nil
}

// field projects one (key value...) node found in scope.
func (state *projection) field(node *token.Node, scope string) error {
	key, ok := node.Key()
	if !ok {
		return dtaerr.Malformed("expected a (key value) field, found %q", token.Inline([]*token.Node{node}))
	}
	values := node.Values()
	name := key

	switch {
	case scope == "" && key == blockDryVox:
		// Vocal part overrides are not modeled.
		state.keepUnknown(scope, key, values)
		return nil

	case scope == "" && (key == blockSong || key == blockRank):
		for _, child := range values {
			if err := state.field(child, key); err != nil {
				return err
			}
		}
		return nil

	case key == blockTracks && (scope == "" || scope == blockSong):
		return state.tracks(values)

	case scope == blockRank:
		key = "rank_" + key

	case scope == blockSong:
		switch key {
		case "name":
			text, err := atomText(key, values)
			if err != nil {
				return err
			}
			state.record.SongName = pointer.To(SongNameFromPath(text))
			return nil
		case "crowd_channels":
			state.crowdChannels = true
			state.crowdValues = values
			return nil
		case "drum_solo", "drum_freestyle":
			// Complete records regenerate the drum cues.
			state.keepUnknown(scope, key, values)
			return nil
		}
	}

	field, known := descriptorByKey[key]
	if !known || field.kind == kindCustomSource {
		state.keepUnknown(scope, name, values)
		return nil
	}

	if len(values) == 0 {
		return dtaerr.Malformed("field %q has no value", key)
	}
	return assignNodes(field, field.slot(state.record), values)
}

// keepUnknown stores a field the record does not model. Only partial
// records keep them. A repeated key in the same block replaces the earlier
// one.
func (state *projection) keepUnknown(scope, key string, values []*token.Node) {
	if state.mode != Partial {
		return
	}

	extra := Extra{Scope: scope, Key: key, Raw: token.Inline(values)}
	extras := state.record.Extra
	if position := slices.IndexFunc(extras, func(existing Extra) bool { return existing.Path() == extra.Path() }); position >= 0 {
		extras[position] = extra
		return
	}
	state.record.Extra = append(extras, extra)
}

// tracks reads a ((drum (0 1)) (bass 2) ...) channel map.
func (state *projection) tracks(values []*token.Node) error {
	entries := values
	if len(values) == 1 && values[0].Kind == token.KindList {
		if _, keyed := values[0].Key(); !keyed {
			entries = values[0].Children
		}
	}

	state.trackMap = make(map[string]int)
	for _, entry := range entries {
		instrument, ok := entry.Key()
		if !ok {
			return dtaerr.Malformed("malformed track map entry %q", token.Inline([]*token.Node{entry}))
		}
		channels, err := intList(instrument, entry.Values())
		if err != nil {
			return err
		}
		state.trackMap[instrument] = len(channels)
	}
	return nil
}

// finish applies the derivations that need the whole record.
func (state *projection) finish(comments []string) error {
	record := state.record

	if err := splitCustomSource(record); err != nil {
		return err
	}

	switch {
	case record.TracksCount == nil && state.trackMap != nil:
		record.TracksCount = state.deriveTracksCount()
	case record.TracksCount == nil && state.crowdChannels:
		// Without a layout the crowd indices cannot be rebuilt.
		state.keepUnknown(blockSong, "crowd_channels", state.crowdValues)
	case record.TracksCount != nil && state.crowdChannels && !channel.HasCrowd(record.TracksCount):
		if len(record.TracksCount) == len(channel.Groups) {
			record.TracksCount[len(channel.Groups)-1] = channel.CrowdChannels
		} else {
			record.TracksCount = append(record.TracksCount, channel.CrowdChannels)
		}
	}

	applyAuthoringComments(record, comments)

	if state.mode == Complete {
		// Cores are regenerated from the layout when rendering.
		record.Cores = nil
	}
	return nil
}

// deriveTracksCount rebuilds tracks_count from a channel map. Channels not
// claimed by an instrument or the crowd are backing.
func (state *projection) deriveTracksCount() []int {
	record := state.record
	counts := make([]int, 0, 7)
	claimed := 0
	for _, group := range channel.Groups[:5] {
		count := state.trackMap[string(group)]
		counts = append(counts, count)
		claimed += count
	}

	total := max(len(record.Pans), len(record.Vols), len(record.Cores))
	if state.crowdChannels {
		claimed += channel.CrowdChannels
	}
	counts = append(counts, max(total-claimed, 0))

	if state.crowdChannels {
		counts = append(counts, channel.CrowdChannels)
	}
	return counts
}

// # Custom Source

// splitCustomSource deconstructs "#ifdef CUSTOMSOURCE a #else b #endif"
// values into the vanilla value b and the alternative a.
func splitCustomSource(record *Record) error {
	targets := []struct {
		value       **string
		alternative func(*CustomSource) **string
	}{
		{&record.Genre, func(source *CustomSource) **string { return &source.Genre }},
		{&record.SubGenre, func(source *CustomSource) **string { return &source.SubGenre }},
		{&record.GameOrigin, func(source *CustomSource) **string { return &source.GameOrigin }},
	}

	for _, target := range targets {
		text := pointer.Val(*target.value)
		if !strings.HasPrefix(text, "#ifdef") {
			continue
		}

		parts := strings.Fields(text)
		if len(parts) < 5 || parts[3] != "#else" {
			return dtaerr.Malformed("malformed conditional value %q", text)
		}

		if record.CustomSource == nil {
			record.CustomSource = &CustomSource{}
		}
		*target.alternative(record.CustomSource) = pointer.To(parts[2])
		*target.value = pointer.To(parts[4])
	}
	return nil
}

// # Authoring Comments

// applyAuthoringComments reads ";Key=Value" attribute lines written by
// authoring tools. Fields already set by the record body win.
func applyAuthoringComments(record *Record, comments []string) {
	attributes := make(map[string]string)
	for _, comment := range comments {
		comment = strings.TrimSpace(comment)
		if author, ok := strings.CutPrefix(comment, "Song authored by "); ok {
			attributes["Author"] = strings.TrimSpace(author)
			continue
		}
		if key, value, ok := strings.Cut(comment, "="); ok {
			attributes[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	if len(attributes) == 0 {
		return
	}

	enabled := func(key string) bool { return attributes[key] == "1" }

	if author := attributes["Author"]; author != "" && author != UnknownAuthor && record.Author == nil {
		record.Author = pointer.To(author)
	}

	if languages, ok := attributes["Language(s)"]; ok && record.Languages == nil {
		for _, language := range strings.Split(languages, ",") {
			if language = strings.TrimSpace(language); language != "" {
				record.Languages = append(record.Languages, language)
			}
		}
	}

	if record.Multitrack == nil {
		switch {
		case enabled("Karaoke"):
			record.Multitrack = pointer.To(MultitrackKaraoke)
		case enabled("Multitrack"):
			record.Multitrack = pointer.To(MultitrackFull)
		case enabled("DIYStems"):
			record.Multitrack = pointer.To(MultitrackDIYStems)
		case enabled("PartialMultitrack"):
			record.Multitrack = pointer.To(MultitrackPartial)
		}
	}

	if record.RhythmOn == nil {
		switch {
		case enabled("RhythmKeys"):
			record.RhythmOn = pointer.To(RhythmOnKeys)
		case enabled("RhythmBass"):
			record.RhythmOn = pointer.To(RhythmOnBass)
		}
	}

	if record.EMH == nil {
		switch {
		case enabled("CATemh"):
			record.EMH = pointer.To(EMHCat)
		case enabled("ExpertOnly"):
			record.EMH = pointer.To(EMHExpertOnly)
		}
	}

	flags := []struct {
		attribute string
		target    **bool
	}{
		{"UnpitchedVocals", &record.UnpitchedVocals},
		{"Convert", &record.Convert},
		{"2xBass", &record.DoubleKick},
	}
	for _, flag := range flags {
		if *flag.target == nil && enabled(flag.attribute) {
			*flag.target = pointer.To(true)
		}
	}
}

// UnknownAuthor is written when a record has no author.
const UnknownAuthor = "Unknown Charter"

// # Leaf Coercion

func assignNodes(field *descriptor, slot any, values []*token.Node) error {
	switch field.kind {
	case kindText:
		text, err := atomText(field.key, values)
		if err != nil {
			return err
		}
		*slot.(**string) = &text

	case kindSymbol:
		parts := make([]string, 0, len(values))
		for _, node := range values {
			if !node.IsAtom() {
				return dtaerr.Malformed("field %q expects a symbol", field.key)
			}
			parts = append(parts, node.Text)
		}
		*slot.(**string) = pointer.To(strings.Join(parts, " "))

	case kindInt:
		number, err := atomInt(field.key, values)
		if err != nil {
			return err
		}
		*slot.(**int) = &number

	case kindFloat:
		if len(values) != 1 {
			return dtaerr.Malformed("field %q expects a single number", field.key)
		}
		number, ok := values[0].Float()
		if !ok {
			return dtaerr.Malformed("field %q expects a number, found %q", field.key, values[0].Text)
		}
		*slot.(**float64) = &number

	case kindBool:
		flag, err := atomBool(field.key, values)
		if err != nil {
			return err
		}
		*slot.(**bool) = &flag

	case kindInts:
		numbers, err := intList(field.key, values)
		if err != nil {
			return err
		}
		*slot.(*[]int) = numbers

	case kindFloats:
		items := flatten(values)
		numbers := make([]float64, 0, len(items))
		for _, node := range items {
			number, ok := node.Float()
			if !ok {
				return dtaerr.Malformed("field %q expects numbers, found %q", field.key, node.Text)
			}
			numbers = append(numbers, number)
		}
		*slot.(*[]float64) = numbers

	case kindSymbols:
		items := flatten(values)
		names := make([]string, 0, len(items))
		for _, node := range items {
			if !node.IsAtom() {
				return dtaerr.Malformed("field %q expects symbols", field.key)
			}
			names = append(names, node.Text)
		}
		*slot.(*[]string) = names

	case kindSongID:
		text, err := atomText(field.key, values)
		if err != nil {
			return err
		}
		*slot.(**SongID) = pointer.To(SongID(text))

	case kindTempo:
		tempo, err := atomTempo(values)
		if err != nil {
			return err
		}
		*slot.(**int) = &tempo

	case kindMultitrack:
		text, err := atomEnum(field.key, values, string(MultitrackKaraoke), string(MultitrackFull), string(MultitrackDIYStems), string(MultitrackPartial))
		if err != nil {
			return err
		}
		*slot.(**Multitrack) = pointer.To(Multitrack(text))

	case kindRhythmOn:
		text, err := atomEnum(field.key, values, string(RhythmOnKeys), string(RhythmOnBass))
		if err != nil {
			return err
		}
		*slot.(**RhythmOn) = pointer.To(RhythmOn(text))

	case kindEMH:
		text, err := atomEnum(field.key, values, string(EMHCat), string(EMHExpertOnly))
		if err != nil {
			return err
		}
		*slot.(**EMH) = pointer.To(EMH(text))
	}
	return nil
}

// flatten accepts both (key (a b)) and (key a b).
func flatten(values []*token.Node) []*token.Node {
	if len(values) == 1 && values[0].Kind == token.KindList {
		return values[0].Children
	}
	return values
}

func atomText(key string, values []*token.Node) (string, error) {
	if len(values) != 1 || !values[0].IsAtom() {
		return "", dtaerr.Malformed("field %q expects a single value", key)
	}
	return values[0].Text, nil
}

func atomInt(key string, values []*token.Node) (int, error) {
	if len(values) != 1 {
		return 0, dtaerr.Malformed("field %q expects a single integer", key)
	}
	number, ok := values[0].Int()
	if !ok {
		return 0, dtaerr.Malformed("field %q expects an integer, found %q", key, values[0].Text)
	}
	return number, nil
}

func atomBool(key string, values []*token.Node) (bool, error) {
	if len(values) != 1 || !values[0].IsAtom() {
		return false, dtaerr.Malformed("field %q expects a boolean", key)
	}
	switch strings.ToUpper(values[0].Text) {
	case "TRUE", "1":
		return true, nil
	case "FALSE", "0":
		return false, nil
	default:
		return false, dtaerr.Malformed("field %q expects a boolean, found %q", key, values[0].Text)
	}
}

func atomTempo(values []*token.Node) (int, error) {
	if len(values) != 1 || !values[0].IsAtom() {
		return 0, dtaerr.Malformed("field \"anim_tempo\" expects a single value")
	}
	if number, ok := values[0].Int(); ok {
		return number, nil
	}
	if locale.AnimTempoSymbols.Has(values[0].Text) {
		return strconv.Atoi(locale.AnimTempoSymbols.Name(values[0].Text))
	}
	return 0, dtaerr.Malformed("unknown anim_tempo %q", values[0].Text)
}

func atomEnum(key string, values []*token.Node, allowed ...string) (string, error) {
	text, err := atomText(key, values)
	if err != nil {
		return "", err
	}
	if !slices.Contains(allowed, text) {
		return "", dtaerr.Malformed("field %q does not accept %q", key, text)
	}
	return text, nil
}

func intList(key string, values []*token.Node) ([]int, error) {
	items := flatten(values)
	numbers := make([]int, 0, len(items))
	for _, node := range items {
		number, ok := node.Int()
		if !ok {
			return nil, dtaerr.Malformed("field %q expects integers, found %q", key, node.Text)
		}
		numbers = append(numbers, number)
	}
	return numbers, nil
}
