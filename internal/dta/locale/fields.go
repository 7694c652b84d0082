// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

// FieldOrder is the canonical order of record fields. The renderer walks
// it to emit a record, grouping [SongGroup] and [RankGroup] members into
// their nested blocks at the position of the first member.
var FieldOrder = []string{
	"id", "name", "artist", "fake", "master", "context", "song_id", "upgrade_version",
	"songname", "tracks_count", "pans", "vols", "cores", "vocal_parts",
	"mute_volume", "mute_volume_vocals", "hopo_threshold",
	"song_scroll_speed", "bank", "drum_bank", "anim_tempo", "band_fail_cue",
	"preview", "song_length",
	"rank_drum", "rank_guitar", "rank_bass", "rank_vocals", "rank_keys",
	"rank_real_keys", "rank_real_guitar", "rank_real_bass", "rank_band",
	"solo", "genre", "sub_genre", "vocal_gender", "format", "version",
	"album_art", "album_name", "album_track_number", "year_released", "year_recorded",
	"rating", "tuning_offset_cents", "guide_pitch_volume", "game_origin", "encoding",
	"vocal_tonic_note", "song_tonality", "song_key",
	"real_guitar_tuning", "real_bass_tuning", "alternate_path", "base_points", "extra_authoring",
	"author", "strings_author", "keys_author", "loading_phrase", "pack_name",
	"languages", "multitrack", "unpitched_vocals", "convert", "double_kick",
	"rhythm_on", "emh", "customsource",
}

// SongGroup lists the fields written inside the nested (song ...) block.
var SongGroup = []string{
	"songname", "tracks_count", "pans", "vols", "cores", "vocal_parts",
	"mute_volume", "mute_volume_vocals", "hopo_threshold",
}

// RankGroup lists the fields written inside the nested (rank ...) block,
// keyed by their record name.
var RankGroup = []string{
	"rank_drum", "rank_guitar", "rank_bass", "rank_vocals", "rank_keys",
	"rank_real_keys", "rank_real_guitar", "rank_real_bass", "rank_band",
}

// CustomGroup lists the authoring-tool fields carried as ";Key=Value"
// comments rather than as DTA fields.
var CustomGroup = []string{
	"languages", "multitrack", "unpitched_vocals", "convert", "double_kick",
	"rhythm_on", "emh", "customsource",
}

// RequiredFields must be present on every complete record before it can be
// written.
var RequiredFields = []string{
	"name", "artist", "id", "tracks_count", "song_id", "preview", "vocal_parts",
	"bank", "anim_tempo", "rank_band", "game_origin", "rating", "genre",
	"vocal_gender", "year_released", "format", "version",
}

var groupOf = func() map[string]string {
	groups := make(map[string]string)
	for _, key := range SongGroup {
		groups[key] = "song"
	}
	for _, key := range RankGroup {
		groups[key] = "rank"
	}
	for _, key := range CustomGroup {
		groups[key] = "custom"
	}
	return groups
}()

// GroupOf returns "song", "rank", "custom" or "" for top-level fields.
func GroupOf(field string) string {
	return groupOf[field]
}

// FieldIndex returns the position of field in [FieldOrder], or -1.
func FieldIndex(field string) int {
	for index, key := range FieldOrder {
		if key == field {
			return index
		}
	}
	return -1
}
