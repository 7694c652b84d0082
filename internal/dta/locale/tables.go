// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"maps"
	"slices"
)

// # Song Metadata Tables

// TitleInitials are the buckets of the title-initial header view.
var TitleInitials = []string{
	"123", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
}

var AnimTempo = newTable(
	Entry{"16", "Slow"},
	Entry{"32", "Medium"},
	Entry{"64", "Fast"},
)

// AnimTempoSymbols is the symbolic spelling of [AnimTempo] used outside the
// authoring dialect.
var AnimTempoSymbols = newTable(
	Entry{"kTempoSlow", "16"},
	Entry{"kTempoMedium", "32"},
	Entry{"kTempoFast", "64"},
)

var BandFailCue = newTable(
	Entry{"band_fail_rock.cue", "Rock"},
	Entry{"band_fail_vintage.cue", "Vintage"},
	Entry{"band_fail_heavy.cue", "Heavy"},
	Entry{"band_fail_electro.cue", "Electro"},
	Entry{"band_fail_rock_keys.cue", "Rock (Keys)"},
	Entry{"band_fail_vintage_keys.cue", "Vintage (Keys)"},
	Entry{"band_fail_heavy_keys.cue", "Heavy (Keys)"},
	Entry{"band_fail_electro_keys.cue", "Electro (Keys)"},
)

var PercussionBank = newTable(
	Entry{"sfx/tambourine_bank.milo", "Tambourine"},
	Entry{"sfx/cowbell_bank.milo", "Cowbell"},
	Entry{"sfx/handclap_bank.milo", "Hand Clap"},
	Entry{"sfx/cowbell3_bank.milo", "Cowbell (Alternate)"},
)

var DrumBank = newTable(
	Entry{"sfx/kit01_bank.milo", "Hard Rock Kit"},
	Entry{"sfx/kit02_bank.milo", "Arena Kit"},
	Entry{"sfx/kit03_bank.milo", "Vintage Kit"},
	Entry{"sfx/kit04_bank.milo", "Trashy Kit"},
	Entry{"sfx/kit05_bank.milo", "Electronic Kit"},
)

var Genre = newTable(
	Entry{"alternative", "Alternative"},
	Entry{"blues", "Blues"},
	Entry{"classical", "Classical"},
	Entry{"classicrock", "Classic Rock"},
	Entry{"country", "Country"},
	Entry{"emo", "Emo"},
	Entry{"fusion", "Fusion"},
	Entry{"glam", "Glam"},
	Entry{"grunge", "Grunge"},
	Entry{"hiphoprap", "Hip-Hop/Rap"},
	Entry{"indierock", "Indie Rock"},
	Entry{"inspirational", "Inspirational"},
	Entry{"jazz", "Jazz"},
	Entry{"jrock", "J-Rock"},
	Entry{"latin", "Latin"},
	Entry{"metal", "Metal"},
	Entry{"new_wave", "New Wave"},
	Entry{"novelty", "Novelty"},
	Entry{"numetal", "Nu-Metal"},
	Entry{"popdanceelectronic", "Pop/Dance/Electronic"},
	Entry{"poprock", "Pop-Rock"},
	Entry{"prog", "Prog"},
	Entry{"punk", "Punk"},
	Entry{"rbsoulfunk", "R&B/Soul/Funk"},
	Entry{"reggaeska", "Reggae/Ska"},
	Entry{"rock", "Rock"},
	Entry{"southernrock", "Southern Rock"},
	Entry{"world", "World"},
	Entry{"other", "Other"},
)

var SubGenre = newTable(
	Entry{"subgenre_alternative", "Alternative"},
	Entry{"subgenre_college", "College"},
	Entry{"subgenre_other", "Other"},
	Entry{"subgenre_acoustic", "Acoustic"},
	Entry{"subgenre_chicago", "Chicago"},
	Entry{"subgenre_classic", "Classic"},
	Entry{"subgenre_contemporary", "Contemporary"},
	Entry{"subgenre_country", "Country"},
	Entry{"subgenre_delta", "Delta"},
	Entry{"subgenre_electric", "Electric"},
	Entry{"subgenre_classical", "Classical"},
	Entry{"subgenre_classicrock", "Classic Rock"},
	Entry{"subgenre_bluegrass", "Bluegrass"},
	Entry{"subgenre_honkytonk", "Honky Tonk"},
	Entry{"subgenre_outlaw", "Outlaw"},
	Entry{"subgenre_traditionalfolk", "Traditional Folk"},
	Entry{"subgenre_emo", "Emo"},
	Entry{"subgenre_fusion", "Fusion"},
	Entry{"subgenre_glam", "Glam"},
	Entry{"subgenre_goth", "Goth"},
	Entry{"subgenre_grunge", "Grunge"},
	Entry{"subgenre_alternativerap", "Alternative Rap"},
	Entry{"subgenre_gangsta", "Gangsta"},
	Entry{"subgenre_hardcorerap", "Hardcore Rap"},
	Entry{"subgenre_hiphop", "Hip Hop"},
	Entry{"subgenre_oldschoolhiphop", "Old School Hip Hop"},
	Entry{"subgenre_rap", "Rap"},
	Entry{"subgenre_triphop", "Trip Hop"},
	Entry{"subgenre_undergroundrap", "Underground Rap"},
	Entry{"subgenre_indierock", "Indie Rock"},
	Entry{"subgenre_lofi", "Lo-fi"},
	Entry{"subgenre_mathrock", "Math Rock"},
	Entry{"subgenre_noise", "Noise"},
	Entry{"subgenre_postrock", "Post Rock"},
	Entry{"subgenre_shoegazing", "Shoegazing"},
	Entry{"subgenre_inspirational", "Inspirational"},
	Entry{"subgenre_acidjazz", "Acid Jazz"},
	Entry{"subgenre_experimental", "Experimental"},
	Entry{"subgenre_ragtime", "Ragtime"},
	Entry{"subgenre_smooth", "Smooth"},
	Entry{"subgenre_jrock", "J-Rock"},
	Entry{"subgenre_latin", "Latin"},
	Entry{"subgenre_black", "Black"},
	Entry{"subgenre_core", "Core"},
	Entry{"subgenre_death", "Death"},
	Entry{"subgenre_hair", "Hair"},
	Entry{"subgenre_industrial", "Industrial"},
	Entry{"subgenre_metal", "Metal"},
	Entry{"subgenre_power", "Power"},
	Entry{"subgenre_prog", "Prog"},
	Entry{"subgenre_speed", "Speed"},
	Entry{"subgenre_thrash", "Thrash"},
	Entry{"subgenre_darkwave", "Dark Wave"},
	Entry{"subgenre_electroclash", "Electroclash"},
	Entry{"subgenre_new_wave", "New Wave"},
	Entry{"subgenre_synth", "Synthpop"},
	Entry{"subgenre_novelty", "Novelty"},
	Entry{"subgenre_numetal", "Nu-Metal"},
	Entry{"subgenre_ambient", "Ambient"},
	Entry{"subgenre_breakbeat", "Breakbeat"},
	Entry{"subgenre_chiptune", "Chiptune"},
	Entry{"subgenre_dance", "Dance"},
	Entry{"subgenre_downtempo", "Downtempo"},
	Entry{"subgenre_dub", "Dub"},
	Entry{"subgenre_drumandbass", "Drum and Bass"},
	Entry{"subgenre_electronica", "Electronica"},
	Entry{"subgenre_garage", "Garage"},
	Entry{"subgenre_hardcoredance", "Hardcore Dance"},
	Entry{"subgenre_house", "House"},
	Entry{"subgenre_techno", "Techno"},
	Entry{"subgenre_trance", "Trance"},
	Entry{"subgenre_pop", "Pop"},
	Entry{"subgenre_softrock", "Soft Rock"},
	Entry{"subgenre_teen", "Teen"},
	Entry{"subgenre_progrock", "Prog Rock"},
	Entry{"subgenre_dancepunk", "Dance Punk"},
	Entry{"subgenre_hardcore", "Hardcore"},
	Entry{"subgenre_disco", "Disco"},
	Entry{"subgenre_funk", "Funk"},
	Entry{"subgenre_motown", "Motown"},
	Entry{"subgenre_rhythmandblues", "Rhythm and Blues"},
	Entry{"subgenre_soul", "Soul"},
	Entry{"subgenre_reggae", "Reggae"},
	Entry{"subgenre_ska", "Ska"},
	Entry{"subgenre_arena", "Arena"},
	Entry{"subgenre_blues", "Blues"},
	Entry{"subgenre_folkrock", "Folk Rock"},
	Entry{"subgenre_hardrock", "Hard Rock"},
	Entry{"subgenre_psychadelic", "Psychedelic"},
	Entry{"subgenre_rock", "Rock"},
	Entry{"subgenre_rockabilly", "Rockabilly"},
	Entry{"subgenre_rockandroll", "Rock and Roll"},
	Entry{"subgenre_surf", "Surf"},
	Entry{"subgenre_southernrock", "Southern Rock"},
	Entry{"subgenre_world", "World"},
	Entry{"subgenre_acapella", "A capella"},
	Entry{"subgenre_contemporaryfolk", "Contemporary Folk"},
	Entry{"subgenre_oldies", "Oldies"},
)

var Instruments = newTable(
	Entry{"band", "Band"},
	Entry{"bass", "Bass"},
	Entry{"drums", "Drums"},
	Entry{"guitar", "Guitar"},
	Entry{"keys", "Keys"},
	Entry{"real_drums", "PRO Drums"},
	Entry{"real_bass", "PRO Bass"},
	Entry{"real_guitar", "PRO Guitar"},
	Entry{"real_keys", "PRO Keys"},
	Entry{"vocals", "Solo Vocals"},
	Entry{"harmonies", "Harmonies"},
)

var Rating = newTable(
	Entry{"1", "Family Friendly"},
	Entry{"2", "Supervision Recommended"},
	Entry{"3", "Mature Content"},
	Entry{"4", "No Rating"},
)

var SongScrollSpeed = newTable(
	Entry{"1700", "Crazy"},
	Entry{"1850", "Faster"},
	Entry{"2000", "Fast"},
	Entry{"2150", "Medium Fast"},
	Entry{"2300", "Normal"},
	Entry{"2450", "Medium Slow"},
	Entry{"2600", "Slow"},
	Entry{"2750", "Slower"},
	Entry{"3000", "Comatose"},
)

var VocalGender = newTable(
	Entry{"male", "Male"},
	Entry{"female", "Female"},
)

var VocalParts = newTable(
	Entry{"0", "No Vocals"},
	Entry{"1", "Solo Vocals"},
	Entry{"2", "2-Part Harmonies"},
	Entry{"3", "3-Part Harmonies"},
)

var RankName = newTable(
	Entry{"-1", "No Part"},
	Entry{"0", "Warmup"},
	Entry{"1", "Apprentice"},
	Entry{"2", "Solid"},
	Entry{"3", "Moderate"},
	Entry{"4", "Challenging"},
	Entry{"5", "Nightmare"},
	Entry{"6", "Impossible"},
)

var RankDots = newTable(
	Entry{"-1", "No Part"},
	Entry{"0", "Zero Dots"},
	Entry{"1", "One Dot"},
	Entry{"2", "Two Dots"},
	Entry{"3", "Three Dots"},
	Entry{"4", "Four Dots"},
	Entry{"5", "Five Dots"},
	Entry{"6", "Devil Dots"},
)

var Solo = newTable(
	Entry{"drum", "Drums"},
	Entry{"bass", "Bass"},
	Entry{"guitar", "Guitar"},
	Entry{"keys", "Keys"},
	Entry{"vocal_percussion", "Vocal Percussion"},
)

var ExtraAuthoring = newTable(
	Entry{"disc_update", "Disc Update"},
	Entry{"pearljam", "Pearl Jam"},
	Entry{"greenday", "Green Day"},
)

var Encoding = newTable(
	Entry{"latin1", "Latin-1"},
	Entry{"utf8", "UTF-8"},
)

var GameOrigin = newTable(
	Entry{"rb1", "Rock Band 1"},
	Entry{"rb1_dlc", "Rock Band 1 DLC"},
	Entry{"rb2", "Rock Band 2"},
	Entry{"rb2_dlc", "Rock Band 2 DLC"},
	Entry{"rb3", "Rock Band 3"},
	Entry{"rb3_dlc", "Rock Band 3 DLC"},
	Entry{"lego", "LEGO Rock Band"},
	Entry{"greenday", "Green Day: Rock Band"},
	Entry{"ugc", "User-generated content/Rock Band Network"},
	Entry{"ugc_plus", "User-generated content/Rock Band Network 2.0"},
)

var SongKey = newTable(
	Entry{"0", "C"},
	Entry{"1", "Db"},
	Entry{"2", "D"},
	Entry{"3", "Eb"},
	Entry{"4", "E"},
	Entry{"5", "F"},
	Entry{"6", "F#"},
	Entry{"7", "G"},
	Entry{"8", "Ab"},
	Entry{"9", "A"},
	Entry{"10", "Bb"},
	Entry{"11", "B"},
)

var SongTonality = newTable(
	Entry{"0", "Major"},
	Entry{"1", "Minor"},
)

var SortingType = newTable(
	Entry{"name", "Song Title"},
	Entry{"artist", "Artist"},
	Entry{"artist_and_name", "Artist, Song Title"},
	Entry{"artist_set", "Artist, Year Released, Album Name, Album Track Number"},
	Entry{"id", "ID"},
	Entry{"song_id", "Song ID"},
)

// # Lookup By Name

var tables = map[string]*Table{
	"anim_tempo":        AnimTempo,
	"band_fail_cue":     BandFailCue,
	"bank":              PercussionBank,
	"drum_bank":         DrumBank,
	"genre":             Genre,
	"sub_genre":         SubGenre,
	"instruments":       Instruments,
	"rating":            Rating,
	"song_scroll_speed": SongScrollSpeed,
	"vocal_gender":      VocalGender,
	"vocal_parts":       VocalParts,
	"rank_name":         RankName,
	"rank_dots":         RankDots,
	"solo":              Solo,
	"extra_authoring":   ExtraAuthoring,
	"encoding":          Encoding,
	"game_origin":       GameOrigin,
	"song_key":          SongKey,
	"song_tonality":     SongTonality,
	"sorting_type":      SortingType,
}

// Lookup returns the table registered under name, e.g. "genre".
func Lookup(name string) (*Table, bool) {
	table, ok := tables[name]
	return table, ok
}

// TableNames lists the names accepted by [Lookup].
func TableNames() []string {
	return slices.Sorted(maps.Keys(tables))
}

// AnimTempoSymbol spells a numeric anim tempo as a kTempo symbol. Values
// other than 16 and 32 are treated as fast.
func AnimTempoSymbol(tempo int) string {
	switch tempo {
	case 16:
		return "kTempoSlow"
	case 32:
		return "kTempoMedium"
	default:
		return "kTempoFast"
	}
}
