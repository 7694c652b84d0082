// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import "slices"

// subGenres maps each genre token to its legal sub-genre tokens, in
// display order.
var subGenres = map[string][]string{
	"alternative":        {"subgenre_alternative", "subgenre_college", "subgenre_other"},
	"blues":              {"subgenre_acoustic", "subgenre_chicago", "subgenre_classic", "subgenre_contemporary", "subgenre_country", "subgenre_delta", "subgenre_electric", "subgenre_other"},
	"classical":          {"subgenre_classical"},
	"classicrock":        {"subgenre_classicrock"},
	"country":            {"subgenre_alternative", "subgenre_bluegrass", "subgenre_contemporary", "subgenre_honkytonk", "subgenre_outlaw", "subgenre_traditionalfolk", "subgenre_other"},
	"emo":                {"subgenre_emo"},
	"fusion":             {"subgenre_fusion"},
	"glam":               {"subgenre_glam", "subgenre_goth", "subgenre_other"},
	"grunge":             {"subgenre_grunge"},
	"hiphoprap":          {"subgenre_alternativerap", "subgenre_gangsta", "subgenre_hardcorerap", "subgenre_hiphop", "subgenre_oldschoolhiphop", "subgenre_rap", "subgenre_triphop", "subgenre_undergroundrap", "subgenre_other"},
	"indierock":          {"subgenre_indierock", "subgenre_lofi", "subgenre_mathrock", "subgenre_noise", "subgenre_postrock", "subgenre_shoegazing", "subgenre_other"},
	"inspirational":      {"subgenre_inspirational"},
	"jazz":               {"subgenre_acidjazz", "subgenre_contemporary", "subgenre_experimental", "subgenre_ragtime", "subgenre_smooth", "subgenre_other"},
	"jrock":              {"subgenre_jrock"},
	"latin":              {"subgenre_latin"},
	"metal":              {"subgenre_alternative", "subgenre_black", "subgenre_core", "subgenre_death", "subgenre_hair", "subgenre_industrial", "subgenre_metal", "subgenre_power", "subgenre_prog", "subgenre_speed", "subgenre_thrash", "subgenre_other"},
	"new_wave":           {"subgenre_darkwave", "subgenre_electroclash", "subgenre_new_wave", "subgenre_synth", "subgenre_other"},
	"novelty":            {"subgenre_novelty"},
	"numetal":            {"subgenre_numetal"},
	"popdanceelectronic": {"subgenre_ambient", "subgenre_breakbeat", "subgenre_chiptune", "subgenre_dance", "subgenre_downtempo", "subgenre_dub", "subgenre_drumandbass", "subgenre_electronica", "subgenre_garage", "subgenre_hardcoredance", "subgenre_house", "subgenre_industrial", "subgenre_techno", "subgenre_trance", "subgenre_other"},
	"poprock":            {"subgenre_contemporary", "subgenre_pop", "subgenre_softrock", "subgenre_teen", "subgenre_other"},
	"prog":               {"subgenre_progrock"},
	"punk":               {"subgenre_alternative", "subgenre_classic", "subgenre_dancepunk", "subgenre_garage", "subgenre_hardcore", "subgenre_pop", "subgenre_other"},
	"rbsoulfunk":         {"subgenre_disco", "subgenre_funk", "subgenre_motown", "subgenre_rhythmandblues", "subgenre_soul", "subgenre_other"},
	"reggaeska":          {"subgenre_reggae", "subgenre_ska", "subgenre_other"},
	"rock":               {"subgenre_arena", "subgenre_blues", "subgenre_folkrock", "subgenre_garage", "subgenre_hardrock", "subgenre_psychadelic", "subgenre_rock", "subgenre_rockabilly", "subgenre_rockandroll", "subgenre_surf", "subgenre_other"},
	"southernrock":       {"subgenre_southernrock"},
	"world":              {"subgenre_world"},
	"other":              {"subgenre_acapella", "subgenre_acoustic", "subgenre_contemporaryfolk", "subgenre_experimental", "subgenre_oldies", "subgenre_other"},
}

// SubGenresOf returns the sub-genre tokens allowed under genre.
func SubGenresOf(genre string) []string {
	return slices.Clone(subGenres[genre])
}

// IsSubGenreOf reports whether subGenre may be paired with genre.
func IsSubGenreOf(genre, subGenre string) bool {
	return slices.Contains(subGenres[genre], subGenre)
}
