// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// Filter narrows records by instrument support. A nil field is ignored.
type Filter struct {
	// ProGuitarBass keeps songs with (true) or without (false) both PRO
	// guitar and PRO bass charts.
	ProGuitarBass *bool `json:"pro_guitar_bass,omitempty"`

	// Keys keeps songs with (true) or without (false) both keys and PRO
	// keys charts.
	Keys *bool `json:"keys,omitempty"`
}

// Match reports whether record passes every set predicate.
func (filter Filter) Match(record *song.Record) bool {
	if filter.ProGuitarBass != nil {
		hasGuitar := pointer.Val(record.RankRealGuitar) != 0
		hasBass := pointer.Val(record.RankRealBass) != 0
		if *filter.ProGuitarBass && !(hasGuitar && hasBass) {
			return false
		}
		if !*filter.ProGuitarBass && (hasGuitar || hasBass) {
			return false
		}
	}

	if filter.Keys != nil {
		hasKeys := pointer.Val(record.RankKeys) != 0
		hasProKeys := pointer.Val(record.RankRealKeys) != 0
		if *filter.Keys && !(hasKeys && hasProKeys) {
			return false
		}
		if !*filter.Keys && hasKeys {
			return false
		}
	}
	return true
}

// Indexed pairs a record with its position in the source collection.
type Indexed struct {
	Index  int
	Record *song.Record
}

// Apply returns the records passing filter together with their original
// positions.
func Apply(records []*song.Record, filter Filter) []Indexed {
	matched := make([]Indexed, 0, len(records))
	for index, record := range records {
		if filter.Match(record) {
			matched = append(matched, Indexed{Index: index, Record: record})
		}
	}
	return matched
}

// Select returns the records passing filter.
func Select(records []*song.Record, filter Filter) []*song.Record {
	selected := make([]*song.Record, 0, len(records))
	for _, record := range records {
		if filter.Match(record) {
			selected = append(selected, record)
		}
	}
	return selected
}
