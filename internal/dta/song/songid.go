// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import "strings"

// Numeric song ids derived from shortnames land in a reserved range so they
// cannot collide with official content.
const (
	derivedIDModulo = 9999999
	derivedIDBase   = 2130000000
)

var shortnameTable = func() [256]uint32 {
	var table [256]uint32
	for index := range table {
		r := uint32(index)
		for range 8 {
			var polynomial uint32
			if r&1 == 0 {
				polynomial = 0xEDB88320
			}
			r = polynomial ^ (r >> 1)
		}
		table[index] = r ^ 0xFF000000
	}
	return table
}()

// shortnameChecksum is the CRC32 variant used by the RB3 Enhanced mod to
// turn shortnames into score ids. Its table differs from the IEEE one, so
// hash/crc32 cannot be used.
func shortnameChecksum(data []byte) uint32 {
	var checksum uint32
	for _, b := range data {
		checksum = shortnameTable[byte(checksum)^b] ^ (checksum >> 8)
	}
	return checksum
}

// NumericSongID returns id unchanged when it is already numeric, and the
// derived numeric id of the UTF-8 bytes of id otherwise.
func NumericSongID(id SongID) SongID {
	if id.IsNumeric() {
		return id
	}
	checksum := shortnameChecksum([]byte(strings.TrimSpace(string(id))))
	return IntID(int64(checksum%derivedIDModulo) + derivedIDBase)
}
