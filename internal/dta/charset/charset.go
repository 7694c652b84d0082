// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package charset detects and converts the byte encodings DTA files are
written in. Game builds read either Latin-1 or UTF-8, and a document
declares one of them for all of its records.
*/
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
)

// Charset names a supported encoding. The values match the (encoding ...)
// field of a record.
type Charset string

const (
	Latin1 Charset = "latin1"
	UTF8   Charset = "utf8"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Parse reads a charset name. Both "utf8" and "utf-8" are accepted.
func Parse(name string) (Charset, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin1", "latin-1", "iso-8859-1":
		return Latin1, true
	case "utf8", "utf-8":
		return UTF8, true
	default:
		return "", false
	}
}

// Detect picks the charset of raw document bytes. Valid UTF-8 holding at
// least one multi-byte sequence is UTF-8; anything else is Latin-1, which
// maps every byte. UTF-16 and binary input are rejected.
func Detect(data []byte) (Charset, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		return "", dtaerr.EncodingFailure(nil, "UTF-16 documents are not supported")
	}
	if index := bytes.IndexByte(data, 0); index >= 0 {
		return "", dtaerr.EncodingFailure(nil, "NUL byte at offset %d, input looks binary", index)
	}

	body := bytes.TrimPrefix(data, bomUTF8)
	if len(body) != len(data) || (hasHighBytes(body) && utf8.Valid(body)) {
		return UTF8, nil
	}
	return Latin1, nil
}

// Decode converts raw bytes to text using cs.
func Decode(data []byte, cs Charset) (string, error) {
	switch cs {
	case UTF8:
		body := bytes.TrimPrefix(data, bomUTF8)
		if !utf8.Valid(body) {
			return "", dtaerr.EncodingFailure(nil, "input is not valid UTF-8")
		}
		return string(body), nil
	case Latin1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", dtaerr.EncodingFailure(err, "input is not valid Latin-1")
		}
		return string(decoded), nil
	default:
		return "", dtaerr.EncodingFailure(nil, "unsupported charset %q", cs)
	}
}

// DetectAndDecode runs [Detect] then [Decode].
func DetectAndDecode(data []byte) (string, Charset, error) {
	cs, err := Detect(data)
	if err != nil {
		return "", "", err
	}
	text, err := Decode(data, cs)
	if err != nil {
		return "", "", err
	}
	return text, cs, nil
}

// Encode converts text to bytes in cs. A character Latin-1 cannot hold is
// a ValueRange error.
func Encode(text string, cs Charset) ([]byte, error) {
	switch cs {
	case UTF8:
		return []byte(text), nil
	case Latin1:
		encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, dtaerr.ValueRange("text holds characters outside Latin-1: %v", err)
		}
		return encoded, nil
	default:
		return nil, dtaerr.EncodingFailure(nil, "unsupported charset %q", cs)
	}
}

func hasHighBytes(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return true
		}
	}
	return false
}
