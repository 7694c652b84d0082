// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dta is the entry point of the DTA document engine.

A [Document] owns an ordered collection of song records loaded from DTA
text (or built in code), and exposes the operations applied to a whole
song list: merging update files, bulk overlays, song id and encoding
patches, rendering and canonical hashing.

# Pipeline

Loading runs charset detection, record splitting, parsing and projection.
Rendering runs the record renderer in the requested dialect and encodes the
result back into the document charset.

# Concurrency

A Document is not safe for concurrent mutation. All operations except
[LoadURL] are synchronous and do no I/O.
*/
package dta

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"slices"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/taibuivan/dtakit/internal/dta/charset"
	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/order"
	"github.com/taibuivan/dtakit/internal/dta/render"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/internal/dta/token"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// DefaultFetchTimeout bounds [LoadURL] when the context has no deadline.
const DefaultFetchTimeout = 5 * time.Second

// # Document

// Document is an ordered list of song records sharing a projection mode.
type Document struct {
	mode    song.Mode
	charset charset.Charset
	records []*song.Record

	// duplicates holds the ids of records dropped at load time because an
	// earlier record used the same id.
	duplicates []string
}

// New creates a document from records. The charset is UTF-8 when any
// record needs it, Latin-1 otherwise.
func New(mode song.Mode, records ...*song.Record) *Document {
	document := &Document{mode: mode, charset: charset.Latin1}
	for _, record := range records {
		document.add(record)
	}
	document.escalateCharset()
	return document
}

// Mode returns the projection mode of the document.
func (document *Document) Mode() song.Mode { return document.mode }

// Charset returns the charset used by [Document.Bytes].
func (document *Document) Charset() charset.Charset { return document.charset }

// Len returns the number of records.
func (document *Document) Len() int { return len(document.records) }

// Records returns the records in document order. The slice is a copy but
// the records are shared.
func (document *Document) Records() []*song.Record {
	return slices.Clone(document.records)
}

// Duplicates lists the ids skipped at load time.
func (document *Document) Duplicates() []string {
	return slices.Clone(document.duplicates)
}

// Song returns the record with the given id.
func (document *Document) Song(id string) (*song.Record, bool) {
	position := document.index(id)
	if position < 0 {
		return nil, false
	}
	return document.records[position], true
}

func (document *Document) index(id string) int {
	return slices.IndexFunc(document.records, func(record *song.Record) bool { return record.ID == id })
}

// add appends a record unless its id is taken. The first record wins.
func (document *Document) add(record *song.Record) bool {
	if document.index(record.ID) >= 0 {
		document.duplicates = append(document.duplicates, record.ID)
		return false
	}
	document.records = append(document.records, record)
	return true
}

// escalateCharset switches the document to UTF-8 once a record carries
// text Latin-1 cannot hold.
func (document *Document) escalateCharset() {
	if document.charset == charset.UTF8 {
		return
	}
	for _, record := range document.records {
		if song.DetectEncoding(record) == song.EncodingUTF8 {
			document.charset = charset.UTF8
			return
		}
	}
}

// # Loading

// Load parses DTA bytes. Records repeating an earlier id are dropped and
// reported by [Document.Duplicates].
func Load(data []byte, mode song.Mode) (*Document, error) {
	text, cs, err := charset.DetectAndDecode(data)
	if err != nil {
		return nil, err
	}

	blocks, err := token.Split(text)
	if err != nil {
		return nil, err
	}

	document := &Document{mode: mode, charset: cs}
	for _, block := range blocks {
		root, err := token.Parse(block.Text)
		if err != nil {
			return nil, fmt.Errorf("record at line %d: %w", block.Line, err)
		}

		record, err := song.Project(root, mode)
		if err != nil {
			return nil, fmt.Errorf("record at line %d: %w", block.Line, err)
		}
		document.add(record)
	}
	return document, nil
}

// LoadFile reads and parses a DTA file.
func LoadFile(path string, mode song.Mode) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dta file: %w", err)
	}
	return Load(data, mode)
}

// LoadURL downloads and parses a DTA file over HTTP(S). Only a 200 response
// is accepted. The body is read in full before parsing starts.
func LoadURL(ctx context.Context, client *http.Client, rawURL string, mode song.Mode) (*Document, error) {
	target, err := url.ParseRequestURI(rawURL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("invalid dta url %q", rawURL)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultFetchTimeout)
		defer cancel()
	}
	if client == nil {
		client = http.DefaultClient
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build dta request: %w", err)
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch dta: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dta: url returned status %d", response.StatusCode)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read dta response: %w", err)
	}
	return Load(data, mode)
}

// # Mutations

// MergeResult counts what [Document.Merge] did with each update record.
type MergeResult struct {
	Updated  int `json:"updated"`
	Inserted int `json:"inserted"`
	Dropped  int `json:"dropped"`
}

// Merge overlays every record of update onto the record with the same id.
// Update records are applied in order, so the last one for an id wins.
// Unmatched records are inserted when insert is set on a partial document
// and dropped otherwise.
func (document *Document) Merge(update *Document, insert bool) MergeResult {
	var result MergeResult
	for _, patch := range update.records {
		position := document.index(patch.ID)
		if position >= 0 {
			merged := document.records[position].Clone()
			merged.Overlay(patch)
			document.records[position] = merged
			result.Updated++
			continue
		}

		if insert && document.mode == song.Partial {
			document.records = append(document.records, patch.Clone())
			result.Inserted++
			continue
		}
		result.Dropped++
	}
	document.escalateCharset()
	return result
}

// UpdateAll overlays the fields set on overlay onto every record. The
// overlay id is ignored.
func (document *Document) UpdateAll(overlay *song.Record) {
	for position, record := range document.records {
		merged := record.Clone()
		merged.Overlay(overlay)
		document.records[position] = merged
	}
	document.escalateCharset()
}

// PatchSongIDs replaces every non-numeric song id with its derived numeric
// id and returns how many records changed.
func (document *Document) PatchSongIDs() int {
	patched := 0
	for position, record := range document.records {
		if record.SongID == nil || record.SongID.IsNumeric() {
			continue
		}
		updated := record.Clone()
		updated.SongID = pointer.To(song.NumericSongID(*record.SongID))
		document.records[position] = updated
		patched++
	}
	return patched
}

// PatchEncodings sets the encoding of every record from its text fields
// and returns how many records changed.
func (document *Document) PatchEncodings() int {
	patched := 0
	for position, record := range document.records {
		encoding := song.DetectEncoding(record)
		if pointer.Val(record.Encoding) == encoding {
			continue
		}
		updated := record.Clone()
		updated.Encoding = pointer.To(encoding)
		document.records[position] = updated
		patched++
	}
	document.escalateCharset()
	return patched
}

// # Output

// Render writes the document as DTA text.
func (document *Document) Render(opts render.Options) (string, error) {
	return render.Records(document.records, document.mode, opts)
}

// Bytes renders the document and encodes it in the document charset.
func (document *Document) Bytes(opts render.Options) ([]byte, error) {
	text, err := document.Render(opts)
	if err != nil {
		return nil, err
	}
	return charset.Encode(text, document.charset)
}

// CanonicalOptions are the render options used by [Document.Hash] and for
// stored canonical content.
func CanonicalOptions(mode song.Mode) render.Options {
	opts := render.DefaultOptions(mode)
	opts.SortBy = order.SortID
	opts.ExactFloats = true
	return opts
}

// ArchiveOptions render a document for storage: authoring layout in
// document order with every author field and unrounded floats, so [Load]
// reads back the same records.
func ArchiveOptions(mode song.Mode) render.Options {
	opts := render.DefaultOptions(mode)
	opts.Dialect = render.Authoring
	opts.IncludeExtendedAuthorFields = true
	opts.ExactFloats = true
	return opts
}

// Hash returns the hex BLAKE2b-256 digest of the canonical rendering,
// encoded in the document charset. It does not depend on record order and
// is recomputed on every call.
func (document *Document) Hash() (string, error) {
	data, err := document.Bytes(CanonicalOptions(document.mode))
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// IsEngineError reports whether err was raised by the engine rather than
// by I/O.
func IsEngineError(err error) bool {
	return dtaerr.As(err) != nil
}
