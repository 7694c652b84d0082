// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dta_test

import (
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/taibuivan/dtakit/internal/dta"
	"github.com/taibuivan/dtakit/internal/dta/builder"
	"github.com/taibuivan/dtakit/internal/dta/charset"
	"github.com/taibuivan/dtakit/internal/dta/dtaerr"
	"github.com/taibuivan/dtakit/internal/dta/render"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

const partialText = `(a (name "First") (rank (drum 100)))
(b (name "Second"))
(a (name "Duplicate"))
`

func named(id, name string) *song.Record {
	return &song.Record{ID: id, Name: pointer.To(name)}
}

/*
TestLoad_Partial verifies splitting, projection and first-wins handling of
repeated ids.
*/
func TestLoad_Partial(t *testing.T) {
	document, err := dta.Load([]byte(partialText), song.Partial)
	require.NoError(t, err)

	assert.Equal(t, 2, document.Len())
	assert.Equal(t, []string{"a"}, document.Duplicates())
	assert.Equal(t, charset.Latin1, document.Charset())

	first, ok := document.Song("a")
	require.True(t, ok)
	assert.Equal(t, "First", pointer.Val(first.Name))
	assert.Equal(t, 100, pointer.Val(first.RankDrum))

	_, ok = document.Song("missing")
	assert.False(t, ok)
}

/*
TestLoad_Errors maps each failure to its engine error kind.
*/
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mode song.Mode
		kind error
	}{
		{"unbalanced", []byte(`(a (name "x")`), song.Partial, dtaerr.ErrMalformedDocument},
		{"incomplete_record", []byte(`(a (name "x"))`), song.Complete, dtaerr.ErrSchemaViolation},
		{"utf16", []byte{0xff, 0xfe, '(', 0, 'a', 0, ')', 0}, song.Partial, dtaerr.ErrEncodingFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dta.Load(tt.data, tt.mode)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, dta.IsEngineError(err))
		})
	}
}

/*
TestMerge covers matched overlays, last-wins updates and the handling of
unmatched records per mode.
*/
func TestMerge(t *testing.T) {
	t.Run("overlay_keeps_other_fields", func(t *testing.T) {
		base, err := dta.Load([]byte(`(a (name "X") (rank (drum 100)))`), song.Partial)
		require.NoError(t, err)
		update, err := dta.Load([]byte(`(a (rank (drum 300)))`), song.Partial)
		require.NoError(t, err)

		result := base.Merge(update, false)
		assert.Equal(t, dta.MergeResult{Updated: 1}, result)

		record, _ := base.Song("a")
		assert.Equal(t, 300, pointer.Val(record.RankDrum))
		assert.Equal(t, "X", pointer.Val(record.Name))
	})

	t.Run("last_update_wins", func(t *testing.T) {
		base := dta.New(song.Partial, named("a", "Old"))
		update := dta.New(song.Partial, named("a", "Middle"))
		second := dta.New(song.Partial, named("a", "Last"))

		base.Merge(update, false)
		base.Merge(second, false)

		record, _ := base.Song("a")
		assert.Equal(t, "Last", pointer.Val(record.Name))
	})

	t.Run("complete_drops_unmatched", func(t *testing.T) {
		record, err := builder.Build(builder.Params{
			ID: "built", Name: "Built", Artist: "Band", YearReleased: 2001,
			Guitar: &builder.Guitar{Part: builder.Part{Channels: 2, Rank: "1"}},
		})
		require.NoError(t, err)

		base := dta.New(song.Complete, record)
		result := base.Merge(dta.New(song.Partial, named("other", "Other")), true)

		assert.Equal(t, dta.MergeResult{Dropped: 1}, result)
		assert.Equal(t, 1, base.Len())
	})

	t.Run("partial_inserts_on_request", func(t *testing.T) {
		base := dta.New(song.Partial, named("a", "A"))

		result := base.Merge(dta.New(song.Partial, named("b", "B")), true)
		assert.Equal(t, dta.MergeResult{Inserted: 1}, result)
		assert.Equal(t, 2, base.Len())

		result = base.Merge(dta.New(song.Partial, named("c", "C")), false)
		assert.Equal(t, dta.MergeResult{Dropped: 1}, result)
	})

	t.Run("update_records_are_not_aliased", func(t *testing.T) {
		patch := named("b", "B")
		base := dta.New(song.Partial)
		base.Merge(dta.New(song.Partial, patch), true)

		patch.Name = pointer.To("Changed")
		record, _ := base.Song("b")
		assert.Equal(t, "B", pointer.Val(record.Name))
	})
}

func TestUpdateAll(t *testing.T) {
	document := dta.New(song.Partial, named("a", "A"), named("b", "B"))
	document.UpdateAll(&song.Record{ID: "ignored", Genre: pointer.To("rock")})

	for _, record := range document.Records() {
		assert.Equal(t, "rock", pointer.Val(record.Genre))
		assert.NotEqual(t, "ignored", record.ID)
	}
}

/*
TestHash_OrderIndependent checks that record order does not change the
digest while content does.
*/
func TestHash_OrderIndependent(t *testing.T) {
	forward := dta.New(song.Partial, named("a", "A"), named("b", "B"))
	backward := dta.New(song.Partial, named("b", "B"), named("a", "A"))

	forwardHash, err := forward.Hash()
	require.NoError(t, err)
	backwardHash, err := backward.Hash()
	require.NoError(t, err)

	assert.Equal(t, forwardHash, backwardHash)
	assert.Len(t, forwardHash, 64)

	changed := dta.New(song.Partial, named("a", "A"), named("b", "Other"))
	changedHash, err := changed.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, forwardHash, changedHash)
}

/*
TestHash_EncodedBytes digests the Latin-1 bytes of a Latin-1 document rather
than its UTF-8 text.
*/
func TestHash_EncodedBytes(t *testing.T) {
	document, err := dta.Load([]byte("(a (name \"Caf\xe9\"))"), song.Partial)
	require.NoError(t, err)
	require.Equal(t, charset.Latin1, document.Charset())

	data, err := document.Bytes(dta.CanonicalOptions(song.Partial))
	require.NoError(t, err)
	require.Contains(t, string(data), "Caf\xe9")

	digest, err := document.Hash()
	require.NoError(t, err)
	sum := blake2b.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), digest)

	text, err := document.Render(dta.CanonicalOptions(song.Partial))
	require.NoError(t, err)
	textSum := blake2b.Sum256([]byte(text))
	assert.NotEqual(t, hex.EncodeToString(textSum[:]), digest)
}

func TestPatchSongIDs(t *testing.T) {
	textual := named("a", "A")
	textual.SongID = pointer.To(song.SongID("mysong"))
	numeric := named("b", "B")
	numeric.SongID = pointer.To(song.IntID(1234))

	document := dta.New(song.Partial, textual, numeric, named("c", "C"))
	assert.Equal(t, 1, document.PatchSongIDs())

	a, _ := document.Song("a")
	assert.Equal(t, song.SongID("2131211554"), pointer.Val(a.SongID))
	b, _ := document.Song("b")
	assert.Equal(t, song.SongID("1234"), pointer.Val(b.SongID))
	assert.Equal(t, song.SongID("mysong"), pointer.Val(textual.SongID))
}

func TestPatchEncodings(t *testing.T) {
	accented, err := dta.Load([]byte("(a (name \"Caf\xe9\") (encoding latin1))"), song.Partial)
	require.NoError(t, err)
	assert.Equal(t, charset.Latin1, accented.Charset())

	assert.Equal(t, 1, accented.PatchEncodings())
	record, _ := accented.Song("a")
	assert.Equal(t, "utf8", pointer.Val(record.Encoding))
	assert.Equal(t, charset.UTF8, accented.Charset())
}

/*
TestBytes_Latin1 ensures a Latin-1 document is written back in Latin-1.
*/
func TestBytes_Latin1(t *testing.T) {
	document, err := dta.Load([]byte("(a (name \"Caf\xe9\"))"), song.Partial)
	require.NoError(t, err)

	record, _ := document.Song("a")
	assert.Equal(t, "Café", pointer.Val(record.Name))

	data, err := document.Bytes(render.DefaultOptions(song.Partial))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Caf\xe9")
}

/*
TestRender_BuiltDocument loads back the authoring rendering of a built
document.
*/
func TestRender_BuiltDocument(t *testing.T) {
	record, err := builder.Build(builder.Params{
		ID: "built", Name: "Built", Artist: "Band", YearReleased: 2001,
		Drum: &builder.Drum{Part: builder.Part{Channels: 2, Rank: "3"}},
	})
	require.NoError(t, err)

	opts := render.DefaultOptions(song.Complete)
	opts.Dialect = render.Authoring

	data, err := dta.New(song.Complete, record).Bytes(opts)
	require.NoError(t, err)

	loaded, err := dta.Load(data, song.Complete)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, record, loaded.Records()[0])
}

/*
TestArchiveOptions_PartialRoundTrip keeps author fields of partial records
through a store and reload cycle.
*/
func TestArchiveOptions_PartialRoundTrip(t *testing.T) {
	record := named("a", "Song")
	record.Author = pointer.To("Charter")

	data, err := dta.New(song.Partial, record).Bytes(dta.ArchiveOptions(song.Partial))
	require.NoError(t, err)

	loaded, err := dta.Load(data, song.Partial)
	require.NoError(t, err)

	reloaded, ok := loaded.Song("a")
	require.True(t, ok)
	assert.Equal(t, "Charter", pointer.Val(reloaded.Author))
	assert.Equal(t, "Song", pointer.Val(reloaded.Name))
}

/*
TestArchiveOptions_NestedFields keeps unknown song and rank fields and the
dry_vox block of partial records through a store and reload cycle.
*/
func TestArchiveOptions_NestedFields(t *testing.T) {
	source := `(a (song (name "songs/a/a") (midi_file "songs/a/a.mid")) (dry_vox (part0 (tracks 1))) (rank (drum 0) (real_drums 250)) (name "A"))`

	document, err := dta.Load([]byte(source), song.Partial)
	require.NoError(t, err)

	for _, opts := range []render.Options{dta.ArchiveOptions(song.Partial), render.DefaultOptions(song.Partial)} {
		text, err := document.Render(opts)
		require.NoError(t, err)
		assert.Contains(t, text, "midi_file")
		assert.Contains(t, text, "real_drums")
		assert.Contains(t, text, "(part0 (tracks 1))")

		reloaded, err := dta.Load([]byte(text), song.Partial)
		require.NoError(t, err)
		assert.Equal(t, document.Records(), reloaded.Records())
	}

	compact := render.DefaultOptions(song.Partial)
	compact.CompactPartialLayout = true
	text, err := document.Render(compact)
	require.NoError(t, err)
	assert.Equal(t, "(a (name \"A\") (song (name \"songs/a/a\") (midi_file \"songs/a/a.mid\")) (dry_vox (part0 (tracks 1))) (rank (drum 0) (real_drums 250)))\n", text)
}

/*
TestArchiveOptions_ExactFloats stores floats the dialects cannot round
without loss, while a dialect render refuses them.
*/
func TestArchiveOptions_ExactFloats(t *testing.T) {
	source := `(a (song (name "songs/a/a") (pans (-0.125 0.125)) (vols (0.0 -2.75))) (guide_pitch_volume -2.75))`

	document, err := dta.Load([]byte(source), song.Partial)
	require.NoError(t, err)

	data, err := document.Bytes(dta.ArchiveOptions(song.Partial))
	require.NoError(t, err)

	reloaded, err := dta.Load(data, song.Partial)
	require.NoError(t, err)
	record, _ := reloaded.Song("a")
	assert.Equal(t, []float64{-0.125, 0.125}, record.Pans)
	assert.Equal(t, []float64{0, -2.75}, record.Vols)
	assert.Equal(t, -2.75, pointer.Val(record.GuidePitchVolume))

	_, err = document.Hash()
	require.NoError(t, err)

	for _, dialect := range render.Dialects {
		opts := render.DefaultOptions(song.Partial)
		opts.Dialect = dialect
		_, err := document.Render(opts)
		assert.ErrorIs(t, err, dtaerr.ErrValueRange, dialect)
	}
}

func TestLoadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/songs.dta" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(partialText))
	}))
	defer server.Close()

	document, err := dta.LoadURL(context.Background(), server.Client(), server.URL+"/songs.dta", song.Partial)
	require.NoError(t, err)
	assert.Equal(t, 2, document.Len())

	_, err = dta.LoadURL(context.Background(), server.Client(), server.URL+"/missing.dta", song.Partial)
	assert.ErrorContains(t, err, "status 404")

	_, err = dta.LoadURL(context.Background(), nil, "ftp://example.com/songs.dta", song.Partial)
	assert.ErrorContains(t, err, "invalid dta url")
}
