// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dtakit/internal/core/document"
	"github.com/taibuivan/dtakit/internal/dta/charset"
	"github.com/taibuivan/dtakit/internal/dta/order"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/internal/platform/apperr"
	"github.com/taibuivan/dtakit/internal/platform/ctxutil"
	"github.com/taibuivan/dtakit/internal/platform/sec"
	"github.com/taibuivan/dtakit/pkg/pagination"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

func charterContext() context.Context {
	return ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: "charter-1", Role: string(sec.RoleCharter)})
}

func upload(t *testing.T, service *document.Service, text string) *document.Document {
	t.Helper()
	doc, err := service.Upload(charterContext(), document.UploadInput{Mode: "partial", FileName: "songs.dta", Data: []byte(text)})
	require.NoError(t, err)
	return doc
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	return appErr.HTTPStatus
}

/*
TestUpload stores a partial document with its song rows and rejects a second
copy of the same content.
*/
func TestUpload(t *testing.T) {
	service, repo, _ := newService()

	doc := upload(t, service, partialText)

	assert.Equal(t, "songs", doc.Title)
	assert.Equal(t, "songs", doc.Slug)
	assert.Equal(t, "partial", doc.Mode)
	assert.Equal(t, string(charset.Latin1), doc.Charset)
	assert.Equal(t, 3, doc.SongCount)
	assert.Equal(t, "charter-1", doc.CreatedBy)
	assert.Equal(t, []string{"a"}, doc.Duplicates)
	assert.Len(t, doc.Hash, 64)
	assert.Equal(t, int64(len(doc.Content)), doc.SizeBytes)

	songs := repo.songs[doc.ID]
	require.Len(t, songs, 3)
	assert.Equal(t, "First", songs[0].Name)
	assert.Equal(t, "3 minutes 25 seconds", songs[0].LengthHuman)

	// Record order does not change the canonical hash.
	_, err := service.Upload(charterContext(), document.UploadInput{
		Mode: "partial",
		Data: []byte("(c (name \"Alpha\") (artist \"Band\"))\n(b (name \"Second\") (artist \"Other Band\"))\n(a (name \"First\") (artist \"Band\") (genre rock) (song_length 205000))"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

/*
TestUpload_Rejections maps each invalid upload to its status and code.
*/
func TestUpload_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		input  document.UploadInput
		status int
		code   string
	}{
		{"binary_png", document.UploadInput{Data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")}, http.StatusUnprocessableEntity, "UNPROCESSABLE"},
		{"malformed", document.UploadInput{Mode: "partial", Data: []byte(`(a (name "x")`)}, http.StatusUnprocessableEntity, "MALFORMED_DOCUMENT"},
		{"incomplete_record", document.UploadInput{Mode: "complete", Data: []byte(`(a (name "x"))`)}, http.StatusBadRequest, "SCHEMA_VIOLATION"},
		{"unknown_mode", document.UploadInput{Mode: "full", Data: []byte(`(a (name "x"))`)}, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newService()

			_, err := service.Upload(charterContext(), tt.input)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}

	t.Run("schema_violation_lists_fields", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.Upload(charterContext(), document.UploadInput{Mode: "complete", Data: []byte(`(a (name "x"))`)})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.NotEmpty(t, appErr.Details)
	})
}

/*
TestImportBatch keeps one result per file, in input order, and isolates
failures.
*/
func TestImportBatch(t *testing.T) {
	service, repo, _ := newService()

	results := service.ImportBatch(charterContext(), "partial", []document.UploadInput{
		{FileName: "one.dta", Data: []byte(`(one (name "One"))`)},
		{FileName: "broken.dta", Data: []byte(`(two (name "Two")`)},
		{FileName: "three.dta", Data: []byte(`(three (name "Three"))`)},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "one.dta", results[0].FileName)
	assert.NotNil(t, results[0].Document)
	assert.Equal(t, "broken.dta", results[1].FileName)
	assert.Equal(t, "MALFORMED_DOCUMENT", results[1].Code)
	assert.Nil(t, results[1].Document)
	assert.NotNil(t, results[2].Document)
	assert.Len(t, repo.documents, 2)
}

func TestImportURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pack/songs.dta" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(partialText))
	}))
	defer server.Close()

	service, _, _ := newService()

	doc, err := service.ImportURL(charterContext(), document.ImportInput{URL: server.URL + "/pack/songs.dta", Mode: "partial"})
	require.NoError(t, err)
	assert.Equal(t, "songs", doc.Title)
	assert.Equal(t, 3, doc.SongCount)

	_, err = service.ImportURL(charterContext(), document.ImportInput{URL: server.URL + "/missing.dta", Mode: "partial"})
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))

	_, err = service.ImportURL(charterContext(), document.ImportInput{URL: "ftp://example.com/songs.dta"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

/*
TestRender_Cached serves the second identical render from the cache without
reading the repository.
*/
func TestRender_Cached(t *testing.T) {
	service, repo, cache := newService()
	doc := upload(t, service, partialText)

	first, err := service.Render(context.Background(), doc.ID, document.RenderQuery{})
	require.NoError(t, err)
	assert.Contains(t, string(first.Body), `"First"`)
	assert.Equal(t, doc.Hash, first.Hash)
	assert.Equal(t, charset.Latin1, first.Charset)

	finds := repo.findCount()
	second, err := service.Render(context.Background(), doc.ID, document.RenderQuery{Dialect: "DISTRIBUTION-A"})
	require.NoError(t, err)
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, finds, repo.findCount())
	assert.Equal(t, 1, cache.renderHits)

	_, err = service.Render(context.Background(), doc.ID, document.RenderQuery{Dialect: "xml"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.Render(context.Background(), doc.ID, document.RenderQuery{WiiGen: "sZAE", WiiSlot: 0})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

/*
TestRender_CachedCharset serves cached renderings in the charset they were
encoded in, even when the bytes alone read as another one.
*/
func TestRender_CachedCharset(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		charset charset.Charset
	}{
		{"utf8_ascii_body", "\xef\xbb\xbf(a (name \"First\"))\n", charset.UTF8},
		{"latin1_ascii_body", "(a (name \"First\"))\n", charset.Latin1},
		{"utf8_accented", "(a (name \"Caf\xc3\xa9\"))\n", charset.UTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, cache := newService()
			doc := upload(t, service, tt.data)

			first, err := service.Render(context.Background(), doc.ID, document.RenderQuery{})
			require.NoError(t, err)
			assert.Equal(t, tt.charset, first.Charset)

			second, err := service.Render(context.Background(), doc.ID, document.RenderQuery{})
			require.NoError(t, err)
			assert.Equal(t, 1, cache.renderHits)
			assert.Equal(t, first.Body, second.Body)
			assert.Equal(t, tt.charset, second.Charset)
		})
	}
}

/*
TestMerge updates matched records, changes the hash and drops renderings of
the previous content.
*/
func TestMerge(t *testing.T) {
	service, _, cache := newService()
	doc := upload(t, service, partialText)

	_, err := service.Render(context.Background(), doc.ID, document.RenderQuery{})
	require.NoError(t, err)

	outcome, err := service.Merge(charterContext(), doc.ID, []byte("(a (name \"Renamed\"))\n(z (name \"New\"))"), true)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Updated)
	assert.Equal(t, 1, outcome.Inserted)
	assert.Equal(t, 4, outcome.Document.SongCount)
	assert.NotEqual(t, doc.Hash, outcome.Document.Hash)
	assert.Equal(t, []string{doc.Hash}, cache.invalidated)
	assert.Empty(t, cache.renders)

	record, err := service.Song(context.Background(), doc.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", pointer.Val(record.Name))
	assert.Equal(t, "Band", pointer.Val(record.Artist))
}

/*
TestMutation_Conflict refuses to write over a version changed since it was
read and leaves the cache alone.
*/
func TestMutation_Conflict(t *testing.T) {
	service, repo, cache := newService()
	doc := upload(t, service, partialText)

	repo.beforeUpdate = func(documents map[string]*document.Document) {
		documents[doc.ID].Hash = "changed-elsewhere"
	}

	_, err := service.PatchEncodings(charterContext(), doc.ID)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.Empty(t, cache.invalidated)
}

/*
TestUpdateAll resolves display names to tokens and checks sub-genre
legality against the genre of every record.
*/
func TestUpdateAll(t *testing.T) {
	t.Run("display_names", func(t *testing.T) {
		service, _, _ := newService()
		doc := upload(t, service, partialText)

		_, err := service.UpdateAll(charterContext(), doc.ID, &song.Record{Genre: pointer.To("Rock"), SubGenre: pointer.To("subgenre_hardrock")})
		require.NoError(t, err)

		record, err := service.Song(context.Background(), doc.ID, "b")
		require.NoError(t, err)
		assert.Equal(t, "rock", pointer.Val(record.Genre))
		assert.Equal(t, "subgenre_hardrock", pointer.Val(record.SubGenre))
	})

	tests := []struct {
		name    string
		overlay *song.Record
	}{
		{"unknown_genre", &song.Record{Genre: pointer.To("polka")}},
		{"illegal_pair", &song.Record{Genre: pointer.To("jazz"), SubGenre: pointer.To("subgenre_hardrock")}},
		{"illegal_for_record", &song.Record{SubGenre: pointer.To("subgenre_acidjazz")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newService()
			doc := upload(t, service, partialText)

			_, err := service.UpdateAll(charterContext(), doc.ID, tt.overlay)
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		})
	}
}

func TestPatches(t *testing.T) {
	service, _, _ := newService()
	doc := upload(t, service, "(a (name \"A\") (song_id mysong))\n(b (name \"Caf\xe9\"))")

	outcome, err := service.PatchSongIDs(charterContext(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Patched)

	record, err := service.Song(context.Background(), doc.ID, "a")
	require.NoError(t, err)
	assert.True(t, pointer.Val(record.SongID).IsNumeric())

	outcome, err = service.PatchEncodings(charterContext(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Patched)
	assert.Equal(t, string(charset.UTF8), outcome.Document.Charset)
}

/*
TestSongs sorts and filters summaries while keeping document positions.
*/
func TestSongs(t *testing.T) {
	service, _, _ := newService()
	doc := upload(t, service, partialText)

	songs, err := service.Songs(context.Background(), doc.ID, document.SongQuery{SortBy: "title"})
	require.NoError(t, err)
	require.Len(t, songs, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{songs[0].Key, songs[1].Key, songs[2].Key})
	assert.Equal(t, []int{2, 0, 1}, []int{songs[0].Position, songs[1].Position, songs[2].Position})

	songs, err = service.Songs(context.Background(), doc.ID, document.SongQuery{Filter: order.Filter{Keys: pointer.To(true)}})
	require.NoError(t, err)
	assert.Empty(t, songs)

	_, err = service.Songs(context.Background(), doc.ID, document.SongQuery{SortBy: "length"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.Song(context.Background(), doc.ID, "missing")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestHeaders(t *testing.T) {
	service, _, _ := newService()
	doc := upload(t, service, partialText)

	tests := []struct {
		name   string
		query  document.HeaderQuery
		status int
	}{
		{"title", document.HeaderQuery{View: order.ViewTitle}, http.StatusOK},
		{"artist", document.HeaderQuery{View: order.ViewArtist}, http.StatusOK},
		{"difficulty_default_band", document.HeaderQuery{View: order.ViewDifficulty}, http.StatusOK},
		{"unknown_view", document.HeaderQuery{View: "tempo"}, http.StatusBadRequest},
		{"unknown_instrument", document.HeaderQuery{View: order.ViewDifficulty, Instrument: "kazoo"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := service.Headers(context.Background(), doc.ID, tt.query)
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, statusOf(t, err))
				return
			}
			require.NoError(t, err)

			counted := 0
			for _, header := range view.Headers {
				counted += header.Count
			}
			assert.Equal(t, 3, counted)
		})
	}
}

func TestSearchSongs(t *testing.T) {
	service, _, _ := newService()
	upload(t, service, partialText)

	songs, total, err := service.SearchSongs(context.Background(), " band ", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, "Alpha", songs[0].Name)
	assert.Equal(t, "3 minutes 25 seconds", songs[1].LengthHuman)
}

func TestDelete(t *testing.T) {
	service, _, cache := newService()
	doc := upload(t, service, partialText)

	_, err := service.Hash(context.Background(), doc.ID)
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), doc.ID))
	assert.Empty(t, cache.hashes)

	_, err = service.Get(context.Background(), doc.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = service.Delete(context.Background(), "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}
