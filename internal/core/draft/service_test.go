// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft_test

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dtakit/internal/core/draft"
	"github.com/taibuivan/dtakit/internal/dta/builder"
	"github.com/taibuivan/dtakit/internal/platform/apperr"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// # Fixtures

func newService() *draft.Service {
	return draft.NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func minimalParams() builder.Params {
	return builder.Params{
		ID:           "nightdrive",
		Name:         "Night Drive",
		Artist:       "The Band",
		YearReleased: 2020,
		Guitar:       &builder.Guitar{Part: builder.Part{Channels: 2, Rank: "Solid"}},
	}
}

// textFrame encodes an ID3v2.3 text frame in ISO-8859-1.
func textFrame(id, text string) []byte {
	body := append([]byte{0x00}, text...)
	frame := binary.BigEndian.AppendUint32([]byte(id), uint32(len(body)))
	frame = append(frame, 0x00, 0x00)
	return append(frame, body...)
}

// taggedMP3 returns an ID3v2.3 tag followed by one MPEG frame header.
func taggedMP3(frames ...[]byte) []byte {
	var body []byte
	for _, frame := range frames {
		body = append(body, frame...)
	}

	size := len(body)
	data := []byte{'I', 'D', '3', 0x03, 0x00, 0x00,
		byte(size >> 21 & 0x7f), byte(size >> 14 & 0x7f), byte(size >> 7 & 0x7f), byte(size & 0x7f)}
	data = append(data, body...)
	return append(data, 0xFF, 0xFB, 0x90, 0x00)
}

func nightDriveMP3() []byte {
	return taggedMP3(
		textFrame("TIT2", "Night Drive"),
		textFrame("TPE1", "The Band"),
		textFrame("TALB", "Late Hours"),
		textFrame("TYER", "2004"),
		textFrame("TRCK", "3/12"),
		textFrame("TCON", "Rock"),
	)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	return appErr.HTTPStatus
}

// # Tests

func TestCreate(t *testing.T) {
	service := newService()

	created, err := service.Create(context.Background(), minimalParams(), "authoring")
	require.NoError(t, err)

	assert.Equal(t, "nightdrive", created.Record.ID)
	assert.Equal(t, "authoring", created.Dialect)
	assert.Contains(t, created.Text, "Night Drive")
	assert.Nil(t, created.Source)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*builder.Params)
		dialect string
		status  int
	}{
		{"unknown_dialect", func(*builder.Params) {}, "wii-extended", http.StatusBadRequest},
		{"missing_name", func(params *builder.Params) { params.Name = "" }, "", http.StatusUnprocessableEntity},
		{"spaced_id", func(params *builder.Params) { params.ID = "night drive" }, "", http.StatusUnprocessableEntity},
		{"foreign_sub_genre", func(params *builder.Params) {
			params.Genre = "jazz"
			params.SubGenre = "subgenre_thrash"
		}, "", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := minimalParams()
			tt.mutate(&params)

			_, err := newService().Create(context.Background(), params, tt.dialect)
			require.Error(t, err)
			assert.Equal(t, tt.status, statusOf(t, err))
		})
	}
}

/*
TestFromAudio seeds every empty parameter from the ID3 tags and falls back to
a guitar part when no instrument is given.
*/
func TestFromAudio(t *testing.T) {
	created, err := newService().FromAudio(context.Background(), nightDriveMP3(), builder.Params{}, "")
	require.NoError(t, err)

	require.NotNil(t, created.Source)
	assert.Equal(t, "Night Drive", created.Source.Title)
	assert.Equal(t, 3, created.Source.Track)

	params := created.Params
	assert.Equal(t, "nightdrive", params.ID)
	assert.Equal(t, "Night Drive", params.Name)
	assert.Equal(t, "The Band", params.Artist)
	assert.Equal(t, "Late Hours", params.AlbumName)
	assert.Equal(t, 2004, params.YearReleased)
	assert.Equal(t, "rock", params.Genre)
	assert.Equal(t, pointer.To(3), params.AlbumTrackNumber)
	require.NotNil(t, params.Guitar)
	assert.Equal(t, 2, params.Guitar.Channels)

	assert.Equal(t, "nightdrive", created.Record.ID)
	assert.Equal(t, pointer.To("rock"), created.Record.Genre)
}

func TestFromAudio_Overrides(t *testing.T) {
	overrides := builder.Params{
		Name: "Night Drive (Live)",
		Drum: &builder.Drum{Part: builder.Part{Channels: 2, Rank: builder.TierOf(3)}},
	}

	created, err := newService().FromAudio(context.Background(), nightDriveMP3(), overrides, "distribution-b")
	require.NoError(t, err)

	assert.Equal(t, "nightdrivelive", created.Record.ID)
	assert.Equal(t, "The Band", created.Params.Artist)
	assert.Nil(t, created.Params.Guitar)
	assert.Equal(t, "distribution-b", created.Dialect)
}

func TestFromAudio_Rejections(t *testing.T) {
	untagged := append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 256)...)

	tests := []struct {
		name string
		data []byte
	}{
		{"not_audio", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")},
		{"plain_text", []byte(`(song (name "x"))`)},
		{"untagged_mp3", untagged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().FromAudio(context.Background(), tt.data, builder.Params{}, "")
			require.Error(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
		})
	}
}

func TestLocale(t *testing.T) {
	service := newService()

	assert.Contains(t, service.Tables(), "genre")

	entries, err := service.Table("genre")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	_, err = service.Table("colors")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	t.Run("sub_genres_by_name", func(t *testing.T) {
		list, err := service.SubGenres("Metal")
		require.NoError(t, err)
		assert.Equal(t, "metal", list.Genre.Token)

		tokens := make([]string, 0, len(list.SubGenres))
		for _, entry := range list.SubGenres {
			tokens = append(tokens, entry.Token)
		}
		assert.Contains(t, tokens, "subgenre_thrash")
	})

	t.Run("unknown_genre", func(t *testing.T) {
		_, err := service.SubGenres("polka-core")
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})
}
