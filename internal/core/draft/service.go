// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dhowden/tag"
	"github.com/h2non/filetype"

	"github.com/taibuivan/dtakit/internal/dta"
	"github.com/taibuivan/dtakit/internal/dta/builder"
	"github.com/taibuivan/dtakit/internal/dta/locale"
	"github.com/taibuivan/dtakit/internal/dta/render"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/internal/platform/apperr"
	"github.com/taibuivan/dtakit/internal/platform/ctxutil"
	"github.com/taibuivan/dtakit/internal/platform/validate"
	"github.com/taibuivan/dtakit/pkg/slice"
)

// Service builds drafts.
type Service struct {
	logger *slog.Logger
}

// NewService creates a new draft [Service].
func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// # Drafts

// Create builds a record from params and renders it in dialect.
func (service *Service) Create(ctx context.Context, params builder.Params, dialect string) (*Draft, error) {
	draft, err := service.build(params, dialect)
	if err != nil {
		return nil, err
	}

	service.logger.Info("draft_created",
		slog.String("song_id", draft.Record.ID),
		slog.String("actor", ctxutil.Actor(ctx)),
	)
	return draft, nil
}

/*
FromAudio builds a record seeded from the tags of an audio file.

Description: Tag values only fill parameters left empty by overrides. A
genre tag is used when it names a known genre. Without any instrument in
overrides the draft gets a stereo guitar part at the lowest tier.
*/
func (service *Service) FromAudio(ctx context.Context, data []byte, overrides builder.Params, dialect string) (*Draft, error) {
	if !filetype.IsAudio(data) {
		kind, _ := filetype.Match(data)
		return nil, apperr.Unprocessable(fmt.Sprintf("Expected an audio file, got %s", describeKind(kind.MIME.Value)))
	}

	metadata, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, apperr.Unprocessable("The audio file carries no tags")
		}
		return nil, apperr.Unprocessable(fmt.Sprintf("Unreadable audio tags: %v", err))
	}

	source := readTags(metadata)
	params := seed(overrides, source)

	draft, err := service.build(params, dialect)
	if err != nil {
		return nil, err
	}
	draft.Source = source

	service.logger.Info("draft_created_from_audio",
		slog.String("song_id", draft.Record.ID),
		slog.String("format", source.Format),
		slog.String("actor", ctxutil.Actor(ctx)),
	)
	return draft, nil
}

func (service *Service) build(params builder.Params, dialect string) (*Draft, error) {
	parsed, ok := render.ParseDialect(dialect)
	if err := new(validate.Validator).
		Custom(FieldDialect, !ok, "Must be one of: authoring, distribution-a, distribution-b").
		Err(); err != nil {
		return nil, err
	}

	record, err := builder.Build(params)
	if err != nil {
		return nil, engineError(err)
	}

	opts := render.DefaultOptions(song.Complete)
	opts.Dialect = parsed
	text, err := dta.New(song.Complete, record).Render(opts)
	if err != nil {
		return nil, engineError(err)
	}

	return &Draft{Record: record, Dialect: string(parsed), Text: text, Params: params}, nil
}

func readTags(metadata tag.Metadata) *AudioTags {
	track, _ := metadata.Track()
	artist := metadata.Artist()
	if artist == "" {
		artist = metadata.AlbumArtist()
	}
	return &AudioTags{
		Format:   string(metadata.Format()),
		FileType: string(metadata.FileType()),
		Title:    strings.TrimSpace(metadata.Title()),
		Artist:   strings.TrimSpace(artist),
		Album:    strings.TrimSpace(metadata.Album()),
		Genre:    strings.TrimSpace(metadata.Genre()),
		Year:     metadata.Year(),
		Track:    track,
	}
}

// seed fills the empty fields of params from source.
func seed(params builder.Params, source *AudioTags) builder.Params {
	if params.Name == "" {
		params.Name = source.Title
	}
	if params.Artist == "" {
		params.Artist = source.Artist
	}
	if params.AlbumName == "" {
		params.AlbumName = source.Album
	}
	if params.AlbumTrackNumber == nil && source.Track > 0 {
		track := source.Track
		params.AlbumTrackNumber = &track
	}
	if params.YearReleased == 0 {
		params.YearReleased = source.Year
	}
	if params.Genre == "" {
		if token, ok := locale.Genre.Resolve(source.Genre); ok {
			params.Genre = token
		}
	}
	if params.ID == "" {
		params.ID = song.ShortName(params.Name)
	}
	if params.Drum == nil && params.Bass == nil && params.Guitar == nil && params.Vocals == nil && params.Keys == nil {
		params.Guitar = &builder.Guitar{Part: builder.Part{Channels: 2, Rank: builder.TierOf(0)}}
	}
	return params
}

func describeKind(mime string) string {
	if mime == "" {
		return "an unknown format"
	}
	return mime
}

func engineError(err error) error {
	if dta.IsEngineError(err) {
		return apperr.FromEngine(err)
	}
	return err
}

// # Locale

// Tables lists the names of the locale tables.
func (service *Service) Tables() []string {
	return locale.TableNames()
}

// Table returns the entries of a locale table.
func (service *Service) Table(name string) ([]locale.Entry, error) {
	table, ok := locale.Lookup(name)
	if !ok {
		return nil, apperr.NotFound("Locale table")
	}
	return table.Entries(), nil
}

// SubGenres lists the legal sub-genres of a genre given by token or name.
func (service *Service) SubGenres(genre string) (*SubGenreList, error) {
	token, ok := locale.Genre.Resolve(genre)
	if !ok {
		return nil, apperr.NotFound("Genre")
	}

	entries := slice.Map(locale.SubGenresOf(token), func(sub string) locale.Entry {
		return locale.Entry{Token: sub, Name: locale.SubGenre.Name(sub)}
	})
	return &SubGenreList{
		Genre:     locale.Entry{Token: token, Name: locale.Genre.Name(token)},
		SubGenres: entries,
	}, nil
}
