// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"
	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"

	"github.com/taibuivan/dtakit/internal/dta"
	"github.com/taibuivan/dtakit/internal/dta/charset"
	"github.com/taibuivan/dtakit/internal/dta/locale"
	"github.com/taibuivan/dtakit/internal/dta/order"
	"github.com/taibuivan/dtakit/internal/dta/rank"
	"github.com/taibuivan/dtakit/internal/dta/render"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/internal/platform/apperr"
	"github.com/taibuivan/dtakit/internal/platform/constants"
	"github.com/taibuivan/dtakit/internal/platform/ctxutil"
	"github.com/taibuivan/dtakit/internal/platform/validate"
	"github.com/taibuivan/dtakit/pkg/pagination"
	"github.com/taibuivan/dtakit/pkg/pointer"
	"github.com/taibuivan/dtakit/pkg/slug"
	"github.com/taibuivan/dtakit/pkg/uuid"
)

const (
	// DefaultTitle names uploads that carry neither a title nor a file name.
	DefaultTitle = "Untitled"

	// DefaultMaxBytes applies when Settings.MaxBytes is not set.
	DefaultMaxBytes = 8 << 20
)

// Settings bound the ingestion work of a [Service].
type Settings struct {
	MaxBytes     int64
	Workers      int
	FetchTimeout time.Duration
}

// Service implements the document operations on top of the engine.
type Service struct {
	repo     Repository
	cache    Cache
	client   *http.Client
	settings Settings
	logger   *slog.Logger
}

// NewService creates a new document [Service].
func NewService(repo Repository, cache Cache, settings Settings, logger *slog.Logger) *Service {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if settings.MaxBytes < 1 {
		settings.MaxBytes = DefaultMaxBytes
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		client:   &http.Client{Timeout: settings.FetchTimeout},
		settings: settings,
		logger:   logger,
	}
}

// # Ingestion

/*
Upload validates and stores a new document.

Description: The body must look like text (binary formats recognized by
their magic numbers are refused) and load through the engine in the
requested mode. A document whose canonical hash is already stored is
rejected with a Conflict.
*/
func (service *Service) Upload(ctx context.Context, input UploadInput) (*Document, error) {
	mode, err := service.parseInput(input.Title, input.Mode)
	if err != nil {
		return nil, err
	}
	if err := service.guard(input.Data); err != nil {
		return nil, err
	}

	engine, err := dta.Load(input.Data, mode)
	if err != nil {
		return nil, engineError(err)
	}

	document, err := service.create(ctx, titleFor(input.Title, input.FileName), engine)
	if err != nil {
		return nil, err
	}

	service.logger.Info("document_uploaded",
		slog.String("document_id", document.ID),
		slog.String("actor", document.CreatedBy),
		slog.String("file_name", input.FileName),
		slog.String("size", humanize.Bytes(uint64(len(input.Data)))),
		slog.Int("songs", document.SongCount),
	)
	return document, nil
}

/*
ImportBatch uploads several files concurrently.

Description: At most Settings.Workers files are processed at once. Each file
gets its own result in input order; one failing file never aborts the
others.
*/
func (service *Service) ImportBatch(ctx context.Context, mode string, files []UploadInput) []BatchResult {
	results := make([]BatchResult, len(files))
	group := sizedwaitgroup.New(service.settings.Workers)

	for index, file := range files {
		group.Add()
		go func() {
			defer group.Done()

			file.Mode = mode
			result := BatchResult{FileName: file.FileName}
			document, err := service.Upload(ctx, file)
			if err != nil {
				result.Error, result.Code = describe(err)
			} else {
				result.Document = document
			}
			results[index] = result
		}()
	}
	group.Wait()

	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
	}
	service.logger.Info("document_batch_imported",
		slog.Int("files", len(files)),
		slog.Int("failed", failed),
	)
	return results
}

// ImportURL fetches a document over HTTP(S) and stores it.
func (service *Service) ImportURL(ctx context.Context, input ImportInput) (*Document, error) {
	mode, err := service.parseInput(input.Title, input.Mode)
	if err != nil {
		return nil, err
	}
	target, parseErr := url.ParseRequestURI(input.URL)
	if err := new(validate.Validator).
		Required(FieldURL, input.URL).
		Custom(FieldURL, input.URL != "" && (parseErr != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == ""),
			"Must be an absolute http or https url").
		Err(); err != nil {
		return nil, err
	}

	engine, err := dta.LoadURL(ctx, service.client, input.URL, mode)
	if err != nil {
		if dta.IsEngineError(err) {
			return nil, engineError(err)
		}
		return nil, apperr.BadGateway("Could not fetch the document", err)
	}

	document, err := service.create(ctx, titleFor(input.Title, input.URL), engine)
	if err != nil {
		return nil, err
	}

	service.logger.Info("document_imported",
		slog.String("document_id", document.ID),
		slog.String("url", input.URL),
		slog.Int("songs", document.SongCount),
	)
	return document, nil
}

func (service *Service) parseInput(title, mode string) (song.Mode, error) {
	parsed, ok := song.ParseMode(mode)
	err := new(validate.Validator).
		MaxLen(FieldTitle, title, constants.MaxTitleLength).
		Custom(FieldMode, !ok, "Must be one of: complete, partial").
		Err()
	return parsed, err
}

// guard refuses payloads recognized as a binary format.
func (service *Service) guard(data []byte) error {
	if int64(len(data)) > service.settings.MaxBytes {
		return apperr.TooLarge(fmt.Sprintf("Document exceeds %s", humanize.IBytes(uint64(service.settings.MaxBytes))))
	}
	kind, err := filetype.Match(data)
	if err == nil && kind != filetype.Unknown {
		return apperr.Unprocessable(fmt.Sprintf("Expected DTA text, got %s (%s)", kind.Extension, kind.MIME.Value))
	}
	return nil
}

func (service *Service) create(ctx context.Context, title string, engine *dta.Document) (*Document, error) {
	document := &Document{
		ID:         uuid.New(),
		Title:      title,
		Slug:       slug.From(title),
		CreatedBy:  ctxutil.Actor(ctx),
		Duplicates: engine.Duplicates(),
	}
	if err := snapshot(document, engine); err != nil {
		return nil, err
	}

	if existing, err := service.repo.FindByHash(ctx, document.Hash); err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Document already stored as %s", existing.ID))
	} else if !isNotFound(err) {
		return nil, err
	}

	if err := service.repo.Create(ctx, document, summarize(engine.Records())); err != nil {
		return nil, err
	}
	return document, nil
}

// snapshot copies the archive rendering and derived fields of engine onto
// document.
func snapshot(document *Document, engine *dta.Document) error {
	content, err := engine.Bytes(dta.ArchiveOptions(engine.Mode()))
	if err != nil {
		return engineError(err)
	}
	hash, err := engine.Hash()
	if err != nil {
		return engineError(err)
	}

	document.Mode = engine.Mode().String()
	document.Charset = string(engine.Charset())
	document.Hash = hash
	document.Content = content
	document.SizeBytes = int64(len(content))
	document.SongCount = engine.Len()
	return nil
}

// # Queries

// List returns a page of documents without content.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]*Document, int, error) {
	return service.repo.List(ctx, params.Limit, params.Offset())
}

// Get returns the metadata of a document.
func (service *Service) Get(ctx context.Context, id string) (*Document, error) {
	if err := new(validate.Validator).UUID("id", id).Err(); err != nil {
		return nil, err
	}
	return service.repo.FindByID(ctx, id)
}

// Rendering is a rendered document ready to be served.
type Rendering struct {
	Body    []byte
	Charset charset.Charset
	Hash    string
}

/*
Render renders a stored document with the requested options.

Description: Renderings are cached under the document hash and a digest of
the normalized query. Hashes are unique per document, so the hash also
fixes the mode the query defaults depend on. A cached hash lets a hit skip
the database entirely.
*/
func (service *Service) Render(ctx context.Context, id string, query RenderQuery) (*Rendering, error) {
	if err := new(validate.Validator).UUID("id", id).Err(); err != nil {
		return nil, err
	}
	query, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	variant := variantKey(query)

	hash, cached := service.cachedHash(ctx, id)
	if cached {
		if rendering, found := service.cachedRender(ctx, hash, variant); found {
			return rendering, nil
		}
	}

	stored, engine, err := service.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cached || hash != stored.Hash {
		service.storeHash(ctx, id, stored.Hash)
		if rendering, found := service.cachedRender(ctx, stored.Hash, variant); found {
			return rendering, nil
		}
	}

	body, err := engine.Bytes(resolveOptions(engine.Mode(), query))
	if err != nil {
		return nil, engineError(err)
	}
	if err := service.cache.SetRender(ctx, stored.Hash, variant, CachedRender{Body: body, Charset: engine.Charset()}); err != nil {
		service.cacheFailure(ctx, "render_cache_set_failed", err)
	}
	return &Rendering{Body: body, Charset: engine.Charset(), Hash: stored.Hash}, nil
}

// cachedRender looks up a rendering together with its stored charset.
func (service *Service) cachedRender(ctx context.Context, hash, variant string) (*Rendering, bool) {
	entry, found, err := service.cache.GetRender(ctx, hash, variant)
	if err != nil {
		service.cacheFailure(ctx, "render_cache_get_failed", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &Rendering{Body: entry.Body, Charset: entry.Charset, Hash: hash}, true
}

// Hash returns the canonical hash of a document.
func (service *Service) Hash(ctx context.Context, id string) (string, error) {
	if err := new(validate.Validator).UUID("id", id).Err(); err != nil {
		return "", err
	}
	if hash, found := service.cachedHash(ctx, id); found {
		return hash, nil
	}

	document, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	service.storeHash(ctx, id, document.Hash)
	return document.Hash, nil
}

// Songs returns the filtered song summaries of a document. Position keeps
// the index of each record in document order.
func (service *Service) Songs(ctx context.Context, id string, query SongQuery) ([]*Song, error) {
	sortBy, ok := order.ParseSortBy(query.SortBy)
	if err := new(validate.Validator).
		UUID("id", id).
		Custom(FieldSort, !ok, "Must be one of: "+strings.Join(sortNames, ", ")).
		Err(); err != nil {
		return nil, err
	}

	_, engine, err := service.load(ctx, id)
	if err != nil {
		return nil, err
	}

	records := engine.Records()
	positions := make(map[*song.Record]int, len(records))
	for index, record := range records {
		positions[record] = index
	}

	selected := order.Sort(order.Select(records, query.Filter), sortBy)
	songs := make([]*Song, 0, len(selected))
	for _, record := range selected {
		songs = append(songs, summary(record, positions[record]))
	}
	return songs, nil
}

// Song returns one full record of a document.
func (service *Service) Song(ctx context.Context, id, key string) (*song.Record, error) {
	if err := new(validate.Validator).UUID("id", id).SongKey("song_id", key).Err(); err != nil {
		return nil, err
	}

	_, engine, err := service.load(ctx, id)
	if err != nil {
		return nil, err
	}
	record, ok := engine.Song(key)
	if !ok {
		return nil, apperr.NotFound("Song")
	}
	return record, nil
}

// Headers groups the records of a document into a header view.
func (service *Service) Headers(ctx context.Context, id string, query HeaderQuery) (order.View, error) {
	if err := new(validate.Validator).
		UUID("id", id).
		OneOf(FieldView, query.View, order.Views...).
		Custom(FieldInstrument, query.Instrument != "" && !rank.Instrument(query.Instrument).Valid(),
			"Must be one of: "+strings.Join(instrumentNames, ", ")).
		Custom("album_threshold", query.AlbumThreshold < 0, "Must not be negative").
		Err(); err != nil {
		return order.View{}, err
	}

	_, engine, err := service.load(ctx, id)
	if err != nil {
		return order.View{}, err
	}
	records := engine.Records()

	switch query.View {
	case order.ViewTitle:
		return order.ByTitle(records, query.Filter), nil
	case order.ViewGenre:
		return order.ByGenre(records, query.Filter), nil
	case order.ViewDifficulty:
		view, err := order.ByDifficulty(records, query.Filter, rank.Instrument(query.Instrument))
		if err != nil {
			return order.View{}, engineError(err)
		}
		return view, nil
	case order.ViewAuthor:
		return order.ByAuthor(records, query.Filter), nil
	case order.ViewYear:
		return order.ByYear(records, query.Filter), nil
	default:
		threshold := query.AlbumThreshold
		if threshold == 0 {
			threshold = order.DefaultAlbumThreshold
		}
		return order.ByArtist(records, query.Filter, threshold), nil
	}
}

// SearchSongs searches the song rows of every document.
func (service *Service) SearchSongs(ctx context.Context, text string, params pagination.Params) ([]*Song, int, error) {
	if err := new(validate.Validator).MaxLen(FieldQuery, text, constants.MaxTitleLength).Err(); err != nil {
		return nil, 0, err
	}

	songs, total, err := service.repo.SearchSongs(ctx, strings.TrimSpace(text), params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	for _, song := range songs {
		song.LengthHuman = humanLength(song.SongLength)
	}
	return songs, total, nil
}

// # Mutations

// Merge applies an update document onto a stored document.
func (service *Service) Merge(ctx context.Context, id string, data []byte, insert bool) (*MergeOutcome, error) {
	if err := service.guard(data); err != nil {
		return nil, err
	}
	update, err := dta.Load(data, song.Partial)
	if err != nil {
		return nil, engineError(err)
	}

	var result dta.MergeResult
	document, err := service.mutate(ctx, id, func(engine *dta.Document) error {
		result = engine.Merge(update, insert)
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("document_merged",
		slog.String("document_id", id),
		slog.Int("updated", result.Updated),
		slog.Int("inserted", result.Inserted),
		slog.Int("dropped", result.Dropped),
	)
	return &MergeOutcome{MergeResult: result, Document: document}, nil
}

/*
UpdateAll overlays the set fields of overlay onto every record.

Description: Genre and sub-genre accept tokens or display names and are
stored as tokens. A sub-genre without a genre must belong to the genre of
every record it lands on.
*/
func (service *Service) UpdateAll(ctx context.Context, id string, overlay *song.Record) (*Document, error) {
	if overlay == nil {
		return nil, apperr.ValidationError("Overlay is required")
	}

	genre, subGenre := pointer.Val(overlay.Genre), pointer.Val(overlay.SubGenre)
	if err := new(validate.Validator).
		Locale(FieldGenre, genre, locale.Genre).
		Locale(FieldSubGenre, subGenre, locale.SubGenre).
		Err(); err != nil {
		return nil, err
	}

	overlay = overlay.Clone()
	if genre != "" {
		token, _ := locale.Genre.Resolve(genre)
		overlay.Genre = pointer.To(token)
	}
	if subGenre != "" {
		token, _ := locale.SubGenre.Resolve(subGenre)
		overlay.SubGenre = pointer.To(token)
	}

	document, err := service.mutate(ctx, id, func(engine *dta.Document) error {
		checks := new(validate.Validator)
		for _, record := range engine.Records() {
			target := pointer.Fallback(overlay.Genre, pointer.Val(record.Genre))
			checks.SubGenre(FieldSubGenre, target, pointer.Val(overlay.SubGenre))
			if checks.HasErrors() {
				break
			}
		}
		if err := checks.Err(); err != nil {
			return err
		}

		engine.UpdateAll(overlay)
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("document_songs_updated",
		slog.String("document_id", id),
		slog.Any("fields", overlay.Keys()),
	)
	return document, nil
}

// PatchSongIDs replaces textual song ids with numeric ones.
func (service *Service) PatchSongIDs(ctx context.Context, id string) (*PatchOutcome, error) {
	return service.patch(ctx, id, "song_ids", (*dta.Document).PatchSongIDs)
}

// PatchEncodings sets the encoding field of every record from its text.
func (service *Service) PatchEncodings(ctx context.Context, id string) (*PatchOutcome, error) {
	return service.patch(ctx, id, "encodings", (*dta.Document).PatchEncodings)
}

func (service *Service) patch(ctx context.Context, id, kind string, apply func(*dta.Document) int) (*PatchOutcome, error) {
	patched := 0
	document, err := service.mutate(ctx, id, func(engine *dta.Document) error {
		patched = apply(engine)
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("document_patched",
		slog.String("document_id", id),
		slog.String("patch", kind),
		slog.Int("patched", patched),
	)
	return &PatchOutcome{Patched: patched, Document: document}, nil
}

// Delete removes a document and drops its cache entries.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := new(validate.Validator).UUID("id", id).Err(); err != nil {
		return err
	}

	hash, _ := service.cachedHash(ctx, id)
	if hash == "" {
		if document, err := service.repo.FindByID(ctx, id); err == nil {
			hash = document.Hash
		}
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := service.cache.Invalidate(ctx, id, hash); err != nil {
		service.cacheFailure(ctx, "cache_invalidate_failed", err)
	}

	service.logger.Info("document_deleted",
		slog.String("document_id", id),
		slog.String("actor", ctxutil.Actor(ctx)),
	)
	return nil
}

/*
mutate loads a document, applies change and writes the result back.

Description: The write is conditional on the hash read here, so two
concurrent mutations cannot both succeed on the same version. The previous
renderings are dropped from the cache afterwards.
*/
func (service *Service) mutate(ctx context.Context, id string, change func(*dta.Document) error) (*Document, error) {
	if err := new(validate.Validator).UUID("id", id).Err(); err != nil {
		return nil, err
	}

	document, engine, err := service.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(engine); err != nil {
		return nil, err
	}

	previousHash := document.Hash
	if err := snapshot(document, engine); err != nil {
		return nil, err
	}
	if err := service.repo.Update(ctx, document, previousHash, summarize(engine.Records())); err != nil {
		return nil, err
	}

	if err := service.cache.Invalidate(ctx, id, previousHash); err != nil {
		service.cacheFailure(ctx, "cache_invalidate_failed", err)
	}
	return document, nil
}

// # Helpers

// load reads a stored document and parses its content.
func (service *Service) load(ctx context.Context, id string) (*Document, *dta.Document, error) {
	document, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	mode, ok := song.ParseMode(document.Mode)
	if !ok {
		return nil, nil, apperr.Internal(fmt.Errorf("document %s has unknown mode %q", id, document.Mode))
	}
	engine, err := dta.Load(document.Content, mode)
	if err != nil {
		return nil, nil, apperr.Internal(fmt.Errorf("stored document %s does not load: %w", id, err))
	}
	return document, engine, nil
}

func (service *Service) cachedHash(ctx context.Context, id string) (string, bool) {
	hash, found, err := service.cache.GetHash(ctx, id)
	if err != nil {
		service.cacheFailure(ctx, "hash_cache_get_failed", err)
		return "", false
	}
	return hash, found
}

func (service *Service) storeHash(ctx context.Context, id, hash string) {
	if err := service.cache.SetHash(ctx, id, hash); err != nil {
		service.cacheFailure(ctx, "hash_cache_set_failed", err)
	}
}

// cacheFailure logs a cache error. The cache never fails a request.
func (service *Service) cacheFailure(ctx context.Context, event string, err error) {
	ctxutil.GetLogger(ctx).Warn(event, slog.String("error", err.Error()))
}

// normalizeQuery validates a render query and replaces dialect and sort
// names by their canonical values.
func normalizeQuery(query RenderQuery) (RenderQuery, error) {
	dialect, dialectOK := render.ParseDialect(query.Dialect)
	sortBy, sortOK := order.ParseSortBy(query.SortBy)
	if err := new(validate.Validator).
		Custom(FieldDialect, !dialectOK, "Must be one of: "+strings.Join(dialectNames, ", ")).
		Custom(FieldSort, !sortOK, "Must be one of: "+strings.Join(sortNames, ", ")).
		Custom(FieldWiiSlot, query.WiiGen != "" && query.WiiSlot <= 0, "Must be a positive odd number").
		Err(); err != nil {
		return query, err
	}

	query.Dialect, query.SortBy = string(dialect), string(sortBy)
	if query.WiiGen == "" {
		query.WiiSlot = 0
	}
	return query, nil
}

// resolveOptions applies a normalized query onto the defaults of mode.
func resolveOptions(mode song.Mode, query RenderQuery) render.Options {
	opts := render.DefaultOptions(mode)
	opts.Dialect = render.Dialect(query.Dialect)
	opts.SortBy = order.SortBy(query.SortBy)
	opts.SkipFakeRecords = pointer.Fallback(query.SkipFake, opts.SkipFakeRecords)
	opts.CompactPartialLayout = pointer.Fallback(query.Compact, opts.CompactPartialLayout)
	opts.InferPansVols = pointer.Fallback(query.InferPansVols, opts.InferPansVols)
	opts.IncludeExtendedAuthorFields = pointer.Fallback(query.Extended, opts.IncludeExtendedAuthorFields)
	opts.GuitarCores = pointer.Fallback(query.GuitarCores, opts.GuitarCores)
	opts.PlaceCustomAttributes = pointer.Fallback(query.CustomAttributes, opts.PlaceCustomAttributes)
	opts.UseCustomSource = pointer.Fallback(query.CustomSource, opts.UseCustomSource)
	if query.WiiGen != "" {
		opts.WiiMode = &render.WiiMode{Gen: query.WiiGen, Slot: query.WiiSlot}
	}
	return opts
}

// variantKey digests a normalized query into a cache key component.
func variantKey(query RenderQuery) string {
	data, _ := json.Marshal(query)
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// summarize builds the song rows of records in document order.
func summarize(records []*song.Record) []*Song {
	songs := make([]*Song, 0, len(records))
	for index, record := range records {
		songs = append(songs, summary(record, index))
	}
	return songs
}

func summary(record *song.Record, position int) *Song {
	length := pointer.Val(record.SongLength)
	return &Song{
		Position:    position,
		Key:         record.ID,
		SongID:      string(pointer.Val(record.SongID)),
		Name:        pointer.Val(record.Name),
		Artist:      pointer.Val(record.Artist),
		Album:       pointer.Val(record.AlbumName),
		Year:        pointer.Val(record.YearReleased),
		Genre:       pointer.Val(record.Genre),
		Author:      pointer.Val(record.Author),
		RankBand:    pointer.Val(record.RankBand),
		SongLength:  length,
		LengthHuman: humanLength(length),
	}
}

// humanLength formats a song length in milliseconds, e.g. "3 minutes 25 seconds".
func humanLength(millis int) string {
	if millis <= 0 {
		return ""
	}
	return durafmt.Parse(time.Duration(millis) * time.Millisecond).LimitFirstN(2).String()
}

func titleFor(title, source string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	base := filepath.Base(source)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" && name != "." && name != "/" {
		return name
	}
	return DefaultTitle
}

// engineError maps engine failures to client errors and leaves others as is.
func engineError(err error) error {
	if dta.IsEngineError(err) {
		return apperr.FromEngine(err)
	}
	return err
}

func isNotFound(err error) bool {
	appErr := apperr.As(err)
	return appErr != nil && appErr.HTTPStatus == http.StatusNotFound
}

// describe flattens an error into the message and code of a batch result.
func describe(err error) (message, code string) {
	if appErr := apperr.As(err); appErr != nil {
		return appErr.Message, appErr.Code
	}
	return "Internal server error", "INTERNAL_ERROR"
}
