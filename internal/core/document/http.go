// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dtakit/internal/dta/charset"
	"github.com/taibuivan/dtakit/internal/dta/order"
	"github.com/taibuivan/dtakit/internal/dta/song"
	"github.com/taibuivan/dtakit/internal/platform/constants"
	"github.com/taibuivan/dtakit/internal/platform/middleware"
	requestutil "github.com/taibuivan/dtakit/internal/platform/request"
	"github.com/taibuivan/dtakit/internal/platform/respond"
	"github.com/taibuivan/dtakit/internal/platform/sec"
	"github.com/taibuivan/dtakit/pkg/convert"
	"github.com/taibuivan/dtakit/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for document operations.
type Handler struct {
	service  *Service
	maxBytes int64
}

// NewHandler constructs a new document [Handler]. Bodies over maxBytes are
// refused before they reach the engine.
func NewHandler(service *Service, maxBytes int64) *Handler {
	if maxBytes < 1 {
		maxBytes = DefaultMaxBytes
	}
	return &Handler{service: service, maxBytes: maxBytes}
}

/*
Routes returns the document router, mounted at /api/v1/documents.

Reads are public. Writes need a charter token and deletion a moderator
token; [middleware.Authenticate] must run before this router.
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Reads
	router.Get("/", handler.listDocuments)
	router.Get("/{id}", handler.getDocument)
	router.Get("/{id}/render", handler.renderDocument)
	router.Get("/{id}/hash", handler.getHash)
	router.Get("/{id}/songs", handler.listSongs)
	router.Get("/{id}/songs/{songID}", handler.getSong)
	router.Get("/{id}/headers/{view}", handler.getHeaders)

	// ## Charter Writes
	router.Group(func(writes chi.Router) {
		writes.Use(middleware.RequireRole(sec.RoleCharter))
		writes.Post("/", handler.uploadDocument)
		writes.Post("/batch", handler.importBatch)
		writes.Post("/import", handler.importURL)
		writes.Post("/{id}/merge", handler.mergeDocument)
		writes.Patch("/{id}/songs", handler.updateSongs)
		writes.Post("/{id}/patch/song-ids", handler.patchSongIDs)
		writes.Post("/{id}/patch/encodings", handler.patchEncodings)
	})

	// ## Moderation
	router.With(middleware.RequireRole(sec.RoleModerator)).Delete("/{id}", handler.deleteDocument)

	return router
}

// SongRoutes returns the cross-document song search router, mounted at
// /api/v1/songs.
func (handler *Handler) SongRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.searchSongs)
	return router
}

// # Document Endpoints

/*
GET /api/v1/documents.

Description: Lists stored documents, newest first. Content is not included.

Request:
  - page: int
  - limit: int

Response:
  - 200: []Document: Paginated list
*/
func (handler *Handler) listDocuments(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	documents, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, documents, pagination.NewMeta(params, total))
}

/*
GET /api/v1/documents/{id}.

Response:
  - 200: Document: Metadata
  - 404: Document not found
*/
func (handler *Handler) getDocument(writer http.ResponseWriter, request *http.Request) {
	document, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, document)
}

/*
POST /api/v1/documents.

Description: Stores a DTA document sent as the raw body or as the "file"
part of a multipart form.

Request:
  - mode: string (complete, partial; query or form field)
  - title: string (query or form field; defaults to the file name)

Response:
  - 201: Document: Created, with the ids of dropped duplicate records
  - 400: Missing required fields (complete mode)
  - 409: The same content is already stored
  - 413: Body too large
  - 422: Malformed, undecodable or binary body
*/
func (handler *Handler) uploadDocument(writer http.ResponseWriter, request *http.Request) {
	upload, err := requestutil.ReadBody(writer, request, handler.maxBytes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.service.Upload(request.Context(), UploadInput{
		Title:    formValue(request, FieldTitle),
		Mode:     formValue(request, FieldMode),
		FileName: upload.Name,
		Data:     upload.Data,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, document)
}

/*
POST /api/v1/documents/batch.

Description: Stores every "file" part of a multipart form. Files are
processed concurrently; each gets its own result.

Request:
  - mode: string (applies to every file)

Response:
  - 200: []BatchResult: One entry per file, in form order
*/
func (handler *Handler) importBatch(writer http.ResponseWriter, request *http.Request) {
	uploads, err := requestutil.ReadFiles(writer, request, handler.maxBytes, constants.MaxBatchFiles)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	files := make([]UploadInput, 0, len(uploads))
	for _, upload := range uploads {
		files = append(files, UploadInput{FileName: upload.Name, Data: upload.Data})
	}

	respond.OK(writer, handler.service.ImportBatch(request.Context(), formValue(request, FieldMode), files))
}

/*
POST /api/v1/documents/import.

Request (Body):
  - ImportInput JSON object

Response:
  - 201: Document: Created
  - 502: The url could not be fetched
*/
func (handler *Handler) importURL(writer http.ResponseWriter, request *http.Request) {
	var input ImportInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.service.ImportURL(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, document)
}

/*
GET /api/v1/documents/{id}/render.

Description: Renders the document as DTA text. Unset flags keep the defaults
of the document mode. The body uses the document charset, declared in
Content-Type; the canonical hash is sent in X-Document-Hash.

Request:
  - dialect: string (authoring, distribution-a, distribution-b)
  - sort: string (none, id, songId, title, artist, artistYearAlbumTrack)
  - skipFake, compact, inferPansVols, extended, guitarCores,
    customAttributes, customSource: bool
  - wiiGen: string, wiiSlot: int (odd)
*/
func (handler *Handler) renderDocument(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	rendering, err := handler.service.Render(request.Context(), requestutil.Param(request, "id"), RenderQuery{
		Dialect:          query.Get(FieldDialect),
		SortBy:           query.Get(FieldSort),
		SkipFake:         convert.ToBoolPtr(query.Get("skipFake")),
		Compact:          convert.ToBoolPtr(query.Get("compact")),
		InferPansVols:    convert.ToBoolPtr(query.Get("inferPansVols")),
		Extended:         convert.ToBoolPtr(query.Get("extended")),
		GuitarCores:      convert.ToBoolPtr(query.Get("guitarCores")),
		CustomAttributes: convert.ToBoolPtr(query.Get("customAttributes")),
		CustomSource:     convert.ToBoolPtr(query.Get("customSource")),
		WiiGen:           query.Get("wiiGen"),
		WiiSlot:          convert.ToIntD(query.Get("wiiSlot"), 0),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contentType := constants.ContentTypeDTA
	if rendering.Charset == charset.Latin1 {
		contentType = constants.ContentTypeDTALatin1
	}
	writer.Header().Set(constants.HeaderDocumentHash, rendering.Hash)
	respond.Text(writer, contentType, rendering.Body)
}

/*
GET /api/v1/documents/{id}/hash.

Response:
  - 200: {"hash": string}
*/
func (handler *Handler) getHash(writer http.ResponseWriter, request *http.Request) {
	hash, err := handler.service.Hash(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"hash": hash})
}

/*
GET /api/v1/documents/{id}/songs.

Request:
  - sort: string
  - proGuitarBass: bool (songs with or without both PRO guitar and bass)
  - keys: bool (songs with or without both keys parts)

Response:
  - 200: []Song
*/
func (handler *Handler) listSongs(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	songs, err := handler.service.Songs(request.Context(), requestutil.Param(request, "id"), SongQuery{
		SortBy: query.Get(FieldSort),
		Filter: filterFrom(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, songs)
}

/*
GET /api/v1/documents/{id}/songs/{songID}.

Response:
  - 200: Record: The full song record
  - 404: Document or song not found
*/
func (handler *Handler) getSong(writer http.ResponseWriter, request *http.Request) {
	record, err := handler.service.Song(request.Context(), requestutil.Param(request, "id"), requestutil.Param(request, "songID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
GET /api/v1/documents/{id}/headers/{view}.

Request:
  - view: string (title, genre, difficulty, author, year, artist)
  - instrument: string (difficulty view; defaults to band)
  - albumThreshold: int (artist view; defaults to 3)
  - proGuitarBass, keys: bool
*/
func (handler *Handler) getHeaders(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	view, err := handler.service.Headers(request.Context(), requestutil.Param(request, "id"), HeaderQuery{
		View:           requestutil.Param(request, "view"),
		Instrument:     query.Get(FieldInstrument),
		AlbumThreshold: convert.ToIntD(query.Get("albumThreshold"), 0),
		Filter:         filterFrom(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
POST /api/v1/documents/{id}/merge.

Description: Overlays the records of a partial DTA update (raw body or
"file" part) onto the records with the same id.

Request:
  - insert: bool (add unmatched records; partial documents only)

Response:
  - 200: MergeOutcome: Counts and the updated document
  - 409: The document changed while merging
*/
func (handler *Handler) mergeDocument(writer http.ResponseWriter, request *http.Request) {
	upload, err := requestutil.ReadBody(writer, request, handler.maxBytes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	insert := convert.ToBoolD(formValue(request, "insert"), false)
	outcome, err := handler.service.Merge(request.Context(), requestutil.Param(request, "id"), upload.Data, insert)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, outcome)
}

/*
PATCH /api/v1/documents/{id}/songs.

Description: Applies the fields of a JSON record to every song. The id of
the body is ignored.

Request (Body):
  - Record JSON object (snake_case DTA keys)
*/
func (handler *Handler) updateSongs(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxBytes)

	var overlay song.Record
	if err := requestutil.DecodeJSON(request, &overlay); err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.service.UpdateAll(request.Context(), requestutil.Param(request, "id"), &overlay)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, document)
}

// POST /api/v1/documents/{id}/patch/song-ids.
func (handler *Handler) patchSongIDs(writer http.ResponseWriter, request *http.Request) {
	outcome, err := handler.service.PatchSongIDs(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, outcome)
}

// POST /api/v1/documents/{id}/patch/encodings.
func (handler *Handler) patchEncodings(writer http.ResponseWriter, request *http.Request) {
	outcome, err := handler.service.PatchEncodings(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, outcome)
}

// DELETE /api/v1/documents/{id}.
func (handler *Handler) deleteDocument(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Song Search

/*
GET /api/v1/songs.

Description: Searches songs of every stored document by name or artist.

Request:
  - q: string
  - page, limit: int

Response:
  - 200: []Song: Paginated list
*/
func (handler *Handler) searchSongs(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	songs, total, err := handler.service.SearchSongs(request.Context(), request.URL.Query().Get(FieldQuery), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, songs, pagination.NewMeta(params, total))
}

// # Helpers

// formValue reads a multipart form field, falling back to the query string.
func formValue(request *http.Request, name string) string {
	if form := request.MultipartForm; form != nil {
		if values := form.Value[name]; len(values) > 0 {
			return values[0]
		}
	}
	return request.URL.Query().Get(name)
}

func filterFrom(request *http.Request) order.Filter {
	query := request.URL.Query()
	return order.Filter{
		ProGuitarBass: convert.ToBoolPtr(query.Get("proGuitarBass")),
		Keys:          convert.ToBoolPtr(query.Get("keys")),
	}
}
