// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dtakit/internal/dta/builder"
	"github.com/taibuivan/dtakit/internal/platform/constants"
	"github.com/taibuivan/dtakit/internal/platform/middleware"
	requestutil "github.com/taibuivan/dtakit/internal/platform/request"
	"github.com/taibuivan/dtakit/internal/platform/respond"
	"github.com/taibuivan/dtakit/internal/platform/sec"
	"github.com/taibuivan/dtakit/internal/platform/validate"
)

// CreateRequest is the body of POST /api/v1/drafts.
type CreateRequest struct {
	Dialect string         `json:"dialect"`
	Params  builder.Params `json:"params"`
}

// # Handler Implementation

// Handler implements the HTTP layer for drafts and locale tables.
type Handler struct {
	service  *Service
	maxAudio int64
}

// NewHandler constructs a new draft [Handler].
func NewHandler(service *Service, maxAudio int64) *Handler {
	if maxAudio < 1 {
		maxAudio = constants.MaxAudioBytes
	}
	return &Handler{service: service, maxAudio: maxAudio}
}

// Routes returns the draft router, mounted at /api/v1/drafts. Any signed-in
// user may build drafts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleMember))

	router.Post("/", handler.createDraft)
	router.Post("/from-audio", handler.createFromAudio)
	return router
}

// LocaleRoutes returns the public locale router, mounted at /api/v1/locale.
func (handler *Handler) LocaleRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listTables)
	router.Get("/genre/{genre}/sub-genres", handler.listSubGenres)
	router.Get("/{table}", handler.getTable)
	return router
}

// # Draft Endpoints

/*
POST /api/v1/drafts.

Description: Builds a complete record from creation parameters and renders
it. Nothing is stored.

Request:
  - dialect: string (authoring, distribution-a, distribution-b)
  - params: builder.Params

Response:
  - 200: Draft
  - 400: Malformed body, unknown dialect or missing identity fields
  - 422: A parameter is out of range
*/
func (handler *Handler) createDraft(writer http.ResponseWriter, request *http.Request) {
	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.Create(request.Context(), input.Params, input.Dialect)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}

/*
POST /api/v1/drafts/from-audio.

Description: Builds a record seeded from the tags of an audio file sent as
the "file" part of a multipart form.

Request:
  - file: audio (mp3, m4a, flac, ogg)
  - params: JSON builder.Params overriding tag values (form field)
  - dialect: string (form field or query)

Response:
  - 200: Draft with the tags read
  - 413: File too large
  - 422: Not an audio file, or no readable tags
*/
func (handler *Handler) createFromAudio(writer http.ResponseWriter, request *http.Request) {
	upload, err := requestutil.ReadBody(writer, request, handler.maxAudio)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var overrides builder.Params
	if raw := formValue(request, FieldParams); raw != "" {
		decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&overrides); err != nil {
			respond.Error(writer, request, validate.ErrInvalidJSON)
			return
		}
	}

	draft, err := handler.service.FromAudio(request.Context(), upload.Data, overrides, formValue(request, FieldDialect))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}

// # Locale Endpoints

// GET /api/v1/locale lists the table names.
func (handler *Handler) listTables(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Tables())
}

/*
GET /api/v1/locale/{table}.

Response:
  - 200: []locale.Entry: Tokens with display names, in game order
  - 404: Unknown table
*/
func (handler *Handler) getTable(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.Table(requestutil.Param(request, FieldTable))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

// GET /api/v1/locale/genre/{genre}/sub-genres accepts a genre token or name.
func (handler *Handler) listSubGenres(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.service.SubGenres(requestutil.Param(request, FieldGenre))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

func formValue(request *http.Request, name string) string {
	if form := request.MultipartForm; form != nil {
		if values := form.Value[name]; len(values) > 0 {
			return values[0]
		}
	}
	return request.URL.Query().Get(name)
}
