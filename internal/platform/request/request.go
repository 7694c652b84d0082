// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts parameters, identities and bodies from HTTP
requests, mapping every failure to an [apperr.AppError].
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dtakit/internal/platform/apperr"
	"github.com/taibuivan/dtakit/internal/platform/constants"
	"github.com/taibuivan/dtakit/internal/platform/ctxutil"
	"github.com/taibuivan/dtakit/internal/platform/sec"
	"github.com/taibuivan/dtakit/internal/platform/validate"
)

// FileField is the multipart field carrying an uploaded file.
const FileField = "file"

// Upload is a request body read in full.
type Upload struct {
	Name string
	Data []byte
}

/*
DecodeJSON decodes the body into target. Unknown fields are rejected so a
typo in a record key does not silently become a no-op.
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return tooLarge(maxBytes.Limit)
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the token claims, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the token claims or a 401.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
ReadBody reads an uploaded document: the "file" part of a multipart form,
or the raw body for any other content type. Bodies over limit bytes are
rejected with 413.
*/
func ReadBody(writer http.ResponseWriter, request *http.Request, limit int64) (Upload, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, limit)

	if isMultipart(request) {
		if err := request.ParseMultipartForm(constants.MultipartMemory); err != nil {
			return Upload{}, bodyError(err, limit)
		}
		file, header, err := request.FormFile(FileField)
		if err != nil {
			return Upload{}, validate.RequiredError(FileField, "A file part is required")
		}
		defer file.Close()
		return readPart(file, header, limit)
	}

	data, err := io.ReadAll(request.Body)
	if err != nil {
		return Upload{}, bodyError(err, limit)
	}
	if len(data) == 0 {
		return Upload{}, validate.RequiredError("body", "The request body is empty")
	}
	return Upload{Data: data}, nil
}

/*
ReadFiles reads every "file" part of a multipart form. The limit applies to
each file; the whole form may hold up to max files.
*/
func ReadFiles(writer http.ResponseWriter, request *http.Request, limit int64, max int) ([]Upload, error) {
	if !isMultipart(request) {
		return nil, apperr.ValidationError("Expected a multipart/form-data body")
	}

	request.Body = http.MaxBytesReader(writer, request.Body, limit*int64(max))
	if err := request.ParseMultipartForm(constants.MultipartMemory); err != nil {
		return nil, bodyError(err, limit*int64(max))
	}

	headers := request.MultipartForm.File[FileField]
	if len(headers) == 0 {
		return nil, validate.RequiredError(FileField, "At least one file part is required")
	}
	if len(headers) > max {
		return nil, validate.RequiredError(FileField, fmt.Sprintf("At most %d files per request", max))
	}

	uploads := make([]Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		upload, err := readPart(file, header, limit)
		file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func readPart(file multipart.File, header *multipart.FileHeader, limit int64) (Upload, error) {
	if header.Size > limit {
		return Upload{}, tooLarge(limit)
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return Upload{}, apperr.Internal(err)
	}
	if int64(len(data)) > limit {
		return Upload{}, tooLarge(limit)
	}
	return Upload{Name: header.Filename, Data: data}, nil
}

func isMultipart(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get(constants.HeaderContentType))
	return err == nil && mediaType == "multipart/form-data"
}

func bodyError(err error, limit int64) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return tooLarge(limit)
	}
	return apperr.ValidationError("Unreadable request body")
}

func tooLarge(limit int64) error {
	return apperr.TooLarge(fmt.Sprintf("Body exceeds the %s limit", humanize.IBytes(uint64(limit))))
}
