// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across the platform layers:
server timing, rate limits, token settings, JSON envelope keys and cache
key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "dtakit-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout covers reading the whole request, uploads included.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "dtakit.app"

	// AccessTokenTTL is the lifetime of tokens minted by [sec.TokenIssuer].
	AccessTokenTTL = 1 * time.Hour
)

// # Documents

const (
	// MaxBatchFiles caps the number of files of one batch import.
	MaxBatchFiles = 32

	// MultipartMemory is the part of a multipart upload kept in memory.
	MultipartMemory = 8 << 20

	// MaxAudioBytes caps the audio files accepted by the draft endpoint.
	MaxAudioBytes = 64 << 20

	// MaxTitleLength bounds document titles.
	MaxTitleLength = 200
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderAuthorization  = "Authorization"
	HeaderDocumentHash   = "X-Document-Hash"
	HeaderContentType    = "Content-Type"
	ContentTypeJSON      = "application/json; charset=utf-8"
	ContentTypeDTA       = "text/plain; charset=utf-8"
	ContentTypeDTALatin1 = "text/plain; charset=iso-8859-1"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaDTA = "dta"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRender = "dta:render:"
	RedisPrefixHash   = "dta:hash:"
)
