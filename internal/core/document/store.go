// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"

	"github.com/taibuivan/dtakit/internal/dta/charset"
)

// # Document Data Access

// Repository is the persistent store of documents and their song rows.
type Repository interface {

	// List returns a page of documents without content, newest first, and
	// the total count.
	List(ctx context.Context, limit, offset int) ([]*Document, int, error)

	// FindByID returns a document with its content.
	FindByID(ctx context.Context, id string) (*Document, error)

	// FindByHash returns the document holding the given canonical hash,
	// without content.
	FindByHash(ctx context.Context, hash string) (*Document, error)

	// Create stores a new document and its song rows.
	Create(ctx context.Context, document *Document, songs []*Song) error

	/*
		Update replaces content, hash and song rows of a document.

		The write only applies while the stored hash still equals
		previousHash; otherwise it fails with a Conflict so concurrent
		mutations cannot overwrite each other.
	*/
	Update(ctx context.Context, document *Document, previousHash string, songs []*Song) error

	// Delete removes a document and its song rows.
	Delete(ctx context.Context, id string) error

	// SearchSongs matches song rows of every document by name or artist.
	SearchSongs(ctx context.Context, query string, limit, offset int) ([]*Song, int, error)
}

// # Render Cache

// CachedRender is a rendered variant together with the charset its bytes
// are encoded in.
type CachedRender struct {
	Body    []byte
	Charset charset.Charset
}

// Cache holds rendered variants and hashes. Misses are reported with
// found=false and a nil error; errors are infrastructure failures.
type Cache interface {
	GetRender(ctx context.Context, hash, variant string) (entry CachedRender, found bool, err error)
	SetRender(ctx context.Context, hash, variant string, entry CachedRender) error

	GetHash(ctx context.Context, documentID string) (hash string, found bool, err error)
	SetHash(ctx context.Context, documentID, hash string) error

	// Invalidate drops the cached hash of a document and every rendering of
	// its previous content.
	Invalidate(ctx context.Context, documentID, previousHash string) error
}
