// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/dtakit/internal/core/document"
	"github.com/taibuivan/dtakit/internal/platform/apperr"
)

// # In-Memory Repository

type memoryRepository struct {
	mu        sync.Mutex
	documents map[string]*document.Document
	songs     map[string][]*document.Song
	finds     int

	// beforeUpdate runs under the lock, ahead of the hash check.
	beforeUpdate func(documents map[string]*document.Document)
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		documents: make(map[string]*document.Document),
		songs:     make(map[string][]*document.Song),
	}
}

func clone(doc *document.Document) *document.Document {
	copied := *doc
	copied.Content = slices.Clone(doc.Content)
	copied.Duplicates = nil
	return &copied
}

func (repo *memoryRepository) List(_ context.Context, limit, offset int) ([]*document.Document, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	all := make([]*document.Document, 0, len(repo.documents))
	for _, doc := range repo.documents {
		listed := clone(doc)
		listed.Content = nil
		all = append(all, listed)
	}
	slices.SortFunc(all, func(a, b *document.Document) int { return strings.Compare(b.ID, a.ID) })

	end := min(offset+limit, len(all))
	if offset > len(all) {
		return []*document.Document{}, len(all), nil
	}
	return all[offset:end], len(all), nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*document.Document, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.finds++
	doc, ok := repo.documents[id]
	if !ok {
		return nil, apperr.NotFound("Document")
	}
	return clone(doc), nil
}

func (repo *memoryRepository) FindByHash(_ context.Context, hash string) (*document.Document, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, doc := range repo.documents {
		if doc.Hash == hash {
			return clone(doc), nil
		}
	}
	return nil, apperr.NotFound("Document")
}

func (repo *memoryRepository) Create(_ context.Context, doc *document.Document, songs []*document.Song) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, stored := range repo.documents {
		if stored.Hash == doc.Hash {
			return apperr.Conflict("create_document: already exists")
		}
	}
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	repo.documents[doc.ID] = clone(doc)
	repo.songs[doc.ID] = songs
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, doc *document.Document, previousHash string, songs []*document.Song) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.beforeUpdate != nil {
		repo.beforeUpdate(repo.documents)
	}
	stored, ok := repo.documents[doc.ID]
	if !ok {
		return apperr.NotFound("Document")
	}
	if stored.Hash != previousHash {
		return apperr.Conflict("Document was modified concurrently, reload and retry")
	}
	doc.UpdatedAt = time.Now()
	repo.documents[doc.ID] = clone(doc)
	repo.songs[doc.ID] = songs
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.documents[id]; !ok {
		return apperr.NotFound("Document")
	}
	delete(repo.documents, id)
	delete(repo.songs, id)
	return nil
}

func (repo *memoryRepository) SearchSongs(_ context.Context, query string, limit, offset int) ([]*document.Song, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	needle := strings.ToLower(query)
	var matched []*document.Song
	for id, songs := range repo.songs {
		for _, song := range songs {
			if strings.Contains(strings.ToLower(song.Name), needle) || strings.Contains(strings.ToLower(song.Artist), needle) {
				found := *song
				found.DocumentID = id
				matched = append(matched, &found)
			}
		}
	}
	slices.SortFunc(matched, func(a, b *document.Song) int { return strings.Compare(a.Name, b.Name) })

	if offset > len(matched) {
		return []*document.Song{}, len(matched), nil
	}
	return matched[offset:min(offset+limit, len(matched))], len(matched), nil
}

func (repo *memoryRepository) findCount() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.finds
}

// # In-Memory Cache

type memoryCache struct {
	mu          sync.Mutex
	renders     map[string]document.CachedRender
	hashes      map[string]string
	renderHits  int
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{renders: make(map[string]document.CachedRender), hashes: make(map[string]string)}
}

func (cache *memoryCache) GetRender(_ context.Context, hash, variant string) (document.CachedRender, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	entry, ok := cache.renders[hash+":"+variant]
	if ok {
		cache.renderHits++
	}
	return entry, ok, nil
}

func (cache *memoryCache) SetRender(_ context.Context, hash, variant string, entry document.CachedRender) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.renders[hash+":"+variant] = entry
	return nil
}

func (cache *memoryCache) GetHash(_ context.Context, id string) (string, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	hash, ok := cache.hashes[id]
	return hash, ok, nil
}

func (cache *memoryCache) SetHash(_ context.Context, id, hash string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.hashes[id] = hash
	return nil
}

func (cache *memoryCache) Invalidate(_ context.Context, id, previousHash string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	delete(cache.hashes, id)
	for key := range cache.renders {
		if strings.HasPrefix(key, previousHash+":") {
			delete(cache.renders, key)
		}
	}
	cache.invalidated = append(cache.invalidated, previousHash)
	return nil
}

// # Fixtures

const partialText = `(a (name "First") (artist "Band") (genre rock) (song_length 205000))
(b (name "Second") (artist "Other Band"))
(c (name "Alpha") (artist "Band"))
(a (name "Duplicate"))
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService() (*document.Service, *memoryRepository, *memoryCache) {
	repo := newMemoryRepository()
	cache := newMemoryCache()
	service := document.NewService(repo, cache, document.Settings{Workers: 2, FetchTimeout: time.Second}, discardLogger())
	return service, repo, cache
}
