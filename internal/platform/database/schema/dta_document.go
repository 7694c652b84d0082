// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the dta schema, so queries
// are assembled from one definition.
package schema

// DTADocumentTable represents the 'dta.document' table.
type DTADocumentTable struct {
	Table     string
	ID        string
	Title     string
	Slug      string
	Mode      string
	Charset   string
	Hash      string
	SongCount string
	SizeBytes string
	Content   string
	CreatedBy string
	CreatedAt string
	UpdatedAt string
}

// DTADocument is the schema definition for dta.document.
var DTADocument = DTADocumentTable{
	Table:     "dta.document",
	ID:        "id",
	Title:     "title",
	Slug:      "slug",
	Mode:      "mode",
	Charset:   "charset",
	Hash:      "hash",
	SongCount: "songcount",
	SizeBytes: "sizebytes",
	Content:   "content",
	CreatedBy: "createdby",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Metadata lists every column except content, in scan order.
func (t DTADocumentTable) Metadata() []string {
	return []string{t.ID, t.Title, t.Slug, t.Mode, t.Charset, t.Hash, t.SongCount, t.SizeBytes, t.CreatedBy, t.CreatedAt, t.UpdatedAt}
}
