// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/dtakit/internal/platform/apperr"
	"github.com/taibuivan/dtakit/internal/platform/database/schema"
	"github.com/taibuivan/dtakit/internal/platform/dberr"
	"github.com/taibuivan/dtakit/pkg/pointer"
)

// PostgresRepository implements [Repository] on pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	documentTable = schema.DTADocument
	songTable     = schema.DTASong

	metadataColumns = strings.Join(documentTable.Metadata(), ", ")
)

// scanner is satisfied by [pgx.Row] and [pgx.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row scanner, document *Document, extra ...any) error {
	dest := []any{
		&document.ID, &document.Title, &document.Slug, &document.Mode, &document.Charset,
		&document.Hash, &document.SongCount, &document.SizeBytes, &document.CreatedBy,
		&document.CreatedAt, &document.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

/*
List returns a page of documents, newest first.

Description: Content is never selected here; COUNT(*) OVER() carries the
total alongside each row.
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Document, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s ORDER BY %s DESC, %s DESC LIMIT $1 OFFSET $2`,
		metadataColumns, documentTable.Table, documentTable.CreatedAt, documentTable.ID)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_documents")
	}
	defer rows.Close()

	documents := make([]*Document, 0)
	var total int
	for rows.Next() {
		document := &Document{}
		if err := scanMetadata(rows, document, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_document")
		}
		documents = append(documents, document)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_documents")
	}

	return documents, total, nil
}

// FindByID loads a document together with its content.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Document, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		metadataColumns, documentTable.Content, documentTable.Table, documentTable.ID)

	document := &Document{}
	if err := scanMetadata(repository.db.QueryRow(context, query, id), document, &document.Content); err != nil {
		return nil, notFound(dberr.Wrap(err, "find_document"))
	}
	return document, nil
}

// FindByHash loads the metadata of the document holding hash.
func (repository *PostgresRepository) FindByHash(context context.Context, hash string) (*Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		metadataColumns, documentTable.Table, documentTable.Hash)

	document := &Document{}
	if err := scanMetadata(repository.db.QueryRow(context, query, hash), document); err != nil {
		return nil, notFound(dberr.Wrap(err, "find_document_by_hash"))
	}
	return document, nil
}

// Create inserts the document row and its song rows in one transaction.
func (repository *PostgresRepository) Create(context context.Context, document *Document, songs []*Song) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s
	`,
		documentTable.Table,
		documentTable.ID, documentTable.Title, documentTable.Slug, documentTable.Mode, documentTable.Charset,
		documentTable.Hash, documentTable.SongCount, documentTable.SizeBytes, documentTable.Content, documentTable.CreatedBy,
		documentTable.CreatedAt, documentTable.UpdatedAt,
	)

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: create transaction begin failed: %w", err)
	}
	defer transaction.Rollback(context)

	err = transaction.QueryRow(context, query,
		document.ID, document.Title, document.Slug, document.Mode, document.Charset,
		document.Hash, document.SongCount, document.SizeBytes, document.Content, document.CreatedBy,
	).Scan(&document.CreatedAt, &document.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_document")
	}

	if err := copySongs(context, transaction, document.ID, songs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: create transaction commit failed: %w", err)
	}
	return nil
}

/*
Update rewrites a document and replaces its song rows.

Description: The UPDATE is guarded by the hash the caller loaded. When no
row matches, a second lookup tells a deleted document (404) from a
concurrent write (409).
*/
func (repository *PostgresRepository) Update(context context.Context, document *Document, previousHash string, songs []*Song) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $7 AND %s = $8
		RETURNING %s
	`,
		documentTable.Table,
		documentTable.Charset, documentTable.Hash, documentTable.SongCount, documentTable.SizeBytes,
		documentTable.Content, documentTable.Mode, documentTable.UpdatedAt,
		documentTable.ID, documentTable.Hash,
		documentTable.UpdatedAt,
	)

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: update transaction begin failed: %w", err)
	}
	defer transaction.Rollback(context)

	err = transaction.QueryRow(context, query,
		document.Charset, document.Hash, document.SongCount, document.SizeBytes,
		document.Content, document.Mode, document.ID, previousHash,
	).Scan(&document.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.missingOrConflict(context, transaction, document.ID)
		}
		return dberr.Wrap(err, "update_document")
	}

	deleteSongs := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, songTable.Table, songTable.DocumentID)
	if _, err := transaction.Exec(context, deleteSongs, document.ID); err != nil {
		return fmt.Errorf("postgres: failed to clear songs: %w", err)
	}
	if err := copySongs(context, transaction, document.ID, songs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: update transaction commit failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) missingOrConflict(context context.Context, transaction pgx.Tx, id string) error {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, documentTable.Table, documentTable.ID)

	var exists bool
	if err := transaction.QueryRow(context, query, id).Scan(&exists); err != nil {
		return dberr.Wrap(err, "update_document")
	}
	if !exists {
		return apperr.NotFound("Document")
	}
	return apperr.Conflict("Document was modified concurrently, reload and retry")
}

// copySongs bulk loads song rows with the COPY protocol.
func copySongs(context context.Context, transaction pgx.Tx, documentID string, songs []*Song) error {
	if len(songs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(songs))
	for _, song := range songs {
		rows = append(rows, []any{
			documentID, song.Position, song.Key,
			pointer.NonZero(song.SongID), pointer.NonZero(song.Name), pointer.NonZero(song.Artist),
			pointer.NonZero(song.Album), pointer.NonZero(song.Year), pointer.NonZero(song.Genre),
			pointer.NonZero(song.Author), pointer.NonZero(song.RankBand), pointer.NonZero(song.SongLength),
		})
	}

	table := strings.SplitN(songTable.Table, ".", 2)
	_, err := transaction.CopyFrom(context, pgx.Identifier(table), songTable.Columns(), pgx.CopyFromRows(rows))
	if err != nil {
		return dberr.Wrap(err, "copy_songs")
	}
	return nil
}

// Delete removes the document. Song rows follow through ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, documentTable.Table, documentTable.ID)

	response, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_document")
	}
	if response.RowsAffected() == 0 {
		return apperr.NotFound("Document")
	}
	return nil
}

/*
SearchSongs matches song rows by name or artist across all documents.

Description: Uses trigram-indexed ILIKE; results are ordered by name, then by
document and position so paging is stable.
*/
func (repository *PostgresRepository) SearchSongs(context context.Context, search string, limit, offset int) ([]*Song, int, error) {
	columns := strings.Join(songTable.Columns(), ", ")

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s`, columns, songTable.Table))

	args := []any{}
	argID := 1
	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (%s ILIKE $%d OR %s ILIKE $%d)", songTable.Name, argID, songTable.Artist, argID))
		args = append(args, "%"+escapeLike(search)+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC NULLS LAST, %s, %s LIMIT $%d OFFSET $%d",
		songTable.Name, songTable.DocumentID, songTable.Position, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_songs")
	}
	defer rows.Close()

	songs := make([]*Song, 0)
	var total int
	for rows.Next() {
		var (
			song                                   = &Song{}
			songID, name, artist, album, genre, by *string
			year, rankBand, length                 *int
		)
		err := rows.Scan(&song.DocumentID, &song.Position, &song.Key,
			&songID, &name, &artist, &album, &year, &genre, &by, &rankBand, &length, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_song")
		}

		song.SongID, song.Name, song.Artist = pointer.Val(songID), pointer.Val(name), pointer.Val(artist)
		song.Album, song.Genre, song.Author = pointer.Val(album), pointer.Val(genre), pointer.Val(by)
		song.Year, song.RankBand, song.SongLength = pointer.Val(year), pointer.Val(rankBand), pointer.Val(length)
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "search_songs")
	}

	return songs, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes search text match literally inside an ILIKE pattern.
func escapeLike(text string) string {
	return likeEscaper.Replace(text)
}

// notFound narrows the generic row-missing error to the document resource.
func notFound(err error) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return apperr.NotFound("Document")
	}
	return err
}
