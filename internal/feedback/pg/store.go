package pg

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
	"github.com/minjae-ko/localtax-portal/internal/feedback"
)

// Store is the postgres-backed feedback gateway. Attachment bytes go through
// the injected BlobStore; only metadata lives in the database.
type Store struct {
	db    *pgxpool.Pool
	blobs feedback.BlobStore
}

func NewStore(pool *ConnectionPool, blobs feedback.BlobStore) *Store {
	return &Store{db: pool.conn, blobs: blobs}
}

func (s *Store) GetComments(ctx context.Context, contentPath string) ([]feedback.Comment, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, content_path, author, body, created_at, processed, processed_at, commit_sha
        FROM comments
        WHERE content_path = $1
        ORDER BY created_at ASC
    `, contentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	return scanComments(rows)
}

func (s *Store) CreateComment(ctx context.Context, contentPath, author, body string) (*feedback.Comment, error) {
	contentPath, author, body, err := feedback.NormalizeComment(contentPath, author, body)
	if err != nil {
		return nil, err
	}

	c := feedback.Comment{
		ID:          uuid.New(),
		ContentPath: contentPath,
		Author:      author,
		Body:        body,
		CreatedAt:   time.Now(),
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO comments (id, content_path, author, body, created_at, processed)
        VALUES ($1, $2, $3, $4, $5, false)
    `, c.ID, c.ContentPath, c.Author, c.Body, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return &c, nil
}

func (s *Store) DeleteComment(ctx context.Context, id uuid.UUID, claimedAuthor string) error {
	var author string
	err := s.db.QueryRow(ctx, `SELECT author FROM comments WHERE id = $1`, id).Scan(&author)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NewNotFound("comment not found")
	}
	if err != nil {
		return fmt.Errorf("failed to fetch comment: %w", err)
	}
	if author != claimedAuthor {
		return apperr.NewForbidden("only the author can delete this comment")
	}

	_, err = s.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (s *Store) GetUnprocessedComments(ctx context.Context) ([]feedback.Comment, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, content_path, author, body, created_at, processed, processed_at, commit_sha
        FROM comments
        WHERE processed IS NOT TRUE
        ORDER BY created_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed comments: %w", err)
	}
	defer rows.Close()

	return scanComments(rows)
}

func (s *Store) MarkCommentProcessed(ctx context.Context, id uuid.UUID, commitSha string) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE comments
        SET processed = true, processed_at = $2, commit_sha = NULLIF($3, '')
        WHERE id = $1
    `, id, time.Now(), commitSha)
	if err != nil {
		return fmt.Errorf("failed to mark comment processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("comment not found")
	}
	return nil
}

func (s *Store) GetAttachments(ctx context.Context, contentPath string) ([]feedback.Attachment, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, content_path, file_name, storage_path, file_size, mime_type, uploaded_by, created_at
        FROM attachments
        WHERE content_path = $1
        ORDER BY created_at DESC
    `, contentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	var out []feedback.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) GetAttachment(ctx context.Context, id uuid.UUID) (*feedback.Attachment, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, content_path, file_name, storage_path, file_size, mime_type, uploaded_by, created_at
        FROM attachments
        WHERE id = $1
    `, id)

	a, err := scanAttachment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("attachment not found")
		}
		return nil, err
	}
	return a, nil
}

func (s *Store) CreateAttachment(ctx context.Context, fileName string, data []byte, mimeType, contentPath, uploadedBy string) (*feedback.Attachment, error) {
	if err := feedback.ValidateUpload(int64(len(data)), mimeType); err != nil {
		return nil, err
	}

	id := uuid.New()
	storagePath := path.Join(contentPath, id.String()+path.Ext(fileName))

	if err := s.blobs.Put(ctx, storagePath, data); err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	a := feedback.Attachment{
		ID:          id,
		ContentPath: contentPath,
		FileName:    fileName,
		StoragePath: storagePath,
		FileSize:    int64(len(data)),
		MimeType:    mimeType,
		UploadedBy:  uploadedBy,
		CreatedAt:   time.Now(),
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO attachments (id, content_path, file_name, storage_path, file_size, mime_type, uploaded_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, a.ID, a.ContentPath, a.FileName, a.StoragePath, a.FileSize, a.MimeType, a.UploadedBy, a.CreatedAt)
	if err != nil {
		// No orphaned storage: drop the blob when the metadata insert fails.
		_ = s.blobs.Remove(ctx, storagePath)
		return nil, fmt.Errorf("failed to insert attachment: %w", err)
	}

	a.DownloadURL = feedback.DownloadURL(a.ID)
	return &a, nil
}

func (s *Store) DeleteAttachment(ctx context.Context, id uuid.UUID, claimedUploader string) error {
	a, err := s.GetAttachment(ctx, id)
	if err != nil {
		return err
	}
	if a.UploadedBy != claimedUploader {
		return apperr.NewForbidden("only the uploader can delete this attachment")
	}

	if err := s.blobs.Remove(ctx, a.StoragePath); err != nil {
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	_, err = s.db.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

func scanComments(rows pgx.Rows) ([]feedback.Comment, error) {
	var out []feedback.Comment
	for rows.Next() {
		var c feedback.Comment
		var processedAt *time.Time
		var commitSha *string
		if err := rows.Scan(&c.ID, &c.ContentPath, &c.Author, &c.Body, &c.CreatedAt, &c.Processed, &processedAt, &commitSha); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.ProcessedAt = processedAt
		if commitSha != nil {
			c.CommitSha = *commitSha
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanAttachment(row pgx.Row) (*feedback.Attachment, error) {
	var a feedback.Attachment
	if err := row.Scan(&a.ID, &a.ContentPath, &a.FileName, &a.StoragePath, &a.FileSize, &a.MimeType, &a.UploadedBy, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan attachment: %w", err)
	}
	a.DownloadURL = feedback.DownloadURL(a.ID)
	return &a, nil
}
