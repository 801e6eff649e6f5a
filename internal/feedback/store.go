package feedback

import (
	"context"

	"github.com/google/uuid"
)

// CommentStore is the persistence gateway the portal and the pipeline share.
// Absent rows surface as apperr.NotFoundError, ownership mismatches as
// apperr.ForbiddenError; only backend failures are plain errors.
type CommentStore interface {
	// GetComments lists a document's comments ascending by creation time.
	GetComments(ctx context.Context, contentPath string) ([]Comment, error)
	// CreateComment persists a trimmed, length-capped comment.
	CreateComment(ctx context.Context, contentPath, author, body string) (*Comment, error)
	// DeleteComment removes a comment when claimedAuthor matches the stored
	// author string.
	DeleteComment(ctx context.Context, id uuid.UUID, claimedAuthor string) error
	// GetUnprocessedComments lists every comment not yet handled by the
	// pipeline, ascending by creation time.
	GetUnprocessedComments(ctx context.Context) ([]Comment, error)
	// MarkCommentProcessed flags a comment as handled, optionally recording
	// the commit it produced.
	MarkCommentProcessed(ctx context.Context, id uuid.UUID, commitSha string) error
}

// AttachmentStore is the metadata gateway for uploaded files; bytes live in
// a BlobStore.
type AttachmentStore interface {
	// GetAttachments lists a document's attachments descending by creation
	// time, with resolvable download locators.
	GetAttachments(ctx context.Context, contentPath string) ([]Attachment, error)
	// CreateAttachment validates size and MIME type, stores the blob, then
	// the metadata row. A failed insert removes the stored blob so no
	// orphaned storage remains.
	CreateAttachment(ctx context.Context, fileName string, data []byte, mimeType, contentPath, uploadedBy string) (*Attachment, error)
	// DeleteAttachment removes blob and metadata when claimedUploader
	// matches the stored uploader string.
	DeleteAttachment(ctx context.Context, id uuid.UUID, claimedUploader string) error
	// GetAttachment fetches one attachment by id.
	GetAttachment(ctx context.Context, id uuid.UUID) (*Attachment, error)
}

// BlobStore holds attachment bytes under opaque storage paths.
type BlobStore interface {
	Put(ctx context.Context, storagePath string, data []byte) error
	Get(ctx context.Context, storagePath string) ([]byte, error)
	Remove(ctx context.Context, storagePath string) error
}

// DownloadURL is the portal-relative locator for an attachment's bytes.
func DownloadURL(id uuid.UUID) string {
	return "/api/attachments/" + id.String() + "/download"
}
