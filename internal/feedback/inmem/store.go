package inmem

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
	"github.com/minjae-ko/localtax-portal/internal/feedback"
)

// Store keeps comments, attachments and blobs in process memory. It backs
// tests and local development without a database.
type Store struct {
	mu          sync.RWMutex
	comments    map[uuid.UUID]feedback.Comment
	attachments map[uuid.UUID]feedback.Attachment
	blobs       map[string][]byte

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		comments:    make(map[uuid.UUID]feedback.Comment),
		attachments: make(map[uuid.UUID]feedback.Attachment),
		blobs:       make(map[string][]byte),
		now:         time.Now,
	}
}

// SetClock overrides the timestamp source for deterministic tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) GetComments(ctx context.Context, contentPath string) ([]feedback.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []feedback.Comment
	for _, c := range s.comments {
		if c.ContentPath == contentPath {
			out = append(out, c)
		}
	}
	sortCommentsByCreation(out)
	return out, nil
}

func (s *Store) CreateComment(ctx context.Context, contentPath, author, body string) (*feedback.Comment, error) {
	contentPath, author, body, err := feedback.NormalizeComment(contentPath, author, body)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := feedback.Comment{
		ID:          uuid.New(),
		ContentPath: contentPath,
		Author:      author,
		Body:        body,
		CreatedAt:   s.now(),
	}
	s.comments[c.ID] = c
	return &c, nil
}

func (s *Store) DeleteComment(ctx context.Context, id uuid.UUID, claimedAuthor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return apperr.NewNotFound("comment not found")
	}
	if c.Author != claimedAuthor {
		return apperr.NewForbidden("only the author can delete this comment")
	}
	delete(s.comments, id)
	return nil
}

func (s *Store) GetUnprocessedComments(ctx context.Context) ([]feedback.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []feedback.Comment
	for _, c := range s.comments {
		if !c.Processed {
			out = append(out, c)
		}
	}
	sortCommentsByCreation(out)
	return out, nil
}

func (s *Store) MarkCommentProcessed(ctx context.Context, id uuid.UUID, commitSha string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return apperr.NewNotFound("comment not found")
	}
	now := s.now()
	c.Processed = true
	c.ProcessedAt = &now
	c.CommitSha = commitSha
	s.comments[id] = c
	return nil
}

func (s *Store) GetAttachments(ctx context.Context, contentPath string) ([]feedback.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []feedback.Attachment
	for _, a := range s.attachments {
		if a.ContentPath == contentPath {
			a.DownloadURL = feedback.DownloadURL(a.ID)
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetAttachment(ctx context.Context, id uuid.UUID) (*feedback.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.attachments[id]
	if !ok {
		return nil, apperr.NewNotFound("attachment not found")
	}
	a.DownloadURL = feedback.DownloadURL(a.ID)
	return &a, nil
}

func (s *Store) CreateAttachment(ctx context.Context, fileName string, data []byte, mimeType, contentPath, uploadedBy string) (*feedback.Attachment, error) {
	if err := feedback.ValidateUpload(int64(len(data)), mimeType); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	storagePath := path.Join(contentPath, id.String()+path.Ext(fileName))
	s.blobs[storagePath] = append([]byte(nil), data...)

	a := feedback.Attachment{
		ID:          id,
		ContentPath: contentPath,
		FileName:    fileName,
		StoragePath: storagePath,
		FileSize:    int64(len(data)),
		MimeType:    mimeType,
		UploadedBy:  uploadedBy,
		CreatedAt:   s.now(),
	}
	s.attachments[id] = a
	a.DownloadURL = feedback.DownloadURL(id)
	return &a, nil
}

func (s *Store) DeleteAttachment(ctx context.Context, id uuid.UUID, claimedUploader string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attachments[id]
	if !ok {
		return apperr.NewNotFound("attachment not found")
	}
	if a.UploadedBy != claimedUploader {
		return apperr.NewForbidden("only the uploader can delete this attachment")
	}
	delete(s.blobs, a.StoragePath)
	delete(s.attachments, id)
	return nil
}

func (s *Store) Put(ctx context.Context, storagePath string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[storagePath] = append([]byte(nil), data...)
	return nil
}

func (s *Store) Get(ctx context.Context, storagePath string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[storagePath]
	if !ok {
		return nil, apperr.NewNotFound("blob not found")
	}
	return append([]byte(nil), data...), nil
}

func (s *Store) Remove(ctx context.Context, storagePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, storagePath)
	return nil
}

func sortCommentsByCreation(comments []feedback.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}
