package inmem

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
	"github.com/minjae-ko/localtax-portal/internal/feedback"
)

func TestStore_CreateComment_TrimsAndStores(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	c, err := store.CreateComment(ctx, "  acquisition/overview  ", "  kim  ", "  typo in section 2  ")
	require.NoError(t, err)

	assert.Equal(t, "acquisition/overview", c.ContentPath)
	assert.Equal(t, "kim", c.Author)
	assert.Equal(t, "typo in section 2", c.Body)
	assert.False(t, c.Processed)
	assert.NotZero(t, c.ID)
}

func TestStore_CreateComment_RejectsEmptyFields(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.CreateComment(ctx, "acquisition/overview", "   ", "body")
	require.Error(t, err)

	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestStore_CreateComment_CapsFieldLengths(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	longAuthor := strings.Repeat("a", feedback.MaxAuthorLen+50)
	longBody := strings.Repeat("b", feedback.MaxBodyLen+50)

	c, err := store.CreateComment(ctx, "acquisition/overview", longAuthor, longBody)
	require.NoError(t, err)

	assert.Len(t, c.Author, feedback.MaxAuthorLen)
	assert.Len(t, c.Body, feedback.MaxBodyLen)
}

func TestStore_GetComments_OrderedByCreation(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})

	_, err := store.CreateComment(ctx, "acquisition/overview", "kim", "first")
	require.NoError(t, err)
	_, err = store.CreateComment(ctx, "property/overview", "lee", "other page")
	require.NoError(t, err)
	_, err = store.CreateComment(ctx, "acquisition/overview", "park", "second")
	require.NoError(t, err)

	got, err := store.GetComments(ctx, "acquisition/overview")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Body)
	assert.Equal(t, "second", got[1].Body)
}

func TestStore_DeleteComment_OnlyAuthor(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	c, err := store.CreateComment(ctx, "acquisition/overview", "kim", "to delete")
	require.NoError(t, err)

	err = store.DeleteComment(ctx, c.ID, "lee")
	var ferr *apperr.ForbiddenError
	require.ErrorAs(t, err, &ferr)

	require.NoError(t, store.DeleteComment(ctx, c.ID, "kim"))

	got, err := store.GetComments(ctx, "acquisition/overview")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_MarkCommentProcessed(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	c, err := store.CreateComment(ctx, "acquisition/overview", "kim", "fix this")
	require.NoError(t, err)

	require.NoError(t, store.MarkCommentProcessed(ctx, c.ID, "abc123def"))

	unprocessed, err := store.GetUnprocessedComments(ctx)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)

	all, err := store.GetComments(ctx, "acquisition/overview")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Processed)
	assert.NotNil(t, all[0].ProcessedAt)
	assert.Equal(t, "abc123def", all[0].CommitSha)
}

func TestStore_CreateAttachment_RejectsOversize(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	data := make([]byte, feedback.MaxFileSize+1)
	_, err := store.CreateAttachment(ctx, "big.pdf", data, "application/pdf", "acquisition/overview", "kim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file size exceeds 10MB limit")

	// Rejection happens before any blob write.
	assert.Empty(t, store.blobs)
}

func TestStore_CreateAttachment_RejectsDisallowedMime(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.CreateAttachment(ctx, "evil.sh", []byte("#!/bin/sh"), "application/x-sh", "acquisition/overview", "kim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file type not allowed")
	assert.Empty(t, store.blobs)
}

func TestStore_CreateAttachment_StoresBlobAndMetadata(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	a, err := store.CreateAttachment(ctx, "case.pdf", []byte("%PDF-1.4 test"), "application/pdf", "acquisition/overview", "kim")
	require.NoError(t, err)

	assert.Equal(t, int64(13), a.FileSize)
	assert.Equal(t, feedback.DownloadURL(a.ID), a.DownloadURL)

	data, err := store.Get(ctx, a.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)
}

func TestStore_DeleteAttachment_OnlyUploader_RemovesBlob(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	a, err := store.CreateAttachment(ctx, "case.pdf", []byte("%PDF-1.4"), "application/pdf", "acquisition/overview", "kim")
	require.NoError(t, err)

	err = store.DeleteAttachment(ctx, a.ID, "lee")
	var ferr *apperr.ForbiddenError
	require.ErrorAs(t, err, &ferr)

	require.NoError(t, store.DeleteAttachment(ctx, a.ID, "kim"))

	_, err = store.Get(ctx, a.StoragePath)
	var nerr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestStore_GetAttachments_NewestFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})

	_, err := store.CreateAttachment(ctx, "old.pdf", []byte("%PDF"), "application/pdf", "acquisition/overview", "kim")
	require.NoError(t, err)
	_, err = store.CreateAttachment(ctx, "new.png", []byte("png"), "image/png", "acquisition/overview", "kim")
	require.NoError(t, err)

	got, err := store.GetAttachments(ctx, "acquisition/overview")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new.png", got[0].FileName)
	assert.Equal(t, "old.pdf", got[1].FileName)
}
