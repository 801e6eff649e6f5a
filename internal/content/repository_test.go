package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
)

func writeContentFile(t *testing.T, root string, rel string, body string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0644))
}

func newTestRepo(t *testing.T) *FSRepository {
	t.Helper()
	root := t.TempDir()

	writeContentFile(t, root, "acquisition/exemption/veterans-v1.0.mdx", `---
title: 국가유공자 감면
description: 감면 요건
last_updated: "2025-01-02"
law_reference: 지방세특례제한법 제29조
---
# 국가유공자 감면

감면 내용 본문.
`)
	writeContentFile(t, root, "acquisition/exemption/veterans-v1.1.mdx", `---
title: 국가유공자 감면
version: "9.9"
---
개정된 본문.
`)
	writeContentFile(t, root, "acquisition/rates/housing/housing-v1.0.mdx", `---
title: 주택 세율
audience: 일반
---
주택 취득세율 본문.
`)
	writeContentFile(t, root, "acquisition/rates/housing/notes.txt", "not content")

	return NewFSRepository(root)
}

func TestFSRepository_ListDocuments(t *testing.T) {
	repo := newTestRepo(t)

	slugs, err := repo.ListDocuments(Acquisition)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"exemption/veterans", "rates/housing/housing"}, slugs)
}

func TestFSRepository_ListDocuments_MissingCategory(t *testing.T) {
	repo := newTestRepo(t)

	slugs, err := repo.ListDocuments(Vehicle)

	require.NoError(t, err)
	assert.Empty(t, slugs)
}

func TestFSRepository_Resolve_LatestVersion(t *testing.T) {
	repo := newTestRepo(t)

	file, err := repo.Resolve(Acquisition, "exemption/veterans", "")

	require.NoError(t, err)
	assert.Equal(t, "veterans-v1.1.mdx", filepath.Base(file))
}

func TestFSRepository_Resolve_ExactVersion(t *testing.T) {
	repo := newTestRepo(t)

	file, err := repo.Resolve(Acquisition, "exemption/veterans", "1.0")
	require.NoError(t, err)
	assert.Equal(t, "veterans-v1.0.mdx", filepath.Base(file))

	_, err = repo.Resolve(Acquisition, "exemption/veterans", "3.0")
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf), "missing exact version should be not-found")
}

func TestFSRepository_Resolve_UnknownSlug(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Resolve(Acquisition, "exemption/no-such-doc", "")

	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestFSRepository_Read(t *testing.T) {
	repo := newTestRepo(t)

	file, err := repo.Resolve(Acquisition, "exemption/veterans", "1.0")
	require.NoError(t, err)

	doc, err := repo.Read(file)
	require.NoError(t, err)

	assert.Equal(t, "acquisition/exemption/veterans", doc.Meta.ID)
	assert.Equal(t, "국가유공자 감면", doc.Meta.Title)
	assert.Equal(t, Acquisition, doc.Meta.Category)
	assert.Equal(t, "1.0", doc.Meta.Version)
	assert.Equal(t, "2025-01-02", doc.Meta.LastUpdated)
	assert.Equal(t, "지방세특례제한법 제29조", doc.Meta.LegalBasis)
	assert.Contains(t, doc.Body, "감면 내용 본문")
	assert.NotContains(t, doc.Body, "title:", "front matter must be stripped from body")
}

func TestFSRepository_Read_FilenameVersionWins(t *testing.T) {
	repo := newTestRepo(t)

	file, err := repo.Resolve(Acquisition, "exemption/veterans", "1.1")
	require.NoError(t, err)

	doc, err := repo.Read(file)
	require.NoError(t, err)

	// Front matter claims 9.9 but the filename is authoritative.
	assert.Equal(t, "1.1", doc.Meta.Version)
}

func TestFSRepository_Read_Defaults(t *testing.T) {
	repo := newTestRepo(t)

	file, err := repo.Resolve(Acquisition, "rates/housing/housing", "")
	require.NoError(t, err)

	doc, err := repo.Read(file)
	require.NoError(t, err)

	assert.Equal(t, "주택 세율", doc.Meta.Title)
	assert.Empty(t, doc.Meta.Description)
	assert.Equal(t, "일반", doc.Meta.Audience)
	assert.Equal(t, "1.0", doc.Meta.Version)
}
