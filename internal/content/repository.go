package content

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
)

// Repository resolves logical content identifiers to parsed documents.
// The portal ships a filesystem implementation; the interface keeps the
// sequencer and search logic independent of the backing store.
type Repository interface {
	// ListDocuments enumerates the logical slug paths under a category,
	// collapsing multiple version files into one entry.
	ListDocuments(category Category) ([]string, error)
	// Resolve maps (category, slugPath, version) to a concrete file path.
	// An empty version selects the latest. Absent content yields a
	// NotFoundError, not a generic failure.
	Resolve(category Category, slugPath string, version string) (string, error)
	// Read parses a resolved file into front matter and raw body.
	Read(filePath string) (*Document, error)
}

type FSRepository struct {
	root string
}

func NewFSRepository(root string) *FSRepository {
	return &FSRepository{root: root}
}

func (r *FSRepository) Root() string {
	return r.root
}

func (r *FSRepository) categoryDir(category Category) string {
	return filepath.Join(r.root, string(category))
}

func (r *FSRepository) ListDocuments(category Category) ([]string, error) {
	dir := r.categoryDir(category)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	seen := make(map[string]bool)
	var slugs []string

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		slug, _, ok := ParseFilename(d.Name())
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(dir, filepath.Dir(p))
		if err != nil {
			return err
		}
		slugPath := slug
		if rel != "." {
			slugPath = path.Join(filepath.ToSlash(rel), slug)
		}
		if !seen[slugPath] {
			seen[slugPath] = true
			slugs = append(slugs, slugPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan content dir %s: %w", dir, err)
	}

	return slugs, nil
}

func (r *FSRepository) Resolve(category Category, slugPath string, version string) (string, error) {
	slugPath = strings.Trim(slugPath, "/")
	dir := filepath.Join(r.categoryDir(category), filepath.FromSlash(path.Dir(slugPath)))
	slug := path.Base(slugPath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperr.NewNotFound("content not found")
		}
		return "", fmt.Errorf("failed to read content dir %s: %w", dir, err)
	}

	if version != "" {
		target := BuildFilename(slug, version)
		for _, e := range entries {
			if e.Name() == target {
				return filepath.Join(dir, target), nil
			}
		}
		return "", apperr.NewNotFound("content not found")
	}

	var best string
	var bestVersion string
	for _, e := range entries {
		s, v, ok := ParseFilename(e.Name())
		if !ok || s != slug {
			continue
		}
		if best == "" || CompareVersions(v, bestVersion) > 0 {
			best = e.Name()
			bestVersion = v
		}
	}
	if best == "" {
		return "", apperr.NewNotFound("content not found")
	}
	return filepath.Join(dir, best), nil
}

func (r *FSRepository) Read(filePath string) (*Document, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", filePath, err)
	}

	fm, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter of %s: %w", filePath, err)
	}

	id := r.ContentPath(filePath)

	// The filename is authoritative for the version; front matter is a
	// fallback for files outside the naming convention.
	version := fm.Version
	if _, v, ok := ParseFilename(filepath.Base(filePath)); ok {
		version = v
	}
	if version == "" {
		version = "1.0"
	}

	category, ok := ParseCategory(fm.Category)
	if !ok {
		if c, derived := ParseCategory(strings.SplitN(id, "/", 2)[0]); derived {
			category = c
		} else {
			category = Acquisition
		}
	}

	return &Document{
		Meta: Meta{
			ID:          id,
			Title:       fm.Title,
			Description: fm.Description,
			Category:    category,
			Version:     version,
			LastUpdated: fm.lastUpdated(),
			LegalBasis:  fm.legalBasis(),
			Audience:    fm.Audience,
		},
		Body: body,
	}, nil
}

// ContentPath converts an absolute file path into the logical identifier,
// e.g. "content/acquisition/exemption/veterans-v1.0.mdx"
// → "acquisition/exemption/veterans".
func (r *FSRepository) ContentPath(filePath string) string {
	rel, err := filepath.Rel(r.root, filePath)
	if err != nil {
		rel = filePath
	}
	rel = filepath.ToSlash(rel)

	slug, _, ok := ParseFilename(path.Base(rel))
	if !ok {
		return strings.TrimSuffix(rel, Ext)
	}
	return path.Join(path.Dir(rel), slug)
}
