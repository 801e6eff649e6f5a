package content

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Registry enumerates the published versions of logical documents.
type Registry struct {
	repo *FSRepository
}

func NewRegistry(repo *FSRepository) *Registry {
	return &Registry{repo: repo}
}

// ListVersions returns every version of (category, slugPath) sorted
// descending by numeric (major, minor). Exactly the first entry carries
// IsLatest. A missing directory yields an empty list.
func (r *Registry) ListVersions(category Category, slugPath string) ([]Version, error) {
	slugPath = strings.Trim(slugPath, "/")
	dir := filepath.Join(r.repo.categoryDir(category), filepath.FromSlash(path.Dir(slugPath)))
	slug := path.Base(slugPath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read content dir %s: %w", dir, err)
	}

	var versions []Version
	for _, e := range entries {
		s, v, ok := ParseFilename(e.Name())
		if !ok || s != slug {
			continue
		}
		versions = append(versions, Version{
			Version:  v,
			FilePath: filepath.Join(dir, e.Name()),
		})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i].Version, versions[j].Version) > 0
	})

	if len(versions) > 0 {
		versions[0].IsLatest = true
	}
	return versions, nil
}

// LatestVersion returns the maximum version tag, or "" when none exist.
func (r *Registry) LatestVersion(category Category, slugPath string) (string, error) {
	versions, err := r.ListVersions(category, slugPath)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", nil
	}
	return versions[0].Version, nil
}
