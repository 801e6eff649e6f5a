package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const Ext = ".mdx"

// filenamePattern anchors the version suffix at the end of the name, so
// hyphenated slugs like "first-time-buyer-v1.0.mdx" split correctly.
var filenamePattern = regexp.MustCompile(`^(.+)-v(\d+\.\d+)\.mdx$`)

// ParseFilename extracts slug and version from a versioned content filename.
// Filenames outside the convention (auxiliary files, changelogs) report ok=false.
func ParseFilename(name string) (slug, version string, ok bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// BuildFilename is the inverse of ParseFilename.
func BuildFilename(slug, version string) string {
	return fmt.Sprintf("%s-v%s%s", slug, version, Ext)
}

// CompareVersions orders two "{major}.{minor}" tags numerically, so "1.10"
// sorts above "1.9". Returns <0 if a<b, 0 if equal, >0 if a>b.
// Malformed components compare as zero.
func CompareVersions(a, b string) int {
	aMajor, aMinor := splitVersion(a)
	bMajor, bMinor := splitVersion(b)
	if aMajor != bMajor {
		return aMajor - bMajor
	}
	return aMinor - bMinor
}

func splitVersion(v string) (major, minor int) {
	parts := strings.SplitN(v, ".", 2)
	major, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}
