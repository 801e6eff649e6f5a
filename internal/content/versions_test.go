package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ListVersions_NumericOrder(t *testing.T) {
	root := t.TempDir()
	for _, v := range []string{"1.0", "1.9", "1.10", "2.0"} {
		writeContentFile(t, root, "property/rates/general-v"+v+".mdx", "---\ntitle: t\n---\nbody")
	}
	registry := NewRegistry(NewFSRepository(root))

	versions, err := registry.ListVersions(Property, "rates/general")
	require.NoError(t, err)

	got := make([]string, len(versions))
	for i, v := range versions {
		got[i] = v.Version
	}
	assert.Equal(t, []string{"2.0", "1.10", "1.9", "1.0"}, got)

	assert.True(t, versions[0].IsLatest)
	for _, v := range versions[1:] {
		assert.False(t, v.IsLatest)
	}
}

func TestRegistry_ListVersions_Empty(t *testing.T) {
	registry := NewRegistry(NewFSRepository(t.TempDir()))

	versions, err := registry.ListVersions(Property, "rates/general")

	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestRegistry_LatestVersion(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "vehicle/rates/passenger-v1.0.mdx", "---\ntitle: t\n---\nbody")
	writeContentFile(t, root, "vehicle/rates/passenger-v1.2.mdx", "---\ntitle: t\n---\nbody")
	registry := NewRegistry(NewFSRepository(root))

	latest, err := registry.LatestVersion(Vehicle, "rates/passenger")
	require.NoError(t, err)
	assert.Equal(t, "1.2", latest)

	missing, err := registry.LatestVersion(Vehicle, "rates/cargo")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
