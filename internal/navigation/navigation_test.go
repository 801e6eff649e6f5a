package navigation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
home:
  label: 홈
  path: /
acquisition:
  label: 취득세
  path: /acquisition
  icon: file-text
  isCategory: true
  children:
    multi-house:
      label: 다주택 중과
      path: /acquisition/multi-house/multi-house
    exemption:
      label: 비과세/감면
      path: /acquisition/exemption
      isCategory: true
      children:
        rental-business:
          label: 임대사업자 감면
          path: /acquisition/exemption/rental-business
        first-time-buyer:
          label: 생애최초 주택취득 감면
          path: /acquisition/exemption/first-time-buyer
    rates:
      label: 세율
      path: /acquisition/rates
      isCategory: true
      children:
        realestate:
          label: 부동산
          path: /acquisition/rates/realestate
          isCategory: true
          children:
            housing:
              label: 주택
              path: /acquisition/rates/realestate/housing/housing
        common:
          label: 공통
          path: /acquisition/rates/common/common
property:
  label: 재산세
  path: /property
  isCategory: true
  children:
    overview:
      label: 개요
      path: /property/overview
vehicle:
  label: 자동차세
  path: /vehicle
  isCategory: true
  children: {}
`

func loadTestTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := Load(strings.NewReader(testConfig))
	require.NoError(t, err)
	return tree
}

func TestLoad_PreservesDeclarationOrder(t *testing.T) {
	tree := loadTestTree(t)

	var keys []string
	for _, root := range tree.Roots() {
		keys = append(keys, root.Key)
	}
	assert.Equal(t, []string{"home", "acquisition", "property", "vehicle"}, keys)

	acq := tree.Category("acquisition")
	require.NotNil(t, acq)
	var childKeys []string
	for _, c := range acq.Children {
		childKeys = append(childKeys, c.Key)
	}
	assert.Equal(t, []string{"multi-house", "exemption", "rates"}, childKeys)
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("home:\n  label: 홈\n  pathh: /\n"))

	assert.Error(t, err)
}

func TestLeafPaths_DepthFirstPreOrder(t *testing.T) {
	tree := loadTestTree(t)

	leaves := LeafPaths(tree.Category("acquisition"))

	assert.Equal(t, []string{
		"/acquisition/multi-house/multi-house",
		"/acquisition/exemption/rental-business",
		"/acquisition/exemption/first-time-buyer",
		"/acquisition/rates/realestate/housing/housing",
		"/acquisition/rates/common/common",
	}, leaves)
}

func TestLeafPaths_NeverEmitsCategoryNodes(t *testing.T) {
	tree := loadTestTree(t)

	for _, root := range tree.Roots() {
		for _, leaf := range LeafPaths(root) {
			n := tree.byPath[leaf]
			require.NotNil(t, n, "leaf %s must exist in the tree", leaf)
			assert.False(t, n.IsCategory, "leaf %s must not be a category", leaf)
			assert.Empty(t, n.Children)
		}
	}
}

func TestLeafPaths_EmptyCategoryIsEmptySequence(t *testing.T) {
	tree := loadTestTree(t)

	assert.Empty(t, LeafPaths(tree.Category("vehicle")))
}

func TestSequencer_NextCrossesSubtreeBoundary(t *testing.T) {
	seq := NewSequencer(loadTestTree(t))

	// Last leaf of the exemption subtree steps into the rates subtree.
	next := seq.NextPath("/acquisition/exemption/first-time-buyer")
	assert.Equal(t, "/acquisition/rates/realestate/housing/housing", next)

	prev := seq.PrevPath("/acquisition/rates/realestate/housing/housing")
	assert.Equal(t, "/acquisition/exemption/first-time-buyer", prev)
}

func TestSequencer_PrevNextInverse(t *testing.T) {
	tree := loadTestTree(t)
	seq := NewSequencer(tree)

	leaves := LeafPaths(tree.Category("acquisition"))
	for _, p := range leaves {
		if next := seq.NextPath(p); next != "" {
			assert.Equal(t, p, seq.PrevPath(next), "prev(next(%s))", p)
		}
	}

	assert.Empty(t, seq.PrevPath(leaves[0]))
	assert.Empty(t, seq.NextPath(leaves[len(leaves)-1]))
}

func TestSequencer_SingleLeafCategory(t *testing.T) {
	seq := NewSequencer(loadTestTree(t))

	assert.Empty(t, seq.NextPath("/property/overview"))
	assert.Empty(t, seq.PrevPath("/property/overview"))

	pos, ok := seq.SequencePosition("/property/overview")
	require.True(t, ok)
	assert.Equal(t, Position{Current: 0, Total: 1}, pos)
}

func TestSequencer_UnknownPath(t *testing.T) {
	seq := NewSequencer(loadTestTree(t))

	assert.Empty(t, seq.NextPath("/acquisition/no-such-leaf"))
	assert.Empty(t, seq.PrevPath("/acquisition/no-such-leaf"))
	_, ok := seq.SequencePosition("/acquisition/no-such-leaf")
	assert.False(t, ok)

	assert.Empty(t, seq.NextPath("/unknown/category"))
}

func TestSequencer_PositionTotalMatchesLeafCount(t *testing.T) {
	tree := loadTestTree(t)
	seq := NewSequencer(tree)

	leaves := LeafPaths(tree.Category("acquisition"))
	for _, p := range leaves {
		pos, ok := seq.SequencePosition(p)
		require.True(t, ok)
		assert.Equal(t, len(leaves), pos.Total)
	}
}
