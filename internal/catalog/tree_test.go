package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendovo/trendovo-golang/internal/models"
)

func ptr(v int64) *int64 { return &v }

func TestBuildTreeNestsChildren(t *testing.T) {
	cats := []models.Category{
		{ID: 1, Name: "Odzież", SortOrder: 10},
		{ID: 2, Name: "Buty", SortOrder: 20},
		{ID: 3, Name: "Kurtki", ParentID: ptr(1), SortOrder: 10},
		{ID: 4, Name: "Spodnie", ParentID: ptr(1), SortOrder: 20},
		{ID: 5, Name: "Zimowe", ParentID: ptr(3), SortOrder: 10},
	}

	roots := BuildTree(cats)

	require.Len(t, roots, 2)
	assert.Equal(t, "Odzież", roots[0].Name)
	assert.Equal(t, "Buty", roots[1].Name)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Kurtki", roots[0].Children[0].Name)
	assert.Equal(t, "Spodnie", roots[0].Children[1].Name)

	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "Zimowe", roots[0].Children[0].Children[0].Name)

	// Leaves render as [] rather than null.
	assert.NotNil(t, roots[1].Children)
	assert.Empty(t, roots[1].Children)
}

func TestBuildTreeDeepChain(t *testing.T) {
	// A straight root -> child -> grandchild -> great-grandchild chain;
	// every level must survive into the nested output.
	cats := []models.Category{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "child", ParentID: ptr(1)},
		{ID: 3, Name: "grandchild", ParentID: ptr(2)},
		{ID: 4, Name: "great-grandchild", ParentID: ptr(3)},
	}

	roots := BuildTree(cats)

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	require.Len(t, roots[0].Children[0].Children, 1)
	require.Len(t, roots[0].Children[0].Children[0].Children, 1)
	assert.Equal(t, "great-grandchild", roots[0].Children[0].Children[0].Children[0].Name)
}

func TestBuildTreeSiblingOrder(t *testing.T) {
	cats := []models.Category{
		{ID: 1, Name: "root"},
		{ID: 12, Name: "b", ParentID: ptr(1), SortOrder: 20},
		{ID: 11, Name: "a", ParentID: ptr(1), SortOrder: 10},
		// Duplicate sortOrder values are tolerated; ties break by id.
		{ID: 14, Name: "d", ParentID: ptr(1), SortOrder: 20},
	}

	roots := BuildTree(cats)

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 3)
	assert.Equal(t, "a", roots[0].Children[0].Name)
	assert.Equal(t, "b", roots[0].Children[1].Name)
	assert.Equal(t, "d", roots[0].Children[2].Name)
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	cats := []models.Category{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "orphan", ParentID: ptr(99)}, // parent does not exist
		{ID: 3, Name: "grandchild of orphan", ParentID: ptr(2)},
	}

	roots := BuildTree(cats)

	// The orphan is dropped, not reparented to the root.
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].Name)
	assert.Empty(t, roots[0].Children)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}

func TestMoveSortOrder(t *testing.T) {
	siblings := []models.Category{
		{ID: 1, SortOrder: 10},
		{ID: 2, SortOrder: 20},
		{ID: 3, SortOrder: 30},
	}

	up, err := MoveSortOrder(siblings, 2, "up")
	require.NoError(t, err)
	assert.Equal(t, 0, up) // nudged 10 past the neighbour above

	down, err := MoveSortOrder(siblings, 2, "down")
	require.NoError(t, err)
	assert.Equal(t, 40, down)

	_, err = MoveSortOrder(siblings, 1, "up")
	assert.ErrorIs(t, err, ErrAtEdge)

	_, err = MoveSortOrder(siblings, 3, "down")
	assert.ErrorIs(t, err, ErrAtEdge)

	_, err = MoveSortOrder(siblings, 42, "up")
	assert.Error(t, err)

	_, err = MoveSortOrder(siblings, 2, "sideways")
	assert.Error(t, err)
}
