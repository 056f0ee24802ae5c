package catalog

import (
	"errors"
	"sort"

	"github.com/trendovo/trendovo-golang/internal/models"
)

// BuildTree converts a flat category list into nested roots for the
// storefront navigation. Siblings are ordered by (sortOrder, id).
// Categories whose parentId points at a non-existent row are dropped,
// not reparented to the root.
func BuildTree(cats []models.Category) []models.Category {
	ordered := make([]models.Category, len(cats))
	copy(ordered, cats)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].ID < ordered[j].ID
	})

	// Index children by parent ID; the slice order is the sibling order.
	known := make(map[int64]bool, len(ordered))
	for _, cat := range ordered {
		known[cat.ID] = true
	}
	byParent := make(map[int64][]models.Category)
	flatRoots := []models.Category{}
	for _, cat := range ordered {
		if cat.ParentID == nil {
			flatRoots = append(flatRoots, cat)
			continue
		}
		if known[*cat.ParentID] {
			byParent[*cat.ParentID] = append(byParent[*cat.ParentID], cat)
		}
		// Dangling parentId: orphan, silently dropped from the tree.
	}

	// Attach children depth-first so every level of nesting survives the
	// by-value copies. Only nodes reachable from a root are emitted, which
	// also drops whole subtrees hanging under an orphan.
	var attach func(cat models.Category) models.Category
	attach = func(cat models.Category) models.Category {
		cat.Children = []models.Category{}
		for _, child := range byParent[cat.ID] {
			cat.Children = append(cat.Children, attach(child))
		}
		return cat
	}

	roots := []models.Category{}
	for _, cat := range flatRoots {
		roots = append(roots, attach(cat))
	}
	return roots
}

var ErrAtEdge = errors.New("category is already at the edge of its sibling list")

// MoveSortOrder computes a new sortOrder value that repositions the
// category with the given id one place up or down among its siblings.
// Collisions with existing values are resolved by nudging past the
// neighbour by 10; duplicate sortOrder values among siblings are
// tolerated and broken by id.
func MoveSortOrder(siblings []models.Category, id int64, direction string) (int, error) {
	ordered := make([]models.Category, len(siblings))
	copy(ordered, siblings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].ID < ordered[j].ID
	})

	idx := -1
	for i := range ordered {
		if ordered[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, errors.New("category is not among the given siblings")
	}

	switch direction {
	case "up":
		if idx == 0 {
			return 0, ErrAtEdge
		}
		return ordered[idx-1].SortOrder - 10, nil
	case "down":
		if idx == len(ordered)-1 {
			return 0, ErrAtEdge
		}
		return ordered[idx+1].SortOrder + 10, nil
	default:
		return 0, errors.New("direction must be 'up' or 'down'")
	}
}
