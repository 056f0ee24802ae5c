package models

import "time"

// Category defines the struct for the 'categories' table.
// Categories form a tree via ParentID. SortOrder is the sibling sort
// index; duplicate values among siblings are tolerated.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	ParentID  *int64    `json:"parentId,omitempty" db:"parent_id"`
	SortOrder int       `json:"sortOrder" db:"sort_order"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Populated by the tree builder, not stored.
	Children []Category `json:"children" db:"-"`
}

type CreateCategoryInput struct {
	Name      string `json:"name" binding:"required"`
	ParentID  *int64 `json:"parentId"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

type UpdateCategoryInput struct {
	Name      *string `json:"name"`
	ParentID  *int64  `json:"parentId"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}
