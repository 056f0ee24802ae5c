package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/trendovo/trendovo-golang/internal/catalog"
	"github.com/trendovo/trendovo-golang/internal/models"
)

// GetCategoryTree is the public handler for GET /v1/categories.
// The nested tree is served from redis when possible.
func (h *Handlers) GetCategoryTree(c *gin.Context) {
	if tree, ok := h.Cache.GetCategoryTree(c.Request.Context()); ok {
		c.JSON(http.StatusOK, gin.H{"categories": tree})
		return
	}

	cats, err := h.fetchCategories("WHERE is_active = 1")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	tree := catalog.BuildTree(cats)
	h.Cache.SetCategoryTree(c.Request.Context(), tree)

	c.JSON(http.StatusOK, gin.H{"categories": tree})
}

// GetAllCategories is the admin handler for GET /v1/admin/categories.
// Returns the flat list, inactive rows included.
func (h *Handlers) GetAllCategories(c *gin.Context) {
	cats, err := h.fetchCategories("")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// CreateCategory is the admin handler for POST /v1/admin/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	query := `
		INSERT INTO categories (name, slug, parent_id, sort_order, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), input.ParentID, input.SortOrder, isActive, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	h.Cache.InvalidateCategoryTree(c.Request.Context())

	newCat := models.Category{
		ID:        id,
		Name:      input.Name,
		Slug:      slug.Make(input.Name),
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
		IsActive:  isActive,
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": newCat})
}

// UpdateCategory is the admin handler for PUT /v1/admin/categories/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	categoryID := c.Param("id")

	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.Name != nil {
		querySet += ", name = ?, slug = ?"
		queryArgs = append(queryArgs, *input.Name, slug.Make(*input.Name))
	}
	if input.ParentID != nil {
		querySet += ", parent_id = ?"
		queryArgs = append(queryArgs, *input.ParentID)
	}
	if input.SortOrder != nil {
		querySet += ", sort_order = ?"
		queryArgs = append(queryArgs, *input.SortOrder)
	}
	if input.IsActive != nil {
		querySet += ", is_active = ?"
		queryArgs = append(queryArgs, *input.IsActive)
	}

	queryArgs = append(queryArgs, categoryID)
	result, err := h.DB.Exec("UPDATE categories SET "+querySet+" WHERE id = ?", queryArgs...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	h.Cache.InvalidateCategoryTree(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

// DeleteCategory is the admin handler for DELETE /v1/admin/categories/:id
// Children keep their parent_id and simply drop out of the tree.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM categories WHERE id = ?", categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	h.Cache.InvalidateCategoryTree(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

type MoveCategoryInput struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// MoveCategory is the admin handler for PATCH /v1/admin/categories/:id/move
// It repositions the category among its siblings by nudging sort_order.
func (h *Handlers) MoveCategory(c *gin.Context) {
	categoryID := c.Param("id")

	var input MoveCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cat models.Category
	err := h.DB.QueryRow("SELECT id, parent_id FROM categories WHERE id = ?", categoryID).Scan(&cat.ID, &cat.ParentID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// NULL-safe sibling match for root categories.
	siblings, err := h.fetchSiblings(cat.ParentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	newOrder, err := catalog.MoveSortOrder(siblings, cat.ID, input.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.DB.Exec("UPDATE categories SET sort_order = ?, updated_at = ? WHERE id = ?",
		newOrder, time.Now(), cat.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move category"})
		return
	}

	h.Cache.InvalidateCategoryTree(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Category moved", "sortOrder": newOrder})
}

func (h *Handlers) fetchCategories(where string) ([]models.Category, error) {
	query := `
		SELECT id, name, slug, parent_id, sort_order, is_active, created_at, updated_at
		FROM categories ` + where + `
		ORDER BY sort_order ASC, id ASC`

	rows, err := h.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var cat models.Category
		cat.Children = []models.Category{}
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.ParentID,
			&cat.SortOrder, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

func (h *Handlers) fetchSiblings(parentID *int64) ([]models.Category, error) {
	query := `
		SELECT id, name, slug, parent_id, sort_order, is_active, created_at, updated_at
		FROM categories WHERE parent_id <=> ?
		ORDER BY sort_order ASC, id ASC`

	rows, err := h.DB.Query(query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.ParentID,
			&cat.SortOrder, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}
