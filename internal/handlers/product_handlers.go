package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trendovo/trendovo-golang/internal/importer"
	"github.com/trendovo/trendovo-golang/internal/models"
)

// --- Inputs ---

type CreateProductInput struct {
	Code         string   `json:"code" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Price        float64  `json:"price" binding:"required,gte=0"`
	RegularPrice *float64 `json:"regularPrice" binding:"omitempty,gte=0"`
	Stock        int      `json:"stock" binding:"gte=0"`
	CategoryID   *int64   `json:"categoryId"`
	Description  *string  `json:"description"`
	Slug         string   `json:"slug"`
	IsActive     *bool    `json:"isActive"`
}

type UpdateProductInput struct {
	Name         *string  `json:"name"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	RegularPrice *float64 `json:"regularPrice" binding:"omitempty,gte=0"`
	Stock        *int     `json:"stock" binding:"omitempty,gte=0"`
	CategoryID   *int64   `json:"categoryId"`
	Description  *string  `json:"description"`
	Slug         *string  `json:"slug"`
	IsActive     *bool    `json:"isActive"`
}

// CreateProduct is the handler for POST /v1/admin/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The catalog code must stay unique across products.
	var codeTaken bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM products WHERE code = ?)", input.Code).Scan(&codeTaken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking code"})
		return
	}
	if codeTaken {
		c.JSON(http.StatusConflict, gin.H{"error": "A product with this code already exists"})
		return
	}

	slugBase := input.Name
	if input.Slug != "" {
		slugBase = input.Slug
	}
	slugVal, err := importer.UniqueSlug(importer.NewSQLStore(h.DB), slugBase, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	query := `
		INSERT INTO products
		(code, slug, name, price, regular_price, stock, category_id, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.DB.Exec(query,
		input.Code, slugVal, input.Name, input.Price, input.RegularPrice,
		input.Stock, input.CategoryID, input.Description, isActive, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert product"})
		return
	}
	productID, _ := result.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Product created",
		"productId": productID,
		"slug":      slugVal,
	})
}

// UpdateProduct is the handler for PUT /v1/admin/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var current models.Product
	err := h.DB.QueryRow("SELECT id, code, slug, name FROM products WHERE id = ?", productID).Scan(
		&current.ID, &current.Code, &current.Slug, &current.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := importer.NewSQLStore(h.DB)

	// --- Dynamically build the UPDATE query ---
	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.Name != nil && *input.Name != current.Name {
		querySet += ", name = ?"
		queryArgs = append(queryArgs, *input.Name)

		// The slug follows the name unless an explicit slug is supplied.
		if input.Slug == nil {
			newSlug, err := importer.UniqueSlug(st, *input.Name, current.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
				return
			}
			querySet += ", slug = ?"
			queryArgs = append(queryArgs, newSlug)
		}
	}
	if input.Slug != nil && *input.Slug != current.Slug {
		// A colliding explicit slug silently falls back to a unique one.
		newSlug, err := importer.UniqueSlug(st, *input.Slug, current.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
			return
		}
		querySet += ", slug = ?"
		queryArgs = append(queryArgs, newSlug)
	}
	if input.Price != nil {
		querySet += ", price = ?"
		queryArgs = append(queryArgs, *input.Price)
	}
	if input.RegularPrice != nil {
		querySet += ", regular_price = ?"
		queryArgs = append(queryArgs, *input.RegularPrice)
	}
	if input.Stock != nil {
		querySet += ", stock = ?"
		queryArgs = append(queryArgs, *input.Stock)
	}
	if input.CategoryID != nil {
		querySet += ", category_id = ?"
		queryArgs = append(queryArgs, *input.CategoryID)
	}
	if input.Description != nil {
		querySet += ", description = ?"
		queryArgs = append(queryArgs, *input.Description)
	}
	if input.IsActive != nil {
		querySet += ", is_active = ?"
		queryArgs = append(queryArgs, *input.IsActive)
	}

	queryArgs = append(queryArgs, productID)
	if _, err := h.DB.Exec("UPDATE products SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct is the handler for DELETE /v1/admin/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM products WHERE id = ?", productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetAllProducts is the handler for GET /v1/admin/products
// Supports ?q= search over name and code plus page/limit pagination.
func (h *Handlers) GetAllProducts(c *gin.Context) {
	q := c.Query("q")
	page, limit := pagination(c)

	query := `
		SELECT p.id, p.code, p.slug, p.name, p.price, p.regular_price, p.stock,
		       p.category_id, p.description, p.is_active, p.created_at, p.updated_at,
		       COALESCE(cat.name, '')
		FROM products p
		LEFT JOIN categories cat ON p.category_id = cat.id`

	var args []interface{}
	if q != "" {
		query += " WHERE (p.name LIKE ? OR p.code LIKE ?)"
		term := "%" + q + "%"
		args = append(args, term, term)
	}
	query += " ORDER BY p.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	products, err := h.scanProducts(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "page": page})
}

// ListProducts is the public handler for GET /v1/products
// Supports ?category=<slug>, ?q= and pagination; only active products.
func (h *Handlers) ListProducts(c *gin.Context) {
	categorySlug := c.Query("category")
	q := c.Query("q")
	page, limit := pagination(c)

	query := `
		SELECT p.id, p.code, p.slug, p.name, p.price, p.regular_price, p.stock,
		       p.category_id, p.description, p.is_active, p.created_at, p.updated_at,
		       COALESCE(cat.name, '')
		FROM products p
		LEFT JOIN categories cat ON p.category_id = cat.id
		WHERE p.is_active = 1`

	var args []interface{}
	if categorySlug != "" {
		query += " AND cat.slug = ?"
		args = append(args, categorySlug)
	}
	if q != "" {
		query += " AND (p.name LIKE ? OR p.description LIKE ?)"
		term := "%" + q + "%"
		args = append(args, term, term)
	}
	query += " ORDER BY p.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	products, err := h.scanProducts(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "page": page})
}

// GetProductBySlug is the public handler for GET /v1/products/:slug
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	slugParam := c.Param("slug")

	query := `
		SELECT p.id, p.code, p.slug, p.name, p.price, p.regular_price, p.stock,
		       p.category_id, p.description, p.is_active, p.created_at, p.updated_at,
		       COALESCE(cat.name, '')
		FROM products p
		LEFT JOIN categories cat ON p.category_id = cat.id
		WHERE p.slug = ? AND p.is_active = 1`

	var p models.Product
	err := h.DB.QueryRow(query, slugParam).Scan(
		&p.ID, &p.Code, &p.Slug, &p.Name, &p.Price, &p.RegularPrice, &p.Stock,
		&p.CategoryID, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	variants, err := importer.NewSQLStore(h.DB).VariantsByProduct(p.ID)
	if err == nil {
		p.Variants = variants
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *Handlers) scanProducts(query string, args ...interface{}) ([]models.Product, error) {
	rows, err := h.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Slug, &p.Name, &p.Price, &p.RegularPrice, &p.Stock,
			&p.CategoryID, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&p.CategoryName,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// pagination reads ?page= and ?limit= with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "24"))
	if limit < 1 || limit > 100 {
		limit = 24
	}
	return page, limit
}
