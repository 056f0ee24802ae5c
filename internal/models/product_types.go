package models

import (
	"time"
)

// Product is the model for the 'products' table.
// Pointers are used for NULLable columns so they serialize cleanly to JSON.
type Product struct {
	ID           int64    `json:"id" db:"id"`
	Code         string   `json:"code" db:"code"` // external catalog code (SKU), unique
	Slug         string   `json:"slug" db:"slug"` // unique, URL-safe
	Name         string   `json:"name" db:"name"`
	Price        float64  `json:"price" db:"price"`
	RegularPrice *float64 `json:"regularPrice,omitempty" db:"regular_price"`
	Stock        int      `json:"stock" db:"stock"`
	CategoryID   *int64   `json:"categoryId,omitempty" db:"category_id"`
	Description  *string  `json:"description,omitempty" db:"description"`
	IsActive     bool     `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (not in the products table, populated manually)
	Variants     []ProductVariant `json:"variants,omitempty" db:"-"`
	CategoryName string           `json:"categoryName,omitempty" db:"-"`
}

// ProductVariant is the model for the 'product_variants' table.
// A variant is identified within its product by the (colorName, sizeName) pair.
type ProductVariant struct {
	ID        int64    `json:"id" db:"id"`
	ProductID int64    `json:"productId" db:"product_id"`
	ColorName *string  `json:"colorName,omitempty" db:"color_name"`
	SizeName  *string  `json:"sizeName,omitempty" db:"size_name"`
	Stock     int      `json:"stock" db:"stock"`
	Price     *float64 `json:"price,omitempty" db:"price"` // optional override of the product price

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
