package importer

import "github.com/trendovo/trendovo-golang/internal/models"

// Field is one staged column assignment for a partial update.
type Field struct {
	Column string
	Value  interface{}
}

// Store is the persistence surface the reconciler needs. The SQL
// implementation lives in sql_store.go; tests use an in-memory fake.
type Store interface {
	// ProductByCode returns (nil, nil) when no product matches.
	ProductByCode(code string) (*models.Product, error)
	// SlugExists reports whether another product (id != excludeID)
	// already uses the slug.
	SlugExists(slug string, excludeID int64) (bool, error)
	CreateProduct(p *models.Product) (int64, error)
	UpdateProduct(id int64, fields []Field) error

	Categories() ([]models.Category, error)
	CreateCategory(c *models.Category) (int64, error)

	VariantsByProduct(productID int64) ([]models.ProductVariant, error)
	CreateVariant(v *models.ProductVariant) (int64, error)
	UpdateVariant(id int64, fields []Field) error
}
