package importer

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trendovo/trendovo-golang/internal/models"
)

// SQLStore is the MySQL-backed Store used in production.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) ProductByCode(code string) (*models.Product, error) {
	query := `
		SELECT id, code, slug, name, price, regular_price, stock,
		       category_id, description, is_active, created_at, updated_at
		FROM products
		WHERE code = ?`

	var p models.Product
	err := s.DB.QueryRow(query, code).Scan(
		&p.ID, &p.Code, &p.Slug, &p.Name, &p.Price, &p.RegularPrice, &p.Stock,
		&p.CategoryID, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) SlugExists(slug string, excludeID int64) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM products WHERE slug = ? AND id <> ?)",
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

func (s *SQLStore) CreateProduct(p *models.Product) (int64, error) {
	now := time.Now()
	query := `
		INSERT INTO products
		(code, slug, name, price, regular_price, stock, category_id,
		 description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.DB.Exec(query,
		p.Code, p.Slug, p.Name, p.Price, p.RegularPrice, p.Stock,
		p.CategoryID, p.Description, p.IsActive, now, now,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLStore) UpdateProduct(id int64, fields []Field) error {
	return s.update("products", id, fields)
}

func (s *SQLStore) Categories() ([]models.Category, error) {
	rows, err := s.DB.Query(`
		SELECT id, name, slug, parent_id, sort_order, is_active, created_at, updated_at
		FROM categories`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID,
			&c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *SQLStore) CreateCategory(c *models.Category) (int64, error) {
	now := time.Now()
	result, err := s.DB.Exec(`
		INSERT INTO categories (name, slug, parent_id, sort_order, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Slug, c.ParentID, c.SortOrder, c.IsActive, now, now,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLStore) VariantsByProduct(productID int64) ([]models.ProductVariant, error) {
	rows, err := s.DB.Query(`
		SELECT id, product_id, color_name, size_name, stock, price, created_at, updated_at
		FROM product_variants
		WHERE product_id = ?`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		var v models.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.ColorName, &v.SizeName,
			&v.Stock, &v.Price, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (s *SQLStore) CreateVariant(v *models.ProductVariant) (int64, error) {
	now := time.Now()
	result, err := s.DB.Exec(`
		INSERT INTO product_variants (product_id, color_name, size_name, stock, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ProductID, v.ColorName, v.SizeName, v.Stock, v.Price, now, now,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLStore) UpdateVariant(id int64, fields []Field) error {
	return s.update("product_variants", id, fields)
}

// update builds a dynamic UPDATE ... SET statement from the staged
// fields, always bumping updated_at.
func (s *SQLStore) update(table string, id int64, fields []Field) error {
	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	for _, f := range fields {
		querySet += ", " + f.Column + " = ?"
		queryArgs = append(queryArgs, f.Value)
	}
	queryArgs = append(queryArgs, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, querySet)
	if _, err := s.DB.Exec(query, queryArgs...); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

var _ Store = (*SQLStore)(nil)
