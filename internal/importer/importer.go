package importer

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/trendovo/trendovo-golang/internal/models"
)

// Service reconciles uploaded spreadsheet rows against the product
// catalog. One Service instance covers one import batch: the category
// cache is loaded once and reused for every row.
type Service struct {
	store Store

	catsLoaded bool
	catsByName map[string]models.Category

	// CreatedCategories counts categories created on the fly during
	// this batch, so callers know to invalidate the navigation cache.
	CreatedCategories int
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ImportProducts processes the product sheet. rows[0] must be the
// header row. A row failure is recorded and processing continues; the
// batch never aborts.
func (s *Service) ImportProducts(rows [][]string) *models.ImportResult {
	result := &models.ImportResult{Errors: []string{}, Details: []models.ImportRowDetail{}}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "the sheet is empty")
		return result
	}
	header := resolveHeader(rows[0], productAliases)

	for i, raw := range rows[1:] {
		rowNum := i + 2 // 1-based, accounting for the header row
		if rowIsEmpty(raw) {
			continue
		}
		vals := rowValues(header, raw)

		code := vals[ColCode]
		if code == "" {
			s.addError(result, rowNum, "", "missing product code")
			continue
		}

		existing, err := s.store.ProductByCode(code)
		if err != nil {
			s.addError(result, rowNum, code, fmt.Sprintf("database error: %v", err))
			continue
		}

		if existing != nil {
			s.mergeProduct(result, rowNum, vals, existing)
		} else {
			s.createProduct(result, rowNum, code, vals)
		}
	}

	return result
}

// mergeProduct overwrites every recognized field present in the row.
// When nothing actually differs the row is recorded as skipped.
func (s *Service) mergeProduct(result *models.ImportResult, rowNum int, vals map[string]string, p *models.Product) {
	var fields []Field
	var changed []string

	explicitSlug := vals[ColSlug]

	if name := vals[ColName]; name != "" && name != p.Name {
		fields = append(fields, Field{Column: "name", Value: name})
		changed = append(changed, "name")

		// The slug follows the name unless the sheet supplies one.
		if explicitSlug == "" {
			newSlug, err := UniqueSlug(s.store, name, p.ID)
			if err != nil {
				s.addError(result, rowNum, p.Code, fmt.Sprintf("database error: %v", err))
				return
			}
			if newSlug != p.Slug {
				fields = append(fields, Field{Column: "slug", Value: newSlug})
			}
		}
	}

	if explicitSlug != "" {
		want := slug.Make(explicitSlug)
		if want != "" && want != p.Slug {
			taken, err := s.store.SlugExists(want, p.ID)
			if err != nil {
				s.addError(result, rowNum, p.Code, fmt.Sprintf("database error: %v", err))
				return
			}
			if taken {
				// Collision with another product: silently fall back
				// to an auto-generated unique slug.
				want, err = UniqueSlug(s.store, want, p.ID)
				if err != nil {
					s.addError(result, rowNum, p.Code, fmt.Sprintf("database error: %v", err))
					return
				}
			}
			if want != p.Slug {
				fields = append(fields, Field{Column: "slug", Value: want})
				changed = append(changed, "slug")
			}
		}
	}

	if raw := vals[ColPrice]; raw != "" {
		price, err := ParsePrice(raw)
		if err != nil {
			s.addError(result, rowNum, p.Code, fmt.Sprintf("invalid price %q", raw))
			return
		}
		if price != p.Price {
			fields = append(fields, Field{Column: "price", Value: price})
			changed = append(changed, "price")
		}
	}

	if raw := vals[ColRegularPrice]; raw != "" {
		regular, err := ParsePrice(raw)
		if err != nil {
			s.addError(result, rowNum, p.Code, fmt.Sprintf("invalid regular price %q", raw))
			return
		}
		if p.RegularPrice == nil || *p.RegularPrice != regular {
			fields = append(fields, Field{Column: "regular_price", Value: regular})
			changed = append(changed, "regular price")
		}
	}

	if raw := vals[ColStock]; raw != "" {
		stock, err := ParseStock(raw)
		if err != nil {
			s.addError(result, rowNum, p.Code, fmt.Sprintf("invalid stock %q", raw))
			return
		}
		if stock != p.Stock {
			fields = append(fields, Field{Column: "stock", Value: stock})
			changed = append(changed, "stock")
		}
	}

	if catName := vals[ColCategory]; catName != "" {
		cat, err := s.categoryByName(catName)
		if err != nil {
			s.addError(result, rowNum, p.Code, fmt.Sprintf("database error: %v", err))
			return
		}
		if p.CategoryID == nil || *p.CategoryID != cat.ID {
			fields = append(fields, Field{Column: "category_id", Value: cat.ID})
			changed = append(changed, "category")
		}
	}

	if desc := vals[ColDescription]; desc != "" {
		if p.Description == nil || *p.Description != desc {
			fields = append(fields, Field{Column: "description", Value: desc})
			changed = append(changed, "description")
		}
	}

	if len(fields) == 0 {
		result.Skipped++
		result.Details = append(result.Details, models.ImportRowDetail{
			Row: rowNum, Code: p.Code, Status: models.ImportRowSkipped, Message: "no changes",
		})
		return
	}

	if err := s.store.UpdateProduct(p.ID, fields); err != nil {
		s.addError(result, rowNum, p.Code, fmt.Sprintf("update failed: %v", err))
		return
	}

	result.Updated++
	result.Details = append(result.Details, models.ImportRowDetail{
		Row:     rowNum,
		Code:    p.Code,
		Status:  models.ImportRowUpdated,
		Message: fmt.Sprintf("updated %d field(s): %s", len(changed), strings.Join(changed, ", ")),
	})
}

// createProduct inserts a new product. Code, name, price and stock are
// mandatory for creation; the error detail enumerates exactly the
// missing names.
func (s *Service) createProduct(result *models.ImportResult, rowNum int, code string, vals map[string]string) {
	var missing []string
	if vals[ColName] == "" {
		missing = append(missing, "name")
	}
	if vals[ColPrice] == "" {
		missing = append(missing, "price")
	}
	if vals[ColStock] == "" {
		missing = append(missing, "stock")
	}
	if len(missing) > 0 {
		s.addError(result, rowNum, code, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	price, err := ParsePrice(vals[ColPrice])
	if err != nil {
		s.addError(result, rowNum, code, fmt.Sprintf("invalid price %q", vals[ColPrice]))
		return
	}
	stock, err := ParseStock(vals[ColStock])
	if err != nil {
		s.addError(result, rowNum, code, fmt.Sprintf("invalid stock %q", vals[ColStock]))
		return
	}

	p := &models.Product{
		Code:     code,
		Name:     vals[ColName],
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}

	if raw := vals[ColRegularPrice]; raw != "" {
		regular, err := ParsePrice(raw)
		if err != nil {
			s.addError(result, rowNum, code, fmt.Sprintf("invalid regular price %q", raw))
			return
		}
		p.RegularPrice = &regular
	}

	slugBase := vals[ColName]
	if vals[ColSlug] != "" {
		slugBase = vals[ColSlug]
	}
	p.Slug, err = UniqueSlug(s.store, slugBase, 0)
	if err != nil {
		s.addError(result, rowNum, code, fmt.Sprintf("database error: %v", err))
		return
	}

	if catName := vals[ColCategory]; catName != "" {
		cat, err := s.categoryByName(catName)
		if err != nil {
			s.addError(result, rowNum, code, fmt.Sprintf("database error: %v", err))
			return
		}
		p.CategoryID = &cat.ID
	}

	if desc := vals[ColDescription]; desc != "" {
		p.Description = &desc
	}

	id, err := s.store.CreateProduct(p)
	if err != nil {
		s.addError(result, rowNum, code, fmt.Sprintf("insert failed: %v", err))
		return
	}
	p.ID = id

	result.Created++
	result.Details = append(result.Details, models.ImportRowDetail{
		Row: rowNum, Code: code, Status: models.ImportRowCreated,
		Message: fmt.Sprintf("created product %q", p.Name),
	})
}

// ImportVariants processes the "Varianty" sheet. Each row resolves its
// parent product by code and is matched against existing variants by
// the (color, size) pair.
func (s *Service) ImportVariants(rows [][]string) *models.ImportResult {
	result := &models.ImportResult{Errors: []string{}, Details: []models.ImportRowDetail{}}

	if len(rows) == 0 {
		return result
	}
	header := resolveHeader(rows[0], variantAliases)

	for i, raw := range rows[1:] {
		rowNum := i + 2
		if rowIsEmpty(raw) {
			continue
		}
		vals := rowValues(header, raw)

		code := vals[ColCode]
		if code == "" {
			s.addError(result, rowNum, "", "variant row is missing the product code")
			continue
		}

		product, err := s.store.ProductByCode(code)
		if err != nil {
			s.addError(result, rowNum, code, fmt.Sprintf("database error: %v", err))
			continue
		}
		if product == nil {
			s.addError(result, rowNum, code, fmt.Sprintf("product with code %q not found", code))
			continue
		}

		color := vals[ColColor]
		size := vals[ColSize]
		if color == "" && size == "" {
			s.addError(result, rowNum, code, "variant needs a color or a size")
			continue
		}

		variants, err := s.store.VariantsByProduct(product.ID)
		if err != nil {
			s.addError(result, rowNum, code, fmt.Sprintf("database error: %v", err))
			continue
		}

		var match *models.ProductVariant
		for j := range variants {
			if strings.EqualFold(deref(variants[j].ColorName), color) &&
				strings.EqualFold(deref(variants[j].SizeName), size) {
				match = &variants[j]
				break
			}
		}

		var stock *int
		if raw := vals[ColStock]; raw != "" {
			v, err := ParseStock(raw)
			if err != nil {
				s.addError(result, rowNum, code, fmt.Sprintf("invalid stock %q", raw))
				continue
			}
			stock = &v
		}
		var price *float64
		if raw := vals[ColPrice]; raw != "" {
			v, err := ParsePrice(raw)
			if err != nil {
				s.addError(result, rowNum, code, fmt.Sprintf("invalid price %q", raw))
				continue
			}
			price = &v
		}

		if match != nil {
			var fields []Field
			if stock != nil && *stock != match.Stock {
				fields = append(fields, Field{Column: "stock", Value: *stock})
			}
			if price != nil && (match.Price == nil || *match.Price != *price) {
				fields = append(fields, Field{Column: "price", Value: *price})
			}
			if len(fields) == 0 {
				result.Skipped++
				result.Details = append(result.Details, models.ImportRowDetail{
					Row: rowNum, Code: code, Status: models.ImportRowSkipped,
					Message: fmt.Sprintf("variant %s unchanged", variantLabel(color, size)),
				})
				continue
			}
			if err := s.store.UpdateVariant(match.ID, fields); err != nil {
				s.addError(result, rowNum, code, fmt.Sprintf("update failed: %v", err))
				continue
			}
			result.Updated++
			result.Details = append(result.Details, models.ImportRowDetail{
				Row: rowNum, Code: code, Status: models.ImportRowUpdated,
				Message: fmt.Sprintf("updated variant %s", variantLabel(color, size)),
			})
			continue
		}

		v := &models.ProductVariant{ProductID: product.ID, Price: price}
		if stock != nil {
			v.Stock = *stock
		}
		if color != "" {
			v.ColorName = &color
		}
		if size != "" {
			v.SizeName = &size
		}
		if _, err := s.store.CreateVariant(v); err != nil {
			s.addError(result, rowNum, code, fmt.Sprintf("insert failed: %v", err))
			continue
		}
		result.Created++
		result.Details = append(result.Details, models.ImportRowDetail{
			Row: rowNum, Code: code, Status: models.ImportRowCreated,
			Message: fmt.Sprintf("created variant %s", variantLabel(color, size)),
		})
	}

	return result
}

// categoryByName resolves a category case-insensitively against an
// in-memory cache populated once per batch, creating the category on
// the fly when the name is new.
func (s *Service) categoryByName(name string) (models.Category, error) {
	if !s.catsLoaded {
		all, err := s.store.Categories()
		if err != nil {
			return models.Category{}, err
		}
		s.catsByName = make(map[string]models.Category, len(all))
		for _, c := range all {
			s.catsByName[strings.ToLower(c.Name)] = c
		}
		s.catsLoaded = true
	}

	key := strings.ToLower(name)
	if cat, ok := s.catsByName[key]; ok {
		return cat, nil
	}

	cat := models.Category{
		Name:     name,
		Slug:     slug.Make(name),
		IsActive: true,
	}
	id, err := s.store.CreateCategory(&cat)
	if err != nil {
		return models.Category{}, err
	}
	cat.ID = id
	s.catsByName[key] = cat
	s.CreatedCategories++
	return cat, nil
}

func (s *Service) addError(result *models.ImportResult, rowNum int, code, msg string) {
	result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", rowNum, msg))
	result.Details = append(result.Details, models.ImportRowDetail{
		Row: rowNum, Code: code, Status: models.ImportRowError, Message: msg,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func variantLabel(color, size string) string {
	switch {
	case color != "" && size != "":
		return color + " / " + size
	case color != "":
		return color
	default:
		return size
	}
}
