package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendovo/trendovo-golang/internal/models"
)

// fakeStore is an in-memory Store so the reconciler contract can be
// tested without a database.
type fakeStore struct {
	products   []models.Product
	categories []models.Category
	variants   []models.ProductVariant

	nextID int64

	productUpdates map[int64][]Field
	variantUpdates map[int64][]Field
	writes         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:         1000,
		productUpdates: map[int64][]Field{},
		variantUpdates: map[int64][]Field{},
	}
}

func (f *fakeStore) ProductByCode(code string) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].Code == code {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SlugExists(slug string, excludeID int64) (bool, error) {
	for _, p := range f.products {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateProduct(p *models.Product) (int64, error) {
	f.nextID++
	p.ID = f.nextID
	f.products = append(f.products, *p)
	f.writes++
	return p.ID, nil
}

func (f *fakeStore) UpdateProduct(id int64, fields []Field) error {
	f.productUpdates[id] = append(f.productUpdates[id], fields...)
	f.writes++
	return nil
}

func (f *fakeStore) Categories() ([]models.Category, error) {
	return append([]models.Category{}, f.categories...), nil
}

func (f *fakeStore) CreateCategory(c *models.Category) (int64, error) {
	f.nextID++
	c.ID = f.nextID
	f.categories = append(f.categories, *c)
	f.writes++
	return c.ID, nil
}

func (f *fakeStore) VariantsByProduct(productID int64) ([]models.ProductVariant, error) {
	var out []models.ProductVariant
	for _, v := range f.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateVariant(v *models.ProductVariant) (int64, error) {
	f.nextID++
	v.ID = f.nextID
	f.variants = append(f.variants, *v)
	f.writes++
	return v.ID, nil
}

func (f *fakeStore) UpdateVariant(id int64, fields []Field) error {
	f.variantUpdates[id] = append(f.variantUpdates[id], fields...)
	f.writes++
	return nil
}

func sp(s string) *string { return &s }

func header() []string {
	return []string{"Kod", "Nazwa", "Cena", "Stan", "Kategoria"}
}

func TestMissingCodeProducesOneErrorAndNoWrites(t *testing.T) {
	st := newFakeStore()
	svc := NewService(st)

	result := svc.ImportProducts([][]string{
		header(),
		{"", "Koszulka", "49,90", "10", ""},
	})

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 2")
	assert.Contains(t, result.Errors[0], "missing product code")
	require.Len(t, result.Details, 1)
	assert.Equal(t, models.ImportRowError, result.Details[0].Status)
	assert.Zero(t, st.writes)
	assert.Zero(t, result.Created+result.Updated+result.Skipped)
}

func TestPriceOnlyUpdateTouchesOneField(t *testing.T) {
	st := newFakeStore()
	st.products = append(st.products, models.Product{
		ID: 1, Code: "TSH-001", Slug: "koszulka-basic", Name: "Koszulka basic",
		Price: 49.90, Stock: 10,
	})
	svc := NewService(st)

	result := svc.ImportProducts([][]string{
		header(),
		{"TSH-001", "Koszulka basic", "59,90", "10", ""},
	})

	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)

	fields := st.productUpdates[1]
	require.Len(t, fields, 1)
	assert.Equal(t, "price", fields[0].Column)
	assert.Equal(t, 59.90, fields[0].Value)

	require.Len(t, result.Details, 1)
	assert.Equal(t, models.ImportRowUpdated, result.Details[0].Status)
	assert.Equal(t, "updated 1 field(s): price", result.Details[0].Message)
}

func TestIdenticalRowIsSkippedWithoutWrite(t *testing.T) {
	st := newFakeStore()
	st.products = append(st.products, models.Product{
		ID: 1, Code: "TSH-001", Slug: "koszulka-basic", Name: "Koszulka basic",
		Price: 49.90, Stock: 10,
	})
	svc := NewService(st)

	result := svc.ImportProducts([][]string{
		header(),
		{"TSH-001", "Koszulka basic", "49,90", "10", ""},
	})

	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, st.writes)
	require.Len(t, result.Details, 1)
	assert.Equal(t, models.ImportRowSkipped, result.Details[0].Status)
	assert.Equal(t, "no changes", result.Details[0].Message)
}

func TestNewProductMissingFieldsAreEnumerated(t *testing.T) {
	st := newFakeStore()
	svc := NewService(st)

	result := svc.ImportProducts([][]string{
		header(),
		{"NEW-001", "", "", "5", ""},
	})

	require.Len(t, result.Details, 1)
	assert.Equal(t, models.ImportRowError, result.Details[0].Status)
	assert.Equal(t, "missing required fields: name, price", result.Details[0].Message)
	assert.Zero(t, st.writes)
	assert.Zero(t, result.Created)
}

func TestNewProductIsCreatedWithCategoryOnTheFly(t *testing.T) {
	st := newFakeStore()
	st.categories = append(st.categories, models.Category{ID: 5, Name: "Kurtki", Slug: "kurtki"})
	svc := NewService(st)

	result := svc.ImportProducts([][]string{
		header(),
		{"JKT-001", "Kurtka zimowa", "299,00 zł", "3", "KURTKI"}, // case-insensitive match
		{"SHO-001", "Buty trekkingowe", "349,00", "7", "Buty"},   // new category
	})

	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, svc.CreatedCategories)

	jacket, err := st.ProductByCode("JKT-001")
	require.NoError(t, err)
	require.NotNil(t, jacket)
	assert.Equal(t, 299.00, jacket.Price)
	assert.Equal(t, 3, jacket.Stock)
	require.NotNil(t, jacket.CategoryID)
	assert.Equal(t, int64(5), *jacket.CategoryID)
	assert.Equal(t, "kurtka-zimowa", jacket.Slug)

	shoes, err := st.ProductByCode("SHO-001")
	require.NoError(t, err)
	require.NotNil(t, shoes)
	require.NotNil(t, shoes.CategoryID)

	// The new "Buty" category exists exactly once.
	count := 0
	for _, c := range st.categories {
		if strings.EqualFold(c.Name, "Buty") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestNameChangeRegeneratesSlug(t *testing.T) {
	st := newFakeStore()
	st.products = append(st.products,
		models.Product{ID: 1, Code: "TSH-001", Slug: "koszulka-basic", Name: "Koszulka basic", Price: 49.90, Stock: 10},
		models.Product{ID: 2, Code: "TSH-002", Slug: "koszulka-premium", Name: "Koszulka premium", Price: 89.90, Stock: 4},
	)
	svc := NewService(st)

	// Renaming product 1 to collide with product 2's slug: the unique
	// slug search must append the first free suffix.
	result := svc.ImportProducts([][]string{
		{"Kod", "Nazwa"},
		{"TSH-001", "Koszulka premium"},
	})

	assert.Equal(t, 1, result.Updated)
	fields := st.productUpdates[1]
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Column)
	assert.Equal(t, "slug", fields[1].Column)
	assert.Equal(t, "koszulka-premium-1", fields[1].Value)
}

func TestExplicitSlugCollisionFallsBack(t *testing.T) {
	st := newFakeStore()
	st.products = append(st.products,
		models.Product{ID: 1, Code: "TSH-001", Slug: "koszulka-basic", Name: "Koszulka basic", Price: 49.90, Stock: 10},
		models.Product{ID: 2, Code: "TSH-002", Slug: "bestseller", Name: "Koszulka premium", Price: 89.90, Stock: 4},
	)
	svc := NewService(st)

	result := svc.ImportProducts([][]string{
		{"Kod", "Slug"},
		{"TSH-001", "bestseller"},
	})

	assert.Equal(t, 1, result.Updated)
	fields := st.productUpdates[1]
	require.Len(t, fields, 1)
	assert.Equal(t, "slug", fields[0].Column)
	assert.Equal(t, "bestseller-1", fields[0].Value)
}

func TestUniqueSlugProbesSuffixesInOrder(t *testing.T) {
	st := newFakeStore()
	st.products = append(st.products,
		models.Product{ID: 1, Slug: "kurtka"},
		models.Product{ID: 2, Slug: "kurtka-1"},
		models.Product{ID: 3, Slug: "kurtka-2"},
	)

	got, err := UniqueSlug(st, "Kurtka", 0)
	require.NoError(t, err)
	assert.Equal(t, "kurtka-3", got)

	// A product keeps its own slug.
	got, err = UniqueSlug(st, "Kurtka", 1)
	require.NoError(t, err)
	assert.Equal(t, "kurtka", got)
}

func TestVariantRowsReconcile(t *testing.T) {
	st := newFakeStore()
	st.products = append(st.products, models.Product{ID: 1, Code: "TSH-001", Slug: "koszulka", Name: "Koszulka", Price: 49.90})
	st.variants = append(st.variants, models.ProductVariant{
		ID: 10, ProductID: 1, ColorName: sp("Czerwony"), SizeName: sp("L"), Stock: 2,
	})
	svc := NewService(st)

	result := svc.ImportVariants([][]string{
		{"Kod", "Kolor", "Rozmiar", "Stan", "Cena"},
		{"TSH-001", "czerwony", "l", "8", ""},       // matches case-insensitively -> update
		{"TSH-001", "Niebieski", "M", "5", "54,90"}, // new -> insert
		{"TSH-001", "", "", "3", ""},                // neither color nor size -> error
		{"GHOST-9", "Zielony", "S", "1", ""},        // unknown product -> error
	})

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "variant needs a color or a size")
	assert.Contains(t, result.Errors[1], `product with code "GHOST-9" not found`)

	fields := st.variantUpdates[10]
	require.Len(t, fields, 1)
	assert.Equal(t, "stock", fields[0].Column)
	assert.Equal(t, 8, fields[0].Value)

	require.Len(t, st.variants, 2)
	created := st.variants[1]
	assert.Equal(t, "Niebieski", *created.ColorName)
	assert.Equal(t, "M", *created.SizeName)
	assert.Equal(t, 5, created.Stock)
	require.NotNil(t, created.Price)
	assert.Equal(t, 54.90, *created.Price)
}

func TestEmptyRowsAreIgnored(t *testing.T) {
	st := newFakeStore()
	svc := NewService(st)

	result := svc.ImportProducts([][]string{
		header(),
		{"", "", "", "", ""},
		{},
	})

	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Details)
}
