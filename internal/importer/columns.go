package importer

import "strings"

// Canonical column names used internally after header resolution.
const (
	ColCode         = "code"
	ColName         = "name"
	ColPrice        = "price"
	ColRegularPrice = "regular_price"
	ColStock        = "stock"
	ColCategory     = "category"
	ColSlug         = "slug"
	ColDescription  = "description"
	ColColor        = "color"
	ColSize         = "size"
)

// Merchants upload sheets with Polish, Hungarian or Czech headers and
// several spellings per language. Unrecognized columns are ignored.
var productAliases = map[string]string{
	"kod": ColCode, "kód": ColCode, "code": ColCode, "sku": ColCode, "symbol": ColCode,
	"nazwa": ColName, "name": ColName, "nazev": ColName, "název": ColName,
	"nev": ColName, "név": ColName, "nazov": ColName,
	"cena": ColPrice, "price": ColPrice, "ar": ColPrice, "ár": ColPrice,
	"cena regularna": ColRegularPrice, "regular price": ColRegularPrice,
	"bezna cena": ColRegularPrice, "běžná cena": ColRegularPrice,
	"eredeti ar": ColRegularPrice, "eredeti ár": ColRegularPrice,
	"stan": ColStock, "stock": ColStock, "ilosc": ColStock, "ilość": ColStock,
	"sklad": ColStock, "skladem": ColStock, "keszlet": ColStock, "készlet": ColStock,
	"kategoria": ColCategory, "category": ColCategory,
	"kategorie": ColCategory, "kategória": ColCategory,
	"slug": ColSlug, "url": ColSlug,
	"opis": ColDescription, "description": ColDescription, "popis": ColDescription,
	"leiras": ColDescription, "leírás": ColDescription,
}

var variantAliases = map[string]string{
	"kod": ColCode, "kód": ColCode, "code": ColCode, "sku": ColCode, "symbol": ColCode,
	"kolor": ColColor, "color": ColColor, "barva": ColColor, "szin": ColColor, "szín": ColColor,
	"rozmiar": ColSize, "size": ColSize, "velikost": ColSize, "meret": ColSize, "méret": ColSize,
	"stan": ColStock, "stock": ColStock, "ilosc": ColStock, "ilość": ColStock,
	"sklad": ColStock, "skladem": ColStock, "keszlet": ColStock, "készlet": ColStock,
	"cena": ColPrice, "price": ColPrice, "ar": ColPrice, "ár": ColPrice,
}

// resolveHeader maps column indexes to canonical names using the alias
// table. Columns with no alias match are left out.
func resolveHeader(headerRow []string, aliases map[string]string) map[int]string {
	resolved := make(map[int]string)
	for i, raw := range headerRow {
		key := strings.ToLower(strings.TrimSpace(raw))
		if canonical, ok := aliases[key]; ok {
			// First matching column wins when a header repeats.
			taken := false
			for _, v := range resolved {
				if v == canonical {
					taken = true
					break
				}
			}
			if !taken {
				resolved[i] = canonical
			}
		}
	}
	return resolved
}

// rowValues extracts the recognized, trimmed cell values of one row.
// Cells beyond the row's length (excel trims trailing blanks) read as "".
func rowValues(header map[int]string, row []string) map[string]string {
	vals := make(map[string]string, len(header))
	for idx, canonical := range header {
		if idx < len(row) {
			vals[canonical] = strings.TrimSpace(row[idx])
		} else {
			vals[canonical] = ""
		}
	}
	return vals
}

// rowIsEmpty reports whether every cell of the row is blank.
func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
