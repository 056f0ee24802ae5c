package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantSheetExactMatch(t *testing.T) {
	assert.Equal(t, "Varianty", variantSheet([]string{"Produkty", "Varianty"}))
	assert.Equal(t, "", variantSheet([]string{"Produkty"}))

	// Only the exact name counts.
	assert.Equal(t, "", variantSheet([]string{"Produkty", "varianty"}))
	assert.Equal(t, "", variantSheet([]string{"Produkty", "VARIANTY"}))
}
